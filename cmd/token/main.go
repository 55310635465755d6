package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"recipe-generator-backend/internal/api/middleware"
	"recipe-generator-backend/internal/infrastructure/config"
)

// 依 JWT_SECRET 簽發一組存取權杖，方便本地呼叫 /api/v1
func main() {
	userID := flag.Uint("user", 1, "使用者 ID")
	ttl := flag.Duration("ttl", 24*time.Hour, "權杖有效期")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}
	if *userID == 0 {
		fmt.Fprintln(os.Stderr, "user must be positive")
		os.Exit(1)
	}

	token, err := middleware.IssueToken(cfg.Auth.JWTSecret, *userID, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
