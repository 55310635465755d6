package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-generator-backend/internal/api"
	"recipe-generator-backend/internal/core/ai/claude"
	"recipe-generator-backend/internal/core/ai/provider"
	aiService "recipe-generator-backend/internal/core/ai/service"
	"recipe-generator-backend/internal/core/catalog"
	"recipe-generator-backend/internal/core/catalog/cache"
	"recipe-generator-backend/internal/core/combo"
	"recipe-generator-backend/internal/core/favorite"
	"recipe-generator-backend/internal/core/recipe"
	"recipe-generator-backend/internal/core/shopping"
	"recipe-generator-backend/internal/infrastructure/config"
	"recipe-generator-backend/internal/infrastructure/database"
	"recipe-generator-backend/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（內含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.App.Name); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("llm_api_key", config.MaskAPIKey(cfg.LLM.APIKey)),
		zap.String("llm_model", cfg.LLM.Model),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	db, err := database.Open(cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			common.LogFatal("Failed to migrate database", zap.Error(err))
		}
	}

	// 初始化快取
	catalogCache, err := cache.New(cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	defer catalogCache.Close()

	llm := aiService.NewService(claude.NewClient(provider.Config{
		APIURL:      cfg.LLM.APIURL,
		APIKey:      cfg.LLM.APIKey,
		APIVersion:  cfg.LLM.APIVersion,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}))
	defer llm.Close()

	catalogSvc := catalog.NewService(db, catalogCache)
	recipeSvc := recipe.NewService(db, llm, catalogSvc)

	router := api.SetupRouter(cfg, api.Services{
		DB:       db,
		Model:    llm.Model(),
		Catalog:  catalogSvc,
		Recipe:   recipeSvc,
		Shopping: shopping.NewService(db, catalogSvc),
		Favorite: favorite.NewService(db, recipeSvc),
		Combo:    combo.NewService(db),
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	common.LogInfo("Server exited")
}
