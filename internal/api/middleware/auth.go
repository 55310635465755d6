package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"recipe-generator-backend/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	userIDKey = "user_id"

	// 未啟用驗證時所有請求視為同一個本地使用者
	anonymousUserID uint = 1
)

// Claims 存取權杖內容
type Claims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// Auth 驗證 Bearer JWT 並把使用者 ID 放進 context。
// required 為 false 時，沒有權杖的請求以匿名使用者處理，帶了無效權杖仍然拒絕。
func Auth(secret string, required bool) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				common.Fail(c, http.StatusUnauthorized, common.ErrUnauthorized.Message)
				return
			}
			c.Set(userIDKey, anonymousUserID)
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			common.Fail(c, http.StatusUnauthorized, "Authorization 格式錯誤")
			return
		}

		claims := &Claims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || claims.UserID == 0 {
			if err == nil {
				err = errors.New("missing userId claim")
			}
			common.LogWarn("權杖驗證失敗",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			common.Fail(c, http.StatusUnauthorized, common.ErrUnauthorized.Message)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID 取得目前使用者 ID
func UserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}

// IssueToken 簽發權杖，cmd/token 與測試使用
func IssueToken(secret string, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
