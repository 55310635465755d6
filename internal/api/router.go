package api

import (
	"time"

	comboHandler "recipe-generator-backend/internal/api/handlers/combo"
	favoriteHandler "recipe-generator-backend/internal/api/handlers/favorite"
	"recipe-generator-backend/internal/api/handlers/health"
	ingredientHandler "recipe-generator-backend/internal/api/handlers/ingredient"
	recipeHandler "recipe-generator-backend/internal/api/handlers/recipe"
	shoppingHandler "recipe-generator-backend/internal/api/handlers/shopping"
	"recipe-generator-backend/internal/api/middleware"
	"recipe-generator-backend/internal/core/catalog"
	"recipe-generator-backend/internal/core/combo"
	"recipe-generator-backend/internal/core/favorite"
	"recipe-generator-backend/internal/core/recipe"
	"recipe-generator-backend/internal/core/shopping"
	"recipe-generator-backend/internal/infrastructure/config"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services 路由需要的各項服務
type Services struct {
	DB       *gorm.DB
	Model    string
	Catalog  *catalog.Service
	Recipe   *recipe.Service
	Shopping *shopping.Service
	Favorite *favorite.Service
	Combo    *combo.Service
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 健康檢查路由
	healthHandler := health.NewHandler(svc.DB, svc.Catalog, cfg.App.Version, svc.Model)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Required))

	recipes := recipeHandler.NewHandler(svc.Recipe)
	recipeGroup := api.Group("/recipes")
	{
		recipeGroup.POST("/generate", recipes.Generate)
		recipeGroup.GET("/:id", recipes.Get)
		recipeGroup.DELETE("/:id", recipes.Delete)
	}

	ingredients := ingredientHandler.NewHandler(svc.Catalog)
	ingredientGroup := api.Group("/ingredients")
	{
		ingredientGroup.GET("", ingredients.List)
		ingredientGroup.GET("/search", ingredients.Search)
		ingredientGroup.GET("/:id", ingredients.Get)
	}

	shoppingList := shoppingHandler.NewHandler(svc.Shopping)
	shoppingGroup := api.Group("/shopping-list")
	{
		shoppingGroup.POST("", shoppingList.Add)
		shoppingGroup.GET("", shoppingList.List)
		shoppingGroup.DELETE("", shoppingList.Clear)
		shoppingGroup.PUT("/:id/purchased", shoppingList.SetPurchased)
		shoppingGroup.DELETE("/:id", shoppingList.Delete)
	}

	favorites := favoriteHandler.NewHandler(svc.Favorite)
	favoriteGroup := api.Group("/favorites")
	{
		favoriteGroup.GET("", favorites.List)
		favoriteGroup.POST("/:recipeId", favorites.Add)
		favoriteGroup.DELETE("/:recipeId", favorites.Remove)
		favoriteGroup.GET("/:recipeId/status", favorites.Status)
	}

	combos := comboHandler.NewHandler(svc.Combo)
	comboGroup := api.Group("/combos")
	{
		comboGroup.POST("", combos.Save)
		comboGroup.GET("", combos.List)
		comboGroup.PUT("/:id", combos.Update)
		comboGroup.DELETE("/:id", combos.Delete)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("auth_required", cfg.Auth.Required),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
