package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"appfab/internal/ai"
	appsvc "appfab/internal/app"
	"appfab/internal/bootstrap"
	"appfab/internal/cache"
	"appfab/internal/pkg/passhash"
	"appfab/internal/platform/rabbitmq"
	"appfab/internal/repository"
	"appfab/internal/transport/http/handler"
	"appfab/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	appRepo := repository.NewAppRepository(app.MySQL)

	authService := appsvc.NewAuthService(
		userRepo,
		passhash.New(app.Config.Auth.PasswordScheme),
		app.Config.App.SignupCredits,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)

	llmCfg := ai.CodegenConfig{
		BaseURL:     app.Config.LLM.BaseURL,
		APIKey:      app.Config.LLM.APIKey,
		Model:       app.Config.LLM.Model,
		Temperature: app.Config.LLM.Temperature,
		MaxTokens:   app.Config.LLM.MaxTokens,
	}
	generatorService := appsvc.NewGeneratorService(
		userRepo,
		appRepo,
		ai.NewCodegenClient(time.Duration(app.Config.LLM.TimeoutSeconds)*time.Second),
		rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.GenerationEventQueue),
		cache.NewGalleryCache(app.Redis, time.Duration(app.Config.Redis.GalleryTTLSeconds)*time.Second),
		llmCfg,
	)

	authHandler := handler.NewAuthHandler(authService)
	appsHandler := handler.NewAppsHandler(generatorService)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	accountGroup := v1.Group("/account")
	accountGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	accountGroup.POST("/upgrade", authHandler.UpgradeToPro)

	appsGroup := v1.Group("/apps")
	appsGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	appsGroup.POST("/generate", appsHandler.Generate)
	appsGroup.GET("", appsHandler.ListMine)
	appsGroup.GET("/:id/download", appsHandler.Download)

	v1.GET("/gallery", appsHandler.Gallery)

	return router
}
