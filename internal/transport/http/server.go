package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "userhub/internal/app"
	"userhub/internal/bootstrap"
	"userhub/internal/cache"
	"userhub/internal/platform/rabbitmq"
	"userhub/internal/repository"
	"userhub/internal/transport/http/handler"
	"userhub/internal/transport/http/middleware"
	"userhub/internal/validation"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	userCache := cache.NewUserCache(app.Redis, time.Duration(app.Config.Redis.UserCacheTTLSeconds)*time.Second)
	authService := appsvc.NewAuthService(
		userRepo,
		userCache,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireHour)*time.Hour,
	)

	contactPublisher := rabbitmq.NewContactPublisher(app.MQConn, app.Config.RabbitMQ.ContactPersistQueue)
	contactService := appsvc.NewContactService(contactPublisher)

	validate := validation.New()
	authHandler := handler.NewAuthHandler(authService, validate)
	contactHandler := handler.NewContactHandler(contactService, validate)
	adminHandler := handler.NewAdminHandler(authService)

	authGate := middleware.AuthJWT(app.Config.Auth.JWTSecret, authService)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/user", authGate, authHandler.CurrentUser)

	formGroup := api.Group("/form")
	formGroup.POST("/contact", contactHandler.Submit)

	adminGroup := api.Group("/admin")
	adminGroup.Use(authGate, middleware.AdminOnly())
	adminGroup.GET("/users", adminHandler.ListUsers)

	return router
}
