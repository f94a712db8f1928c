package main

import (
	"net/http"
	"time"

	"fittrack/backend/internal/auth"
	"fittrack/backend/internal/config"
	"fittrack/backend/internal/database"
	"fittrack/backend/internal/handler"
	"fittrack/backend/internal/middleware"
	"fittrack/backend/internal/push"
	"fittrack/backend/internal/repository"
	"fittrack/backend/internal/service"
	"fittrack/backend/pkg/logger"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "fittrack/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           FitTrack API
// @version         1.0
// @description     This is the API for the FitTrack service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", err)
	}

	logger.Init(cfg.LogLevel, cfg.AppEnv)
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL, cfg.AppEnv)
	if err != nil {
		logger.Fatal("failed to connect to database", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", err)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	friendRepo := repository.NewFriendRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	notifier := service.NewNotifier(notificationRepo, push.NewExpoClient(cfg.ExpoPushURL))
	friendshipSvc := service.NewFriendshipService(friendRepo, notifier)
	messageSvc := service.NewMessageService(messageRepo, notifier)
	feedSvc := service.NewFeedService(postRepo, notifier)

	// Handlers
	authHandler := handler.NewAuthHandler(db, cfg.JWTSecret)
	userHandler := handler.NewUserHandler(db, friendRepo)
	profileHandler := handler.NewProfileHandler(db)
	friendHandler := handler.NewFriendHandler(db, friendshipSvc)
	messageHandler := handler.NewMessageHandler(db, messageSvc)
	postHandler := handler.NewPostHandler(db, feedSvc)
	healthLogHandler := handler.NewHealthLogHandler(db)
	progressPicHandler := handler.NewProgressPicHandler(db)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes (IP rate limit only; no user identity yet)
		authRoutes := apiV1.Group("/auth")
		authRoutes.Use(rateLimiter.Handler())
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", auth.Middleware(cfg.JWTSecret), authHandler.Me)
		}

		// The rate limiter runs after auth so per-user limits apply.
		protected := apiV1.Group("")
		protected.Use(auth.Middleware(cfg.JWTSecret), rateLimiter.Handler())
		{
			// User discovery
			userRoutes := protected.Group("/users")
			{
				userRoutes.GET("/search", userHandler.Search)
				userRoutes.GET("/suggested", userHandler.Suggested)
				userRoutes.GET("/:id", userHandler.GetByID)
			}

			// Own profile
			profileRoutes := protected.Group("/profile")
			{
				profileRoutes.GET("", profileHandler.Get)
				profileRoutes.PATCH("", profileHandler.Update)
				profileRoutes.GET("/energy", profileHandler.Energy)
			}

			// Friendships
			friendRoutes := protected.Group("/friends")
			{
				friendRoutes.GET("", friendHandler.List)
				friendRoutes.GET("/requests", friendHandler.Requests)
				friendRoutes.POST("/requests", friendHandler.SendRequest)
				friendRoutes.POST("/requests/:id", friendHandler.Respond)
				friendRoutes.DELETE("/:userId", friendHandler.Unfriend)
			}

			// Direct messages
			messageRoutes := protected.Group("/messages")
			{
				messageRoutes.GET("", messageHandler.Thread)
				messageRoutes.POST("", messageHandler.Send)
				messageRoutes.DELETE("", messageHandler.Clear)
				messageRoutes.GET("/conversations", messageHandler.Conversations)
				messageRoutes.GET("/unread-count", messageHandler.UnreadCount)
			}

			// Feed
			postRoutes := protected.Group("/posts")
			{
				postRoutes.GET("", postHandler.List)
				postRoutes.POST("", postHandler.Create)
				postRoutes.DELETE("/:id", postHandler.Delete)
				postRoutes.POST("/:id/like", postHandler.Like)
				postRoutes.POST("/:id/comments", postHandler.Comment)
			}

			// Daily health logs
			healthRoutes := protected.Group("/health-logs")
			{
				healthRoutes.GET("", healthLogHandler.List)
				healthRoutes.POST("", healthLogHandler.Upsert)
				healthRoutes.DELETE("/:id", healthLogHandler.Delete)
			}

			// Progress pics
			picRoutes := protected.Group("/progress-pics")
			{
				picRoutes.GET("", progressPicHandler.List)
				picRoutes.POST("", progressPicHandler.Create)
				picRoutes.DELETE("/:id", progressPicHandler.Delete)
			}

			// Notifications
			notificationRoutes := protected.Group("/notifications")
			{
				notificationRoutes.GET("", notificationHandler.List)
				notificationRoutes.GET("/unread-count", notificationHandler.UnreadCount)
				notificationRoutes.PATCH("/:id/read", notificationHandler.MarkRead)
				notificationRoutes.POST("/read-all", notificationHandler.ReadAll)
			}
			protected.POST("/push/token", notificationHandler.RegisterToken)
		}
	}

	logger.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	logger.Info("swagger UI available", "url", "http://localhost:"+cfg.Port+"/swagger/index.html")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", err)
	}
}
