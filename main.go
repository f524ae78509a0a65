package main

import (
	"net/http"
	"os"

	"forum-api/config"
	"forum-api/handlers"
	"forum-api/helper"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/repositories"
	"forum-api/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

func newHTTPHelper() *helper.HTTPHelper {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		logrus.WithError(err).Fatal("failed to register validation translations")
	}

	return &helper.HTTPHelper{Validate: validate, Translator: translator}
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	permissionRepo := repositories.NewPermissionRepository(db)
	moderationRepo := repositories.NewModerationRepository(db)
	topicRepo := repositories.NewTopicRepository(db)
	postRepo := repositories.NewPostRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	wikiRepo := repositories.NewWikiRepository(db)
	reactionRepo := repositories.NewReactionRepository(db)
	badgeRepo := repositories.NewBadgeRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	permissionService := services.NewPermissionService(userRepo, permissionRepo)
	moderationService := services.NewModerationService(userRepo, moderationRepo, permissionService)
	notificationService := services.NewNotificationService(notificationRepo, followRepo, userRepo)
	topicService := services.NewTopicService(topicRepo, tagRepo, categoryRepo, followRepo, userRepo, permissionService)
	postService := services.NewPostService(postRepo, topicRepo, permissionService, notificationService)
	tagService := services.NewTagService(tagRepo, categoryRepo, permissionService)
	reportService := services.NewReportService(reportRepo, postRepo, userRepo, notificationService)
	messageService := services.NewMessageService(messageRepo, userRepo, notificationService)
	wikiService := services.NewWikiService(wikiRepo)
	reactionService := services.NewReactionService(reactionRepo, postRepo, permissionService)
	badgeService := services.NewBadgeService(badgeRepo, userRepo, permissionService)

	// Initialize handlers
	httpHelper := newHTTPHelper()
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	userHandler := handlers.NewUserHandler(permissionService, topicService)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	topicHandler := handlers.NewTopicHandler(topicService)
	postHandler := handlers.NewPostHandler(postService)
	tagHandler := handlers.NewTagHandler(tagService)
	reportHandler := handlers.NewReportHandler(reportService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	messageHandler := handlers.NewMessageHandler(messageService)
	wikiHandler := handlers.NewWikiHandler(wikiService)
	reactionHandler := handlers.NewReactionHandler(reactionService)
	badgeHandler := handlers.NewBadgeHandler(badgeService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Authenticated read routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(userRepo, moderationService))
		{
			protected.GET("/profile", authHandler.GetProfile)

			protected.GET("/topics", topicHandler.GetList)
			protected.GET("/topics/:id", topicHandler.Get)
			protected.GET("/topics/:id/posts", postHandler.GetListByTopic)
			protected.GET("/posts/:id", postHandler.Get)
			protected.GET("/posts/:id/reactions", reactionHandler.GetListByPost)

			protected.GET("/tags", tagHandler.GetTags)
			protected.GET("/tags/:id", tagHandler.GetTag)
			protected.GET("/categories", tagHandler.GetCategories)
			protected.GET("/reactions", reactionHandler.GetAll)
			protected.GET("/badges", badgeHandler.GetAll)
			protected.GET("/users/:id/badges", badgeHandler.GetListByUser)
			protected.GET("/users/:id/permissions", userHandler.GetPermissions)
			protected.GET("/users/:id/moderation-history", moderationHandler.History)

			protected.GET("/reports", reportHandler.GetList)

			protected.GET("/notifications", notificationHandler.GetList)
			protected.GET("/notifications/unread-count", notificationHandler.CountUnread)

			protected.GET("/messages/:id", messageHandler.GetConversation)

			protected.GET("/wiki", wikiHandler.GetList)
			protected.GET("/wiki/:slug", wikiHandler.Get)
			protected.GET("/wiki/:slug/history", wikiHandler.GetHistory)
		}

		// Mutating routes: banned callers are rejected uniformly before the
		// handler runs.
		mutating := v1.Group("/")
		mutating.Use(middleware.AuthMiddleware(userRepo, moderationService), middleware.RequireNotBanned())
		{
			mutating.PUT("/profile", authHandler.UpdateProfile)

			mutating.POST("/topics", topicHandler.Create)
			mutating.DELETE("/topics/:id", topicHandler.Delete)
			mutating.PUT("/topics/:id/tags", topicHandler.SetTags)
			mutating.POST("/topics/:id/follow", topicHandler.Follow)
			mutating.DELETE("/topics/:id/follow", topicHandler.Unfollow)

			mutating.POST("/posts", postHandler.Create)
			mutating.PUT("/posts/:id", postHandler.Edit)
			mutating.DELETE("/posts/:id", postHandler.Delete)
			mutating.POST("/posts/:id/reactions/:reaction_id", reactionHandler.AddToPost)
			mutating.DELETE("/posts/:id/reactions/:reaction_id", reactionHandler.RemoveFromPost)

			mutating.POST("/tags", tagHandler.CreateTag)
			mutating.PUT("/tags/:id", tagHandler.UpdateTag)
			mutating.DELETE("/tags/:id", tagHandler.DeleteTag)
			mutating.POST("/categories", tagHandler.CreateCategory)
			mutating.DELETE("/categories/:id", tagHandler.DeleteCategory)

			mutating.POST("/reactions", reactionHandler.Create)
			mutating.DELETE("/reactions/:id", reactionHandler.Delete)

			mutating.POST("/badges", badgeHandler.Create)
			mutating.DELETE("/badges/:id", badgeHandler.Delete)
			mutating.POST("/users/:id/badges/:badge_id", badgeHandler.Award)
			mutating.DELETE("/users/:id/badges/:badge_id", badgeHandler.Revoke)

			mutating.POST("/users/:id/follow", userHandler.Follow)
			mutating.DELETE("/users/:id/follow", userHandler.Unfollow)

			mutating.POST("/users/:id/warn", moderationHandler.Warn)
			mutating.POST("/users/:id/mute", moderationHandler.Mute)
			mutating.POST("/users/:id/ban", moderationHandler.Ban)
			mutating.POST("/users/:id/unban", moderationHandler.Unban)

			mutating.POST("/reports", reportHandler.File)
			mutating.PUT("/reports/:id/status", reportHandler.SetStatus)

			mutating.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			mutating.POST("/notifications/read-all", notificationHandler.MarkAllRead)

			mutating.POST("/messages", messageHandler.Send)
			mutating.PUT("/messages/:id/read", messageHandler.MarkConversationRead)

			mutating.POST("/wiki", wikiHandler.Create)
			mutating.PUT("/wiki/:slug", wikiHandler.Update)
			mutating.DELETE("/wiki/:slug", wikiHandler.Delete)
			mutating.POST("/wiki/:slug/rollback/:history_id", wikiHandler.Rollback)
		}

		// Admin-only routes
		admin := v1.Group("/")
		admin.Use(middleware.AuthMiddleware(userRepo, moderationService), middleware.RequireRole(models.RoleAdmin))
		{
			admin.PUT("/users/:id/role", userHandler.SetRole)
			admin.PUT("/users/:id/permissions", userHandler.SetPermissions)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithField("port", port).Info("starting server")
	if err := router.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
