package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ekovaleva/goals-api/internal/config"
	"github.com/ekovaleva/goals-api/internal/constants"
	"github.com/ekovaleva/goals-api/internal/database"
	"github.com/ekovaleva/goals-api/internal/handlers"
	"github.com/ekovaleva/goals-api/internal/middleware"
	"github.com/ekovaleva/goals-api/internal/repository"
	"github.com/ekovaleva/goals-api/internal/services"
	"github.com/ekovaleva/goals-api/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logrus.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Sessions invalidate on restart when no secret is configured.
	sessionSecret := cfg.SessionSecret
	if sessionSecret == "" {
		var err error
		sessionSecret, err = utils.GenerateSessionSecret()
		if err != nil {
			logrus.Fatalf("Failed to generate session secret: %v", err)
		}
		logrus.Warn("SESSION_SECRET not set, generated an ephemeral secret")
	}

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"", // username (empty for default user)
		"", // password (empty = no password)
		[]byte(sessionSecret),
	)
	if err != nil {
		logrus.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Redis client for the profile cache
	cache := goredis.NewClient(&goredis.Options{
		Addr: redisAddr,
	})

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	boardService := services.NewBoardService(boardRepo, userRepo)
	categoryService := services.NewCategoryService(categoryRepo, boardRepo)
	goalService := services.NewGoalService(goalRepo, categoryRepo, boardRepo)
	commentService := services.NewCommentService(commentRepo, goalRepo, boardRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cache)
	boardHandler := handlers.NewBoardHandler(boardService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	goalHandler := handlers.NewGoalHandler(goalService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Goals API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(), authHandler.Logout)
			auth.GET("/profile", middleware.RequireAuth(), authHandler.GetProfile)
			auth.PATCH("/profile", middleware.RequireAuth(), authHandler.UpdateProfile)
			auth.DELETE("/profile", middleware.RequireAuth(), authHandler.DeleteProfile)
			auth.PATCH("/password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth())
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("", boardHandler.ListBoards)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.PATCH("/:id", boardHandler.UpdateBoard)
			boards.DELETE("/:id", boardHandler.DeleteBoard)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(middleware.RequireAuth())
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.PATCH("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		// Goal routes (protected)
		goals := api.Group("/goals")
		goals.Use(middleware.RequireAuth())
		{
			goals.POST("", goalHandler.CreateGoal)
			goals.GET("", goalHandler.ListGoals)
			goals.GET("/:id", goalHandler.GetGoal)
			goals.PATCH("/:id", goalHandler.UpdateGoal)
			goals.DELETE("/:id", goalHandler.DeleteGoal)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(middleware.RequireAuth())
		{
			comments.POST("", commentHandler.CreateComment)
			comments.GET("", commentHandler.ListComments)
			comments.GET("/:id", commentHandler.GetComment)
			comments.PATCH("/:id", commentHandler.UpdateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}
	}

	// Start server
	logrus.Infof("Server starting on :%s", cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
