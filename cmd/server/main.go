package main

import (
	"github.com/gin-gonic/gin"
	"github.com/mrnoori/projecthub/internal/auth"
	"github.com/mrnoori/projecthub/internal/config"
	"github.com/mrnoori/projecthub/internal/constants"
	"github.com/mrnoori/projecthub/internal/database"
	"github.com/mrnoori/projecthub/internal/handlers"
	"github.com/mrnoori/projecthub/internal/logger"
	"github.com/mrnoori/projecthub/internal/middleware"
	"github.com/mrnoori/projecthub/internal/repository"
	"github.com/mrnoori/projecthub/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	log := logger.Init(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.WithError(err).Fatal("Failed to create indexes")
	}

	// Login rate limiting degrades to a pass-through when Redis is absent
	middleware.InitRateLimiter(cfg.RedisAddr, cfg.RedisPassword)

	tokens := auth.NewTokenService(cfg.JWTSecret, constants.SessionTTL)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, activityRepo)
	collabService := services.NewCollaborationService(userRepo, taskRepo, commentRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	projectHandler := handlers.NewProjectHandler(projectService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService, collabService)
	collabHandler := handlers.NewCollaborationHandler(collabService, taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.DecodeIdentity(tokens))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Page routes: anonymous visitors get redirected to the landing page
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"page": "landing"})
	})
	r.GET("/dashboard", middleware.RequireAuthPage(), func(c *gin.Context) {
		identity, _ := middleware.GetIdentity(c)
		c.JSON(200, gin.H{
			"page":     "dashboard",
			"username": identity.Username,
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.RateLimit(constants.LoginRateLimitMax, constants.LoginRateLimitWindow))
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/tasks", projectHandler.ListProjectTasks)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/assignments", taskHandler.AssignUser)
			tasks.GET("/:id/assignments", taskHandler.ListAssignments)
			tasks.POST("/:id/comments", collabHandler.AddComment)
			tasks.GET("/:id/comments", collabHandler.ListComments)
			tasks.GET("/:id/activity", taskHandler.ListActivity)
			tasks.POST("/:id/activity", taskHandler.RecordActivity)
		}

		// Collaborator routes (protected)
		collaborators := api.Group("/collaborators")
		collaborators.Use(middleware.RequireAuth())
		{
			collaborators.POST("", collabHandler.AddCollaborator)
			collaborators.GET("", collabHandler.ListCollaborators)
			collaborators.DELETE("/:id", collabHandler.RemoveCollaborator)
		}

		// Per-user listings (protected)
		me := api.Group("/me")
		me.Use(middleware.RequireAuth())
		{
			me.GET("/comments", collabHandler.ListMyComments)
			me.GET("/assignments", collabHandler.ListMyAssignments)
			me.GET("/activity", collabHandler.ListMyActivity)
		}
	}

	// Start server
	log.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
