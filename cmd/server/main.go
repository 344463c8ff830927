package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Docteur-Parfait/os228/internal/handlers"
	"github.com/Docteur-Parfait/os228/internal/middleware"
	"github.com/Docteur-Parfait/os228/internal/models"
	"github.com/Docteur-Parfait/os228/internal/repositories"
	"github.com/Docteur-Parfait/os228/internal/services"
	"github.com/Docteur-Parfait/os228/internal/workers"
	"github.com/Docteur-Parfait/os228/pkg/cache"
	"github.com/Docteur-Parfait/os228/pkg/config"
	"github.com/Docteur-Parfait/os228/pkg/database"
	"github.com/Docteur-Parfait/os228/pkg/logger"
	"github.com/gin-gonic/gin"
)

// minRequestDelay is the floor on the pause between consecutive GitHub
// calls during a batch sync, to stay clear of abuse protection.
const minRequestDelay = 100 * time.Millisecond

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init()
	gin.SetMode(cfg.Server.Mode)

	// Initialize database (favorites store)
	if err := database.Init(cfg.Storage.DatabasePath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	store := cache.New()
	cacheTTL := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	failureTTL := time.Duration(cfg.Cache.FailureTTLMinutes) * time.Minute

	requestDelay := time.Duration(cfg.Sync.RequestDelayMS) * time.Millisecond
	if requestDelay < minRequestDelay {
		requestDelay = minRequestDelay
	}

	githubService := services.NewGitHubService(
		cfg.GitHub.Token,
		time.Duration(cfg.GitHub.RequestTimeout)*time.Second,
	)

	projectRepo := repositories.NewProjectRepository(cfg.Storage.ProjectsFile)
	projectService := services.NewProjectService(
		projectRepo, githubService, store, requestDelay, cacheTTL, failureTTL,
	)

	contributorService := services.NewContributorService(
		githubService, store,
		services.RepoRef{Owner: cfg.GitHub.Owner, Repo: cfg.GitHub.Repo},
		models.DefaultContributors,
		cacheTTL, failureTTL,
	)

	favoriteRepo := repositories.NewFavoriteRepository(database.DB)
	favoriteService := services.NewFavoriteService(favoriteRepo)
	exportService := services.NewExportService()

	// Initialize worker manager
	workerManager := workers.NewWorkerManager()
	if cfg.Sync.IntervalMinutes > 0 {
		interval := time.Duration(cfg.Sync.IntervalMinutes) * time.Minute
		workerManager.Register(workers.NewSyncWorker("sync-1", projectService, interval))
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router, projectService, contributorService, favoriteService, exportService)

	// Start workers
	workerManager.StartAll()
	defer workerManager.StopAll()

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	logger.Info("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	projectService *services.ProjectService,
	contributorService *services.ContributorService,
	favoriteService *services.FavoriteService,
	exportService *services.ExportService,
) {
	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(projectService, exportService)
	githubHandler := handlers.NewGitHubHandler(projectService, contributorService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	healthHandler := handlers.NewHealthHandler()

	api := router.Group("/api")
	{
		api.GET("/projects", projectHandler.ListProjects)
		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects/export", projectHandler.ExportProjects)

		api.GET("/github", githubHandler.Preview)
		api.GET("/sync-github", githubHandler.SyncUsage)
		api.POST("/sync-github", githubHandler.Sync)
		api.GET("/contributors", githubHandler.Contributors)

		api.GET("/favorites", favoriteHandler.ListFavorites)
		api.POST("/favorites", favoriteHandler.AddFavorite)
		api.DELETE("/favorites/:project_id", favoriteHandler.RemoveFavorite)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
