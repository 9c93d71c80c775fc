package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"project/api"
	"project/config"
	"project/database"
	"project/middleware"
	"project/models"
	"project/repository"
	"project/services"

	"gorm.io/gorm"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	// Auto-migrate database schema
	runMigrations(db)

	// Initialize Repositories
	domainRepo := repository.NewDomainRepository(db)
	contentRepo := repository.NewContentRepository(db)
	journeyRepo := repository.NewJourneyRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Seed the fixed domain taxonomy on first run
	if err := domainRepo.EnsureDefaults(services.DefaultDomains()); err != nil {
		log.Fatalf("FATAL: [Main] Failed to seed default domains: %v", err)
	}

	// Initialize Services
	importerService := services.NewImporterService(domainRepo, contentRepo)
	generationService := services.NewGenerationService(config.AppConfig.OpenAI)
	log.Println("INFO: [Main] Services initialized.")

	// Initialize API Handler with all dependencies
	apiHandler := api.NewAPIHandler(
		domainRepo,
		contentRepo,
		journeyRepo,
		importerService,
		generationService,
	)
	log.Println("INFO: [Main] API Handler initialized.")

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	// Register routes
	registerRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	// Start the server
	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.Domain{},
		&models.ContentItem{},
		&models.ContentDetails{},
		&models.Journey{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler) {
	// API route group
	apiGroup := r.Group("/api")
	{
		// Domain taxonomy
		apiGroup.GET("/domains", handler.ListDomainsHandler)
		apiGroup.POST("/domains", handler.CreateDomainHandler)
		apiGroup.PATCH("/domains/:id", handler.UpdateDomainHandler)
		apiGroup.DELETE("/domains/:id", handler.DeleteDomainHandler)

		// Content items + details
		apiGroup.GET("/content", handler.ListContentHandler)
		apiGroup.POST("/content", handler.CreateContentHandler)
		apiGroup.GET("/content/:id", handler.GetContentHandler)
		apiGroup.PUT("/content/:id", handler.UpdateContentHandler)
		apiGroup.PATCH("/content/:id", handler.PatchContentHandler)
		apiGroup.DELETE("/content/:id", handler.DeleteContentHandler)

		// Journeys
		apiGroup.GET("/journeys", handler.ListJourneysHandler)
		apiGroup.POST("/journeys", handler.CreateJourneyHandler)
		apiGroup.GET("/journeys/:id", handler.GetJourneyHandler)
		apiGroup.PATCH("/journeys/:id", handler.PatchJourneyHandler)
		apiGroup.DELETE("/journeys/:id", handler.DeleteJourneyHandler)

		// Dashboard stats
		apiGroup.GET("/stats", handler.StatsHandler)

		// Bulk ingestion pipeline
		apiGroup.POST("/import", handler.ImportHandler)
		apiGroup.POST("/generate", handler.GenerateHandler)
	}
}
