// File: /main.go
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"eventhub-api/config"
	"eventhub-api/database"
	"eventhub-api/jobs"
	"eventhub-api/middleware"
	"eventhub-api/routes"
	"eventhub-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		logrus.WithError(err).Warn("Failed to seed database")
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Shared services
	cache := services.NewCacheService(cfg.RedisURL)
	emailService := services.NewEmailService(cfg)
	provider := services.NewPaymentProvider(cfg)

	// Background lifecycle job: completes past bookings/events, expires
	// abandoned payment intents
	lifecycleJob := jobs.NewBookingLifecycleJob(db, cfg.LifecycleInterval, cfg.IntentTTL)
	lifecycleJob.Start()
	defer lifecycleJob.Stop()

	// Create router
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(300, 30))
	router.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, cache, emailService, provider)

	// Start server
	logrus.Infof("Starting EventHub API server on port %s", cfg.Port)
	logrus.Infof("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
