package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "soundgood-backend/internal/api/http"
	"soundgood-backend/internal/config"
	"soundgood-backend/internal/jobs"
	"soundgood-backend/internal/logger"
	"soundgood-backend/internal/repository/postgres"
	"soundgood-backend/internal/scheduler"
	"soundgood-backend/internal/security"
	"soundgood-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Soundgood Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// The store pings the database and prepares every statement up front; a
	// failure here means the process must not serve requests.
	store, err := postgres.NewStore(context.Background(), db)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()
	logger.Info("Database connection established, statements prepared")

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	rentalSvc := service.NewRentalService(store, store, store, cfg.Rental.DefaultPricingID)

	// Initialize HTTP handlers
	rentalHandler := httpapi.NewRentalHandler(rentalSvc)
	router := httpapi.NewRouter(rentalHandler, tokenManager)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(db, emailSvc, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
