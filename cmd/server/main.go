package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	apihttp "boardinghouse-backend/internal/api/http"
	"boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/logger"
	"boardinghouse-backend/internal/repository/postgres"
	"boardinghouse-backend/internal/security"
	"boardinghouse-backend/internal/service"
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
	logger.Info("Starting Boarding House API Server...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize token manager
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// Initialize Services
	emailService := service.NewEmailService(cfg.SendGrid)
	notificationService := service.NewNotificationService(store.NotificationRepository)

	roomService := service.NewRoomService(
		store.RoomRepository,
		store.BoarderRepository,
		notificationService,
	)

	boarderService := service.NewBoarderService(
		store.BoarderRepository,
		store.RoomRepository,
		store.PaymentRepository,
		emailService,
		notificationService,
	)

	paymentService := service.NewPaymentService(
		store.PaymentRepository,
		store.BoarderRepository,
		emailService,
		notificationService,
	)

	utilityService := service.NewUtilityService(
		store.UtilityRepository,
		store.RoomRepository,
		notificationService,
		cfg.Billing.DefaultSummaryMonths,
	)

	reportService := service.NewReportService(
		store.RoomRepository,
		store.BoarderRepository,
		store.UtilityRepository,
	)

	authService := service.NewAuthService(
		store.UserRepository,
		store.BoarderRepository,
		tokenManager,
	)

	// Build the HTTP router
	router := apihttp.NewRouter(apihttp.Services{
		Rooms:         roomService,
		Boarders:      boarderService,
		Payments:      paymentService,
		Utilities:     utilityService,
		Reports:       reportService,
		Auth:          authService,
		Notifications: notificationService,
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
