package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/audit"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/auth"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/bootstrap"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/events"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/handler"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/report"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/repository"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/scope"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/service"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/settings"
	"github.com/clockwerk/clockwerk-backend/pkg/config"
	"github.com/clockwerk/clockwerk-backend/pkg/database"
	"github.com/clockwerk/clockwerk-backend/pkg/httputil"
	"github.com/clockwerk/clockwerk-backend/pkg/i18n"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
	"github.com/clockwerk/clockwerk-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("timesheet-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("timesheet-server", cfg.Server.Environment)
	log.Info().Msg("starting timesheet server")

	// Connect to the document store
	db, err := database.New(&cfg.Mongo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to document store")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db.Close(ctx)
	}()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewTimesheetEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize repositories
	entryRepo := repository.NewTimeEntryRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Core collaborators
	settingsProvider := settings.NewProvider(settingsRepo)
	scopeResolver := scope.NewResolver(projectRepo)
	reportBuilder := report.NewBuilder(scopeResolver, settingsProvider)
	auditLog := audit.NewLogger(transactionRepo, settingsProvider, log)
	tokenManager := auth.NewTokenManager(&cfg.JWT)

	// Initialize services
	reportService := service.NewReportService(reportBuilder, entryRepo, userRepo, settingsProvider, auditLog, publisher, log)
	entryService := service.NewTimeEntryService(entryRepo, auditLog, publisher, log)
	authService := service.NewAuthService(userRepo, tokenManager, log)
	transactionService := service.NewTransactionService(transactionRepo, log)
	bootstrapper := bootstrap.New(userRepo, projectRepo, entryRepo, tokenManager, publisher, log)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(reportService, log)
	entryHandler := handler.NewTimeEntryHandler(entryService, log)
	authHandler := handler.NewAuthHandler(authService, bootstrapper, log)
	transactionHandler := handler.NewTransactionHandler(transactionService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(i18n.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "timesheet-server",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// Public endpoints
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/demo", authHandler.Demo)
	})

	// Authenticated endpoints; the services gate per operation
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(tokenManager, userRepo))

		r.Route("/reports", func(r chi.Router) {
			r.Post("/total-hours", reportHandler.TotalHours)
			r.Post("/daily-hours", reportHandler.DailyHours)
			r.Post("/working-time", reportHandler.WorkingTime)
			r.Post("/time-entries", reportHandler.TimeEntries)
		})

		r.Route("/time-entries", func(r chi.Router) {
			r.Post("/", entryHandler.Save)
			r.Delete("/{id}", entryHandler.Delete)
			r.Get("/tasks/suggest", entryHandler.SuggestTasks)
		})

		r.Get("/admin/transactions", transactionHandler.List)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
