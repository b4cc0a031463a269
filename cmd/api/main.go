package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/infradesk/infra-desk/docs"
	"github.com/infradesk/infra-desk/internal/app"
	"github.com/infradesk/infra-desk/internal/auth"
	"github.com/infradesk/infra-desk/internal/config"
	"github.com/infradesk/infra-desk/internal/database"
	"github.com/infradesk/infra-desk/internal/http/handler"
	"github.com/infradesk/infra-desk/internal/http/middleware"
	"github.com/infradesk/infra-desk/internal/http/router"
	"github.com/infradesk/infra-desk/internal/jobs"
	"github.com/infradesk/infra-desk/internal/logger"
	"github.com/infradesk/infra-desk/internal/storage"
	"go.uber.org/zap"
)

// @title Infra Desk API
// @version 1.0
// @description Partner, client and infrastructure inventory with issue tracking, global search and CSV export

// @contact.name Infra Desk Operations

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description HS256 JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description Admin API key
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if host := os.Getenv("SWAGGER_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In staging/production secrets may come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if cfg.ApiKey.Value == "" && cfg.JWT.Secret == "" {
		log.Warn("Neither ADMIN_API_KEY nor JWT_SECRET is set; every authenticated route will answer 401")
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		log.Info("Database schema auto-migrated")
	}

	repos := app.NewRepositories(db)
	svc := app.NewServices(repos, cfg, nil, log)

	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		handler.NewPartnerHandler(svc.Partners, log),
		handler.NewClientHandler(svc.Clients, log),
		handler.NewProjectHandler(svc.Projects, log),
		handler.NewEnvironmentHandler(svc.Environments, log),
		handler.NewServerHandler(svc.Servers, log),
		handler.NewResourceHandler(svc.Resources, log),
		handler.NewUserHandler(svc.Users, log),
		handler.NewProfileHandler(svc.Users, log),
		handler.NewIssueHandler(svc.Issues, svc.Activities, log),
		handler.NewActivityHandler(svc.Activities, log),
		handler.NewSearchHandler(svc.Search, log),
		handler.NewExportHandler(svc.Export, log),
	)

	// Optional export archive job
	var scheduler *jobs.Scheduler
	if cfg.Export.Archive.Enabled {
		archiveStore, err := storage.NewStorage(ctx, &cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterExportArchiveJob(
			scheduler,
			svc.Export,
			archiveStore,
			cfg.Export.Archive.Prefix,
			log,
			cfg.Export.Archive.Cron,
		); err != nil {
			return fmt.Errorf("failed to register export archive job: %w", err)
		}
		scheduler.Start()
		log.Info("Scheduler started with export archive job",
			zap.String("cron_expr", cfg.Export.Archive.Cron),
			zap.String("prefix", cfg.Export.Archive.Prefix),
		)
	} else {
		log.Info("Export archive disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		log.Info("Server stopped gracefully")
	}

	return nil
}
