package main

import (
	"fmt"

	"github.com/infradesk/infra-desk/internal/app"
	"github.com/infradesk/infra-desk/internal/config"
	"github.com/infradesk/infra-desk/internal/database"
	"github.com/infradesk/infra-desk/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the lazily built dependencies shared by the subcommands.
// Tests populate the fields directly.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *gorm.DB
	Services *app.Services
}

// Init loads configuration and the logger once
func (a *App) Init() error {
	if a.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.Config = cfg
	}
	if a.Logger == nil {
		log, err := logger.NewLogger(&a.Config.Logging, &a.Config.App)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		a.Logger = log
	}
	return nil
}

// Svc connects to the database on first use
func (a *App) Svc() (*app.Services, error) {
	if a.Services != nil {
		return a.Services, nil
	}
	if err := a.Init(); err != nil {
		return nil, err
	}
	if a.DB == nil {
		db, err := database.NewDatabase(&a.Config.Database, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if a.Config.Database.AutoMigrate {
			if err := database.AutoMigrate(db); err != nil {
				return nil, fmt.Errorf("failed to auto-migrate: %w", err)
			}
		}
		a.DB = db
	}
	a.Services = app.NewServices(app.NewRepositories(a.DB), a.Config, nil, a.Logger)
	return a.Services, nil
}

// Close releases the database handle and flushes the logger
func (a *App) Close() {
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
		a.DB = nil
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
