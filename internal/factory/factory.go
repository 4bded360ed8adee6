package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mkaran/planetary-api/internal/dependencies/clock"
	"github.com/mkaran/planetary-api/internal/notify"
	"github.com/mkaran/planetary-api/internal/services/auth"
	"github.com/mkaran/planetary-api/internal/services/planet"
	"github.com/mkaran/planetary-api/internal/services/user"
	"github.com/mkaran/planetary-api/internal/storage"
	"github.com/mkaran/planetary-api/internal/storage/memory"
	"github.com/mkaran/planetary-api/internal/storage/postgres"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.Store

	// External dependencies
	Clock    clock.Clock
	Notifier notify.Notifier

	// Services
	AuthService   *auth.Service
	PlanetService *planet.Service
	UserService   *user.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// DatabaseURL is the postgres connection string (required when
	// StorageType is "postgres")
	DatabaseURL string
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DatabaseURL required when StorageType is postgres")
		}
		pgStore, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'postgres'")
	}

	clk := clock.New()
	notifier := notify.NewLogNotifier(logger)

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.TokenValidity == 0 {
		defaults := auth.DefaultConfig()
		defaults.Secret = authCfg.Secret
		authCfg = defaults
	}

	return newWithDependencies(store, clk, notifier, authCfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, notifier notify.Notifier, authCfg auth.Config) *App {
	authService := auth.New(store, clk, notifier, authCfg)
	planetService := planet.New(store)
	userService := user.New(store)

	return &App{
		Store:         store,
		Clock:         clk,
		Notifier:      notifier,
		AuthService:   authService,
		PlanetService: planetService,
		UserService:   userService,
	}
}
