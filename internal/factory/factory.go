// Package factory wires the application's services together for the server,
// the tests, and anything else that needs a fully assembled engine.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/zkgames/zkgames-go/internal/dependencies/clock"
	"github.com/zkgames/zkgames-go/internal/services/auth"
	"github.com/zkgames/zkgames-go/internal/services/escrow"
	"github.com/zkgames/zkgames-go/internal/services/game"
	"github.com/zkgames/zkgames-go/internal/services/outcome"
	"github.com/zkgames/zkgames-go/internal/services/registry"
	"github.com/zkgames/zkgames-go/internal/services/stats"
	"github.com/zkgames/zkgames-go/internal/storage"
	"github.com/zkgames/zkgames-go/internal/storage/memory"
	redisstorage "github.com/zkgames/zkgames-go/internal/storage/redis"
	"github.com/zkgames/zkgames-go/internal/zk"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	EscrowLedger    *escrow.Ledger
	Rules           *outcome.Registry
	StatsService    *stats.Service
	RegistryService *registry.Service
	AuthService     *auth.Service
	GameController  *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg.SessionDuration = auth.DefaultConfig().SessionDuration
	}

	return newWithDependencies(store, clk, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	escrowLedger := escrow.New(store, logger)
	rules := outcome.NewRegistry(outcome.RPSBasic())
	statsService := stats.New(store, logger)
	registryService := registry.New(store, escrowLedger, clk, logger)
	authService := auth.New(store, clk, authCfg)
	gameController := game.NewController(store, escrowLedger, rules, statsService, zk.NewVerifier(), clk, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		EscrowLedger:    escrowLedger,
		Rules:           rules,
		StatsService:    statsService,
		RegistryService: registryService,
		AuthService:     authService,
		GameController:  gameController,
	}
}
