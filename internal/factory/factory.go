package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/okradley/veilarena/internal/dependencies/chain"
	"github.com/okradley/veilarena/internal/dependencies/clock"
	"github.com/okradley/veilarena/internal/events"
	"github.com/okradley/veilarena/internal/fhe"
	"github.com/okradley/veilarena/internal/fhe/simfhe"
	"github.com/okradley/veilarena/internal/services/arena"
	"github.com/okradley/veilarena/internal/services/auth"
	"github.com/okradley/veilarena/internal/services/entropy"
	"github.com/okradley/veilarena/internal/storage"
	"github.com/okradley/veilarena/internal/storage/memory"
	redisstorage "github.com/okradley/veilarena/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// simulatedGenesis anchors the synthetic chain so separately started
// processes agree on block numbers
var simulatedGenesis = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock    clock.Clock
	Heads    chain.HeadSource
	Provider fhe.Provider

	// Services
	EntropyService *entropy.Service
	AuthService    *auth.Service
	Engine         *arena.Engine
	Hub            *events.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// BlockTime is the simulated chain's block interval (optional)
	BlockTime time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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

	// Create external dependencies
	clk := clock.New()
	heads := chain.NewSimulated(clk, simulatedGenesis, cfg.BlockTime)
	provider := simfhe.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, heads, provider, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	heads chain.HeadSource,
	provider fhe.Provider,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	entropyService := entropy.New(heads)
	authService := auth.New(store, clk, authCfg, logger)
	hub := events.NewHub(logger)
	engine := arena.NewEngine(store, provider, entropyService, clk, hub, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Heads:          heads,
		Provider:       provider,
		EntropyService: entropyService,
		AuthService:    authService,
		Engine:         engine,
		Hub:            hub,
	}
}
