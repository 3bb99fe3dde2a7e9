package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *Storage) get(ctx context.Context, key string, dest any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Game client operations

func (s *Storage) SaveClient(ctx context.Context, client *model.GameClient) error {
	return s.set(ctx, clientKey(client.ID), client)
}

func (s *Storage) GetClient(ctx context.Context, id model.ClientID) (*model.GameClient, error) {
	var client model.GameClient
	if err := s.get(ctx, clientKey(id), &client, model.ErrClientNotFound); err != nil {
		return nil, err
	}
	return &client, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	return s.set(ctx, playerKey(player.Username), player)
}

func (s *Storage) GetPlayer(ctx context.Context, username model.Username) (*model.Player, error) {
	var player model.Player
	if err := s.get(ctx, playerKey(username), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	return s.set(ctx, gameKey(game.ClientID, game.ID), game)
}

func (s *Storage) GetGame(ctx context.Context, clientID model.ClientID, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := s.get(ctx, gameKey(clientID, id), &game, model.ErrGameNotFound); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GameExists(ctx context.Context, clientID model.ClientID, id model.GameID) (bool, error) {
	exists, err := s.client.Exists(ctx, gameKey(clientID, id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Player statistics operations

func (s *Storage) SaveStats(ctx context.Context, stats *model.PlayerGameStats) error {
	return s.set(ctx, statsKey(stats.Username, stats.GameType), stats)
}

func (s *Storage) GetStats(ctx context.Context, username model.Username, gameType model.GameType) (*model.PlayerGameStats, error) {
	var stats model.PlayerGameStats
	if err := s.get(ctx, statsKey(username, gameType), &stats, model.ErrStatsNotFound); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Custody account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	return s.set(ctx, accountKey(account.ID), account)
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	var account model.Account
	if err := s.get(ctx, accountKey(id), &account, model.ErrMissingCustodyAccount); err != nil {
		return nil, err
	}
	return &account, nil
}

// Manager config operations

func (s *Storage) SaveManagerConfig(ctx context.Context, cfg *model.ManagerConfig) error {
	return s.set(ctx, managerKey(), cfg)
}

func (s *Storage) GetManagerConfig(ctx context.Context) (*model.ManagerConfig, error) {
	var cfg model.ManagerConfig
	if err := s.get(ctx, managerKey(), &cfg, model.ErrNotInitialized); err != nil {
		return nil, err
	}
	return &cfg, nil
}
