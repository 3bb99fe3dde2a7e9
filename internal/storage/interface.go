package storage

import (
	"context"

	"github.com/zkgames/zkgames-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// Games and stats are durable records: they persist after settlement so
// duplicate-id rejection and statistics span the full history. Implementations
// return copies, never aliases of stored state, so a Save call is the only
// commit point.
type Storage interface {
	// Game client operations
	SaveClient(ctx context.Context, client *model.GameClient) error
	GetClient(ctx context.Context, id model.ClientID) (*model.GameClient, error)

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, username model.Username) (*model.Player, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, clientID model.ClientID, id model.GameID) (*model.Game, error)
	GameExists(ctx context.Context, clientID model.ClientID, id model.GameID) (bool, error)

	// Player statistics operations
	SaveStats(ctx context.Context, stats *model.PlayerGameStats) error
	GetStats(ctx context.Context, username model.Username, gameType model.GameType) (*model.PlayerGameStats, error)

	// Custody account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)

	// Manager config operations
	SaveManagerConfig(ctx context.Context, cfg *model.ManagerConfig) error
	GetManagerConfig(ctx context.Context) (*model.ManagerConfig, error)
}
