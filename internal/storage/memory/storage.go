package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	clients  map[model.ClientID]*model.GameClient
	players  map[model.Username]*model.Player
	games    map[gameKey]*model.Game
	stats    map[statsKey]*model.PlayerGameStats
	accounts map[model.AccountID]*model.Account
	manager  *model.ManagerConfig
}

type gameKey struct {
	clientID model.ClientID
	id       model.GameID
}

type statsKey struct {
	username model.Username
	gameType model.GameType
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		clients:  make(map[model.ClientID]*model.GameClient),
		players:  make(map[model.Username]*model.Player),
		games:    make(map[gameKey]*model.Game),
		stats:    make(map[statsKey]*model.PlayerGameStats),
		accounts: make(map[model.AccountID]*model.Account),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game client operations

func (s *Storage) SaveClient(ctx context.Context, client *model.GameClient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *client
	s.clients[client.ID] = &c
	return nil
}

func (s *Storage) GetClient(ctx context.Context, id model.ClientID) (*model.GameClient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, ok := s.clients[id]
	if !ok {
		return nil, model.ErrClientNotFound
	}
	c := *client
	return &c, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	p.LoginHash = slices.Clone(player.LoginHash)
	s.players[player.Username] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, username model.Username) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	p.LoginHash = slices.Clone(player.LoginHash)
	return &p, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := *game
	g.Commitment = slices.Clone(game.Commitment)
	s.games[gameKey{clientID: game.ClientID, id: game.ID}] = &g
	return nil
}

func (s *Storage) GetGame(ctx context.Context, clientID model.ClientID, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[gameKey{clientID: clientID, id: id}]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	g := *game
	g.Commitment = slices.Clone(game.Commitment)
	return &g, nil
}

func (s *Storage) GameExists(ctx context.Context, clientID model.ClientID, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[gameKey{clientID: clientID, id: id}]
	return ok, nil
}

// Player statistics operations

func (s *Storage) SaveStats(ctx context.Context, stats *model.PlayerGameStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := *stats
	st.TotalChoices = slices.Clone(stats.TotalChoices)
	s.stats[statsKey{username: stats.Username, gameType: stats.GameType}] = &st
	return nil
}

func (s *Storage) GetStats(ctx context.Context, username model.Username, gameType model.GameType) (*model.PlayerGameStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[statsKey{username: username, gameType: gameType}]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	st := *stats
	st.TotalChoices = slices.Clone(stats.TotalChoices)
	return &st, nil
}

// Custody account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *account
	s.accounts[account.ID] = &a
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrMissingCustodyAccount
	}
	a := *account
	return &a, nil
}

// Manager config operations

func (s *Storage) SaveManagerConfig(ctx context.Context, cfg *model.ManagerConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cfg
	s.manager = &c
	return nil
}

func (s *Storage) GetManagerConfig(ctx context.Context) (*model.ManagerConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.manager == nil {
		return nil, model.ErrNotInitialized
	}
	c := *s.manager
	return &c, nil
}
