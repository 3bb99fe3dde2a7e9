// Package registry handles one-time manager initialization and the
// registration of game clients and players at the collaborator boundary.
package registry

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/zkgames/zkgames-go/internal/dependencies/clock"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/escrow"
	"github.com/zkgames/zkgames-go/internal/storage"
)

// Service registers the durable actors of the engine: the singleton manager
// config, game clients, and players. Registration provisions the custody
// accounts the escrow ledger moves value between.
type Service struct {
	storage storage.Storage
	escrow  *escrow.Ledger
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a registry service
func New(storage storage.Storage, escrow *escrow.Ledger, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		escrow:  escrow,
		clock:   clock,
		logger:  logger,
	}
}

// InitManager performs the one-time platform setup: fee rates, the platform
// fee account, and the pooled vault. A second call fails.
func (s *Service) InitManager(ctx context.Context, cfg model.ManagerConfig) error {
	if _, err := s.storage.GetManagerConfig(ctx); err == nil {
		return model.ErrAlreadyInitialized
	} else if !errors.Is(err, model.ErrNotInitialized) {
		return err
	}

	// The combined rate may not exceed the whole pot, or settlement legs
	// would go negative and every completion would fail conservation.
	if uint32(cfg.ClientFeeBps)+uint32(cfg.PlatformFeeBps) > 10_000 {
		return fmt.Errorf("combined fee rate must be at most 10000 bps, got client=%d platform=%d",
			cfg.ClientFeeBps, cfg.PlatformFeeBps)
	}
	if cfg.PlatformAccount == "" {
		cfg.PlatformAccount = model.AccountID("acct:platform")
	}

	if err := s.escrow.CreateAccount(ctx, model.VaultAccount); err != nil {
		return err
	}
	if err := s.escrow.CreateAccount(ctx, cfg.PlatformAccount); err != nil {
		return err
	}
	if err := s.storage.SaveManagerConfig(ctx, &cfg); err != nil {
		return err
	}

	s.logger.Info("manager initialized",
		slog.Int("client_fee_bps", int(cfg.ClientFeeBps)),
		slog.Int("platform_fee_bps", int(cfg.PlatformFeeBps)),
	)
	return nil
}

// RegisterGameClient registers a collaborator application. The returned
// signer key authenticates the client's engine calls; only its bcrypt hash
// is stored, so the key is shown exactly once.
func (s *Service) RegisterGameClient(ctx context.Context, name string) (*model.GameClient, string, error) {
	if _, err := s.storage.GetManagerConfig(ctx); err != nil {
		return nil, "", err
	}

	id := model.ClientID(generateKey("gc_"))
	signerKey := generateKey("sk_")

	hash, err := bcrypt.GenerateFromPassword([]byte(signerKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	client := &model.GameClient{
		ID:         id,
		Name:       name,
		SignerHash: hash,
		FeeAccount: model.ClientFeeAccount(id),
		CreatedAt:  s.clock.Now(),
	}

	if err := s.escrow.CreateAccount(ctx, client.FeeAccount); err != nil {
		return nil, "", err
	}
	if err := s.storage.SaveClient(ctx, client); err != nil {
		return nil, "", err
	}

	s.logger.Info("game client registered",
		slog.String("client_id", string(id)),
		slog.String("name", name),
	)
	return client, signerKey, nil
}

// RegisterPlayer registers a player under a game client and provisions their
// custody account. Usernames are globally unique and permanent.
func (s *Service) RegisterPlayer(ctx context.Context, clientID model.ClientID, username model.Username, loginKey string) (*model.Player, error) {
	if _, err := s.storage.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	if _, err := s.storage.GetPlayer(ctx, username); err == nil {
		return nil, model.ErrUsernameExists
	} else if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(loginKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	player := &model.Player{
		Username:       username,
		ClientID:       clientID,
		LoginHash:      hash,
		CustodyAccount: model.PlayerAccount(username),
		CreatedAt:      s.clock.Now(),
	}

	if err := s.escrow.CreateAccount(ctx, player.CustodyAccount); err != nil {
		return nil, err
	}
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("username", string(username)),
		slog.String("client_id", string(clientID)),
	)
	return player, nil
}

// GetPlayer looks up a player, scoped to the calling client
func (s *Service) GetPlayer(ctx context.Context, clientID model.ClientID, username model.Username) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, username)
	if err != nil {
		return nil, err
	}
	if player.ClientID != clientID {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

// ManagerConfig returns the platform configuration
func (s *Service) ManagerConfig(ctx context.Context) (*model.ManagerConfig, error) {
	return s.storage.GetManagerConfig(ctx)
}

func generateKey(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
