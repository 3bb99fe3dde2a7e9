package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/zkgames/zkgames-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetClient() {
	client := &model.GameClient{
		ID:         "gc_1",
		Name:       "Test Client",
		SignerHash: []byte("hash"),
		FeeAccount: model.ClientFeeAccount("gc_1"),
		CreatedAt:  time.Now(),
	}
	s.Require().NoError(s.storage.SaveClient(s.ctx, client))

	got, err := s.storage.GetClient(s.ctx, "gc_1")
	s.Require().NoError(err)
	s.Equal(client.Name, got.Name)
	s.Equal(client.FeeAccount, got.FeeAccount)
}

func (s *StorageSuite) TestGetClientNotFound() {
	_, err := s.storage.GetClient(s.ctx, "missing")
	s.ErrorIs(err, model.ErrClientNotFound)
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		Username:       "alice",
		ClientID:       "gc_1",
		LoginHash:      []byte{1, 2, 3},
		CustodyAccount: model.PlayerAccount("alice"),
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(player.LoginHash, got.LoginHash)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.Game{
		ClientID:   "gc_1",
		ID:         7,
		Type:       "rps-basic",
		Phase:      model.PhaseCreated,
		Player1:    "alice",
		Stake:      1_000_000,
		Commitment: []byte{0xaa, 0xbb},
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, "gc_1", 7)
	s.Require().NoError(err)
	s.Equal(model.PhaseCreated, got.Phase)
	s.Equal(game.Commitment, got.Commitment)
}

func (s *StorageSuite) TestGamesAreScopedByClient() {
	game := &model.Game{ClientID: "gc_1", ID: 7, Phase: model.PhaseCreated}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	_, err := s.storage.GetGame(s.ctx, "gc_2", 7)
	s.ErrorIs(err, model.ErrGameNotFound)

	exists, err := s.storage.GameExists(s.ctx, "gc_1", 7)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.GameExists(s.ctx, "gc_2", 7)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestGetGameReturnsCopy() {
	game := &model.Game{ClientID: "gc_1", ID: 7, Phase: model.PhaseCreated}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, "gc_1", 7)
	s.Require().NoError(err)
	got.Phase = model.PhaseCompleted

	again, err := s.storage.GetGame(s.ctx, "gc_1", 7)
	s.Require().NoError(err)
	s.Equal(model.PhaseCreated, again.Phase)
}

func (s *StorageSuite) TestSaveAndGetStats() {
	stats := model.NewPlayerGameStats("alice", "rps-basic", 3)
	stats.TotalGames = 2
	stats.TotalWins = 1
	stats.TotalChoices[1] = 2
	s.Require().NoError(s.storage.SaveStats(s.ctx, stats))

	got, err := s.storage.GetStats(s.ctx, "alice", "rps-basic")
	s.Require().NoError(err)
	s.Equal(uint64(2), got.TotalGames)
	s.Equal([]uint64{0, 2, 0}, got.TotalChoices)
}

func (s *StorageSuite) TestGetStatsNotFound() {
	_, err := s.storage.GetStats(s.ctx, "alice", "rps-basic")
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *StorageSuite) TestSaveAndGetAccount() {
	acct := &model.Account{ID: "acct:player:alice", Balance: 500}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, acct))

	got, err := s.storage.GetAccount(s.ctx, "acct:player:alice")
	s.Require().NoError(err)
	s.Equal(int64(500), got.Balance)
}

func (s *StorageSuite) TestGetAccountMissing() {
	_, err := s.storage.GetAccount(s.ctx, "missing")
	s.ErrorIs(err, model.ErrMissingCustodyAccount)
}

func (s *StorageSuite) TestGetAccountReturnsCopy() {
	s.Require().NoError(s.storage.SaveAccount(s.ctx, &model.Account{ID: "a", Balance: 10}))

	got, err := s.storage.GetAccount(s.ctx, "a")
	s.Require().NoError(err)
	got.Balance = 999

	again, err := s.storage.GetAccount(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(int64(10), again.Balance)
}

func (s *StorageSuite) TestManagerConfig() {
	_, err := s.storage.GetManagerConfig(s.ctx)
	s.ErrorIs(err, model.ErrNotInitialized)

	cfg := &model.ManagerConfig{
		ClientFeeBps:    50,
		PlatformFeeBps:  50,
		PlatformAccount: "acct:platform",
		Denomination:    "usdc",
	}
	s.Require().NoError(s.storage.SaveManagerConfig(s.ctx, cfg))

	got, err := s.storage.GetManagerConfig(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint16(50), got.ClientFeeBps)
	s.Equal("usdc", got.Denomination)
}
