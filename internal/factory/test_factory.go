package factory

import (
	"context"
	"time"

	"github.com/zkgames/zkgames-go/internal/dependencies/mocks"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/auth"
	"github.com/zkgames/zkgames-go/internal/storage/memory"
	"github.com/zkgames/zkgames-go/internal/testutil"
)

// TestAdminToken is the platform token used by test apps
const TestAdminToken = "test-admin-token"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	authCfg := auth.DefaultConfig()
	authCfg.AdminToken = TestAdminToken

	app := newWithDependencies(store, mockClock, authCfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}

// InitPlatform initializes the manager with the given fee rates and registers
// a game client, returning its id and signer key.
func (t *TestApp) InitPlatform(ctx context.Context, clientFeeBps, platformFeeBps uint16) (model.ClientID, string, error) {
	err := t.RegistryService.InitManager(ctx, model.ManagerConfig{
		ClientFeeBps:    clientFeeBps,
		PlatformFeeBps:  platformFeeBps,
		PlatformAccount: model.AccountID("acct:platform"),
		Denomination:    "units",
	})
	if err != nil {
		return "", "", err
	}

	client, signerKey, err := t.RegistryService.RegisterGameClient(ctx, "test-client")
	if err != nil {
		return "", "", err
	}
	return client.ID, signerKey, nil
}

// FundPlayer registers a player under the client and credits their custody
// account with the given amount. A zero amount registers without funding.
func (t *TestApp) FundPlayer(ctx context.Context, clientID model.ClientID, username model.Username, amount int64) error {
	player, err := t.RegistryService.RegisterPlayer(ctx, clientID, username, "login-key")
	if err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	return t.EscrowLedger.Credit(ctx, player.CustodyAccount, amount)
}
