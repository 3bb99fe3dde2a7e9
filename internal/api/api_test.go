package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkgames/zkgames-go/internal/api"
	"github.com/zkgames/zkgames-go/internal/api/response"
	"github.com/zkgames/zkgames-go/internal/factory"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/outcome"
	"github.com/zkgames/zkgames-go/internal/zk"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp

	clientID  model.ClientID
	signerKey string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()

	clientID, signerKey, err := app.InitPlatform(context.Background(), 50, 50)
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		RegistryService: app.RegistryService,
		StatsService:    app.StatsService,
		EscrowLedger:    app.EscrowLedger,
		GameController:  app.GameController,
		Rules:           app.Rules,
	})

	return &testServer{
		handler:   router,
		app:       app,
		clientID:  clientID,
		signerKey: signerKey,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// login authenticates the registered test client and returns a session token
func (ts *testServer) login(t *testing.T) string {
	t.Helper()

	body := map[string]string{
		"client_id":  string(ts.clientID),
		"signer_key": ts.signerKey,
	}
	rr := ts.request(http.MethodPost, "/api/v1/clients/login", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

// fundPlayer registers a player directly and credits their custody account
func (ts *testServer) fundPlayer(t *testing.T, username string, amount int64) {
	t.Helper()
	require.NoError(t, ts.app.FundPlayer(context.Background(), ts.clientID, model.Username(username), amount))
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	token := ts.login(t)
	assert.NotEmpty(t, token)
}

func TestLoginWrongKey(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{
		"client_id":  string(ts.clientID),
		"signer_key": "wrong",
	}
	rr := ts.request(http.MethodPost, "/api/v1/clients/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/admin/clients", map[string]string{"name": "x"}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// A client session token is not an admin token
	rr = ts.request(http.MethodPost, "/api/v1/admin/clients", map[string]string{"name": "x"}, ts.login(t))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminRegisterClient(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/admin/clients", map[string]string{"name": "arcade"}, factory.TestAdminToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.RegisteredClient
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "arcade", resp.Name)
	assert.NotEmpty(t, resp.ClientID)
	assert.NotEmpty(t, resp.SignerKey)
}

func TestAdminCreditAccount(t *testing.T) {
	ts := newTestServer(t)
	ts.fundPlayer(t, "alice", 0)

	accountID := string(model.PlayerAccount("alice"))
	rr := ts.request(http.MethodPost, "/api/v1/admin/accounts/"+accountID+"/credit",
		map[string]int64{"amount": 5_000}, factory.TestAdminToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(5_000), resp.Balance)
}

func TestAdminCreditVaultRejected(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/admin/accounts/"+string(model.VaultAccount)+"/credit",
		map[string]int64{"amount": 5_000}, factory.TestAdminToken)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegisterPlayer(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	body := map[string]string{"username": "alice", "login_key": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/players", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, string(ts.clientID), resp.ClientID)
	assert.NotEmpty(t, resp.CustodyAccount)

	// Duplicate username conflicts
	rr = ts.request(http.MethodPost, "/api/v1/players", body, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestFullGameOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	ts.fundPlayer(t, "alice", 2_000_000)
	ts.fundPlayer(t, "bob", 2_000_000)

	binding := zk.Binding{ClientID: ts.clientID, GameID: 42}
	secret, err := zk.NewSecret()
	require.NoError(t, err)
	commitment, err := zk.Commit(secret, binding, 1)
	require.NoError(t, err)

	// Create
	createBody := map[string]any{
		"game_id":    42,
		"game_type":  string(outcome.GameTypeRPSBasic),
		"player1":    "alice",
		"stake":      1_000_000,
		"commitment": commitment,
	}
	rr := ts.request(http.MethodPost, "/api/v1/games", createBody, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "created", created.Phase)
	assert.Nil(t, created.Player2Choice)

	// Join
	joinBody := map[string]any{"player2": "bob", "choice": 0}
	rr = ts.request(http.MethodPost, "/api/v1/games/42/join", joinBody, token)
	require.Equal(t, http.StatusOK, rr.Code)

	// Complete with a wrong-choice proof first
	cheatProof, err := zk.Prove(secret, binding, 2)
	require.NoError(t, err)
	rr = ts.request(http.MethodPost, "/api/v1/games/42/complete",
		map[string]any{"choice": 2, "proof": cheatProof}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	// Honest reveal settles
	proofData, err := zk.Prove(secret, binding, 1)
	require.NoError(t, err)
	rr = ts.request(http.MethodPost, "/api/v1/games/42/complete",
		map[string]any{"choice": 1, "proof": proofData}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var completed response.CompleteGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &completed))
	assert.Equal(t, "completed", completed.Game.Phase)
	assert.Equal(t, "player1", completed.Settlement.Result)
	assert.Equal(t, int64(2_000_000), completed.Settlement.Pot)
	assert.Equal(t, int64(1_980_000), completed.Settlement.Player1Payout)
	assert.Equal(t, int64(10_000), completed.Settlement.ClientFee)

	// Balance reflects the payout
	rr = ts.request(http.MethodGet, "/api/v1/players/alice/balance", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var account response.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &account))
	assert.Equal(t, int64(2_980_000), account.Balance)

	// Stats reflect the outcome
	rr = ts.request(http.MethodGet, "/api/v1/players/alice/stats/rps-basic", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var record response.PlayerStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, uint64(1), record.TotalWins)
	assert.Equal(t, []uint64{0, 1, 0}, record.TotalChoices)

	// Terminal phase rejects further operations
	rr = ts.request(http.MethodPost, "/api/v1/games/42/join", joinBody, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCancelOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	ts.fundPlayer(t, "alice", 1_000_000)

	binding := zk.Binding{ClientID: ts.clientID, GameID: 9}
	secret, err := zk.NewSecret()
	require.NoError(t, err)
	commitment, err := zk.Commit(secret, binding, 0)
	require.NoError(t, err)

	createBody := map[string]any{
		"game_id":    9,
		"game_type":  string(outcome.GameTypeRPSBasic),
		"player1":    "alice",
		"stake":      1_000_000,
		"commitment": commitment,
	}
	rr := ts.request(http.MethodPost, "/api/v1/games", createBody, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	// Only player1 can cancel
	rr = ts.request(http.MethodPost, "/api/v1/games/9/cancel", map[string]string{"player1": "bob"}, token)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/9/cancel", map[string]string{"player1": "alice"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.CancelGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Game.Phase)
	assert.Equal(t, int64(995_000), resp.Refund.Amount)
	assert.Equal(t, int64(5_000), resp.Refund.ClientFee)
}

func TestDuplicateGameIDOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	ts.fundPlayer(t, "alice", 2_000_000)

	binding := zk.Binding{ClientID: ts.clientID, GameID: 5}
	secret, err := zk.NewSecret()
	require.NoError(t, err)
	commitment, err := zk.Commit(secret, binding, 0)
	require.NoError(t, err)

	createBody := map[string]any{
		"game_id":    5,
		"game_type":  string(outcome.GameTypeRPSBasic),
		"player1":    "alice",
		"stake":      500_000,
		"commitment": commitment,
	}
	rr := ts.request(http.MethodPost, "/api/v1/games", createBody, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games", createBody, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
}
