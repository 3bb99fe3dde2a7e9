// Package api exposes the engine over HTTP. Game clients authenticate with a
// session token; the admin surface is guarded by a separate platform token.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zkgames/zkgames-go/internal/api/handler"
	"github.com/zkgames/zkgames-go/internal/api/middleware"
	"github.com/zkgames/zkgames-go/internal/services/auth"
	"github.com/zkgames/zkgames-go/internal/services/escrow"
	"github.com/zkgames/zkgames-go/internal/services/game"
	"github.com/zkgames/zkgames-go/internal/services/outcome"
	"github.com/zkgames/zkgames-go/internal/services/registry"
	"github.com/zkgames/zkgames-go/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	RegistryService *registry.Service
	StatsService    *stats.Service
	EscrowLedger    *escrow.Ledger
	GameController  game.ControllerInterface
	Rules           *outcome.Registry
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	adminHandler := handler.NewAdminHandler(cfg.RegistryService, cfg.EscrowLedger)
	clientHandler := handler.NewClientHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.RegistryService, cfg.StatsService, cfg.EscrowLedger, cfg.Rules)
	gameHandler := handler.NewGameHandler(cfg.GameController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := middleware.Admin(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Admin routes (platform token)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/init", adminHandler.InitManager).Methods(http.MethodPost)
	admin.HandleFunc("/clients", adminHandler.RegisterClient).Methods(http.MethodPost)
	admin.HandleFunc("/accounts/{id}", adminHandler.GetAccount).Methods(http.MethodGet)
	admin.HandleFunc("/accounts/{id}/credit", adminHandler.CreditAccount).Methods(http.MethodPost)

	// Client login (no session yet)
	api.HandleFunc("/clients/login", clientHandler.Login).Methods(http.MethodPost)

	// Player routes (client session)
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("", playerHandler.Register).Methods(http.MethodPost)
	players.HandleFunc("/{username}", playerHandler.Get).Methods(http.MethodGet)
	players.HandleFunc("/{username}/balance", playerHandler.GetBalance).Methods(http.MethodGet)
	players.HandleFunc("/{username}/stats/{game_type}", playerHandler.GetStats).Methods(http.MethodGet)

	// Game routes (client session)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/complete", gameHandler.Complete).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/cancel", gameHandler.Cancel).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
