package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zkgames/zkgames-go/internal/api/apierr"
	"github.com/zkgames/zkgames-go/internal/api/middleware"
	"github.com/zkgames/zkgames-go/internal/api/request"
	"github.com/zkgames/zkgames-go/internal/api/response"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/escrow"
	"github.com/zkgames/zkgames-go/internal/services/outcome"
	"github.com/zkgames/zkgames-go/internal/services/registry"
	"github.com/zkgames/zkgames-go/internal/services/stats"
)

// PlayerHandler handles player registration, lookups, balances, and stats
type PlayerHandler struct {
	registryService *registry.Service
	statsService    *stats.Service
	escrowLedger    *escrow.Ledger
	rules           *outcome.Registry
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(
	registryService *registry.Service,
	statsService *stats.Service,
	escrowLedger *escrow.Ledger,
	rules *outcome.Registry,
) *PlayerHandler {
	return &PlayerHandler{
		registryService: registryService,
		statsService:    statsService,
		escrowLedger:    escrowLedger,
		rules:           rules,
	}
}

// Register handles POST /api/v1/players
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.MustGetClientID(r.Context())

	var req request.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.LoginKey == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("login_key is required"))
		return
	}

	player, err := h.registryService.RegisterPlayer(r.Context(), clientID, model.Username(req.Username), req.LoginKey)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Get handles GET /api/v1/players/{username}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.MustGetClientID(r.Context())
	username := model.Username(mux.Vars(r)["username"])

	player, err := h.registryService.GetPlayer(r.Context(), clientID, username)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// GetBalance handles GET /api/v1/players/{username}/balance
func (h *PlayerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.MustGetClientID(r.Context())
	username := model.Username(mux.Vars(r)["username"])

	player, err := h.registryService.GetPlayer(r.Context(), clientID, username)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	balance, err := h.escrowLedger.Balance(r.Context(), player.CustodyAccount)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Account{
		ID:      string(player.CustodyAccount),
		Balance: balance,
	})
}

// GetStats handles GET /api/v1/players/{username}/stats/{game_type}
func (h *PlayerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.MustGetClientID(r.Context())
	vars := mux.Vars(r)
	username := model.Username(vars["username"])
	gameType := model.GameType(vars["game_type"])

	if _, err := h.registryService.GetPlayer(r.Context(), clientID, username); err != nil {
		apierr.WriteError(w, err)
		return
	}

	rules, err := h.rules.Rules(gameType)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	record, err := h.statsService.Get(r.Context(), username, gameType, rules.Choices())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(record))
}
