package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zkgames/zkgames-go/internal/api/apierr"
	"github.com/zkgames/zkgames-go/internal/api/middleware"
	"github.com/zkgames/zkgames-go/internal/api/request"
	"github.com/zkgames/zkgames-go/internal/api/response"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/game"
)

// GameHandler handles game lifecycle endpoints. All routes are scoped to the
// authenticated game client; clients never see each other's games.
type GameHandler struct {
	controller game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller game.ControllerInterface) *GameHandler {
	return &GameHandler{
		controller: controller,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.MustGetClientID(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Player1 == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player1 is required"))
		return
	}
	if req.GameType == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("game_type is required"))
		return
	}

	created, err := h.controller.CreateGame(
		r.Context(),
		clientID,
		model.GameID(req.GameID),
		model.GameType(req.GameType),
		model.Username(req.Player1),
		req.Stake,
		req.Commitment,
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(created))
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.MustGetClientID(r.Context())

	gameID, err := parseGameID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	found, err := h.controller.GetGame(r.Context(), clientID, gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(found))
}

// Join handles POST /api/v1/games/{game_id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.MustGetClientID(r.Context())

	gameID, err := parseGameID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Player2 == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player2 is required"))
		return
	}

	joined, err := h.controller.JoinGame(r.Context(), clientID, gameID, model.Username(req.Player2), model.Choice(req.Choice))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(joined))
}

// Complete handles POST /api/v1/games/{game_id}/complete
func (h *GameHandler) Complete(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.MustGetClientID(r.Context())

	gameID, err := parseGameID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.CompleteGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.Proof) == 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("proof is required"))
		return
	}

	completed, settlement, err := h.controller.CompleteGame(r.Context(), clientID, gameID, model.Choice(req.Choice), req.Proof)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CompleteGameResponse{
		Game:       response.GameFromModel(completed),
		Settlement: response.SettlementFromModel(settlement),
	})
}

// Cancel handles POST /api/v1/games/{game_id}/cancel
func (h *GameHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.MustGetClientID(r.Context())

	gameID, err := parseGameID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.CancelGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Player1 == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player1 is required"))
		return
	}

	cancelled, refund, err := h.controller.CancelGame(r.Context(), clientID, gameID, model.Username(req.Player1))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CancelGameResponse{
		Game:   response.GameFromModel(cancelled),
		Refund: response.RefundFromModel(refund),
	})
}

func parseGameID(r *http.Request) (model.GameID, error) {
	raw := mux.Vars(r)["game_id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apierr.NewInvalidRequestError("game_id must be an unsigned integer")
	}
	return model.GameID(id), nil
}
