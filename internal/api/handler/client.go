package handler

import (
	"encoding/json"
	"net/http"

	"github.com/zkgames/zkgames-go/internal/api/apierr"
	"github.com/zkgames/zkgames-go/internal/api/request"
	"github.com/zkgames/zkgames-go/internal/api/response"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/auth"
)

// ClientHandler handles game client authentication endpoints
type ClientHandler struct {
	authService *auth.Service
}

// NewClientHandler creates a new client handler
func NewClientHandler(authService *auth.Service) *ClientHandler {
	return &ClientHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/clients/login
func (h *ClientHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.ClientID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("client_id is required"))
		return
	}
	if req.SignerKey == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("signer_key is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), model.ClientID(req.ClientID), req.SignerKey)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}
