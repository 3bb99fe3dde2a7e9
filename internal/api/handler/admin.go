package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zkgames/zkgames-go/internal/api/apierr"
	"github.com/zkgames/zkgames-go/internal/api/request"
	"github.com/zkgames/zkgames-go/internal/api/response"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/escrow"
	"github.com/zkgames/zkgames-go/internal/services/registry"
)

// AdminHandler handles the platform administration endpoints: one-time
// manager init, client registration, and custody account funding.
type AdminHandler struct {
	registryService *registry.Service
	escrowLedger    *escrow.Ledger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(registryService *registry.Service, escrowLedger *escrow.Ledger) *AdminHandler {
	return &AdminHandler{
		registryService: registryService,
		escrowLedger:    escrowLedger,
	}
}

// InitManager handles POST /api/v1/admin/init
func (h *AdminHandler) InitManager(w http.ResponseWriter, r *http.Request) {
	var req request.InitManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	err := h.registryService.InitManager(r.Context(), model.ManagerConfig{
		ClientFeeBps:    req.ClientFeeBps,
		PlatformFeeBps:  req.PlatformFeeBps,
		PlatformAccount: model.AccountID(req.PlatformAccount),
		Denomination:    req.Denomination,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// RegisterClient handles POST /api/v1/admin/clients
func (h *AdminHandler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("name is required"))
		return
	}

	client, signerKey, err := h.registryService.RegisterGameClient(r.Context(), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisteredClient{
		ClientID:   string(client.ID),
		Name:       client.Name,
		SignerKey:  signerKey,
		FeeAccount: string(client.FeeAccount),
	})
}

// CreditAccount handles POST /api/v1/admin/accounts/{id}/credit
func (h *AdminHandler) CreditAccount(w http.ResponseWriter, r *http.Request) {
	accountID := model.AccountID(mux.Vars(r)["id"])

	var req request.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Amount <= 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("amount must be positive"))
		return
	}
	// The vault only ever holds active deposits; external credits would
	// break that equality
	if accountID == model.VaultAccount {
		apierr.WriteError(w, apierr.NewInvalidRequestError("vault account cannot be credited"))
		return
	}

	if err := h.escrowLedger.Credit(r.Context(), accountID, req.Amount); err != nil {
		apierr.WriteError(w, err)
		return
	}

	balance, err := h.escrowLedger.Balance(r.Context(), accountID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Account{
		ID:      string(accountID),
		Balance: balance,
	})
}

// GetAccount handles GET /api/v1/admin/accounts/{id}
func (h *AdminHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := model.AccountID(mux.Vars(r)["id"])

	balance, err := h.escrowLedger.Balance(r.Context(), accountID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Account{
		ID:      string(accountID),
		Balance: balance,
	})
}
