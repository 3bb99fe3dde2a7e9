package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeClientNotFound     = "CLIENT_NOT_FOUND"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeNotInitialized     = "NOT_INITIALIZED"
	CodeAlreadyInitialized = "ALREADY_INITIALIZED"
	CodeDuplicateGameID    = "DUPLICATE_GAME_ID"
	CodeInvalidStake       = "INVALID_STAKE"
	CodeInvalidCommitment  = "INVALID_COMMITMENT"
	CodeInvalidChoice      = "INVALID_CHOICE"
	CodeUnknownGameType    = "UNKNOWN_GAME_TYPE"
	CodeWrongPhase         = "WRONG_PHASE"
	CodeSelfPlay           = "SELF_PLAY_NOT_ALLOWED"
	CodeProofRejected      = "PROOF_REJECTED"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrClientNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeClientNotFound, "Game client not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrStatsNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player stats not found"}}
	case errors.Is(err, model.ErrMissingCustodyAccount):
		return &httpError{http.StatusNotFound, APIError{CodeAccountNotFound, "Custody account not found"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrNotInitialized):
		return &httpError{http.StatusConflict, APIError{CodeNotInitialized, "Manager is not initialized"}}
	case errors.Is(err, model.ErrAlreadyInitialized):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInitialized, "Manager is already initialized"}}
	case errors.Is(err, model.ErrDuplicateGameID):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateGameID, "Game id already used"}}
	case errors.Is(err, model.ErrInvalidStake):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidStake, "Stake must be positive"}}
	case errors.Is(err, model.ErrInvalidCommitment):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCommitment, "Commitment digest is malformed"}}
	case errors.Is(err, model.ErrInvalidChoice):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidChoice, "Choice out of range for game type"}}
	case errors.Is(err, model.ErrUnknownGameType):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownGameType, "Unknown game type"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Operation not allowed in current phase"}}
	case errors.Is(err, model.ErrSelfPlayNotAllowed):
		return &httpError{http.StatusConflict, APIError{CodeSelfPlay, "Player cannot join their own game"}}
	case errors.Is(err, model.ErrProofRejected):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeProofRejected, "Proof of commitment opening rejected"}}
	case errors.Is(err, model.ErrInsufficientFunds):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientFunds, "Insufficient funds"}}
	case errors.Is(err, model.ErrUnauthorized):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Caller not authorized for this operation"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid client id or signer key"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Admin token required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
