package model

import "errors"

// Common errors used across the application
var (
	// Registration errors
	ErrClientNotFound = errors.New("game client not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrStatsNotFound  = errors.New("player stats not found")

	// Manager errors
	ErrNotInitialized     = errors.New("manager is not initialized")
	ErrAlreadyInitialized = errors.New("manager is already initialized")

	// Game errors
	ErrGameNotFound       = errors.New("game not found")
	ErrDuplicateGameID    = errors.New("game id already used for this client")
	ErrInvalidStake       = errors.New("stake must be positive")
	ErrInvalidCommitment  = errors.New("commitment digest is malformed")
	ErrInvalidChoice      = errors.New("choice out of range for game type")
	ErrUnknownGameType    = errors.New("unknown game type")
	ErrWrongPhase         = errors.New("operation not allowed in current phase")
	ErrSelfPlayNotAllowed = errors.New("player2 cannot be the same as player1")
	ErrProofRejected      = errors.New("proof of commitment opening rejected")
	ErrUnauthorized       = errors.New("caller not authorized for this operation")

	// Escrow errors
	ErrMissingCustodyAccount = errors.New("custody account does not exist")
	ErrInsufficientFunds     = errors.New("insufficient funds")

	// ErrConservationViolation means a settlement would create or leak value.
	// It indicates a bug in the engine itself and aborts the whole transition.
	ErrConservationViolation = errors.New("escrow conservation violated")
)
