package model

import "time"

// ClientID uniquely identifies a registered game client (operator)
type ClientID string

// Username uniquely identifies a player across the system.
// It is the stable identity and the seed for custody account derivation.
type Username string

// GameClient is a registered operator identity. All engine operations are
// driven by a game client on behalf of its end users.
type GameClient struct {
	ID   ClientID
	Name string

	// SignerHash is the bcrypt hash of the client's signer credential.
	// The plaintext credential is issued once at registration.
	SignerHash []byte

	// FeeAccount receives the client's fee cut on completion and cancellation
	FeeAccount AccountID

	CreatedAt time.Time
}

// Player is a registered end user under one game client.
// Identity is immutable once created; username collisions are rejected.
type Player struct {
	Username Username
	ClientID ClientID

	// LoginHash is an opaque credential hash. The engine stores it verbatim
	// and never interprets it.
	LoginHash []byte

	// CustodyAccount holds the player's stakeable balance
	CustodyAccount AccountID

	CreatedAt time.Time
}
