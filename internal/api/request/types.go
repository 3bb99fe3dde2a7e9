package request

// LoginRequest is the request body for a game client logging in
type LoginRequest struct {
	ClientID  string `json:"client_id"`
	SignerKey string `json:"signer_key"`
}

// InitManagerRequest is the request body for initializing the manager
type InitManagerRequest struct {
	ClientFeeBps    uint16 `json:"client_fee_bps"`
	PlatformFeeBps  uint16 `json:"platform_fee_bps"`
	PlatformAccount string `json:"platform_account,omitempty"`
	Denomination    string `json:"denomination,omitempty"`
}

// RegisterClientRequest is the request body for registering a game client
type RegisterClientRequest struct {
	Name string `json:"name"`
}

// CreditRequest is the request body for funding a custody account
type CreditRequest struct {
	Amount int64 `json:"amount"`
}

// RegisterPlayerRequest is the request body for registering a player
type RegisterPlayerRequest struct {
	Username string `json:"username"`
	LoginKey string `json:"login_key"`
}

// CreateGameRequest is the request body for creating a game.
// Commitment is the base64-encoded 32-byte digest.
type CreateGameRequest struct {
	GameID     uint64 `json:"game_id"`
	GameType   string `json:"game_type"`
	Player1    string `json:"player1"`
	Stake      int64  `json:"stake"`
	Commitment []byte `json:"commitment"`
}

// JoinGameRequest is the request body for joining a game
type JoinGameRequest struct {
	Player2 string `json:"player2"`
	Choice  uint8  `json:"choice"`
}

// CompleteGameRequest is the request body for completing a game.
// Proof is the base64-encoded proof of commitment opening.
type CompleteGameRequest struct {
	Choice uint8  `json:"choice"`
	Proof  []byte `json:"proof"`
}

// CancelGameRequest is the request body for cancelling a game
type CancelGameRequest struct {
	Player1 string `json:"player1"`
}
