package response

import (
	"time"

	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/auth"
)

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	ClientID     string    `json:"client_id"`
	ClientName   string    `json:"client_name"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		ClientID:     string(s.ClientID),
		ClientName:   s.Client.Name,
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// RegisteredClient is the response for client registration. SignerKey is
// returned exactly once; only its hash is stored.
type RegisteredClient struct {
	ClientID   string `json:"client_id"`
	Name       string `json:"name"`
	SignerKey  string `json:"signer_key"`
	FeeAccount string `json:"fee_account"`
}

// Player represents a player in API responses
type Player struct {
	Username       string    `json:"username"`
	ClientID       string    `json:"client_id"`
	CustodyAccount string    `json:"custody_account"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Username:       string(p.Username),
		ClientID:       string(p.ClientID),
		CustodyAccount: string(p.CustodyAccount),
		CreatedAt:      p.CreatedAt,
	}
}

// Account represents a custody account balance
type Account struct {
	ID      string `json:"id"`
	Balance int64  `json:"balance"`
}

// Game represents a game in API responses. Player2 fields appear from the
// joined phase onward; player1's choice and the result only once completed.
type Game struct {
	GameID        uint64    `json:"game_id"`
	GameType      string    `json:"game_type"`
	Phase         string    `json:"phase"`
	Player1       string    `json:"player1"`
	Player2       string    `json:"player2,omitempty"`
	Stake         int64     `json:"stake"`
	Commitment    []byte    `json:"commitment"`
	Player2Choice *uint8    `json:"player2_choice,omitempty"`
	Player1Choice *uint8    `json:"player1_choice,omitempty"`
	Result        string    `json:"result,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	resp := Game{
		GameID:     uint64(g.ID),
		GameType:   string(g.Type),
		Phase:      string(g.Phase),
		Player1:    string(g.Player1),
		Player2:    string(g.Player2),
		Stake:      g.Stake,
		Commitment: g.Commitment,
		Result:     string(g.Result),
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
	if g.Phase == model.PhaseJoined || g.Phase == model.PhaseCompleted {
		c2 := uint8(g.Player2Choice)
		resp.Player2Choice = &c2
	}
	if g.Phase == model.PhaseCompleted {
		c1 := uint8(g.Player1Choice)
		resp.Player1Choice = &c1
	}
	return resp
}

// Settlement is the money movement of a completed game
type Settlement struct {
	Result        string `json:"result"`
	Pot           int64  `json:"pot"`
	Player1Payout int64  `json:"player1_payout"`
	Player2Payout int64  `json:"player2_payout"`
	ClientFee     int64  `json:"client_fee"`
	PlatformFee   int64  `json:"platform_fee"`
}

// SettlementFromModel converts a model.Settlement
func SettlementFromModel(s *model.Settlement) Settlement {
	return Settlement{
		Result:        string(s.Result),
		Pot:           s.Pot,
		Player1Payout: s.Player1Payout,
		Player2Payout: s.Player2Payout,
		ClientFee:     s.ClientFee,
		PlatformFee:   s.PlatformFee,
	}
}

// CompleteGameResponse is the response after completing a game
type CompleteGameResponse struct {
	Game       Game       `json:"game"`
	Settlement Settlement `json:"settlement"`
}

// Refund is the money movement of a cancelled game
type Refund struct {
	Amount    int64 `json:"amount"`
	ClientFee int64 `json:"client_fee"`
}

// RefundFromModel converts a model.Refund
func RefundFromModel(r *model.Refund) Refund {
	return Refund{
		Amount:    r.Amount,
		ClientFee: r.ClientFee,
	}
}

// CancelGameResponse is the response after cancelling a game
type CancelGameResponse struct {
	Game   Game   `json:"game"`
	Refund Refund `json:"refund"`
}

// PlayerStats represents a player's lifetime record for one game type
type PlayerStats struct {
	Username     string   `json:"username"`
	GameType     string   `json:"game_type"`
	TotalGames   uint64   `json:"total_games"`
	TotalWins    uint64   `json:"total_wins"`
	TotalLosses  uint64   `json:"total_losses"`
	TotalDraws   uint64   `json:"total_draws"`
	TotalChoices []uint64 `json:"total_choices"`
}

// PlayerStatsFromModel converts model.PlayerGameStats
func PlayerStatsFromModel(s *model.PlayerGameStats) PlayerStats {
	return PlayerStats{
		Username:     string(s.Username),
		GameType:     string(s.GameType),
		TotalGames:   s.TotalGames,
		TotalWins:    s.TotalWins,
		TotalLosses:  s.TotalLosses,
		TotalDraws:   s.TotalDraws,
		TotalChoices: s.TotalChoices,
	}
}
