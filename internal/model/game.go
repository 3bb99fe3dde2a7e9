package model

import "time"

// GameID identifies a game. IDs are caller-supplied and unique per game
// client, including games that have already settled.
type GameID uint64

// GameType identifies an outcome-rule set (e.g. "rps-basic")
type GameType string

// Choice is a player's discrete move, in [0, K) for a K-choice game type
type Choice uint8

// Phase represents the current lifecycle state of a game
type Phase string

const (
	PhaseCreated   Phase = "created"   // Player1 committed and staked, waiting for an opponent
	PhaseJoined    Phase = "joined"    // Player2 staked and chose, waiting for player1's reveal
	PhaseCompleted Phase = "completed" // Settled with an outcome
	PhaseCancelled Phase = "cancelled" // Cancelled by player1 before anyone joined
)

// Result is the judged outcome of a completed game
type Result string

const (
	ResultPlayer1 Result = "player1"
	ResultPlayer2 Result = "player2"
	ResultTie     Result = "tie"
)

// Game represents one wagered match between two players of a game client.
//
// Player2 and Player2Choice are meaningful only from PhaseJoined onward;
// Player1Choice and Result only at PhaseCompleted. The commitment digest is
// opaque to the engine: it is stored verbatim at creation and handed to proof
// verification at completion, never recomputed.
type Game struct {
	ClientID ClientID
	ID       GameID
	Type     GameType
	Phase    Phase

	Player1 Username
	Player2 Username

	// Stake per side, in the manager's denomination. Fixed at creation.
	Stake int64

	Commitment    []byte
	Player2Choice Choice
	Player1Choice Choice
	Result        Result

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terminal reports whether the game has reached a final phase.
// Terminal games accept no further operations, ever.
func (g *Game) Terminal() bool {
	return g.Phase == PhaseCompleted || g.Phase == PhaseCancelled
}

// Settlement is the exact money movement of a completed game.
// Player1Payout + Player2Payout + ClientFee + PlatformFee == Pot, always.
type Settlement struct {
	Result        Result
	Pot           int64
	Player1Payout int64
	Player2Payout int64
	ClientFee     int64
	PlatformFee   int64
}

// Refund is the money movement of a cancelled game.
// Amount + ClientFee equals the single deposited stake.
type Refund struct {
	Amount    int64
	ClientFee int64
}
