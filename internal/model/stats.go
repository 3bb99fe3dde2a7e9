package model

// PlayerGameStats aggregates one player's record for one game type.
// Counters only ever increase, and only the completion transition mutates
// them. Ties land in TotalDraws, never in TotalLosses.
type PlayerGameStats struct {
	Username Username
	GameType GameType

	TotalGames  uint64
	TotalWins   uint64
	TotalLosses uint64
	TotalDraws  uint64

	// TotalChoices[i] counts completed games in which the player picked i
	TotalChoices []uint64
}

// NewPlayerGameStats returns a zeroed record for a K-choice game type
func NewPlayerGameStats(username Username, gameType GameType, choices int) *PlayerGameStats {
	return &PlayerGameStats{
		Username:     username,
		GameType:     gameType,
		TotalChoices: make([]uint64, choices),
	}
}
