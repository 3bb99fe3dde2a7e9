// Package stats maintains per-player, per-game-type lifetime records.
// Records are created lazily on a player's first completed game.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/storage"
)

// Outcome is a completed game's result from one player's perspective
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// OutcomeFor maps a game result onto one side's perspective
func OutcomeFor(result model.Result, player1 bool) Outcome {
	switch result {
	case model.ResultTie:
		return OutcomeDraw
	case model.ResultPlayer1:
		if player1 {
			return OutcomeWin
		}
		return OutcomeLoss
	default:
		if player1 {
			return OutcomeLoss
		}
		return OutcomeWin
	}
}

// Service records and reads player statistics
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a stats service on the given storage
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Record folds one completed game into a player's record for the game type,
// creating the record on first use. choices is the game type's cardinality K.
func (s *Service) Record(ctx context.Context, username model.Username, gameType model.GameType, choices int, choice model.Choice, outcome Outcome) error {
	record, err := s.storage.GetStats(ctx, username, gameType)
	if errors.Is(err, model.ErrStatsNotFound) {
		record = model.NewPlayerGameStats(username, gameType, choices)
	} else if err != nil {
		return err
	}

	if int(choice) >= len(record.TotalChoices) {
		return fmt.Errorf("%w: choice %d out of range for %s", model.ErrInvalidChoice, choice, gameType)
	}

	record.TotalGames++
	record.TotalChoices[choice]++
	switch outcome {
	case OutcomeWin:
		record.TotalWins++
	case OutcomeLoss:
		record.TotalLosses++
	case OutcomeDraw:
		record.TotalDraws++
	}

	if err := s.storage.SaveStats(ctx, record); err != nil {
		return err
	}

	s.logger.Debug("stats recorded",
		slog.String("username", string(username)),
		slog.String("game_type", string(gameType)),
		slog.String("outcome", string(outcome)),
	)
	return nil
}

// Get returns a player's record for a game type. A player with no completed
// games of the type gets a zeroed record, not an error.
func (s *Service) Get(ctx context.Context, username model.Username, gameType model.GameType, choices int) (*model.PlayerGameStats, error) {
	if _, err := s.storage.GetPlayer(ctx, username); err != nil {
		return nil, err
	}

	record, err := s.storage.GetStats(ctx, username, gameType)
	if errors.Is(err, model.ErrStatsNotFound) {
		return model.NewPlayerGameStats(username, gameType, choices), nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}
