// Package game implements the commit-reveal wager state machine. Each game
// moves Created -> Joined -> Completed, or Created -> Cancelled, and every
// transition that touches money validates fully before mutating anything.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/zkgames/zkgames-go/internal/dependencies/clock"
	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/services/escrow"
	"github.com/zkgames/zkgames-go/internal/services/fees"
	"github.com/zkgames/zkgames-go/internal/services/outcome"
	"github.com/zkgames/zkgames-go/internal/services/stats"
	"github.com/zkgames/zkgames-go/internal/storage"
	"github.com/zkgames/zkgames-go/internal/zk"
)

// gameRef identifies one game for lock scoping
type gameRef struct {
	clientID model.ClientID
	id       model.GameID
}

// Controller drives game lifecycle transitions. Operations on the same game
// serialize on a per-game lock; distinct games only contend inside the escrow
// ledger.
type Controller struct {
	storage  storage.Storage
	escrow   *escrow.Ledger
	rules    *outcome.Registry
	stats    *stats.Service
	verifier zk.Verifier
	clock    clock.Clock
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[gameRef]*sync.Mutex
}

// NewController creates a game controller
func NewController(
	storage storage.Storage,
	escrow *escrow.Ledger,
	rules *outcome.Registry,
	stats *stats.Service,
	verifier zk.Verifier,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		escrow:   escrow,
		rules:    rules,
		stats:    stats,
		verifier: verifier,
		clock:    clock,
		logger:   logger,
		locks:    make(map[gameRef]*sync.Mutex),
	}
}

// lockGame acquires the per-game lock, creating it on first use. Games live
// forever, so locks are never reclaimed; one mutex per game ever played is an
// acceptable cost for strict per-game serialization.
func (c *Controller) lockGame(ref gameRef) func() {
	c.mu.Lock()
	lock, ok := c.locks[ref]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[ref] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// CreateGame opens a game: player1 stakes and commits to a hidden choice.
// The commitment digest is stored verbatim; nothing about it is checked here
// beyond its length.
func (c *Controller) CreateGame(
	ctx context.Context,
	clientID model.ClientID,
	gameID model.GameID,
	gameType model.GameType,
	player1 model.Username,
	stake int64,
	commitment []byte,
) (*model.Game, error) {
	unlock := c.lockGame(gameRef{clientID, gameID})
	defer unlock()

	if _, err := c.storage.GetManagerConfig(ctx); err != nil {
		return nil, err
	}
	if _, err := c.rules.Rules(gameType); err != nil {
		return nil, err
	}
	if stake <= 0 {
		return nil, model.ErrInvalidStake
	}
	// The pot is 2*stake and must stay representable
	if stake > math.MaxInt64/2 {
		return nil, fmt.Errorf("%w: stake %d too large", model.ErrInvalidStake, stake)
	}
	if len(commitment) != zk.CommitmentSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", model.ErrInvalidCommitment, len(commitment), zk.CommitmentSize)
	}

	// Game ids are never reusable, even after the game settles
	exists, err := c.storage.GameExists(ctx, clientID, gameID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateGameID
	}

	p1, err := c.storage.GetPlayer(ctx, player1)
	if err != nil {
		return nil, err
	}
	if p1.ClientID != clientID {
		return nil, model.ErrPlayerNotFound
	}

	if err := c.escrow.Deposit(ctx, p1.CustodyAccount, stake); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ClientID:   clientID,
		ID:         gameID,
		Type:       gameType,
		Phase:      model.PhaseCreated,
		Player1:    player1,
		Stake:      stake,
		Commitment: commitment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		// Return the stake so the deposit doesn't strand in the vault
		c.refundDeposit(ctx, p1.CustodyAccount, stake)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("client_id", string(clientID)),
		slog.Uint64("game_id", uint64(gameID)),
		slog.String("game_type", string(gameType)),
		slog.String("player1", string(player1)),
		slog.Int64("stake", stake),
	)
	return game, nil
}

// JoinGame enters player2 into a created game. Player2's choice is taken in
// the clear: player1 already committed and cannot react to it, and the
// settlement fires before player2 sees player1's reveal.
func (c *Controller) JoinGame(
	ctx context.Context,
	clientID model.ClientID,
	gameID model.GameID,
	player2 model.Username,
	choice model.Choice,
) (*model.Game, error) {
	unlock := c.lockGame(gameRef{clientID, gameID})
	defer unlock()

	game, err := c.storage.GetGame(ctx, clientID, gameID)
	if err != nil {
		return nil, err
	}
	if game.Phase != model.PhaseCreated {
		return nil, fmt.Errorf("%w: join requires %s, game is %s", model.ErrWrongPhase, model.PhaseCreated, game.Phase)
	}
	if player2 == game.Player1 {
		return nil, model.ErrSelfPlayNotAllowed
	}

	rules, err := c.rules.Rules(game.Type)
	if err != nil {
		return nil, err
	}
	if int(choice) >= rules.Choices() {
		return nil, fmt.Errorf("%w: choice %d, game type %s takes 0..%d",
			model.ErrInvalidChoice, choice, game.Type, rules.Choices()-1)
	}

	p2, err := c.storage.GetPlayer(ctx, player2)
	if err != nil {
		return nil, err
	}
	if p2.ClientID != clientID {
		return nil, model.ErrPlayerNotFound
	}

	if err := c.escrow.Deposit(ctx, p2.CustodyAccount, game.Stake); err != nil {
		return nil, err
	}

	game.Player2 = player2
	game.Player2Choice = choice
	game.Phase = model.PhaseJoined
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.refundDeposit(ctx, p2.CustodyAccount, game.Stake)
		return nil, err
	}

	c.logger.Info("game joined",
		slog.String("client_id", string(clientID)),
		slog.Uint64("game_id", uint64(gameID)),
		slog.String("player2", string(player2)),
	)
	return game, nil
}

// CompleteGame settles a joined game: player1 reveals their choice with a
// proof that it matches the stored commitment. A rejected proof leaves the
// game joined, so a prover with transient input trouble can retry; only a
// verified reveal moves money.
func (c *Controller) CompleteGame(
	ctx context.Context,
	clientID model.ClientID,
	gameID model.GameID,
	choice model.Choice,
	proofData []byte,
) (*model.Game, *model.Settlement, error) {
	unlock := c.lockGame(gameRef{clientID, gameID})
	defer unlock()

	game, err := c.storage.GetGame(ctx, clientID, gameID)
	if err != nil {
		return nil, nil, err
	}
	if game.Phase != model.PhaseJoined {
		return nil, nil, fmt.Errorf("%w: complete requires %s, game is %s", model.ErrWrongPhase, model.PhaseJoined, game.Phase)
	}

	rules, err := c.rules.Rules(game.Type)
	if err != nil {
		return nil, nil, err
	}
	if int(choice) >= rules.Choices() {
		return nil, nil, fmt.Errorf("%w: choice %d, game type %s takes 0..%d",
			model.ErrInvalidChoice, choice, game.Type, rules.Choices()-1)
	}

	ok := c.verifier.Verify(proofData, zk.PublicInputs{
		Commitment: game.Commitment,
		Binding:    zk.Binding{ClientID: clientID, GameID: gameID},
		Choice:     choice,
	})
	if !ok {
		c.logger.Warn("proof rejected",
			slog.String("client_id", string(clientID)),
			slog.Uint64("game_id", uint64(gameID)),
		)
		return nil, nil, model.ErrProofRejected
	}

	cfg, err := c.storage.GetManagerConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	client, err := c.storage.GetClient(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	p1, err := c.storage.GetPlayer(ctx, game.Player1)
	if err != nil {
		return nil, nil, err
	}
	p2, err := c.storage.GetPlayer(ctx, game.Player2)
	if err != nil {
		return nil, nil, err
	}

	result := rules.Judge(choice, game.Player2Choice)
	pot := game.Stake * 2
	split := fees.Compute(pot, cfg.ClientFeeBps, cfg.PlatformFeeBps)

	settlement := &model.Settlement{
		Result:      result,
		Pot:         pot,
		ClientFee:   split.ClientFee,
		PlatformFee: split.PlatformFee,
	}
	switch result {
	case model.ResultPlayer1:
		settlement.Player1Payout = split.WinnerPayout
	case model.ResultPlayer2:
		settlement.Player2Payout = split.WinnerPayout
	case model.ResultTie:
		settlement.Player1Payout, settlement.Player2Payout = fees.TieSplit(split.WinnerPayout)
	}

	legs := make([]escrow.Leg, 0, 4)
	for _, leg := range []escrow.Leg{
		{To: p1.CustodyAccount, Amount: settlement.Player1Payout},
		{To: p2.CustodyAccount, Amount: settlement.Player2Payout},
		{To: client.FeeAccount, Amount: settlement.ClientFee},
		{To: cfg.PlatformAccount, Amount: settlement.PlatformFee},
	} {
		if leg.Amount > 0 {
			legs = append(legs, leg)
		}
	}

	// Persist the terminal phase before releasing funds. A failed save moves
	// nothing and leaves the game joined for a clean retry; a fault after the
	// save can at worst strand the pot in the vault, never pay it twice.
	prior := *game
	game.Player1Choice = choice
	game.Result = result
	game.Phase = model.PhaseCompleted
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, nil, err
	}

	if err := c.escrow.Settle(ctx, pot, legs); err != nil {
		// Settle validates before it mutates, so the pot is still in the
		// vault; restore the joined game so the reveal can be retried.
		if restoreErr := c.storage.SaveGame(ctx, &prior); restoreErr != nil {
			c.logger.Error("failed to restore game after settlement failure",
				slog.String("client_id", string(clientID)),
				slog.Uint64("game_id", uint64(gameID)),
				slog.String("error", restoreErr.Error()),
			)
		}
		return nil, nil, err
	}

	c.recordStats(ctx, game, rules.Choices())

	c.logger.Info("game completed",
		slog.String("client_id", string(clientID)),
		slog.Uint64("game_id", uint64(gameID)),
		slog.String("result", string(result)),
		slog.Int64("pot", pot),
	)
	return game, settlement, nil
}

// CancelGame lets player1 withdraw a game nobody joined. The client keeps its
// fee cut of the lone stake; the platform collects nothing since no outcome
// occurred.
func (c *Controller) CancelGame(
	ctx context.Context,
	clientID model.ClientID,
	gameID model.GameID,
	caller model.Username,
) (*model.Game, *model.Refund, error) {
	unlock := c.lockGame(gameRef{clientID, gameID})
	defer unlock()

	game, err := c.storage.GetGame(ctx, clientID, gameID)
	if err != nil {
		return nil, nil, err
	}
	if game.Phase != model.PhaseCreated {
		return nil, nil, fmt.Errorf("%w: cancel requires %s, game is %s", model.ErrWrongPhase, model.PhaseCreated, game.Phase)
	}
	if caller != game.Player1 {
		return nil, nil, model.ErrUnauthorized
	}

	cfg, err := c.storage.GetManagerConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	client, err := c.storage.GetClient(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	p1, err := c.storage.GetPlayer(ctx, game.Player1)
	if err != nil {
		return nil, nil, err
	}

	amount, clientFee := fees.Cancellation(game.Stake, cfg.ClientFeeBps)
	refund := &model.Refund{Amount: amount, ClientFee: clientFee}

	legs := make([]escrow.Leg, 0, 2)
	if amount > 0 {
		legs = append(legs, escrow.Leg{To: p1.CustodyAccount, Amount: amount})
	}
	if clientFee > 0 {
		legs = append(legs, escrow.Leg{To: client.FeeAccount, Amount: clientFee})
	}

	if err := c.escrow.Settle(ctx, game.Stake, legs); err != nil {
		return nil, nil, err
	}

	game.Phase = model.PhaseCancelled
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save cancelled game",
			slog.String("client_id", string(clientID)),
			slog.Uint64("game_id", uint64(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	c.logger.Info("game cancelled",
		slog.String("client_id", string(clientID)),
		slog.Uint64("game_id", uint64(gameID)),
		slog.Int64("refund", amount),
		slog.Int64("client_fee", clientFee),
	)
	return game, refund, nil
}

// GetGame retrieves a game by id within a client's scope
func (c *Controller) GetGame(ctx context.Context, clientID model.ClientID, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, clientID, gameID)
}

// refundDeposit reverses a deposit after a failed save so the stake doesn't
// strand in the vault. Failures here are logged, not returned: the caller is
// already propagating the original fault.
func (c *Controller) refundDeposit(ctx context.Context, to model.AccountID, stake int64) {
	err := c.escrow.Settle(ctx, stake, []escrow.Leg{{To: to, Amount: stake}})
	if err != nil {
		c.logger.Error("failed to reverse deposit",
			slog.String("account", string(to)),
			slog.Int64("amount", stake),
			slog.String("error", err.Error()),
		)
	}
}

// recordStats folds a completed game into both players' records. Stats are
// bookkeeping, not money: a failure is logged and the completion stands.
func (c *Controller) recordStats(ctx context.Context, game *model.Game, choices int) {
	p1Outcome := stats.OutcomeFor(game.Result, true)
	p2Outcome := stats.OutcomeFor(game.Result, false)

	if err := c.stats.Record(ctx, game.Player1, game.Type, choices, game.Player1Choice, p1Outcome); err != nil {
		c.logger.Error("failed to record player1 stats",
			slog.String("username", string(game.Player1)),
			slog.String("error", err.Error()),
		)
	}
	if err := c.stats.Record(ctx, game.Player2, game.Type, choices, game.Player2Choice, p2Outcome); err != nil {
		c.logger.Error("failed to record player2 stats",
			slog.String("username", string(game.Player2)),
			slog.String("error", err.Error()),
		)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, clientID model.ClientID, gameID model.GameID, gameType model.GameType, player1 model.Username, stake int64, commitment []byte) (*model.Game, error)
	JoinGame(ctx context.Context, clientID model.ClientID, gameID model.GameID, player2 model.Username, choice model.Choice) (*model.Game, error)
	CompleteGame(ctx context.Context, clientID model.ClientID, gameID model.GameID, choice model.Choice, proofData []byte) (*model.Game, *model.Settlement, error)
	CancelGame(ctx context.Context, clientID model.ClientID, gameID model.GameID, caller model.Username) (*model.Game, *model.Refund, error)
	GetGame(ctx context.Context, clientID model.ClientID, gameID model.GameID) (*model.Game, error)
}

var _ ControllerInterface = (*Controller)(nil)
