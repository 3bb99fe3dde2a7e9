// Package escrow moves stake value between custody accounts and the pooled
// vault. All vault accounting serializes on the ledger's lock so conservation
// holds even under concurrent games.
package escrow

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/storage"
)

// Leg is one payout of a settlement: amount units from the vault to an
// account. Refunds and fee cuts are legs like any other payout.
type Leg struct {
	To     model.AccountID
	Amount int64
}

// Ledger owns all custody balance mutations. No other component writes
// account balances.
type Ledger struct {
	storage storage.Storage
	logger  *slog.Logger

	mu sync.Mutex
}

// New creates a Ledger on the given storage
func New(storage storage.Storage, logger *slog.Logger) *Ledger {
	return &Ledger{
		storage: storage,
		logger:  logger,
	}
}

// CreateAccount provisions a custody account with zero balance.
// Creating an existing account is a no-op.
func (l *Ledger) CreateAccount(ctx context.Context, id model.AccountID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.storage.GetAccount(ctx, id); err == nil {
		return nil
	}
	return l.storage.SaveAccount(ctx, &model.Account{ID: id})
}

// Credit funds a custody account. This is the administrative on-ramp at the
// collaborator boundary, not an engine operation.
func (l *Ledger) Credit(ctx context.Context, id model.AccountID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.storage.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if acct.Balance > math.MaxInt64-amount {
		return fmt.Errorf("credit of %d to %s would overflow", amount, id)
	}
	acct.Balance += amount
	return l.storage.SaveAccount(ctx, acct)
}

// Balance returns the current balance of an account
func (l *Ledger) Balance(ctx context.Context, id model.AccountID) (int64, error) {
	acct, err := l.storage.GetAccount(ctx, id)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// VaultBalance returns the pooled vault balance
func (l *Ledger) VaultBalance(ctx context.Context) (int64, error) {
	return l.Balance(ctx, model.VaultAccount)
}

// Deposit moves a stake from a player's custody account into the vault.
// The amount must be the game's exact stake; partial deposits never happen.
func (l *Ledger) Deposit(ctx context.Context, from model.AccountID, amount int64) error {
	if amount <= 0 {
		return model.ErrInvalidStake
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acct, err := l.storage.GetAccount(ctx, from)
	if err != nil {
		return err
	}
	if acct.Balance < amount {
		return fmt.Errorf("%w: account %s holds %d, needs %d",
			model.ErrInsufficientFunds, from, acct.Balance, amount)
	}

	vault, err := l.storage.GetAccount(ctx, model.VaultAccount)
	if err != nil {
		return err
	}
	if vault.Balance > math.MaxInt64-amount {
		return fmt.Errorf("%w: vault deposit of %d overflows", model.ErrConservationViolation, amount)
	}

	acct.Balance -= amount
	vault.Balance += amount

	if err := l.storage.SaveAccount(ctx, acct); err != nil {
		return err
	}
	if err := l.storage.SaveAccount(ctx, vault); err != nil {
		// Put the debit back so no value vanishes on a storage fault
		acct.Balance += amount
		_ = l.storage.SaveAccount(ctx, acct)
		return err
	}

	l.logger.Debug("stake deposited",
		slog.String("from", string(from)),
		slog.Int64("amount", amount),
	)
	return nil
}

// Settle pays out a game atomically: total units leave the vault, split
// exactly across the legs. Everything is validated before any balance moves;
// a sum mismatch or short vault is a conservation violation and aborts the
// caller's whole transition.
func (l *Ledger) Settle(ctx context.Context, total int64, legs []Leg) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sum int64
	for _, leg := range legs {
		if leg.Amount < 0 {
			return fmt.Errorf("%w: negative leg %d to %s", model.ErrConservationViolation, leg.Amount, leg.To)
		}
		if sum > math.MaxInt64-leg.Amount {
			return fmt.Errorf("%w: settlement legs overflow", model.ErrConservationViolation)
		}
		sum += leg.Amount
	}
	if sum != total {
		return fmt.Errorf("%w: legs sum to %d, deposits were %d", model.ErrConservationViolation, sum, total)
	}

	vault, err := l.storage.GetAccount(ctx, model.VaultAccount)
	if err != nil {
		return err
	}
	if vault.Balance < total {
		return fmt.Errorf("%w: vault holds %d, settlement needs %d",
			model.ErrConservationViolation, vault.Balance, total)
	}

	// Resolve every destination and check for overflow before mutating
	// anything
	accounts := make(map[model.AccountID]*model.Account, len(legs))
	credits := make(map[model.AccountID]int64, len(legs))
	for _, leg := range legs {
		if _, ok := accounts[leg.To]; !ok {
			acct, err := l.storage.GetAccount(ctx, leg.To)
			if err != nil {
				return err
			}
			accounts[leg.To] = acct
		}
		credits[leg.To] += leg.Amount
	}
	for id, credit := range credits {
		if accounts[id].Balance > math.MaxInt64-credit {
			return fmt.Errorf("%w: payout of %d to %s overflows", model.ErrConservationViolation, credit, id)
		}
	}

	vault.Balance -= total
	for id, credit := range credits {
		accounts[id].Balance += credit
	}

	if err := l.storage.SaveAccount(ctx, vault); err != nil {
		return err
	}
	for _, acct := range accounts {
		if err := l.storage.SaveAccount(ctx, acct); err != nil {
			return err
		}
	}

	l.logger.Debug("settlement applied",
		slog.Int64("total", total),
		slog.Int("legs", len(legs)),
	)
	return nil
}
