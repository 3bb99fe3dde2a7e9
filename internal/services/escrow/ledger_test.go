package escrow

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/zkgames/zkgames-go/internal/model"
	"github.com/zkgames/zkgames-go/internal/storage/memory"
	"github.com/zkgames/zkgames-go/internal/testutil"
)

type LedgerSuite struct {
	suite.Suite
	storage *memory.Storage
	ledger  *Ledger
	ctx     context.Context
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.storage = memory.New()
	s.ledger = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.ledger.CreateAccount(s.ctx, model.VaultAccount))
}

func (s *LedgerSuite) fund(id model.AccountID, amount int64) {
	s.Require().NoError(s.ledger.CreateAccount(s.ctx, id))
	s.Require().NoError(s.ledger.Credit(s.ctx, id, amount))
}

func (s *LedgerSuite) TestCreateAccountIdempotent() {
	id := model.PlayerAccount("alice")
	s.fund(id, 500)

	// Creating again must not reset the balance
	s.Require().NoError(s.ledger.CreateAccount(s.ctx, id))

	balance, err := s.ledger.Balance(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(500), balance)
}

func (s *LedgerSuite) TestCreditRequiresExistingAccount() {
	err := s.ledger.Credit(s.ctx, model.PlayerAccount("ghost"), 100)
	s.ErrorIs(err, model.ErrMissingCustodyAccount)
}

func (s *LedgerSuite) TestCreditRejectsNonPositive() {
	id := model.PlayerAccount("alice")
	s.Require().NoError(s.ledger.CreateAccount(s.ctx, id))

	s.Error(s.ledger.Credit(s.ctx, id, 0))
	s.Error(s.ledger.Credit(s.ctx, id, -5))
}

func (s *LedgerSuite) TestCreditOverflow() {
	id := model.PlayerAccount("alice")
	s.fund(id, math.MaxInt64-10)

	s.Error(s.ledger.Credit(s.ctx, id, 11))
}

func (s *LedgerSuite) TestDepositMovesStakeToVault() {
	alice := model.PlayerAccount("alice")
	s.fund(alice, 1_000_000)

	s.Require().NoError(s.ledger.Deposit(s.ctx, alice, 400_000))

	balance, err := s.ledger.Balance(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(int64(600_000), balance)

	vault, err := s.ledger.VaultBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(400_000), vault)
}

func (s *LedgerSuite) TestDepositInsufficientFunds() {
	alice := model.PlayerAccount("alice")
	s.fund(alice, 100)

	err := s.ledger.Deposit(s.ctx, alice, 101)
	s.ErrorIs(err, model.ErrInsufficientFunds)

	// Nothing moved
	balance, err := s.ledger.Balance(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(int64(100), balance)

	vault, err := s.ledger.VaultBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), vault)
}

func (s *LedgerSuite) TestDepositRejectsNonPositive() {
	alice := model.PlayerAccount("alice")
	s.fund(alice, 100)

	s.ErrorIs(s.ledger.Deposit(s.ctx, alice, 0), model.ErrInvalidStake)
	s.ErrorIs(s.ledger.Deposit(s.ctx, alice, -1), model.ErrInvalidStake)
}

func (s *LedgerSuite) TestSettleSplitsVaultExactly() {
	alice := model.PlayerAccount("alice")
	bob := model.PlayerAccount("bob")
	fees := model.ClientFeeAccount("gc_test")
	s.fund(alice, 1_000_000)
	s.fund(bob, 1_000_000)
	s.Require().NoError(s.ledger.CreateAccount(s.ctx, fees))

	s.Require().NoError(s.ledger.Deposit(s.ctx, alice, 1_000_000))
	s.Require().NoError(s.ledger.Deposit(s.ctx, bob, 1_000_000))

	err := s.ledger.Settle(s.ctx, 2_000_000, []Leg{
		{To: alice, Amount: 1_980_000},
		{To: fees, Amount: 20_000},
	})
	s.Require().NoError(err)

	aliceBalance, err := s.ledger.Balance(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(int64(1_980_000), aliceBalance)

	feeBalance, err := s.ledger.Balance(s.ctx, fees)
	s.Require().NoError(err)
	s.Equal(int64(20_000), feeBalance)

	vault, err := s.ledger.VaultBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), vault)
}

func (s *LedgerSuite) TestSettleRejectsSumMismatch() {
	alice := model.PlayerAccount("alice")
	s.fund(alice, 1_000)
	s.Require().NoError(s.ledger.Deposit(s.ctx, alice, 1_000))

	err := s.ledger.Settle(s.ctx, 1_000, []Leg{
		{To: alice, Amount: 999},
	})
	s.ErrorIs(err, model.ErrConservationViolation)

	// Vault untouched
	vault, err := s.ledger.VaultBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1_000), vault)
}

func (s *LedgerSuite) TestSettleRejectsNegativeLeg() {
	alice := model.PlayerAccount("alice")
	s.fund(alice, 1_000)
	s.Require().NoError(s.ledger.Deposit(s.ctx, alice, 1_000))

	err := s.ledger.Settle(s.ctx, 1_000, []Leg{
		{To: alice, Amount: 2_000},
		{To: alice, Amount: -1_000},
	})
	s.ErrorIs(err, model.ErrConservationViolation)
}

func (s *LedgerSuite) TestSettleRejectsShortVault() {
	alice := model.PlayerAccount("alice")
	s.fund(alice, 500)
	s.Require().NoError(s.ledger.Deposit(s.ctx, alice, 500))

	err := s.ledger.Settle(s.ctx, 1_000, []Leg{
		{To: alice, Amount: 1_000},
	})
	s.ErrorIs(err, model.ErrConservationViolation)
}

func (s *LedgerSuite) TestSettleRejectsUnknownDestination() {
	alice := model.PlayerAccount("alice")
	s.fund(alice, 1_000)
	s.Require().NoError(s.ledger.Deposit(s.ctx, alice, 1_000))

	err := s.ledger.Settle(s.ctx, 1_000, []Leg{
		{To: model.PlayerAccount("ghost"), Amount: 1_000},
	})
	s.ErrorIs(err, model.ErrMissingCustodyAccount)

	// Vault untouched
	vault, err := s.ledger.VaultBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1_000), vault)
}

func (s *LedgerSuite) TestSettleMergesDuplicateDestinations() {
	alice := model.PlayerAccount("alice")
	s.fund(alice, 1_000)
	s.Require().NoError(s.ledger.Deposit(s.ctx, alice, 1_000))

	err := s.ledger.Settle(s.ctx, 1_000, []Leg{
		{To: alice, Amount: 600},
		{To: alice, Amount: 400},
	})
	s.Require().NoError(err)

	balance, err := s.ledger.Balance(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(int64(1_000), balance)
}
