package repo_interfaces

import (
	"context"

	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository is the atomic mutation surface of the ledger. Every method
// commits the balance change and its transaction record in one store
// transaction, with the affected account rows locked for the duration, so a
// balance is never observable without its paired ledger entry.
type LedgerRepository interface {
	// ApplyMovement credits or debits one account. It fails with
	// domain.ErrAccountNotFound when the account is absent and with
	// domain.ErrInsufficientFunds when a withdrawal exceeds the balance;
	// in both cases nothing is persisted.
	ApplyMovement(ctx context.Context, accountNumber string, kind domain.MovementKind, amount decimal.Decimal) (domain.Account, domain.TransactionRecord, error)

	// Transfer debits from and credits to as one unit: either both account
	// rows and both transaction records commit, or none do. Account rows
	// are locked in account-number order regardless of direction.
	Transfer(ctx context.Context, fromAccountNumber string, toAccountNumber string, amount decimal.Decimal) (TransferResult, error)
}

type TransferResult struct {
	From       domain.Account
	To         domain.Account
	Withdrawal domain.TransactionRecord
	Deposit    domain.TransactionRecord
}
