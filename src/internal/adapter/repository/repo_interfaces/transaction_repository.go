package repo_interfaces

import (
	"context"

	"github.com/api-sage/account-ledger-service/src/internal/domain"
)

type TransactionRepository interface {
	// ListByAccountNumber returns records oldest first. No records is an
	// empty slice, not an error.
	ListByAccountNumber(ctx context.Context, accountNumber string) ([]domain.TransactionRecord, error)
}
