package repo_interfaces

import (
	"context"

	"github.com/api-sage/account-ledger-service/src/internal/domain"
)

type AccountRepository interface {
	// Create fails with domain.ErrDuplicateAccount when the generated
	// account number is already taken; uniqueness is a store constraint.
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Account, error)
	Exists(ctx context.Context, accountNumber string) (bool, error)
}
