package implementations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/api-sage/account-ledger-service/src/internal/logger"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByAccountNumber(ctx context.Context, accountNumber string) ([]domain.TransactionRecord, error) {
	logger.Info("transaction repository list by account number", logger.Fields{
		"accountNumber": accountNumber,
	})

	const query = `
SELECT id, account_number, type, amount, balance_after, created_at
FROM transactions
WHERE account_number = $1
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, accountNumber)
	if err != nil {
		logger.Error("transaction repository list failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return nil, fmt.Errorf("list transactions by account number: %w", err)
	}
	defer rows.Close()

	records := make([]domain.TransactionRecord, 0)
	for rows.Next() {
		var record domain.TransactionRecord
		if err := rows.Scan(
			&record.ID,
			&record.AccountNumber,
			&record.Type,
			&record.Amount,
			&record.BalanceAfter,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return records, nil
}
