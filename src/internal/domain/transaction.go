package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one immutable ledger entry. Records are append-only:
// nothing in this service updates or deletes them after Create.
type TransactionRecord struct {
	ID            int64
	AccountNumber string
	Type          MovementKind
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	CreatedAt     time.Time
}
