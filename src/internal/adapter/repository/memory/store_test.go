package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/repository/memory"
	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

func TestStoreTransferRejectsSameAccount(t *testing.T) {
	store := memory.NewStore()

	_, err := store.Create(context.Background(), domain.Account{
		AccountNumber: "2026123456",
		AccountType:   "SAVINGS",
		Balance:       decimal.RequireFromString("100.00"),
		UserID:        42,
		UserName:      "Ada Obi",
		Email:         "ada.obi@example.com",
		PhoneNumber:   "08030000001",
		DateOpened:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	_, err = store.Transfer(context.Background(), "2026123456", "2026123456", decimal.RequireFromString("10.00"))
	if err == nil {
		t.Fatal("expected error for transfer to the same account")
	}

	account, err := store.GetByAccountNumber(context.Background(), "2026123456")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got := account.Balance.StringFixed(2); got != "100.00" {
		t.Fatalf("self-transfer must not change the balance, got %s", got)
	}

	records, err := store.ListByAccountNumber(context.Background(), "2026123456")
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("self-transfer must not append records, got %d", len(records))
	}
}
