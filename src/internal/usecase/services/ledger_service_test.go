package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/notification"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/repository/memory"
	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/api-sage/account-ledger-service/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func seedAccount(t *testing.T, store *memory.Store, accountNumber, balance string) {
	t.Helper()

	_, err := store.Create(context.Background(), domain.Account{
		AccountNumber: accountNumber,
		AccountType:   "SAVINGS",
		Balance:       decimal.RequireFromString(balance),
		UserID:        42,
		UserName:      "Ada Obi",
		Email:         "ada.obi@example.com",
		PhoneNumber:   "08030000001",
		DateOpened:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed account %s: %v", accountNumber, err)
	}
}

func balanceOf(t *testing.T, store *memory.Store, accountNumber string) string {
	t.Helper()

	account, err := store.GetByAccountNumber(context.Background(), accountNumber)
	if err != nil {
		t.Fatalf("get account %s: %v", accountNumber, err)
	}
	return account.Balance.StringFixed(2)
}

func TestLedgerServiceProcessTransactionValidationError(t *testing.T) {
	svc := services.NewLedgerService(nil, nil, nil, "transaction-service-topic")

	_, err := svc.ProcessTransaction(context.Background(), models.TransactionRequest{
		AccountNumber: "123",
		Type:          "CREDIT",
		Amount:        decimal.Zero,
	})
	if err == nil {
		t.Fatal("expected validation error for invalid transaction request")
	}
}

func TestLedgerServiceProcessTransactionRejectsUnknownType(t *testing.T) {
	svc := services.NewLedgerService(nil, nil, nil, "transaction-service-topic")

	_, err := svc.ProcessTransaction(context.Background(), models.TransactionRequest{
		AccountNumber: "2026123456",
		Type:          "REVERSAL",
		Amount:        decimal.RequireFromString("10.00"),
	})
	if err == nil {
		t.Fatal("expected error for unknown transaction type")
	}
}

func TestLedgerServiceCreditIncreasesBalance(t *testing.T) {
	store := memory.NewStore()
	capture := notification.NewCapturePublisher()
	dispatcher := notification.NewDispatcher(capture)
	dispatcher.Start()

	seedAccount(t, store, "2026123456", "200.00")

	svc := services.NewLedgerService(store, store, dispatcher, "transaction-service-topic")

	resp, err := svc.ProcessTransaction(context.Background(), models.TransactionRequest{
		AccountNumber: "2026123456",
		Type:          "CREDIT",
		Amount:        decimal.RequireFromString("100.00"),
	})
	if err != nil {
		t.Fatalf("process credit: %v", err)
	}
	if resp.Message != "Transaction successful" {
		t.Fatalf("expected message %q, got %q", "Transaction successful", resp.Message)
	}
	if resp.Data.BalanceAfter != "300.00" {
		t.Fatalf("expected balance 300.00, got %q", resp.Data.BalanceAfter)
	}

	dispatcher.Close()

	events := capture.Events()
	if len(events) != 1 {
		t.Fatalf("expected one movement notification, got %d", len(events))
	}
	if events[0].Key != "CREDIT" {
		t.Fatalf("expected key CREDIT, got %q", events[0].Key)
	}

	payload, ok := events[0].Payload.(domain.MovementNotification)
	if !ok {
		t.Fatalf("unexpected payload type %T", events[0].Payload)
	}
	if payload.BalanceAfter.StringFixed(2) != "300.00" {
		t.Fatalf("notification balance %s does not match ledger", payload.BalanceAfter.StringFixed(2))
	}
}

func TestLedgerServiceWithdrawInsufficientFunds(t *testing.T) {
	store := memory.NewStore()
	capture := notification.NewCapturePublisher()
	dispatcher := notification.NewDispatcher(capture)
	dispatcher.Start()

	seedAccount(t, store, "2026123456", "50.00")

	svc := services.NewLedgerService(store, store, dispatcher, "transaction-service-topic")

	resp, err := svc.ProcessTransaction(context.Background(), models.TransactionRequest{
		AccountNumber: "2026123456",
		Type:          "WITHDRAW",
		Amount:        decimal.RequireFromString("80.00"),
	})
	if err == nil {
		t.Fatal("expected insufficient funds error")
	}
	if resp.Message != "Insufficient funds" {
		t.Fatalf("expected message %q, got %q", "Insufficient funds", resp.Message)
	}
	if got := balanceOf(t, store, "2026123456"); got != "50.00" {
		t.Fatalf("balance must be unchanged after rejected withdrawal, got %s", got)
	}

	records, err := store.ListByAccountNumber(context.Background(), "2026123456")
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rejected withdrawal must not append a record, got %d", len(records))
	}

	dispatcher.Close()
	if events := capture.Events(); len(events) != 0 {
		t.Fatalf("rejected withdrawal must not notify, got %d events", len(events))
	}
}

func TestLedgerServiceTransferMovesFundsAndNotifiesBothLegs(t *testing.T) {
	store := memory.NewStore()
	capture := notification.NewCapturePublisher()
	dispatcher := notification.NewDispatcher(capture)
	dispatcher.Start()

	seedAccount(t, store, "2026111111", "200.00")
	seedAccount(t, store, "2026222222", "100.00")

	svc := services.NewLedgerService(store, store, dispatcher, "transaction-service-topic")

	resp, err := svc.Transfer(context.Background(), models.TransferRequest{
		FromAccount: "2026111111",
		ToAccount:   "2026222222",
		Amount:      decimal.RequireFromString("50.00"),
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	want := "Transaction successful: 50.00 transferred from 2026111111 to 2026222222"
	if resp.Message != want {
		t.Fatalf("expected message %q, got %q", want, resp.Message)
	}
	if got := balanceOf(t, store, "2026111111"); got != "150.00" {
		t.Fatalf("expected source balance 150.00, got %s", got)
	}
	if got := balanceOf(t, store, "2026222222"); got != "150.00" {
		t.Fatalf("expected destination balance 150.00, got %s", got)
	}

	fromRecords, _ := store.ListByAccountNumber(context.Background(), "2026111111")
	toRecords, _ := store.ListByAccountNumber(context.Background(), "2026222222")
	if len(fromRecords) != 1 || fromRecords[0].Type != domain.MovementWithdraw {
		t.Fatalf("expected one WITHDRAW record on source, got %v", fromRecords)
	}
	if len(toRecords) != 1 || toRecords[0].Type != domain.MovementCredit {
		t.Fatalf("expected one CREDIT record on destination, got %v", toRecords)
	}

	dispatcher.Close()

	events := capture.Events()
	if len(events) != 2 {
		t.Fatalf("expected two movement notifications, got %d", len(events))
	}
	if events[0].Key != "WITHDRAW" || events[1].Key != "CREDIT" {
		t.Fatalf("expected WITHDRAW then CREDIT notifications, got %q then %q", events[0].Key, events[1].Key)
	}
}

func TestLedgerServiceTransferInvalidBeneficiaryLeavesStateUnchanged(t *testing.T) {
	store := memory.NewStore()
	capture := notification.NewCapturePublisher()
	dispatcher := notification.NewDispatcher(capture)
	dispatcher.Start()

	seedAccount(t, store, "2026111111", "200.00")

	svc := services.NewLedgerService(store, store, dispatcher, "transaction-service-topic")

	resp, err := svc.Transfer(context.Background(), models.TransferRequest{
		FromAccount: "2026111111",
		ToAccount:   "2026999999",
		Amount:      decimal.RequireFromString("50.00"),
	})
	if err == nil {
		t.Fatal("expected error for unknown beneficiary")
	}
	if err.Error() != "Invalid Beneficiary account No: 2026999999" {
		t.Fatalf("unexpected error text %q", err.Error())
	}
	if resp.Message != "Account not found" {
		t.Fatalf("expected message %q, got %q", "Account not found", resp.Message)
	}
	if got := balanceOf(t, store, "2026111111"); got != "200.00" {
		t.Fatalf("failed transfer must not move funds, source balance %s", got)
	}

	records, _ := store.ListByAccountNumber(context.Background(), "2026111111")
	if len(records) != 0 {
		t.Fatalf("failed transfer must not append records, got %d", len(records))
	}

	dispatcher.Close()
	if events := capture.Events(); len(events) != 0 {
		t.Fatalf("failed transfer must not notify, got %d events", len(events))
	}
}

func TestLedgerServiceTransferUnknownSourceReportsFromLeg(t *testing.T) {
	store := memory.NewStore()

	seedAccount(t, store, "2026222222", "100.00")

	svc := services.NewLedgerService(store, store, nil, "transaction-service-topic")

	_, err := svc.Transfer(context.Background(), models.TransferRequest{
		FromAccount: "2026111111",
		ToAccount:   "2026222222",
		Amount:      decimal.RequireFromString("50.00"),
	})
	if err == nil {
		t.Fatal("expected error for unknown source account")
	}
	if err.Error() != "Invalid from account No: 2026111111" {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestLedgerServiceTransferInsufficientFundsNamesAccount(t *testing.T) {
	store := memory.NewStore()

	seedAccount(t, store, "2026111111", "20.00")
	seedAccount(t, store, "2026222222", "100.00")

	svc := services.NewLedgerService(store, store, nil, "transaction-service-topic")

	_, err := svc.Transfer(context.Background(), models.TransferRequest{
		FromAccount: "2026111111",
		ToAccount:   "2026222222",
		Amount:      decimal.RequireFromString("50.00"),
	})
	if err == nil {
		t.Fatal("expected insufficient funds error")
	}
	if err.Error() != "Insufficient funds in account: 2026111111" {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestLedgerServiceTransferFundsCheckPrecedesBeneficiaryCheck(t *testing.T) {
	store := memory.NewStore()

	// Underfunded source and a beneficiary that does not exist: the funds
	// check runs first, so the beneficiary is never inspected.
	seedAccount(t, store, "2026111111", "20.00")

	svc := services.NewLedgerService(store, store, nil, "transaction-service-topic")

	_, err := svc.Transfer(context.Background(), models.TransferRequest{
		FromAccount: "2026111111",
		ToAccount:   "2026999999",
		Amount:      decimal.RequireFromString("50.00"),
	})
	if err == nil {
		t.Fatal("expected insufficient funds error")
	}
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("beneficiary must not be checked before funds, got %v", err)
	}
	if err.Error() != "Insufficient funds in account: 2026111111" {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestLedgerServiceConcurrentMovementsConserveBalance(t *testing.T) {
	store := memory.NewStore()
	capture := notification.NewCapturePublisher()
	dispatcher := notification.NewDispatcher(capture)
	dispatcher.Start()
	defer dispatcher.Close()

	seedAccount(t, store, "2026123456", "200.00")

	svc := services.NewLedgerService(store, store, dispatcher, "transaction-service-topic")

	const workers = 40
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		kind := "CREDIT"
		if i%2 == 1 {
			kind = "WITHDRAW"
		}
		go func(kind string) {
			defer wg.Done()
			_, err := svc.ProcessTransaction(context.Background(), models.TransactionRequest{
				AccountNumber: "2026123456",
				Type:          kind,
				Amount:        decimal.RequireFromString("1.00"),
			})
			if err != nil {
				t.Errorf("concurrent %s: %v", kind, err)
			}
		}(kind)
	}
	wg.Wait()

	if got := balanceOf(t, store, "2026123456"); got != "200.00" {
		t.Fatalf("equal credits and withdrawals must cancel out, got balance %s", got)
	}

	records, err := store.ListByAccountNumber(context.Background(), "2026123456")
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(records) != workers {
		t.Fatalf("expected %d records, got %d", workers, len(records))
	}
}

func TestLedgerServiceGetTransactionsIsRepeatable(t *testing.T) {
	store := memory.NewStore()
	capture := notification.NewCapturePublisher()
	dispatcher := notification.NewDispatcher(capture)
	dispatcher.Start()
	defer dispatcher.Close()

	seedAccount(t, store, "2026123456", "100.00")

	svc := services.NewLedgerService(store, store, dispatcher, "transaction-service-topic")

	for _, amount := range []string{"10.00", "20.00"} {
		if _, err := svc.ProcessTransaction(context.Background(), models.TransactionRequest{
			AccountNumber: "2026123456",
			Type:          "CREDIT",
			Amount:        decimal.RequireFromString(amount),
		}); err != nil {
			t.Fatalf("credit %s: %v", amount, err)
		}
	}

	first, err := svc.GetTransactions(context.Background(), "2026123456")
	if err != nil {
		t.Fatalf("get transactions: %v", err)
	}
	second, err := svc.GetTransactions(context.Background(), "2026123456")
	if err != nil {
		t.Fatalf("get transactions again: %v", err)
	}

	if len(*first.Data) != 2 || len(*second.Data) != 2 {
		t.Fatalf("expected two records on both reads, got %d and %d", len(*first.Data), len(*second.Data))
	}
	for i := range *first.Data {
		if (*first.Data)[i] != (*second.Data)[i] {
			t.Fatalf("reads with no intervening writes must match at index %d", i)
		}
	}
}
