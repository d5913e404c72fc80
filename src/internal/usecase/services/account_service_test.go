package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/notification"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/repository/memory"
	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/api-sage/account-ledger-service/src/internal/usecase/services"
)

func openAccountRequest() models.OpenAccountRequest {
	return models.OpenAccountRequest{
		UserID:      42,
		UserName:    "Ada Obi",
		Email:       "ada.obi@example.com",
		PhoneNumber: "08030000001",
		AccountType: "SAVINGS",
	}
}

func TestAccountServiceOpenAccountValidationError(t *testing.T) {
	svc := services.NewAccountService(nil, nil, "account-service-topic")

	_, err := svc.OpenAccount(context.Background(), models.OpenAccountRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty open account request")
	}
}

func TestAccountServiceOpenAccountSuccess(t *testing.T) {
	store := memory.NewStore()
	capture := notification.NewCapturePublisher()
	dispatcher := notification.NewDispatcher(capture)
	dispatcher.Start()

	svc := services.NewAccountService(store, dispatcher, "account-service-topic")

	resp, err := svc.OpenAccount(context.Background(), openAccountRequest())
	if err != nil {
		t.Fatalf("open account: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success response, got message %q", resp.Message)
	}
	if resp.Data == nil {
		t.Fatal("expected account data in response")
	}
	if len(resp.Data.AccountNumber) != 10 {
		t.Fatalf("expected 10 digit account number, got %q", resp.Data.AccountNumber)
	}
	if resp.Data.Balance != "0.00" {
		t.Fatalf("expected zero opening balance, got %q", resp.Data.Balance)
	}

	dispatcher.Close()

	events := capture.Events()
	if len(events) != 1 {
		t.Fatalf("expected exactly one account notification, got %d", len(events))
	}
	if events[0].Topic != "account-service-topic" {
		t.Fatalf("expected account topic, got %q", events[0].Topic)
	}
	if events[0].Key != "Account Created" {
		t.Fatalf("expected key %q, got %q", "Account Created", events[0].Key)
	}

	payload, ok := events[0].Payload.(domain.AccountOpenedNotification)
	if !ok {
		t.Fatalf("unexpected payload type %T", events[0].Payload)
	}
	if payload.AccountNumber != resp.Data.AccountNumber {
		t.Fatalf("notification account number %q does not match response %q", payload.AccountNumber, resp.Data.AccountNumber)
	}
}

func TestAccountServiceGetAccountsByUserIDEmpty(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAccountService(store, nil, "account-service-topic")

	resp, err := svc.GetAccountsByUserID(context.Background(), 999)
	if err != nil {
		t.Fatalf("get accounts by user id: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success for user with no accounts, got message %q", resp.Message)
	}
	if resp.Data == nil || len(*resp.Data) != 0 {
		t.Fatalf("expected empty account list, got %v", resp.Data)
	}
}

func TestAccountServiceGetAccountByNumberNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewAccountService(store, nil, "account-service-topic")

	resp, err := svc.GetAccountByNumber(context.Background(), "2026123456")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if resp.Message != "Account not found" {
		t.Fatalf("expected message %q, got %q", "Account not found", resp.Message)
	}
	if err.Error() != "Account not found: 2026123456" {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestAccountServiceValidateAccountExists(t *testing.T) {
	store := memory.NewStore()
	capture := notification.NewCapturePublisher()
	dispatcher := notification.NewDispatcher(capture)
	dispatcher.Start()
	defer dispatcher.Close()

	svc := services.NewAccountService(store, dispatcher, "account-service-topic")

	opened, err := svc.OpenAccount(context.Background(), openAccountRequest())
	if err != nil {
		t.Fatalf("open account: %v", err)
	}

	resp, err := svc.ValidateAccountExists(context.Background(), opened.Data.AccountNumber)
	if err != nil {
		t.Fatalf("validate existing account: %v", err)
	}
	if !resp.Success || resp.Message != "Account is valid" {
		t.Fatalf("expected valid account response, got message %q", resp.Message)
	}

	missing, err := svc.ValidateAccountExists(context.Background(), "2026999999")
	if err == nil {
		t.Fatal("expected error for unknown account number")
	}
	if missing.Message != "Account not found" {
		t.Fatalf("expected message %q, got %q", "Account not found", missing.Message)
	}
}
