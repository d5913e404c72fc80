package domain_test

import (
	"errors"
	"testing"

	"github.com/api-sage/account-ledger-service/src/internal/domain"
)

func TestParseMovementKindAcceptsKnownKinds(t *testing.T) {
	kind, err := domain.ParseMovementKind("CREDIT")
	if err != nil {
		t.Fatalf("parse CREDIT: %v", err)
	}
	if kind != domain.MovementCredit {
		t.Fatalf("expected MovementCredit, got %q", kind)
	}

	kind, err = domain.ParseMovementKind("  withdraw ")
	if err != nil {
		t.Fatalf("parse lowercase withdraw: %v", err)
	}
	if kind != domain.MovementWithdraw {
		t.Fatalf("expected MovementWithdraw, got %q", kind)
	}
}

func TestParseMovementKindRejectsUnknownKind(t *testing.T) {
	_, err := domain.ParseMovementKind("REVERSAL")
	if err == nil {
		t.Fatal("expected error for unknown movement kind")
	}
	if !errors.Is(err, domain.ErrInvalidMovementKind) {
		t.Fatalf("expected ErrInvalidMovementKind, got %v", err)
	}
}

func TestAccountNotFoundErrorMessagesPerLeg(t *testing.T) {
	plain := &domain.AccountNotFoundError{AccountNumber: "2026123456"}
	if plain.Error() != "Account not found: 2026123456" {
		t.Fatalf("unexpected message %q", plain.Error())
	}

	from := &domain.AccountNotFoundError{AccountNumber: "2026123456", Leg: domain.TransferLegFrom}
	if from.Error() != "Invalid from account No: 2026123456" {
		t.Fatalf("unexpected message %q", from.Error())
	}

	beneficiary := &domain.AccountNotFoundError{AccountNumber: "2026123456", Leg: domain.TransferLegBeneficiary}
	if beneficiary.Error() != "Invalid Beneficiary account No: 2026123456" {
		t.Fatalf("unexpected message %q", beneficiary.Error())
	}

	for _, err := range []error{plain, from, beneficiary} {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("%v must match ErrAccountNotFound", err)
		}
	}
}

func TestInsufficientFundsErrorMessages(t *testing.T) {
	bare := &domain.InsufficientFundsError{}
	if bare.Error() != "Insufficient funds" {
		t.Fatalf("unexpected message %q", bare.Error())
	}

	named := &domain.InsufficientFundsError{AccountNumber: "2026123456"}
	if named.Error() != "Insufficient funds in account: 2026123456" {
		t.Fatalf("unexpected message %q", named.Error())
	}

	if !errors.Is(named, domain.ErrInsufficientFunds) {
		t.Fatal("InsufficientFundsError must match ErrInsufficientFunds")
	}
}
