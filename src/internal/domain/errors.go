package domain

import (
	"errors"
	"fmt"
)

var ErrAccountNotFound = errors.New("Account not found")
var ErrInsufficientFunds = errors.New("Insufficient funds")
var ErrInvalidMovementKind = errors.New("Invalid transaction type")
var ErrDuplicateAccount = errors.New("Account number already exists")

// Transfer legs, used to say which account a not-found error refers to.
const (
	TransferLegFrom        = "from"
	TransferLegBeneficiary = "beneficiary"
)

// AccountNotFoundError carries the account number and, for transfers, the
// leg that failed. errors.Is(err, ErrAccountNotFound) matches it.
type AccountNotFoundError struct {
	AccountNumber string
	Leg           string
}

func (e *AccountNotFoundError) Error() string {
	switch e.Leg {
	case TransferLegFrom:
		return fmt.Sprintf("Invalid from account No: %s", e.AccountNumber)
	case TransferLegBeneficiary:
		return fmt.Sprintf("Invalid Beneficiary account No: %s", e.AccountNumber)
	default:
		return fmt.Sprintf("Account not found: %s", e.AccountNumber)
	}
}

func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

// InsufficientFundsError matches ErrInsufficientFunds via errors.Is.
type InsufficientFundsError struct {
	AccountNumber string
}

func (e *InsufficientFundsError) Error() string {
	if e.AccountNumber == "" {
		return "Insufficient funds"
	}
	return fmt.Sprintf("Insufficient funds in account: %s", e.AccountNumber)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
