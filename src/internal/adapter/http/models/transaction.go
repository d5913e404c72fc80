package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransactionRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r TransactionRequest) Validate() error {
	var errs []string

	accountNumber := strings.TrimSpace(r.AccountNumber)
	if accountNumber == "" {
		errs = append(errs, "accountNumber is required")
	} else if !isTenDigitAccountNumber(accountNumber) {
		errs = append(errs, "accountNumber must be exactly 10 digits")
	}

	if strings.TrimSpace(r.Type) == "" {
		errs = append(errs, "type is required")
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransactionResponse struct {
	AccountNumber string `json:"accountNumber"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	BalanceAfter  string `json:"balanceAfter"`
}

type TransferRequest struct {
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	fromAccount := strings.TrimSpace(r.FromAccount)
	toAccount := strings.TrimSpace(r.ToAccount)

	if fromAccount == "" {
		errs = append(errs, "fromAccount is required")
	} else if !isTenDigitAccountNumber(fromAccount) {
		errs = append(errs, "fromAccount must be exactly 10 digits")
	}

	if toAccount == "" {
		errs = append(errs, "toAccount is required")
	} else if !isTenDigitAccountNumber(toAccount) {
		errs = append(errs, "toAccount must be exactly 10 digits")
	}

	if fromAccount != "" && fromAccount == toAccount {
		errs = append(errs, "fromAccount and toAccount cannot be the same")
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransferResponse struct {
	FromAccount string `json:"fromAccount"`
	ToAccount   string `json:"toAccount"`
	Amount      string `json:"amount"`
	FromBalance string `json:"fromBalance"`
	ToBalance   string `json:"toBalance"`
}

type TransactionRecordResponse struct {
	ID            int64  `json:"id"`
	AccountNumber string `json:"accountNumber"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	BalanceAfter  string `json:"balanceAfter"`
	Timestamp     string `json:"timestamp"`
}
