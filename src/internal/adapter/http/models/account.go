package models

import (
	"errors"
	"strings"
)

type OpenAccountRequest struct {
	UserID      int64  `json:"userId"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	AccountType string `json:"accountType"`
}

func (r OpenAccountRequest) Validate() error {
	var errs []string

	if r.UserID <= 0 {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(r.UserName) == "" {
		errs = append(errs, "userName is required")
	}
	if strings.TrimSpace(r.AccountType) == "" {
		errs = append(errs, "accountType is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type AccountResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Balance       string `json:"balance"`
	UserID        int64  `json:"userId"`
	UserName      string `json:"userName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	DateOpened    string `json:"dateOpened"`
}

func isTenDigitAccountNumber(accountNumber string) bool {
	if len(accountNumber) != 10 {
		return false
	}

	for _, ch := range accountNumber {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}
