package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountOpenedNotification is the denormalized snapshot published when an
// account is opened. Fields are copied from the committed account row so the
// payload never needs a re-read on retry.
type AccountOpenedNotification struct {
	EventID       string          `json:"eventId"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	DateOpened    time.Time       `json:"dateOpened"`
	UserID        int64           `json:"userId"`
	UserName      string          `json:"userName"`
	Email         string          `json:"email"`
	PhoneNumber   string          `json:"phoneNumber"`
}

// MovementNotification is published once per CREDIT or WITHDRAW applied to an
// account. A transfer produces two of these, one per side.
type MovementNotification struct {
	EventID       string          `json:"eventId"`
	AccountNumber string          `json:"accountNumber"`
	Type          MovementKind    `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	UserID        int64           `json:"userId"`
	UserName      string          `json:"userName"`
	Email         string          `json:"email"`
	PhoneNumber   string          `json:"phoneNumber"`
}
