package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID            string
	AccountNumber string
	AccountType   string
	Balance       decimal.Decimal
	UserID        int64
	UserName      string
	Email         string
	PhoneNumber   string
	DateOpened    time.Time
}
