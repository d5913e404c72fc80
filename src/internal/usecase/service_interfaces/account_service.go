package service_interfaces

import (
	"context"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/src/internal/commons"
)

type AccountService interface {
	OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccountsByUserID(ctx context.Context, userID int64) (commons.Response[[]models.AccountResponse], error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error)
	ValidateAccountExists(ctx context.Context, accountNumber string) (commons.Response[bool], error)
}
