package service_interfaces

import (
	"context"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/src/internal/commons"
)

type LedgerService interface {
	ProcessTransaction(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
	GetTransactions(ctx context.Context, accountNumber string) (commons.Response[[]models.TransactionRecordResponse], error)
}
