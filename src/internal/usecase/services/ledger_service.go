package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/notification"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger-service/src/internal/commons"
	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/api-sage/account-ledger-service/src/internal/logger"
	"github.com/google/uuid"
)

// LedgerService coordinates balance mutation, transaction recording and
// notification emission. The mutation itself is atomic inside the ledger
// repository; once it commits, a caller cancellation has no effect and the
// notification is handed to the outbound queue regardless.
type LedgerService struct {
	ledgerRepo       repo_interfaces.LedgerRepository
	transactionRepo  repo_interfaces.TransactionRepository
	notifier         notification.Queue
	transactionTopic string
}

func NewLedgerService(
	ledgerRepo repo_interfaces.LedgerRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	notifier notification.Queue,
	transactionTopic string,
) *LedgerService {
	return &LedgerService{
		ledgerRepo:       ledgerRepo,
		transactionRepo:  transactionRepo,
		notifier:         notifier,
		transactionTopic: strings.TrimSpace(transactionTopic),
	}
}

func (s *LedgerService) ProcessTransaction(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service process transaction request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service process transaction validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	kind, err := domain.ParseMovementKind(req.Type)
	if err != nil {
		logger.Error("ledger service invalid movement kind", err, logger.Fields{
			"type": req.Type,
		})
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	account, record, err := s.ledgerRepo.ApplyMovement(ctx, accountNumber, kind, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Account not found", err.Error()), err
		}
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return commons.ErrorResponse[models.TransactionResponse]("Insufficient funds", err.Error()), err
		}
		logger.Error("ledger service process transaction failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"type":          kind,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	s.enqueueMovement(account, record)

	response := models.TransactionResponse{
		AccountNumber: record.AccountNumber,
		Type:          string(record.Type),
		Amount:        record.Amount.StringFixed(2),
		BalanceAfter:  record.BalanceAfter.StringFixed(2),
	}

	logger.Info("ledger service process transaction success", logger.Fields{
		"accountNumber": response.AccountNumber,
		"type":          response.Type,
		"recordId":      record.ID,
	})

	return commons.SuccessResponse("Transaction successful", response), nil
}

func (s *LedgerService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("ledger service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	fromAccount := strings.TrimSpace(req.FromAccount)
	toAccount := strings.TrimSpace(req.ToAccount)

	result, err := s.ledgerRepo.Transfer(ctx, fromAccount, toAccount, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Account not found", err.Error()), err
		}
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return commons.ErrorResponse[models.TransferResponse]("Insufficient funds", err.Error()), err
		}
		logger.Error("ledger service transfer failed", err, logger.Fields{
			"fromAccount": fromAccount,
			"toAccount":   toAccount,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	s.enqueueMovement(result.From, result.Withdrawal)
	s.enqueueMovement(result.To, result.Deposit)

	response := models.TransferResponse{
		FromAccount: fromAccount,
		ToAccount:   toAccount,
		Amount:      req.Amount.StringFixed(2),
		FromBalance: result.From.Balance.StringFixed(2),
		ToBalance:   result.To.Balance.StringFixed(2),
	}

	message := fmt.Sprintf("Transaction successful: %s transferred from %s to %s", req.Amount.StringFixed(2), fromAccount, toAccount)
	logger.Info("ledger service transfer success", logger.Fields{
		"fromAccount": fromAccount,
		"toAccount":   toAccount,
	})

	return commons.SuccessResponse(message, response), nil
}

func (s *LedgerService) GetTransactions(ctx context.Context, accountNumber string) (commons.Response[[]models.TransactionRecordResponse], error) {
	logger.Info("ledger service get transactions", logger.Fields{
		"accountNumber": accountNumber,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		err := fmt.Errorf("accountNumber is required")
		return commons.ErrorResponse[[]models.TransactionRecordResponse]("validation failed", err.Error()), err
	}

	records, err := s.transactionRepo.ListByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("ledger service get transactions failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[[]models.TransactionRecordResponse]("failed to fetch transactions", "Unable to fetch transactions right now"), err
	}

	responses := make([]models.TransactionRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, models.TransactionRecordResponse{
			ID:            record.ID,
			AccountNumber: record.AccountNumber,
			Type:          string(record.Type),
			Amount:        record.Amount.StringFixed(2),
			BalanceAfter:  record.BalanceAfter.StringFixed(2),
			Timestamp:     record.CreatedAt.Format(time.RFC3339),
		})
	}

	return commons.SuccessResponse("transactions fetched successfully", responses), nil
}

// enqueueMovement snapshots the owner fields read inside the same store
// transaction that applied the movement, so the payload is complete before
// it leaves the service.
func (s *LedgerService) enqueueMovement(account domain.Account, record domain.TransactionRecord) {
	s.notifier.Enqueue(notification.Event{
		Topic: s.transactionTopic,
		Key:   string(record.Type),
		Payload: domain.MovementNotification{
			EventID:       uuid.NewString(),
			AccountNumber: record.AccountNumber,
			Type:          record.Type,
			Amount:        record.Amount,
			BalanceAfter:  record.BalanceAfter,
			UserID:        account.UserID,
			UserName:      account.UserName,
			Email:         account.Email,
			PhoneNumber:   account.PhoneNumber,
		},
	})
}
