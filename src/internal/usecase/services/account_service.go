package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/notification"
	"github.com/api-sage/account-ledger-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger-service/src/internal/commons"
	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/api-sage/account-ledger-service/src/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const accountCreatedKey = "Account Created"

// openAccountAttempts bounds retries when a generated account number
// collides with an existing one. Uniqueness itself is enforced by the store.
const openAccountAttempts = 5

type AccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	notifier     notification.Queue
	accountTopic string
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	notifier notification.Queue,
	accountTopic string,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		notifier:     notifier,
		accountTopic: strings.TrimSpace(accountTopic),
	}
}

func (s *AccountService) OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service open account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	var created domain.Account
	var err error
	for attempt := 0; attempt < openAccountAttempts; attempt++ {
		account := domain.Account{
			AccountNumber: generateAccountNumber(),
			AccountType:   strings.TrimSpace(req.AccountType),
			Balance:       decimal.Zero,
			UserID:        req.UserID,
			UserName:      strings.TrimSpace(req.UserName),
			Email:         strings.TrimSpace(req.Email),
			PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
			DateOpened:    time.Now().UTC(),
		}

		created, err = s.accountRepo.Create(ctx, account)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateAccount) {
			logger.Error("account service open account repository failed", err, logger.Fields{
				"userId": req.UserID,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
		}
	}
	if err != nil {
		logger.Error("account service open account number generation exhausted", err, logger.Fields{
			"userId": req.UserID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	s.notifier.Enqueue(notification.Event{
		Topic: s.accountTopic,
		Key:   accountCreatedKey,
		Payload: domain.AccountOpenedNotification{
			EventID:       uuid.NewString(),
			AccountNumber: created.AccountNumber,
			Balance:       created.Balance,
			DateOpened:    created.DateOpened,
			UserID:        created.UserID,
			UserName:      created.UserName,
			Email:         created.Email,
			PhoneNumber:   created.PhoneNumber,
		},
	})

	response := mapAccountToResponse(created)
	logger.Info("account service open account success", logger.Fields{
		"accountId":     response.ID,
		"accountNumber": response.AccountNumber,
		"userId":        response.UserID,
	})

	return commons.SuccessResponse("account opened successfully", response), nil
}

func (s *AccountService) GetAccountsByUserID(ctx context.Context, userID int64) (commons.Response[[]models.AccountResponse], error) {
	logger.Info("account service get accounts by user id", logger.Fields{
		"userId": userID,
	})

	if userID <= 0 {
		err := fmt.Errorf("userId must be greater than zero")
		return commons.ErrorResponse[[]models.AccountResponse]("validation failed", err.Error()), err
	}

	accounts, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("account service get accounts by user id failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.AccountResponse]("failed to fetch accounts", "Unable to fetch accounts right now"), err
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, mapAccountToResponse(account))
	}

	return commons.SuccessResponse("accounts fetched successfully", responses), nil
}

func (s *AccountService) GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service get account by number", logger.Fields{
		"accountNumber": accountNumber,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		err := fmt.Errorf("accountNumber is required")
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found", err.Error()), err
		}
		logger.Error("account service get account by number failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to fetch account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) ValidateAccountExists(ctx context.Context, accountNumber string) (commons.Response[bool], error) {
	logger.Info("account service validate account exists", logger.Fields{
		"accountNumber": accountNumber,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		err := fmt.Errorf("accountNumber is required")
		return commons.ErrorResponse[bool]("validation failed", err.Error()), err
	}

	exists, err := s.accountRepo.Exists(ctx, accountNumber)
	if err != nil {
		logger.Error("account service validate account exists failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[bool]("failed to validate account", "Unable to validate account right now"), err
	}
	if !exists {
		notFound := &domain.AccountNotFoundError{AccountNumber: accountNumber}
		return commons.ErrorResponse[bool]("Account not found", notFound.Error()), notFound
	}

	return commons.SuccessResponse("Account is valid", true), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		AccountType:   account.AccountType,
		Balance:       account.Balance.StringFixed(2),
		UserID:        account.UserID,
		UserName:      account.UserName,
		Email:         account.Email,
		PhoneNumber:   account.PhoneNumber,
		DateOpened:    account.DateOpened.Format(time.RFC3339),
	}
}

// generateAccountNumber returns the current four-digit year followed by a
// random six-digit value. Collisions are possible; Create retries on the
// store's uniqueness constraint.
func generateAccountNumber() string {
	return fmt.Sprintf("%d%d", time.Now().Year(), 100000+rand.IntN(900000))
}
