package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/api-sage/account-ledger-service/src/internal/logger"
	"github.com/lib/pq"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountNumber": account.AccountNumber,
		"accountType":   account.AccountType,
		"userId":        account.UserID,
	})

	const query = `
INSERT INTO accounts (
	account_number,
	account_type,
	balance,
	user_id,
	user_name,
	email,
	phone_number,
	date_opened
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	var id string
	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountNumber,
		account.AccountType,
		account.Balance,
		account.UserID,
		account.UserName,
		account.Email,
		account.PhoneNumber,
		account.DateOpened,
	).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			logger.Info("account repository create duplicate account number", logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			return domain.Account{}, domain.ErrDuplicateAccount
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	logger.Info("account repository create success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	logger.Info("account repository get by account number", logger.Fields{
		"accountNumber": accountNumber,
	})

	const query = `
SELECT id, account_number, account_type, balance, user_id, user_name, email, phone_number, date_opened
FROM accounts
WHERE account_number = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountNumber": accountNumber,
			})
			return domain.Account{}, &domain.AccountNotFoundError{AccountNumber: accountNumber}
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, fmt.Errorf("get account by account number: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Account, error) {
	logger.Info("account repository get by user id", logger.Fields{
		"userId": userID,
	})

	const query = `
SELECT id, account_number, account_type, balance, user_id, user_name, email, phone_number, date_opened
FROM accounts
WHERE user_id = $1
ORDER BY account_number`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Error("account repository get by user id failed", err, logger.Fields{
			"userId": userID,
		})
		return nil, fmt.Errorf("get accounts by user id: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Exists(ctx context.Context, accountNumber string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM accounts
	WHERE account_number = $1
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, accountNumber).Scan(&exists); err != nil {
		logger.Error("account repository exists check failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return false, fmt.Errorf("check account exists: %w", err)
	}

	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	var dateOpened time.Time

	if err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&account.AccountType,
		&account.Balance,
		&account.UserID,
		&account.UserName,
		&account.Email,
		&account.PhoneNumber,
		&dateOpened,
	); err != nil {
		return domain.Account{}, err
	}

	account.DateOpened = dateOpened
	return account, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
