package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/api-sage/account-ledger-service/src/internal/logger"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// LedgerRepository commits every balance mutation and its transaction record
// inside one database transaction. Account rows are taken FOR UPDATE up
// front, so concurrent movements against the same account serialize on the
// row lock and the load-compute-persist sequence cannot interleave.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

const lockAccountQuery = `
SELECT id, account_number, account_type, balance, user_id, user_name, email, phone_number, date_opened
FROM accounts
WHERE account_number = $1
FOR UPDATE`

const lockAccountPairQuery = `
SELECT id, account_number, account_type, balance, user_id, user_name, email, phone_number, date_opened
FROM accounts
WHERE account_number = ANY($1)
ORDER BY account_number
FOR UPDATE`

const updateBalanceQuery = `
UPDATE accounts
SET balance = $2
WHERE account_number = $1`

const insertRecordQuery = `
INSERT INTO transactions (account_number, type, amount, balance_after)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

func (r *LedgerRepository) ApplyMovement(ctx context.Context, accountNumber string, kind domain.MovementKind, amount decimal.Decimal) (domain.Account, domain.TransactionRecord, error) {
	logger.Info("ledger repository apply movement", logger.Fields{
		"accountNumber": accountNumber,
		"type":          kind,
		"amount":        amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository begin tx failed", err, nil)
		return domain.Account{}, domain.TransactionRecord{}, fmt.Errorf("begin movement transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	account, err := scanAccount(tx.QueryRowContext(ctx, lockAccountQuery, accountNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("ledger repository account not found", logger.Fields{
				"accountNumber": accountNumber,
			})
			err = &domain.AccountNotFoundError{AccountNumber: accountNumber}
			return domain.Account{}, domain.TransactionRecord{}, err
		}
		logger.Error("ledger repository lock account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, domain.TransactionRecord{}, fmt.Errorf("lock account: %w", err)
	}

	var newBalance decimal.Decimal
	switch kind {
	case domain.MovementCredit:
		newBalance = account.Balance.Add(amount)
	case domain.MovementWithdraw:
		if account.Balance.LessThan(amount) {
			err = &domain.InsufficientFundsError{}
			return domain.Account{}, domain.TransactionRecord{}, err
		}
		newBalance = account.Balance.Sub(amount)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrInvalidMovementKind, kind)
		return domain.Account{}, domain.TransactionRecord{}, err
	}

	if err = execRequiredRows(ctx, tx, updateBalanceQuery, accountNumber, newBalance); err != nil {
		return domain.Account{}, domain.TransactionRecord{}, err
	}

	record := domain.TransactionRecord{
		AccountNumber: accountNumber,
		Type:          kind,
		Amount:        amount,
		BalanceAfter:  newBalance,
	}
	if err = tx.QueryRowContext(ctx, insertRecordQuery, accountNumber, kind, amount, newBalance).Scan(&record.ID, &record.CreatedAt); err != nil {
		logger.Error("ledger repository insert record failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, domain.TransactionRecord{}, fmt.Errorf("insert transaction record: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository commit tx failed", err, nil)
		return domain.Account{}, domain.TransactionRecord{}, fmt.Errorf("commit movement transaction: %w", err)
	}

	account.Balance = newBalance
	logger.Info("ledger repository apply movement success", logger.Fields{
		"accountNumber": accountNumber,
		"type":          kind,
		"recordId":      record.ID,
	})

	return account, record, nil
}

func (r *LedgerRepository) Transfer(ctx context.Context, fromAccountNumber string, toAccountNumber string, amount decimal.Decimal) (repo_interfaces.TransferResult, error) {
	logger.Info("ledger repository transfer", logger.Fields{
		"fromAccountNumber": fromAccountNumber,
		"toAccountNumber":   toAccountNumber,
		"amount":            amount,
	})

	// A self-transfer would debit and credit the same row copy and persist
	// only the credit, minting funds.
	if fromAccountNumber == toAccountNumber {
		return repo_interfaces.TransferResult{}, fmt.Errorf("transfer requires two distinct accounts, got %s twice", fromAccountNumber)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository begin transfer tx failed", err, nil)
		return repo_interfaces.TransferResult{}, fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Both rows are locked in account-number order, so two opposite
	// transfers between the same pair cannot deadlock.
	rows, err := tx.QueryContext(ctx, lockAccountPairQuery, pq.Array([]string{fromAccountNumber, toAccountNumber}))
	if err != nil {
		logger.Error("ledger repository lock account pair failed", err, nil)
		return repo_interfaces.TransferResult{}, fmt.Errorf("lock account pair: %w", err)
	}

	locked := make(map[string]domain.Account, 2)
	for rows.Next() {
		var account domain.Account
		if account, err = scanAccount(rows); err != nil {
			rows.Close()
			return repo_interfaces.TransferResult{}, fmt.Errorf("scan locked account: %w", err)
		}
		locked[account.AccountNumber] = account
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return repo_interfaces.TransferResult{}, fmt.Errorf("iterate locked accounts: %w", err)
	}
	rows.Close()

	// Validation order matches the operation contract: source first, then
	// funds, then beneficiary.
	from, ok := locked[fromAccountNumber]
	if !ok {
		err = &domain.AccountNotFoundError{AccountNumber: fromAccountNumber, Leg: domain.TransferLegFrom}
		return repo_interfaces.TransferResult{}, err
	}
	if from.Balance.LessThan(amount) {
		err = &domain.InsufficientFundsError{AccountNumber: fromAccountNumber}
		return repo_interfaces.TransferResult{}, err
	}
	to, ok := locked[toAccountNumber]
	if !ok {
		err = &domain.AccountNotFoundError{AccountNumber: toAccountNumber, Leg: domain.TransferLegBeneficiary}
		return repo_interfaces.TransferResult{}, err
	}

	fromBalance := from.Balance.Sub(amount)
	toBalance := to.Balance.Add(amount)

	if err = execRequiredRows(ctx, tx, updateBalanceQuery, fromAccountNumber, fromBalance); err != nil {
		return repo_interfaces.TransferResult{}, err
	}
	if err = execRequiredRows(ctx, tx, updateBalanceQuery, toAccountNumber, toBalance); err != nil {
		return repo_interfaces.TransferResult{}, err
	}

	withdrawal := domain.TransactionRecord{
		AccountNumber: fromAccountNumber,
		Type:          domain.MovementWithdraw,
		Amount:        amount,
		BalanceAfter:  fromBalance,
	}
	if err = tx.QueryRowContext(ctx, insertRecordQuery, fromAccountNumber, domain.MovementWithdraw, amount, fromBalance).Scan(&withdrawal.ID, &withdrawal.CreatedAt); err != nil {
		logger.Error("ledger repository insert withdrawal record failed", err, logger.Fields{
			"accountNumber": fromAccountNumber,
		})
		return repo_interfaces.TransferResult{}, fmt.Errorf("insert withdrawal record: %w", err)
	}

	deposit := domain.TransactionRecord{
		AccountNumber: toAccountNumber,
		Type:          domain.MovementCredit,
		Amount:        amount,
		BalanceAfter:  toBalance,
	}
	if err = tx.QueryRowContext(ctx, insertRecordQuery, toAccountNumber, domain.MovementCredit, amount, toBalance).Scan(&deposit.ID, &deposit.CreatedAt); err != nil {
		logger.Error("ledger repository insert deposit record failed", err, logger.Fields{
			"accountNumber": toAccountNumber,
		})
		return repo_interfaces.TransferResult{}, fmt.Errorf("insert deposit record: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository commit transfer tx failed", err, nil)
		return repo_interfaces.TransferResult{}, fmt.Errorf("commit transfer transaction: %w", err)
	}

	from.Balance = fromBalance
	to.Balance = toBalance

	logger.Info("ledger repository transfer success", logger.Fields{
		"fromAccountNumber": fromAccountNumber,
		"toAccountNumber":   toAccountNumber,
	})

	return repo_interfaces.TransferResult{
		From:       from,
		To:         to,
		Withdrawal: withdrawal,
		Deposit:    deposit,
	}, nil
}

func execRequiredRows(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("execute ledger statement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return errors.New("ledger posting failed: account row not found")
	}
	return nil
}
