package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger-service/src/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is an in-memory implementation of the account, transaction and
// ledger repository contracts. A single mutex serializes every mutation, so
// the atomicity and no-partial-transfer guarantees of the postgres
// implementation hold here too. Used by service tests and local runs.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]domain.Account
	records      []domain.TransactionRecord
	nextRecordID int64
}

func NewStore() *Store {
	return &Store{accounts: make(map[string]domain.Account)}
}

func (s *Store) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountNumber]; exists {
		return domain.Account{}, domain.ErrDuplicateAccount
	}

	account.ID = uuid.NewString()
	s.accounts[account.AccountNumber] = account
	return account, nil
}

func (s *Store) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return domain.Account{}, &domain.AccountNotFoundError{AccountNumber: accountNumber}
	}
	return account, nil
}

func (s *Store) GetByUserID(_ context.Context, userID int64) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]domain.Account, 0)
	for _, account := range s.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountNumber < accounts[j].AccountNumber
	})
	return accounts, nil
}

func (s *Store) Exists(_ context.Context, accountNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.accounts[accountNumber]
	return ok, nil
}

func (s *Store) ListByAccountNumber(_ context.Context, accountNumber string) ([]domain.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.TransactionRecord, 0)
	for _, record := range s.records {
		if record.AccountNumber == accountNumber {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *Store) ApplyMovement(_ context.Context, accountNumber string, kind domain.MovementKind, amount decimal.Decimal) (domain.Account, domain.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return domain.Account{}, domain.TransactionRecord{}, &domain.AccountNotFoundError{AccountNumber: accountNumber}
	}

	var newBalance decimal.Decimal
	switch kind {
	case domain.MovementCredit:
		newBalance = account.Balance.Add(amount)
	case domain.MovementWithdraw:
		if account.Balance.LessThan(amount) {
			return domain.Account{}, domain.TransactionRecord{}, &domain.InsufficientFundsError{}
		}
		newBalance = account.Balance.Sub(amount)
	default:
		return domain.Account{}, domain.TransactionRecord{}, domain.ErrInvalidMovementKind
	}

	account.Balance = newBalance
	s.accounts[accountNumber] = account

	record := s.appendRecord(accountNumber, kind, amount, newBalance)
	return account, record, nil
}

func (s *Store) Transfer(_ context.Context, fromAccountNumber string, toAccountNumber string, amount decimal.Decimal) (repo_interfaces.TransferResult, error) {
	if fromAccountNumber == toAccountNumber {
		return repo_interfaces.TransferResult{}, fmt.Errorf("transfer requires two distinct accounts, got %s twice", fromAccountNumber)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[fromAccountNumber]
	if !ok {
		return repo_interfaces.TransferResult{}, &domain.AccountNotFoundError{AccountNumber: fromAccountNumber, Leg: domain.TransferLegFrom}
	}
	if from.Balance.LessThan(amount) {
		return repo_interfaces.TransferResult{}, &domain.InsufficientFundsError{AccountNumber: fromAccountNumber}
	}
	to, ok := s.accounts[toAccountNumber]
	if !ok {
		return repo_interfaces.TransferResult{}, &domain.AccountNotFoundError{AccountNumber: toAccountNumber, Leg: domain.TransferLegBeneficiary}
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	s.accounts[fromAccountNumber] = from
	s.accounts[toAccountNumber] = to

	withdrawal := s.appendRecord(fromAccountNumber, domain.MovementWithdraw, amount, from.Balance)
	deposit := s.appendRecord(toAccountNumber, domain.MovementCredit, amount, to.Balance)

	return repo_interfaces.TransferResult{
		From:       from,
		To:         to,
		Withdrawal: withdrawal,
		Deposit:    deposit,
	}, nil
}

func (s *Store) appendRecord(accountNumber string, kind domain.MovementKind, amount decimal.Decimal, balanceAfter decimal.Decimal) domain.TransactionRecord {
	s.nextRecordID++
	record := domain.TransactionRecord{
		ID:            s.nextRecordID,
		AccountNumber: accountNumber,
		Type:          kind,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		CreatedAt:     time.Now().UTC(),
	}
	s.records = append(s.records, record)
	return record
}
