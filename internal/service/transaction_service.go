package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Gateway runs a mutation through the operator queue and waits for its
// outcome. All transaction writes go through it; nothing in the service
// layer touches transaction rows directly.
type Gateway interface {
	Process(ctx context.Context, action actions.IAction) error
}

// TransactionService handles transaction business logic. Every mutation is
// handed to the gateway, which performs it and recomputes the running
// balances of the affected accounts in one database transaction.
type TransactionService struct {
	storage *storage.Storage
	gateway Gateway
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, gateway Gateway) *TransactionService {
	return &TransactionService{storage: store, gateway: gateway}
}

// CreateTransaction creates a new transaction and returns its ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, create TransactionCreate) (uuid.UUID, error) {
	action := &actions.CreateTransaction{
		Create: &transaction.TransactionCreate{
			AccountID:      create.AccountID,
			CategoryID:     nullableID(create.CategoryID),
			SubcategoryID:  nullableID(create.SubcategoryID),
			Date:           create.Date,
			Narration:      create.Narration,
			DebitAmount:    create.DebitAmount,
			CreditAmount:   create.CreditAmount,
			NominalAccount: create.NominalAccount,
		},
	}

	if err := s.gateway.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.CreatedID(), nil
}

// UpdateTransaction applies the given changes to a transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, changes TransactionChanges) error {
	storageChanges := &transaction.TransactionChanges{
		AccountID:      changes.AccountID,
		Date:           changes.Date,
		Narration:      changes.Narration,
		DebitAmount:    changes.DebitAmount,
		CreditAmount:   changes.CreditAmount,
		NominalAccount: changes.NominalAccount,
	}

	if changes.ClearCategory {
		storageChanges.CategoryID = &uuid.NullUUID{}
	} else if changes.CategoryID != nil {
		ref := nullableID(changes.CategoryID)
		storageChanges.CategoryID = &ref
	}
	if changes.ClearSubcategory {
		storageChanges.SubcategoryID = &uuid.NullUUID{}
	} else if changes.SubcategoryID != nil {
		ref := nullableID(changes.SubcategoryID)
		storageChanges.SubcategoryID = &ref
	}

	return s.gateway.Process(ctx, &actions.UpdateTransaction{
		TransactionID: id,
		Changes:       storageChanges,
	})
}

// DeleteTransaction removes a transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.gateway.Process(ctx, &actions.DeleteTransaction{TransactionID: id})
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	converted := transactionFromStorage(row)
	return &converted, nil
}

// ListAccountTransactions returns all transactions of one account in
// chronological order.
func (s *TransactionService) ListAccountTransactions(ctx context.Context, accountID uuid.UUID) ([]Transaction, error) {
	rows, err := s.storage.Transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return transactionsFromStorage(rows), nil
}

// ListMonthTransactions returns all transactions dated within the given
// calendar month, across accounts, in chronological order.
func (s *TransactionService) ListMonthTransactions(ctx context.Context, year int, month time.Month) ([]Transaction, error) {
	rows, err := s.storage.Transactions.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return transactionsFromStorage(rows), nil
}

func transactionsFromStorage(rows []*transaction.Transaction) []Transaction {
	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted
}
