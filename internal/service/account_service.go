package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

const defaultAccountLimit = 20

// AccountService handles account business logic.
type AccountService struct {
	storage *storage.Storage
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage) *AccountService {
	return &AccountService{storage: store}
}

// CreateAccount creates a new account and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, acc Account) (uuid.UUID, error) {
	writer, err := s.storage.Write(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := writer.Account.Create(ctx, &account.AccountCreate{
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Description: acc.Description,
	})
	if err != nil {
		_ = writer.Rollback()
		return uuid.Nil, err
	}

	if err = writer.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateAccount applies the non-nil changes to an account.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, changes AccountChanges) error {
	writer, err := s.storage.Write(ctx)
	if err != nil {
		return err
	}

	if _, err = writer.Account.FindByIDForUpdate(ctx, id); err != nil {
		_ = writer.Rollback()
		return err
	}

	err = writer.Account.Update(ctx, id, &account.AccountChanges{
		Name:        changes.Name,
		AccountType: changes.AccountType,
		Description: changes.Description,
	})
	if err != nil {
		_ = writer.Rollback()
		return err
	}

	return writer.Commit()
}

// DeleteAccount removes an account and, through the schema, all of its
// transactions.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	writer, err := s.storage.Write(ctx)
	if err != nil {
		return err
	}

	if _, err = writer.Account.FindByIDForUpdate(ctx, id); err != nil {
		_ = writer.Rollback()
		return err
	}

	if err = writer.Account.Delete(ctx, id); err != nil {
		_ = writer.Rollback()
		return err
	}

	return writer.Commit()
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	converted := accountFromStorage(row)
	return &converted, nil
}

// ListAccounts returns a page of accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	result, err := s.storage.Accounts.List(ctx, &account.AccountFilter{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(result.Accounts) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if result.NextCursor != nil {
		nextCursor = &AccountCursor{
			Position: result.NextCursor.Position,
			Limit:    result.NextCursor.Limit,
		}
	}

	converted := make([]Account, len(result.Accounts))
	for i, row := range result.Accounts {
		converted[i] = accountFromStorage(row)
	}
	return converted, nextCursor, nil
}
