package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// Account represents a personal account in the service layer.
type Account struct {
	ID          uuid.UUID
	Name        string
	AccountType string
	Description string
	CreatedAt   time.Time
}

// AccountChanges holds optional field updates for an account.
type AccountChanges struct {
	Name        *string
	AccountType *string
	Description *string
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:          row.ID,
		Name:        row.Name,
		AccountType: row.AccountType,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}
