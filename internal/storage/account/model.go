package account

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
)

// ErrNotFound is returned when no account matches the lookup.
var ErrNotFound = errors.New("account not found")

// Account represents a personal account record (a bank account, wallet or
// card the money moved through). Accounts are created by an administrator
// and are never auto-created during uploads.
type Account struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	AccountType string    `db:"account_type"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	Name        string
	AccountType string
	Description string
}

// AccountChanges holds optional field updates; nil fields are left untouched.
type AccountChanges struct {
	Name        *string
	AccountType *string
	Description *string
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	Limit  int
	Offset int
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// AccountListResult contains a page of accounts and an optional next cursor.
type AccountListResult struct {
	Accounts   []*Account
	NextCursor *AccountCursor
}

// IAccountReader defines read-only account lookups.
type IAccountReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByName(ctx context.Context, name string) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) (*AccountListResult, error)
}
