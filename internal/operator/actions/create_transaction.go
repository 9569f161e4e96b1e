package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// CreateTransaction inserts a single transaction into its account's ledger.
type CreateTransaction struct {
	Create *transaction.TransactionCreate

	createdID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateAmounts(t.Create.DebitAmount, t.Create.CreditAmount); err != nil {
		return err
	}

	if err := lockAccounts(ctx, writer, []uuid.UUID{t.Create.AccountID}); err != nil {
		return err
	}

	id, err := writer.Transaction.Insert(ctx, t.Create)
	if err != nil {
		return err
	}
	t.createdID = id
	return nil
}

func (t *CreateTransaction) Accounts() []uuid.UUID {
	return []uuid.UUID{t.Create.AccountID}
}

// CreatedID returns the new transaction's ID, valid after Perform.
func (t *CreateTransaction) CreatedID() uuid.UUID {
	return t.createdID
}
