package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// DeleteTransaction removes a transaction and leaves its account's running
// balances converged over the remaining rows.
type DeleteTransaction struct {
	TransactionID uuid.UUID

	affected []uuid.UUID
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByID(ctx, t.TransactionID)
	if errors.Is(err, transaction.ErrNotFound) {
		return ErrTransactionNotFound
	}
	if err != nil {
		return err
	}

	t.affected = []uuid.UUID{existing.AccountID}
	if err := lockAccounts(ctx, writer, t.affected); err != nil {
		return err
	}

	return writer.Transaction.Delete(ctx, t.TransactionID)
}

func (t *DeleteTransaction) Accounts() []uuid.UUID {
	return t.affected
}
