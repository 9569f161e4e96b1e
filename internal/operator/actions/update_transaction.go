package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// UpdateTransaction applies field changes to an existing transaction. If the
// change moves the transaction to another account, both the old and the new
// account are recomputed.
type UpdateTransaction struct {
	TransactionID uuid.UUID
	Changes       *transaction.TransactionChanges

	affected []uuid.UUID
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByID(ctx, t.TransactionID)
	if errors.Is(err, transaction.ErrNotFound) {
		return ErrTransactionNotFound
	}
	if err != nil {
		return err
	}

	t.affected = []uuid.UUID{existing.AccountID}
	if t.Changes.AccountID != nil && *t.Changes.AccountID != existing.AccountID {
		t.affected = append(t.affected, *t.Changes.AccountID)
	}

	// The resulting row must still satisfy debit-xor-credit.
	debit := existing.DebitAmount
	credit := existing.CreditAmount
	if t.Changes.DebitAmount != nil {
		debit = *t.Changes.DebitAmount
	}
	if t.Changes.CreditAmount != nil {
		credit = *t.Changes.CreditAmount
	}
	if err := validateAmounts(debit, credit); err != nil {
		return err
	}

	if err := lockAccounts(ctx, writer, t.affected); err != nil {
		return err
	}

	return writer.Transaction.Update(ctx, t.TransactionID, t.Changes)
}

func (t *UpdateTransaction) Accounts() []uuid.UUID {
	return t.affected
}
