package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// UploadBatch inserts a fully validated upload batch in one transaction.
// The batch only reaches the gateway when every row validated, so either
// all rows commit or, on any storage failure, none do.
type UploadBatch struct {
	Creates []*transaction.TransactionCreate

	affected []uuid.UUID
}

func (t *UploadBatch) Perform(ctx context.Context, writer *storage.Writer) error {
	t.affected = t.affected[:0]
	seen := make(map[uuid.UUID]bool)
	for _, create := range t.Creates {
		if !seen[create.AccountID] {
			seen[create.AccountID] = true
			t.affected = append(t.affected, create.AccountID)
		}
	}

	if err := lockAccounts(ctx, writer, t.affected); err != nil {
		return err
	}

	for _, create := range t.Creates {
		if err := validateAmounts(create.DebitAmount, create.CreditAmount); err != nil {
			return err
		}
		if _, err := writer.Transaction.Insert(ctx, create); err != nil {
			return err
		}
	}
	return nil
}

func (t *UploadBatch) Accounts() []uuid.UUID {
	return t.affected
}
