// Package ledger maintains the derived running balance of each account.
//
// Recompute is a plain, directly invoked procedure. It is deliberately not a
// storage hook: the only caller is the mutation gateway, which runs it
// exactly once per external mutation inside the same database transaction,
// so a recalculation can never cascade into further recalculations.
package ledger

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Store is the slice of transaction storage the engine needs: an ordered
// read of one account's rows and a balance-only write-back.
type Store interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error)
	UpdateRunningBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// RecomputeFunc is the signature of Recompute, kept as a type so the
// gateway can take the engine as a seam.
type RecomputeFunc func(ctx context.Context, store Store, accountID uuid.UUID) error

// Recompute rebuilds the running balance of every transaction belonging to
// accountID. Rows are read in chronological order (date, then insertion
// order) and the balance folds credit minus debit from zero. Rows whose
// stored balance already matches are not rewritten, so a repeat pass is
// read-only.
//
// Any error aborts the pass; the caller rolls the enclosing database
// transaction back, so a partially recomputed ledger is never committed.
// The operation is idempotent: re-running it from scratch converges to the
// same values.
func Recompute(ctx context.Context, store Store, accountID uuid.UUID) error {
	rows, err := store.ListByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("recompute list account %s: %w", accountID, err)
	}

	runningBalance := decimal.Zero
	for _, row := range rows {
		runningBalance = runningBalance.Add(row.CreditAmount).Sub(row.DebitAmount)

		if row.RunningBalance.Equal(runningBalance) {
			continue
		}
		if err := store.UpdateRunningBalance(ctx, row.ID, runningBalance); err != nil {
			return fmt.Errorf("recompute write transaction %s: %w", row.ID, err)
		}
	}

	return nil
}
