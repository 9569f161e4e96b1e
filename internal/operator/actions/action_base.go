package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrBadAmounts is returned when a mutation would leave a transaction
	// without exactly one positive amount.
	ErrBadAmounts = errors.New("exactly one of debit amount and credit amount must be positive")
)

// IAction is one gateway mutation. Perform runs inside the operator's
// database transaction; Accounts reports the accounts whose running
// balances the mutation touched and is only valid after Perform returns.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
	Accounts() []uuid.UUID
}

// validateAmounts enforces the debit-xor-credit rule at the gateway, the
// only sanctioned mutation path: one amount strictly positive, the other
// zero.
func validateAmounts(debit, credit decimal.Decimal) error {
	debitSet := debit.IsPositive()
	creditSet := credit.IsPositive()
	if debit.IsNegative() || credit.IsNegative() {
		return ErrBadAmounts
	}
	if debitSet == creditSet {
		return ErrBadAmounts
	}
	return nil
}

// lockAccounts takes the row locks that serialize concurrent mutations on
// the same account. IDs are locked in a fixed order so two mutations
// touching the same pair of accounts cannot deadlock.
func lockAccounts(ctx context.Context, writer *storage.Writer, ids []uuid.UUID) error {
	ordered := make([]uuid.UUID, len(ids))
	copy(ordered, ids)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].String() < ordered[j-1].String(); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	seen := make(map[uuid.UUID]bool, len(ordered))
	for _, id := range ordered {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := writer.Account.FindByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, account.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
	}
	return nil
}
