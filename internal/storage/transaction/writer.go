package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new transaction and returns its generated ID. The running
// balance starts at zero; the recalculation engine overwrites it before the
// enclosing transaction commits.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("transactions",
			"account_id", "category_id", "subcategory_id", "date", "narration",
			"debit_amount", "credit_amount", "nominal_account",
		),
		im.Values(psql.Arg(
			create.AccountID, create.CategoryID, create.SubcategoryID,
			create.Date, create.Narration, create.DebitAmount,
			create.CreditAmount, create.NominalAccount,
		)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update applies the non-nil changes to a transaction.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, changes *TransactionChanges) error {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transactions"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if changes.AccountID != nil {
		mods = append(mods, um.SetCol("account_id").ToArg(*changes.AccountID))
	}
	if changes.CategoryID != nil {
		mods = append(mods, um.SetCol("category_id").ToArg(*changes.CategoryID))
	}
	if changes.SubcategoryID != nil {
		mods = append(mods, um.SetCol("subcategory_id").ToArg(*changes.SubcategoryID))
	}
	if changes.Date != nil {
		mods = append(mods, um.SetCol("date").ToArg(*changes.Date))
	}
	if changes.Narration != nil {
		mods = append(mods, um.SetCol("narration").ToArg(*changes.Narration))
	}
	if changes.DebitAmount != nil {
		mods = append(mods, um.SetCol("debit_amount").ToArg(*changes.DebitAmount))
	}
	if changes.CreditAmount != nil {
		mods = append(mods, um.SetCol("credit_amount").ToArg(*changes.CreditAmount))
	}
	if changes.NominalAccount != nil {
		mods = append(mods, um.SetCol("nominal_account").ToArg(*changes.NominalAccount))
	}

	_, err := bob.Exec(ctx, w.tx, psql.Update(mods...))
	return err
}

// Delete removes a transaction.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// UpdateRunningBalance writes the derived running balance of a single row.
// This is a balance-only UPDATE with no path back into the mutation gateway,
// so a recalculation pass can never trigger another recalculation.
func (w *Writer) UpdateRunningBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("running_balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
