package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"id", "account_id", "category_id", "subcategory_id", "date", "narration",
	"debit_amount", "credit_amount", "nominal_account", "running_balance",
	"created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

var _ ITransactionReader = (*Reader)(nil)

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListByAccount returns every transaction of one account in chronological
// order. The (created_at, id) tail makes the order total, so same-day rows
// keep their insertion order and the running balance is deterministic.
func (r *Reader) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.OrderBy("date").Asc(),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Transaction]())
}

// ListMonth returns all transactions dated within the given calendar month,
// across accounts, in chronological order.
func (r *Reader) ListMonth(ctx context.Context, year int, month time.Month) ([]*Transaction, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("date").GTE(psql.Arg(first))),
		sm.Where(psql.Quote("date").LT(psql.Arg(next))),
		sm.OrderBy("date").Asc(),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Transaction]())
}

// ListBefore returns all transactions dated strictly before the cutoff,
// across accounts. Report services use it to compute opening balances.
func (r *Reader) ListBefore(ctx context.Context, cutoff time.Time) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("date").LT(psql.Arg(cutoff))),
		sm.OrderBy("date").Asc(),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Transaction]())
}
