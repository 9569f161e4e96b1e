package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
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

// FindByIDForUpdate locks the account row for the remainder of the
// transaction. Every gateway mutation takes this lock first, which is what
// serializes concurrent mutations on the same account.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[*Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Create inserts a new account and returns its generated ID.
func (w *Writer) Create(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("accounts", "name", "account_type", "description"),
		im.Values(psql.Arg(create.Name, create.AccountType, create.Description)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update applies the non-nil changes to an account.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, changes *AccountChanges) error {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("accounts"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if changes.Name != nil {
		mods = append(mods, um.SetCol("name").ToArg(*changes.Name))
	}
	if changes.AccountType != nil {
		mods = append(mods, um.SetCol("account_type").ToArg(*changes.AccountType))
	}
	if changes.Description != nil {
		mods = append(mods, um.SetCol("description").ToArg(*changes.Description))
	}

	_, err := bob.Exec(ctx, w.tx, psql.Update(mods...))
	return err
}

// Delete removes an account. Its transactions cascade at the schema level.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("accounts"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
