package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

// Create inserts a new category and returns its generated ID.
func (w *Writer) Create(ctx context.Context, name string) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("categories", "name"),
		im.Values(psql.Arg(name)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// CreateSubcategory inserts a new subcategory under the given category.
func (w *Writer) CreateSubcategory(ctx context.Context, categoryID uuid.UUID, name string) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("subcategories", "category_id", "name"),
		im.Values(psql.Arg(categoryID, name)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Delete removes a category. Subcategories cascade away and any
// transactions referencing either get their reference nulled by the schema.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("categories"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
