package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

var _ ICategoryReader = (*Reader)(nil)

func (r *Reader) FindByName(ctx context.Context, name string) (*Category, error) {
	q := psql.Select(
		sm.Columns("id", "name"),
		sm.From("categories"),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindSubcategoryByName looks a subcategory up within its parent category,
// since subcategory names are only unique per category.
func (r *Reader) FindSubcategoryByName(ctx context.Context, categoryID uuid.UUID, name string) (*Subcategory, error) {
	q := psql.Select(
		sm.Columns("id", "category_id", "name"),
		sm.From("subcategories"),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Subcategory]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubcategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) List(ctx context.Context) ([]*Category, error) {
	q := psql.Select(
		sm.Columns("id", "name"),
		sm.From("categories"),
		sm.OrderBy("name").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Category]())
}

func (r *Reader) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]*Subcategory, error) {
	q := psql.Select(
		sm.Columns("id", "category_id", "name"),
		sm.From("subcategories"),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		sm.OrderBy("name").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Subcategory]())
}
