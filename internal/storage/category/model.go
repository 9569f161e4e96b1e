package category

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
)

var (
	// ErrNotFound is returned when no category matches the lookup.
	ErrNotFound = errors.New("category not found")
	// ErrSubcategoryNotFound is returned when no subcategory matches the lookup.
	ErrSubcategoryNotFound = errors.New("subcategory not found")
)

// Category classifies what a transaction was for. Names are globally unique.
type Category struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// Subcategory refines a Category. Names are unique within their parent
// category; the row cascades away with the parent.
type Subcategory struct {
	ID         uuid.UUID `db:"id"`
	CategoryID uuid.UUID `db:"category_id"`
	Name       string    `db:"name"`
}

// ICategoryReader defines read-only category and subcategory lookups.
type ICategoryReader interface {
	FindByName(ctx context.Context, name string) (*Category, error)
	FindSubcategoryByName(ctx context.Context, categoryID uuid.UUID, name string) (*Subcategory, error)
	List(ctx context.Context) ([]*Category, error)
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]*Subcategory, error)
}
