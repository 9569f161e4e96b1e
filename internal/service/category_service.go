package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// Category represents a spending category in the service layer.
type Category struct {
	ID   uuid.UUID
	Name string
}

// Subcategory represents a refinement of a category.
type Subcategory struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Name       string
}

// CategoryService handles category and subcategory business logic.
type CategoryService struct {
	storage *storage.Storage
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

// CreateCategory creates a new category and returns its ID.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (uuid.UUID, error) {
	writer, err := s.storage.Write(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := writer.Category.Create(ctx, name)
	if err != nil {
		_ = writer.Rollback()
		return uuid.Nil, err
	}

	if err = writer.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// CreateSubcategory creates a new subcategory under an existing category.
func (s *CategoryService) CreateSubcategory(ctx context.Context, categoryName, name string) (uuid.UUID, error) {
	parent, err := s.storage.Categories.FindByName(ctx, categoryName)
	if err != nil {
		return uuid.Nil, err
	}

	writer, err := s.storage.Write(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := writer.Category.CreateSubcategory(ctx, parent.ID, name)
	if err != nil {
		_ = writer.Rollback()
		return uuid.Nil, err
	}

	if err = writer.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// DeleteCategory removes a category along with its subcategories.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	writer, err := s.storage.Write(ctx)
	if err != nil {
		return err
	}

	if err = writer.Category.Delete(ctx, id); err != nil {
		_ = writer.Rollback()
		return err
	}

	return writer.Commit()
}

// ListCategories returns all categories with their subcategories.
func (s *CategoryService) ListCategories(ctx context.Context) ([]Category, map[uuid.UUID][]Subcategory, error) {
	rows, err := s.storage.Categories.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	categories := make([]Category, len(rows))
	subcategories := make(map[uuid.UUID][]Subcategory, len(rows))
	for i, row := range rows {
		categories[i] = Category{ID: row.ID, Name: row.Name}

		subs, err := s.storage.Categories.ListSubcategories(ctx, row.ID)
		if err != nil {
			return nil, nil, err
		}
		subcategories[row.ID] = subcategoriesFromStorage(subs)
	}
	return categories, subcategories, nil
}

func subcategoriesFromStorage(rows []*category.Subcategory) []Subcategory {
	converted := make([]Subcategory, len(rows))
	for i, row := range rows {
		converted[i] = Subcategory{
			ID:         row.ID,
			CategoryID: row.CategoryID,
			Name:       row.Name,
		}
	}
	return converted
}
