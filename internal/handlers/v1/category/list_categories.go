package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Subcategory is the API response model for a subcategory.
type Subcategory struct {
	ID   string `json:"id" doc:"Subcategory UUID"`
	Name string `json:"name" doc:"Subcategory name"`
}

// Category is the API response model for a category with its subcategories.
type Category struct {
	ID            string        `json:"id" doc:"Category UUID"`
	Name          string        `json:"name" doc:"Category name"`
	Subcategories []Subcategory `json:"subcategories" doc:"Subcategories of this category"`
}

// ListCategoriesResponseBody is the response body for listing categories.
type ListCategoriesResponseBody struct {
	Categories []Category `json:"categories" doc:"All categories with their subcategories"`
}

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

// categoryLister is the interface for listing categories.
type categoryLister interface {
	ListCategories(ctx context.Context) ([]service.Category, map[uuid.UUID][]service.Subcategory, error)
}

// ListCategoriesHandler handles GET /v1/categories.
type ListCategoriesHandler struct {
	CategoryService categoryLister
}

// NewListCategoriesHandler creates a new ListCategoriesHandler.
func NewListCategoriesHandler(svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

// Register registers the list categories endpoint with the Huma API.
func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Description: "Returns every category with its subcategories.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listCategoriesMs")
	}
	categories, subcategories, err := h.CategoryService.ListCategories(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list categories", err)
	}

	if logData != nil {
		logData.AddData("categoryCount", len(categories))
	}

	resp := ListCategoriesResponseBody{
		Categories: make([]Category, len(categories)),
	}
	for i, cat := range categories {
		subs := subcategories[cat.ID]
		converted := Category{
			ID:            cat.ID.String(),
			Name:          cat.Name,
			Subcategories: make([]Subcategory, len(subs)),
		}
		for j, sub := range subs {
			converted.Subcategories[j] = Subcategory{
				ID:   sub.ID.String(),
				Name: sub.Name,
			}
		}
		resp.Categories[i] = converted
	}

	return &ListCategoriesOutput{Body: resp}, nil
}
