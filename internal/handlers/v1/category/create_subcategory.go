package category

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// CreateSubcategoryInput is the Huma input for creating a subcategory.
type CreateSubcategoryInput struct {
	Body CreateSubcategoryBody
}

// CreateSubcategoryBody is the request body fields for creating a subcategory.
type CreateSubcategoryBody struct {
	Category string `json:"category" minLength:"1" doc:"Parent category name"`
	Name     string `json:"name" minLength:"1" doc:"Subcategory name, unique within the category"`
}

// CreateSubcategoryResponse is the response body for creating a subcategory.
type CreateSubcategoryResponse struct {
	ID string `json:"id" doc:"Created subcategory UUID"`
}

// CreateSubcategoryOutput is the response for creating a subcategory.
type CreateSubcategoryOutput struct {
	Status int
	Body   CreateSubcategoryResponse
}

// subcategoryCreator is the interface for creating subcategories.
type subcategoryCreator interface {
	CreateSubcategory(ctx context.Context, categoryName, name string) (uuid.UUID, error)
}

// CreateSubcategoryHandler handles POST /v1/subcategory.
type CreateSubcategoryHandler struct {
	CategoryService subcategoryCreator
}

// NewCreateSubcategoryHandler creates a new CreateSubcategoryHandler.
func NewCreateSubcategoryHandler(svc subcategoryCreator) *CreateSubcategoryHandler {
	return &CreateSubcategoryHandler{CategoryService: svc}
}

// Register registers the create subcategory endpoint with the Huma API.
func (h *CreateSubcategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-subcategory",
		Method:      http.MethodPost,
		Path:        "/v1/subcategory",
		Summary:     "Create a subcategory",
		Description: "Creates a new subcategory under an existing category, identified by name.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *CreateSubcategoryHandler) handle(ctx context.Context, input *CreateSubcategoryInput) (*CreateSubcategoryOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createSubcategoryMs")
	}
	id, err := h.CategoryService.CreateSubcategory(ctx, input.Body.Category, input.Body.Name)
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, category.ErrNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "category not found", err)
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create subcategory", err)
	}

	if logData != nil {
		logData.AddData("subcategoryID", id.String())
	}

	return &CreateSubcategoryOutput{
		Status: http.StatusCreated,
		Body:   CreateSubcategoryResponse{ID: id.String()},
	}, nil
}
