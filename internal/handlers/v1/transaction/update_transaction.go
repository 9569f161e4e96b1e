package transaction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ingest"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/service"
)

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionBody is the request body fields for updating a
// transaction. Omitted fields are left untouched.
type UpdateTransactionBody struct {
	AccountID        string `json:"accountId,omitempty" format:"uuid" doc:"Move the transaction to this account"`
	CategoryID       string `json:"categoryId,omitempty" format:"uuid" doc:"Reclassify under this category"`
	SubcategoryID    string `json:"subCategoryId,omitempty" format:"uuid" doc:"Reclassify under this subcategory"`
	ClearCategory    bool   `json:"clearCategory,omitempty" doc:"Remove the category reference"`
	ClearSubcategory bool   `json:"clearSubCategory,omitempty" doc:"Remove the subcategory reference"`
	Date             string `json:"date,omitempty" doc:"Transaction date, YYYY-MM-DD"`
	Narration        string `json:"narration,omitempty" doc:"Statement narration"`
	DebitAmount      string `json:"debitAmount,omitempty" doc:"Debit amount"`
	CreditAmount     string `json:"creditAmount,omitempty" doc:"Credit amount"`
	NominalAccount   string `json:"nominalAccount,omitempty" doc:"Nominal account, e.g. 'Expense'"`
}

// UpdateTransactionOutput is the response for updating a transaction.
type UpdateTransactionOutput struct {
	Status int
}

// transactionUpdater is the interface for updating transactions.
type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id uuid.UUID, changes service.TransactionChanges) error
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update a transaction",
		Description: "Applies partial changes to a transaction and recomputes the running balances of every affected account.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (uuid.UUID, service.TransactionChanges, error) {
	var changes service.TransactionChanges

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, changes, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	if input.Body.AccountID != "" {
		accountID, err := uuid.FromString(input.Body.AccountID)
		if err != nil {
			return uuid.Nil, changes, huma.NewError(http.StatusBadRequest, "invalid accountId", err)
		}
		changes.AccountID = &accountID
	}
	if input.Body.CategoryID != "" {
		categoryID, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return uuid.Nil, changes, huma.NewError(http.StatusBadRequest, "invalid categoryId", err)
		}
		changes.CategoryID = &categoryID
	}
	if input.Body.SubcategoryID != "" {
		subcategoryID, err := uuid.FromString(input.Body.SubcategoryID)
		if err != nil {
			return uuid.Nil, changes, huma.NewError(http.StatusBadRequest, "invalid subCategoryId", err)
		}
		changes.SubcategoryID = &subcategoryID
	}
	changes.ClearCategory = input.Body.ClearCategory
	changes.ClearSubcategory = input.Body.ClearSubcategory

	if input.Body.Date != "" {
		date, err := time.Parse(dateLayout, input.Body.Date)
		if err != nil {
			return uuid.Nil, changes, huma.NewError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		}
		changes.Date = &date
	}
	if input.Body.Narration != "" {
		changes.Narration = &input.Body.Narration
	}
	if input.Body.DebitAmount != "" {
		amount, err := parseAmount(input.Body.DebitAmount)
		if err != nil {
			return uuid.Nil, changes, huma.NewError(http.StatusBadRequest, "invalid debitAmount", err)
		}
		changes.DebitAmount = &amount
	}
	if input.Body.CreditAmount != "" {
		amount, err := parseAmount(input.Body.CreditAmount)
		if err != nil {
			return uuid.Nil, changes, huma.NewError(http.StatusBadRequest, "invalid creditAmount", err)
		}
		changes.CreditAmount = &amount
	}
	if input.Body.NominalAccount != "" {
		nominal, ok := ingest.ParseNominalLabel(input.Body.NominalAccount)
		if !ok {
			return uuid.Nil, changes, huma.NewError(http.StatusBadRequest, "invalid nominalAccount", nil)
		}
		changes.NominalAccount = &nominal
	}

	return id, changes, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	id, changes, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	err = h.TransactionService.UpdateTransaction(ctx, id, changes)
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, actions.ErrTransactionNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "transaction not found", err)
	}
	if errors.Is(err, actions.ErrAccountNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "account not found", err)
	}
	if errors.Is(err, actions.ErrBadAmounts) {
		return nil, huma.NewError(http.StatusBadRequest, "exactly one of debitAmount and creditAmount must be set", err)
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update transaction", err)
	}

	return &UpdateTransactionOutput{Status: http.StatusNoContent}, nil
}
