package transaction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ingest"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionBody is the request body fields for creating a transaction.
type CreateTransactionBody struct {
	AccountID      string `json:"accountId" format:"uuid" doc:"Personal account UUID"`
	CategoryID     string `json:"categoryId,omitempty" format:"uuid" doc:"Category UUID"`
	SubcategoryID  string `json:"subCategoryId,omitempty" format:"uuid" doc:"Subcategory UUID"`
	Date           string `json:"date" minLength:"1" doc:"Transaction date, YYYY-MM-DD"`
	Narration      string `json:"narration" minLength:"1" doc:"Statement narration"`
	DebitAmount    string `json:"debitAmount,omitempty" doc:"Debit amount; exactly one of debitAmount and creditAmount must be set"`
	CreditAmount   string `json:"creditAmount,omitempty" doc:"Credit amount; exactly one of debitAmount and creditAmount must be set"`
	NominalAccount string `json:"nominalAccount" minLength:"1" doc:"Nominal account, e.g. 'Expense' or 'Opening Balance'"`
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the response for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, create service.TransactionCreate) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create a transaction",
		Description: "Records a single transaction and recomputes the account's running balances.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionCreate, error) {
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid accountId", err)
	}

	create := service.TransactionCreate{
		AccountID: accountID,
		Narration: input.Body.Narration,
	}

	if input.Body.CategoryID != "" {
		categoryID, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid categoryId", err)
		}
		create.CategoryID = &categoryID
	}
	if input.Body.SubcategoryID != "" {
		subcategoryID, err := uuid.FromString(input.Body.SubcategoryID)
		if err != nil {
			return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid subCategoryId", err)
		}
		create.SubcategoryID = &subcategoryID
	}

	create.Date, err = time.Parse(dateLayout, input.Body.Date)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
	}

	create.DebitAmount, err = parseAmount(input.Body.DebitAmount)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid debitAmount", err)
	}
	create.CreditAmount, err = parseAmount(input.Body.CreditAmount)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid creditAmount", err)
	}

	nominal, ok := ingest.ParseNominalLabel(input.Body.NominalAccount)
	if !ok {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid nominalAccount", nil)
	}
	create.NominalAccount = nominal

	return create, nil
}

func parseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Round(2), nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	id, err := h.TransactionService.CreateTransaction(ctx, create)
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, actions.ErrAccountNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "account not found", err)
	}
	if errors.Is(err, actions.ErrBadAmounts) {
		return nil, huma.NewError(http.StatusBadRequest, "exactly one of debitAmount and creditAmount must be set", err)
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: id.String()},
	}, nil
}
