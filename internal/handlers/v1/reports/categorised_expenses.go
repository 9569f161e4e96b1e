package reports

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
)

// CategorisedExpenseRow is the API model for one category group.
type CategorisedExpenseRow struct {
	Category     string `json:"category" doc:"Category name, '(blank)' for uncategorised"`
	SubCategory  string `json:"subCategory" doc:"Subcategory name, '(blank)' when absent"`
	TotalDebits  string `json:"totalDebits" doc:"Group debit total"`
	TotalCredits string `json:"totalCredits" doc:"Group credit total"`
}

// CategorisedExpensesInput is the Huma input for the categorised report.
type CategorisedExpensesInput struct {
	monthInput
}

// CategorisedExpensesResponseBody is the response body for the categorised
// expense report.
type CategorisedExpensesResponseBody struct {
	Groups       []CategorisedExpenseRow `json:"groups" doc:"Expense groups ordered by category then subcategory"`
	TotalDebits  string                  `json:"totalDebits" doc:"Grand debit total"`
	TotalCredits string                  `json:"totalCredits" doc:"Grand credit total"`
}

// CategorisedExpensesOutput is the Huma output for the categorised report.
type CategorisedExpensesOutput struct {
	Body CategorisedExpensesResponseBody
}

// CategorisedExpensesHandler handles GET /v1/reports/expenses/categorised.
type CategorisedExpensesHandler struct {
	ReportService expenseCategoriser
}

// NewCategorisedExpensesHandler creates a new CategorisedExpensesHandler.
func NewCategorisedExpensesHandler(svc expenseCategoriser) *CategorisedExpensesHandler {
	return &CategorisedExpensesHandler{ReportService: svc}
}

// Register registers the categorised expenses endpoint with the Huma API.
func (h *CategorisedExpensesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-categorised-expenses",
		Method:      http.MethodGet,
		Path:        "/v1/reports/expenses/categorised",
		Summary:     "Categorised expense report",
		Description: "The month's expense transactions grouped by category and subcategory.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *CategorisedExpensesHandler) handle(ctx context.Context, input *CategorisedExpensesInput) (*CategorisedExpensesOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("categorisedExpensesMs")
	}
	report, err := h.ReportService.CategorisedExpenseSummary(ctx, input.Year, time.Month(input.Month))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build categorised expense report", err)
	}

	resp := CategorisedExpensesResponseBody{
		Groups:       make([]CategorisedExpenseRow, len(report.Rows)),
		TotalDebits:  report.TotalDebit.StringFixed(2),
		TotalCredits: report.TotalCredit.StringFixed(2),
	}
	for i, row := range report.Rows {
		resp.Groups[i] = CategorisedExpenseRow{
			Category:     row.Category,
			SubCategory:  row.Subcategory,
			TotalDebits:  row.TotalDebit.StringFixed(2),
			TotalCredits: row.TotalCredit.StringFixed(2),
		}
	}

	return &CategorisedExpensesOutput{Body: resp}, nil
}
