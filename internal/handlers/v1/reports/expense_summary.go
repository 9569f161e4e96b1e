package reports

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ExpenseSummaryRow is the API model for one account's expense totals.
type ExpenseSummaryRow struct {
	Account      string `json:"account" doc:"Account name, 'Total' on the grand total row"`
	TotalDebits  string `json:"totalDebits" doc:"Expense debit total"`
	TotalCredits string `json:"totalCredits" doc:"Expense credit total"`
	Spent        string `json:"spent" doc:"Debits minus credits"`
}

// ExpenseSummaryInput is the Huma input for the expense summary report.
type ExpenseSummaryInput struct {
	monthInput
}

// ExpenseSummaryResponseBody is the response body for the expense summary.
type ExpenseSummaryResponseBody struct {
	Accounts []ExpenseSummaryRow `json:"accounts" doc:"One row per account with expense activity"`
	Total    ExpenseSummaryRow   `json:"total" doc:"Grand total row"`
}

// ExpenseSummaryOutput is the Huma output for the expense summary.
type ExpenseSummaryOutput struct {
	Body ExpenseSummaryResponseBody
}

// ExpenseSummaryHandler handles GET /v1/reports/expenses.
type ExpenseSummaryHandler struct {
	ReportService expenseSummarizer
}

// NewExpenseSummaryHandler creates a new ExpenseSummaryHandler.
func NewExpenseSummaryHandler(svc expenseSummarizer) *ExpenseSummaryHandler {
	return &ExpenseSummaryHandler{ReportService: svc}
}

// Register registers the expense summary endpoint with the Huma API.
func (h *ExpenseSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-expense-summary",
		Method:      http.MethodGet,
		Path:        "/v1/reports/expenses",
		Summary:     "Expense summary report",
		Description: "The month's expense totals per account with a grand total.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *ExpenseSummaryHandler) handle(ctx context.Context, input *ExpenseSummaryInput) (*ExpenseSummaryOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("expenseSummaryMs")
	}
	report, err := h.ReportService.ExpenseSummary(ctx, input.Year, time.Month(input.Month))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build expense summary", err)
	}

	resp := ExpenseSummaryResponseBody{
		Accounts: make([]ExpenseSummaryRow, len(report.Rows)),
		Total:    expenseRowFromService(report.Total),
	}
	for i, row := range report.Rows {
		resp.Accounts[i] = expenseRowFromService(row)
	}

	return &ExpenseSummaryOutput{Body: resp}, nil
}

func expenseRowFromService(row service.ExpenseSummaryRow) ExpenseSummaryRow {
	return ExpenseSummaryRow{
		Account:      row.AccountName,
		TotalDebits:  row.TotalDebit.StringFixed(2),
		TotalCredits: row.TotalCredit.StringFixed(2),
		Spent:        row.Net.StringFixed(2),
	}
}
