package reports

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
)

// AccountSummaryRow is the API model for one account's month summary.
type AccountSummaryRow struct {
	AccountID      string `json:"accountId" doc:"Account UUID"`
	Account        string `json:"account" doc:"Account name"`
	OpeningBalance string `json:"openingBalance" doc:"Balance at the start of the month"`
	TotalDebits    string `json:"totalDebits" doc:"Month's debit total"`
	TotalCredits   string `json:"totalCredits" doc:"Month's credit total"`
	ClosingBalance string `json:"closingBalance" doc:"Balance at the end of the month"`
}

// AccountSummaryInput is the Huma input for the account summary report.
type AccountSummaryInput struct {
	monthInput
}

// AccountSummaryResponseBody is the response body for the account summary.
type AccountSummaryResponseBody struct {
	Accounts []AccountSummaryRow `json:"accounts" doc:"One row per account"`
}

// AccountSummaryOutput is the Huma output for the account summary.
type AccountSummaryOutput struct {
	Body AccountSummaryResponseBody
}

// AccountSummaryHandler handles GET /v1/reports/accounts.
type AccountSummaryHandler struct {
	ReportService accountSummarizer
}

// NewAccountSummaryHandler creates a new AccountSummaryHandler.
func NewAccountSummaryHandler(svc accountSummarizer) *AccountSummaryHandler {
	return &AccountSummaryHandler{ReportService: svc}
}

// Register registers the account summary endpoint with the Huma API.
func (h *AccountSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-account-summary",
		Method:      http.MethodGet,
		Path:        "/v1/reports/accounts",
		Summary:     "Account summary report",
		Description: "Opening balance, month totals and closing balance for every account.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *AccountSummaryHandler) handle(ctx context.Context, input *AccountSummaryInput) (*AccountSummaryOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("accountSummaryMs")
	}
	report, err := h.ReportService.AccountSummary(ctx, input.Year, time.Month(input.Month))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build account summary", err)
	}

	resp := AccountSummaryResponseBody{
		Accounts: make([]AccountSummaryRow, len(report.Rows)),
	}
	for i, row := range report.Rows {
		resp.Accounts[i] = AccountSummaryRow{
			AccountID:      row.AccountID.String(),
			Account:        row.AccountName,
			OpeningBalance: row.OpeningBalance.StringFixed(2),
			TotalDebits:    row.TotalDebit.StringFixed(2),
			TotalCredits:   row.TotalCredit.StringFixed(2),
			ClosingBalance: row.ClosingBalance.StringFixed(2),
		}
	}

	return &AccountSummaryOutput{Body: resp}, nil
}
