package reports

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// monthInput is the shared query input of every report endpoint.
type monthInput struct {
	Month int `query:"month" minimum:"1" maximum:"12" required:"true" doc:"Calendar month, 1-12"`
	Year  int `query:"year" minimum:"2000" maximum:"2200" required:"true" doc:"Calendar year"`
}

// accountSummarizer is the interface for the account summary report.
type accountSummarizer interface {
	AccountSummary(ctx context.Context, year int, month time.Month) (*service.AccountSummaryReport, error)
}

// expenseCategoriser is the interface for the categorised expense report.
type expenseCategoriser interface {
	CategorisedExpenseSummary(ctx context.Context, year int, month time.Month) (*service.CategorisedExpenseReport, error)
}

// expenseSummarizer is the interface for the expense summary report.
type expenseSummarizer interface {
	ExpenseSummary(ctx context.Context, year int, month time.Month) (*service.ExpenseSummaryReport, error)
}

// monthReporter is the interface the complete-workbook download needs.
type monthReporter interface {
	accountSummarizer
	expenseCategoriser
	expenseSummarizer
	MonthlyTransactions(ctx context.Context, year int, month time.Month) (*service.MonthlyTransactionsReport, error)
}
