package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// BlankGroupLabel stands in for a missing category or subcategory in
// grouped reports.
const BlankGroupLabel = "(blank)"

// AccountSummaryRow is one account's month in the account summary report.
// ClosingBalance is OpeningBalance + TotalCredit - TotalDebit.
type AccountSummaryRow struct {
	AccountID      uuid.UUID
	AccountName    string
	OpeningBalance decimal.Decimal
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	ClosingBalance decimal.Decimal
}

// AccountSummaryReport summarizes every account over one calendar month.
type AccountSummaryReport struct {
	Year  int
	Month time.Month
	Rows  []AccountSummaryRow
}

// CategorisedExpenseRow is one (category, subcategory) group of a month's
// expense transactions.
type CategorisedExpenseRow struct {
	Category    string
	Subcategory string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// CategorisedExpenseReport groups a month's expense transactions by
// category and subcategory.
type CategorisedExpenseReport struct {
	Year        int
	Month       time.Month
	Rows        []CategorisedExpenseRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// ExpenseSummaryRow is one account's expense totals for a month. Net is
// TotalDebit - TotalCredit, the amount actually spent.
type ExpenseSummaryRow struct {
	AccountName string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Net         decimal.Decimal
}

// ExpenseSummaryReport totals a month's expense transactions per account.
type ExpenseSummaryReport struct {
	Year  int
	Month time.Month
	Rows  []ExpenseSummaryRow
	Total ExpenseSummaryRow
}

// MonthlyTransactionRow is one transaction of the monthly listing with its
// references resolved to names.
type MonthlyTransactionRow struct {
	ID             uuid.UUID
	Date           time.Time
	AccountName    string
	Narration      string
	Category       string
	Subcategory    string
	DebitAmount    decimal.Decimal
	CreditAmount   decimal.Decimal
	NominalAccount string
	RunningBalance decimal.Decimal
}

// MonthlyTransactionsReport lists every transaction of one calendar month
// in chronological order.
type MonthlyTransactionsReport struct {
	Year  int
	Month time.Month
	Rows  []MonthlyTransactionRow
}
