// Package report renders the month-end reports to CSV and XLSX. It holds
// no business logic: every number comes in already aggregated.
package report

import (
	"github.com/carson-networks/ledger-server/internal/ingest"
	"github.com/carson-networks/ledger-server/internal/service"
)

const dateLayout = "02-01-2006"

func nominalLabel(token string) string {
	return ingest.NominalLabel(token)
}

// Table is one rendered report section: a sheet in the workbook or a CSV
// document on its own.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// TransactionsTable renders the monthly transaction listing.
func TransactionsTable(r *service.MonthlyTransactionsReport) Table {
	t := Table{
		Name: "Transactions",
		Header: []string{
			"Date", "Account", "Narration", "Category", "Sub Category",
			"Debit Amount", "Credit Amount", "Nominal Account", "Running Balance",
		},
		Rows: make([][]string, len(r.Rows)),
	}
	for i, row := range r.Rows {
		t.Rows[i] = []string{
			row.Date.Format(dateLayout),
			row.AccountName,
			row.Narration,
			row.Category,
			row.Subcategory,
			row.DebitAmount.StringFixed(2),
			row.CreditAmount.StringFixed(2),
			nominalLabel(row.NominalAccount),
			row.RunningBalance.StringFixed(2),
		}
	}
	return t
}

// AccountSummaryTable renders the per-account month summary.
func AccountSummaryTable(r *service.AccountSummaryReport) Table {
	t := Table{
		Name: "Account Summary",
		Header: []string{
			"Account", "Opening Balance", "Total Debits", "Total Credits", "Closing Balance",
		},
		Rows: make([][]string, len(r.Rows)),
	}
	for i, row := range r.Rows {
		t.Rows[i] = []string{
			row.AccountName,
			row.OpeningBalance.StringFixed(2),
			row.TotalDebit.StringFixed(2),
			row.TotalCredit.StringFixed(2),
			row.ClosingBalance.StringFixed(2),
		}
	}
	return t
}

// CategorisedExpenseTable renders the expense-by-category breakdown with a
// trailing grand total row.
func CategorisedExpenseTable(r *service.CategorisedExpenseReport) Table {
	t := Table{
		Name:   "Categorised Expenses",
		Header: []string{"Category", "Sub Category", "Total Debits", "Total Credits"},
		Rows:   make([][]string, 0, len(r.Rows)+1),
	}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []string{
			row.Category,
			row.Subcategory,
			row.TotalDebit.StringFixed(2),
			row.TotalCredit.StringFixed(2),
		})
	}
	t.Rows = append(t.Rows, []string{
		"Total", "", r.TotalDebit.StringFixed(2), r.TotalCredit.StringFixed(2),
	})
	return t
}

// ExpenseSummaryTable renders the per-account expense totals with the
// grand total row last.
func ExpenseSummaryTable(r *service.ExpenseSummaryReport) Table {
	t := Table{
		Name:   "Expense Summary",
		Header: []string{"Account", "Total Debits", "Total Credits", "Spent"},
		Rows:   make([][]string, 0, len(r.Rows)+1),
	}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, expenseSummaryRow(row))
	}
	t.Rows = append(t.Rows, expenseSummaryRow(r.Total))
	return t
}

func expenseSummaryRow(row service.ExpenseSummaryRow) []string {
	return []string{
		row.AccountName,
		row.TotalDebit.StringFixed(2),
		row.TotalCredit.StringFixed(2),
		row.Net.StringFixed(2),
	}
}
