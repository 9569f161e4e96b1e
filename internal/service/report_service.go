package service

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// accountSource is the slice of the account reader the reports need.
type accountSource interface {
	ListAll(ctx context.Context) ([]*account.Account, error)
}

// categorySource is the slice of the category reader the reports need.
type categorySource interface {
	List(ctx context.Context) ([]*category.Category, error)
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]*category.Subcategory, error)
}

// transactionSource is the slice of the transaction reader the reports need.
type transactionSource interface {
	ListMonth(ctx context.Context, year int, month time.Month) ([]*transaction.Transaction, error)
	ListBefore(ctx context.Context, cutoff time.Time) ([]*transaction.Transaction, error)
}

// ReportService answers the month-end reporting queries. It is read-only
// and aggregates in Go, so it never interferes with the running-balance
// engine.
type ReportService struct {
	accounts     accountSource
	categories   categorySource
	transactions transactionSource
}

// NewReportService creates a new ReportService.
func NewReportService(reader *storage.Reader) *ReportService {
	return &ReportService{
		accounts:     reader.Accounts,
		categories:   reader.Categories,
		transactions: reader.Transactions,
	}
}

// AccountSummary reports, for every account, the balance at the start of
// the month, the month's debit and credit totals and the closing balance.
// Accounts with no activity still get a row.
func (s *ReportService) AccountSummary(ctx context.Context, year int, month time.Month) (*AccountSummaryReport, error) {
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	before, err := s.transactions.ListBefore(ctx, first)
	if err != nil {
		return nil, err
	}
	monthRows, err := s.transactions.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	opening := make(map[uuid.UUID]decimal.Decimal, len(accounts))
	for _, row := range before {
		opening[row.AccountID] = opening[row.AccountID].Add(row.CreditAmount).Sub(row.DebitAmount)
	}

	debits := make(map[uuid.UUID]decimal.Decimal, len(accounts))
	credits := make(map[uuid.UUID]decimal.Decimal, len(accounts))
	for _, row := range monthRows {
		debits[row.AccountID] = debits[row.AccountID].Add(row.DebitAmount)
		credits[row.AccountID] = credits[row.AccountID].Add(row.CreditAmount)
	}

	report := &AccountSummaryReport{
		Year:  year,
		Month: month,
		Rows:  make([]AccountSummaryRow, len(accounts)),
	}
	for i, acc := range accounts {
		row := AccountSummaryRow{
			AccountID:      acc.ID,
			AccountName:    acc.Name,
			OpeningBalance: opening[acc.ID],
			TotalDebit:     debits[acc.ID],
			TotalCredit:    credits[acc.ID],
		}
		row.ClosingBalance = row.OpeningBalance.Add(row.TotalCredit).Sub(row.TotalDebit)
		report.Rows[i] = row
	}
	return report, nil
}

// CategorisedExpenseSummary groups the month's expense transactions by
// category and subcategory. Transactions without a category or subcategory
// fall into a "(blank)" group.
func (s *ReportService) CategorisedExpenseSummary(ctx context.Context, year int, month time.Month) (*CategorisedExpenseReport, error) {
	monthRows, err := s.transactions.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	categoryNames, subcategoryNames, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		category    string
		subcategory string
	}
	groups := make(map[groupKey]*CategorisedExpenseRow)

	report := &CategorisedExpenseReport{Year: year, Month: month}
	for _, row := range monthRows {
		if row.NominalAccount != transaction.NominalExpense {
			continue
		}
		key := groupKey{
			category:    groupLabel(row.CategoryID, categoryNames),
			subcategory: groupLabel(row.SubcategoryID, subcategoryNames),
		}
		group, ok := groups[key]
		if !ok {
			group = &CategorisedExpenseRow{
				Category:    key.category,
				Subcategory: key.subcategory,
			}
			groups[key] = group
		}
		group.TotalDebit = group.TotalDebit.Add(row.DebitAmount)
		group.TotalCredit = group.TotalCredit.Add(row.CreditAmount)
		report.TotalDebit = report.TotalDebit.Add(row.DebitAmount)
		report.TotalCredit = report.TotalCredit.Add(row.CreditAmount)
	}

	report.Rows = make([]CategorisedExpenseRow, 0, len(groups))
	for _, group := range groups {
		report.Rows = append(report.Rows, *group)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Category != report.Rows[j].Category {
			return report.Rows[i].Category < report.Rows[j].Category
		}
		return report.Rows[i].Subcategory < report.Rows[j].Subcategory
	})
	return report, nil
}

// ExpenseSummary totals the month's expense transactions per account, with
// a grand total row. Only accounts with expense activity appear.
func (s *ReportService) ExpenseSummary(ctx context.Context, year int, month time.Month) (*ExpenseSummaryReport, error) {
	monthRows, err := s.transactions.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	accountNames, err := s.accountNames(ctx)
	if err != nil {
		return nil, err
	}

	perAccount := make(map[string]*ExpenseSummaryRow)
	report := &ExpenseSummaryReport{
		Year:  year,
		Month: month,
		Total: ExpenseSummaryRow{AccountName: "Total"},
	}
	for _, row := range monthRows {
		if row.NominalAccount != transaction.NominalExpense {
			continue
		}
		name := accountNames[row.AccountID]
		entry, ok := perAccount[name]
		if !ok {
			entry = &ExpenseSummaryRow{AccountName: name}
			perAccount[name] = entry
		}
		entry.TotalDebit = entry.TotalDebit.Add(row.DebitAmount)
		entry.TotalCredit = entry.TotalCredit.Add(row.CreditAmount)
		report.Total.TotalDebit = report.Total.TotalDebit.Add(row.DebitAmount)
		report.Total.TotalCredit = report.Total.TotalCredit.Add(row.CreditAmount)
	}
	report.Total.Net = report.Total.TotalDebit.Sub(report.Total.TotalCredit)

	report.Rows = make([]ExpenseSummaryRow, 0, len(perAccount))
	for _, entry := range perAccount {
		entry.Net = entry.TotalDebit.Sub(entry.TotalCredit)
		report.Rows = append(report.Rows, *entry)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].AccountName < report.Rows[j].AccountName
	})
	return report, nil
}

// MonthlyTransactions lists every transaction of the month in
// chronological order with account and category references resolved to
// names.
func (s *ReportService) MonthlyTransactions(ctx context.Context, year int, month time.Month) (*MonthlyTransactionsReport, error) {
	monthRows, err := s.transactions.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	accountNames, err := s.accountNames(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames, subcategoryNames, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	report := &MonthlyTransactionsReport{
		Year:  year,
		Month: month,
		Rows:  make([]MonthlyTransactionRow, len(monthRows)),
	}
	for i, row := range monthRows {
		report.Rows[i] = MonthlyTransactionRow{
			ID:             row.ID,
			Date:           row.Date,
			AccountName:    accountNames[row.AccountID],
			Narration:      row.Narration,
			Category:       resolvedLabel(row.CategoryID, categoryNames),
			Subcategory:    resolvedLabel(row.SubcategoryID, subcategoryNames),
			DebitAmount:    row.DebitAmount,
			CreditAmount:   row.CreditAmount,
			NominalAccount: row.NominalAccount,
			RunningBalance: row.RunningBalance,
		}
	}
	return report, nil
}

func (s *ReportService) accountNames(ctx context.Context) (map[uuid.UUID]string, error) {
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(accounts))
	for _, acc := range accounts {
		names[acc.ID] = acc.Name
	}
	return names, nil
}

func (s *ReportService) categoryNames(ctx context.Context) (map[uuid.UUID]string, map[uuid.UUID]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	categoryNames := make(map[uuid.UUID]string, len(categories))
	subcategoryNames := make(map[uuid.UUID]string)
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name

		subs, err := s.categories.ListSubcategories(ctx, cat.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, sub := range subs {
			subcategoryNames[sub.ID] = sub.Name
		}
	}
	return categoryNames, subcategoryNames, nil
}

func groupLabel(id uuid.NullUUID, names map[uuid.UUID]string) string {
	if !id.Valid {
		return BlankGroupLabel
	}
	if name, ok := names[id.UUID]; ok {
		return name
	}
	return BlankGroupLabel
}

func resolvedLabel(id uuid.NullUUID, names map[uuid.UUID]string) string {
	if !id.Valid {
		return ""
	}
	return names[id.UUID]
}
