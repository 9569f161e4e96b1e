package reports

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/report"
)

// CompleteWorkbookHandler handles GET /v1/reports/complete. It streams an
// XLSX workbook, so it stays a plain http.Handler outside Huma.
type CompleteWorkbookHandler struct {
	ReportService monthReporter
}

func NewCompleteWorkbookHandler(svc monthReporter) CompleteWorkbookHandler {
	return CompleteWorkbookHandler{ReportService: svc}
}

func (h *CompleteWorkbookHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return errors.New("reports: method not GET")
	}

	year, month, err := parseMonthQuery(req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return err
	}
	ctx := req.Context()

	stopTimer := logData.AddTiming("completeWorkbookMs")
	defer stopTimer()

	transactions, err := h.ReportService.MonthlyTransactions(ctx, year, month)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}
	accounts, err := h.ReportService.AccountSummary(ctx, year, month)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}
	categorised, err := h.ReportService.CategorisedExpenseSummary(ctx, year, month)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}
	expenses, err := h.ReportService.ExpenseSummary(ctx, year, month)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	filename := fmt.Sprintf("reports-%04d-%02d.xlsx", year, int(month))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	return report.WriteWorkbook(w,
		report.TransactionsTable(transactions),
		report.AccountSummaryTable(accounts),
		report.CategorisedExpenseTable(categorised),
		report.ExpenseSummaryTable(expenses),
	)
}

func parseMonthQuery(req *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(req.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year: %w", err)
	}
	monthNum, err := strconv.Atoi(req.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month: %w", err)
	}
	if monthNum < 1 || monthNum > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", monthNum)
	}
	return year, time.Month(monthNum), nil
}
