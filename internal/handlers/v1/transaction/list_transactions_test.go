package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/service"
)

// mockTransactionLister is a mock for transactionLister.
type mockTransactionLister struct {
	mock.Mock
}

func (m *mockTransactionLister) ListMonthTransactions(ctx context.Context, year int, month time.Month) ([]service.Transaction, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.Transaction), args.Error(1)
}

func newListTestAPI(t *testing.T, svc transactionLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListTransactionsHandler(svc).Register(api)
	return api
}

func TestHTTP_ListTransactions_Success(t *testing.T) {
	txID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListMonthTransactions", mock.Anything, 2025, time.July).
		Return([]service.Transaction{{
			ID:             txID,
			AccountID:      accountID,
			Date:           time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC),
			Narration:      "TESCO STORES",
			DebitAmount:    decimal.RequireFromString("12.50"),
			NominalAccount: "EXPENSE",
			RunningBalance: decimal.RequireFromString("987.50"),
		}}, nil)

	resp := newListTestAPI(t, mockSvc).Get("/v1/transactions?month=7&year=2025")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Transactions, 1)
	assert.Equal(t, txID.String(), body.Transactions[0].ID)
	assert.Equal(t, "2025-07-05", body.Transactions[0].Date)
	assert.Equal(t, "12.50", body.Transactions[0].DebitAmount)
	assert.Equal(t, "0.00", body.Transactions[0].CreditAmount)
	assert.Equal(t, "987.50", body.Transactions[0].RunningBalance)
	assert.Empty(t, body.Transactions[0].CategoryID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_MonthOutOfRange(t *testing.T) {
	mockSvc := new(mockTransactionLister)

	resp := newListTestAPI(t, mockSvc).Get("/v1/transactions?month=13&year=2025")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "ListMonthTransactions")
}

func TestHTTP_ListTransactions_MissingParams(t *testing.T) {
	mockSvc := new(mockTransactionLister)

	resp := newListTestAPI(t, mockSvc).Get("/v1/transactions")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "ListMonthTransactions")
}
