package ledger

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// fakeStore keeps transactions in memory and mimics the storage ordering
// contract: date asc, then created_at asc, then id asc.
type fakeStore struct {
	rows     []*transaction.Transaction
	writes   int
	failWith error
}

func (f *fakeStore) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, row := range f.rows {
		if row.AccountID == accountID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (f *fakeStore) UpdateRunningBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, row := range f.rows {
		if row.ID == id {
			row.RunningBalance = balance
			f.writes++
			return nil
		}
	}
	return transaction.ErrNotFound
}

func (f *fakeStore) balances(t *testing.T, accountID uuid.UUID) []string {
	t.Helper()
	rows, err := f.ListByAccount(context.Background(), accountID)
	require.NoError(t, err)
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.RunningBalance.StringFixed(2)
	}
	return out
}

func day(d int) time.Time {
	return time.Date(2024, 9, d, 0, 0, 0, 0, time.UTC)
}

func row(accountID uuid.UUID, date time.Time, seq int, debit, credit string) *transaction.Transaction {
	return &transaction.Transaction{
		ID:           uuid.Must(uuid.NewV4()),
		AccountID:    accountID,
		Date:         date,
		Narration:    "row",
		DebitAmount:  decimal.RequireFromString(debit),
		CreditAmount: decimal.RequireFromString(credit),
		CreatedAt:    time.Date(2024, 10, 1, 0, 0, seq, 0, time.UTC),
	}
}

func TestRecompute_ChronologicalRunningTotal(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	store := &fakeStore{rows: []*transaction.Transaction{
		// Inserted out of date order on purpose.
		row(accountID, day(5), 0, "200.00", "0"),
		row(accountID, day(1), 1, "0", "1000.00"),
		row(accountID, day(20), 2, "49.99", "0"),
		row(accountID, day(5), 3, "0", "10.50"),
	}}

	err := Recompute(context.Background(), store, accountID)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"1000.00", "800.00", "810.50", "760.51"},
		store.balances(t, accountID))
}

// The worked example: 1000.00 in, 200.00 out, then the deposit is deleted
// and the remaining withdrawal goes negative.
func TestRecompute_DeleteGoesNegative(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	deposit := row(accountID, day(1), 0, "0", "1000.00")
	withdrawal := row(accountID, day(5), 1, "200.00", "0")
	store := &fakeStore{rows: []*transaction.Transaction{deposit, withdrawal}}

	require.NoError(t, Recompute(context.Background(), store, accountID))
	assert.Equal(t, []string{"1000.00", "800.00"}, store.balances(t, accountID))

	store.rows = store.rows[1:]
	require.NoError(t, Recompute(context.Background(), store, accountID))
	assert.Equal(t, []string{"-200.00"}, store.balances(t, accountID))
}

func TestRecompute_Idempotent(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	store := &fakeStore{rows: []*transaction.Transaction{
		row(accountID, day(1), 0, "0", "123.45"),
		row(accountID, day(2), 1, "23.45", "0"),
		row(accountID, day(2), 2, "0", "1.00"),
	}}

	require.NoError(t, Recompute(context.Background(), store, accountID))
	firstPass := store.balances(t, accountID)
	firstWrites := store.writes

	require.NoError(t, Recompute(context.Background(), store, accountID))
	assert.Equal(t, firstPass, store.balances(t, accountID))
	// Already-converged rows are skipped, so the second pass writes nothing.
	assert.Equal(t, firstWrites, store.writes)
}

func TestRecompute_SameDayInsertionOrder(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	store := &fakeStore{rows: []*transaction.Transaction{
		row(accountID, day(3), 0, "0", "100.00"),
		row(accountID, day(3), 1, "30.00", "0"),
		row(accountID, day(3), 2, "70.00", "0"),
	}}

	require.NoError(t, Recompute(context.Background(), store, accountID))
	assert.Equal(t, []string{"100.00", "70.00", "0.00"}, store.balances(t, accountID))
}

func TestRecompute_DoesNotTouchOtherAccounts(t *testing.T) {
	accountA := uuid.Must(uuid.NewV4())
	accountB := uuid.Must(uuid.NewV4())
	other := row(accountB, day(1), 0, "0", "500.00")
	other.RunningBalance = decimal.RequireFromString("77.77")
	store := &fakeStore{rows: []*transaction.Transaction{
		row(accountA, day(1), 1, "0", "10.00"),
		other,
	}}

	require.NoError(t, Recompute(context.Background(), store, accountA))
	assert.Equal(t, "77.77", other.RunningBalance.StringFixed(2))
}

func TestRecompute_NoDriftOverManyRows(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	store := &fakeStore{}
	for i := 0; i < 500; i++ {
		store.rows = append(store.rows, row(accountID, day(1+i%28), i, "0", "0.10"))
	}

	require.NoError(t, Recompute(context.Background(), store, accountID))
	balances := store.balances(t, accountID)
	// 500 additions of 0.10 land on exactly 50.00, not 49.999999….
	assert.Equal(t, "50.00", balances[len(balances)-1])
}

func TestRecompute_WriteFailureAborts(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	boom := errors.New("connection reset")
	store := &fakeStore{
		rows:     []*transaction.Transaction{row(accountID, day(1), 0, "0", "5.00")},
		failWith: boom,
	}

	err := Recompute(context.Background(), store, accountID)
	assert.ErrorIs(t, err, boom)
}

func TestRecompute_EmptyAccount(t *testing.T) {
	store := &fakeStore{}
	assert.NoError(t, Recompute(context.Background(), store, uuid.Must(uuid.NewV4())))
}
