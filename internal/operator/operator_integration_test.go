//go:build integration

package operator

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Run with: go test -tags=integration ./internal/operator
// Requires a local docker daemon.

func setupStorage(t *testing.T) *storage.Storage {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ledger"),
		tcpostgres.WithUsername("ledger"),
		tcpostgres.WithPassword("ledger"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migrate.New("file://../../migrations", connStr)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return storage.NewStorageFromDB(db)
}

func createAccount(t *testing.T, s *storage.Storage, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	writer, err := s.Write(ctx)
	require.NoError(t, err)
	id, err := writer.Account.Create(ctx, &account.AccountCreate{Name: name})
	require.NoError(t, err)
	require.NoError(t, writer.Commit())
	return id
}

func date(day int) time.Time {
	return time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC)
}

func credit(accountID uuid.UUID, day int, narration, value string) *transaction.TransactionCreate {
	return &transaction.TransactionCreate{
		AccountID:      accountID,
		Date:           date(day),
		Narration:      narration,
		CreditAmount:   decimal.RequireFromString(value),
		NominalAccount: transaction.NominalOpeningBalance,
	}
}

func debit(accountID uuid.UUID, day int, narration, value string) *transaction.TransactionCreate {
	return &transaction.TransactionCreate{
		AccountID:      accountID,
		Date:           date(day),
		Narration:      narration,
		DebitAmount:    decimal.RequireFromString(value),
		NominalAccount: transaction.NominalExpense,
	}
}

func runningBalances(t *testing.T, s *storage.Storage, accountID uuid.UUID) []string {
	t.Helper()
	rows, err := s.Transactions.ListByAccount(context.Background(), accountID)
	require.NoError(t, err)
	balances := make([]string, len(rows))
	for i, row := range rows {
		balances[i] = row.RunningBalance.StringFixed(2)
	}
	return balances
}

func TestOperator_DeleteRecomputesDownstreamBalances(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	delegator := NewOperatorDelegator(s, 2)
	delegator.Start()
	defer delegator.Stop()

	accountID := createAccount(t, s, "Current")

	opening := &actions.CreateTransaction{Create: credit(accountID, 1, "OPENING", "1000.00")}
	require.NoError(t, delegator.Process(ctx, opening))
	spend := &actions.CreateTransaction{Create: debit(accountID, 2, "SHOP", "200.00")}
	require.NoError(t, delegator.Process(ctx, spend))

	assert.Equal(t, []string{"1000.00", "800.00"}, runningBalances(t, s, accountID))

	// Deleting the opening credit leaves only the debit, so the account
	// goes negative.
	require.NoError(t, delegator.Process(ctx, &actions.DeleteTransaction{
		TransactionID: opening.CreatedID(),
	}))

	assert.Equal(t, []string{"-200.00"}, runningBalances(t, s, accountID))
}

func TestOperator_MoveBetweenAccountsRecomputesBoth(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	delegator := NewOperatorDelegator(s, 2)
	delegator.Start()
	defer delegator.Stop()

	fromID := createAccount(t, s, "Current")
	toID := createAccount(t, s, "Savings")

	require.NoError(t, delegator.Process(ctx, &actions.CreateTransaction{Create: credit(fromID, 1, "OPENING", "500.00")}))
	moved := &actions.CreateTransaction{Create: debit(fromID, 2, "SHOP", "100.00")}
	require.NoError(t, delegator.Process(ctx, moved))

	require.NoError(t, delegator.Process(ctx, &actions.UpdateTransaction{
		TransactionID: moved.CreatedID(),
		Changes:       &transaction.TransactionChanges{AccountID: &toID},
	}))

	assert.Equal(t, []string{"500.00"}, runningBalances(t, s, fromID))
	assert.Equal(t, []string{"-100.00"}, runningBalances(t, s, toID))
}

func TestOperator_UploadBatchRecomputesOncePerAccount(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	firstID := createAccount(t, s, "Current")
	secondID := createAccount(t, s, "Savings")

	queue := make(chan ActionItem, 10)
	op := NewOperator(s, queue)

	recomputed := make(map[uuid.UUID]int)
	original := op.recompute
	op.recompute = func(ctx context.Context, store ledger.Store, accountID uuid.UUID) error {
		recomputed[accountID]++
		return original(ctx, store, accountID)
	}

	batch := &actions.UploadBatch{Creates: []*transaction.TransactionCreate{
		credit(firstID, 1, "OPENING A", "100.00"),
		debit(firstID, 2, "SHOP", "25.00"),
		credit(secondID, 1, "OPENING B", "50.00"),
	}}

	respCh := make(chan ActionItemResponse, 1)
	go op.Run()
	queue <- ActionItem{ctx: ctx, action: batch, response: respCh}
	require.NoError(t, (<-respCh).err)
	close(queue)

	// One recompute pass per affected account, not per inserted row.
	assert.Equal(t, 1, recomputed[firstID])
	assert.Equal(t, 1, recomputed[secondID])

	assert.Equal(t, []string{"100.00", "75.00"}, runningBalances(t, s, firstID))
	assert.Equal(t, []string{"50.00"}, runningBalances(t, s, secondID))
}

func TestOperator_BadAmountsRollsBackWholeBatch(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	delegator := NewOperatorDelegator(s, 1)
	delegator.Start()
	defer delegator.Stop()

	accountID := createAccount(t, s, "Current")

	bad := credit(accountID, 2, "BAD", "10.00")
	bad.DebitAmount = decimal.RequireFromString("10.00")

	err := delegator.Process(ctx, &actions.UploadBatch{Creates: []*transaction.TransactionCreate{
		credit(accountID, 1, "OPENING", "100.00"),
		bad,
	}})
	require.ErrorIs(t, err, actions.ErrBadAmounts)

	assert.Empty(t, runningBalances(t, s, accountID))
}
