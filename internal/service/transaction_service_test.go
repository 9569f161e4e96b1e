package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// fakeGateway records the actions handed to it instead of running them.
type fakeGateway struct {
	actions []actions.IAction
	err     error
}

func (g *fakeGateway) Process(_ context.Context, action actions.IAction) error {
	g.actions = append(g.actions, action)
	return g.err
}

func TestCreateTransaction_GoesThroughGateway(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())

	gateway := &fakeGateway{}
	svc := NewTransactionService(nil, gateway)

	_, err := svc.CreateTransaction(context.Background(), TransactionCreate{
		AccountID:      accountID,
		CategoryID:     &categoryID,
		Date:           time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC),
		Narration:      "TESCO STORES",
		DebitAmount:    amount("12.00"),
		NominalAccount: "EXPENSE",
	})
	require.NoError(t, err)
	require.Len(t, gateway.actions, 1)

	action, ok := gateway.actions[0].(*actions.CreateTransaction)
	require.True(t, ok)
	assert.Equal(t, accountID, action.Create.AccountID)
	assert.True(t, action.Create.CategoryID.Valid)
	assert.Equal(t, categoryID, action.Create.CategoryID.UUID)
	assert.False(t, action.Create.SubcategoryID.Valid)
	assert.Equal(t, "EXPENSE", action.Create.NominalAccount)
}

func TestCreateTransaction_GatewayError(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("account row locked out")}
	svc := NewTransactionService(nil, gateway)

	id, err := svc.CreateTransaction(context.Background(), TransactionCreate{
		AccountID:      uuid.Must(uuid.NewV4()),
		Date:           time.Now(),
		Narration:      "x",
		DebitAmount:    amount("1.00"),
		NominalAccount: "EXPENSE",
	})
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, id)
}

func TestUpdateTransaction_ClearCategoryWinsOverSet(t *testing.T) {
	transactionID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())

	gateway := &fakeGateway{}
	svc := NewTransactionService(nil, gateway)

	err := svc.UpdateTransaction(context.Background(), transactionID, TransactionChanges{
		CategoryID:    &categoryID,
		ClearCategory: true,
	})
	require.NoError(t, err)
	require.Len(t, gateway.actions, 1)

	action, ok := gateway.actions[0].(*actions.UpdateTransaction)
	require.True(t, ok)
	assert.Equal(t, transactionID, action.TransactionID)
	require.NotNil(t, action.Changes.CategoryID)
	assert.False(t, action.Changes.CategoryID.Valid)
}

func TestUpdateTransaction_UntouchedFieldsStayNil(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewTransactionService(nil, gateway)

	narration := "corrected"
	err := svc.UpdateTransaction(context.Background(), uuid.Must(uuid.NewV4()), TransactionChanges{
		Narration: &narration,
	})
	require.NoError(t, err)

	action := gateway.actions[0].(*actions.UpdateTransaction)
	assert.Nil(t, action.Changes.AccountID)
	assert.Nil(t, action.Changes.CategoryID)
	assert.Nil(t, action.Changes.SubcategoryID)
	assert.Nil(t, action.Changes.Date)
	assert.Nil(t, action.Changes.DebitAmount)
	assert.Nil(t, action.Changes.CreditAmount)
	assert.Equal(t, "corrected", *action.Changes.Narration)
}

func TestDeleteTransaction_GoesThroughGateway(t *testing.T) {
	transactionID := uuid.Must(uuid.NewV4())

	gateway := &fakeGateway{}
	svc := NewTransactionService(nil, gateway)

	require.NoError(t, svc.DeleteTransaction(context.Background(), transactionID))
	require.Len(t, gateway.actions, 1)

	action, ok := gateway.actions[0].(*actions.DeleteTransaction)
	require.True(t, ok)
	assert.Equal(t, transactionID, action.TransactionID)
}
