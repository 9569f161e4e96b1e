package ingest

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

type fakeResolver struct {
	accounts      map[string]*account.Account
	categories    map[string]*category.Category
	subcategories map[string]*category.Subcategory // keyed by categoryID/name
}

func (f *fakeResolver) AccountByName(_ context.Context, name string) (*account.Account, error) {
	if acc, ok := f.accounts[name]; ok {
		return acc, nil
	}
	return nil, account.ErrNotFound
}

func (f *fakeResolver) CategoryByName(_ context.Context, name string) (*category.Category, error) {
	if cat, ok := f.categories[name]; ok {
		return cat, nil
	}
	return nil, category.ErrNotFound
}

func (f *fakeResolver) SubcategoryByName(_ context.Context, categoryID uuid.UUID, name string) (*category.Subcategory, error) {
	if sub, ok := f.subcategories[categoryID.String()+"/"+name]; ok {
		return sub, nil
	}
	return nil, category.ErrSubcategoryNotFound
}

func newTestNormalizer(t *testing.T) (*Normalizer, *fakeResolver) {
	t.Helper()
	checkingID := uuid.Must(uuid.NewV4())
	groceriesID := uuid.Must(uuid.NewV4())
	vegID := uuid.Must(uuid.NewV4())

	resolver := &fakeResolver{
		accounts: map[string]*account.Account{
			"Checking": {ID: checkingID, Name: "Checking"},
		},
		categories: map[string]*category.Category{
			"Groceries": {ID: groceriesID, Name: "Groceries"},
		},
		subcategories: map[string]*category.Subcategory{
			groceriesID.String() + "/Vegetables": {ID: vegID, CategoryID: groceriesID, Name: "Vegetables"},
		},
	}
	return NewNormalizer(resolver), resolver
}

func validRow() RawRow {
	return RawRow{
		FieldDate:            "05-09-2024",
		FieldNarration:       "POS 1234 SUPERMARKET",
		FieldDebitAmount:     "200.00",
		FieldCreditAmount:    "",
		FieldCategory:        "Groceries",
		FieldSubcategory:     "Vegetables",
		FieldPersonalAccount: "Checking",
		FieldNominalAccount:  "Expense",
	}
}

func TestNormalize_ValidRow(t *testing.T) {
	normalizer, resolver := newTestNormalizer(t)

	draft, fieldErrors, err := normalizer.Normalize(context.Background(), validRow())
	require.NoError(t, err)
	require.Empty(t, fieldErrors)

	assert.Equal(t, resolver.accounts["Checking"].ID, draft.AccountID)
	assert.True(t, draft.CategoryID.Valid)
	assert.True(t, draft.SubcategoryID.Valid)
	assert.Equal(t, "EXPENSE", draft.NominalAccount)
	assert.Equal(t, "200.00", draft.DebitAmount.StringFixed(2))
	assert.Equal(t, "0.00", draft.CreditAmount.StringFixed(2))
	assert.Equal(t, 2024, draft.Date.Year())
	assert.Equal(t, 5, draft.Date.Day())
}

func TestNormalize_BadDate(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)
	row := validRow()
	row[FieldDate] = "2024-09-05"

	draft, fieldErrors, err := normalizer.Normalize(context.Background(), row)
	require.NoError(t, err)
	assert.Nil(t, draft)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, FieldDate, fieldErrors[0].Field)
}

func TestNormalize_UnknownAccount(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)
	row := validRow()
	row[FieldPersonalAccount] = "Offshore"

	draft, fieldErrors, err := normalizer.Normalize(context.Background(), row)
	require.NoError(t, err)
	assert.Nil(t, draft)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, FieldPersonalAccount, fieldErrors[0].Field)
	assert.Contains(t, fieldErrors[0].Reason, "Offshore")
}

func TestNormalize_CategoryOptional(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)
	row := validRow()
	row[FieldCategory] = ""
	row[FieldSubcategory] = ""

	draft, fieldErrors, err := normalizer.Normalize(context.Background(), row)
	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	assert.False(t, draft.CategoryID.Valid)
	assert.False(t, draft.SubcategoryID.Valid)
}

func TestNormalize_SubcategoryNeedsCategory(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)
	row := validRow()
	row[FieldCategory] = ""

	_, fieldErrors, err := normalizer.Normalize(context.Background(), row)
	require.NoError(t, err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, FieldSubcategory, fieldErrors[0].Field)
}

func TestNormalize_NominalAccountLabels(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)

	cases := map[string]string{
		"Expense":          "EXPENSE",
		"  credit card  ":  "CREDIT_CARD",
		"OPENING BALANCE":  "OPENING_BALANCE",
		"opening_balance":  "OPENING_BALANCE",
		"Transfer":         "TRANSFER",
		"sAlArY":           "SALARY",
	}
	for label, want := range cases {
		row := validRow()
		row[FieldNominalAccount] = label
		draft, fieldErrors, err := normalizer.Normalize(context.Background(), row)
		require.NoError(t, err)
		require.Empty(t, fieldErrors, "label %q", label)
		assert.Equal(t, want, draft.NominalAccount, "label %q", label)
	}
}

func TestNormalize_BadNominalAccount(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)
	row := validRow()
	row[FieldNominalAccount] = "Misc"

	_, fieldErrors, err := normalizer.Normalize(context.Background(), row)
	require.NoError(t, err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, FieldNominalAccount, fieldErrors[0].Field)
	assert.Contains(t, fieldErrors[0].Reason, "Misc")
}

// Debit-xor-credit: both set, neither set, zero, and negative all reject.
func TestNormalize_AmountRules(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)

	t.Run("both set", func(t *testing.T) {
		row := validRow()
		row[FieldDebitAmount] = "100.00"
		row[FieldCreditAmount] = "50.00"
		_, fieldErrors, err := normalizer.Normalize(context.Background(), row)
		require.NoError(t, err)
		require.Len(t, fieldErrors, 1)
		assert.Contains(t, fieldErrors[0].Reason, "only one of")
	})

	t.Run("neither set", func(t *testing.T) {
		row := validRow()
		row[FieldDebitAmount] = ""
		row[FieldCreditAmount] = ""
		_, fieldErrors, err := normalizer.Normalize(context.Background(), row)
		require.NoError(t, err)
		require.Len(t, fieldErrors, 1)
		assert.Contains(t, fieldErrors[0].Reason, "must have a value")
	})

	t.Run("zero debit counts as absent", func(t *testing.T) {
		row := validRow()
		row[FieldDebitAmount] = "0"
		row[FieldCreditAmount] = ""
		_, fieldErrors, err := normalizer.Normalize(context.Background(), row)
		require.NoError(t, err)
		require.Len(t, fieldErrors, 1)
		assert.Contains(t, fieldErrors[0].Reason, "must have a value")
	})

	t.Run("negative", func(t *testing.T) {
		row := validRow()
		row[FieldDebitAmount] = "-5.00"
		row[FieldCreditAmount] = ""
		_, fieldErrors, err := normalizer.Normalize(context.Background(), row)
		require.NoError(t, err)
		require.Len(t, fieldErrors, 1)
		assert.Equal(t, "amount must be positive", fieldErrors[0].Reason)
	})

	t.Run("unparseable", func(t *testing.T) {
		row := validRow()
		row[FieldDebitAmount] = "12,34"
		_, fieldErrors, err := normalizer.Normalize(context.Background(), row)
		require.NoError(t, err)
		require.Len(t, fieldErrors, 1)
		assert.Contains(t, fieldErrors[0].Reason, "invalid amount")
	})
}

func TestNormalize_RoundsToTwoDecimals(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)
	row := validRow()
	row[FieldDebitAmount] = "12.346"

	draft, fieldErrors, err := normalizer.Normalize(context.Background(), row)
	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	assert.Equal(t, "12.35", draft.DebitAmount.StringFixed(2))
}

// A batch with one bad row commits nothing and reports exactly that row.
func TestNormalizeBatch_AllOrNothing(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)

	rows := make([]RawRow, 0, 10)
	for i := 0; i < 10; i++ {
		rows = append(rows, validRow())
	}
	rows[6][FieldPersonalAccount] = "Offshore"

	drafts, report, err := normalizer.NormalizeBatch(context.Background(), rows)
	require.NoError(t, err)
	assert.Nil(t, drafts)
	require.Len(t, report, 1)
	assert.Equal(t, 7, report[0].Row)
	require.Len(t, report[0].Errors, 1)
	assert.Equal(t, FieldPersonalAccount, report[0].Errors[0].Field)
}

func TestNormalizeBatch_AllValid(t *testing.T) {
	normalizer, _ := newTestNormalizer(t)

	rows := []RawRow{validRow(), validRow(), validRow()}
	drafts, report, err := normalizer.NormalizeBatch(context.Background(), rows)
	require.NoError(t, err)
	assert.Empty(t, report)
	assert.Len(t, drafts, 3)
}
