package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_CanonicalizesHeaders(t *testing.T) {
	csvData := "Date,Narration,Debit Amount,Credit Amount,Personal Account,Nominal Account\n" +
		"01-09-2024,Opening,,1000.00,Checking,Opening Balance\n"

	rows, err := ReadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "01-09-2024", rows[0]["date"])
	assert.Equal(t, "1000.00", rows[0]["credit_amount"])
	assert.Equal(t, "", rows[0]["debit_amount"])
	assert.Equal(t, "Checking", rows[0]["personal_account"])
	assert.Equal(t, "Opening Balance", rows[0]["nominal_account"])
}

func TestReadCSV_ShortRecordsPadded(t *testing.T) {
	csvData := "Date,Narration,Debit Amount\n01-09-2024,Coffee\n"

	rows, err := ReadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["debit_amount"])
}

func TestReadRows_UnsupportedExtension(t *testing.T) {
	_, err := ReadRows("statement.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, "debit_amount", canonicalKey(" Debit Amount "))
	assert.Equal(t, "subcategory", canonicalKey("Sub-Category"))
	assert.Equal(t, "running_balance", canonicalKey("Running Balance"))
}
