package ingest

import (
	"strings"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// nominalLabels maps the human-readable labels used in upload files to the
// internal nominal-account tokens. The mapping is 1:1 and part of the
// upload-file contract; it is matched case- and whitespace-insensitively.
var nominalLabels = map[string]string{
	"expense":         transaction.NominalExpense,
	"home":            transaction.NominalHome,
	"gain":            transaction.NominalGain,
	"credit card":     transaction.NominalCreditCard,
	"salary":          transaction.NominalSalary,
	"investment":      transaction.NominalInvestment,
	"transfer":        transaction.NominalTransfer,
	"opening balance": transaction.NominalOpeningBalance,
}

// NominalLabel returns the human-readable label for an internal token, used
// when rendering reports.
func NominalLabel(token string) string {
	for label, t := range nominalLabels {
		if t == token {
			return titleCase(label)
		}
	}
	return token
}

// ParseNominalLabel resolves an upload-file label (or an internal token) to
// the internal nominal-account value.
func ParseNominalLabel(value string) (string, bool) {
	normalized := strings.ToLower(strings.Join(strings.Fields(value), " "))
	if token, ok := nominalLabels[normalized]; ok {
		return token, true
	}
	// Tolerate the internal token spelling, e.g. "CREDIT_CARD".
	asToken := strings.ToUpper(strings.ReplaceAll(normalized, " ", "_"))
	for _, token := range nominalLabels {
		if token == asToken {
			return token, true
		}
	}
	return "", false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
