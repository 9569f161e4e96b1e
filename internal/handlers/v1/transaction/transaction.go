package transaction

import (
	"github.com/carson-networks/ledger-server/internal/service"
)

// dateLayout is the wire format for transaction dates. Transactions carry
// a date, not a timestamp.
const dateLayout = "2006-01-02"

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID             string `json:"id" doc:"Transaction UUID"`
	AccountID      string `json:"accountId" doc:"Personal account UUID"`
	CategoryID     string `json:"categoryId,omitempty" doc:"Category UUID, absent when unclassified"`
	SubcategoryID  string `json:"subCategoryId,omitempty" doc:"Subcategory UUID, absent when unclassified"`
	Date           string `json:"date" doc:"Transaction date, YYYY-MM-DD"`
	Narration      string `json:"narration" doc:"Statement narration"`
	DebitAmount    string `json:"debitAmount" doc:"Debit amount, zero when the row is a credit"`
	CreditAmount   string `json:"creditAmount" doc:"Credit amount, zero when the row is a debit"`
	NominalAccount string `json:"nominalAccount" doc:"Nominal account classification"`
	RunningBalance string `json:"runningBalance" doc:"Account balance after this transaction"`
}

func fromService(tx service.Transaction) Transaction {
	converted := Transaction{
		ID:             tx.ID.String(),
		AccountID:      tx.AccountID.String(),
		Date:           tx.Date.Format(dateLayout),
		Narration:      tx.Narration,
		DebitAmount:    tx.DebitAmount.StringFixed(2),
		CreditAmount:   tx.CreditAmount.StringFixed(2),
		NominalAccount: tx.NominalAccount,
		RunningBalance: tx.RunningBalance.StringFixed(2),
	}
	if tx.CategoryID != nil {
		converted.CategoryID = tx.CategoryID.String()
	}
	if tx.SubcategoryID != nil {
		converted.SubcategoryID = tx.SubcategoryID.String()
	}
	return converted
}
