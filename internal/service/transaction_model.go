package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer. CategoryID and
// SubcategoryID are nil when unclassified.
type Transaction struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	CategoryID     *uuid.UUID
	SubcategoryID  *uuid.UUID
	Date           time.Time
	Narration      string
	DebitAmount    decimal.Decimal
	CreditAmount   decimal.Decimal
	NominalAccount string
	RunningBalance decimal.Decimal
	CreatedAt      time.Time
}

// TransactionCreate is the input for creating a transaction.
type TransactionCreate struct {
	AccountID      uuid.UUID
	CategoryID     *uuid.UUID
	SubcategoryID  *uuid.UUID
	Date           time.Time
	Narration      string
	DebitAmount    decimal.Decimal
	CreditAmount   decimal.Decimal
	NominalAccount string
}

// TransactionChanges holds optional field updates for a transaction.
// ClearCategory and ClearSubcategory null the references; they take
// precedence over CategoryID and SubcategoryID.
type TransactionChanges struct {
	AccountID        *uuid.UUID
	CategoryID       *uuid.UUID
	SubcategoryID    *uuid.UUID
	ClearCategory    bool
	ClearSubcategory bool
	Date             *time.Time
	Narration        *string
	DebitAmount      *decimal.Decimal
	CreditAmount     *decimal.Decimal
	NominalAccount   *string
}

func nullableID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func idFromNullable(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	value := id.UUID
	return &value
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:             row.ID,
		AccountID:      row.AccountID,
		CategoryID:     idFromNullable(row.CategoryID),
		SubcategoryID:  idFromNullable(row.SubcategoryID),
		Date:           row.Date,
		Narration:      row.Narration,
		DebitAmount:    row.DebitAmount,
		CreditAmount:   row.CreditAmount,
		NominalAccount: row.NominalAccount,
		RunningBalance: row.RunningBalance,
		CreatedAt:      row.CreatedAt,
	}
}
