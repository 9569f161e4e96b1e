package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no transaction matches the lookup.
var ErrNotFound = errors.New("transaction not found")

// Nominal account classifications: the economic purpose of a transaction,
// distinct from the personal account the money moved through. This set is a
// fixed part of the upload-file contract.
const (
	NominalExpense        = "EXPENSE"
	NominalHome           = "HOME"
	NominalGain           = "GAIN"
	NominalCreditCard     = "CREDIT_CARD"
	NominalSalary         = "SALARY"
	NominalInvestment     = "INVESTMENT"
	NominalTransfer       = "TRANSFER"
	NominalOpeningBalance = "OPENING_BALANCE"
)

// Transaction represents one bank-statement row. Exactly one of DebitAmount
// and CreditAmount is non-zero. RunningBalance is derived state owned by the
// recalculation engine and is never meaningful as user input.
type Transaction struct {
	ID             uuid.UUID       `db:"id"`
	AccountID      uuid.UUID       `db:"account_id"`
	CategoryID     uuid.NullUUID   `db:"category_id"`
	SubcategoryID  uuid.NullUUID   `db:"subcategory_id"`
	Date           time.Time       `db:"date"`
	Narration      string          `db:"narration"`
	DebitAmount    decimal.Decimal `db:"debit_amount"`
	CreditAmount   decimal.Decimal `db:"credit_amount"`
	NominalAccount string          `db:"nominal_account"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	CreatedAt      time.Time       `db:"created_at"`
}

// TransactionCreate is the input for inserting a new transaction.
type TransactionCreate struct {
	AccountID      uuid.UUID
	CategoryID     uuid.NullUUID
	SubcategoryID  uuid.NullUUID
	Date           time.Time
	Narration      string
	DebitAmount    decimal.Decimal
	CreditAmount   decimal.Decimal
	NominalAccount string
}

// TransactionChanges holds optional field updates; nil fields are left
// untouched. Setting AccountID moves the transaction between accounts.
type TransactionChanges struct {
	AccountID      *uuid.UUID
	CategoryID     *uuid.NullUUID
	SubcategoryID  *uuid.NullUUID
	Date           *time.Time
	Narration      *string
	DebitAmount    *decimal.Decimal
	CreditAmount   *decimal.Decimal
	NominalAccount *string
}

// ITransactionReader defines read-only transaction lookups.
type ITransactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Transaction, error)
	ListMonth(ctx context.Context, year int, month time.Month) ([]*Transaction, error)
	ListBefore(ctx context.Context, cutoff time.Time) ([]*Transaction, error)
}
