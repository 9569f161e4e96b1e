package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// DateLayout is the expected textual date format of upload files (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// Upload-file column names, post canonicalization.
const (
	FieldDate            = "date"
	FieldNarration       = "narration"
	FieldDebitAmount     = "debit_amount"
	FieldCreditAmount    = "credit_amount"
	FieldCategory        = "category"
	FieldSubcategory     = "sub_category"
	FieldPersonalAccount = "personal_account"
	FieldNominalAccount  = "nominal_account"
)

// FieldError ties a validation failure to the offending column.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Resolver looks upload-file names up against existing entities. Lookups
// return the storage packages' not-found sentinels; entities are never
// auto-created during an upload.
type Resolver interface {
	AccountByName(ctx context.Context, name string) (*account.Account, error)
	CategoryByName(ctx context.Context, name string) (*category.Category, error)
	SubcategoryByName(ctx context.Context, categoryID uuid.UUID, name string) (*category.Subcategory, error)
}

// Normalizer turns raw uploaded rows into validated transaction drafts.
type Normalizer struct {
	resolver Resolver
}

func NewNormalizer(resolver Resolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// Normalize validates one raw row and resolves its names to identities.
// It returns either a draft ready for the mutation gateway or the list of
// field-level failures. The error return is reserved for infrastructure
// failures (storage unavailable) and aborts the whole batch.
func (n *Normalizer) Normalize(ctx context.Context, row RawRow) (*transaction.TransactionCreate, []FieldError, error) {
	var fieldErrors []FieldError
	draft := &transaction.TransactionCreate{}

	date, err := time.Parse(DateLayout, row[FieldDate])
	if err != nil {
		fieldErrors = append(fieldErrors, FieldError{
			Field:  FieldDate,
			Reason: fmt.Sprintf("invalid date %q, expected DD-MM-YYYY", row[FieldDate]),
		})
	} else {
		draft.Date = date
	}

	if row[FieldNarration] == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: FieldNarration, Reason: "narration is required"})
	}
	draft.Narration = row[FieldNarration]

	accountErrors, err := n.resolveAccount(ctx, row, draft)
	if err != nil {
		return nil, nil, err
	}
	fieldErrors = append(fieldErrors, accountErrors...)

	categoryErrors, err := n.resolveCategories(ctx, row, draft)
	if err != nil {
		return nil, nil, err
	}
	fieldErrors = append(fieldErrors, categoryErrors...)

	if token, ok := ParseNominalLabel(row[FieldNominalAccount]); ok {
		draft.NominalAccount = token
	} else {
		fieldErrors = append(fieldErrors, FieldError{
			Field:  FieldNominalAccount,
			Reason: fmt.Sprintf("invalid nominal account %q", row[FieldNominalAccount]),
		})
	}

	fieldErrors = append(fieldErrors, normalizeAmounts(row, draft)...)

	if len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}
	return draft, nil, nil
}

func (n *Normalizer) resolveAccount(ctx context.Context, row RawRow, draft *transaction.TransactionCreate) ([]FieldError, error) {
	name := row[FieldPersonalAccount]
	if name == "" {
		return []FieldError{{Field: FieldPersonalAccount, Reason: "personal account is required"}}, nil
	}

	acc, err := n.resolver.AccountByName(ctx, name)
	if errors.Is(err, account.ErrNotFound) {
		return []FieldError{{
			Field:  FieldPersonalAccount,
			Reason: fmt.Sprintf("unknown account %q", name),
		}}, nil
	}
	if err != nil {
		return nil, err
	}
	draft.AccountID = acc.ID
	return nil, nil
}

func (n *Normalizer) resolveCategories(ctx context.Context, row RawRow, draft *transaction.TransactionCreate) ([]FieldError, error) {
	categoryName := row[FieldCategory]
	subcategoryName := row[FieldSubcategory]

	if categoryName == "" {
		if subcategoryName != "" {
			return []FieldError{{
				Field:  FieldSubcategory,
				Reason: "sub category given without a category",
			}}, nil
		}
		return nil, nil
	}

	cat, err := n.resolver.CategoryByName(ctx, categoryName)
	if errors.Is(err, category.ErrNotFound) {
		return []FieldError{{
			Field:  FieldCategory,
			Reason: fmt.Sprintf("unknown category %q", categoryName),
		}}, nil
	}
	if err != nil {
		return nil, err
	}
	draft.CategoryID = uuid.NullUUID{UUID: cat.ID, Valid: true}

	if subcategoryName == "" {
		return nil, nil
	}
	sub, err := n.resolver.SubcategoryByName(ctx, cat.ID, subcategoryName)
	if errors.Is(err, category.ErrSubcategoryNotFound) {
		return []FieldError{{
			Field:  FieldSubcategory,
			Reason: fmt.Sprintf("unknown sub category %q for category %q", subcategoryName, categoryName),
		}}, nil
	}
	if err != nil {
		return nil, err
	}
	draft.SubcategoryID = uuid.NullUUID{UUID: sub.ID, Valid: true}
	return nil, nil
}

// normalizeAmounts enforces the debit-xor-credit rule with a distinct
// message per failure case and rounds accepted amounts to two decimal
// places (half up).
func normalizeAmounts(row RawRow, draft *transaction.TransactionCreate) []FieldError {
	var fieldErrors []FieldError

	debit, debitSet, errs := parseAmount(row, FieldDebitAmount)
	fieldErrors = append(fieldErrors, errs...)
	credit, creditSet, errs := parseAmount(row, FieldCreditAmount)
	fieldErrors = append(fieldErrors, errs...)
	if len(fieldErrors) > 0 {
		return fieldErrors
	}

	switch {
	case debitSet && creditSet:
		return []FieldError{{
			Field:  FieldDebitAmount,
			Reason: "only one of debit amount or credit amount may have a value",
		}}
	case !debitSet && !creditSet:
		return []FieldError{{
			Field:  FieldDebitAmount,
			Reason: "either debit amount or credit amount must have a value",
		}}
	}

	draft.DebitAmount = debit
	draft.CreditAmount = credit
	return nil
}

func parseAmount(row RawRow, field string) (decimal.Decimal, bool, []FieldError) {
	raw := row[field]
	if raw == "" {
		return decimal.Zero, false, nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, []FieldError{{
			Field:  field,
			Reason: fmt.Sprintf("invalid amount %q", raw),
		}}
	}
	if value.IsZero() {
		// An explicit zero counts as absent, matching blank statement cells.
		return decimal.Zero, false, nil
	}
	if value.IsNegative() {
		return decimal.Zero, false, []FieldError{{
			Field:  field,
			Reason: "amount must be positive",
		}}
	}
	return value.Round(2), true, nil
}
