package ingest

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// RowReport is one failing row of an upload batch, identified by its
// 1-based data row number (excluding the header).
type RowReport struct {
	Row    int          `json:"row"`
	Errors []FieldError `json:"errors"`
}

// NormalizeBatch validates every row of an upload. There is no partial
// success: it returns either a draft per row and an empty report, or a
// report naming every failing row and no drafts at all.
func (n *Normalizer) NormalizeBatch(ctx context.Context, rows []RawRow) ([]*transaction.TransactionCreate, []RowReport, error) {
	drafts := make([]*transaction.TransactionCreate, 0, len(rows))
	var report []RowReport

	for i, row := range rows {
		draft, fieldErrors, err := n.Normalize(ctx, row)
		if err != nil {
			return nil, nil, err
		}
		if len(fieldErrors) > 0 {
			report = append(report, RowReport{Row: i + 1, Errors: fieldErrors})
			continue
		}
		drafts = append(drafts, draft)
	}

	if len(report) > 0 {
		return nil, report, nil
	}
	return drafts, nil, nil
}
