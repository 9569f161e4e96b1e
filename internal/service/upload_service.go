package service

import (
	"context"
	"fmt"
	"io"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ingest"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// UploadResult is the outcome of an upload. Either the whole file was
// inserted (Inserted > 0, empty Report) or nothing was (Report names every
// failing row).
type UploadResult struct {
	Inserted int
	Report   []ingest.RowReport
}

// UploadService handles bank-statement file uploads. A file is parsed and
// validated in full before anything is written; a single bad row rejects
// the whole file.
type UploadService struct {
	storage *storage.Storage
	gateway Gateway
	maxRows int
}

// NewUploadService creates a new UploadService.
func NewUploadService(store *storage.Storage, gateway Gateway, maxRows int) *UploadService {
	return &UploadService{
		storage: store,
		gateway: gateway,
		maxRows: maxRows,
	}
}

// Upload parses the named statement file, validates every row and inserts
// them all in one mutation.
func (s *UploadService) Upload(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	rows, err := ingest.ReadRows(filename, file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file %q has no data rows", filename)
	}
	if len(rows) > s.maxRows {
		return nil, fmt.Errorf("file has %d rows, the limit is %d", len(rows), s.maxRows)
	}

	normalizer := ingest.NewNormalizer(&storeResolver{reader: s.storage.Reader})
	drafts, report, err := normalizer.NormalizeBatch(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(report) > 0 {
		return &UploadResult{Report: report}, nil
	}

	err = s.gateway.Process(ctx, &actions.UploadBatch{Creates: drafts})
	if err != nil {
		return nil, err
	}
	return &UploadResult{Inserted: len(drafts)}, nil
}

// storeResolver resolves upload-file names against the live store. Lookups
// are exact; uploads never create accounts or categories.
type storeResolver struct {
	reader *storage.Reader
}

func (r *storeResolver) AccountByName(ctx context.Context, name string) (*account.Account, error) {
	return r.reader.Accounts.FindByName(ctx, name)
}

func (r *storeResolver) CategoryByName(ctx context.Context, name string) (*category.Category, error) {
	return r.reader.Categories.FindByName(ctx, name)
}

func (r *storeResolver) SubcategoryByName(ctx context.Context, categoryID uuid.UUID, name string) (*category.Subcategory, error) {
	return r.reader.Categories.FindSubcategoryByName(ctx, categoryID, name)
}
