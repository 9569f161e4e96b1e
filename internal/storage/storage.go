package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
)

type Storage struct {
	DB  *sql.DB
	bdb bob.DB
	*Reader
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, err
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:     db,
		bdb:    bdb,
		Reader: NewReader(bdb),
	}, nil
}

// NewStorageFromDB wraps an already-open database handle. Integration
// tests use it to point the storage layer at a throwaway database.
func NewStorageFromDB(db *sql.DB) *Storage {
	bdb := bob.NewDB(db)
	return &Storage{
		DB:     db,
		bdb:    bdb,
		Reader: NewReader(bdb),
	}
}

// Write begins a database transaction and returns a Writer scoped to it.
// The caller owns the Commit/Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
