package service

import (
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Account     *AccountService
	Category    *CategoryService
	Transaction *TransactionService
	Upload      *UploadService
	Report      *ReportService
}

// NewService creates a new Service with the given storage and gateway.
func NewService(store *storage.Storage, gateway *operator.OperatorDelegator, cfg *config.Config) *Service {
	return &Service{
		Account:     NewAccountService(store),
		Category:    NewCategoryService(store),
		Transaction: NewTransactionService(store, gateway),
		Upload:      NewUploadService(store, gateway, cfg.UploadMaxRows),
		Report:      NewReportService(store.Reader),
	}
}
