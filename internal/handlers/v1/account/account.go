package account

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Account is the API response model for a personal account.
type Account struct {
	ID          string `json:"id" doc:"Account UUID"`
	Name        string `json:"name" doc:"Account name"`
	AccountType string `json:"accountType" doc:"Free-form account type, e.g. 'Savings Account'"`
	Description string `json:"description" doc:"Account description"`
	CreatedAt   string `json:"createdAt" doc:"Creation time, RFC 3339"`
}

func fromService(acc service.Account) Account {
	return Account{
		ID:          acc.ID.String(),
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Description: acc.Description,
		CreatedAt:   acc.CreatedAt.Format(time.RFC3339),
	}
}
