package repositories

import (
	"context"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
)

// TransactionReader defines read operations for the transactions ledger
type TransactionReader interface {
	// ListTransactions retrieves every transaction in ledger order.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}
