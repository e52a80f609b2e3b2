package pgsql

import (
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrderRepo:       newPgxOrderRepository(dbPool),
		AccessRepo:      newPgxAccessRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
	}
}
