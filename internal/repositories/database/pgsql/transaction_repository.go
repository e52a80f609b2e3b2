package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/finops_backoffice/internal/models"
	"github.com/SscSPs/finops_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRepository reads the transactions ledger.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionReader = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, source, txn_date, order_number, order_name, billing_co, bill_to,
	ref_co, referrer, sales_rep, transaction_type, total, direction`

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY seq;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	ms := make([]models.Transaction, 0)
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(&m.TransactionID, &m.Source, &m.TxnDate, &m.OrderNumber, &m.OrderName, &m.BillingCo,
			&m.BillTo, &m.RefCo, &m.Referrer, &m.SalesRep, &m.TransactionType, &m.Total, &m.Direction)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func insertTransaction(ctx context.Context, db execer, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := db.Exec(ctx, query, m.TransactionID, m.Source, m.TxnDate, m.OrderNumber, m.OrderName, m.BillingCo,
		m.BillTo, m.RefCo, m.Referrer, m.SalesRep, m.TransactionType, m.Total, m.Direction)
	return err
}
