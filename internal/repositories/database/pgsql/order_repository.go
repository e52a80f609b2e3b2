package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/finops_backoffice/internal/models"
	"github.com/SscSPs/finops_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxOrderRepository stores orders, their line items and service lines.
type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, order_number, name, module, bill_to, billing_company, status, secondary_status,
	order_date, due_date, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID, &m.OrderNumber, &m.Name, &m.Module, &m.BillTo, &m.BillingCompany, &m.Status, &m.SecondaryStatus,
		&m.OrderDate, &m.DueDate, &m.Amount, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`
	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, translateError(err, "order "+orderID)
	}
	o := mapping.ToDomainOrder(m)
	return &o, nil
}

func (r *PgxOrderRepository) ListOrdersByModule(ctx context.Context, module domain.Module) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE module = $1 ORDER BY seq;`
	rows, err := r.Pool.Query(ctx, query, string(module))
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	ms := make([]models.Order, 0)
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return mapping.ToDomainOrderSlice(ms), nil
}

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertOrder(ctx context.Context, db execer, m models.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := db.Exec(ctx, query,
		m.OrderID, m.OrderNumber, m.Name, m.Module, m.BillTo, m.BillingCompany, m.Status, m.SecondaryStatus,
		m.OrderDate, m.DueDate, m.Amount, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return err
}

// CreateOrderWithLines inserts the order and its service lines in one transaction.
func (r *PgxOrderRepository) CreateOrderWithLines(ctx context.Context, order domain.Order, lines []domain.ServiceLine) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := insertOrder(ctx, tx, mapping.ToModelOrder(order)); err != nil {
			return translateError(err, "order "+order.OrderID)
		}
		for _, line := range lines {
			m := mapping.ToModelServiceLine(line)
			if err := insertServiceLine(ctx, tx, m); err != nil {
				return translateError(err, "service line "+m.ServiceLineID)
			}
		}
		return nil
	})
}

// DeleteOrder removes the order; line items and service lines go with it through ON DELETE CASCADE.
func (r *PgxOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM orders WHERE order_id = $1;`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
	}
	return nil
}

func (r *PgxOrderRepository) ListLineItemsByOrder(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, order_id, category, delta, cleared, saved, invoiced, occurred_at
		FROM line_items WHERE order_id = $1 ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	ms := make([]models.LineItem, 0)
	for rows.Next() {
		var m models.LineItem
		if err := rows.Scan(&m.LineItemID, &m.OrderID, &m.Category, &m.Delta, &m.Cleared, &m.Saved, &m.Invoiced, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}
	return mapping.ToDomainLineItemSlice(ms), nil
}

func insertLineItem(ctx context.Context, db execer, m models.LineItem) error {
	query := `
		INSERT INTO line_items (line_item_id, order_id, category, delta, cleared, saved, invoiced, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := db.Exec(ctx, query, m.LineItemID, m.OrderID, m.Category, m.Delta, m.Cleared, m.Saved, m.Invoiced, m.OccurredAt)
	return err
}

// UpdateLineItemStates writes every item's flags in one transaction.
func (r *PgxOrderRepository) UpdateLineItemStates(ctx context.Context, orderID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		UPDATE line_items SET cleared = $3, saved = $4, invoiced = $5
		WHERE order_id = $1 AND line_item_id = $2;
	`
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		for _, item := range items {
			m := mapping.ToModelLineItem(item)
			tag, err := tx.Exec(ctx, query, orderID, m.LineItemID, m.Cleared, m.Saved, m.Invoiced)
			if err != nil {
				return fmt.Errorf("failed to update line item %s: %w", item.LineItemID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: line item %s in order %s", apperrors.ErrNotFound, item.LineItemID, orderID)
			}
		}
		return nil
	})
}

func (r *PgxOrderRepository) ListServiceLinesByOrder(ctx context.Context, orderID string) ([]domain.ServiceLine, error) {
	query := `
		SELECT service_line_id, order_id, description, quantity, unit_amount,
			created_at, created_by, last_updated_at, last_updated_by
		FROM service_lines WHERE order_id = $1 ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query service lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.ServiceLine, 0)
	for rows.Next() {
		var m models.ServiceLine
		if err := rows.Scan(&m.ServiceLineID, &m.OrderID, &m.Description, &m.Quantity, &m.UnitAmount,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan service line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainServiceLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service line rows: %w", err)
	}
	return lines, nil
}

func insertServiceLine(ctx context.Context, db execer, m models.ServiceLine) error {
	query := `
		INSERT INTO service_lines (service_line_id, order_id, description, quantity, unit_amount,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := db.Exec(ctx, query, m.ServiceLineID, m.OrderID, m.Description, m.Quantity, m.UnitAmount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return err
}

// SaveServiceLine inserts the line and bumps the order amount in one transaction.
func (r *PgxOrderRepository) SaveServiceLine(ctx context.Context, line domain.ServiceLine) error {
	m := mapping.ToModelServiceLine(line)
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := insertServiceLine(ctx, tx, m); err != nil {
			return translateError(err, "service line "+m.ServiceLineID)
		}
		query := `
			UPDATE orders SET amount = amount + $2, last_updated_at = $3, last_updated_by = $4
			WHERE order_id = $1;
		`
		tag, err := tx.Exec(ctx, query, m.OrderID, line.Total(), m.CreatedAt, m.CreatedBy)
		if err != nil {
			return fmt.Errorf("failed to update order amount: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, m.OrderID)
		}
		return nil
	})
}
