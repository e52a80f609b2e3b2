package pgsql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finops_backoffice/internal/repositories/seed"
	"github.com/SscSPs/finops_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedIfEmpty loads the sample back-office data when the users table is empty.
// It reports whether anything was written.
func SeedIfEmpty(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (bool, error) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		logger.Info("Database already holds data, skipping seed", slog.Int("users", count))
		return false, nil
	}

	base := BaseRepository{Pool: pool}
	err := base.WithTx(ctx, func(tx pgx.Tx) error {
		for _, u := range seed.Users() {
			_, err := tx.Exec(ctx, `INSERT INTO users (user_id, name, role) VALUES ($1, $2, $3);`,
				u.UserID, u.Name, string(u.Role))
			if err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.UserID, err)
			}
		}
		for _, o := range seed.Orders() {
			if err := insertOrder(ctx, tx, mapping.ToModelOrder(o)); err != nil {
				return fmt.Errorf("failed to seed order %s: %w", o.OrderID, err)
			}
		}
		for _, li := range seed.LineItems() {
			if err := insertLineItem(ctx, tx, mapping.ToModelLineItem(li)); err != nil {
				return fmt.Errorf("failed to seed line item %s: %w", li.LineItemID, err)
			}
		}
		// seed order amounts already include their service lines
		for _, sl := range seed.ServiceLines() {
			if err := insertServiceLine(ctx, tx, mapping.ToModelServiceLine(sl)); err != nil {
				return fmt.Errorf("failed to seed service line %s: %w", sl.ServiceLineID, err)
			}
		}
		for _, t := range seed.Transactions() {
			if err := insertTransaction(ctx, tx, mapping.ToModelTransaction(t)); err != nil {
				return fmt.Errorf("failed to seed transaction %s: %w", t.TransactionID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	logger.Info("Seeded sample back-office data")
	return true, nil
}
