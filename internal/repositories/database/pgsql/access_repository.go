package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/finops_backoffice/internal/models"
	"github.com/SscSPs/finops_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccessRepository stores users, role defaults, access rules and preferences.
type PgxAccessRepository struct {
	BaseRepository
}

func newPgxAccessRepository(pool *pgxpool.Pool) *PgxAccessRepository {
	return &PgxAccessRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccessRepositoryFacade = (*PgxAccessRepository)(nil)

func (r *PgxAccessRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, `SELECT user_id, name, role FROM users WHERE user_id = $1;`, userID).
		Scan(&m.UserID, &m.Name, &m.Role)
	if err != nil {
		return nil, translateError(err, "user "+userID)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxAccessRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT user_id, name, role FROM users ORDER BY seq;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	ms := make([]models.User, 0)
	for rows.Next() {
		var m models.User
		if err := rows.Scan(&m.UserID, &m.Name, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func (r *PgxAccessRepository) queryGrants(ctx context.Context, query string, args ...any) ([]models.PermissionGrant, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query permission grants: %w", err)
	}
	defer rows.Close()

	grants := make([]models.PermissionGrant, 0)
	for rows.Next() {
		var g models.PermissionGrant
		if err := rows.Scan(&g.Owner, &g.PermissionID, &g.Allowed); err != nil {
			return nil, fmt.Errorf("failed to scan permission grant: %w", err)
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating permission grants: %w", err)
	}
	return grants, nil
}

func (r *PgxAccessRepository) FindAccessRules(ctx context.Context, userID string) (*domain.AccessRules, error) {
	var rule models.AccessRule
	err := r.Pool.QueryRow(ctx, `SELECT user_id, use_defaults FROM access_rules WHERE user_id = $1;`, userID).
		Scan(&rule.UserID, &rule.UseDefaults)
	if err != nil {
		return nil, translateError(err, "access rules for "+userID)
	}

	grants, err := r.queryGrants(ctx,
		`SELECT user_id, permission_id, allowed FROM access_overrides WHERE user_id = $1;`, userID)
	if err != nil {
		return nil, err
	}
	return &domain.AccessRules{
		UserID:      rule.UserID,
		UseDefaults: rule.UseDefaults,
		Overrides:   mapping.ToPermissionMap(grants),
	}, nil
}

// SaveAccessRules replaces the rule row and its overrides in one transaction.
func (r *PgxAccessRepository) SaveAccessRules(ctx context.Context, rules domain.AccessRules) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		upsert := `
			INSERT INTO access_rules (user_id, use_defaults) VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET use_defaults = EXCLUDED.use_defaults;
		`
		if _, err := tx.Exec(ctx, upsert, rules.UserID, rules.UseDefaults); err != nil {
			return translateError(err, "access rules for "+rules.UserID)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM access_overrides WHERE user_id = $1;`, rules.UserID); err != nil {
			return fmt.Errorf("failed to clear overrides: %w", err)
		}
		for _, g := range mapping.ToPermissionGrants(rules.UserID, rules.Overrides) {
			_, err := tx.Exec(ctx,
				`INSERT INTO access_overrides (user_id, permission_id, allowed) VALUES ($1, $2, $3);`,
				g.Owner, g.PermissionID, g.Allowed)
			if err != nil {
				return translateError(err, "override "+g.PermissionID)
			}
		}
		return nil
	})
}

// GetRoleDefaults overlays the stored grants on the built-in role table.
func (r *PgxAccessRepository) GetRoleDefaults(ctx context.Context) (domain.RoleDefaults, error) {
	grants, err := r.queryGrants(ctx, `SELECT role, permission_id, allowed FROM role_permissions;`)
	if err != nil {
		return nil, err
	}

	defaults := domain.DefaultRoleDefaults()
	byRole := make(map[string][]models.PermissionGrant)
	for _, g := range grants {
		byRole[g.Owner] = append(byRole[g.Owner], g)
	}
	for owner, rows := range byRole {
		role, err := domain.ParseRole(owner)
		if err != nil {
			continue
		}
		for p, v := range mapping.ToPermissionMap(rows) {
			defaults[role][p] = v
		}
	}
	return defaults, nil
}

func (r *PgxAccessRepository) SaveRoleDefaults(ctx context.Context, role domain.Role, perms domain.PermissionMap) error {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return err
	}
	upsert := `
		INSERT INTO role_permissions (role, permission_id, allowed) VALUES ($1, $2, $3)
		ON CONFLICT (role, permission_id) DO UPDATE SET allowed = EXCLUDED.allowed;
	`
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		for _, g := range mapping.ToPermissionGrants(string(role), perms) {
			if _, err := tx.Exec(ctx, upsert, g.Owner, g.PermissionID, g.Allowed); err != nil {
				return fmt.Errorf("failed to save role permission %s: %w", g.PermissionID, err)
			}
		}
		return nil
	})
}

func (r *PgxAccessRepository) GetPreferences(ctx context.Context, userID string) (domain.StoredPreferences, error) {
	rows, err := r.Pool.Query(ctx, `SELECT user_id, preference, shown FROM preferences WHERE user_id = $1;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	ms := make([]models.Preference, 0)
	for rows.Next() {
		var m models.Preference
		if err := rows.Scan(&m.UserID, &m.Preference, &m.Shown); err != nil {
			return nil, fmt.Errorf("failed to scan preference row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preference rows: %w", err)
	}
	return mapping.ToStoredPreferences(ms), nil
}

func (r *PgxAccessRepository) SavePreference(ctx context.Context, userID string, pref domain.Preference, shown bool) error {
	upsert := `
		INSERT INTO preferences (user_id, preference, shown) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, preference) DO UPDATE SET shown = EXCLUDED.shown;
	`
	if _, err := r.Pool.Exec(ctx, upsert, userID, string(pref), shown); err != nil {
		return translateError(err, fmt.Sprintf("preference %s for %s", pref, userID))
	}
	return nil
}
