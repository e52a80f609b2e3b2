package repositories

import (
	"context"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves every user in display order.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// AccessRulesRepository defines persistence for per-user access rules
type AccessRulesRepository interface {
	// FindAccessRules retrieves a user's rules; apperrors.ErrNotFound if none were saved.
	FindAccessRules(ctx context.Context, userID string) (*domain.AccessRules, error)

	// SaveAccessRules inserts or replaces a user's rules.
	SaveAccessRules(ctx context.Context, rules domain.AccessRules) error
}

// RoleDefaultsRepository defines persistence for the role table
type RoleDefaultsRepository interface {
	// GetRoleDefaults retrieves the full role table.
	GetRoleDefaults(ctx context.Context) (domain.RoleDefaults, error)

	// SaveRoleDefaults replaces the permission map of one role.
	SaveRoleDefaults(ctx context.Context, role domain.Role, perms domain.PermissionMap) error
}

// PreferenceRepository defines persistence for display preferences
type PreferenceRepository interface {
	// GetPreferences retrieves stored preference values; empty when none were saved.
	GetPreferences(ctx context.Context, userID string) (domain.StoredPreferences, error)

	// SavePreference stores one preference value.
	SavePreference(ctx context.Context, userID string, pref domain.Preference, shown bool) error
}

// AccessRepositoryFacade combines all settings-related repository interfaces
type AccessRepositoryFacade interface {
	UserReader
	AccessRulesRepository
	RoleDefaultsRepository
	PreferenceRepository
}
