package services

import (
	"context"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
)

// AccessReaderSvc defines read operations for the settings page
type AccessReaderSvc interface {
	// ListUsers retrieves every user.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// EffectivePermissions resolves the full permission map of a user.
	// Unknown users yield apperrors.ErrUnknownUser.
	EffectivePermissions(ctx context.Context, userID string) (domain.PermissionMap, error)

	// GetAccessRules returns the user's rules, defaulting to UseDefaults=true.
	GetAccessRules(ctx context.Context, userID string) (*domain.AccessRules, error)

	// RoleDefaults returns the full role table.
	RoleDefaults(ctx context.Context) (domain.RoleDefaults, error)

	// Preferences resolves a user's display preferences against their permissions.
	Preferences(ctx context.Context, userID string) (map[domain.Preference]domain.PreferenceState, error)
}

// AccessWriterSvc defines write operations for the settings page
type AccessWriterSvc interface {
	// UpdateAccessRules replaces a user's rules. Requires manage_permissions.
	UpdateAccessRules(ctx context.Context, actorID, targetID string, useDefaults bool, overrides domain.PermissionMap) (*domain.AccessRules, error)

	// UpdateRoleDefaults merges perms into a role's defaults. Requires manage_permissions.
	UpdateRoleDefaults(ctx context.Context, actorID string, role domain.Role, perms domain.PermissionMap) (domain.PermissionMap, error)

	// UpdatePreference stores a display preference for target.
	UpdatePreference(ctx context.Context, actorID, targetID string, pref domain.Preference, shown bool) (map[domain.Preference]domain.PreferenceState, error)
}

// AccessAuthorizerSvc defines permission checks used by other services and middleware
type AccessAuthorizerSvc interface {
	// Authorize returns apperrors.ErrForbidden unless the user holds perm.
	Authorize(ctx context.Context, userID string, perm domain.PermissionID) error
}

// AccessSvcFacade combines all access-related service interfaces
type AccessSvcFacade interface {
	AccessReaderSvc
	AccessWriterSvc
	AccessAuthorizerSvc
}
