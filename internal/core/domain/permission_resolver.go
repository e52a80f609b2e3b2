package domain

import (
	"fmt"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
)

// ResolvePermissions computes the full effective permission map for user.
//
// It starts from a copy of the role's defaults. When rules.UseDefaults is false,
// each key present in rules.Overrides replaces the default; unspecified keys keep
// the role value. Every permission id is present in the result.
func ResolvePermissions(user User, defaults RoleDefaults, rules AccessRules) (PermissionMap, error) {
	base, ok := defaults[user.Role]
	if !ok {
		return nil, fmt.Errorf("%w: no defaults for role %q", apperrors.ErrValidation, user.Role)
	}
	effective := base.Full()
	if rules.UseDefaults {
		return effective, nil
	}
	for p, v := range rules.Overrides {
		if _, known := effective[p]; known {
			effective[p] = v
		}
	}
	return effective, nil
}

// ResolvePermissionsFor resolves permissions for userID from the full tables.
// Missing access rules default to UseDefaults=true. An id that is not in users
// yields apperrors.ErrUnknownUser.
func ResolvePermissionsFor(userID string, users []User, defaults RoleDefaults, rules map[string]AccessRules) (PermissionMap, error) {
	for _, u := range users {
		if u.UserID != userID {
			continue
		}
		r, ok := rules[userID]
		if !ok {
			r = DefaultAccessRules(userID)
		}
		return ResolvePermissions(u, defaults, r)
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownUser, userID)
}

// CanEditAccessRules reports whether an actor may change other users' access rules
// and the role table.
func CanEditAccessRules(actor PermissionMap) bool {
	return actor.Allowed(PermManagePermissions)
}

// CanEditPreferences reports whether actorID may change targetID's display preferences.
func CanEditPreferences(actorID, targetID string, actor PermissionMap) bool {
	return actorID == targetID || CanEditAccessRules(actor)
}
