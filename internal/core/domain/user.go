package domain

import (
	"fmt"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
)

// Role is the coarse access tier of a back-office user.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleFinance     Role = "finance"
	RoleCollections Role = "collections"
	RoleOps         Role = "ops"
	RoleReadOnly    Role = "readonly"
)

// Roles is the closed set of roles in display order.
var Roles = []Role{RoleAdmin, RoleFinance, RoleCollections, RoleOps, RoleReadOnly}

// ParseRole validates a role name.
func ParseRole(raw string) (Role, error) {
	for _, r := range Roles {
		if string(r) == raw {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, raw)
}

// User represents a back-office user.
type User struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// AccessRules is the per-user layer of the permission model.
// While UseDefaults is true, Overrides are kept but ignored.
type AccessRules struct {
	UserID      string        `json:"userID"`
	UseDefaults bool          `json:"useDefaults"`
	Overrides   PermissionMap `json:"overrides"`
}

// DefaultAccessRules are the rules of a user who never had any configured.
func DefaultAccessRules(userID string) AccessRules {
	return AccessRules{UserID: userID, UseDefaults: true, Overrides: PermissionMap{}}
}
