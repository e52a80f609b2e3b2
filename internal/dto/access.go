package dto

import "github.com/SscSPs/finops_backoffice/internal/core/domain"

// UserResponse defines the data returned for a settings user row.
type UserResponse struct {
	UserID string      `json:"userID"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
}

// ToUserResponses converts users to DTOs.
func ToUserResponses(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = UserResponse{UserID: u.UserID, Name: u.Name, Role: u.Role}
	}
	return res
}

// PermissionsResponse returns the effective permissions of a user.
type PermissionsResponse struct {
	UserID      string               `json:"userID"`
	Permissions domain.PermissionMap `json:"permissions"`
}

// AccessRulesResponse returns a user's stored access rules.
type AccessRulesResponse struct {
	UserID      string               `json:"userID"`
	UseDefaults bool                 `json:"useDefaults"`
	Overrides   domain.PermissionMap `json:"overrides"`
}

// ToAccessRulesResponse converts domain.AccessRules to its DTO.
func ToAccessRulesResponse(r *domain.AccessRules) AccessRulesResponse {
	overrides := r.Overrides
	if overrides == nil {
		overrides = domain.PermissionMap{}
	}
	return AccessRulesResponse{UserID: r.UserID, UseDefaults: r.UseDefaults, Overrides: overrides}
}

// UpdateAccessRulesRequest replaces a user's access rules.
type UpdateAccessRulesRequest struct {
	UseDefaults *bool           `json:"useDefaults" binding:"required"`
	Overrides   map[string]bool `json:"overrides"`
}

// RoleDefaultsResponse returns one role's default permissions.
type RoleDefaultsResponse struct {
	Role        domain.Role          `json:"role"`
	Permissions domain.PermissionMap `json:"permissions"`
}

// UpdateRoleDefaultsRequest merges permissions into a role's defaults.
type UpdateRoleDefaultsRequest struct {
	Permissions map[string]bool `json:"permissions" binding:"required"`
}

// UpdatePreferenceRequest stores a display preference.
type UpdatePreferenceRequest struct {
	Preference string `json:"preference" binding:"required"`
	Shown      *bool  `json:"shown" binding:"required"`
}

// PreferencesResponse returns the resolved display preferences of a user.
type PreferencesResponse struct {
	UserID      string                                      `json:"userID"`
	Preferences map[domain.Preference]domain.PreferenceState `json:"preferences"`
}

// ParsePermissionMap converts a raw request map into a PermissionMap, rejecting unknown ids.
func ParsePermissionMap(raw map[string]bool) (domain.PermissionMap, error) {
	out := make(domain.PermissionMap, len(raw))
	for k, v := range raw {
		p, err := domain.ParsePermissionID(k)
		if err != nil {
			return nil, err
		}
		out[p] = v
	}
	return out, nil
}
