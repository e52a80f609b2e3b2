package models

// User is a back-office user. Role keys into role_permissions.
type User struct {
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	Role   string `db:"role"`
}

// AccessRule is the per-user switch between role defaults and overrides.
type AccessRule struct {
	UserID      string `db:"user_id"`
	UseDefaults bool   `db:"use_defaults"`
}

// PermissionGrant is one permission value, either a role default or a user override.
type PermissionGrant struct {
	Owner        string `db:"owner"` // role name or user id
	PermissionID string `db:"permission_id"`
	Allowed      bool   `db:"allowed"`
}

// Preference is one stored display preference.
type Preference struct {
	UserID     string `db:"user_id"`
	Preference string `db:"preference"`
	Shown      bool   `db:"shown"`
}
