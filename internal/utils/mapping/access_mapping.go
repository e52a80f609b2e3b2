package mapping

import (
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{UserID: m.UserID, Name: m.Name, Role: domain.Role(m.Role)}
}

// ToDomainUserSlice converts a slice of model Users to domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToPermissionMap folds grants into a PermissionMap, skipping ids this build does not know.
func ToPermissionMap(grants []models.PermissionGrant) domain.PermissionMap {
	out := make(domain.PermissionMap, len(grants))
	for _, g := range grants {
		p, err := domain.ParsePermissionID(g.PermissionID)
		if err != nil {
			continue
		}
		out[p] = g.Allowed
	}
	return out
}

// ToPermissionGrants flattens a PermissionMap for owner into grant rows.
func ToPermissionGrants(owner string, perms domain.PermissionMap) []models.PermissionGrant {
	out := make([]models.PermissionGrant, 0, len(perms))
	for _, p := range domain.PermissionIDs {
		if v, ok := perms[p]; ok {
			out = append(out, models.PermissionGrant{Owner: owner, PermissionID: string(p), Allowed: v})
		}
	}
	return out
}

// ToStoredPreferences folds preference rows, skipping unknown preferences.
func ToStoredPreferences(rows []models.Preference) domain.StoredPreferences {
	out := domain.StoredPreferences{}
	for _, r := range rows {
		p, err := domain.ParsePreference(r.Preference)
		if err != nil {
			continue
		}
		out[p] = r.Shown
	}
	return out
}
