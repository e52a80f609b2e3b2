package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/models"
	"github.com/SscSPs/finops_backoffice/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderRoundTripKeepsOptionalDueDate(t *testing.T) {
	due := time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)
	withDue := domain.Order{OrderID: "bil-1", Module: domain.ModuleBilling, DueDate: &due, Amount: decimal.RequireFromString("18250.00")}
	withoutDue := domain.Order{OrderID: "bil-2", Module: domain.ModuleBilling}

	m := mapping.ToModelOrder(withDue)
	assert.True(t, m.DueDate.Valid)
	assert.Equal(t, "billing", m.Module)
	back := mapping.ToDomainOrder(m)
	if assert.NotNil(t, back.DueDate) {
		assert.True(t, due.Equal(*back.DueDate))
	}

	assert.False(t, mapping.ToModelOrder(withoutDue).DueDate.Valid)
	assert.Nil(t, mapping.ToDomainOrder(mapping.ToModelOrder(withoutDue)).DueDate)
}

func TestToPermissionMapSkipsUnknownIDs(t *testing.T) {
	grants := []models.PermissionGrant{
		{Owner: "u-ops", PermissionID: string(domain.PermAccessStorage), Allowed: false},
		{Owner: "u-ops", PermissionID: "launch_rockets", Allowed: true},
	}

	perms := mapping.ToPermissionMap(grants)

	assert.Equal(t, domain.PermissionMap{domain.PermAccessStorage: false}, perms)
}

func TestToPermissionGrantsUsesCanonicalOrder(t *testing.T) {
	perms := domain.PermissionMap{domain.PermManagePermissions: true, domain.PermAccessStorage: false}

	grants := mapping.ToPermissionGrants("finance", perms)

	assert.Len(t, grants, 2)
	for _, g := range grants {
		assert.Equal(t, "finance", g.Owner)
	}
	assert.Equal(t, perms, mapping.ToPermissionMap(grants))
}

func TestToStoredPreferencesSkipsUnknown(t *testing.T) {
	rows := []models.Preference{
		{UserID: "u-finance", Preference: string(domain.PrefDashboardTotals), Shown: false},
		{UserID: "u-finance", Preference: "weather_widget", Shown: true},
	}

	prefs := mapping.ToStoredPreferences(rows)

	assert.Equal(t, domain.StoredPreferences{domain.PrefDashboardTotals: false}, prefs)
}
