package domain

import (
	"fmt"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
)

// Preference is a per-user dashboard widget toggle.
type Preference string

const (
	PrefBillingSummary     Preference = "billing_summary"
	PrefCollectionsSummary Preference = "collections_summary"
	PrefCommissionTotals   Preference = "commission_totals"
	PrefDashboardTotals    Preference = "dashboard_totals"
	PrefInvoiceReviewQueue Preference = "invoice_review_queue"
	PrefStorageSummary     Preference = "storage_summary"
)

// Preferences lists every preference in display order.
var Preferences = []Preference{
	PrefBillingSummary,
	PrefCollectionsSummary,
	PrefCommissionTotals,
	PrefDashboardTotals,
	PrefInvoiceReviewQueue,
	PrefStorageSummary,
}

var preferencePermission = map[Preference]PermissionID{
	PrefBillingSummary:     PermAccessBilling,
	PrefCollectionsSummary: PermAccessCollections,
	PrefCommissionTotals:   PermViewCommissionAmount,
	PrefDashboardTotals:    PermViewDashboardTotals,
	PrefInvoiceReviewQueue: PermAccessInvoiceReview,
	PrefStorageSummary:     PermAccessStorage,
}

// ParsePreference validates a preference name.
func ParsePreference(raw string) (Preference, error) {
	for _, p := range Preferences {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown preference %q", apperrors.ErrValidation, raw)
}

// RequiredPermission is the permission gating the preference.
func (p Preference) RequiredPermission() PermissionID {
	return preferencePermission[p]
}

// PreferenceState is what the settings page renders for a preference.
type PreferenceState string

const (
	PreferenceShown  PreferenceState = "shown"
	PreferenceHidden PreferenceState = "hidden"
	PreferenceLocked PreferenceState = "locked"
)

// StoredPreferences are the raw values a user saved; absent keys mean shown.
type StoredPreferences map[Preference]bool

// ResolvePreference clamps a stored preference by the permissions held.
// Without the required permission the state is locked whatever was stored.
func ResolvePreference(p Preference, perms PermissionMap, stored StoredPreferences) PreferenceState {
	if !perms.Allowed(p.RequiredPermission()) {
		return PreferenceLocked
	}
	shown, ok := stored[p]
	if !ok || shown {
		return PreferenceShown
	}
	return PreferenceHidden
}

// ResolvePreferences resolves every known preference.
func ResolvePreferences(perms PermissionMap, stored StoredPreferences) map[Preference]PreferenceState {
	out := make(map[Preference]PreferenceState, len(Preferences))
	for _, p := range Preferences {
		out[p] = ResolvePreference(p, perms, stored)
	}
	return out
}

// EffectiveShown is true only when the preference is allowed and stored as shown.
func EffectiveShown(p Preference, perms PermissionMap, stored StoredPreferences) bool {
	return ResolvePreference(p, perms, stored) == PreferenceShown
}
