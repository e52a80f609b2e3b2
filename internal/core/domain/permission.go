package domain

import (
	"fmt"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
)

// PermissionID names a page-access or feature-visibility toggle.
type PermissionID string

const (
	PermAccessBilling        PermissionID = "access_billing"
	PermAccessCollections    PermissionID = "access_collections"
	PermAccessCommissions    PermissionID = "access_commissions"
	PermAccessReferralFees   PermissionID = "access_referral_fees"
	PermAccessEstimates      PermissionID = "access_estimates"
	PermAccessStorage        PermissionID = "access_storage"
	PermAccessInvoiceReview  PermissionID = "access_invoice_review"
	PermAccessTransactions   PermissionID = "access_transactions"
	PermAccessServices       PermissionID = "access_services"
	PermAccessSettings       PermissionID = "access_settings"
	PermViewDashboardTotals  PermissionID = "view_dashboard_totals"
	PermViewCommissionAmount PermissionID = "view_commission_amounts"
	PermExportTransactions   PermissionID = "export_transactions"
	PermApproveInvoices      PermissionID = "approve_invoices"
	PermSubmitInvoiceActions PermissionID = "submit_invoice_actions"
	PermEditServices         PermissionID = "edit_services"
	PermManagePermissions    PermissionID = "manage_permissions"
)

// PermissionIDs is the closed set of permission ids.
var PermissionIDs = []PermissionID{
	PermAccessBilling,
	PermAccessCollections,
	PermAccessCommissions,
	PermAccessReferralFees,
	PermAccessEstimates,
	PermAccessStorage,
	PermAccessInvoiceReview,
	PermAccessTransactions,
	PermAccessServices,
	PermAccessSettings,
	PermViewDashboardTotals,
	PermViewCommissionAmount,
	PermExportTransactions,
	PermApproveInvoices,
	PermSubmitInvoiceActions,
	PermEditServices,
	PermManagePermissions,
}

// ParsePermissionID validates a permission id.
func ParsePermissionID(raw string) (PermissionID, error) {
	for _, p := range PermissionIDs {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown permission %q", apperrors.ErrValidation, raw)
}

// PermissionMap holds one boolean per permission id. A full map has every id;
// override maps are partial.
type PermissionMap map[PermissionID]bool

// Clone returns an independent copy of the map.
func (m PermissionMap) Clone() PermissionMap {
	out := make(PermissionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Allowed reports whether p is granted. Absent keys are denied.
func (m PermissionMap) Allowed(p PermissionID) bool {
	return m[p]
}

// Full returns a copy with every known permission id present, missing ids set to false.
func (m PermissionMap) Full() PermissionMap {
	out := make(PermissionMap, len(PermissionIDs))
	for _, p := range PermissionIDs {
		out[p] = m[p]
	}
	return out
}

// RoleDefaults maps every role to its full baseline permission map.
type RoleDefaults map[Role]PermissionMap

// Clone returns a deep copy.
func (rd RoleDefaults) Clone() RoleDefaults {
	out := make(RoleDefaults, len(rd))
	for r, m := range rd {
		out[r] = m.Clone()
	}
	return out
}

func grant(perms ...PermissionID) PermissionMap {
	m := PermissionMap{}
	for _, p := range perms {
		m[p] = true
	}
	return m.Full()
}

// DefaultRoleDefaults returns the built-in role table.
func DefaultRoleDefaults() RoleDefaults {
	return RoleDefaults{
		RoleAdmin: grant(PermissionIDs...),
		RoleFinance: grant(
			PermAccessBilling, PermAccessCollections, PermAccessCommissions, PermAccessReferralFees,
			PermAccessEstimates, PermAccessStorage, PermAccessInvoiceReview, PermAccessTransactions,
			PermAccessServices, PermAccessSettings, PermViewDashboardTotals, PermViewCommissionAmount,
			PermExportTransactions, PermApproveInvoices, PermSubmitInvoiceActions,
		),
		RoleCollections: grant(
			PermAccessBilling, PermAccessCollections, PermAccessInvoiceReview, PermAccessTransactions,
			PermAccessSettings, PermViewDashboardTotals, PermSubmitInvoiceActions,
		),
		RoleOps: grant(
			PermAccessEstimates, PermAccessStorage, PermAccessServices, PermAccessInvoiceReview,
			PermAccessSettings, PermEditServices,
		),
		RoleReadOnly: grant(
			PermAccessBilling, PermAccessCollections, PermAccessTransactions, PermAccessSettings,
		),
	}
}
