package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Module identifies the back-office page domain that owns an order.
type Module string

const (
	ModuleBilling       Module = "billing"
	ModuleCollections   Module = "collections"
	ModuleCommissions   Module = "commissions"
	ModuleReferralFees  Module = "referral_fees"
	ModuleEstimates     Module = "estimates"
	ModuleStorage       Module = "storage"
	ModuleInvoiceReview Module = "invoice_review"
	ModuleServices      Module = "services"
)

// Modules lists every module in navigation order.
var Modules = []Module{
	ModuleBilling,
	ModuleCollections,
	ModuleCommissions,
	ModuleReferralFees,
	ModuleEstimates,
	ModuleStorage,
	ModuleInvoiceReview,
	ModuleServices,
}

// ParseModule validates a module name.
func ParseModule(raw string) (Module, error) {
	for _, m := range Modules {
		if string(m) == raw {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, raw)
}

// AccessPermission returns the page-access permission guarding the module.
func (m Module) AccessPermission() PermissionID {
	switch m {
	case ModuleBilling:
		return PermAccessBilling
	case ModuleCollections:
		return PermAccessCollections
	case ModuleCommissions:
		return PermAccessCommissions
	case ModuleReferralFees:
		return PermAccessReferralFees
	case ModuleEstimates:
		return PermAccessEstimates
	case ModuleStorage:
		return PermAccessStorage
	case ModuleInvoiceReview:
		return PermAccessInvoiceReview
	case ModuleServices:
		return PermAccessServices
	}
	return ""
}

// Order is the parent entity of a module page. Each module keeps its own copy
// of overlapping sample orders; there is no cross-module order registry.
type Order struct {
	OrderID         string          `json:"orderID"`
	OrderNumber     string          `json:"orderNumber"`
	Name            string          `json:"name"`
	Module          Module          `json:"module"`
	BillTo          string          `json:"billTo"`
	BillingCompany  string          `json:"billingCompany"`
	Status          string          `json:"status"`
	SecondaryStatus string          `json:"secondaryStatus"`
	OrderDate       time.Time       `json:"orderDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	AuditFields
}

// ServiceLine is a billable service appended to an order in the Services module.
type ServiceLine struct {
	ServiceLineID string          `json:"serviceLineID"`
	OrderID       string          `json:"orderID"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	UnitAmount    decimal.Decimal `json:"unitAmount"`
	AuditFields
}

// Total is quantity times unit amount.
func (s ServiceLine) Total() decimal.Decimal {
	return s.UnitAmount.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
