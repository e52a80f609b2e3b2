// Package seed holds the sample back-office data loaded into empty stores.
package seed

import (
	"time"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Actor is recorded as creator of every seeded row.
const Actor = "system"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func audit(at time.Time) domain.AuditFields {
	return domain.AuditFields{CreatedAt: at, CreatedBy: Actor, LastUpdatedAt: at, LastUpdatedBy: Actor}
}

func order(id, number, name string, module domain.Module, billTo, billingCo, status, secondary string, date time.Time, due *time.Time, amount string) domain.Order {
	return domain.Order{
		OrderID:         id,
		OrderNumber:     number,
		Name:            name,
		Module:          module,
		BillTo:          billTo,
		BillingCompany:  billingCo,
		Status:          status,
		SecondaryStatus: secondary,
		OrderDate:       date,
		DueDate:         due,
		Amount:          money(amount),
		AuditFields:     audit(date),
	}
}

// Users is one user per role.
func Users() []domain.User {
	return []domain.User{
		{UserID: "u-admin", Name: "Avery Admin", Role: domain.RoleAdmin},
		{UserID: "u-finance", Name: "Fran Finance", Role: domain.RoleFinance},
		{UserID: "u-collections", Name: "Cole Collins", Role: domain.RoleCollections},
		{UserID: "u-ops", Name: "Olive Ops", Role: domain.RoleOps},
		{UserID: "u-readonly", Name: "Reed Only", Role: domain.RoleReadOnly},
	}
}

// Orders returns the sample orders of every module page. The same order number
// may appear on several pages; each page owns its own copy.
func Orders() []domain.Order {
	return []domain.Order{
		order("bil-1", "ORD-10421", "Harbor Point Renovation", domain.ModuleBilling, "Harbor Point HOA", "Acme Builders", "Invoiced", "Partially paid", day(2024, 3, 4), dayPtr(2024, 4, 3), "18250.00"),
		order("bil-2", "ORD-10433", "Maple St. Kitchen", domain.ModuleBilling, "Dana Whitfield", "Acme Builders", "Draft", "", day(2024, 3, 11), nil, "7420.50"),
		order("bil-3", "ORD-10440", "Lakeside Office Fit-out", domain.ModuleBilling, "Lakeside Partners, LLC", "Northwind Interiors", "Invoiced", "Overdue", day(2024, 2, 19), dayPtr(2024, 3, 20), "32900.00"),
		order("bil-4", "ORD-10452", "Cedar Deck Repair", domain.ModuleBilling, "Sam Ortiz", "Acme Builders", "Paid", "", day(2024, 1, 28), dayPtr(2024, 2, 27), "2100.00"),

		order("col-1", "ORD-10421", "Harbor Point Renovation", domain.ModuleCollections, "Harbor Point HOA", "Acme Builders", "Open", "Reminder sent", day(2024, 3, 4), dayPtr(2024, 4, 3), "9125.00"),
		order("col-2", "ORD-10440", "Lakeside Office Fit-out", domain.ModuleCollections, "Lakeside Partners, LLC", "Northwind Interiors", "Past due", "Call scheduled", day(2024, 2, 19), dayPtr(2024, 3, 20), "32900.00"),
		order("col-3", "ORD-10398", "Birchwood Basement", domain.ModuleCollections, "Priya Natarajan", "Acme Builders", "Promise to pay", "", day(2024, 1, 9), dayPtr(2024, 2, 8), "4480.00"),

		order("com-1", "ORD-10421", "Harbor Point Renovation", domain.ModuleCommissions, "Harbor Point HOA", "Acme Builders", "Pending", "", day(2024, 3, 4), nil, "912.50"),
		order("com-2", "ORD-10452", "Cedar Deck Repair", domain.ModuleCommissions, "Sam Ortiz", "Acme Builders", "Paid", "", day(2024, 1, 28), nil, "105.00"),

		order("ref-1", "ORD-10440", "Lakeside Office Fit-out", domain.ModuleReferralFees, "Lakeside Partners, LLC", "Northwind Interiors", "Owed", "", day(2024, 2, 19), dayPtr(2024, 4, 30), "1645.00"),
		order("ref-2", "ORD-10398", "Birchwood Basement", domain.ModuleReferralFees, "Priya Natarajan", "Acme Builders", "Paid", "", day(2024, 1, 9), nil, "224.00"),

		order("est-1", "EST-2201", "Orchard Lane Addition", domain.ModuleEstimates, "Morgan Lee", "Acme Builders", "Sent", "Awaiting reply", day(2024, 3, 15), dayPtr(2024, 4, 14), "56700.00"),
		order("est-2", "EST-2205", "Pine Ridge Roof", domain.ModuleEstimates, "Pine Ridge Co-op", "Northwind Interiors", "Accepted", "", day(2024, 3, 2), nil, "14350.00"),
		order("est-3", "EST-2210", "Willow Court Patio", domain.ModuleEstimates, "Chris \"CJ\" James", "Acme Builders", "Draft", "", day(2024, 3, 18), nil, "3900.00"),

		order("sto-1", "STO-301", "Harbor Point Cabinets", domain.ModuleStorage, "Harbor Point HOA", "Acme Builders", "In storage", "Bay 4", day(2024, 2, 1), dayPtr(2024, 5, 1), "450.00"),
		order("sto-2", "STO-305", "Lakeside Furniture", domain.ModuleStorage, "Lakeside Partners, LLC", "Northwind Interiors", "Released", "", day(2024, 1, 15), nil, "300.00"),

		order("inv-1", "ORD-10421", "Harbor Point Renovation", domain.ModuleInvoiceReview, "Harbor Point HOA", "Acme Builders", "Needs review", "", day(2024, 3, 4), dayPtr(2024, 4, 3), "18250.00"),
		order("inv-2", "ORD-10440", "Lakeside Office Fit-out", domain.ModuleInvoiceReview, "Lakeside Partners, LLC", "Northwind Interiors", "Needs review", "", day(2024, 2, 19), dayPtr(2024, 3, 20), "32900.00"),
		order("inv-3", "ORD-10433", "Maple St. Kitchen", domain.ModuleInvoiceReview, "Dana Whitfield", "Acme Builders", "Needs review", "", day(2024, 3, 11), nil, "7420.50"),

		order("svc-1", "SVC-1001", "Harbor Point Punch List", domain.ModuleServices, "Harbor Point HOA", "Acme Builders", "Open", "", day(2024, 3, 20), nil, "1140.00"),
		order("svc-2", "SVC-1002", "Cedar Deck Warranty Visit", domain.ModuleServices, "Sam Ortiz", "Acme Builders", "Closed", "", day(2024, 2, 10), nil, "0.00"),
	}
}

func lineItem(id, orderID, category, delta string, at time.Time) domain.LineItem {
	return domain.LineItem{LineItemID: id, OrderID: orderID, Category: category, Delta: money(delta), OccurredAt: at}
}

// LineItems returns ledger events for the invoice review orders.
func LineItems() []domain.LineItem {
	saved := lineItem("li-2-4", "inv-2", string(domain.TriggerFeeAdjustment), "35.00", day(2024, 3, 12))
	saved.Saved = true
	invoiced := lineItem("li-2-5", "inv-2", string(domain.TriggerPriceChange), "410.00", day(2024, 3, 1))
	invoiced.Invoiced = true
	cleared := lineItem("li-2-6", "inv-2", string(domain.TriggerAddedItem), "90.00", day(2024, 2, 27))
	cleared.Cleared = true

	return []domain.LineItem{
		lineItem("li-1-1", "inv-1", string(domain.TriggerPriceChange), "240.00", day(2024, 3, 6)),
		lineItem("li-1-2", "inv-1", string(domain.TriggerQuantityChange), "-80.00", day(2024, 3, 7)),
		lineItem("li-1-3", "inv-1", string(domain.TriggerDeletedItem), "-120.00", day(2024, 3, 8)),

		lineItem("li-2-1", "inv-2", string(domain.TriggerSubstitution), "1250.00", day(2024, 3, 9)),
		lineItem("li-2-2", "inv-2", string(domain.TriggerSubstitution), "-300.00", day(2024, 3, 9)),
		lineItem("li-2-3", "inv-2", string(domain.TriggerRejectedItem), "-640.00", day(2024, 3, 10)),
		saved,
		invoiced,
		cleared,

		lineItem("li-3-1", "inv-3", string(domain.TriggerAddedItem), "185.25", day(2024, 3, 14)),
		lineItem("li-3-2", "inv-3", "Manual note", "0.00", day(2024, 3, 15)),
	}
}

func serviceLine(id, orderID, desc string, qty int, unit string, at time.Time) domain.ServiceLine {
	return domain.ServiceLine{ServiceLineID: id, OrderID: orderID, Description: desc, Quantity: qty, UnitAmount: money(unit), AuditFields: audit(at)}
}

// ServiceLines returns the lines of the seeded services orders.
func ServiceLines() []domain.ServiceLine {
	return []domain.ServiceLine{
		serviceLine("sl-1", "svc-1", "Touch-up paint, common hall", 6, "95.00", day(2024, 3, 20)),
		serviceLine("sl-2", "svc-1", "Replace cabinet hinge", 4, "142.50", day(2024, 3, 21)),
	}
}

func txn(id, source string, date time.Time, number, name, billingCo, billTo, refCo, referrer, rep string, typ domain.TransactionType, total string, dir domain.Direction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		Source:          source,
		Date:            date,
		OrderNumber:     number,
		OrderName:       name,
		BillingCo:       billingCo,
		BillTo:          billTo,
		RefCo:           refCo,
		Referrer:        referrer,
		SalesRep:        rep,
		TransactionType: typ,
		Total:           money(total),
		Direction:       dir,
	}
}

// Transactions returns the transactions ledger.
func Transactions() []domain.Transaction {
	return []domain.Transaction{
		txn("t-01", "QuickBooks", day(2024, 3, 5), "ORD-10421", "Harbor Point Renovation", "Acme Builders", "Harbor Point HOA", "", "", "Jordan Park", domain.TxnInvoice, "18250.00", domain.Inbound),
		txn("t-02", "Stripe", day(2024, 3, 19), "ORD-10421", "Harbor Point Renovation", "Acme Builders", "Harbor Point HOA", "", "", "Jordan Park", domain.TxnPayment, "9125.00", domain.Inbound),
		txn("t-03", "QuickBooks", day(2024, 2, 20), "ORD-10440", "Lakeside Office Fit-out", "Northwind Interiors", "Lakeside Partners, LLC", "Keystone Realty", "Mia Chen", "Jordan Park", domain.TxnInvoice, "32900.00", domain.Inbound),
		txn("t-04", "Manual", day(2024, 3, 1), "ORD-10440", "Lakeside Office Fit-out", "Northwind Interiors", "Lakeside Partners, LLC", "Keystone Realty", "Mia Chen", "Jordan Park", domain.TxnReferralFee, "1645.00", domain.Outbound),
		txn("t-05", "QuickBooks", day(2024, 1, 29), "ORD-10452", "Cedar Deck Repair", "Acme Builders", "Sam Ortiz", "", "", "Riley Shaw", domain.TxnInvoice, "2100.00", domain.Inbound),
		txn("t-06", "Stripe", day(2024, 2, 12), "ORD-10452", "Cedar Deck Repair", "Acme Builders", "Sam Ortiz", "", "", "Riley Shaw", domain.TxnPayment, "2100.00", domain.Inbound),
		txn("t-07", "Payroll", day(2024, 2, 15), "ORD-10452", "Cedar Deck Repair", "Acme Builders", "Sam Ortiz", "", "", "Riley Shaw", domain.TxnCommission, "105.00", domain.Outbound),
		txn("t-08", "QuickBooks", day(2024, 1, 10), "ORD-10398", "Birchwood Basement", "Acme Builders", "Priya Natarajan", "Oak & Ash Referrals", "Tom \"TJ\" Jensen", "Riley Shaw", domain.TxnInvoice, "4480.00", domain.Inbound),
		txn("t-09", "Manual", day(2024, 2, 2), "ORD-10398", "Birchwood Basement", "Acme Builders", "Priya Natarajan", "Oak & Ash Referrals", "Tom \"TJ\" Jensen", "Riley Shaw", domain.TxnReferralFee, "224.00", domain.Outbound),
		txn("t-10", "QuickBooks", day(2024, 3, 12), "ORD-10433", "Maple St. Kitchen", "Acme Builders", "Dana Whitfield", "", "", "Jordan Park", domain.TxnCredit, "-150.00", domain.Outbound),
	}
}
