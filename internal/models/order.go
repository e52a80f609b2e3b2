package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a row of the orders table. Each module page owns its own rows.
type Order struct {
	OrderID         string          `db:"order_id"`
	OrderNumber     string          `db:"order_number"`
	Name            string          `db:"name"`
	Module          string          `db:"module"`
	BillTo          string          `db:"bill_to"`
	BillingCompany  string          `db:"billing_company"`
	Status          string          `db:"status"`
	SecondaryStatus string          `db:"secondary_status"`
	OrderDate       time.Time       `db:"order_date"`
	DueDate         sql.NullTime    `db:"due_date"` // Nullable
	Amount          decimal.Decimal `db:"amount"`
	AuditFields
}

// LineItem is a ledger event of an invoice review order.
type LineItem struct {
	LineItemID string          `db:"line_item_id"`
	OrderID    string          `db:"order_id"`
	Category   string          `db:"category"`
	Delta      decimal.Decimal `db:"delta"`
	Cleared    bool            `db:"cleared"`
	Saved      bool            `db:"saved"`
	Invoiced   bool            `db:"invoiced"`
	OccurredAt time.Time       `db:"occurred_at"`
}

// ServiceLine is a billable line of a services order.
type ServiceLine struct {
	ServiceLineID string          `db:"service_line_id"`
	OrderID       string          `db:"order_id"`
	Description   string          `db:"description"`
	Quantity      int             `db:"quantity"`
	UnitAmount    decimal.Decimal `db:"unit_amount"`
	AuditFields
}
