package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions ledger.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	Source          string          `db:"source"`
	TxnDate         time.Time       `db:"txn_date"`
	OrderNumber     string          `db:"order_number"`
	OrderName       string          `db:"order_name"`
	BillingCo       string          `db:"billing_co"`
	BillTo          string          `db:"bill_to"`
	RefCo           string          `db:"ref_co"`
	Referrer        string          `db:"referrer"`
	SalesRep        string          `db:"sales_rep"`
	TransactionType string          `db:"transaction_type"`
	Total           decimal.Decimal `db:"total"`
	Direction       string          `db:"direction"`
}
