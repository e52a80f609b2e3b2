package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement in the transactions ledger.
type TransactionType string

const (
	TxnInvoice     TransactionType = "invoice"
	TxnPayment     TransactionType = "payment"
	TxnCommission  TransactionType = "commission"
	TxnReferralFee TransactionType = "referral_fee"
	TxnCredit      TransactionType = "credit"
)

// Direction says whether money flows to or from the business.
type Direction string

const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

// Transaction is one row of the transactions module.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	Source          string          `json:"source"`
	Date            time.Time       `json:"date"`
	OrderNumber     string          `json:"orderNumber"`
	OrderName       string          `json:"orderName"`
	BillingCo       string          `json:"billingCo"`
	BillTo          string          `json:"billTo"`
	RefCo           string          `json:"refCo"`
	Referrer        string          `json:"referrer"`
	SalesRep        string          `json:"salesRep"`
	TransactionType TransactionType `json:"transactionType"`
	Total           decimal.Decimal `json:"total"`
	Direction       Direction       `json:"direction"`
}

// OrderSummary aggregates billed and collected amounts for one order key.
type OrderSummary struct {
	OrderNumber string          `json:"orderNumber"`
	OrderName   string          `json:"orderName"`
	Billed      decimal.Decimal `json:"billed"`
	Collected   decimal.Decimal `json:"collected"`
	Outstanding decimal.Decimal `json:"outstanding"`
}
