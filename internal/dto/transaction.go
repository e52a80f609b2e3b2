package dto

import (
	"time"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/utils"
	"github.com/shopspring/decimal"
)

// ListTransactionsParams defines query parameters for listing and exporting transactions.
type ListTransactionsParams struct {
	Source    string  `form:"source"`
	Type      string  `form:"type" binding:"omitempty,oneof=invoice payment commission referral_fee credit"`
	Direction string  `form:"direction" binding:"omitempty,oneof=inbound outbound"`
	From      string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Query     string  `form:"q"`
	SortBy    string  `form:"sortBy,default=date" binding:"omitempty,oneof=date total orderNumber"`
	SortDir   string  `form:"sortDir,default=desc" binding:"omitempty,oneof=asc desc"`
	Limit     int     `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// LedgerTransactionResponse defines the data returned for a transactions ledger row.
type LedgerTransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	Source          string                 `json:"source"`
	Date            time.Time              `json:"date"`
	OrderNumber     string                 `json:"orderNumber"`
	OrderName       string                 `json:"orderName"`
	BillingCo       string                 `json:"billingCo"`
	BillTo          string                 `json:"billTo"`
	RefCo           string                 `json:"refCo"`
	Referrer        string                 `json:"referrer"`
	SalesRep        string                 `json:"salesRep"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Total           decimal.Decimal        `json:"total"`
	TotalDisplay    string                 `json:"totalDisplay"`
	Direction       domain.Direction       `json:"direction"`
}

// ListTransactionsResponse is a page of ledger rows.
type ListTransactionsResponse struct {
	Transactions []LedgerTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}

// ToLedgerTransactionResponses converts transactions to DTOs.
func ToLedgerTransactionResponses(txns []domain.Transaction) []LedgerTransactionResponse {
	res := make([]LedgerTransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = LedgerTransactionResponse{
			TransactionID:   t.TransactionID,
			Source:          t.Source,
			Date:            t.Date,
			OrderNumber:     t.OrderNumber,
			OrderName:       t.OrderName,
			BillingCo:       t.BillingCo,
			BillTo:          t.BillTo,
			RefCo:           t.RefCo,
			Referrer:        t.Referrer,
			SalesRep:        t.SalesRep,
			TransactionType: t.TransactionType,
			Total:           t.Total,
			TotalDisplay:    utils.FormatMoney(t.Total),
			Direction:       t.Direction,
		}
	}
	return res
}
