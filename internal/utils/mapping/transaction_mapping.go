package mapping

import (
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/models"
)

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		Source:          m.Source,
		Date:            m.TxnDate,
		OrderNumber:     m.OrderNumber,
		OrderName:       m.OrderName,
		BillingCo:       m.BillingCo,
		BillTo:          m.BillTo,
		RefCo:           m.RefCo,
		Referrer:        m.Referrer,
		SalesRep:        m.SalesRep,
		TransactionType: domain.TransactionType(m.TransactionType),
		Total:           m.Total,
		Direction:       domain.Direction(m.Direction),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		Source:          d.Source,
		TxnDate:         d.Date,
		OrderNumber:     d.OrderNumber,
		OrderName:       d.OrderName,
		BillingCo:       d.BillingCo,
		BillTo:          d.BillTo,
		RefCo:           d.RefCo,
		Referrer:        d.Referrer,
		SalesRep:        d.SalesRep,
		TransactionType: string(d.TransactionType),
		Total:           d.Total,
		Direction:       string(d.Direction),
	}
}
