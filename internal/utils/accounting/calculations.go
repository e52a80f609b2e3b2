package accounting

import (
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetDelta is the signed sum of the items' deltas.
func NetDelta(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Delta)
	}
	return sum
}

// ActiveNetDelta recomputes the net delta over the visible review items only.
func ActiveNetDelta(items []domain.LineItem, filter domain.TriggerFilter) decimal.Decimal {
	return NetDelta(domain.ActiveItems(items, filter))
}

// SummarizeByOrder sums billed (invoice) and collected (payment) totals per order number.
// Summaries come back in the order each order number was first seen.
// Other transaction types do not affect either figure.
func SummarizeByOrder(txns []domain.Transaction) []domain.OrderSummary {
	index := make(map[string]int)
	out := make([]domain.OrderSummary, 0)

	for _, txn := range txns {
		i, ok := index[txn.OrderNumber]
		if !ok {
			i = len(out)
			index[txn.OrderNumber] = i
			out = append(out, domain.OrderSummary{
				OrderNumber: txn.OrderNumber,
				OrderName:   txn.OrderName,
				Billed:      decimal.Zero,
				Collected:   decimal.Zero,
			})
		}

		switch txn.TransactionType {
		case domain.TxnInvoice:
			out[i].Billed = out[i].Billed.Add(txn.Total)
		case domain.TxnPayment:
			out[i].Collected = out[i].Collected.Add(txn.Total)
		}
	}

	for i := range out {
		out[i].Outstanding = out[i].Billed.Sub(out[i].Collected)
	}
	return out
}
