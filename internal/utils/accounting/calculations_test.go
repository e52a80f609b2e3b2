package accounting_test

import (
	"testing"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetDelta_DismissScenario(t *testing.T) {
	items := []domain.LineItem{
		{LineItemID: "a", Category: "Price change", Delta: decimal.NewFromInt(240)},
		{LineItemID: "b", Category: "Deleted item", Delta: decimal.NewFromInt(-80)},
		{LineItemID: "c", Category: "Rejected item", Delta: decimal.NewFromInt(-120)},
	}
	assert.True(t, decimal.NewFromInt(40).Equal(accounting.NetDelta(items)))

	resolved := domain.ResolveStagedActions(items, domain.StagedActions{"c": domain.ActionDismiss})
	active := accounting.ActiveNetDelta(resolved, domain.DefaultTriggerFilter())

	assert.True(t, decimal.NewFromInt(160).Equal(active), "got %s", active)
}

func TestNetDelta_Empty(t *testing.T) {
	assert.True(t, accounting.NetDelta(nil).IsZero())
}

func TestActiveNetDelta_RespectsTriggerFilter(t *testing.T) {
	items := []domain.LineItem{
		{LineItemID: "a", Category: "Price change", Delta: decimal.NewFromInt(100)},
		{LineItemID: "b", Category: "Fee adjustment", Delta: decimal.NewFromFloat(12.5)},
	}
	f := domain.DefaultTriggerFilter()
	f[domain.TriggerFeeAdjustment] = false

	assert.Equal(t, "100", accounting.ActiveNetDelta(items, f).String())
}

func TestSummarizeByOrder(t *testing.T) {
	txns := []domain.Transaction{
		{OrderNumber: "B-200", OrderName: "Beta", TransactionType: domain.TxnInvoice, Total: decimal.NewFromInt(500)},
		{OrderNumber: "A-100", OrderName: "Alpha", TransactionType: domain.TxnInvoice, Total: decimal.NewFromInt(1000)},
		{OrderNumber: "A-100", OrderName: "Alpha", TransactionType: domain.TxnPayment, Total: decimal.NewFromInt(400)},
		{OrderNumber: "B-200", OrderName: "Beta", TransactionType: domain.TxnCommission, Total: decimal.NewFromInt(50)},
		{OrderNumber: "B-200", OrderName: "Beta", TransactionType: domain.TxnPayment, Total: decimal.NewFromInt(500)},
	}

	got := accounting.SummarizeByOrder(txns)
	require.Len(t, got, 2)

	assert.Equal(t, "B-200", got[0].OrderNumber)
	assert.Equal(t, "500", got[0].Billed.String())
	assert.Equal(t, "500", got[0].Collected.String())
	assert.True(t, got[0].Outstanding.IsZero())

	assert.Equal(t, "A-100", got[1].OrderNumber)
	assert.Equal(t, "1000", got[1].Billed.String())
	assert.Equal(t, "400", got[1].Collected.String())
	assert.Equal(t, "600", got[1].Outstanding.String())
}
