package domain_test

import (
	"testing"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, category string, delta int64) domain.LineItem {
	return domain.LineItem{
		LineItemID: id,
		OrderID:    "ord_1",
		Category:   category,
		Delta:      decimal.NewFromInt(delta),
	}
}

func ids(items []domain.LineItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.LineItemID
	}
	return out
}

func TestResolveStagedActions_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		start  domain.LineItem
		action domain.StagedAction
		want   domain.LineItem
	}{
		{
			name:   "invoice from active",
			start:  item("a", "Price change", 10),
			action: domain.ActionInvoice,
			want:   domain.LineItem{Invoiced: true},
		},
		{
			name:   "invoice from saved clears saved",
			start:  domain.LineItem{Saved: true},
			action: domain.ActionInvoice,
			want:   domain.LineItem{Invoiced: true},
		},
		{
			name:   "save from invoiced clears invoiced",
			start:  domain.LineItem{Invoiced: true},
			action: domain.ActionSave,
			want:   domain.LineItem{Saved: true},
		},
		{
			name:   "restore from saved",
			start:  domain.LineItem{Saved: true},
			action: domain.ActionRestore,
			want:   domain.LineItem{},
		},
		{
			name:   "restore from invoiced",
			start:  domain.LineItem{Invoiced: true},
			action: domain.ActionRestore,
			want:   domain.LineItem{},
		},
		{
			name:   "dismiss clears the other flags",
			start:  domain.LineItem{Saved: true},
			action: domain.ActionDismiss,
			want:   domain.LineItem{Cleared: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.start.LineItemID = "x"
			tt.want.LineItemID = "x"
			tt.want.OrderID = tt.start.OrderID
			tt.want.Category = tt.start.Category
			tt.want.Delta = tt.start.Delta

			got := domain.ResolveStagedActions([]domain.LineItem{tt.start}, domain.StagedActions{"x": tt.action})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestResolveStagedActions_DismissIsIdempotent(t *testing.T) {
	items := []domain.LineItem{item("a", "Deleted item", -80)}
	staged := domain.StagedActions{"a": domain.ActionDismiss}

	once := domain.ResolveStagedActions(items, staged)
	twice := domain.ResolveStagedActions(once, staged)

	assert.Equal(t, once, twice)
	assert.True(t, twice[0].Cleared)
	assert.False(t, twice[0].Saved)
	assert.False(t, twice[0].Invoiced)
}

func TestResolveStagedActions_ClearedIsAbsorbing(t *testing.T) {
	cleared := item("a", "Price change", 5)
	cleared.Cleared = true
	cleared.Saved = true // inconsistent legacy data must still be returned verbatim

	for _, action := range append(domain.AllStagedActions, "") {
		t.Run(string(action), func(t *testing.T) {
			got := domain.ResolveStagedActions([]domain.LineItem{cleared}, domain.StagedActions{"a": action})
			assert.Equal(t, cleared, got[0])
		})
	}
}

func TestResolveStagedActions_PreservesOrderAndCardinality(t *testing.T) {
	items := []domain.LineItem{
		item("c", "Price change", 1),
		item("a", "Deleted item", 2),
		item("b", "Added item", 3),
		item("d", "Substitution", 4),
	}
	staged := domain.StagedActions{
		"a":       domain.ActionDismiss,
		"d":       domain.ActionSave,
		"unknown": domain.ActionInvoice,
	}

	got := domain.ResolveStagedActions(items, staged)

	assert.Len(t, got, len(items))
	assert.Equal(t, ids(items), ids(got))
	// unchanged items stay identical
	assert.Equal(t, items[0], got[0])
	assert.Equal(t, items[2], got[2])
}

func TestResolveStagedActions_DoesNotMutateInput(t *testing.T) {
	items := []domain.LineItem{item("a", "Price change", 1)}
	_ = domain.ResolveStagedActions(items, domain.StagedActions{"a": domain.ActionInvoice})
	assert.False(t, items[0].Invoiced)
}

func TestResolveStagedActions_MutualExclusivity(t *testing.T) {
	starts := []domain.LineItem{{}, {Saved: true}, {Invoiced: true}}
	for _, start := range starts {
		for _, action := range domain.AllStagedActions {
			start.LineItemID = "x"
			got := domain.ResolveStagedActions([]domain.LineItem{start}, domain.StagedActions{"x": action})[0]

			assert.False(t, got.Saved && got.Invoiced, "saved and invoiced both set after %s", action)
			if action != domain.ActionDismiss {
				assert.False(t, got.Cleared, "only dismiss may clear (%s)", action)
			} else {
				assert.True(t, got.Cleared)
				assert.False(t, got.Saved || got.Invoiced)
			}
		}
	}
}

func TestCountApplied(t *testing.T) {
	cleared := item("c", "Price change", 1)
	cleared.Cleared = true
	items := []domain.LineItem{item("a", "Price change", 1), item("b", "Price change", 1), cleared}

	counts := domain.CountApplied(items, domain.StagedActions{
		"a":     domain.ActionInvoice,
		"b":     domain.ActionInvoice,
		"c":     domain.ActionSave,
		"ghost": domain.ActionDismiss,
	})

	assert.Equal(t, 2, counts[domain.ActionInvoice])
	assert.Equal(t, 0, counts[domain.ActionSave])
	assert.Equal(t, 2, counts.Total())
}

func TestParseStagedAction(t *testing.T) {
	a, err := domain.ParseStagedAction("dismiss")
	assert.NoError(t, err)
	assert.Equal(t, domain.ActionDismiss, a)

	_, err = domain.ParseStagedAction("approve")
	assert.Error(t, err)
}
