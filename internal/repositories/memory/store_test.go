package memory_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededStore_OrdersPerModule(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	for _, m := range domain.Modules {
		orders, err := store.ListOrdersByModule(ctx, m)
		require.NoError(t, err)
		assert.NotEmpty(t, orders, "module %s has no seed orders", m)
		for _, o := range orders {
			assert.Equal(t, m, o.Module)
		}
	}
}

func TestSeededStore_NetDeltaExample(t *testing.T) {
	store := memory.NewSeededStore()
	items, err := store.ListLineItemsByOrder(context.Background(), "inv-1")
	require.NoError(t, err)
	require.Len(t, items, 3)

	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Delta)
	}
	assert.True(t, decimal.NewFromInt(40).Equal(total))
}

func TestStore_UpdateLineItemStates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	items, err := store.ListLineItemsByOrder(ctx, "inv-1")
	require.NoError(t, err)
	items[2].Cleared = true

	require.NoError(t, store.UpdateLineItemStates(ctx, "inv-1", items[2:]))

	reloaded, err := store.ListLineItemsByOrder(ctx, "inv-1")
	require.NoError(t, err)
	assert.True(t, reloaded[2].Cleared)
	assert.False(t, reloaded[0].Cleared)
}

func TestStore_UpdateLineItemStates_UnknownItemLeavesOrderUntouched(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	items, err := store.ListLineItemsByOrder(ctx, "inv-1")
	require.NoError(t, err)
	items[0].Invoiced = true
	bogus := domain.LineItem{LineItemID: "nope", Saved: true}

	err = store.UpdateLineItemStates(ctx, "inv-1", []domain.LineItem{items[0], bogus})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	reloaded, err := store.ListLineItemsByOrder(ctx, "inv-1")
	require.NoError(t, err)
	assert.False(t, reloaded[0].Invoiced)
}

func TestStore_ListingReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	items, err := store.ListLineItemsByOrder(ctx, "inv-1")
	require.NoError(t, err)
	items[0].Cleared = true

	again, err := store.ListLineItemsByOrder(ctx, "inv-1")
	require.NoError(t, err)
	assert.False(t, again[0].Cleared)
}

func TestStore_DeleteOrderCascades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	require.NoError(t, store.DeleteOrder(ctx, "inv-2"))

	_, err := store.FindOrderByID(ctx, "inv-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	items, err := store.ListLineItemsByOrder(ctx, "inv-2")
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, store.DeleteOrder(ctx, "inv-2"), apperrors.ErrNotFound)
}

func TestStore_SaveServiceLineAddsToOrderAmount(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	before, err := store.FindOrderByID(ctx, "svc-1")
	require.NoError(t, err)

	line := domain.ServiceLine{ServiceLineID: "sl-new", OrderID: "svc-1", Description: "Extra visit", Quantity: 2, UnitAmount: decimal.RequireFromString("50.25")}
	require.NoError(t, store.SaveServiceLine(ctx, line))

	after, err := store.FindOrderByID(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, before.Amount.Add(decimal.RequireFromString("100.50")).String(), after.Amount.String())

	lines, err := store.ListServiceLinesByOrder(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "sl-new", lines[len(lines)-1].ServiceLineID)

	err = store.SaveServiceLine(ctx, domain.ServiceLine{OrderID: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_CreateOrderWithLines(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	order := domain.Order{OrderID: "svc-new", Module: domain.ModuleServices, Amount: decimal.RequireFromString("30")}
	lines := []domain.ServiceLine{
		{ServiceLineID: "sl-a", OrderID: "svc-new", Description: "Visit", Quantity: 1, UnitAmount: decimal.RequireFromString("10")},
		{ServiceLineID: "sl-b", OrderID: "svc-new", Description: "Parts", Quantity: 2, UnitAmount: decimal.RequireFromString("10")},
	}
	require.NoError(t, store.CreateOrderWithLines(ctx, order, lines))

	saved, err := store.FindOrderByID(ctx, "svc-new")
	require.NoError(t, err)
	assert.Equal(t, "30", saved.Amount.String())
	got, err := store.ListServiceLinesByOrder(ctx, "svc-new")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	err = store.CreateOrderWithLines(ctx, domain.Order{OrderID: "bil-1"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestStore_CreateOrderWithLinesLeavesNothingOnFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	lines := []domain.ServiceLine{
		{ServiceLineID: "sl-a", OrderID: "svc-x"},
		{ServiceLineID: "sl-b", OrderID: "svc-other"},
	}
	err := store.CreateOrderWithLines(ctx, domain.Order{OrderID: "svc-x", Module: domain.ModuleServices}, lines)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = store.FindOrderByID(ctx, "svc-x")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	got, err := store.ListServiceLinesByOrder(ctx, "svc-x")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_AccessRules(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	_, err := store.FindAccessRules(ctx, "u-collections")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	rules := domain.AccessRules{UserID: "u-collections", Overrides: domain.PermissionMap{domain.PermAccessStorage: true}}
	require.NoError(t, store.SaveAccessRules(ctx, rules))
	rules.Overrides[domain.PermAccessStorage] = false

	got, err := store.FindAccessRules(ctx, "u-collections")
	require.NoError(t, err)
	assert.False(t, got.UseDefaults)
	assert.True(t, got.Overrides[domain.PermAccessStorage])
}

func TestStore_RoleDefaultsAreCopied(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	defaults, err := store.GetRoleDefaults(ctx)
	require.NoError(t, err)
	defaults[domain.RoleReadOnly][domain.PermManagePermissions] = true

	again, err := store.GetRoleDefaults(ctx)
	require.NoError(t, err)
	assert.False(t, again[domain.RoleReadOnly][domain.PermManagePermissions])
}

func TestStore_Preferences(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()

	prefs, err := store.GetPreferences(ctx, "u-finance")
	require.NoError(t, err)
	assert.Empty(t, prefs)

	require.NoError(t, store.SavePreference(ctx, "u-finance", domain.PrefDashboardTotals, false))
	prefs, err = store.GetPreferences(ctx, "u-finance")
	require.NoError(t, err)
	shown, ok := prefs[domain.PrefDashboardTotals]
	assert.True(t, ok)
	assert.False(t, shown)
}

func TestStore_FindUserByID(t *testing.T) {
	store := memory.NewSeededStore()
	u, err := store.FindUserByID(context.Background(), "u-ops")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOps, u.Role)

	_, err = store.FindUserByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
