package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/core/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (*services.OrderService, *services.SessionStore, *MockAuthorizer) {
	t.Helper()
	store := memory.NewSeededStore()
	sessions := services.NewSessionStore()
	authorizer := new(MockAuthorizer)
	authorizer.On("Authorize", mock.Anything, "u-ops", domain.PermAccessBilling).Return(apperrors.ErrForbidden).Maybe()
	authorizer.On("Authorize", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return services.NewOrderService(store, store, sessions, authorizer), sessions, authorizer
}

func orderIDs(resp *dto.ListOrdersResponse) []string {
	ids := make([]string, len(resp.Orders))
	for i, o := range resp.Orders {
		ids[i] = o.OrderID
	}
	return ids
}

func strPtr(s string) *string { return &s }

func TestOrderService_ListOrders_DefaultSortNewestFirst(t *testing.T) {
	svc, _, _ := newOrderService(t)

	resp, err := svc.ListOrders(context.Background(), "u-finance", dto.ListOrdersParams{Module: "billing", SortBy: "orderDate", SortDir: "desc"})

	require.NoError(t, err)
	assert.Equal(t, []string{"bil-2", "bil-1", "bil-3", "bil-4"}, orderIDs(resp))
	assert.Equal(t, "60670.5", resp.Total.String())
	assert.Empty(t, resp.Groups)
}

func TestOrderService_ListOrders_SortByAmountAscending(t *testing.T) {
	svc, _, _ := newOrderService(t)

	resp, err := svc.ListOrders(context.Background(), "u-finance", dto.ListOrdersParams{Module: "billing", SortBy: "amount", SortDir: "asc"})

	require.NoError(t, err)
	assert.Equal(t, []string{"bil-4", "bil-2", "bil-1", "bil-3"}, orderIDs(resp))
}

func TestOrderService_ListOrders_QueryFallsBackToSessionSearch(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newOrderService(t)
	_, err := sessions.Update("u-finance", func(s *domain.Session) error {
		s.SearchQuery = "lakeside"
		return nil
	})
	require.NoError(t, err)

	resp, err := svc.ListOrders(ctx, "u-finance", dto.ListOrdersParams{Module: "billing"})
	require.NoError(t, err)
	assert.Equal(t, "lakeside", resp.SearchQuery)
	assert.Equal(t, []string{"bil-3"}, orderIDs(resp))

	// an explicit empty query overrides the session search
	resp, err = svc.ListOrders(ctx, "u-finance", dto.ListOrdersParams{Module: "billing", Query: strPtr("")})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 4)
}

func TestOrderService_ListOrders_GroupByStatus(t *testing.T) {
	svc, _, _ := newOrderService(t)

	resp, err := svc.ListOrders(context.Background(), "u-finance", dto.ListOrdersParams{Module: "billing", SortBy: "orderDate", SortDir: "desc", GroupBy: "status"})

	require.NoError(t, err)
	require.Len(t, resp.Groups, 3)
	assert.Equal(t, "Draft", resp.Groups[0].Key)
	assert.Equal(t, "Invoiced", resp.Groups[1].Key)
	assert.Equal(t, 2, resp.Groups[1].Count)
	assert.Equal(t, "51150", resp.Groups[1].Total.String())
	assert.Equal(t, "Paid", resp.Groups[2].Key)
}

func TestOrderService_ListOrders_StatusFilter(t *testing.T) {
	svc, _, _ := newOrderService(t)

	resp, err := svc.ListOrders(context.Background(), "u-finance", dto.ListOrdersParams{Module: "collections", Status: "past due"})

	require.NoError(t, err)
	assert.Equal(t, []string{"col-2"}, orderIDs(resp))
}

func TestOrderService_ListOrders_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrderService(t)

	_, err := svc.ListOrders(ctx, "u-finance", dto.ListOrdersParams{Module: "payroll"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.ListOrders(ctx, "u-ops", dto.ListOrdersParams{Module: "billing"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestOrderService_Summaries(t *testing.T) {
	svc, _, _ := newOrderService(t)

	summaries, err := svc.Summaries(context.Background(), "u-finance", domain.ModuleCollections)

	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "ORD-10421", summaries[0].OrderNumber)
	assert.Equal(t, "9125", summaries[0].Outstanding.String())
	assert.Equal(t, "ORD-10440", summaries[1].OrderNumber)
	assert.Equal(t, "32900", summaries[1].Billed.String())
	assert.True(t, summaries[1].Collected.IsZero())
	assert.Equal(t, "ORD-10398", summaries[2].OrderNumber)
}
