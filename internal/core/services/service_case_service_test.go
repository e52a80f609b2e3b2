package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/core/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newServiceCaseService(t *testing.T) (*services.ServiceCaseService, *memory.Store) {
	t.Helper()
	store := memory.NewSeededStore()
	authorizer := new(MockAuthorizer)
	authorizer.On("Authorize", mock.Anything, "u-ops", domain.PermEditServices).Return(nil).Maybe()
	authorizer.On("Authorize", mock.Anything, mock.Anything, domain.PermEditServices).Return(apperrors.ErrForbidden).Maybe()
	return services.NewServiceCaseService(store, authorizer), store
}

func TestServiceCaseService_CreateOrderCase(t *testing.T) {
	ctx := context.Background()
	svc, store := newServiceCaseService(t)

	order, lines, err := svc.CreateOrderCase(ctx, "u-ops", dto.CreateOrderCaseRequest{
		Name:   "  Orchard Lane Touch-up ",
		BillTo: "Morgan Lee",
		Lines: []dto.CreateServiceLineRequest{
			{Description: "Site visit", Quantity: 2, UnitAmount: decimal.RequireFromString("50")},
			{Description: "Caulk", Quantity: 1, UnitAmount: decimal.RequireFromString("19.99")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "SVC-1003", order.OrderNumber)
	assert.Equal(t, "Orchard Lane Touch-up", order.Name)
	assert.Equal(t, domain.ModuleServices, order.Module)
	assert.Equal(t, "119.99", order.Amount.StringFixed(2))
	require.Len(t, lines, 2)
	assert.Equal(t, order.OrderID, lines[0].OrderID)

	stored, err := store.FindOrderByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "119.99", stored.Amount.StringFixed(2))

	next, _, err := svc.CreateOrderCase(ctx, "u-ops", dto.CreateOrderCaseRequest{Name: "Second", BillTo: "Sam Ortiz"})
	require.NoError(t, err)
	assert.Equal(t, "SVC-1004", next.OrderNumber)
	assert.True(t, next.Amount.IsZero())
}

func TestServiceCaseService_CreateOrderCase_FieldErrors(t *testing.T) {
	svc, _ := newServiceCaseService(t)

	_, _, err := svc.CreateOrderCase(context.Background(), "u-ops", dto.CreateOrderCaseRequest{
		BillTo: "Morgan Lee",
		Lines: []dto.CreateServiceLineRequest{
			{Description: "Site visit", Quantity: 0, UnitAmount: decimal.Zero},
		},
	})

	require.ErrorIs(t, err, apperrors.ErrValidation)
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "lines[0].quantity")
	assert.Contains(t, verr.Fields, "lines[0].unitAmount")
}

func TestServiceCaseService_AddServiceLine(t *testing.T) {
	ctx := context.Background()
	svc, store := newServiceCaseService(t)

	line, err := svc.AddServiceLine(ctx, "u-ops", "svc-1", dto.CreateServiceLineRequest{
		Description: "Touch-up paint", Quantity: 3, UnitAmount: decimal.RequireFromString("12.345"),
	})
	require.NoError(t, err)
	assert.Equal(t, "12.35", line.UnitAmount.StringFixed(2))

	lines, err := svc.ListServiceLines(ctx, "svc-1")
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	order, err := store.FindOrderByID(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "1177.05", order.Amount.StringFixed(2))
}

func TestServiceCaseService_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceCaseService(t)
	req := dto.CreateServiceLineRequest{Description: "Visit", Quantity: 1, UnitAmount: decimal.NewFromInt(10)}

	_, err := svc.AddServiceLine(ctx, "u-ops", "bil-1", req)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "non-services orders are invisible here")

	_, err = svc.ListServiceLines(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AddServiceLine(ctx, "u-finance", "svc-1", req)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, _, err = svc.CreateOrderCase(ctx, "u-readonly", dto.CreateOrderCaseRequest{Name: "x", BillTo: "y"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestServiceCaseService_BlankTextIsRequired(t *testing.T) {
	ctx := context.Background()
	svc, store := newServiceCaseService(t)

	_, _, err := svc.CreateOrderCase(ctx, "u-ops", dto.CreateOrderCaseRequest{
		Name:   "   ",
		BillTo: "Morgan Lee",
		Lines:  []dto.CreateServiceLineRequest{{Description: " \t ", Quantity: 1, UnitAmount: decimal.NewFromInt(10)}},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "lines[0].description")

	_, err = svc.AddServiceLine(ctx, "u-ops", "svc-1", dto.CreateServiceLineRequest{
		Description: "   ", Quantity: 1, UnitAmount: decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	lines, err := store.ListServiceLinesByOrder(ctx, "svc-1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestServiceCaseService_CreateOrderCaseWritesOnce(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOrderRepository)
	authorizer := new(MockAuthorizer)
	authorizer.On("Authorize", mock.Anything, "u-ops", domain.PermEditServices).Return(nil)
	repo.On("ListOrdersByModule", mock.Anything, domain.ModuleServices).Return([]domain.Order{}, nil)
	repo.On("CreateOrderWithLines", mock.Anything, mock.AnythingOfType("domain.Order"), mock.AnythingOfType("[]domain.ServiceLine")).
		Return(errors.New("connection reset"))
	svc := services.NewServiceCaseService(repo, authorizer)

	order, lines, err := svc.CreateOrderCase(ctx, "u-ops", dto.CreateOrderCaseRequest{
		Name:   "Orchard Lane",
		BillTo: "Morgan Lee",
		Lines: []dto.CreateServiceLineRequest{
			{Description: "Visit", Quantity: 2, UnitAmount: decimal.RequireFromString("50")},
			{Description: "Caulk", Quantity: 1, UnitAmount: decimal.RequireFromString("19.99")},
		},
	})

	require.Error(t, err)
	assert.Nil(t, order)
	assert.Nil(t, lines)
	repo.AssertNumberOfCalls(t, "CreateOrderWithLines", 1)
	repo.AssertNotCalled(t, "SaveServiceLine", mock.Anything, mock.Anything)

	call := repo.Calls[len(repo.Calls)-1]
	saved := call.Arguments.Get(1).(domain.Order)
	savedLines := call.Arguments.Get(2).([]domain.ServiceLine)
	assert.Equal(t, "SVC-1001", saved.OrderNumber)
	assert.Equal(t, "119.99", saved.Amount.StringFixed(2))
	require.Len(t, savedLines, 2)
	assert.Equal(t, saved.OrderID, savedLines[1].OrderID)
}
