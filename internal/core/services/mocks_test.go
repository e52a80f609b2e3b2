package services_test

import (
	"context"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByModule(ctx context.Context, module domain.Module) ([]domain.Order, error) {
	args := m.Called(ctx, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateOrderWithLines(ctx context.Context, order domain.Order, lines []domain.ServiceLine) error {
	args := m.Called(ctx, order, lines)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) ListLineItemsByOrder(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockOrderRepository) UpdateLineItemStates(ctx context.Context, orderID string, items []domain.LineItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderRepository) ListServiceLinesByOrder(ctx context.Context, orderID string) ([]domain.ServiceLine, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceLine), args.Error(1)
}

func (m *MockOrderRepository) SaveServiceLine(ctx context.Context, line domain.ServiceLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

// --- Mock AccessRepository ---
type MockAccessRepository struct {
	mock.Mock
}

func (m *MockAccessRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccessRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockAccessRepository) FindAccessRules(ctx context.Context, userID string) (*domain.AccessRules, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRules), args.Error(1)
}

func (m *MockAccessRepository) SaveAccessRules(ctx context.Context, rules domain.AccessRules) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

func (m *MockAccessRepository) GetRoleDefaults(ctx context.Context) (domain.RoleDefaults, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RoleDefaults), args.Error(1)
}

func (m *MockAccessRepository) SaveRoleDefaults(ctx context.Context, role domain.Role, perms domain.PermissionMap) error {
	args := m.Called(ctx, role, perms)
	return args.Error(0)
}

func (m *MockAccessRepository) GetPreferences(ctx context.Context, userID string) (domain.StoredPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.StoredPreferences), args.Error(1)
}

func (m *MockAccessRepository) SavePreference(ctx context.Context, userID string, pref domain.Preference, shown bool) error {
	args := m.Called(ctx, userID, pref, shown)
	return args.Error(0)
}

var _ portsrepo.AccessRepositoryFacade = (*MockAccessRepository)(nil)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portsrepo.TransactionReader = (*MockTransactionRepository)(nil)

// --- Mock Authorizer ---
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, userID string, perm domain.PermissionID) error {
	args := m.Called(ctx, userID, perm)
	return args.Error(0)
}

var _ portssvc.AccessAuthorizerSvc = (*MockAuthorizer)(nil)
