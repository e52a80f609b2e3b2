package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/finops_backoffice/internal/repositories/seed"
)

// Store is an in-process implementation of every repository port.
// Slices keep insertion order so listings are deterministic.
type Store struct {
	mu sync.RWMutex

	orders       []domain.Order
	lineItems    map[string][]domain.LineItem
	serviceLines map[string][]domain.ServiceLine
	transactions []domain.Transaction

	users        []domain.User
	accessRules  map[string]domain.AccessRules
	roleDefaults domain.RoleDefaults
	preferences  map[string]domain.StoredPreferences
}

// NewStore creates an empty store with the built-in role defaults.
func NewStore() *Store {
	return &Store{
		lineItems:    make(map[string][]domain.LineItem),
		serviceLines: make(map[string][]domain.ServiceLine),
		accessRules:  make(map[string]domain.AccessRules),
		roleDefaults: domain.DefaultRoleDefaults(),
		preferences:  make(map[string]domain.StoredPreferences),
	}
}

// NewSeededStore creates a store loaded with the sample back-office data.
func NewSeededStore() *Store {
	s := NewStore()
	s.users = seed.Users()
	s.orders = seed.Orders()
	for _, li := range seed.LineItems() {
		s.lineItems[li.OrderID] = append(s.lineItems[li.OrderID], li)
	}
	for _, sl := range seed.ServiceLines() {
		s.serviceLines[sl.OrderID] = append(s.serviceLines[sl.OrderID], sl)
	}
	s.transactions = seed.Transactions()
	return s
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrderRepo:       s,
		AccessRepo:      s,
		TransactionRepo: s,
	}
}

var (
	_ portsrepo.OrderRepositoryFacade  = (*Store)(nil)
	_ portsrepo.AccessRepositoryFacade = (*Store)(nil)
	_ portsrepo.TransactionReader      = (*Store)(nil)
)

// --- orders ---

func (s *Store) orderIndex(orderID string) int {
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			return i
		}
	}
	return -1
}

func (s *Store) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.orderIndex(orderID)
	if i < 0 {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
	}
	o := s.orders[i]
	return &o, nil
}

func (s *Store) ListOrdersByModule(ctx context.Context, module domain.Module) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, o := range s.orders {
		if o.Module == module {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Store) CreateOrderWithLines(ctx context.Context, order domain.Order, lines []domain.ServiceLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orderIndex(order.OrderID) >= 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrDuplicate, order.OrderID)
	}
	for _, l := range lines {
		if l.OrderID != order.OrderID {
			return fmt.Errorf("%w: service line %s belongs to order %s", apperrors.ErrValidation, l.ServiceLineID, l.OrderID)
		}
	}
	s.orders = append(s.orders, order)
	if len(lines) > 0 {
		saved := make([]domain.ServiceLine, len(lines))
		copy(saved, lines)
		s.serviceLines[order.OrderID] = saved
	}
	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(orderID)
	if i < 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
	}
	s.orders = append(s.orders[:i:i], s.orders[i+1:]...)
	delete(s.lineItems, orderID)
	delete(s.serviceLines, orderID)
	return nil
}

// --- line items ---

func (s *Store) ListLineItemsByOrder(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.lineItems[orderID]
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out, nil
}

// UpdateLineItemStates replaces the flags of the given items. Either every item
// is updated or none is.
func (s *Store) UpdateLineItemStates(ctx context.Context, orderID string, items []domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lineItems[orderID]
	pos := make(map[string]int, len(current))
	for i, li := range current {
		pos[li.LineItemID] = i
	}
	for _, li := range items {
		if _, ok := pos[li.LineItemID]; !ok {
			return fmt.Errorf("%w: line item %s in order %s", apperrors.ErrNotFound, li.LineItemID, orderID)
		}
	}

	updated := make([]domain.LineItem, len(current))
	copy(updated, current)
	for _, li := range items {
		i := pos[li.LineItemID]
		updated[i].Cleared = li.Cleared
		updated[i].Saved = li.Saved
		updated[i].Invoiced = li.Invoiced
	}
	s.lineItems[orderID] = updated
	return nil
}

// --- service lines ---

func (s *Store) ListServiceLinesByOrder(ctx context.Context, orderID string) ([]domain.ServiceLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := s.serviceLines[orderID]
	out := make([]domain.ServiceLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *Store) SaveServiceLine(ctx context.Context, line domain.ServiceLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(line.OrderID)
	if i < 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, line.OrderID)
	}
	s.serviceLines[line.OrderID] = append(s.serviceLines[line.OrderID], line)
	s.orders[i].Amount = s.orders[i].Amount.Add(line.Total())
	s.orders[i].LastUpdatedAt = line.CreatedAt
	s.orders[i].LastUpdatedBy = line.CreatedBy
	return nil
}

// --- transactions ---

func (s *Store) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

// --- users and access ---

func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.UserID == userID {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Store) FindAccessRules(ctx context.Context, userID string) (*domain.AccessRules, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rules, ok := s.accessRules[userID]
	if !ok {
		return nil, fmt.Errorf("%w: access rules for %s", apperrors.ErrNotFound, userID)
	}
	rules.Overrides = rules.Overrides.Clone()
	return &rules, nil
}

func (s *Store) SaveAccessRules(ctx context.Context, rules domain.AccessRules) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rules.Overrides = rules.Overrides.Clone()
	s.accessRules[rules.UserID] = rules
	return nil
}

func (s *Store) GetRoleDefaults(ctx context.Context) (domain.RoleDefaults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roleDefaults.Clone(), nil
}

func (s *Store) SaveRoleDefaults(ctx context.Context, role domain.Role, perms domain.PermissionMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roleDefaults[role] = perms.Clone()
	return nil
}

func (s *Store) GetPreferences(ctx context.Context, userID string) (domain.StoredPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.StoredPreferences{}
	for k, v := range s.preferences[userID] {
		out[k] = v
	}
	return out, nil
}

func (s *Store) SavePreference(ctx context.Context, userID string, pref domain.Preference, shown bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preferences[userID] == nil {
		s.preferences[userID] = domain.StoredPreferences{}
	}
	s.preferences[userID][pref] = shown
	return nil
}
