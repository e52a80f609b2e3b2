package repositories

import (
	"context"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves a specific order by its unique identifier.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersByModule retrieves all orders owned by a module page, in seed order.
	ListOrdersByModule(ctx context.Context, module domain.Module) ([]domain.Order, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// CreateOrderWithLines persists a new order and its service lines atomically.
	// The order's amount is stored as given.
	CreateOrderWithLines(ctx context.Context, order domain.Order, lines []domain.ServiceLine) error

	// DeleteOrder removes an order together with all of its line items and service lines.
	DeleteOrder(ctx context.Context, orderID string) error
}

// LineItemReader defines read operations for ledger line items
type LineItemReader interface {
	// ListLineItemsByOrder retrieves an order's line items in event order.
	ListLineItemsByOrder(ctx context.Context, orderID string) ([]domain.LineItem, error)
}

// LineItemWriter defines write operations for ledger line items
type LineItemWriter interface {
	// UpdateLineItemStates persists the flags of the given items atomically.
	UpdateLineItemStates(ctx context.Context, orderID string, items []domain.LineItem) error
}

// ServiceLineRepository defines persistence for service lines of the Services module
type ServiceLineRepository interface {
	// ListServiceLinesByOrder retrieves the service lines appended to an order.
	ListServiceLinesByOrder(ctx context.Context, orderID string) ([]domain.ServiceLine, error)

	// SaveServiceLine persists a new service line and adds its total to the parent order's amount.
	SaveServiceLine(ctx context.Context, line domain.ServiceLine) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
// This is a facade for clients that need access to all operations
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
	LineItemReader
	LineItemWriter
	ServiceLineRepository
}
