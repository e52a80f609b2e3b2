package services

import (
	"context"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/dto"
)

// OrderReaderSvc defines the module listing operations (billing, collections, storage, ...)
type OrderReaderSvc interface {
	// ListOrders filters, sorts and optionally groups a module's orders.
	// Without an explicit query the user's session search query is used.
	ListOrders(ctx context.Context, userID string, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error)

	// Summaries aggregates billed and collected totals per order of a module.
	Summaries(ctx context.Context, userID string, module domain.Module) ([]domain.OrderSummary, error)
}

// ServiceCaseSvc defines the Services module operations
type ServiceCaseSvc interface {
	// ListServiceLines retrieves the service lines of a services order.
	ListServiceLines(ctx context.Context, orderID string) ([]domain.ServiceLine, error)

	// AddServiceLine validates and appends a service line to a services order.
	AddServiceLine(ctx context.Context, userID, orderID string, req dto.CreateServiceLineRequest) (*domain.ServiceLine, error)

	// CreateOrderCase synthesizes a new services order, optionally with initial lines.
	CreateOrderCase(ctx context.Context, userID string, req dto.CreateOrderCaseRequest) (*domain.Order, []domain.ServiceLine, error)
}
