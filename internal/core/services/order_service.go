package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// OrderService serves the module listing pages.
type OrderService struct {
	BaseService
	orderRepo portsrepo.OrderReader
	txnRepo   portsrepo.TransactionReader
	sessions  portssvc.SessionSvc
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderReader, txnRepo portsrepo.TransactionReader, sessions portssvc.SessionSvc, authorizer portssvc.AccessAuthorizerSvc) *OrderService {
	return &OrderService{
		BaseService: BaseService{Authorizer: authorizer},
		orderRepo:   orderRepo,
		txnRepo:     txnRepo,
		sessions:    sessions,
	}
}

var _ portssvc.OrderReaderSvc = (*OrderService)(nil)

// ListOrders lists a module's orders: filter, then stable sort, then optional grouping.
func (s *OrderService) ListOrders(ctx context.Context, userID string, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	module, err := domain.ParseModule(params.Module)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, module.AccessPermission()); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListOrdersByModule(ctx, module)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders", slog.String("module", string(module)))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	query := s.sessions.Snapshot(userID).SearchQuery
	if params.Query != nil {
		query = *params.Query
	}

	filtered := filterOrders(orders, query, params.Status)
	sortOrders(filtered, params.SortBy, params.SortDir == "asc")

	resp := &dto.ListOrdersResponse{
		Module:      module,
		SearchQuery: query,
		Total:       sumAmounts(filtered),
		Orders:      dto.ToListOrderResponse(filtered),
	}
	if params.GroupBy == "status" {
		resp.Groups = groupByStatus(filtered)
	}

	s.LogDebug(ctx, "Orders listed",
		slog.String("module", string(module)),
		slog.String("query", query),
		slog.Int("count", len(filtered)))
	return resp, nil
}

func filterOrders(orders []domain.Order, query, status string) []domain.Order {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && !strings.EqualFold(o.Status, status) {
			continue
		}
		if q != "" && !matchesOrder(o, q) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesOrder(o domain.Order, q string) bool {
	for _, field := range []string{o.OrderNumber, o.Name, o.BillTo, o.BillingCompany, o.Status, o.SecondaryStatus} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func compareOrders(a, b domain.Order, sortBy string) int {
	switch sortBy {
	case "orderNumber":
		return strings.Compare(a.OrderNumber, b.OrderNumber)
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "billTo":
		return strings.Compare(strings.ToLower(a.BillTo), strings.ToLower(b.BillTo))
	case "status":
		return strings.Compare(a.Status, b.Status)
	case "amount":
		return a.Amount.Cmp(b.Amount)
	case "dueDate":
		// orders without a due date sort last ascending
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		}
		return a.DueDate.Compare(*b.DueDate)
	default:
		return a.OrderDate.Compare(b.OrderDate)
	}
}

func sortOrders(orders []domain.Order, sortBy string, asc bool) {
	slices.SortStableFunc(orders, func(a, b domain.Order) int {
		c := compareOrders(a, b, sortBy)
		if !asc {
			c = -c
		}
		return c
	})
}

func sumAmounts(orders []domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Amount)
	}
	return total
}

func groupByStatus(orders []domain.Order) []dto.OrderGroupResponse {
	index := make(map[string]int)
	groups := make([]dto.OrderGroupResponse, 0)
	for i := range orders {
		key := orders[i].Status
		g, ok := index[key]
		if !ok {
			g = len(groups)
			index[key] = g
			groups = append(groups, dto.OrderGroupResponse{Key: key, Total: decimal.Zero})
		}
		groups[g].Orders = append(groups[g].Orders, dto.ToOrderResponse(&orders[i]))
		groups[g].Count++
		groups[g].Total = groups[g].Total.Add(orders[i].Amount)
	}
	return groups
}

// Summaries aggregates the transactions that belong to the module's orders.
func (s *OrderService) Summaries(ctx context.Context, userID string, module domain.Module) ([]domain.OrderSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, module.AccessPermission()); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListOrdersByModule(ctx, module)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders", slog.String("module", string(module)))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	numbers := make(map[string]bool, len(orders))
	for _, o := range orders {
		numbers[o.OrderNumber] = true
	}
	relevant := make([]domain.Transaction, 0)
	for _, t := range txns {
		if numbers[t.OrderNumber] {
			relevant = append(relevant, t)
		}
	}
	return accounting.SummarizeByOrder(relevant), nil
}
