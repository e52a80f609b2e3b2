package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/utils/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	serviceOrderPrefix   = "SVC-"
	firstServiceOrderNum = 1001
	newServiceCaseStatus = "Open"
)

// ServiceCaseService manages orders of the Services module and their service lines.
type ServiceCaseService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryFacade
	now       func() time.Time
}

// NewServiceCaseService creates a new ServiceCaseService.
func NewServiceCaseService(orderRepo portsrepo.OrderRepositoryFacade, authorizer portssvc.AccessAuthorizerSvc) *ServiceCaseService {
	return &ServiceCaseService{
		BaseService: BaseService{Authorizer: authorizer},
		orderRepo:   orderRepo,
		now:         time.Now,
	}
}

var _ portssvc.ServiceCaseSvc = (*ServiceCaseService)(nil)

func (s *ServiceCaseService) findServiceOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Module != domain.ModuleServices {
		return nil, fmt.Errorf("%w: order %s is not a services order", apperrors.ErrNotFound, orderID)
	}
	return order, nil
}

func (s *ServiceCaseService) ListServiceLines(ctx context.Context, orderID string) ([]domain.ServiceLine, error) {
	if _, err := s.findServiceOrder(ctx, orderID); err != nil {
		return nil, err
	}
	lines, err := s.orderRepo.ListServiceLinesByOrder(ctx, orderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list service lines", slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to list service lines: %w", err)
	}
	return lines, nil
}

func (s *ServiceCaseService) newLine(orderID, userID string, req dto.CreateServiceLineRequest, now time.Time) domain.ServiceLine {
	return domain.ServiceLine{
		ServiceLineID: uuid.NewString(),
		OrderID:       orderID,
		Description:   req.Description,
		Quantity:      req.Quantity,
		UnitAmount:    req.UnitAmount.Round(2),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

func (s *ServiceCaseService) AddServiceLine(ctx context.Context, userID, orderID string, req dto.CreateServiceLineRequest) (*domain.ServiceLine, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.PermEditServices); err != nil {
		return nil, err
	}
	req = req.Trimmed()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.findServiceOrder(ctx, orderID); err != nil {
		return nil, err
	}

	line := s.newLine(orderID, userID, req, s.now().UTC())
	if err := s.orderRepo.SaveServiceLine(ctx, line); err != nil {
		s.LogError(ctx, err, "Failed to save service line", slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to save service line: %w", err)
	}
	s.LogInfo(ctx, "Service line added",
		slog.String("order_id", orderID),
		slog.String("service_line_id", line.ServiceLineID),
		slog.String("total", line.Total().StringFixed(2)))
	return &line, nil
}

// nextServiceOrderNumber returns SVC-<n> one past the highest existing number.
func (s *ServiceCaseService) nextServiceOrderNumber(ctx context.Context) (string, error) {
	orders, err := s.orderRepo.ListOrdersByModule(ctx, domain.ModuleServices)
	if err != nil {
		return "", fmt.Errorf("failed to list services orders: %w", err)
	}
	next := firstServiceOrderNum
	for _, o := range orders {
		n, err := strconv.Atoi(strings.TrimPrefix(o.OrderNumber, serviceOrderPrefix))
		if err == nil && n >= next {
			next = n + 1
		}
	}
	return serviceOrderPrefix + strconv.Itoa(next), nil
}

func (s *ServiceCaseService) CreateOrderCase(ctx context.Context, userID string, req dto.CreateOrderCaseRequest) (*domain.Order, []domain.ServiceLine, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.PermEditServices); err != nil {
		return nil, nil, err
	}
	req = req.Trimmed()
	if err := validation.Struct(req); err != nil {
		return nil, nil, err
	}

	number, err := s.nextServiceOrderNumber(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate services order number")
		return nil, nil, err
	}

	now := s.now().UTC()
	order := domain.Order{
		OrderID:        uuid.NewString(),
		OrderNumber:    number,
		Name:           req.Name,
		Module:         domain.ModuleServices,
		BillTo:         req.BillTo,
		BillingCompany: req.BillingCompany,
		Status:         newServiceCaseStatus,
		OrderDate:      now,
		Amount:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	lines := make([]domain.ServiceLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		line := s.newLine(order.OrderID, userID, lr, now)
		order.Amount = order.Amount.Add(line.Total())
		lines = append(lines, line)
	}

	if err := s.orderRepo.CreateOrderWithLines(ctx, order, lines); err != nil {
		s.LogError(ctx, err, "Failed to save services order", slog.String("order_number", number))
		return nil, nil, fmt.Errorf("failed to save services order: %w", err)
	}

	s.LogInfo(ctx, "Services order created",
		slog.String("order_id", order.OrderID),
		slog.String("order_number", number),
		slog.Int("lines", len(lines)))
	return &order, lines, nil
}
