package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/utils/accounting"
)

// InvoiceReviewService drives the invoice review queue: listing, staging and submitting actions.
type InvoiceReviewService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryFacade
	sessions  portssvc.SessionSvc
}

// InvoiceReviewOption is a functional option for configuring the invoice review service
type InvoiceReviewOption func(*InvoiceReviewService)

// WithInvoiceReviewAuthorizer adds the permission checker used for submit and remove.
func WithInvoiceReviewAuthorizer(authorizer portssvc.AccessAuthorizerSvc) InvoiceReviewOption {
	return func(s *InvoiceReviewService) {
		s.Authorizer = authorizer
	}
}

// NewInvoiceReviewService creates a new InvoiceReviewService.
func NewInvoiceReviewService(orderRepo portsrepo.OrderRepositoryFacade, sessions portssvc.SessionSvc, options ...InvoiceReviewOption) *InvoiceReviewService {
	svc := &InvoiceReviewService{
		orderRepo: orderRepo,
		sessions:  sessions,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoiceReviewSvcFacade = (*InvoiceReviewService)(nil)

func (s *InvoiceReviewService) loadOrder(ctx context.Context, orderID string) (*domain.Order, []domain.LineItem, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.Module != domain.ModuleInvoiceReview {
		return nil, nil, fmt.Errorf("%w: order %s is not in invoice review", apperrors.ErrNotFound, orderID)
	}
	items, err := s.orderRepo.ListLineItemsByOrder(ctx, orderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list line items", slog.String("order_id", orderID))
		return nil, nil, fmt.Errorf("failed to list line items for order %s: %w", orderID, err)
	}
	return order, items, nil
}

func (s *InvoiceReviewService) ListReviewOrders(ctx context.Context, userID string) ([]domain.ReviewQueueEntry, error) {
	orders, err := s.orderRepo.ListOrdersByModule(ctx, domain.ModuleInvoiceReview)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoice review orders")
		return nil, fmt.Errorf("failed to list invoice review orders: %w", err)
	}
	triggers := s.sessions.Snapshot(userID).Triggers

	entries := make([]domain.ReviewQueueEntry, 0, len(orders))
	for _, order := range orders {
		items, err := s.orderRepo.ListLineItemsByOrder(ctx, order.OrderID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list line items", slog.String("order_id", order.OrderID))
			return nil, fmt.Errorf("failed to list line items for order %s: %w", order.OrderID, err)
		}
		entries = append(entries, domain.ReviewQueueEntry{
			Order:          order,
			ActiveCount:    len(domain.ActiveItems(items, triggers)),
			ActiveNetDelta: accounting.ActiveNetDelta(items, triggers),
		})
	}
	return entries, nil
}

// GetReview selects the order in the user's session (clearing staging for a different order)
// and returns the grouped view.
func (s *InvoiceReviewService) GetReview(ctx context.Context, userID string, orderID string) (*domain.OrderReview, error) {
	order, items, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	sess, _ := s.sessions.Update(userID, func(sess *domain.Session) error {
		sess.SelectOrder(orderID)
		return nil
	})
	return buildReview(*order, items, sess), nil
}

func buildReview(order domain.Order, items []domain.LineItem, sess domain.Session) *domain.OrderReview {
	active := domain.ActiveItems(items, sess.Triggers)
	groups := make([]domain.ReviewGroup, 0)
	for _, g := range domain.GroupByCategory(active) {
		groups = append(groups, domain.ReviewGroup{
			Category: g.Category,
			Items:    g.Items,
			NetDelta: accounting.NetDelta(g.Items),
		})
	}
	return &domain.OrderReview{
		Order:          order,
		Groups:         groups,
		Saved:          domain.ItemsInBucket(items, domain.BucketSaved),
		Invoiced:       domain.ItemsInBucket(items, domain.BucketInvoiced),
		ActiveNetDelta: accounting.NetDelta(active),
		Staged:         sess.Staged,
		Triggers:       sess.Triggers,
	}
}

func (s *InvoiceReviewService) TriggerFilter(ctx context.Context, userID string) (domain.TriggerFilter, error) {
	return s.sessions.Snapshot(userID).Triggers, nil
}

// StageAction records action for lineItemID. Cleared items cannot be staged and
// restore only applies to saved or invoiced items.
func (s *InvoiceReviewService) StageAction(ctx context.Context, userID, orderID, lineItemID string, action domain.StagedAction) (domain.StagedActions, error) {
	_, items, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var target *domain.LineItem
	for i := range items {
		if items[i].LineItemID == lineItemID {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: line item %s not found in order %s", apperrors.ErrNotFound, lineItemID, orderID)
	}
	if target.Cleared {
		return nil, fmt.Errorf("%w: line item %s is cleared", apperrors.ErrValidation, lineItemID)
	}
	if action == domain.ActionRestore && target.IsActive() {
		return nil, fmt.Errorf("%w: line item %s is already active", apperrors.ErrValidation, lineItemID)
	}

	sess, err := s.sessions.Update(userID, func(sess *domain.Session) error {
		sess.SelectOrder(orderID)
		sess.Staged[lineItemID] = action
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Action staged",
		slog.String("user_id", userID),
		slog.String("order_id", orderID),
		slog.String("line_item_id", lineItemID),
		slog.String("action", string(action)))
	return sess.Staged, nil
}

func (s *InvoiceReviewService) UnstageAction(ctx context.Context, userID, orderID, lineItemID string) (domain.StagedActions, error) {
	if _, _, err := s.loadOrder(ctx, orderID); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Update(userID, func(sess *domain.Session) error {
		sess.SelectOrder(orderID)
		delete(sess.Staged, lineItemID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess.Staged, nil
}

// SubmitStaged applies the session's staged actions for orderID and clears them.
func (s *InvoiceReviewService) SubmitStaged(ctx context.Context, userID, orderID string) (*domain.SubmitResult, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.PermSubmitInvoiceActions); err != nil {
		return nil, err
	}

	snap := s.sessions.Snapshot(userID)
	staged := domain.StagedActions{}
	if snap.SelectedOrderID == orderID {
		staged = snap.Staged
	}

	result, err := s.apply(ctx, orderID, staged)
	if err != nil {
		return nil, err
	}

	// entries staged after the snapshot stay for the next submit
	_, _ = s.sessions.Update(userID, func(sess *domain.Session) error {
		if sess.SelectedOrderID == orderID {
			for id, action := range staged {
				if sess.Staged[id] == action {
					delete(sess.Staged, id)
				}
			}
		}
		return nil
	})

	s.LogInfo(ctx, "Staged actions submitted",
		slog.String("user_id", userID),
		slog.String("order_id", orderID),
		slog.Int("submitted", result.Submitted),
		slog.Int("staged", result.Staged))
	return result, nil
}

// ApplyActions resolves an explicit mapping without touching the staging area,
// except that entries for the applied line items are dropped from it.
func (s *InvoiceReviewService) ApplyActions(ctx context.Context, userID, orderID string, actions domain.StagedActions) (*domain.SubmitResult, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.PermSubmitInvoiceActions); err != nil {
		return nil, err
	}

	result, err := s.apply(ctx, orderID, actions)
	if err != nil {
		return nil, err
	}

	_, _ = s.sessions.Update(userID, func(sess *domain.Session) error {
		if sess.SelectedOrderID == orderID {
			for id := range actions {
				delete(sess.Staged, id)
			}
		}
		return nil
	})

	s.LogInfo(ctx, "Actions applied",
		slog.String("user_id", userID),
		slog.String("order_id", orderID),
		slog.Int("submitted", result.Submitted))
	return result, nil
}

func (s *InvoiceReviewService) apply(ctx context.Context, orderID string, staged domain.StagedActions) (*domain.SubmitResult, error) {
	_, items, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	counts := domain.CountApplied(items, staged)
	resolved := domain.ResolveStagedActions(items, staged)

	changed := make([]domain.LineItem, 0)
	for i := range resolved {
		if resolved[i].Cleared != items[i].Cleared ||
			resolved[i].Saved != items[i].Saved ||
			resolved[i].Invoiced != items[i].Invoiced {
			changed = append(changed, resolved[i])
		}
	}
	if len(changed) > 0 {
		if err := s.orderRepo.UpdateLineItemStates(ctx, orderID, changed); err != nil {
			s.LogError(ctx, err, "Failed to persist line item states",
				slog.String("order_id", orderID),
				slog.Int("changed", len(changed)))
			return nil, fmt.Errorf("failed to persist line item states: %w", err)
		}
	}

	return &domain.SubmitResult{
		OrderID:   orderID,
		Counts:    counts,
		Submitted: counts.Total(),
		Staged:    len(staged),
		Items:     resolved,
	}, nil
}

// RemoveOrder deletes an invoice review order and its line items.
func (s *InvoiceReviewService) RemoveOrder(ctx context.Context, userID, orderID string) error {
	if err := s.AuthorizeUser(ctx, userID, domain.PermApproveInvoices); err != nil {
		return err
	}
	if _, _, err := s.loadOrder(ctx, orderID); err != nil {
		return err
	}
	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		s.LogError(ctx, err, "Failed to delete order", slog.String("order_id", orderID))
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	_, _ = s.sessions.Update(userID, func(sess *domain.Session) error {
		if sess.SelectedOrderID == orderID {
			sess.SelectOrder("")
		}
		return nil
	})
	s.LogInfo(ctx, "Order removed from invoice review", slog.String("user_id", userID), slog.String("order_id", orderID))
	return nil
}

func (s *InvoiceReviewService) SetTriggerEnabled(ctx context.Context, userID string, trigger domain.Trigger, enabled bool) (domain.TriggerFilter, error) {
	sess, err := s.sessions.Update(userID, func(sess *domain.Session) error {
		sess.Triggers[trigger] = enabled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess.Triggers, nil
}
