package services

import (
	"context"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
)

// InvoiceReviewReaderSvc defines read operations for the invoice review queue
type InvoiceReviewReaderSvc interface {
	// ListReviewOrders lists invoice review orders with their active item counts under the user's triggers.
	ListReviewOrders(ctx context.Context, userID string) ([]domain.ReviewQueueEntry, error)

	// GetReview selects an order for the user and returns its grouped review view.
	GetReview(ctx context.Context, userID string, orderID string) (*domain.OrderReview, error)

	// TriggerFilter returns the user's trigger toggles.
	TriggerFilter(ctx context.Context, userID string) (domain.TriggerFilter, error)
}

// InvoiceReviewStagingSvc defines operations on the transient staged-action mapping
type InvoiceReviewStagingSvc interface {
	// StageAction records a pending action for a line item of the order.
	StageAction(ctx context.Context, userID, orderID, lineItemID string, action domain.StagedAction) (domain.StagedActions, error)

	// UnstageAction drops any pending action for a line item.
	UnstageAction(ctx context.Context, userID, orderID, lineItemID string) (domain.StagedActions, error)
}

// InvoiceReviewWriterSvc defines operations that change line item state
type InvoiceReviewWriterSvc interface {
	// SubmitStaged resolves the user's staged actions for the order and clears them.
	SubmitStaged(ctx context.Context, userID, orderID string) (*domain.SubmitResult, error)

	// ApplyActions resolves an explicit action mapping in one call.
	ApplyActions(ctx context.Context, userID, orderID string, actions domain.StagedActions) (*domain.SubmitResult, error)

	// RemoveOrder deletes an order and all of its line items.
	RemoveOrder(ctx context.Context, userID, orderID string) error

	// SetTriggerEnabled toggles one trigger for the user.
	SetTriggerEnabled(ctx context.Context, userID string, trigger domain.Trigger, enabled bool) (domain.TriggerFilter, error)
}

// InvoiceReviewSvcFacade combines all invoice review service interfaces
type InvoiceReviewSvcFacade interface {
	InvoiceReviewReaderSvc
	InvoiceReviewStagingSvc
	InvoiceReviewWriterSvc
}
