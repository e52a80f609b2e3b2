package dto

import (
	"fmt"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StageActionRequest stages one action for a line item.
type StageActionRequest struct {
	Action string `json:"action" binding:"required,oneof=invoice save dismiss restore"`
}

// ApplyActionsRequest carries a full lineItemID -> action mapping.
type ApplyActionsRequest struct {
	Actions map[string]string `json:"actions" binding:"required"`
}

// SetTriggerRequest toggles one review trigger.
type SetTriggerRequest struct {
	Trigger string `json:"trigger" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

// TriggerStateResponse is one row of the trigger toggle list.
type TriggerStateResponse struct {
	Trigger domain.Trigger `json:"trigger"`
	Enabled bool           `json:"enabled"`
}

// ToTriggerStateResponses lists triggers in their canonical order.
func ToTriggerStateResponses(f domain.TriggerFilter) []TriggerStateResponse {
	res := make([]TriggerStateResponse, len(domain.Triggers))
	for i, t := range domain.Triggers {
		res[i] = TriggerStateResponse{Trigger: t, Enabled: f.Allows(string(t))}
	}
	return res
}

// StagedActionsResponse returns the current staging area of an order.
type StagedActionsResponse struct {
	OrderID string               `json:"orderID"`
	Staged  domain.StagedActions `json:"staged"`
	Count   int                  `json:"count"`
}

// SubmitResultResponse reports the outcome of a submit or apply call.
type SubmitResultResponse struct {
	OrderID   string                      `json:"orderID"`
	Counts    map[domain.StagedAction]int `json:"counts"`
	Submitted int                         `json:"submitted"`
	Staged    int                         `json:"staged"`
	Message   string                      `json:"message"`
	Items     []domain.LineItem           `json:"items"`
}

// ToSubmitResultResponse converts a domain.SubmitResult, rendering the "N of M submitted" message.
func ToSubmitResultResponse(r *domain.SubmitResult) SubmitResultResponse {
	counts := make(map[domain.StagedAction]int, len(r.Counts))
	for k, v := range r.Counts {
		counts[k] = v
	}
	return SubmitResultResponse{
		OrderID:   r.OrderID,
		Counts:    counts,
		Submitted: r.Submitted,
		Staged:    r.Staged,
		Message:   submittedMessage(r.Submitted, r.Staged),
		Items:     r.Items,
	}
}

func submittedMessage(submitted, staged int) string {
	return fmt.Sprintf("%d of %d submitted", submitted, staged)
}

// ReviewQueueEntryResponse is one row of the invoice review queue.
type ReviewQueueEntryResponse struct {
	Order          OrderResponse   `json:"order"`
	ActiveCount    int             `json:"activeCount"`
	ActiveNetDelta decimal.Decimal `json:"activeNetDelta"`
}

// ToReviewQueueResponse converts queue entries to DTOs.
func ToReviewQueueResponse(entries []domain.ReviewQueueEntry) []ReviewQueueEntryResponse {
	res := make([]ReviewQueueEntryResponse, len(entries))
	for i := range entries {
		res[i] = ReviewQueueEntryResponse{
			Order:          ToOrderResponse(&entries[i].Order),
			ActiveCount:    entries[i].ActiveCount,
			ActiveNetDelta: entries[i].ActiveNetDelta,
		}
	}
	return res
}

// OrderReviewResponse is the invoice review view of one order.
type OrderReviewResponse struct {
	Order          OrderResponse          `json:"order"`
	Groups         []domain.ReviewGroup   `json:"groups"`
	Saved          []domain.LineItem      `json:"saved"`
	Invoiced       []domain.LineItem      `json:"invoiced"`
	ActiveNetDelta decimal.Decimal        `json:"activeNetDelta"`
	Staged         domain.StagedActions   `json:"staged"`
	Triggers       []TriggerStateResponse `json:"triggers"`
}

// ToOrderReviewResponse converts a domain.OrderReview to its DTO.
func ToOrderReviewResponse(r *domain.OrderReview) OrderReviewResponse {
	staged := r.Staged
	if staged == nil {
		staged = domain.StagedActions{}
	}
	return OrderReviewResponse{
		Order:          ToOrderResponse(&r.Order),
		Groups:         r.Groups,
		Saved:          r.Saved,
		Invoiced:       r.Invoiced,
		ActiveNetDelta: r.ActiveNetDelta,
		Staged:         staged,
		Triggers:       ToTriggerStateResponses(r.Triggers),
	}
}

// ParseStagedActions converts a raw request mapping, rejecting unknown actions.
func ParseStagedActions(raw map[string]string) (domain.StagedActions, error) {
	out := make(domain.StagedActions, len(raw))
	for id, a := range raw {
		action, err := domain.ParseStagedAction(a)
		if err != nil {
			return nil, err
		}
		out[id] = action
	}
	return out, nil
}
