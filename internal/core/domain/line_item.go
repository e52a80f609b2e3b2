package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LineItem is one billable or adjustable ledger event tied to an order.
// Cleared is a soft delete: once set, the item never returns to any active view.
type LineItem struct {
	LineItemID string          `json:"lineItemID"` // Unique within its parent order
	OrderID    string          `json:"orderID"`
	Category   string          `json:"category"` // Free text, e.g. "Price change"
	Delta      decimal.Decimal `json:"delta"`    // Signed amount
	Cleared    bool            `json:"cleared"`
	Saved      bool            `json:"saved"`
	Invoiced   bool            `json:"invoiced"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// Bucket identifies which review tab a line item belongs to.
type Bucket string

const (
	BucketActive   Bucket = "active"
	BucketSaved    Bucket = "saved"
	BucketInvoiced Bucket = "invoiced"
	BucketCleared  Bucket = "cleared"
)

// Bucket derives the review bucket from the item's flags.
// Cleared wins over everything, then invoiced, then saved.
func (li LineItem) Bucket() Bucket {
	switch {
	case li.Cleared:
		return BucketCleared
	case li.Invoiced:
		return BucketInvoiced
	case li.Saved:
		return BucketSaved
	default:
		return BucketActive
	}
}

// IsActive reports whether the item is in the default review bucket.
func (li LineItem) IsActive() bool {
	return !li.Cleared && !li.Saved && !li.Invoiced
}

// StagedAction is a pending, not yet committed disposition for a line item.
type StagedAction string

const (
	ActionInvoice StagedAction = "invoice"
	ActionSave    StagedAction = "save"
	ActionDismiss StagedAction = "dismiss"
	ActionRestore StagedAction = "restore"
)

// AllStagedActions lists every staged action in display order.
var AllStagedActions = []StagedAction{ActionInvoice, ActionSave, ActionDismiss, ActionRestore}

// ParseStagedAction converts raw input into a StagedAction.
func ParseStagedAction(raw string) (StagedAction, error) {
	for _, a := range AllStagedActions {
		if string(a) == raw {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown staged action %q", apperrors.ErrValidation, raw)
}

// StagedActions maps a line item id to at most one pending action.
// An empty action value is treated the same as an absent key.
type StagedActions map[string]StagedAction

// Clone returns an independent copy of the mapping.
func (s StagedActions) Clone() StagedActions {
	out := make(StagedActions, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
