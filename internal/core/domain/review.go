package domain

import "github.com/shopspring/decimal"

// ReviewGroup is one category section of an order's active review items.
type ReviewGroup struct {
	Category string          `json:"category"`
	Items    []LineItem      `json:"items"`
	NetDelta decimal.Decimal `json:"netDelta"`
}

// OrderReview is everything the invoice review page shows for one order.
type OrderReview struct {
	Order          Order           `json:"order"`
	Groups         []ReviewGroup   `json:"groups"`
	Saved          []LineItem      `json:"saved"`
	Invoiced       []LineItem      `json:"invoiced"`
	ActiveNetDelta decimal.Decimal `json:"activeNetDelta"`
	Staged         StagedActions   `json:"staged"`
	Triggers       TriggerFilter   `json:"triggers"`
}

// ReviewQueueEntry summarises an order in the review queue.
type ReviewQueueEntry struct {
	Order          Order           `json:"order"`
	ActiveCount    int             `json:"activeCount"`
	ActiveNetDelta decimal.Decimal `json:"activeNetDelta"`
}

// SubmitResult reports the outcome of resolving staged actions for an order.
type SubmitResult struct {
	OrderID   string       `json:"orderID"`
	Counts    ActionCounts `json:"counts"`
	Submitted int          `json:"submitted"`
	Staged    int          `json:"staged"`
	Items     []LineItem   `json:"items"`
}

// Session is the per-user view state shared across modules: the global search
// query, the order selected in invoice review, its staged actions and the
// user's trigger filter.
type Session struct {
	UserID          string        `json:"userID"`
	SearchQuery     string        `json:"searchQuery"`
	SelectedOrderID string        `json:"selectedOrderID"`
	Staged          StagedActions `json:"staged"`
	Triggers        TriggerFilter `json:"triggers"`
}

// NewSession returns an empty session with every trigger enabled.
func NewSession(userID string) Session {
	return Session{
		UserID:   userID,
		Staged:   StagedActions{},
		Triggers: DefaultTriggerFilter(),
	}
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (s Session) Clone() Session {
	s.Staged = s.Staged.Clone()
	s.Triggers = s.Triggers.Clone()
	return s
}

// SelectOrder switches the selected order. Changing to a different order
// discards any staged actions.
func (s *Session) SelectOrder(orderID string) {
	if s.SelectedOrderID != orderID {
		s.Staged = StagedActions{}
	}
	s.SelectedOrderID = orderID
}
