package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
)

// Trigger is a named category of ledger event that can be switched on or off
// for the invoice review queue.
type Trigger string

const (
	TriggerPriceChange    Trigger = "Price change"
	TriggerQuantityChange Trigger = "Quantity change"
	TriggerDeletedItem    Trigger = "Deleted item"
	TriggerAddedItem      Trigger = "Added item"
	TriggerRejectedItem   Trigger = "Rejected item"
	TriggerSubstitution   Trigger = "Substitution"
	TriggerFeeAdjustment  Trigger = "Fee adjustment"
)

// Triggers is the fixed, ordered set of known triggers.
var Triggers = []Trigger{
	TriggerPriceChange,
	TriggerQuantityChange,
	TriggerDeletedItem,
	TriggerAddedItem,
	TriggerRejectedItem,
	TriggerSubstitution,
	TriggerFeeAdjustment,
}

// ParseTrigger matches raw input against the known triggers, ignoring case.
func ParseTrigger(raw string) (Trigger, error) {
	for _, t := range Triggers {
		if strings.EqualFold(string(t), strings.TrimSpace(raw)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown trigger %q", apperrors.ErrValidation, raw)
}

// TriggerFilter records which triggers are enabled. Triggers missing from the
// map count as enabled.
type TriggerFilter map[Trigger]bool

// DefaultTriggerFilter returns a filter with every trigger enabled.
func DefaultTriggerFilter() TriggerFilter {
	f := make(TriggerFilter, len(Triggers))
	for _, t := range Triggers {
		f[t] = true
	}
	return f
}

// Clone returns an independent copy of the filter.
func (f TriggerFilter) Clone() TriggerFilter {
	out := make(TriggerFilter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Allows reports whether an item of the given category passes the filter.
// A category that matches no known trigger always passes.
func (f TriggerFilter) Allows(category string) bool {
	for _, t := range Triggers {
		if strings.EqualFold(string(t), strings.TrimSpace(category)) {
			enabled, ok := f[t]
			return !ok || enabled
		}
	}
	return true
}

// ActiveItems returns the items that are neither cleared, saved nor invoiced and
// whose category passes the trigger filter. Order is preserved.
func ActiveItems(items []LineItem, filter TriggerFilter) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.IsActive() && filter.Allows(item.Category) {
			out = append(out, item)
		}
	}
	return out
}

// ItemsInBucket returns the items whose derived bucket equals b, preserving order.
func ItemsInBucket(items []LineItem, b Bucket) []LineItem {
	out := make([]LineItem, 0)
	for _, item := range items {
		if item.Bucket() == b {
			out = append(out, item)
		}
	}
	return out
}

// CategoryGroup is a run of items sharing a category label.
type CategoryGroup struct {
	Category string
	Items    []LineItem
}

// GroupByCategory groups items by category, preserving the order in which each
// category was first seen and the relative order of items inside a group.
func GroupByCategory(items []LineItem) []CategoryGroup {
	index := make(map[string]int)
	groups := make([]CategoryGroup, 0)
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, CategoryGroup{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
