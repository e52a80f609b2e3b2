package domain

// ResolveStagedActions applies a batch of staged actions to line items in one pass.
//
// The result has the same length and order as items. Cleared items are returned
// unchanged whatever is staged for them, items without a staged action are returned
// unchanged, and ids in staged that match no item are ignored. The input slice is
// not modified.
func ResolveStagedActions(items []LineItem, staged StagedActions) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = applyStagedAction(item, staged[item.LineItemID])
	}
	return out
}

func applyStagedAction(item LineItem, action StagedAction) LineItem {
	if item.Cleared {
		return item
	}
	switch action {
	case ActionInvoice:
		item.Invoiced = true
		item.Saved = false
	case ActionSave:
		item.Saved = true
		item.Invoiced = false
	case ActionRestore:
		item.Saved = false
		item.Invoiced = false
	case ActionDismiss:
		item.Cleared = true
		item.Saved = false
		item.Invoiced = false
	}
	return item
}

// ActionCounts tallies how many items each action changed in a resolution.
type ActionCounts map[StagedAction]int

// CountApplied reports, per action, how many staged entries targeted a
// non-cleared item of items. Entries for unknown or cleared items are not counted.
func CountApplied(items []LineItem, staged StagedActions) ActionCounts {
	counts := ActionCounts{}
	for _, item := range items {
		action, ok := staged[item.LineItemID]
		if !ok || action == "" || item.Cleared {
			continue
		}
		counts[action]++
	}
	return counts
}

// Total sums all counted actions.
func (c ActionCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}
