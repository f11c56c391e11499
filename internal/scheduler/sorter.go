package scheduler

import (
	"sort"
	"time"
)

// priorityKey is the comparison tuple used to order competing items on a day.
type priorityKey struct {
	// BlocksExternal is set for items blocking someone else's open work.
	BlocksExternal bool
	DueDate        *time.Time
	ItemID         int
}

// lessPriority orders keys by the canonical rules:
// 1. Items blocking another user's work first
// 2. Due date: earliest first (nil last)
// 3. Item ID: ascending
func lessPriority(a, b priorityKey) bool {
	if a.BlocksExternal != b.BlocksExternal {
		return a.BlocksExternal
	}
	if (a.DueDate == nil) != (b.DueDate == nil) {
		return a.DueDate != nil
	}
	if a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
		return a.DueDate.Before(*b.DueDate)
	}
	return a.ItemID < b.ItemID
}

// CanonicalSort orders simulated items by priority. The sort is stable and
// the key is total, so equal inputs always yield the same order.
func CanonicalSort(items []*simItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return lessPriority(items[i].key, items[j].key)
	})
}
