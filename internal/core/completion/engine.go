// Package completion is the state machine behind an item's progress
// counter. Items move between InProgress and Done only through Complete
// and Uncomplete; both return fresh values and never mutate their input.
package completion

import (
	"time"

	"ziluri/internal/core/domain"
)

// Complete advances the progress counter by one and reports whether the
// item transitioned into Done on this call. The caller awards experience
// only when becameDone is true; repeated partials below the threshold
// grant nothing.
func Complete(item domain.TodoItem, now time.Time) (domain.TodoItem, bool) {
	wasDone := item.CurrentCompletions >= item.RequiredCompletions

	item.CurrentCompletions++

	done := item.CurrentCompletions >= item.RequiredCompletions
	becameDone := done && !wasDone

	item.Completed = done
	if becameDone {
		completedAt := now
		item.CompletedAt = &completedAt
	}

	item.UpdatedAt = now

	return item, becameDone
}

// Uncomplete steps the counter back and unconditionally clears the Done
// flag and completion timestamp. Safe at the floor: the counter never goes
// below zero no matter how often it is called.
func Uncomplete(item domain.TodoItem, now time.Time) domain.TodoItem {
	item.CurrentCompletions--
	if item.CurrentCompletions < 0 {
		item.CurrentCompletions = 0
	}

	item.Completed = false
	item.CompletedAt = nil
	item.UpdatedAt = now

	return item
}
