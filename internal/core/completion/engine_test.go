package completion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ziluri/internal/core/completion"
	"ziluri/internal/core/domain"
)

func TestComplete_SingleRequirement(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	item := domain.TodoItem{RequiredCompletions: 1}

	updated, becameDone := completion.Complete(item, now)

	assert.True(t, becameDone)
	assert.True(t, updated.Completed)
	assert.Equal(t, 1, updated.CurrentCompletions)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, now, *updated.CompletedAt)
	assert.Equal(t, now, updated.UpdatedAt)
}

func TestComplete_PartialProgressGrantsNothing(t *testing.T) {
	now := time.Now()

	item := domain.TodoItem{RequiredCompletions: 3}

	item, becameDone := completion.Complete(item, now)
	assert.False(t, becameDone)
	assert.False(t, item.Completed)
	assert.Nil(t, item.CompletedAt)

	item, becameDone = completion.Complete(item, now)
	assert.False(t, becameDone)
	assert.Equal(t, 2, item.CurrentCompletions)

	item, becameDone = completion.Complete(item, now)
	assert.True(t, becameDone)
	assert.True(t, item.Completed)
	assert.Equal(t, 3, item.CurrentCompletions)
}

func TestComplete_AlreadyDoneDoesNotTransitionAgain(t *testing.T) {
	now := time.Now()

	item := domain.TodoItem{RequiredCompletions: 1}

	item, becameDone := completion.Complete(item, now)
	assert.True(t, becameDone)

	item, becameDone = completion.Complete(item, now)
	assert.False(t, becameDone)
	assert.True(t, item.Completed)
	assert.Equal(t, 2, item.CurrentCompletions)
}

func TestUncomplete_ClearsDoneState(t *testing.T) {
	now := time.Now()

	item := domain.TodoItem{RequiredCompletions: 2, CurrentCompletions: 2, Completed: true}
	completedAt := now.Add(-time.Hour)
	item.CompletedAt = &completedAt

	updated := completion.Uncomplete(item, now)

	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)
	assert.Equal(t, 1, updated.CurrentCompletions)
}

func TestUncomplete_CounterNeverGoesNegative(t *testing.T) {
	now := time.Now()

	item := domain.TodoItem{RequiredCompletions: 1, CurrentCompletions: 0}

	updated := completion.Uncomplete(item, now)
	updated = completion.Uncomplete(updated, now)

	assert.Equal(t, 0, updated.CurrentCompletions)
	assert.False(t, updated.Completed)
}

func TestCompleteUncomplete_RoundTrip(t *testing.T) {
	now := time.Now()

	item := domain.TodoItem{RequiredCompletions: 1}

	item, _ = completion.Complete(item, now)
	item = completion.Uncomplete(item, now)

	_, becameDone := completion.Complete(item, now)
	assert.True(t, becameDone)
}
