package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ziluri/internal/core/domain"
	"ziluri/pkg/test/factory"
)

func TestNewTodo_Defaults(t *testing.T) {
	item := factory.NewTodo[domain.TodoItem]()

	assert.Zero(t, item.ID)
	assert.Zero(t, item.GroupID)
	assert.False(t, item.Completed)
	assert.Equal(t, 1, item.RequiredCompletions)
	assert.Equal(t, 0, item.CurrentCompletions)
	assert.Equal(t, 0, item.Order)
}

func TestNewTodo_Overrides(t *testing.T) {
	item := factory.NewTodo[domain.TodoItem](map[string]any{
		"Content":             "deep work",
		"RequiredCompletions": 3,
	})

	assert.Equal(t, "deep work", item.Content)
	assert.Equal(t, 3, item.RequiredCompletions)
	assert.False(t, item.Completed)
}

func TestNewGroup_Defaults(t *testing.T) {
	group := factory.NewGroup[domain.TodoGroup](map[string]any{"Name": "inbox"})

	assert.Zero(t, group.ID)
	assert.Equal(t, "inbox", group.Name)
	assert.Equal(t, 0, group.Order)
}

func TestNewUser_Defaults(t *testing.T) {
	user := factory.NewUser[domain.User]()

	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 0, user.Exp)
	assert.Equal(t, 0, user.TotalCompleted)
	assert.Equal(t, 0, user.ContinuousDays)
}

func TestNewMemo_Defaults(t *testing.T) {
	memo := factory.NewMemo[domain.Memo](map[string]any{"Title": "note"})

	assert.Zero(t, memo.ID)
	assert.Equal(t, "note", memo.Title)
	assert.Equal(t, "#FFFFFF", memo.Color)
	assert.False(t, memo.Pinned)
}
