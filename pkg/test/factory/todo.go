package factory

import (
	fab "github.com/Goldziher/fabricator"
)

// NewTodo builds a todo item ready for insertion: not completed, single
// required completion. The caller picks group and date on the built value.
func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	customData = withDefaults(customData, map[string]any{
		"ID":                  int64(0),
		"GroupID":             int64(0),
		"Completed":           false,
		"Priority":            1,
		"RequiredCompletions": 1,
		"CurrentCompletions":  0,
		"Order":               0,
	})

	return instance.Build(customData...)
}
