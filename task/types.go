// Package task implements a single-user task list backed by one durable
// storage slot.
//
// A Store owns the ordered task collection. Every mutation rewrites the whole
// collection to the slot before it returns, so the slot always mirrors memory.
//
// The public API mirrors the front ends:
//   - Create, Update, ToggleComplete, Delete for mutation
//   - List, Get, CountIncomplete, CountCompleted for querying
package task

// Task is a single to-do item.
type Task struct {
	// ID is assigned at creation and never changes.
	ID int64 `json:"id"`

	// Title is the short text shown in lists.
	Title string `json:"title"`

	// Content holds optional detail text.
	Content string `json:"content"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed"`
}

// DefaultSlotName is the name of the storage slot holding the task list.
const DefaultSlotName = "tasks"

func countCompleted(tasks []Task, completed bool) int {
	count := 0
	for _, t := range tasks {
		if t.Completed == completed {
			count++
		}
	}
	return count
}
