// Package task defines the task entity and its display helpers.
package task

import (
	"fmt"
	"time"
)

// Task represents a single to-do item.
// ID and CreatedAt are fixed at creation; Completed is the only field
// that changes over a task's lifetime outside of an explicit edit.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlaceholderTitle returns the generated title used when a task is
// created or imported without one.
func PlaceholderTitle(id int) string {
	return fmt.Sprintf("Task %d", id)
}

// creationDateLayout renders dates as dd/mm/yy.
const creationDateLayout = "02/01/06"

// FormatCreationDate formats a creation timestamp for display and for
// substring search. Search matches against exactly this representation.
func FormatCreationDate(t time.Time) string {
	return t.Format(creationDateLayout)
}

// NextID returns the next free ID for a locally created task:
// max(existing ids) + 1, or 1 for an empty list.
func NextID(tasks []Task) int {
	max := 0
	for i := range tasks {
		if tasks[i].ID > max {
			max = tasks[i].ID
		}
	}
	return max + 1
}
