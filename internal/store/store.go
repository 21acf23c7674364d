// Package store persists tasks in a local SQLite database.
package store

import (
	"context"

	"github.com/avoskin/taskdeck/internal/task"
)

// Store is the durable record store for tasks, keyed by task ID.
// The service calls it from background goroutines; implementations only
// need to be safe for that single-caller-at-a-time pattern.
type Store interface {
	// FetchAll returns every stored task in insertion order.
	FetchAll(ctx context.Context) ([]task.Task, error)

	// Insert adds a new task.
	Insert(ctx context.Context, t task.Task) error

	// Update replaces the stored task with the same ID.
	// If no such task exists it inserts instead (upsert).
	Update(ctx context.Context, t task.Task) error

	// DeleteByID removes the task with the given ID.
	// Deleting a missing ID is not an error.
	DeleteByID(ctx context.Context, id int) error

	// Close releases the underlying database handle.
	Close() error
}
