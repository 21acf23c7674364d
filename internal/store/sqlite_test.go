package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/avoskin/taskdeck/internal/task"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndFetchAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	tasks := []task.Task{
		{ID: 3, Title: "Task 3", Description: "first inserted", CreatedAt: now},
		{ID: 1, Title: "Task 1", Description: "second inserted", Completed: true, CreatedAt: now},
	}
	for _, tt := range tasks {
		if err := s.Insert(ctx, tt); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	got, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FetchAll count: got %d, want 2", len(got))
	}

	// Insertion order, not ID order.
	if got[0].ID != 3 || got[1].ID != 1 {
		t.Errorf("order: got ids [%d %d], want [3 1]", got[0].ID, got[1].ID)
	}
	if got[0].Description != "first inserted" {
		t.Errorf("description: got %q", got[0].Description)
	}
	if !got[1].Completed {
		t.Errorf("completed flag lost on round trip")
	}
	if !got[0].CreatedAt.Equal(now) {
		t.Errorf("created_at: got %v, want %v", got[0].CreatedAt, now)
	}
}

func TestUpdateExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	orig := task.Task{ID: 1, Title: "Task 1", Description: "before", CreatedAt: now}
	if err := s.Insert(ctx, orig); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	updated := orig
	updated.Description = "after"
	updated.Completed = true
	if err := s.Update(ctx, updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("count after update: got %d, want 1", len(got))
	}
	if got[0].Description != "after" || !got[0].Completed {
		t.Errorf("update not applied: %+v", got[0])
	}
	if !got[0].CreatedAt.Equal(now) {
		t.Errorf("update must not touch created_at: got %v, want %v", got[0].CreatedAt, now)
	}
}

func TestUpdateMissingInserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	missing := task.Task{ID: 9, Title: "Task 9", Description: "upserted", CreatedAt: time.Now().UTC()}
	if err := s.Update(ctx, missing); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != 9 {
		t.Fatalf("upsert: got %+v, want one task with id 9", got)
	}
}

func TestDeleteByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, id := range []int{1, 2, 3} {
		if err := s.Insert(ctx, task.Task{ID: id, Title: task.PlaceholderTitle(id), Description: "d", CreatedAt: now}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	if err := s.DeleteByID(ctx, 2); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	// Missing ID is not an error.
	if err := s.DeleteByID(ctx, 42); err != nil {
		t.Fatalf("DeleteByID on missing id: %v", err)
	}

	got, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("after delete: got %+v, want ids [1 3]", got)
	}
}

func TestFetchAllEmpty(t *testing.T) {
	s := openTestStore(t)

	got, err := s.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty store: got %d tasks", len(got))
	}
}
