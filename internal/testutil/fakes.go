// Package testutil provides in-memory fakes for service tests.
package testutil

import (
	"context"
	"sync"

	"github.com/avoskin/taskdeck/internal/remote"
	"github.com/avoskin/taskdeck/internal/task"
)

// FakeStore is an in-memory store.Store with per-method error injection.
type FakeStore struct {
	mu    sync.Mutex
	tasks []task.Task

	// Error injection for testing
	FetchAllErr   error
	InsertErr     error
	UpdateErr     error
	DeleteByIDErr error

	// Call counters
	InsertCalls int
	UpdateCalls int
	DeleteCalls []int // ids passed to DeleteByID
}

// NewFakeStore creates a FakeStore seeded with the given tasks.
func NewFakeStore(seed ...task.Task) *FakeStore {
	return &FakeStore{tasks: append([]task.Task(nil), seed...)}
}

// FetchAll implements store.Store.
func (f *FakeStore) FetchAll(ctx context.Context) ([]task.Task, error) {
	if f.FetchAllErr != nil {
		return nil, f.FetchAllErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// Insert implements store.Store.
func (f *FakeStore) Insert(ctx context.Context, t task.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InsertCalls++
	if f.InsertErr != nil {
		return f.InsertErr
	}
	f.tasks = append(f.tasks, t)
	return nil
}

// Update implements store.Store with upsert semantics.
func (f *FakeStore) Update(ctx context.Context, t task.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID {
			// Creation time is immutable in the real store as well.
			t.CreatedAt = f.tasks[i].CreatedAt
			f.tasks[i] = t
			return nil
		}
	}
	f.tasks = append(f.tasks, t)
	return nil
}

// DeleteByID implements store.Store.
func (f *FakeStore) DeleteByID(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls = append(f.DeleteCalls, id)
	if f.DeleteByIDErr != nil {
		return f.DeleteByIDErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// Close implements store.Store.
func (f *FakeStore) Close() error { return nil }

// Tasks returns a snapshot of the stored tasks.
func (f *FakeStore) Tasks() []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// FakeRemote is a canned service.RemoteSource.
type FakeRemote struct {
	Records []remote.Record
	Err     error

	mu         sync.Mutex
	FetchCalls int
}

// Fetch implements service.RemoteSource.
func (f *FakeRemote) Fetch(ctx context.Context) ([]remote.Record, error) {
	f.mu.Lock()
	f.FetchCalls++
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Records, nil
}

// Calls returns how many times Fetch ran.
func (f *FakeRemote) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.FetchCalls
}

// LoadedEvent records one TasksLoaded callback.
type LoadedEvent struct {
	Tasks []task.Task
}

// UpdatedEvent records one TaskUpdated callback.
type UpdatedEvent struct {
	Task  task.Task
	Index int
}

// RecordingPresenter records every callback it receives.
type RecordingPresenter struct {
	mu        sync.Mutex
	Loaded    []LoadedEvent
	Updated   []UpdatedEvent
	Refreshes int
}

// TasksLoaded implements service.Presenter.
func (p *RecordingPresenter) TasksLoaded(tasks []task.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	snapshot := make([]task.Task, len(tasks))
	copy(snapshot, tasks)
	p.Loaded = append(p.Loaded, LoadedEvent{Tasks: snapshot})
}

// TaskUpdated implements service.Presenter.
func (p *RecordingPresenter) TaskUpdated(t task.Task, index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Updated = append(p.Updated, UpdatedEvent{Task: t, Index: index})
}

// RefreshRequested implements service.Presenter.
func (p *RecordingPresenter) RefreshRequested() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Refreshes++
}

// Counts returns the number of each recorded callback kind.
func (p *RecordingPresenter) Counts() (loaded, updated, refreshes int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Loaded), len(p.Updated), p.Refreshes
}

// LastLoaded returns the most recent TasksLoaded payload, or nil.
func (p *RecordingPresenter) LastLoaded() []task.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Loaded) == 0 {
		return nil
	}
	return p.Loaded[len(p.Loaded)-1].Tasks
}
