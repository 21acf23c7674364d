// Package service owns the authoritative task list and orchestrates the
// local store, the one-time remote import, and presenter notifications.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/avoskin/taskdeck/internal/dispatch"
	"github.com/avoskin/taskdeck/internal/remote"
	"github.com/avoskin/taskdeck/internal/store"
	"github.com/avoskin/taskdeck/internal/task"
)

// Presenter receives UI-affecting callbacks. All calls arrive on the
// service's delivery context, one at a time, in order.
type Presenter interface {
	// TasksLoaded replaces the presenter's full list.
	TasksLoaded(tasks []task.Task)
	// TaskUpdated replaces a single entry in place.
	TaskUpdated(t task.Task, index int)
	// RefreshRequested asks the presenter to re-read the filtered view.
	RefreshRequested()
}

// RemoteSource is the seed-list fetcher. A nil payload with a nil error
// means "nothing to import".
type RemoteSource interface {
	Fetch(ctx context.Context) ([]remote.Record, error)
}

// Service is the task store core. Construct with New, wire a Presenter,
// call LoadTasks once, then drive it through the mutation operations.
//
// Storage and network work runs on background goroutines; store and
// remote failures are logged and swallowed. The in-memory list is the
// source of truth for the session regardless of storage outcomes.
type Service struct {
	store     store.Store
	remote    RemoteSource
	presenter Presenter
	log       *log.Logger

	queue   *dispatch.Queue
	deliver func(func())
	spawn   func(func())
	now     func() time.Time

	// Editor prompt texts. Input equal to its prompt is treated as empty.
	titlePrompt string
	descPrompt  string

	mu       sync.Mutex
	tasks    []task.Task
	filtered []task.Task
}

// Option configures a Service.
type Option func(*Service)

// WithSynchronous runs background work and presenter delivery inline on
// the calling goroutine. For tests.
func WithSynchronous() Option {
	return func(s *Service) {
		s.spawn = func(fn func()) { fn() }
		s.deliver = func(fn func()) { fn() }
	}
}

// WithPlaceholders sets the editor prompt texts that SaveTask treats as
// empty input.
func WithPlaceholders(title, description string) Option {
	return func(s *Service) {
		s.titlePrompt = title
		s.descPrompt = description
	}
}

// WithClock overrides the creation timestamp source. For tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger for swallowed errors.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.log = logger
	}
}

// New creates a Service. remoteSource may be nil to disable the import
// fallback entirely.
func New(st store.Store, remoteSource RemoteSource, presenter Presenter, opts ...Option) *Service {
	s := &Service{
		store:     st,
		remote:    remoteSource,
		presenter: presenter,
		log:       log.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.deliver == nil {
		s.queue = dispatch.New()
		s.deliver = s.queue.Dispatch
		s.spawn = func(fn func()) { go fn() }
	}
	return s
}

// Close drains the delivery queue. Background work still in flight is
// not waited for; its store writes are fire-and-forget and its
// presenter deliveries are dropped.
func (s *Service) Close() {
	if s.queue != nil {
		s.queue.Close()
	}
}

// LoadTasks loads the authoritative list: from the store when it has
// anything, otherwise via a single remote fetch whose results are
// adopted, announced, and then persisted best-effort. Call once per
// Service; concurrent callers need external serialization.
func (s *Service) LoadTasks() {
	s.spawn(func() {
		ctx := context.Background()
		stored, err := s.store.FetchAll(ctx)
		if err != nil {
			// Treat an unreadable store as empty and fall through to
			// the import path.
			s.log.Error("fetch stored tasks", "err", err)
		}

		if len(stored) > 0 {
			s.notifyLoaded(s.adopt(stored))
			return
		}

		s.importSeed(ctx)
	})
}

// importSeed pulls the seed list from the remote, adopts it, and
// persists each task independently.
func (s *Service) importSeed(ctx context.Context) {
	if s.remote == nil {
		return
	}

	records, err := s.remote.Fetch(ctx)
	if err != nil {
		s.log.Error("import tasks", "err", err)
		return
	}
	if records == nil {
		// Nothing to show. Not an error.
		return
	}

	now := s.now()
	tasks := make([]task.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, task.Task{
			ID:          r.ID,
			Title:       task.PlaceholderTitle(r.ID),
			Description: r.Description,
			Completed:   r.Completed,
			CreatedAt:   now,
		})
	}

	s.notifyLoaded(s.adopt(tasks))

	for _, t := range tasks {
		if err := s.store.Insert(ctx, t); err != nil {
			s.log.Error("persist imported task", "id", t.ID, "err", err)
		}
	}
}

// ToggleCompletion flips the completion flag at index. The presenter is
// told before the store write completes; a failed write is logged and
// the in-memory flip stands.
func (s *Service) ToggleCompletion(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.tasks) {
		s.mu.Unlock()
		return
	}
	s.tasks[index].Completed = !s.tasks[index].Completed
	t := s.tasks[index]
	s.mu.Unlock()

	s.deliver(func() {
		if s.presenter != nil {
			s.presenter.TaskUpdated(t, index)
		}
	})
	s.spawn(func() {
		if err := s.store.Update(context.Background(), t); err != nil {
			s.log.Error("persist toggled task", "id", t.ID, "err", err)
		}
	})
}

// DeleteTask removes the entry at index, announces the reduced list,
// then deletes from the store in the background.
func (s *Service) DeleteTask(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.tasks) {
		s.mu.Unlock()
		return
	}
	id := s.tasks[index].ID
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	snapshot := make([]task.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.filtered = snapshot
	s.mu.Unlock()

	s.notifyLoaded(snapshot)
	s.spawn(func() {
		if err := s.store.DeleteByID(context.Background(), id); err != nil {
			s.log.Error("delete task", "id", id, "err", err)
		}
	})
}

// GetTask returns the task at index. The second return is false for an
// out-of-range index.
func (s *Service) GetTask(index int) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.tasks) {
		return task.Task{}, false
	}
	return s.tasks[index], true
}

// SaveTask persists a new or edited task in the background. Both inputs
// are trimmed; input equal to the configured prompt text counts as
// empty. An empty description makes the whole call a no-op. An empty
// title becomes the generated placeholder.
//
// For a new task (existing == nil) the task gets nextID, an unset
// completion flag, and the current time. For an edit, ID, completion
// state, and creation time carry over from existing. The in-memory list
// is not touched and no presenter notification is sent; callers reload.
func (s *Service) SaveTask(title, description string, existing *task.Task, nextID int) {
	title = s.normalize(title, s.titlePrompt)
	description = s.normalize(description, s.descPrompt)
	if description == "" {
		return
	}

	s.spawn(func() {
		ctx := context.Background()
		if existing == nil {
			t := task.Task{
				ID:          nextID,
				Title:       title,
				Description: description,
				CreatedAt:   s.now(),
			}
			if t.Title == "" {
				t.Title = task.PlaceholderTitle(nextID)
			}
			if err := s.store.Insert(ctx, t); err != nil {
				s.log.Error("save new task", "id", t.ID, "err", err)
			}
			return
		}

		t := task.Task{
			ID:          existing.ID,
			Title:       title,
			Description: description,
			Completed:   existing.Completed,
			CreatedAt:   existing.CreatedAt,
		}
		if t.Title == "" {
			t.Title = task.PlaceholderTitle(existing.ID)
		}
		if err := s.store.Update(ctx, t); err != nil {
			s.log.Error("save edited task", "id", t.ID, "err", err)
		}
	})
}

// Filter recomputes the visible subset from the authoritative list.
// The match is a case-sensitive substring test against title,
// description, and the formatted creation date. An empty query yields
// the full list. The presenter gets a bare refresh signal and re-reads
// through Visible.
func (s *Service) Filter(query string) {
	s.spawn(func() {
		s.mu.Lock()
		src := make([]task.Task, len(s.tasks))
		copy(src, s.tasks)
		s.mu.Unlock()

		var out []task.Task
		if query == "" {
			out = src
		} else {
			out = make([]task.Task, 0, len(src))
			for _, t := range src {
				if strings.Contains(t.Title, query) ||
					strings.Contains(t.Description, query) ||
					strings.Contains(task.FormatCreationDate(t.CreatedAt), query) {
					out = append(out, t)
				}
			}
		}

		s.mu.Lock()
		s.filtered = out
		s.mu.Unlock()

		s.deliver(func() {
			if s.presenter != nil {
				s.presenter.RefreshRequested()
			}
		})
	})
}

// Visible returns the current filtered view.
func (s *Service) Visible() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// Len returns the authoritative task count. Count labels always use
// this, never the filtered count.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// NextID returns the ID the next locally created task should get.
func (s *Service) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.NextID(s.tasks)
}

// adopt installs tasks as the authoritative list, resets the filtered
// view to match, and returns a detached copy safe to hand to the
// presenter. Later in-place toggles touch only s.tasks.
func (s *Service) adopt(tasks []task.Task) []task.Task {
	snapshot := make([]task.Task, len(tasks))
	copy(snapshot, tasks)
	s.mu.Lock()
	s.tasks = tasks
	s.filtered = snapshot
	s.mu.Unlock()
	return snapshot
}

func (s *Service) notifyLoaded(tasks []task.Task) {
	s.deliver(func() {
		if s.presenter != nil {
			s.presenter.TasksLoaded(tasks)
		}
	})
}

// normalize trims input and maps prompt text to empty.
func (s *Service) normalize(text, prompt string) string {
	text = strings.TrimSpace(text)
	if prompt != "" && text == prompt {
		return ""
	}
	return text
}
