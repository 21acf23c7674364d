package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avoskin/taskdeck/internal/task"
)

type tasksLoadedMsg []task.Task

type taskUpdatedMsg struct {
	task  task.Task
	index int
}

type refreshMsg struct{}

// Presenter forwards service callbacks into the running tea program.
// The program's event loop is the delivery context the rest of the UI
// code runs on.
type Presenter struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewPresenter creates a detached presenter. Callbacks arriving before
// Attach are dropped; the model reloads state when it starts anyway.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Attach connects the presenter to the program it should feed.
func (p *Presenter) Attach(program *tea.Program) {
	p.mu.Lock()
	p.program = program
	p.mu.Unlock()
}

func (p *Presenter) send(msg tea.Msg) {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()
	if program != nil {
		program.Send(msg)
	}
}

// TasksLoaded implements service.Presenter.
func (p *Presenter) TasksLoaded(tasks []task.Task) {
	p.send(tasksLoadedMsg(tasks))
}

// TaskUpdated implements service.Presenter.
func (p *Presenter) TaskUpdated(t task.Task, index int) {
	p.send(taskUpdatedMsg{task: t, index: index})
}

// RefreshRequested implements service.Presenter.
func (p *Presenter) RefreshRequested() {
	p.send(refreshMsg{})
}
