// Package ui provides the terminal interface for taskdeck.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avoskin/taskdeck/internal/service"
	"github.com/avoskin/taskdeck/internal/task"
)

// Editor prompt texts. The service treats input equal to these as empty,
// so they are never persisted as real content.
const (
	TitlePrompt       = "Title"
	DescriptionPrompt = "Description"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	countStyle     = lipgloss.NewStyle().Faint(true)
	cursorStyle    = lipgloss.NewStyle().Bold(true)
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	dateStyle      = lipgloss.NewStyle().Faint(true)
	promptStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

// Run starts the TUI over the given service. It blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, svc *service.Service, presenter *Presenter) error {
	model := newModel(svc)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	presenter.Attach(program)

	_, err := program.Run()
	return err
}

type mode int

const (
	modeList mode = iota
	modeSearch
	modeEdit
)

type editorState struct {
	title       string
	description string
	field       int // 0 = title, 1 = description
	existing    *task.Task
	nextID      int
}

type model struct {
	svc *service.Service

	mode    mode
	visible []task.Task
	total   int
	cursor  int
	query   string
	editor  editorState
	loaded  bool
}

func newModel(svc *service.Service) *model {
	return &model{svc: svc}
}

func (m *model) Init() tea.Cmd {
	return func() tea.Msg {
		m.svc.LoadTasks()
		return nil
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.loaded = true
		m.visible = msg
		m.total = m.svc.Len()
		m.clampCursor()
		return m, nil

	case taskUpdatedMsg:
		// The index is into the authoritative list; the visible list
		// may be filtered, so match the row by ID.
		for i := range m.visible {
			if m.visible[i].ID == msg.task.ID {
				m.visible[i] = msg.task
				break
			}
		}
		return m, nil

	case refreshMsg:
		m.visible = m.svc.Visible()
		m.total = m.svc.Len()
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case " ":
		if i, ok := m.authoritativeIndex(m.cursor); ok {
			m.svc.ToggleCompletion(i)
		}
	case "d", "backspace":
		if i, ok := m.authoritativeIndex(m.cursor); ok {
			m.svc.DeleteTask(i)
		}
	case "n":
		m.editor = editorState{nextID: m.svc.NextID()}
		m.mode = modeEdit
	case "enter", "e":
		if i, ok := m.authoritativeIndex(m.cursor); ok {
			if t, found := m.svc.GetTask(i); found {
				existing := t
				m.editor = editorState{
					title:       t.Title,
					description: t.Description,
					existing:    &existing,
					nextID:      m.svc.NextID(),
				}
				m.mode = modeEdit
			}
		}
	case "/":
		m.mode = modeSearch
	case "r":
		m.svc.LoadTasks()
	}
	return m, nil
}

func (m *model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeList
		m.query = ""
		m.svc.Filter("")
	case "enter":
		m.mode = modeList
	case "backspace":
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
			m.svc.Filter(m.query)
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
			m.svc.Filter(m.query)
		}
	}
	return m, nil
}

func (m *model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := &m.editor.title
	if m.editor.field == 1 {
		field = &m.editor.description
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeList
	case "tab", "shift+tab":
		m.editor.field = 1 - m.editor.field
	case "enter":
		m.svc.SaveTask(m.editor.title, m.editor.description, m.editor.existing, m.editor.nextID)
		m.mode = modeList
		// The service does not announce saves; re-read the store.
		m.svc.LoadTasks()
	case "backspace":
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			*field += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			*field += " "
		}
	}
	return m, nil
}

// authoritativeIndex maps a row in the visible (possibly filtered) list
// to the task's index in the authoritative list. Mutations always take
// authoritative indexes.
func (m *model) authoritativeIndex(row int) (int, bool) {
	if row < 0 || row >= len(m.visible) {
		return 0, false
	}
	id := m.visible[row].ID
	for i := 0; i < m.svc.Len(); i++ {
		if t, ok := m.svc.GetTask(i); ok && t.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (m *model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("  ")
	b.WriteString(countStyle.Render(task.CountLabel(m.total)))
	b.WriteString("\n\n")

	if m.mode == modeEdit {
		m.viewEditor(&b)
		return b.String()
	}

	if m.mode == modeSearch || m.query != "" {
		b.WriteString(fmt.Sprintf("Search: %s", m.query))
		if m.mode == modeSearch {
			b.WriteString("▌")
		}
		b.WriteString("\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString("Loading...\n")
	case len(m.visible) == 0 && m.query != "":
		b.WriteString("No matching tasks.\n")
	case len(m.visible) == 0:
		b.WriteString("No tasks yet. Press n to add one.\n")
	default:
		for i, t := range m.visible {
			b.WriteString(m.renderRow(i, t))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space toggle · enter edit · n new · d delete · / search · r reload · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *model) renderRow(i int, t task.Task) string {
	marker := "  "
	if i == m.cursor && m.mode != modeSearch {
		marker = cursorStyle.Render("> ")
	}

	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	title := t.Title
	if t.Completed {
		title = completedStyle.Render(title)
	}

	line := fmt.Sprintf("%s%s %s %s", marker, box, title,
		dateStyle.Render(task.FormatCreationDate(t.CreatedAt)))
	if t.Description != "" {
		line += "\n      " + countStyle.Render(t.Description)
	}
	return line
}

func (m *model) viewEditor(b *strings.Builder) {
	header := "New task"
	if m.editor.existing != nil {
		header = fmt.Sprintf("Edit task %d", m.editor.existing.ID)
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(m.renderField(0, TitlePrompt, m.editor.title))
	b.WriteString("\n")
	b.WriteString(m.renderField(1, DescriptionPrompt, m.editor.description))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab switch field · enter save · esc cancel"))
	b.WriteString("\n")

	if m.editor.existing == nil {
		return
	}
	b.WriteString("\n")
	b.WriteString(dateStyle.Render("Created " + task.FormatCreationDate(m.editor.existing.CreatedAt)))
	b.WriteString("\n")
}

func (m *model) renderField(field int, prompt, value string) string {
	marker := "  "
	if m.editor.field == field {
		marker = cursorStyle.Render("> ")
	}
	if value == "" {
		return marker + promptStyle.Render(prompt)
	}
	return marker + value
}
