// Package menu implements the interactive numbered task menu.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/output"
	"todo/internal/service"
)

// Title is shown above the menu.
const Title = "To-Do List"

// invalidChoice is shown for keys that are not a menu entry.
const invalidChoice = "Invalid input. Please enter a number between 1 and 5."

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	doneStyle   = lipgloss.NewStyle().Faint(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

type mode int

const (
	modeChoose mode = iota
	modeAdd
	modeDelete
	modeComplete
)

// Model is the bubbletea model for the menu.
type Model struct {
	ctx   context.Context
	svc   service.Service
	keys  KeyMap
	mode  mode
	input textinput.Model

	tasks     []service.Task
	showTasks bool

	// skipSubmit swallows the line end typed right after a menu choice.
	skipSubmit bool

	status   string
	statusOK bool
	quitting bool
}

// New creates a menu model over svc.
func New(ctx context.Context, svc service.Service) *Model {
	ti := textinput.New()
	ti.Prompt = "> "

	return &Model{
		ctx:   ctx,
		svc:   svc,
		keys:  DefaultKeyMap,
		input: ti,
	}
}

// Run runs the menu until the user exits or ctx is cancelled.
func Run(ctx context.Context, svc service.Service, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(New(ctx, svc),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run menu: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == modeChoose {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.mode == modeChoose {
		return m.updateChoose(keyMsg)
	}
	return m.updatePrompt(keyMsg)
}

func (m *Model) updateChoose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		return m, m.startPrompt(modeAdd, "Enter task description")
	case key.Matches(msg, m.keys.View):
		m.refresh()
		m.showTasks = true
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		return m, m.startPrompt(modeDelete, "Enter task ID to delete")
	case key.Matches(msg, m.keys.Complete):
		return m, m.startPrompt(modeComplete, "Enter task ID to mark as completed")
	case key.Matches(msg, m.keys.Exit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m, nil
	default:
		m.setError(invalidChoice)
		return m, nil
	}
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.endPrompt()
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.Submit) && m.skipSubmit && m.input.Value() == "":
		m.skipSubmit = false
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		value := m.input.Value()
		current := m.mode
		m.endPrompt()
		m.submit(current, value)
		return m, nil
	}

	m.skipSubmit = false
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startPrompt(md mode, placeholder string) tea.Cmd {
	m.mode = md
	m.skipSubmit = true
	m.status = ""
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *Model) endPrompt() {
	m.mode = modeChoose
	m.skipSubmit = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) submit(md mode, value string) {
	switch md {
	case modeAdd:
		if err := service.ValidateDescription(value); err != nil {
			m.setError(err.Error())
			return
		}
		task, err := m.svc.CreateTask(m.ctx, value)
		if err != nil {
			m.setError(fmt.Sprintf("Error saving task: %v", err))
			return
		}
		m.setOK(fmt.Sprintf("Added task %d.", task.ID))

	case modeDelete, modeComplete:
		id, ok := parseID(value)
		if !ok {
			m.setError(fmt.Sprintf("Invalid task ID: %q", strings.TrimSpace(value)))
			return
		}
		var err error
		verb := "Deleted"
		if md == modeDelete {
			err = m.svc.DeleteTask(m.ctx, id)
		} else {
			verb = "Completed"
			err = m.svc.CompleteTask(m.ctx, id)
		}
		switch {
		case errors.Is(err, service.ErrNotFound):
			m.setError("Task ID not found.")
			return
		case err != nil:
			m.setError(fmt.Sprintf("Error saving task: %v", err))
			return
		}
		m.setOK(fmt.Sprintf("%s task %d.", verb, id))
	}

	if m.showTasks {
		m.refresh()
	}
}

func (m *Model) refresh() {
	tasks, err := m.svc.ListTasks(m.ctx)
	if err != nil {
		m.setError(fmt.Sprintf("Error loading tasks: %v", err))
		return
	}
	m.tasks = tasks
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusOK = false
}

func (m *Model) setOK(s string) {
	m.status = s
	m.statusOK = true
}

func parseID(s string) (int, bool) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return "Exiting application...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(Title))
	b.WriteString("\n")
	for i, entry := range m.keys.menuEntries() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, capitalize(entry.Help().Desc))
	}

	if m.showTasks {
		b.WriteString("\n")
		if len(m.tasks) == 0 {
			b.WriteString("no tasks found\n")
		}
		for _, task := range m.tasks {
			line := output.TaskLine(task)
			if task.Completed {
				line = doneStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.mode != modeChoose {
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(m.input.Placeholder + ":"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusOK {
			b.WriteString(okStyle.Render(m.status))
		} else {
			b.WriteString(errorStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
