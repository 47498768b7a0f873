// Package ui provides the interactive terminal task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/category"
	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/theme"
	"taskpad/internal/todo"
)

// Run starts the interactive UI on in/out and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, svc service.Service, in io.Reader, out io.Writer) error {
	if !IsTTY(out) {
		return fmt.Errorf("tui requires a TTY")
	}

	m := New(ctx, svc, out)
	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// pending is an action waiting for a y/n answer.
type pending int

const (
	pendingNone pending = iota
	pendingDelete
	pendingClear
)

// Model is the bubbletea model. Every change goes through the service and
// is followed by a reload, so the screen always shows what was saved.
type Model struct {
	ctx      context.Context
	svc      service.Service
	renderer *lipgloss.Renderer
	styles   styles

	todos  []todo.Todo
	cats   []category.Category
	theme  theme.Theme
	filter int // 0 shows everything, i shows cats[i-1]
	cursor int // index into visible()

	confirm pending
	status  string
	err     error
}

type styles struct {
	title    lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	muted    lipgloss.Style
	errText  lipgloss.Style
}

// New returns a Model with the current data loaded. Styles are rendered
// for out.
func New(ctx context.Context, svc service.Service, out io.Writer) *Model {
	m := &Model{
		ctx:      ctx,
		svc:      svc,
		renderer: lipgloss.NewRenderer(out),
		theme:    theme.Default,
	}
	m.reload()
	m.applyTheme()
	return m
}

func (m *Model) applyTheme() {
	r := m.renderer
	colors := m.theme.Colors()
	m.styles = styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Foreground)).
			Background(lipgloss.Color(colors.Background)),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Background)),
		done:     r.NewStyle().Strikethrough(true).Faint(true),
		muted:    r.NewStyle().Faint(true),
		errText:  r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}

// reload fetches todos, categories and theme from the service.
func (m *Model) reload() {
	todos, err := m.svc.Todos(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	cats, err := m.svc.Categories(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	th, err := m.svc.Theme(m.ctx)
	if err != nil {
		m.err = err
		return
	}

	m.todos = todos
	m.cats = cats
	if th != m.theme {
		m.theme = th
		m.applyTheme()
	}
	if m.filter > len(m.cats) {
		m.filter = 0
	}
	m.clampCursor()
}

// filterName returns the active category name, or "" for all tasks.
func (m *Model) filterName() string {
	if m.filter == 0 || m.filter > len(m.cats) {
		return ""
	}
	return m.cats[m.filter-1].Name
}

// visible returns indexes into m.todos that pass the filter.
func (m *Model) visible() []int {
	name := m.filterName()
	idx := make([]int, 0, len(m.todos))
	for i, t := range m.todos {
		if name == "" || t.Category == name {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the todo under the cursor.
func (m *Model) selected() (todo.Todo, bool) {
	vis := m.visible()
	if len(vis) == 0 {
		return todo.Todo{}, false
	}
	return m.todos[vis[m.cursor]], true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.confirm != pendingNone {
		m.answer(key.String())
		return m, nil
	}

	m.status = ""
	m.err = nil

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "space", "enter":
		m.toggle()
	case "d":
		if _, ok := m.selected(); ok {
			m.confirm = pendingDelete
		}
	case "D":
		if len(m.visible()) > 0 {
			m.confirm = pendingClear
		}
	case "tab":
		m.filter = (m.filter + 1) % (len(m.cats) + 1)
		m.cursor = 0
	case "shift+tab":
		m.filter = (m.filter + len(m.cats)) % (len(m.cats) + 1)
		m.cursor = 0
	case "t":
		m.cycleTheme()
	case "r":
		m.reload()
	}
	return m, nil
}

// answer resolves a pending confirmation. Only "y" confirms.
func (m *Model) answer(key string) {
	action := m.confirm
	m.confirm = pendingNone
	if key != "y" && key != "Y" {
		m.status = "cancelled"
		return
	}

	switch action {
	case pendingDelete:
		t, ok := m.selected()
		if !ok {
			return
		}
		if err := m.svc.RemoveTodo(m.ctx, t.ID); err != nil {
			m.err = err
			return
		}
		m.status = "deleted"
	case pendingClear:
		var (
			n   int
			err error
		)
		if name := m.filterName(); name != "" {
			n, err = m.svc.RemoveTodosByCategory(m.ctx, name)
		} else {
			n, err = m.svc.RemoveAllTodos(m.ctx)
		}
		if err != nil {
			m.err = err
			return
		}
		m.status = fmt.Sprintf("removed %d tasks", n)
	}
	m.reload()
}

func (m *Model) toggle() {
	t, ok := m.selected()
	if !ok {
		return
	}
	if err := m.svc.ToggleTodo(m.ctx, t.ID); err != nil {
		m.err = err
		return
	}
	m.reload()
}

func (m *Model) cycleTheme() {
	next := m.theme.Next()
	if err := m.svc.SetTheme(m.ctx, next); err != nil {
		m.err = err
		return
	}
	m.reload()
	m.status = "theme: " + string(m.theme)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	filter := "All"
	if name := m.filterName(); name != "" {
		filter = name
	}
	b.WriteString(m.styles.title.Render(" taskpad: " + filter + " "))
	b.WriteString("\n\n")

	vis := m.visible()
	if len(vis) == 0 {
		b.WriteString(m.styles.muted.Render("  no tasks found"))
		b.WriteString("\n")
	}
	for row, i := range vis {
		b.WriteString(m.renderRow(i+1, m.todos[i], row == m.cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.confirm == pendingDelete:
		t, _ := m.selected()
		b.WriteString(fmt.Sprintf("Delete %q? (y/n)\n", t.Title))
	case m.confirm == pendingClear:
		b.WriteString(fmt.Sprintf("Delete %d tasks? (y/n)\n", len(vis)))
	case m.err != nil:
		b.WriteString(m.styles.errText.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.status + "\n")
	}

	b.WriteString(m.styles.muted.Render("j/k move  space toggle  d delete  D clear  tab category  t theme  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderRow(num int, t todo.Todo, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	mark := "[ ]"
	title := t.Title
	if t.Completed {
		mark = "[x]"
		title = m.styles.done.Render(title)
	} else if selected {
		title = m.styles.selected.Render(title)
	}

	line := fmt.Sprintf("%s%3d %s %s", cursor, num, mark, title)
	if t.Category != "" {
		tag := "#" + t.Category
		if t.Color != "" {
			tag = m.renderer.NewStyle().Foreground(lipgloss.Color(t.Color)).Render(tag)
		}
		line += " " + tag
	}
	if t.DueDate != nil {
		line += " " + m.styles.muted.Render("(due "+output.FormatDate(*t.DueDate)+")")
	}
	return line
}
