// Package output provides themed formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/category"
	"taskpad/internal/theme"
	"taskpad/internal/todo"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// DateLayout is how due dates are shown and accepted.
	DateLayout = "2006-01-02 15:04"
)

// Printer writes tasks and categories to w. Styling follows the theme and
// degrades to plain text when w is not a terminal.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	header   lipgloss.Style
	done     lipgloss.Style
	muted    lipgloss.Style
}

// New returns a Printer for w using theme t.
func New(w io.Writer, t theme.Theme) *Printer {
	r := lipgloss.NewRenderer(w)
	colors := t.Colors()
	return &Printer{
		w:        w,
		renderer: r,
		header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Foreground)).
			Background(lipgloss.Color(colors.Background)),
		done:  r.NewStyle().Strikethrough(true).Faint(true),
		muted: r.NewStyle().Faint(true),
	}
}

// Task formats a task line.
// Format: "{N:>4}  [x] {TITLE}[ #{CATEGORY}][ (due {DATE})]\n"
func (p *Printer) Task(num int, t todo.Todo) {
	mark := "[ ]"
	title := normalizeTitle(t.Title)
	if t.Completed {
		mark = "[x]"
		title = p.done.Render(title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%4d  %s %s", num, mark, title)
	if t.Category != "" {
		b.WriteString(" ")
		b.WriteString(p.tag(t.Category, t.Color))
	}
	if t.DueDate != nil {
		b.WriteString(" ")
		b.WriteString(p.muted.Render("(due " + FormatDate(*t.DueDate) + ")"))
	}
	fmt.Fprintln(p.w, b.String())
}

// Header formats a list section header.
func (p *Printer) Header(title string) {
	fmt.Fprintln(p.w, ListSeparator)
	fmt.Fprintln(p.w, p.header.Render(title))
	fmt.Fprintln(p.w, ListSeparator)
}

// Category formats a category line.
// Format: "{N:>4}  {NAME}  {COLOR}\n"
func (p *Printer) Category(num int, c category.Category) {
	name := c.Name
	if strings.TrimSpace(name) == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(p.w, "%4d  %s  %s\n", num, p.colored(name, c.Color), c.Color)
}

// Detail prints every field of a task.
func (p *Printer) Detail(t todo.Todo) {
	status := "open"
	if t.Completed {
		status = "done"
	}
	row := func(label, value string) {
		fmt.Fprintf(p.w, "%-10s %s\n", label+":", value)
	}

	row("Title", normalizeTitle(t.Title))
	row("Text", t.Text)
	row("Status", status)
	if t.Category != "" {
		row("Category", p.tag(t.Category, t.Color))
	}
	if t.DueDate != nil {
		row("Due", FormatDate(*t.DueDate))
	}
	if t.Color != "" {
		row("Color", p.colored(t.Color, t.Color))
	}
	row("Created", FormatDate(t.CreatedAt))
	row("ID", t.ID)
}

// Themes lists the themes, marking the current one with "*".
func (p *Printer) Themes(current theme.Theme) {
	for _, t := range theme.All() {
		marker := " "
		if t == current {
			marker = "*"
		}
		fmt.Fprintf(p.w, "%s %s\n", marker, t)
	}
}

func (p *Printer) tag(name, color string) string {
	return p.colored("#"+name, color)
}

func (p *Printer) colored(s, color string) string {
	if color == "" {
		return s
	}
	return p.renderer.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

// FormatDate renders t in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
