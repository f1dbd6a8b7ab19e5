package timeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekendly/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model renders one day of the plan in presentation order
type Model struct {
	viewport viewport.Model
	Day      models.Day
	Items    []models.ScheduledActivity
	Holiday  string
	cursor   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetDay(day models.Day, items []models.ScheduledActivity, holiday string) {
	m.Day = day
	m.Items = items
	m.Holiday = holiday
	m.clampCursor()
	m.Render()
}

func (m *Model) Cursor() int {
	return m.cursor
}

// Selected returns the record under the cursor
func (m *Model) Selected() (models.ScheduledActivity, bool) {
	if m.cursor < 0 || m.cursor >= len(m.Items) {
		return models.ScheduledActivity{}, false
	}
	return m.Items[m.cursor], true
}

func (m *Model) MoveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.Render()
}

func (m *Model) SetCursor(i int) {
	m.cursor = i
	m.clampCursor()
	m.Render()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.Items) {
		m.cursor = len(m.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) Render() {
	var b strings.Builder

	header := strings.ToUpper(string(m.Day[:1])) + string(m.Day[1:])
	if m.Day == "" {
		header = ""
	}
	if m.Holiday != "" {
		header += metaStyle.Render("  " + m.Holiday)
	}
	b.WriteString(header + "\n\n")

	if len(m.Items) == 0 {
		b.WriteString(metaStyle.Render("Nothing planned yet. Add activities with `weekendly add`."))
		m.viewport.SetContent(b.String())
		return
	}

	for i, it := range m.Items {
		marker := "  "
		title := titleStyle.Render(it.Activity.Title)
		if it.Completed {
			title = doneStyle.Render(it.Activity.Title)
		}
		if i == m.cursor {
			marker = selectedStyle.Render("> ")
			if !it.Completed {
				title = selectedStyle.Render(it.Activity.Title)
			}
		}

		span := fmt.Sprintf("%s - %s", it.StartTime(), it.EndTime())
		if it.EndsNextDay() {
			span += "+1"
		}
		meta := fmt.Sprintf("%s · %d min · %s", it.Activity.Category, it.Activity.DurationMin, it.Activity.Price)

		fmt.Fprintf(&b, "%s%s %s %s\n", marker, timeStyle.Render(span), title, metaStyle.Render(meta))
	}
	m.viewport.SetContent(b.String())
}
