package plans

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekendly/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Strikethrough(true)
)

func dayTitle(day models.Day) string {
	s := string(day)
	return strings.ToUpper(s[:1]) + s[1:]
}

// renderAgenda prints one line per record, numbered from 1 in agenda order
func renderAgenda(day models.Day, items []models.ScheduledActivity, holiday string) string {
	var b strings.Builder

	title := dayTitle(day)
	if holiday != "" {
		title += " (" + holiday + ")"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("  Nothing planned yet"))
		b.WriteString("\n")
		return b.String()
	}

	for i, it := range items {
		span := fmt.Sprintf("%s-%s", it.StartTime(), it.EndTime())
		name := fmt.Sprintf("%-32s", it.Activity.Title)
		status := ""
		if it.Completed {
			name = doneStyle.Render(name)
			status = " [done]"
		}
		fmt.Fprintf(&b, "%2d. %s  %s  %s%s\n",
			i+1, timeStyle.Render(span), name,
			mutedStyle.Render(fmt.Sprintf("%s, %dm, %s", it.Activity.Category, it.Activity.DurationMin, it.Activity.Price)),
			status)
		fmt.Fprintf(&b, "    %s\n", mutedStyle.Render("ID: "+it.ScheduledID))
	}
	return b.String()
}
