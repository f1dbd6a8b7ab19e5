package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateSearch:
		content = m.viewSearch()
	default:
		content = docStyle.Render(m.timeline.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, d := range m.weekend.Days {
		title := strings.ToUpper(string(d[:1])) + string(d[1:])
		if i == m.dayIdx {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	sum := m.engine.Summary()
	line := fmt.Sprintf("%d planned · %d done · %dh%02dm", sum.Count, sum.Completed, sum.TotalMinutes/60, sum.TotalMinutes%60)
	if sum.MaxPrice != "" {
		line += " · up to " + string(sum.MaxPrice)
	}
	return statusStyle.Render(line)
}

func (m Model) viewConfirmDelete() string {
	title := m.pendingDelete
	if sel, ok := m.engine.Get(m.pendingDelete); ok {
		title = sel.Activity.Title
	}
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Remove %s from the plan?", title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
