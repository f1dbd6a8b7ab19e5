package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, status line and help
		m.timeline.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case searchResultsMsg:
		return m.applyResults(msg), nil

	case tea.KeyMsg:
		switch m.state {
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		case StateSearch:
			return m.updateSearch(msg)
		}
		return m.updateTimeline(msg)
	}

	var cmd tea.Cmd
	m.timeline, cmd = m.timeline.Update(msg)
	return m, cmd
}

func (m Model) updateTimeline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Search):
		return m.openSearch()
	case key.Matches(msg, m.keys.Tab):
		m.dayIdx = (m.dayIdx + 1) % len(m.weekend.Days)
		m.timeline.SetCursor(0)
		m.refresh()
	case key.Matches(msg, m.keys.ShiftTab):
		m.dayIdx = (m.dayIdx - 1 + len(m.weekend.Days)) % len(m.weekend.Days)
		m.timeline.SetCursor(0)
		m.refresh()
	case key.Matches(msg, m.keys.Up):
		m.timeline.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.timeline.MoveCursor(1)
	case key.Matches(msg, m.keys.MoveUp):
		m.reorder(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.reorder(1)
	case key.Matches(msg, m.keys.Toggle):
		if sel, ok := m.timeline.Selected(); ok {
			m.engine.ToggleComplete(sel.ScheduledID)
			m.refresh()
		}
	case key.Matches(msg, m.keys.Delete):
		if sel, ok := m.timeline.Selected(); ok {
			m.pendingDelete = sel.ScheduledID
			m.state = StateConfirmDelete
		}
	}
	return m, nil
}

func (m *Model) reorder(delta int) {
	from := m.timeline.Cursor()
	to := from + delta
	if !m.engine.ReorderActivities(m.Day(), from, to) {
		return
	}
	m.refresh()
	m.timeline.SetCursor(to)
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if sel, ok := m.engine.Get(m.pendingDelete); ok {
			m.engine.RemoveActivity(m.pendingDelete)
			m.status = fmt.Sprintf("Removed %s", sel.Activity.Title)
		}
		m.pendingDelete = ""
		m.state = StateTimeline
		m.refresh()
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.pendingDelete = ""
		m.state = StateTimeline
	}
	return m, nil
}
