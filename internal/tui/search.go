package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weekendly/internal/aggregator"
	"github.com/julianstephens/weekendly/internal/models"
)

type Option func(*Model)

// WithSearch enables the "/" search pane. Every edit of the query reloads
// through one Feed, so only the answer to the latest query is shown.
func WithSearch(load aggregator.LoadFunc, base models.SearchFilters) Option {
	return func(m *Model) {
		m.feed = aggregator.NewFeed(load)
		m.baseFilters = base
	}
}

type searchResultsMsg struct {
	query string
	resp  models.ActivityResponse
	ok    bool
}

func newQueryInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "brunch, museum, board games..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (m Model) searchCmd(query string) tea.Cmd {
	feed := m.feed
	filters := m.baseFilters
	filters.Query = strings.TrimSpace(query)
	return func() tea.Msg {
		resp, ok := feed.Load(context.Background(), filters)
		return searchResultsMsg{query: query, resp: resp, ok: ok}
	}
}

func (m Model) openSearch() (tea.Model, tea.Cmd) {
	if m.feed == nil {
		m.status = "Search is not available"
		return m, nil
	}
	m.state = StateSearch
	m.searching = true
	focus := m.query.Focus()
	return m, tea.Batch(focus, m.searchCmd(m.query.Value()))
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.feed.Cancel()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.feed.Cancel()
		m.query.Blur()
		m.searching = false
		m.state = StateTimeline
		return m, nil
	case key.Matches(msg, m.keys.PrevResult):
		if m.resultIdx > 0 {
			m.resultIdx--
		}
		return m, nil
	case key.Matches(msg, m.keys.NextResult):
		if m.resultIdx < len(m.results)-1 {
			m.resultIdx++
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.addSelected()
		return m, nil
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() == before {
		return m, cmd
	}
	m.searching = true
	return m, tea.Batch(cmd, m.searchCmd(m.query.Value()))
}

// applyResults drops answers that a newer query has superseded
func (m Model) applyResults(msg searchResultsMsg) Model {
	if !msg.ok {
		return m
	}
	m.searching = false
	m.results = msg.resp.Data
	m.resultSource = msg.resp.Source
	m.resultErr = msg.resp.Error
	m.resultIdx = 0
	return m
}

// addSelected places the highlighted result in the first free slot of the
// current day and returns to the timeline
func (m *Model) addSelected() {
	if m.resultIdx >= len(m.results) {
		return
	}
	a := m.results[m.resultIdx]
	day := m.Day()
	free := m.engine.FreeSlots(day)
	if len(free) == 0 {
		m.status = fmt.Sprintf("No free slots left on %s", day)
		return
	}
	rec, err := m.engine.Schedule(a, free[0], day)
	if err != nil {
		m.status = fmt.Sprintf("Could not add %s: %v", a.Title, err)
		return
	}
	m.feed.Cancel()
	m.query.Blur()
	m.state = StateTimeline
	m.status = fmt.Sprintf("Added %s on %s at %s", rec.Activity.Title, rec.Day, rec.TimeSlot)
	m.refresh()
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(m.query.View())
	b.WriteString("\n\n")

	switch {
	case m.searching && len(m.results) == 0:
		b.WriteString(statusStyle.Render("Searching..."))
	case len(m.results) == 0 && m.resultErr != "":
		b.WriteString(statusStyle.Render("No activities found: " + m.resultErr))
	case len(m.results) == 0:
		b.WriteString(statusStyle.Render("No activities found"))
	}

	limit := len(m.results)
	if rows := m.height - 10; rows > 0 && limit > rows {
		limit = rows
	}
	for i := 0; i < limit; i++ {
		a := m.results[i]
		line := fmt.Sprintf("%-36s %s, %dm", a.Title, a.Category, a.DurationMin)
		if i == m.resultIdx {
			b.WriteString(selectedResultStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if len(m.results) > 0 {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("%d results from %s, enter adds to %s", len(m.results), m.resultSource, m.Day())))
	}
	return docStyle.Render(b.String())
}
