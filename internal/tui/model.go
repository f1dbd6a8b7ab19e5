// Package tui is the interactive weekend timeline viewer
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weekendly/internal/aggregator"
	"github.com/julianstephens/weekendly/internal/holidays"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/scheduler"
	"github.com/julianstephens/weekendly/internal/tui/components/timeline"
)

type SessionState int

const (
	StateTimeline SessionState = iota
	StateConfirmDelete
	StateSearch
)

type Model struct {
	engine        *scheduler.Engine
	weekend       holidays.Weekend
	state         SessionState
	keys          KeyMap
	help          help.Model
	timeline      timeline.Model
	dayIdx        int
	pendingDelete string
	status        string
	quitting      bool
	width         int
	height        int

	feed         *aggregator.Feed
	baseFilters  models.SearchFilters
	query        textinput.Model
	results      []models.Activity
	resultIdx    int
	resultSource string
	resultErr    string
	searching    bool
}

// NewModel shows the days of weekend. An empty weekend falls back to
// saturday and sunday.
func NewModel(engine *scheduler.Engine, weekend holidays.Weekend, opts ...Option) Model {
	if len(weekend.Days) == 0 {
		weekend.Days = models.PrimaryDays
	}
	m := Model{
		engine:   engine,
		weekend:  weekend,
		state:    StateTimeline,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		timeline: timeline.New(0, 0),
		query:    newQueryInput(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	// open on saturday when the weekend starts on a friday holiday
	for i, d := range weekend.Days {
		if d == models.DaySaturday {
			m.dayIdx = i
			break
		}
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Day() models.Day {
	return m.weekend.Days[m.dayIdx]
}

func (m *Model) refresh() {
	day := m.Day()
	m.timeline.SetDay(day, m.engine.Agenda(day), m.weekend.Holidays[string(day)])
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case StateSearch:
		return []key.Binding{m.keys.PrevResult, m.keys.NextResult, m.keys.Add, m.keys.Back}
	}
	return []key.Binding{m.keys.Tab, m.keys.Toggle, m.keys.Delete, m.keys.Search, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down, m.keys.MoveUp, m.keys.MoveDown},
		{m.keys.Toggle, m.keys.Delete, m.keys.Search},
	}
}
