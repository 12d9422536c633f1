package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/smarterfiring/internal/game"
	"github.com/vovakirdan/smarterfiring/internal/journal"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

// maxRuns is how many runs the history screen loads.
const maxRuns = 100

// RunSource is the part of storage.Store the history screen reads.
type RunSource interface {
	RecentRuns(limit int) ([]storage.Run, error)
	Events(runID string) ([]storage.EventRecord, error)
	DeleteRun(runID string) error
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Replay key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Replay, k.Delete, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model listing recorded runs.
type HistoryModel struct {
	source   RunSource
	runs     []storage.Run
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	status   string
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history screen and loads the recent runs.
func NewHistoryModel(source RunSource, width, height int) HistoryModel {
	m := HistoryModel{
		source: source,
		help:   help.New(),
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 10},
		{Title: "Source", Width: 14},
		{Title: "Started", Width: 14},
		{Title: "Events", Width: 8},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) loadRuns() {
	runs, err := m.source.RecentRuns(maxRuns)
	if err != nil {
		m.runs = nil
		m.status = "Cannot load runs: " + err.Error()
	} else {
		m.runs = runs
	}
	m.updateTableRows()
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			ShortID(r.ID),
			r.Source,
			r.StartedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.EventCount),
			RunStatus(r),
		}
	}
	m.table.SetRows(rows)
}

// ShortID abbreviates a run ID for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RunStatus describes how a run ended.
func RunStatus(r storage.Run) string {
	switch {
	case r.Completed:
		return "completed"
	case r.EndedAt.IsZero():
		return "open"
	default:
		return "abandoned"
	}
}

func (m HistoryModel) selected() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replay):
			m.replaySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *HistoryModel) replaySelected() {
	run, ok := m.selected()
	if !ok {
		return
	}
	events, err := m.source.Events(run.ID)
	if err != nil {
		m.status = "Cannot load run: " + err.Error()
		return
	}
	final, err := journal.Replay(journal.RunParams(run), events, nil)
	if err != nil {
		m.status = fmt.Sprintf("Run %s: %v", ShortID(run.ID), err)
		return
	}
	m.status = fmt.Sprintf("Run %s: score %d, %s left", ShortID(run.ID), final.Score, game.FormatClock(final.TimeRemaining))
}

func (m *HistoryModel) deleteSelected() {
	run, ok := m.selected()
	if !ok {
		return
	}
	if err := m.source.DeleteRun(run.ID); err != nil {
		m.status = "Cannot delete run: " + err.Error()
		return
	}
	m.status = "Deleted run " + ShortID(run.ID)
	m.loadRuns()
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		content = emptyStyle.Render("No runs recorded yet.\nPlay a game to fill the journal!")
	} else {
		content = m.table.View()
	}

	parts := []string{
		titleStyle.Render("RECORDED RUNS"),
		"",
		boxStyle.Render(content),
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, dimStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RunHistory runs the history screen until the user quits.
func RunHistory(source RunSource, width, height int) error {
	p := tea.NewProgram(NewHistoryModel(source, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
