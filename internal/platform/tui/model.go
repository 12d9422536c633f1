package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/smarterfiring/internal/core"
	"github.com/vovakirdan/smarterfiring/internal/game"
)

var errNoClipboard = errors.New("no clipboard available")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	hudStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	iconStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Padding(1, 0)
	statusStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
)

// shareMsg reports the outcome of copying the share message.
type shareMsg struct {
	text string
	err  error
}

type modelOptions struct {
	session   []game.Option
	listeners []game.Listener
	clipboard io.Writer
}

// ModelOption configures a Model.
type ModelOption func(*modelOptions)

// WithSessionOptions passes options to the underlying game session.
func WithSessionOptions(opts ...game.Option) ModelOption {
	return func(o *modelOptions) {
		o.session = append(o.session, opts...)
	}
}

// WithListener subscribes fn to the session, e.g. a journal recorder or
// the audio player.
func WithListener(fn game.Listener) ModelOption {
	return func(o *modelOptions) {
		o.listeners = append(o.listeners, fn)
	}
}

// WithClipboard sets the terminal that receives OSC 52 copy requests.
func WithClipboard(w io.Writer) ModelOption {
	return func(o *modelOptions) {
		o.clipboard = w
	}
}

// Model is the Bubble Tea model for one player. It owns a game session
// whose timers are delivered as Bubble Tea messages.
type Model struct {
	session   *game.Session
	sched     *teaScheduler
	screen    *core.Screen
	keys      KeyMap
	help      help.Model
	clipboard io.Writer

	page     int // Intro page
	showInfo bool
	status   string
	width    int
	height   int
	quitting bool
}

// NewModel creates a model showing the intro. The session starts when
// the player leaves the intro.
func NewModel(params game.Params, opts ...ModelOption) Model {
	var o modelOptions
	for _, opt := range opts {
		opt(&o)
	}

	sched := newTeaScheduler()
	session := game.New(params, sched, o.session...)
	for _, fn := range o.listeners {
		session.Subscribe(fn)
	}

	w, h := game.BoardSize(params.GridSize)
	return Model{
		session:   session,
		sched:     sched,
		screen:    core.NewScreen(w, h),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		clipboard: o.clipboard,
	}
}

// Snapshot returns the current session state.
func (m Model) Snapshot() game.Snapshot {
	return m.session.Snapshot()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(game.Title)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case timerMsg:
		m.sched.fire(msg.id)

	case shareMsg:
		if msg.err != nil {
			m.status = "Share: " + msg.text
		} else {
			m.status = "Copied to clipboard: " + msg.text
		}
	}

	return m, tea.Batch(cmd, m.sched.drain())
}

// handleKey routes an action to the overlay or the current phase.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showInfo {
		if action == core.ActionBack || action == core.ActionInfo {
			m.showInfo = false
		}
		return m, nil
	}
	if action == core.ActionInfo {
		m.showInfo = true
		return m, nil
	}

	snap := m.session.Snapshot()
	switch snap.Phase() {
	case game.PhaseIntro:
		m.handleIntro(action)
	case game.PhasePlaying:
		m.handlePlay(action)
	case game.PhaseOver:
		return m.handleOver(action, snap)
	}
	return m, nil
}

func (m *Model) handleIntro(action core.Action) {
	switch action {
	case core.ActionRight, core.ActionConfirm, core.ActionFire:
		if m.page < len(game.IntroPages)-1 {
			m.page++
			return
		}
		m.start()
	case core.ActionLeft:
		if m.page > 0 {
			m.page--
		}
	case core.ActionBack:
		m.start()
	}
}

func (m *Model) handlePlay(action core.Action) {
	switch action {
	case core.ActionUp:
		m.session.Move(game.DirUp)
	case core.ActionDown:
		m.session.Move(game.DirDown)
	case core.ActionLeft:
		m.session.Move(game.DirLeft)
	case core.ActionRight:
		m.session.Move(game.DirRight)
	case core.ActionFire:
		m.session.Fire()
	case core.ActionConfirm:
		m.start()
	}
}

func (m Model) handleOver(action core.Action, snap game.Snapshot) (Model, tea.Cmd) {
	switch action {
	case core.ActionConfirm:
		m.start()
	case core.ActionShare:
		return m, m.share(snap.Score)
	}
	return m, nil
}

// start begins a session with the first dragon already on the board.
func (m *Model) start() {
	m.status = ""
	m.session.Start()
	m.session.Fire()
}

// share copies the share message through the terminal.
func (m Model) share(score int) tea.Cmd {
	text := game.ShareMessage(score)
	w := m.clipboard
	return func() tea.Msg {
		if w == nil {
			return shareMsg{text: text, err: errNoClipboard}
		}
		_, err := osc52.New(text).WriteTo(w)
		return shareMsg{text: text, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()

	var body string
	var keys help.KeyMap
	switch {
	case m.showInfo:
		body, keys = m.infoView(), m.keys.infoHelp()
	case snap.Phase() == game.PhaseIntro:
		body, keys = m.introView(), m.keys.introHelp()
	case snap.Phase() == game.PhaseOver:
		body, keys = m.overView(snap), m.keys.overHelp()
	default:
		body, keys = m.boardView(snap), m.keys.playHelp()
	}

	parts := []string{body, ""}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(keys))
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) boardView(snap game.Snapshot) string {
	m.screen.Clear()
	snap.RenderBoard(m.screen, 0, 0)
	return lipgloss.JoinVertical(lipgloss.Center,
		hudStyle.Render(snap.HUD()),
		RenderScreen(m.screen),
	)
}

func (m Model) introView() string {
	page := game.IntroPages[m.page]

	dots := make([]string, len(game.IntroPages))
	for i := range dots {
		if i == m.page {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}

	hint := "→ next"
	if m.page == len(game.IntroPages)-1 {
		hint = "Press enter to start"
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(game.Title),
		iconStyle.Render(page.Icon),
		textStyle.Render(page.Text),
		"",
		dimStyle.Render(strings.Join(dots, " ")),
		dimStyle.Render(hint),
	))
}

func (m Model) overView(snap game.Snapshot) string {
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("GAME OVER"),
		"",
		hudStyle.Render(fmt.Sprintf("Final score: %d", snap.Score)),
		"",
		dimStyle.Render(game.ShareMessage(snap.Score)),
	))
}

func (m Model) infoView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(game.Title))
	for _, section := range game.Info {
		b.WriteString("\n\n")
		b.WriteString(hudStyle.Render(section.Title))
		for _, line := range section.Lines {
			b.WriteString("\n")
			b.WriteString(textStyle.Render(line))
		}
	}
	return panelStyle.Render(b.String())
}

// Run starts a Bubble Tea program for m on the current terminal.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	return err
}
