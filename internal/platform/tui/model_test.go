package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/smarterfiring/internal/game"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, keyMsg(k))
	}
	return m
}

// newTestModel returns a model whose dragons always appear at the top-left
// corner heading down, out of the player's line of fire.
func newTestModel(params game.Params, opts ...ModelOption) Model {
	spawner := game.NewScriptedSpawner(game.Spawn{Position: game.Position{X: 0, Y: 0}, Direction: game.DirDown})
	opts = append([]ModelOption{WithSessionOptions(game.WithSpawner(spawner))}, opts...)
	return NewModel(params, opts...)
}

// timerIDs splits the armed timers into the tick and the removals.
func timerIDs(m Model) (tick uint64, removals []uint64) {
	for id, tm := range m.sched.live {
		if tm.periodic {
			tick = id
		} else {
			removals = append(removals, id)
		}
	}
	return tick, removals
}

func TestModelIntroPaging(t *testing.T) {
	m := newTestModel(game.DefaultParams())

	m = press(t, m, "right", "right", "right", "right", "right")
	if m.page != len(game.IntroPages)-1 {
		t.Fatalf("page = %d, expected last page", m.page)
	}
	if !m.Snapshot().ShowingIntro {
		t.Fatal("intro should still be showing")
	}

	m = press(t, m, "left")
	if m.page != len(game.IntroPages)-2 {
		t.Errorf("page = %d after left", m.page)
	}

	m = press(t, m, "enter", "enter")
	snap := m.Snapshot()
	if snap.ShowingIntro || !snap.Active {
		t.Fatalf("game should have started: %+v", snap)
	}
	if len(snap.Enemies) != 1 {
		t.Errorf("entering play should summon one dragon, got %d", len(snap.Enemies))
	}
}

func TestModelIntroFirstPageLeft(t *testing.T) {
	m := press(t, newTestModel(game.DefaultParams()), "left")
	if m.page != 0 {
		t.Errorf("page = %d, expected 0", m.page)
	}
}

func TestModelSkipIntro(t *testing.T) {
	m := press(t, newTestModel(game.DefaultParams()), "esc")
	if !m.Snapshot().Active {
		t.Error("esc should skip the intro")
	}
}

func TestModelMoves(t *testing.T) {
	m := press(t, newTestModel(game.DefaultParams()), "esc")

	m = press(t, m, "up")
	snap := m.Snapshot()
	if snap.Position != (game.Position{X: 2, Y: 1}) || snap.Facing != game.DirUp {
		t.Errorf("after up: %v facing %v", snap.Position, snap.Facing)
	}

	m = press(t, m, "a")
	snap = m.Snapshot()
	if snap.Position != (game.Position{X: 1, Y: 1}) || snap.Facing != game.DirLeft {
		t.Errorf("after a: %v facing %v", snap.Position, snap.Facing)
	}
}

func TestModelFire(t *testing.T) {
	m := press(t, newTestModel(game.DefaultParams()), "esc", "space")

	snap := m.Snapshot()
	if len(snap.Enemies) != 2 {
		t.Errorf("expected 2 dragons, got %d", len(snap.Enemies))
	}
	if !snap.Firing {
		t.Error("flame should be showing")
	}
}

func TestModelTimersDriveSession(t *testing.T) {
	m := newTestModel(game.DefaultParams())
	m, cmd := update(t, m, keyMsg("esc"))
	if cmd == nil {
		t.Fatal("starting should arm timers")
	}

	tick, removals := timerIDs(m)
	if tick == 0 || len(removals) != 1 {
		t.Fatalf("expected a tick and one removal, got %d and %v", tick, removals)
	}

	m, _ = update(t, m, timerMsg{id: tick})
	if got := m.Snapshot().TimeRemaining; got != 119 {
		t.Errorf("TimeRemaining = %d, expected 119", got)
	}

	m, _ = update(t, m, timerMsg{id: removals[0]})
	if m.Snapshot().Firing {
		t.Error("flame should clear after the removal delay")
	}
}

func TestModelRestartDuringPlay(t *testing.T) {
	spawner := game.NewScriptedSpawner(
		game.Spawn{Position: game.Position{X: 4, Y: 2}, Direction: game.DirLeft},
		game.Spawn{Position: game.Position{X: 0, Y: 0}, Direction: game.DirDown},
	)
	m := newTestModel(game.DefaultParams(), WithSessionOptions(game.WithSpawner(spawner)))

	// The opening fire hits the oncoming dragon
	m = press(t, m, "esc")
	tick, _ := timerIDs(m)
	m, _ = update(t, m, timerMsg{id: tick})
	m = press(t, m, "up", "space")

	snap := m.Snapshot()
	if snap.Score != 10 || snap.TimeRemaining != 119 || len(snap.Enemies) != 2 {
		t.Fatalf("unexpected state before restart: %+v", snap)
	}

	m = press(t, m, "r")
	snap = m.Snapshot()
	if !snap.Active || snap.Over {
		t.Fatalf("restart should keep playing: %+v", snap)
	}
	if snap.Score != 0 || snap.TimeRemaining != 120 || snap.Generation != 2 {
		t.Errorf("restart did not reset score and clock: %+v", snap)
	}
	if snap.Position != (game.Position{X: 2, Y: 2}) || snap.Facing != game.DirRight {
		t.Errorf("restart did not reset the player: %v facing %v", snap.Position, snap.Facing)
	}
	if len(snap.Enemies) != 1 || snap.Enemies[0].Position != (game.Position{X: 0, Y: 0}) {
		t.Errorf("restart should leave only the opening dragon: %+v", snap.Enemies)
	}

	m = press(t, m, "enter")
	if got := m.Snapshot().Generation; got != 3 {
		t.Errorf("enter should restart too, Generation = %d", got)
	}
}

func gameOverModel(t *testing.T, opts ...ModelOption) Model {
	t.Helper()
	params := game.DefaultParams()
	params.SessionDuration = time.Second

	m := press(t, newTestModel(params, opts...), "esc")
	tick, _ := timerIDs(m)
	m, _ = update(t, m, timerMsg{id: tick})
	if m.Snapshot().Over {
		t.Fatal("the last second should still be playable")
	}
	m, _ = update(t, m, timerMsg{id: tick})
	if !m.Snapshot().Over {
		t.Fatal("the tick after 0s should end the game")
	}
	return m
}

func TestModelGameOverAndRestart(t *testing.T) {
	m := gameOverModel(t)

	view := m.View()
	if !strings.Contains(view, "GAME OVER") || !strings.Contains(view, "Final score: 0") {
		t.Errorf("game over view missing text:\n%s", view)
	}

	// Moves are ignored once the game is over
	m = press(t, m, "up")
	if m.Snapshot().Position != (game.Position{X: 2, Y: 2}) {
		t.Error("move accepted after game over")
	}

	m = press(t, m, "enter")
	snap := m.Snapshot()
	if !snap.Active || snap.Over || snap.TimeRemaining != 1 {
		t.Errorf("restart did not reset the session: %+v", snap)
	}
}

func TestModelShareCopies(t *testing.T) {
	var clip bytes.Buffer
	m := gameOverModel(t, WithClipboard(&clip))

	m, cmd := update(t, m, keyMsg("c"))
	if cmd == nil {
		t.Fatal("share should return a command")
	}
	msg := cmd()
	m, _ = update(t, m, msg)

	if !strings.HasPrefix(clip.String(), "\x1b]52;c;") {
		t.Errorf("clipboard did not receive an OSC 52 sequence: %q", clip.String())
	}
	if !strings.Contains(m.status, "Copied") || !strings.Contains(m.status, game.ShareMessage(0)) {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelShareWithoutClipboard(t *testing.T) {
	m := gameOverModel(t)

	m, cmd := update(t, m, keyMsg("c"))
	m, _ = update(t, m, cmd())
	if m.status != "Share: "+game.ShareMessage(0) {
		t.Errorf("status = %q", m.status)
	}
	if !strings.Contains(m.View(), game.ShareMessage(0)) {
		t.Error("share message not shown")
	}
}

func TestModelInfoOverlay(t *testing.T) {
	m := press(t, newTestModel(game.DefaultParams()), "esc", "i")
	if !m.showInfo {
		t.Fatal("info should be showing")
	}
	if view := m.View(); !strings.Contains(view, "Rules") || !strings.Contains(view, "Tips") {
		t.Errorf("info view missing sections:\n%s", view)
	}

	m = press(t, m, "up")
	if m.Snapshot().Position != (game.Position{X: 2, Y: 2}) {
		t.Error("move leaked through the info overlay")
	}

	m = press(t, m, "esc")
	if m.showInfo {
		t.Error("esc should close the info overlay")
	}
}

func TestModelQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m, cmd := update(t, newTestModel(game.DefaultParams()), keyMsg(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", k)
		}
		if m.View() != "" {
			t.Errorf("%s: view should be empty after quit", k)
		}
	}
}

func TestModelListeners(t *testing.T) {
	var kinds []game.EventKind
	m := newTestModel(game.DefaultParams(), WithListener(func(ev game.Event) {
		kinds = append(kinds, ev.Kind)
	}))

	press(t, m, "esc", "left")

	want := []game.EventKind{game.EventStarted, game.EventFired, game.EventMoved}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, expected %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %v, expected %v", i, kinds[i], want[i])
		}
	}
}

func TestModelViews(t *testing.T) {
	m := newTestModel(game.DefaultParams())
	if view := m.View(); !strings.Contains(view, game.IntroPages[0].Text) {
		t.Errorf("intro view missing first page:\n%s", view)
	}

	m = press(t, m, "esc")
	view := m.View()
	if !strings.Contains(view, "Score: 0") || !strings.Contains(view, "Time: 2:00") {
		t.Errorf("board view missing HUD:\n%s", view)
	}
	if !strings.Contains(view, "@") {
		t.Errorf("board view missing player:\n%s", view)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if lines := strings.Count(m.View(), "\n") + 1; lines != 40 {
		t.Errorf("placed view has %d lines, expected 40", lines)
	}
}
