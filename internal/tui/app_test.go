package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/acaradonna/goblin-camp-sub001/internal/sim/world"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	w, err := world.NewDemoWorld(world.WorldConfig{
		ID: "tui", TickRateHz: 10, Width: 16, Height: 12, Seed: 5,
	})
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return NewApp(w)
}

func TestView_ShowsMapAndHeader(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	out := a.View()
	if !strings.Contains(out, "CAMP tui") {
		t.Fatalf("header missing world id:\n%s", out)
	}
	if !strings.Contains(out, "@") {
		t.Fatalf("demo workers should render as @:\n%s", out)
	}
	if !strings.Contains(out, "tick 0") {
		t.Fatalf("header should show the current tick:\n%s", out)
	}
}

func TestUpdate_PauseAndStep(t *testing.T) {
	a := newTestApp(t)

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if !a.paused {
		t.Fatalf("p should pause")
	}
	if !strings.Contains(a.View(), "PAUSED") {
		t.Fatalf("paused state should show in the header")
	}

	before := a.world.CurrentTick()
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if a.world.CurrentTick() != before+1 {
		t.Fatalf("s should single-step while paused")
	}

	// Ticks are ignored while paused.
	a.Update(tickMsg{})
	if a.world.CurrentTick() != before+1 {
		t.Fatalf("tick advanced while paused")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	if a.paused {
		t.Fatalf("space should resume")
	}
	a.Update(tickMsg{})
	if a.world.CurrentTick() != before+2 {
		t.Fatalf("tick should advance when running")
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("q should return a quit command")
	}
}
