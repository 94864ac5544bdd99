// Package tui is a local terminal viewer for a camp simulation. It follows
// the bubbletea Elm architecture: the Model owns a world it steps directly
// (no transport), Update reacts to key presses and tick messages, View
// renders the map plus a job/metrics side panel with lipgloss.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/acaradonna/goblin-camp-sub001/internal/persistence/snapshot"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/world"
)

type tickMsg time.Time

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	styleFooter   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
	stylePaused   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	styleBox      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	styleWall     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	styleWater    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	styleLava     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	styleWorker   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
	styleItem     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	styleStock    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C678DD"))
	styleDesig    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D19A66"))
	styleSideNote = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

// App is the viewer model. It owns the world: all stepping happens on the
// bubbletea goroutine, so no extra locking is needed.
type App struct {
	world *world.World

	paused  bool
	stepped uint64 // ticks run so far
	digest  string
	err     error

	width  int
	height int
}

func NewApp(w *world.World) *App {
	return &App{world: w}
}

func (a *App) Init() tea.Cmd {
	return a.scheduleTick()
}

func (a *App) scheduleTick() tea.Cmd {
	hz := a.world.Config().TickRateHz
	if hz <= 0 {
		hz = 10
	}
	return tea.Tick(time.Second/time.Duration(hz), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		if a.err != nil {
			return a, nil
		}
		if !a.paused {
			a.step()
		}
		return a, a.scheduleTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case " ", "p":
			a.paused = !a.paused
		case "s", "n":
			if a.paused && a.err == nil {
				a.step()
			}
		}
	}
	return a, nil
}

func (a *App) step() {
	_, digest, err := a.world.StepOnce(nil)
	if err != nil {
		a.err = err
		a.paused = true
		return
	}
	a.digest = digest
	a.stepped++
}

func (a *App) View() string {
	snap := a.world.ExportSnapshot(a.world.CurrentTick())

	mapBox := styleBox.Render(renderMap(snap))
	side := styleBox.Render(a.renderSide(snap))
	body := lipgloss.JoinHorizontal(lipgloss.Top, mapBox, side)

	header := styleHeader.Render(fmt.Sprintf("CAMP %s · tick %d", a.world.ID(), a.world.CurrentTick()))
	if a.paused {
		header += "  " + stylePaused.Render("[PAUSED]")
	}

	footer := styleFooter.Render("space → pause/resume    s → step (paused)    q → quit")
	if a.err != nil {
		footer = stylePaused.Render(fmt.Sprintf("halted: %v", a.err)) + "\n" + footer
	}

	return strings.Join([]string{header, body, footer}, "\n")
}

// renderMap draws the camp as one rune per tile, entities over terrain.
// Workers > items > stockpiles > designations > tiles.
func renderMap(snap snapshot.SnapshotV1) string {
	type cell struct {
		ch    string
		style lipgloss.Style
	}
	grid := make([]cell, snap.Width*snap.Height)
	for i, t := range snap.Tiles {
		switch world.TileKind(t) {
		case world.TileWall:
			grid[i] = cell{"#", styleWall}
		case world.TileWater:
			grid[i] = cell{"~", styleWater}
		case world.TileLava:
			grid[i] = cell{"^", styleLava}
		default:
			grid[i] = cell{".", styleSideNote}
		}
	}
	at := func(p [2]int) int { return p[1]*snap.Width + p[0] }
	for _, d := range snap.Designations {
		grid[at(d.Pos)] = cell{"x", styleDesig}
	}
	for _, s := range snap.Stockpiles {
		grid[at(s.Pos)] = cell{"=", styleStock}
	}
	for _, it := range snap.Items {
		if it.HeldBy != "" {
			continue
		}
		grid[at(it.Pos)] = cell{"*", styleItem}
	}
	for _, w := range snap.Workers {
		grid[at(w.Pos)] = cell{"@", styleWorker}
	}

	var b strings.Builder
	for y := 0; y < snap.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < snap.Width; x++ {
			c := grid[y*snap.Width+x]
			b.WriteString(c.style.Render(c.ch))
		}
	}
	return b.String()
}

func (a *App) renderSide(snap snapshot.SnapshotV1) string {
	m := a.world.Metrics()
	lines := []string{
		styleHeader.Render("STATUS"),
		fmt.Sprintf("workers      %d", len(snap.Workers)),
		fmt.Sprintf("items        %d", len(snap.Items)),
		fmt.Sprintf("stockpiles   %d", len(snap.Stockpiles)),
		fmt.Sprintf("designations %d", len(snap.Designations)),
		fmt.Sprintf("board jobs   %d", len(snap.BoardJobs)),
		fmt.Sprintf("active jobs  %d", len(snap.ActiveJobs)),
		fmt.Sprintf("path cache   %d hit / %d miss", m.PathHits, m.PathMisses),
		"",
		styleHeader.Render("WORKERS"),
	}
	for _, w := range snap.Workers {
		job := w.JobID
		if job == "" {
			job = "idle"
		}
		carry := ""
		if w.Carrying != "" {
			carry = " *"
		}
		lines = append(lines, fmt.Sprintf("%s %-8s (%d,%d) %s%s", w.ID, w.Name, w.Pos[0], w.Pos[1], job, carry))
	}
	if len(snap.ActiveJobs) > 0 {
		lines = append(lines, "", styleHeader.Render("ACTIVE"))
		for _, j := range snap.ActiveJobs {
			lines = append(lines, fmt.Sprintf("%s %s → %s", j.ID, j.Kind, j.AssignedTo))
		}
	}
	if a.digest != "" {
		short := a.digest
		if len(short) > 12 {
			short = short[:12]
		}
		lines = append(lines, "", styleSideNote.Render("digest "+short))
	}
	return strings.Join(lines, "\n")
}
