// Package tui renders a stopwatch in the terminal: the watch face, the two
// control buttons and the list of laps.
package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tsatke/stopwatch"
)

const (
	defaultWidth = 40
	// lines taken by everything but the lap table
	chromeHeight = 14
	minLapRows   = 3
)

// SnapshotMsg carries a snapshot pushed by the stopwatch.
type SnapshotMsg struct {
	Snapshot stopwatch.Snapshot
}

// Sender is implemented by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Forward returns an observer for Stopwatch.Subscribe that hands every
// snapshot to the program.
func Forward(p Sender) func(stopwatch.Snapshot) {
	return func(s stopwatch.Snapshot) {
		p.Send(SnapshotMsg{Snapshot: s})
	}
}

// Model is the bubbletea model of the stopwatch screen.
type Model struct {
	sw   *stopwatch.Stopwatch
	snap stopwatch.Snapshot

	laps  table.Model
	help  help.Model
	width int
}

func New(sw *stopwatch.Stopwatch) Model {
	laps := table.New(
		table.WithColumns(lapColumns(defaultWidth)),
		table.WithFocused(true),
		table.WithHeight(minLapRows),
	)
	m := Model{
		sw:    sw,
		laps:  laps,
		help:  help.New(),
		width: defaultWidth,
	}
	m.setSnapshot(sw.Snapshot())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		if msg.Snapshot.Seq > m.snap.Seq {
			m.setSnapshot(msg.Snapshot)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.laps.SetColumns(lapColumns(msg.Width))
		m.laps.SetHeight(max(msg.Height-chromeHeight, minLapRows))
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Toggle):
			m.sw.Toggle()
			m.setSnapshot(m.sw.Snapshot())
			return m, nil
		case key.Matches(msg, keys.LapOrReset):
			m.sw.LapOrReset()
			m.setSnapshot(m.sw.Snapshot())
			return m, nil
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.laps, cmd = m.laps.Update(msg)
	return m, cmd
}

func (m *Model) setSnapshot(s stopwatch.Snapshot) {
	lapsChanged := !slices.Equal(s.Laps, m.snap.Laps)
	m.snap = s
	if !lapsChanged {
		return
	}

	history := s.History()
	rows := make([]table.Row, len(history))
	for i, lap := range history {
		rows[i] = table.Row{lap.Label, lap.Display}
	}
	m.laps.SetRows(rows)
	m.laps.GotoTop()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.faceView())
	b.WriteString("\n")
	b.WriteString(m.controlsView())
	b.WriteString("\n")
	b.WriteString(m.laps.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) faceView() string {
	inner := max(m.width-faceStyle.GetHorizontalFrameSize(), 0)
	lap := lipgloss.PlaceHorizontal(inner, lipgloss.Right, lapTimeStyle.Render(m.snap.LapDisplay()))
	total := totalTimeStyle.Render(m.snap.TotalDisplay())
	return faceStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lap, "", total))
}

func (m Model) controlsView() string {
	left := lapButtonStyle.Render(leftLabel(m.snap))
	right := startButtonStyle.Render("Start")
	if m.snap.Running() {
		right = stopButtonStyle.Render("Stop")
	}

	inner := max(m.width-controlsStyle.GetHorizontalFrameSize(), 0)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return controlsStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right))
}

// leftLabel is the caption of the left button, which records laps while
// running and resets while stopped.
func leftLabel(s stopwatch.Snapshot) string {
	if s.Running() {
		return "Lap"
	}
	return "Reset"
}

func lapColumns(width int) []table.Column {
	half := max((width-4)/2, 10)
	return []table.Column{
		{Title: "Lap", Width: half},
		{Title: "Time", Width: half},
	}
}
