package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tempo/internal/engine"
)

// StatusEvent is one snapshot of the engine link pushed to the monitor.
type StatusEvent struct {
	Conn engine.ConnState
	Port int
	Pid  int

	Samples     int
	Banks       int
	Sounds      int
	SeenSamples bool
	SeenBanks   bool
	SeenSounds  bool
}

type monitorModel struct {
	title   string
	events  <-chan StatusEvent
	spinner spinner.Model
	prog    progress.Model
	last    StatusEvent
	width   int
	done    bool
}

type statusMsg StatusEvent
type closedMsg struct{}

// NewMonitorModel returns a Bubble Tea model that renders the live engine
// link: connection state, discovered port/pid, and vocabulary sync progress.
func NewMonitorModel(title string, events <-chan StatusEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	return &monitorModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

func (m *monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.last = StatusEvent(msg)
		cmd := m.prog.SetPercent(syncFraction(m.last))
		return m, tea.Batch(cmd, m.listenForEvent())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *monitorModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := truncate(m.title, m.width-6)
	if m.done {
		header = fmt.Sprintf("stopped: %s", header)
	} else if m.last.Conn != engine.StateConnected {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	connLine := m.last.Conn.String()
	if m.last.Conn == engine.StateConnected && m.last.Port > 0 {
		connLine = fmt.Sprintf("%s to 127.0.0.1:%d (pid %d)", connLine, m.last.Port, m.last.Pid)
	}
	b.WriteString(fmt.Sprintf("  %s %s\n\n", styleConn(m.last.Conn).Render(fmt.Sprintf("%12s", "engine")), connLine))

	rows := []struct {
		name  string
		count int
		seen  bool
	}{
		{"samples", m.last.Samples, m.last.SeenSamples},
		{"banks", m.last.Banks, m.last.SeenBanks},
		{"sounds", m.last.Sounds, m.last.SeenSounds},
	}
	for _, row := range rows {
		status := "waiting"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if row.seen {
			status = fmt.Sprintf("%d", row.count)
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", style.Render(fmt.Sprintf("%12s", row.name)), status))
	}

	b.WriteString("\n")
	if syncFraction(m.last) >= 1.0 {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *monitorModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return statusMsg(ev)
	}
}

// syncFraction is the share of the three initial vocabulary queries the
// engine has answered.
func syncFraction(ev StatusEvent) float64 {
	if ev.Conn != engine.StateConnected {
		return 0.0
	}
	got := 0
	for _, seen := range []bool{ev.SeenSamples, ev.SeenBanks, ev.SeenSounds} {
		if seen {
			got++
		}
	}
	return float64(got) / 3.0
}

func styleConn(state engine.ConnState) lipgloss.Style {
	switch state {
	case engine.StateConnected:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case engine.StateConnecting:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
