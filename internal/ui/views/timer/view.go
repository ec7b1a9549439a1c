package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "zazen/internal/modules/session/dto"
	"zazen/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	Start(ctx context.Context, duration time.Duration) (sessiondto.StartOutput, error)
	Stop(ctx context.Context) (sessiondto.StopOutput, error)
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// StatusMsg carries the periodic countdown recomputation. It bubbles up to
// the app model, which watches Finalized to refresh the other tabs.
type StatusMsg struct {
	Status sessiondto.StatusOutput
	Err    error
}

type StartedMsg struct {
	Out sessiondto.StartOutput
	Err error
}

// StoppedMsg bubbles up so the app can refresh history and stats.
type StoppedMsg struct {
	Out sessiondto.StopOutput
	Err error
}

type tickMsg time.Time

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port            TimerPort
	bar             progress.Model
	status          sessiondto.StatusOutput
	defaultDuration time.Duration
	lastEnded       *sessiondto.CompletedOutput
	width           int
	height          int
}

func New(port TimerPort, defaultDuration time.Duration) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false
	return Model{
		port:            port,
		bar:             bar,
		defaultDuration: defaultDuration,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.statusCmd(), tickCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barW := m.width - 16
		if barW < 10 {
			barW = 10
		}
		if barW > 60 {
			barW = 60
		}
		m.bar.Width = barW

	case tickMsg:
		// The countdown is recomputed from the wall clock on every tick;
		// the tick itself carries no elapsed time.
		return m, tea.Batch(m.statusCmd(), tickCmd())

	case StatusMsg:
		if msg.Err == nil {
			m.status = msg.Status
			if msg.Status.Finalized != nil {
				m.lastEnded = msg.Status.Finalized
			}
		}

	case StartedMsg:
		if msg.Err == nil && !msg.Out.AlreadyRunning {
			m.lastEnded = nil
		}
		return m, m.statusCmd()

	case StoppedMsg:
		if msg.Err == nil && msg.Out.Stopped {
			ended := msg.Out.Session
			m.lastEnded = &ended
		}
		return m, m.statusCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return m, m.StartCmd(m.defaultDuration)
		case "x":
			return m, m.StopCmd()
		}
	}

	return m, nil
}

func (m Model) View() string {
	var body string
	if m.status.Running {
		body = m.renderRunning()
	} else {
		body = m.renderIdle()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// ─── commands ────────────────────────────────────────────────────────────────

// StartCmd is exported so the command palette can start with a custom
// duration.
func (m Model) StartCmd(duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Start(context.Background(), duration)
		return StartedMsg{Out: out, Err: err}
	}
}

func (m Model) StopCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Stop(context.Background())
		return StoppedMsg{Out: out, Err: err}
	}
}

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Status(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderRunning() string {
	remaining := m.status.Remaining.Round(time.Second)
	clock := fmt.Sprintf("%02d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)
	if remaining >= time.Hour {
		clock = fmt.Sprintf("%d:%02d:%02d",
			int(remaining.Hours()), int(remaining.Minutes())%60, int(remaining.Seconds())%60)
	}

	lines := theme.Title.Render("meditating") + "\n\n" +
		theme.Hot.Render(clock) + "\n\n" +
		m.bar.ViewAs(m.status.Progress) + "\n\n" +
		theme.Muted.Render(fmt.Sprintf("planned %s", m.status.PlannedDuration))
	if m.status.SampleCount > 0 {
		lines += theme.Muted.Render(fmt.Sprintf("  ♥ %d samples", m.status.SampleCount))
	}
	lines += "\n\n" + theme.Muted.Render("x: end early")
	return lines
}

func (m Model) renderIdle() string {
	lines := theme.Title.Render("zazen") + "\n\n"
	if m.lastEnded != nil {
		lines += theme.Muted.Render("last sit: ") +
			fmt.Sprintf("%s  (%.0f%%)",
				m.lastEnded.ActualDuration.Round(time.Second),
				m.lastEnded.CompletionPercentage*100) + "\n\n"
	}
	lines += theme.Muted.Render(fmt.Sprintf("s: sit for %s   ::  timer:start <duration>", m.defaultDuration))
	return lines
}
