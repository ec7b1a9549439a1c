package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "zazen/internal/modules/stats/dto"
	"zazen/internal/ui/theme"
)

const barWidth = 30

// ─── port ────────────────────────────────────────────────────────────────────

type StatsPort interface {
	Overview(ctx context.Context) (statsdto.OverviewOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type OverviewLoadedMsg struct {
	Overview statsdto.OverviewOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     StatsPort
	body     viewport.Model
	spinner  spinner.Model
	overview statsdto.OverviewOutput
	loading  bool
	width    int
	height   int
}

func New(port StatsPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{
		port:    port,
		body:    vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 4
		m.body.Height = m.height - 2

	case OverviewLoadedMsg:
		m.loading = false
		if msg.Err == nil {
			m.overview = msg.Overview
			m.body.SetContent(m.renderOverview())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if msg.String() == "r" {
			cmds = append(cmds, m.Reload())
		}
	}

	if !m.loading {
		var vCmd tea.Cmd
		m.body, vCmd = m.body.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Computing stats…")
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.body.View())
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		overview, err := m.port.Overview(context.Background())
		return OverviewLoadedMsg{Overview: overview, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderOverview() string {
	o := m.overview
	var sb strings.Builder

	streak := fmt.Sprintf("%d day", o.CurrentStreak)
	if o.CurrentStreak != 1 {
		streak += "s"
	}
	sb.WriteString(theme.Title.Render("Practice") + "\n\n")
	sb.WriteString(theme.Muted.Render("streak:   ") + theme.Hot.Render(streak) + "\n")
	sb.WriteString(theme.Muted.Render("longest:  ") + fmt.Sprintf("%d days", o.LongestStreak) + "\n")
	sb.WriteString(theme.Muted.Render("sits:     ") + fmt.Sprintf("%d", o.TotalSessions) + "\n")
	sb.WriteString(theme.Muted.Render("total:    ") + o.TotalDuration.Round(time.Minute).String() + "\n")
	sb.WriteString(theme.Muted.Render("average:  ") + o.AverageDuration.Round(time.Second).String() + "\n")

	if len(o.Days) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Last two weeks") + "\n\n")
		max := time.Duration(0)
		for _, day := range o.Days {
			if day.Total > max {
				max = day.Total
			}
		}
		for _, day := range o.Days {
			width := 0
			if max > 0 {
				width = int(float64(barWidth) * float64(day.Total) / float64(max))
			}
			if day.Total > 0 && width == 0 {
				width = 1
			}
			bar := strings.Repeat("█", width)
			label := day.Date.Format("Mon 02")
			mins := theme.Muted.Render(fmt.Sprintf(" %dm", int(day.Total.Minutes())))
			if day.Total == 0 {
				mins = theme.Muted.Render(" ·")
			}
			sb.WriteString(theme.Muted.Render(label) + "  " +
				lipgloss.NewStyle().Foreground(theme.Green).Render(bar) + mins + "\n")
		}
	}

	sb.WriteString("\n" + theme.Muted.Render("r: refresh"))
	return sb.String()
}
