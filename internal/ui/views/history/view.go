package history

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	histdto "zazen/internal/modules/history/dto"
	"zazen/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	List(ctx context.Context) ([]histdto.SessionOutput, error)
	Remove(ctx context.Context, id string) error
	RemoveAll(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type SessionsLoadedMsg struct {
	Sessions []histdto.SessionOutput
	Err      error
}

type RemovedMsg struct {
	ID  string
	Err error
}

type ClearedMsg struct {
	Err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session histdto.SessionOutput
}

func (i sessionItem) Title() string {
	return i.session.StartedAt.Format("Mon 02 Jan 15:04")
}

func (i sessionItem) Description() string {
	desc := fmt.Sprintf("%s of %s  %.0f%%",
		i.session.EffectiveDuration.Round(time.Second),
		i.session.PlannedDuration,
		i.session.CompletionPercentage*100)
	if i.session.AverageBPM > 0 {
		desc += fmt.Sprintf("  ♥ %.0f bpm", i.session.AverageBPM)
	}
	return desc
}

func (i sessionItem) FilterValue() string {
	return i.session.StartedAt.Format("2006-01-02")
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    HistoryPort
	list    list.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
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
		m.list.SetSize(m.width, m.height)

	case SessionsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "History — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("History (%d sits)", len(msg.Sessions))
		items := make([]list.Item, len(msg.Sessions))
		// Newest first.
		for i, s := range msg.Sessions {
			items[len(msg.Sessions)-1-i] = sessionItem{session: s}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case RemovedMsg:
		if msg.Err == nil {
			cmds = append(cmds, m.Reload())
		}

	case ClearedMsg:
		if msg.Err == nil {
			cmds = append(cmds, m.Reload())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if !m.Filtering() && msg.String() == "d" {
			if item, ok := m.list.SelectedItem().(sessionItem); ok {
				cmds = append(cmds, m.RemoveCmd(item.session.ID))
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading history…")
	}
	return m.list.View()
}

// SelectedSessionID returns the current selection's id, if any.
func (m Model) SelectedSessionID() (string, bool) {
	if item, ok := m.list.SelectedItem().(sessionItem); ok {
		return item.session.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.List(context.Background())
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m Model) RemoveCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.port.Remove(context.Background(), id)
		return RemovedMsg{ID: id, Err: err}
	}
}

func (m Model) ClearCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.port.RemoveAll(context.Background())
		return ClearedMsg{Err: err}
	}
}
