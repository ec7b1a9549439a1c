package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	histdto "zazen/internal/modules/history/dto"
	sessiondto "zazen/internal/modules/session/dto"
	statsdto "zazen/internal/modules/stats/dto"
	"zazen/internal/ui/components"
	"zazen/internal/ui/theme"
	historyview "zazen/internal/ui/views/history"
	statsview "zazen/internal/ui/views/stats"
	timerview "zazen/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type timerPort interface {
	Start(ctx context.Context, duration time.Duration) (sessiondto.StartOutput, error)
	Stop(ctx context.Context) (sessiondto.StopOutput, error)
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
}

type historyPort interface {
	List(ctx context.Context) ([]histdto.SessionOutput, error)
	Remove(ctx context.Context, id string) error
	RemoveAll(ctx context.Context) error
}

type statsPort interface {
	Overview(ctx context.Context) (statsdto.OverviewOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabHistory
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{
	"Timer", "History", "Stats",
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Sit     key.Binding
	End     key.Binding
	Delete  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Sit:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start sit")),
		End:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "end sit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sit, k.End, k.Delete},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	timerView timerview.Model
	histView  historyview.Model
	statsView statsview.Model

	defaultDuration time.Duration

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(defaultDuration time.Duration, timer timerPort, history historyPort, stats statsPort) Model {
	return Model{
		timerView:       timerview.New(timerPortBridge{p: timer}, defaultDuration),
		histView:        historyview.New(historyPortBridge{p: history}),
		statsView:       statsview.New(statsPortBridge{p: stats}),
		defaultDuration: defaultDuration,
		activeTab:       tabTimer,
		keys:            defaultKeys(),
		help:            help.New(),
		palette:         components.NewPalette(),
		status:          "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.histView.Init(),
		m.statsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case timerview.StatusMsg:
		// An expired countdown is completed on the status read itself, so a
		// finalized session can show up on any tick.
		if msg.Err == nil && msg.Status.Finalized != nil {
			m.status = fmt.Sprintf("sit complete: %s",
				msg.Status.Finalized.ActualDuration.Round(time.Second))
			cmds = append(cmds, m.histView.Reload(), m.statsView.Reload())
		}

	case timerview.StartedMsg:
		if msg.Err != nil {
			m.status = "start failed: " + msg.Err.Error()
		} else if msg.Out.AlreadyRunning {
			m.status = "already sitting"
		} else {
			m.status = fmt.Sprintf("sitting for %s", msg.Out.PlannedDuration)
		}

	case timerview.StoppedMsg:
		if msg.Err != nil {
			m.status = "stop failed: " + msg.Err.Error()
		} else if msg.Out.Stopped {
			m.status = fmt.Sprintf("sit ended early (%.0f%%)",
				msg.Out.Session.CompletionPercentage*100)
			cmds = append(cmds, m.histView.Reload(), m.statsView.Reload())
		}

	case historyview.RemovedMsg:
		if msg.Err != nil {
			m.status = "remove failed: " + msg.Err.Error()
		} else {
			m.status = "entry removed"
			cmds = append(cmds, m.statsView.Reload())
		}

	case historyview.ClearedMsg:
		if msg.Err != nil {
			m.status = "clear failed: " + msg.Err.Error()
		} else {
			m.status = "history cleared"
			cmds = append(cmds, m.statsView.Reload())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// The countdown keeps ticking while other tabs are showing, so the timer
	// view sees every non-key message. Key presses only reach the active tab.
	_, isKey := msg.(tea.KeyMsg)

	if !isKey || m.activeTab == tabTimer {
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !isKey || m.activeTab == tabHistory {
		var cmd tea.Cmd
		m.histView, cmd = m.histView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !isKey || m.activeTab == tabStats {
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabHistory:
		return m.histView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "zazen  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "timer:start":
		duration := m.defaultDuration
		if len(parts) >= 2 {
			parsed, err := time.ParseDuration(parts[1])
			if err != nil {
				m.status = "invalid duration: " + parts[1]
				return m, nil
			}
			duration = parsed
		}
		m.activeTab = tabTimer
		return m, m.timerView.StartCmd(duration)

	case "timer:stop":
		m.activeTab = tabTimer
		return m, m.timerView.StopCmd()

	case "history:remove":
		id, ok := m.histView.SelectedSessionID()
		if !ok {
			m.status = "no entry selected"
			return m, nil
		}
		m.activeTab = tabHistory
		return m, m.histView.RemoveCmd(id)

	case "history:clear":
		m.activeTab = tabHistory
		return m, m.histView.ClearCmd()

	case "stats:refresh":
		m.activeTab = tabStats
		return m, m.statsView.Reload()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	if m.activeTab == tabHistory {
		return m.histView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.histView, _ = m.histView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type timerPortBridge struct{ p timerPort }

func (b timerPortBridge) Start(ctx context.Context, duration time.Duration) (sessiondto.StartOutput, error) {
	return b.p.Start(ctx, duration)
}
func (b timerPortBridge) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	return b.p.Stop(ctx)
}
func (b timerPortBridge) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return b.p.Status(ctx)
}

type historyPortBridge struct{ p historyPort }

func (b historyPortBridge) List(ctx context.Context) ([]histdto.SessionOutput, error) {
	return b.p.List(ctx)
}
func (b historyPortBridge) Remove(ctx context.Context, id string) error {
	return b.p.Remove(ctx, id)
}
func (b historyPortBridge) RemoveAll(ctx context.Context) error {
	return b.p.RemoveAll(ctx)
}

type statsPortBridge struct{ p statsPort }

func (b statsPortBridge) Overview(ctx context.Context) (statsdto.OverviewOutput, error) {
	return b.p.Overview(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
