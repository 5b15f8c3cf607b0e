package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/config"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/monitor"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/pricing"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/theme"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/ui/views"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/watcher"
)

type Tab int

const (
	TabLive Tab = iota
	TabBlocks
	TabDaily
	tabCount
)

type (
	snapshotMsg struct{ snap *monitor.Snapshot }
	tickMsg     time.Time
	refreshMsg  struct{ err error }
)

// App is the root bubbletea model. It owns the monitor, the file
// watcher, and the per-tab views.
type App struct {
	cfg config.Config
	tz  *time.Location

	mon     *monitor.Monitor
	watch   *watcher.Watcher
	updates chan *monitor.Snapshot

	tab    Tab
	live   *views.LiveView
	blocks *views.BlocksView
	daily  *views.DailyView
	notifs *NotificationManager

	spin    spinner.Model
	loading bool
	lastErr error

	width  int
	height int
}

// NewApp wires the monitor and watcher together. Snapshots published by
// the monitor (possibly from watcher goroutines) are funneled through a
// channel so they enter the program as ordinary messages.
func NewApp(cfg config.Config, tz *time.Location, dataRoot string, calc *pricing.Calculator) *App {
	a := &App{
		cfg:     cfg,
		tz:      tz,
		updates: make(chan *monitor.Snapshot, 8),
		live:    views.NewLiveView(tz, cfg.Session.TokenLimit),
		blocks:  views.NewBlocksView(tz),
		daily:   views.NewDailyView(tz),
		notifs:  NewNotificationManager(cfg.Notifications.Enabled, cfg.Notifications.Bell),
		loading: true,
	}

	a.spin = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ColorLavender)),
	)

	a.mon = monitor.New(monitor.Options{
		Root:     dataRoot,
		Timezone: tz,
		Blocks:   cfg.BlockOptions(),
		OnUpdate: func(snap *monitor.Snapshot) {
			select {
			case a.updates <- snap:
			default:
			}
		},
	}, calc)

	a.watch = watcher.New(
		[]string{dataRoot},
		time.Duration(cfg.General.Interval)*time.Second,
		a.mon.NotifyFileChange,
	)

	return a
}

func (a *App) Init() tea.Cmd {
	_ = a.watch.Start()
	return tea.Batch(
		a.spin.Tick,
		a.refreshCmd(monitor.ReasonStartup),
		a.waitForUpdate(),
		a.tickCmd(),
	)
}

// refreshCmd runs a full refresh off the update loop. The resulting
// snapshot arrives separately via the updates channel.
func (a *App) refreshCmd(reason monitor.Reason) tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{err: a.mon.Refresh(reason)}
	}
}

func (a *App) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: <-a.updates}
	}
}

func (a *App) tickCmd() tea.Cmd {
	interval := time.Duration(a.cfg.General.Interval) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
