package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/monitor"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tickMsg:
		return a, tea.Batch(a.refreshCmd(monitor.ReasonTimer), a.tickCmd())

	case refreshMsg:
		if msg.err != nil {
			a.lastErr = msg.err
		}
		return a, nil

	case snapshotMsg:
		a.applySnapshot(msg.snap)
		return a, a.waitForUpdate()
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		a.watch.Stop()
		return a, tea.Quit

	case "tab", "right", "l":
		a.tab = (a.tab + 1) % tabCount
		return a, nil

	case "shift+tab", "left", "h":
		a.tab = (a.tab + tabCount - 1) % tabCount
		return a, nil

	case "1":
		a.tab = TabLive
		return a, nil
	case "2":
		a.tab = TabBlocks
		return a, nil
	case "3":
		a.tab = TabDaily
		return a, nil

	case "r":
		return a, a.refreshCmd(monitor.ReasonManual)
	}

	return a, nil
}

func (a *App) applySnapshot(snap *monitor.Snapshot) {
	if snap == nil {
		return
	}
	a.loading = false
	a.lastErr = nil

	a.live.SetData(snap)
	a.blocks.SetData(snap.Blocks)
	a.daily.SetData(snap)

	a.notifs.Expire()
	a.notifs.CheckTokenLimit(snap, a.live.EffectiveTokenLimit())
}
