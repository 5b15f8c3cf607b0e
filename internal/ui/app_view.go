package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/i18n"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/theme"
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(theme.ColorMutedText)

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(theme.ColorBrightText).
			Background(theme.ColorCardBg)

	helpStyle = lipgloss.NewStyle().
			Foreground(theme.ColorMutedText).
			Padding(0, 1)

	errStyle = lipgloss.NewStyle().
			Foreground(theme.ColorDanger).
			Padding(0, 1)
)

func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}

	if a.loading {
		return "\n  " + a.spin.View() + " " + i18n.T("loading") + "\n"
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	switch a.tab {
	case TabBlocks:
		b.WriteString(a.blocks.Render(width))
	case TabDaily:
		b.WriteString(a.daily.Render(width))
	default:
		b.WriteString(a.live.Render(width))
	}

	if banner := a.notifs.RenderBanner(width); banner != "" {
		b.WriteString("\n")
		b.WriteString(banner)
	}

	if a.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(a.lastErr.Error()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		i18n.T("help_tabs") + "  " + i18n.T("help_refresh") + "  " + i18n.T("help_quit")))
	b.WriteString("\n")

	return b.String()
}

func (a *App) renderTabs() string {
	labels := []string{
		i18n.T("tab_live"),
		i18n.T("tab_blocks"),
		i18n.T("tab_daily"),
	}

	parts := make([]string, len(labels))
	for i, label := range labels {
		if Tab(i) == a.tab {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
