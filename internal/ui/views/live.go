package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/i18n"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/monitor"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/theme"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/ui/components"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(theme.ColorLavender).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(theme.ColorMutedText)
	valueStyle = lipgloss.NewStyle().Foreground(theme.ColorBrightText)
	dimStyle   = lipgloss.NewStyle().Foreground(theme.ColorMutedText)
)

// LiveView renders the active session: burn rate, projection and quota
// utilization.
type LiveView struct {
	snap       *monitor.Snapshot
	tz         *time.Location
	tokenLimit int // explicit limit from config; 0 means use the auto limit
}

func NewLiveView(tz *time.Location, tokenLimit int) *LiveView {
	return &LiveView{tz: tz, tokenLimit: tokenLimit}
}

func (v *LiveView) SetData(snap *monitor.Snapshot) {
	v.snap = snap
}

// EffectiveTokenLimit returns the configured limit, falling back to the
// auto-detected historical maximum.
func (v *LiveView) EffectiveTokenLimit() int {
	if v.tokenLimit > 0 {
		return v.tokenLimit
	}
	if v.snap != nil {
		return v.snap.AutoTokenLimit
	}
	return 0
}

func (v *LiveView) Render(width int) string {
	if v.snap == nil {
		return dimStyle.Render(i18n.T("loading"))
	}

	active := v.snap.ActiveBlock()
	if active == nil {
		return v.renderIdle(width)
	}
	return v.renderActive(active, width)
}

func (v *LiveView) renderIdle(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("no_active_session")))
	b.WriteString("\n\n")

	today := v.snap.TodayRecords
	var tokens domain.TokenCounts
	var cost float64
	for _, r := range today {
		tokens = tokens.Add(r.Tokens)
		cost += r.CostUSD
	}
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		labelStyle.Render(i18n.T("tokens")),
		valueStyle.Render(components.FormatNumber(tokens.Total())),
		labelStyle.Render(i18n.T("cost")),
		valueStyle.Render(components.FormatUSD(cost))))

	return cardStyle.Width(width - 2).Render(b.String())
}

func (v *LiveView) renderActive(b *domain.SessionBlock, width int) string {
	now := v.snap.GeneratedAt
	inner := width - 6

	var sb strings.Builder

	// Session window and remaining time
	sb.WriteString(titleStyle.Render(i18n.T("tab_live")))
	sb.WriteString("  ")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("%s → %s",
		b.StartTime.In(v.tz).Format("15:04"),
		b.EndTime.In(v.tz).Format("15:04"))))
	sb.WriteString("  ")
	sb.WriteString(valueStyle.Render(i18n.Tf("session_remaining",
		components.FormatDuration(b.EndTime.Sub(now)))))
	sb.WriteString("\n")

	elapsed := now.Sub(b.StartTime).Seconds() / b.EndTime.Sub(b.StartTime).Seconds()
	sb.WriteString(components.ProgressBar{Ratio: elapsed, Width: inner}.Render())
	sb.WriteString("\n\n")

	// Totals
	sb.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		labelStyle.Render(i18n.T("tokens")),
		valueStyle.Render(components.FormatNumber(b.Tokens.Total())),
		labelStyle.Render(i18n.T("cost")),
		valueStyle.Render(components.FormatUSD(b.CostUSD))))

	// Burn rate and projection
	sb.WriteString(fmt.Sprintf("%s %s  %s\n",
		labelStyle.Render(i18n.T("burn_rate")),
		valueStyle.Render(i18n.Tf("tokens_per_min", components.FormatCompact(int(b.BurnRate.TokensPerMinute)))),
		dimStyle.Render(i18n.Tf("cost_per_hour", b.BurnRate.CostPerHour))))
	sb.WriteString(fmt.Sprintf("%s %s / %s\n",
		labelStyle.Render(i18n.T("projection")),
		valueStyle.Render(components.FormatNumber(b.Projection.Tokens)),
		valueStyle.Render(components.FormatUSD(b.Projection.CostUSD))))

	// Quota utilization against the effective limit
	if limit := v.EffectiveTokenLimit(); limit > 0 {
		ratio := float64(b.Projection.Tokens) / float64(limit)
		limitLabel := components.FormatCompact(limit)
		if v.tokenLimit == 0 {
			limitLabel = i18n.Tf("limit_auto", limitLabel)
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render(i18n.T("token_limit")),
			valueStyle.Render(limitLabel)))
		sb.WriteString(components.ProgressBar{Ratio: ratio, Width: inner}.Render())
		sb.WriteString(fmt.Sprintf(" %.0f%%", ratio*100))
		sb.WriteString("\n")
	}

	// Model breakdown
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render(i18n.T("models")))
	sb.WriteString("\n")
	breakdown := make([]domain.ModelBreakdown, 0, len(b.Models))
	for _, mb := range b.Models {
		breakdown = append(breakdown, mb)
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Tokens > breakdown[j].Tokens })
	for _, mb := range breakdown {
		sb.WriteString(fmt.Sprintf("  %-28s %6.1f%%  %s\n",
			mb.Model, mb.Percentage, components.FormatUSD(mb.Cost)))
	}

	return cardStyle.Width(width - 2).Render(sb.String())
}
