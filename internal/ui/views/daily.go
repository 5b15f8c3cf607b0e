package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/i18n"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/monitor"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/ui/components"
)

// maxDailyRows caps the per-day table at roughly a month of history.
const maxDailyRows = 31

// DailyView renders per-day rollups plus today's hourly cost curve.
type DailyView struct {
	snap *monitor.Snapshot
	tz   *time.Location
}

func NewDailyView(tz *time.Location) *DailyView {
	return &DailyView{tz: tz}
}

func (v *DailyView) SetData(snap *monitor.Snapshot) {
	v.snap = snap
}

func (v *DailyView) Render(width int) string {
	if v.snap == nil || len(v.snap.AllRecords) == 0 {
		return dimStyle.Render(i18n.T("no_data"))
	}

	var sb strings.Builder

	// Headline totals
	stats := v.snap.Stats
	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %d\n\n",
		labelStyle.Render(i18n.T("total_cost")),
		valueStyle.Render(components.FormatUSD(stats.TotalCost)),
		labelStyle.Render(i18n.T("tokens")),
		valueStyle.Render(components.FormatCompact(stats.Tokens.Total())),
		labelStyle.Render(i18n.T("sessions")),
		stats.SessionCount))

	// Today's hourly cost curve
	hourly := domain.HourlyCosts(v.snap.TodayRecords, v.tz)
	sb.WriteString(labelStyle.Render(i18n.T("hourly_costs")))
	sb.WriteString("\n")
	sb.WriteString(components.RenderLineChart(hourly[:], width-10, 6, ""))
	sb.WriteString("\n\n")

	// Per-day table, newest last (ByDate is ascending)
	days := stats.ByDate
	if len(days) > maxDailyRows {
		days = days[len(days)-maxDailyRows:]
	}
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %10s %12s %8s",
		"DATE", "COST", "TOKENS", "CALLS")))
	sb.WriteString("\n")
	for _, d := range days {
		sb.WriteString(fmt.Sprintf("%-12s %10s %12s %8d\n",
			d.Date,
			components.FormatUSD(d.CostUSD),
			components.FormatCompact(d.Tokens.Total()),
			d.Records))
	}

	// Cost split per model
	if len(stats.ByModel) > 0 {
		values := make([]float64, 0, len(stats.ByModel))
		labels := make([]string, 0, len(stats.ByModel))
		for _, m := range stats.ByModel {
			values = append(values, m.CostUSD)
			labels = append(labels, shortModels([]string{m.Model})[0])
		}
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render(i18n.T("models")))
		sb.WriteString("\n")
		sb.WriteString(components.RenderBarChart(values, labels, width-4))
		sb.WriteString("\n")
	}

	return sb.String()
}
