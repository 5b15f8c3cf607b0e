package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/theme"
)

var chartEmptyStyle = lipgloss.NewStyle().Foreground(theme.ColorMutedText)

// RenderLineChart plots a single series as an ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return chartEmptyStyle.Render("no data")
	}
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderBarChart renders labeled horizontal bars scaled to the max value.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	maxLabelLen := 0
	for i, v := range values {
		if v > maxVal {
			maxVal = v
		}
		if i < len(labels) && len(labels[i]) > maxLabelLen {
			maxLabelLen = len(labels[i])
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	barWidth := width - maxLabelLen - 12
	if barWidth < 8 {
		barWidth = 8
	}

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		barLen := int(v / maxVal * float64(barWidth))
		line := fmt.Sprintf("%*s │%s %s",
			maxLabelLen, label,
			strings.Repeat("█", barLen),
			FormatUSD(v))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
