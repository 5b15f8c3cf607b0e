package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/theme"
)

// ProgressBar renders a horizontal utilization bar colored by severity.
type ProgressBar struct {
	Ratio float64 // 0.0 ~ N; visual fill caps at 1.0
	Width int
}

func (p ProgressBar) Render() string {
	w := p.Width
	if w < 4 {
		w = 4
	}

	ratio := p.Ratio
	if ratio < 0 {
		ratio = 0
	}
	fill := ratio
	if fill > 1 {
		fill = 1
	}

	filled := int(fill * float64(w))
	if filled > w {
		filled = w
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", w-filled)
	return lipgloss.NewStyle().Foreground(theme.StatusColor(ratio)).Render(bar)
}
