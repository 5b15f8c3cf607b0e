package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/domain"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/i18n"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/theme"
	"github.com/webcpu/ClaudeCodeUsage-sub006/internal/ui/components"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(theme.ColorMutedText).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(theme.ColorOK).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(theme.ColorMutedText)
)

// maxBlockRows caps the table; older blocks scroll out of interest anyway.
const maxBlockRows = 20

// BlocksView lists session blocks, newest first.
type BlocksView struct {
	blocks []domain.SessionBlock
	tz     *time.Location
}

func NewBlocksView(tz *time.Location) *BlocksView {
	return &BlocksView{tz: tz}
}

func (v *BlocksView) SetData(blocks []domain.SessionBlock) {
	v.blocks = blocks
}

func (v *BlocksView) Render(width int) string {
	if len(v.blocks) == 0 {
		return dimStyle.Render(i18n.T("no_data"))
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-18s %-8s %10s %12s  %s",
		"START", "STATUS", "COST", "TOKENS", "MODELS")))
	sb.WriteString("\n")

	shown := 0
	for i := len(v.blocks) - 1; i >= 0 && shown < maxBlockRows; i-- {
		b := v.blocks[i]
		status := i18n.T("session_done")
		style := doneStyle
		if b.IsActive {
			status = i18n.T("session_active")
			style = activeStyle
		}

		models := strings.Join(shortModels(b.ModelNames()), ",")
		row := fmt.Sprintf("%-18s %-8s %10s %12s  %s",
			b.StartTime.In(v.tz).Format("01-02 15:04"),
			status,
			components.FormatUSD(b.CostUSD),
			components.FormatCompact(b.Tokens.Total()),
			models)
		sb.WriteString(style.Render(row))
		sb.WriteString("\n")
		shown++
	}

	return sb.String()
}

// shortModels strips the claude- prefix and date suffixes for table width.
func shortModels(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimPrefix(n, "claude-")
		if i := strings.LastIndex(n, "-20"); i > 0 {
			n = n[:i]
		}
		out = append(out, n)
	}
	return out
}
