package theme

import "github.com/charmbracelet/lipgloss"

// Base palette
var (
	ColorLavender = lipgloss.Color("#9f99d1")
	ColorSkyBlue  = lipgloss.Color("#86bada")
	ColorMauve    = lipgloss.Color("#dbaad7")
	ColorPeach    = lipgloss.Color("#f6bcb0")
	ColorGold     = lipgloss.Color("#ffe3b3")
)

// Background tones (dark theme)
var (
	ColorCardBg     = lipgloss.Color("#232438")
	ColorBorder     = lipgloss.Color("#3a3b52")
	ColorMutedText  = lipgloss.Color("#6b6d8a")
	ColorBodyText   = lipgloss.Color("#c8cad8")
	ColorBrightText = lipgloss.Color("#ecedf5")
)

// Status colors for quota/burn levels.
var (
	ColorOK      = lipgloss.Color("#9ad1a5")
	ColorWarning = lipgloss.Color("#ffe3b3")
	ColorDanger  = lipgloss.Color("#e08a8a")
)

// StatusColor maps a 0-1 utilization ratio to a severity color.
func StatusColor(ratio float64) lipgloss.Color {
	switch {
	case ratio >= 0.9:
		return ColorDanger
	case ratio >= 0.7:
		return ColorWarning
	default:
		return ColorOK
	}
}
