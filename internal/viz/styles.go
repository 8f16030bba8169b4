package viz

import (
	"github.com/charmbracelet/lipgloss"
)

// Status bar styles
var (
	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ccccdd")).
			Background(lipgloss.Color("#1a1a2a"))

	// Scheme badge
	SchemeBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0a0a0a")).
			Background(lipgloss.Color("#00ffff")).
			Padding(0, 1)

	StatusRendering = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	// Metric value style
	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	// Metric label style
	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	// Key hint style
	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))
)

// Metric renders "label value" with the metric styles.
func Metric(label, value string) string {
	return MetricLabel.Render(label) + " " + MetricValue.Render(value)
}
