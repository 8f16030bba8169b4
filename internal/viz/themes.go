package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the explorer chrome. Frame pixels always come from the
// fractal color scheme.
type Theme struct {
	Name      string
	Bar       lipgloss.Color
	BarText   lipgloss.Color
	Badge     lipgloss.Color
	BadgeText lipgloss.Color
	Label     lipgloss.Color
	Value     lipgloss.Color
	Hint      lipgloss.Color
	Rule      lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeMidnight = Theme{
		Name:      "midnight",
		Bar:       lipgloss.Color("#1a1a2a"),
		BarText:   lipgloss.Color("#ccccdd"),
		Badge:     lipgloss.Color("#00ffff"),
		BadgeText: lipgloss.Color("#0a0a0a"),
		Label:     lipgloss.Color("#888899"),
		Value:     lipgloss.Color("#00ccff"),
		Hint:      lipgloss.Color("#666688"),
		Rule:      lipgloss.Color("#444466"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		Bar:       lipgloss.Color("#001100"),
		BarText:   lipgloss.Color("#00ff00"),
		Badge:     lipgloss.Color("#00cc00"),
		BadgeText: lipgloss.Color("#001100"),
		Label:     lipgloss.Color("#008800"),
		Value:     lipgloss.Color("#88ff88"),
		Hint:      lipgloss.Color("#005500"),
		Rule:      lipgloss.Color("#005500"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeEmber = Theme{
		Name:      "ember",
		Bar:       lipgloss.Color("#2d1b2e"),
		BarText:   lipgloss.Color("#fff5f5"),
		Badge:     lipgloss.Color("#ff6b6b"),
		BadgeText: lipgloss.Color("#2d1b2e"),
		Label:     lipgloss.Color("#8b6b8c"),
		Value:     lipgloss.Color("#feca57"),
		Hint:      lipgloss.Color("#8b6b8c"),
		Rule:      lipgloss.Color("#ff9ff3"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemePaper = Theme{
		Name:      "paper",
		Bar:       lipgloss.Color("#eeeeee"),
		BarText:   lipgloss.Color("#222222"),
		Badge:     lipgloss.Color("#0088ff"),
		BadgeText: lipgloss.Color("#ffffff"),
		Label:     lipgloss.Color("#777777"),
		Value:     lipgloss.Color("#003366"),
		Hint:      lipgloss.Color("#999999"),
		Rule:      lipgloss.Color("#cccccc"),
		Warning:   lipgloss.Color("#cc7700"),
		Error:     lipgloss.Color("#cc0000"),
	}

	CurrentTheme = ThemeMidnight

	Themes = []Theme{
		ThemeMidnight,
		ThemePhosphor,
		ThemeEmber,
		ThemePaper,
	}
)

// GetTheme looks a theme up by name.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// SetTheme switches the chrome styles to the named theme. Unknown names
// leave the current theme in place.
func SetTheme(name string) bool {
	t, ok := GetTheme(name)
	if ok {
		applyTheme(t)
	}
	return ok
}

// NextTheme returns the theme after the current one, wrapping around.
func NextTheme() Theme {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func applyTheme(t Theme) {
	CurrentTheme = t
	StatusBar = StatusBar.Foreground(t.BarText).Background(t.Bar)
	SchemeBadge = SchemeBadge.Foreground(t.BadgeText).Background(t.Badge)
	StatusRendering = StatusRendering.Foreground(t.Warning)
	StatusFailed = StatusFailed.Foreground(t.Error)
	MetricValue = MetricValue.Foreground(t.Value)
	MetricLabel = MetricLabel.Foreground(t.Label)
	KeyHint = KeyHint.Foreground(t.Hint)
	HeaderStyle = HeaderStyle.BorderForeground(t.Rule)
}
