package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the chrome around the swarm. Particles keep their palette
// colors unless Monochrome is set.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Monochrome bool
}

var (
	ThemeEvergreen = Theme{
		Name:      "evergreen",
		Primary:   lipgloss.Color("#2e8b57"),
		Secondary: lipgloss.Color("#8fbc8f"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#f0fff0"),
		Muted:     lipgloss.Color("#4f6f5f"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeEmber = Theme{
		Name:      "ember",
		Primary:   lipgloss.Color("#ff6b35"),
		Secondary: lipgloss.Color("#f7c59f"),
		Accent:    lipgloss.Color("#ffb347"),
		Text:      lipgloss.Color("#fff5f0"),
		Muted:     lipgloss.Color("#8b5a4a"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemeFrost = Theme{
		Name:      "frost",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#a0d8ef"),
		Accent:    lipgloss.Color("#e0f7ff"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeMono = Theme{
		Name:       "mono",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
		Monochrome: true,
	}

	Themes = []Theme{ThemeEvergreen, ThemeEmber, ThemeFrost, ThemeMono}
)

// GetTheme returns a theme by name, falling back to evergreen.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEvergreen
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
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

type styles struct {
	header, label, value, status, warn, chart, help, panel lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		status: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		warn:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		chart:  lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(statsWidth),
	}
}
