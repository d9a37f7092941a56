package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the scope colours.
type Theme struct {
	Name   string
	Trace  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Error  lipgloss.Color
}

var (
	ThemePhosphor = Theme{
		Name:   "phosphor",
		Trace:  lipgloss.Color("#33ff66"),
		Label:  lipgloss.Color("#119933"),
		Value:  lipgloss.Color("#ccffcc"),
		Muted:  lipgloss.Color("#005500"),
		Border: lipgloss.Color("#114411"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeAmber = Theme{
		Name:   "amber",
		Trace:  lipgloss.Color("#ffb000"),
		Label:  lipgloss.Color("#aa7700"),
		Value:  lipgloss.Color("#ffe0a0"),
		Muted:  lipgloss.Color("#664400"),
		Border: lipgloss.Color("#443300"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Trace:  lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#888888"),
		Value:  lipgloss.Color("#dddddd"),
		Muted:  lipgloss.Color("#555555"),
		Border: lipgloss.Color("#444444"),
		Error:  lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemePhosphor, ThemeAmber, ThemeMinimal}
)

// GetTheme returns a theme by name, defaulting to phosphor.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePhosphor
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

type styles struct {
	trace, label, value, muted, err lipgloss.Style
	panel, header                  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		trace:  lipgloss.NewStyle().Foreground(t.Trace),
		label:  lipgloss.NewStyle().Foreground(t.Label).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Value),
		muted:  lipgloss.NewStyle().Foreground(t.Muted),
		err:    lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		header: lipgloss.NewStyle().Foreground(t.Trace).Bold(true).MarginBottom(1),
	}
}
