package render

import "github.com/charmbracelet/lipgloss"

// Theme defines colors and glyphs for terminal rendering.
type Theme struct {
	Name       string
	Expression lipgloss.Style // the copy-pasteable clamp() line
	Label      lipgloss.Style
	Value      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Muted      lipgloss.Style
	Icons      ThemeIcons
}

// ThemeIcons defines the glyph set for a theme.
type ThemeIcons struct {
	Pass   string
	Warn   string
	Bullet string
	Arrow  string
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:       "default",
		Expression: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")), // blue
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),           // gray
		Value:      lipgloss.NewStyle(),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Icons: ThemeIcons{
			Pass:   "✓",
			Warn:   "⚠",
			Bullet: "·",
			Arrow:  "→",
		},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:       "orca",
		Expression: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")), // pale blue
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),           // lighter gray
		Value:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Icons: ThemeIcons{
			Pass:   "✓",
			Warn:   "!",
			Bullet: "·",
			Arrow:  "→",
		},
	}
}

// MonoTheme returns a monochrome theme (no colors, ASCII glyphs).
func MonoTheme() Theme {
	return Theme{
		Name:       "mono",
		Expression: lipgloss.NewStyle().Bold(true),
		Label:      lipgloss.NewStyle(),
		Value:      lipgloss.NewStyle(),
		Success:    lipgloss.NewStyle(),
		Warning:    lipgloss.NewStyle(),
		Muted:      lipgloss.NewStyle(),
		Icons: ThemeIcons{
			Pass:   "+",
			Warn:   "!",
			Bullet: "-",
			Arrow:  "->",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
