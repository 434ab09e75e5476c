package config

import (
	"github.com/charmbracelet/lipgloss"
)

// Style holds the lipgloss styles used by the timer TUI.
type Style struct {
	Base       lipgloss.Style
	Main       lipgloss.Style
	Secondary  lipgloss.Style
	Hint       lipgloss.Style
	Work       lipgloss.Style
	ShortBreak lipgloss.Style
	LongBreak  lipgloss.Style
}

const basePadding = 2

// newStyle derives the TUI styles from the configured session colors.
func newStyle(c *Config) Style {
	hint := lipgloss.Color("240")
	secondary := lipgloss.Color("245")

	if !c.Display.DarkTheme {
		hint = lipgloss.Color("250")
		secondary = lipgloss.Color("249")
	}

	return Style{
		Base: lipgloss.NewStyle().Padding(1, basePadding),
		Main: lipgloss.NewStyle().Bold(true),
		Secondary: lipgloss.NewStyle().
			Foreground(secondary),
		Hint: lipgloss.NewStyle().
			Foreground(hint).
			PaddingLeft(1),
		Work: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Work.Color)).
			SetString("[Work]"),
		ShortBreak: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.ShortBreak.Color)).
			SetString("[Short break]"),
		LongBreak: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.LongBreak.Color)).
			SetString("[Long break]"),
	}
}
