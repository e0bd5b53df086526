package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/update"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// OutcomeColors maps update outcomes to badge colors.
	OutcomeColors map[update.Outcome]string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Name string

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style

	outcomeColors map[update.Outcome]string
	background    string
	muted         string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Name: t.Name,

		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		AccentText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		outcomeColors: t.OutcomeColors,
		background:    t.Background,
		muted:         t.Muted,
	}
}

// OutcomeStyle returns a badge style for an update outcome.
func (s Styles) OutcomeStyle(o update.Outcome) lipgloss.Style {
	color := s.outcomeColors[o]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan

		OutcomeColors: map[update.Outcome]string{
			update.OutcomePending:         "#63cdcf", // cyan
			update.OutcomeUpdateAvailable: "#dbc074", // yellow
			update.OutcomeLatest:          "#81b29a", // green
			update.OutcomeSilentLatest:    "#71839b", // fg3
			update.OutcomeFailed:          "#c94f6d", // red
		},
	}
}
