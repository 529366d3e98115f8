package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderLogo renders the "M O R E A C H" wordmark, letter-spaced, in the
// brand indigo.
func renderLogo() string {
	const text = "MOREACH"
	letters := make([]string, 0, len(text))
	for _, r := range text {
		letters = append(letters, logoStyle.Render(string(r)))
	}
	return strings.Join(letters, "  ")
}

var (
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6c8cff"))

	// Base styles — neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c8cff"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Forms
	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	// Campaign status colors
	statusColors = map[string]lipgloss.Color{
		"draft":     lipgloss.Color("#8890a0"),
		"active":    lipgloss.Color("#4ade80"),
		"paused":    lipgloss.Color("#f59e0b"),
		"completed": lipgloss.Color("#60a0e0"),
	}
)

// statusStyle returns a colored style for a campaign status.
func statusStyle(status string) lipgloss.Style {
	if c, ok := statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

// helpLine renders alternating key/label pairs for the bottom help bar.
func helpLine(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(helpLabelStyle.Render("  ·  "))
		}
		b.WriteString(helpKeyStyle.Render(pairs[i]) + " " + helpLabelStyle.Render(pairs[i+1]))
	}
	return b.String()
}
