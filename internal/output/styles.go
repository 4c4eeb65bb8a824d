package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan marks identifiable nouns: project names, paths, preset names.
	ColorCyan = lipgloss.Color("14")

	// ColorBlue is the brand accent used by the banner.
	ColorBlue = lipgloss.Color("33")

	// ColorYellow marks warnings and available updates.
	ColorYellow = lipgloss.Color("220")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorRed is used for the failure cross.
	ColorRed = lipgloss.Color("196")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	StyleNoun    = lipgloss.NewStyle().Foreground(ColorCyan)
	StyleDim     = lipgloss.NewStyle().Faint(true)
	StyleSummary = lipgloss.NewStyle().Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleBanner  = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	StyleLabel   = lipgloss.NewStyle().Foreground(ColorCyan)
)

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCross renders a red cross with a message.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Foreground(ColorRed).Render("✖")
	return cross + " " + msg
}

// FormatField renders an indented "Label: value" line as used by undo and
// use-preset summaries.
func FormatField(label, value string) string {
	return "  " + StyleLabel.Render(label+":") + " " + value
}

// UpdateBox renders the update-available notice in a rounded box.
func UpdateBox(lines ...string) string {
	body := ""
	for i, l := range lines {
		if i > 0 {
			body += "\n"
		}
		body += l
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 2).
		Render(body)
}
