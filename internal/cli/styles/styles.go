package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette
const (
	accent  = "#7D56F4"
	subtle  = "#6C7086"
	normal  = "#CDD6F4"
	red     = "#F38BA8"
	orange  = "#FAB387"
	yellow  = "#F9E2AF"
	green   = "#A6E3A1"
	surface = "#1E1E2E"
)

var (
	// Card styles
	CardWidth = 80
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(1, 2).
			Width(CardWidth)

	// Text styles
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(normal))
	SubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(subtle))
	LabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)) // field labels like "Score:"
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(normal))
	SectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)).MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(green))
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(red))
)

var levelColors = map[string]string{
	"critical": red,
	"high":     orange,
	"medium":   yellow,
	"low":      green,
}

// LevelBadge renders a priority or risk level as a colored chip
func LevelBadge(level string) string {
	color, ok := levelColors[strings.ToLower(level)]
	if !ok {
		color = subtle
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(surface)).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(strings.ToUpper(level))
}

// Field renders "Label: value"
func Field(label string, value any) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(fmt.Sprint(value))
}

// Section renders a section header
func Section(title string) string {
	return SectionStyle.Render(title)
}

// RenderCard wraps content in a styled card border
func RenderCard(lines ...string) string {
	return CardStyle.Render(strings.Join(lines, "\n"))
}

// Success renders a one-line confirmation
func Success(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

// Bar renders a 0..1 value as a fixed-width bar
func Bar(v float64, width int) string {
	v = min(max(v, 0), 1)
	filled := int(v*float64(width) + 0.5)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Render(strings.Repeat("█", filled)) +
		SubtitleStyle.Render(strings.Repeat("░", width-filled))
}

// ColoredText renders text in a #RRGGBB color, falling back to the normal text color
func ColoredText(text, hex string) string {
	if hex == "" {
		hex = normal
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex)).Render(text)
}
