package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	textColor      = lipgloss.Color("#F9FAFB") // Light gray
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 1).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Width(22)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	goodStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	badStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	neutralStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)
)

// Tone colours a metric's note
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneBad
)

func (t Tone) style() lipgloss.Style {
	switch t {
	case ToneGood:
		return goodStyle
	case ToneBad:
		return badStyle
	default:
		return neutralStyle
	}
}

// RenderMetric renders a metric with label, value, and optional note
func RenderMetric(label, value, note string, tone Tone) string {
	parts := []string{metricLabelStyle.Render(label), metricValueStyle.Render(value)}
	if note != "" {
		parts = append(parts, tone.style().Render(" "+note))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

// RenderCard renders a titled bordered box around lines
func RenderCard(title string, lines ...string) string {
	content := append([]string{cardTitleStyle.Render(title)}, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// RenderProgressBar renders an ASCII progress bar
func RenderProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return goodStyle.Render(strings.Repeat("█", filled)) + neutralStyle.Render(strings.Repeat("░", width-filled))
}
