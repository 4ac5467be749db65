package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style is how a body is drawn. Radius is in canvas dots.
type Style struct {
	Radius int
	Color  lipgloss.Color
}

var bodyStyles = map[string]Style{
	"sun":     {Radius: 5, Color: "#fdf900"},
	"mercury": {Radius: 0, Color: "#828282"},
	"venus":   {Radius: 1, Color: "#7f6a4f"},
	"earth":   {Radius: 1, Color: "#66bfff"},
	"mars":    {Radius: 1, Color: "#e62937"},
	"jupiter": {Radius: 3, Color: "#ffa100"},
	"saturn":  {Radius: 3, Color: "#ffcb00"},
	"uranus":  {Radius: 2, Color: "#0079f1"},
	"neptune": {Radius: 2, Color: "#0052ac"},
}

var DefaultStyle = Style{Radius: 1, Color: "#ffffff"}

// StyleFor looks a body up by name, ignoring case. Unknown names get
// DefaultStyle.
func StyleFor(name string) Style {
	if s, ok := bodyStyles[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s
	}
	return DefaultStyle
}

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466"))

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusHalted = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

// Legend renders one colored marker per body name.
func Legend(names []string) string {
	parts := make([]string, len(names))
	for i, name := range names {
		marker := lipgloss.NewStyle().Foreground(StyleFor(name).Color).Render("●")
		parts[i] = marker + " " + name
	}
	return strings.Join(parts, "  ")
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values, scaled between their min and max.
// Higher values are drawn hotter.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - min) / rng
		idx := int(norm * float64(len(sparkChars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}

		c := string(sparkChars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}
