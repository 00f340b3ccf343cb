package viz

import "github.com/charmbracelet/lipgloss"

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ccff"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Value = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ccff"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)
)

// scoreRamp maps a stability score in [0,1] to a color: red for early
// escape through yellow to green for stable.
var scoreRamp = []lipgloss.Color{
	"#ff2222", "#ff5522", "#ff8822", "#ffbb22",
	"#ffee22", "#ccee22", "#88dd44", "#44cc66", "#00bb88",
}

func ScoreStyle(score float64) lipgloss.Style {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	idx := int(score * float64(len(scoreRamp)-1))
	return lipgloss.NewStyle().Foreground(scoreRamp[idx])
}
