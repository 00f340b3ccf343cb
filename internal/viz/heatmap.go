package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/orbitlab/internal/stability"
)

// shade picks a block character by score so the structure survives even
// on terminals without color.
func shade(score float64) rune {
	switch {
	case score >= 0.999:
		return '█'
	case score >= 0.75:
		return '▓'
	case score >= 0.5:
		return '▒'
	case score >= 0.25:
		return '░'
	default:
		return '·'
	}
}

// Heatmap renders a stability grid for the terminal, y axis down the
// left, colored by score. Rows are printed top-to-bottom with the
// largest y offset first.
func Heatmap(grid *stability.Grid) string {
	var sb strings.Builder

	sb.WriteString(Title.Render(fmt.Sprintf("stability: %s vs %s", grid.XParam, grid.YParam)))
	sb.WriteString("\n")

	for j := len(grid.Scores) - 1; j >= 0; j-- {
		sb.WriteString(Label.Render(fmt.Sprintf("%9.3f ", grid.YValues[j])))
		for _, score := range grid.Scores[j] {
			sb.WriteString(ScoreStyle(score).Render(string(shade(score))))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(Label.Render(fmt.Sprintf("%9s ", grid.XParam)))
	sb.WriteString(Label.Render(fmt.Sprintf("%.3f", grid.XValues[0])))
	pad := len(grid.XValues) - len(fmt.Sprintf("%.3f", grid.XValues[0])) - len(fmt.Sprintf("%.3f", grid.XValues[len(grid.XValues)-1]))
	if pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
	sb.WriteString(Label.Render(fmt.Sprintf("%.3f", grid.XValues[len(grid.XValues)-1])))
	sb.WriteString("\n")
	sb.WriteString(KeyHint.Render("█ stable through budget · escaped early"))
	sb.WriteString("\n")

	return sb.String()
}
