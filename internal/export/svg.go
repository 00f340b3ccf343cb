package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/orbitlab/internal/stability"
)

// HeatmapSVG renders a stability grid as an SVG of colored cells,
// cellSize pixels each. Score 0 maps to red, 1 to green.
func HeatmapSVG(grid *stability.Grid, cellSize int) string {
	if grid == nil || len(grid.Scores) == 0 {
		return ""
	}

	cols := len(grid.XValues)
	rows := len(grid.YValues)
	width := cols * cellSize
	height := rows * cellSize

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for j, row := range grid.Scores {
		// SVG y grows downward; put the largest y offset on top.
		y := (rows - 1 - j) * cellSize
		for i, score := range row {
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, i*cellSize, y, cellSize, cellSize, scoreColor(score)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// scoreColor interpolates red -> yellow -> green across [0,1].
func scoreColor(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	var r, g int
	if score < 0.5 {
		r = 255
		g = int(score * 2 * 255)
	} else {
		r = int((1 - score) * 2 * 255)
		g = 255
	}
	return fmt.Sprintf("#%02x%02x22", r, g)
}

// TrajectorySVG draws one path per body from sampled XY positions, all
// autoscaled into the given pixel box.
func TrajectorySVG(paths [][]struct{ X, Y float64 }, width, height int) string {
	var all []struct{ X, Y float64 }
	for _, p := range paths {
		all = append(all, p...)
	}
	if len(all) < 2 {
		return ""
	}

	minX, maxX := all[0].X, all[0].X
	minY, maxY := all[0].Y, all[0].Y
	for _, p := range all {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	colors := []string{"#00ccff", "#ff8822", "#88dd44"}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for bi, path := range paths {
		if len(path) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, colors[bi%len(colors)]))
		for i, p := range path {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
