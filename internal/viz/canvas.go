package viz

import (
	"strings"

	"github.com/san-kum/orbitlab/internal/orbit"
)

// Braille patterns: 2x4 dots per character cell, unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille sub-pixel canvas. A w x h character canvas has
// (w*2) x (h*4) addressable pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// TrajectoryPlot accumulates XY projections of body positions and draws
// them on a canvas autoscaled to the visited extent.
type TrajectoryPlot struct {
	points [][]struct{ x, y float64 }
}

func NewTrajectoryPlot(bodies int) *TrajectoryPlot {
	return &TrajectoryPlot{points: make([][]struct{ x, y float64 }, bodies)}
}

// Sample records the XY projection of each body's current position.
func (p *TrajectoryPlot) Sample(bodies orbit.Bodies) {
	for i := range bodies {
		if i >= len(p.points) {
			break
		}
		p.points[i] = append(p.points[i], struct{ x, y float64 }{bodies[i].Position.X, bodies[i].Position.Y})
	}
}

// Render draws all recorded trajectories onto a fresh canvas.
func (p *TrajectoryPlot) Render(w, h int) string {
	minX, maxX, minY, maxY := p.bounds()
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	c := NewCanvas(w, h)
	pw := float64(w*2 - 1)
	ph := float64(h*4 - 1)

	for _, pts := range p.points {
		for _, pt := range pts {
			x := int((pt.x - minX) / spanX * pw)
			y := int(ph - (pt.y-minY)/spanY*ph)
			c.Set(x, y)
		}
	}
	return c.String()
}

func (p *TrajectoryPlot) bounds() (minX, maxX, minY, maxY float64) {
	first := true
	for _, pts := range p.points {
		for _, pt := range pts {
			if first {
				minX, maxX, minY, maxY = pt.x, pt.x, pt.y, pt.y
				first = false
				continue
			}
			if pt.x < minX {
				minX = pt.x
			}
			if pt.x > maxX {
				maxX = pt.x
			}
			if pt.y < minY {
				minY = pt.y
			}
			if pt.y > maxY {
				maxY = pt.y
			}
		}
	}
	return
}
