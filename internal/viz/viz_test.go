package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/stability"
	"github.com/san-kum/orbitlab/internal/vec"
)

func TestHeatmap_Shape(t *testing.T) {
	grid := &stability.Grid{
		XParam:  "vel_x_3",
		YParam:  "mass_3",
		XValues: []float64{0, 1, 2},
		YValues: []float64{-1, 1},
		Scores:  [][]float64{{1, 0.5, 0}, {0.25, 0.75, 1}},
	}

	out := Heatmap(grid)

	if !strings.Contains(out, "vel_x_3") || !strings.Contains(out, "mass_3") {
		t.Error("heatmap missing axis labels")
	}
	// title + 2 score rows + axis row + legend
	if got := strings.Count(out, "\n"); got != 5 {
		t.Errorf("expected 5 lines, got %d", got)
	}
}

func TestShade_Ordering(t *testing.T) {
	scores := []float64{0, 0.3, 0.6, 0.8, 1}
	runes := map[rune]bool{}
	for _, s := range scores {
		runes[shade(s)] = true
	}
	if len(runes) != 5 {
		t.Errorf("expected 5 distinct shades, got %d", len(runes))
	}
}

func TestCanvas_SetAndRender(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(-1, 0) // out of bounds, ignored
	c.Set(100, 100)

	out := c.String()
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", out)
	}
	if !strings.ContainsRune(out, 0x2801) {
		t.Error("top-left dot not set")
	}
}

func TestTrajectoryPlot(t *testing.T) {
	p := NewTrajectoryPlot(2)
	bodies := orbit.Bodies{
		{Position: vec.Vector3{X: -100}, Mass: 1},
		{Position: vec.Vector3{X: 100}, Mass: 1},
	}

	for i := 0; i < 10; i++ {
		bodies[0].Position.Y += 5
		bodies[1].Position.Y -= 5
		p.Sample(bodies)
	}

	out := p.Render(20, 8)
	if strings.Count(out, "\n") != 8 {
		t.Errorf("expected 8 lines, got %d", strings.Count(out, "\n"))
	}
	lit := false
	for _, r := range out {
		if r > 0x2800 && r <= 0x28ff {
			lit = true
			break
		}
	}
	if !lit {
		t.Error("expected some pixels set")
	}
}

func TestEnergyPlot(t *testing.T) {
	series := []float64{-100, -100.5, -99.8, -100.2}
	out := EnergyPlot(series, 40, 8)
	if out == "" {
		t.Error("expected plot output")
	}

	if EnergyPlot([]float64{1}, 40, 8) != "" {
		t.Error("single-sample series should render nothing")
	}
}
