package viz

import (
	"github.com/guptarohit/asciigraph"
)

// EnergyPlot renders an energy time series as a terminal line plot.
func EnergyPlot(series []float64, width, height int) string {
	if len(series) < 2 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("total energy"))
}
