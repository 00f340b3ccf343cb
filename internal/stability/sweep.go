package stability

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/orbitlab/internal/orbit"
)

// SweepSpec describes a 2D grid of perturbation offsets.
type SweepSpec struct {
	XParam, YParam Param
	XMin, XMax     float64
	YMin, YMax     float64
	XSteps, YSteps int
	Workers        int // 0 means GOMAXPROCS-sized
}

// Grid is the scalar stability field a sweep produces. Scores[j][i] is
// the score at (XValues[i], YValues[j]); 0 means escaped early, 1 means
// stable through the full budget.
type Grid struct {
	XParam, YParam   string
	XValues, YValues []float64
	Scores           [][]float64
}

// Sweep evaluates every grid cell, fanning rows out over a worker pool.
// Cells share nothing mutable, so no synchronization beyond the work
// queue is needed. Cancellation takes effect at cell boundaries; a
// canceled sweep returns the context error and the partially filled
// grid is discarded.
func (e *Evaluator) Sweep(ctx context.Context, base orbit.Bodies, spec SweepSpec) (*Grid, error) {
	if spec.XSteps < 1 || spec.YSteps < 1 {
		return nil, fmt.Errorf("sweep grid must be at least 1x1, got %dx%d", spec.XSteps, spec.YSteps)
	}

	grid := &Grid{
		XParam:  spec.XParam.String(),
		YParam:  spec.YParam.String(),
		XValues: linspace(spec.XMin, spec.XMax, spec.XSteps),
		YValues: linspace(spec.YMin, spec.YMax, spec.YSteps),
		Scores:  make([][]float64, spec.YSteps),
	}
	for j := range grid.Scores {
		grid.Scores[j] = make([]float64, spec.XSteps)
	}

	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rows := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				for i, x := range grid.XValues {
					select {
					case <-ctx.Done():
						return
					default:
					}
					grid.Scores[j][i] = e.Evaluate(base, spec.XParam, x, spec.YParam, grid.YValues[j])
				}
			}
		}()
	}

	for j := 0; j < spec.YSteps; j++ {
		select {
		case <-ctx.Done():
		case rows <- j:
		}
	}
	close(rows)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return grid, nil
}

func linspace(min, max float64, steps int) []float64 {
	vals := make([]float64, steps)
	if steps == 1 {
		vals[0] = min
		return vals
	}
	span := (max - min) / float64(steps-1)
	for i := range vals {
		vals[i] = min + float64(i)*span
	}
	return vals
}
