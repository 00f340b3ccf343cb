package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitlab/internal/analysis"
	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/export"
	"github.com/san-kum/orbitlab/internal/gravity"
	"github.com/san-kum/orbitlab/internal/metrics"
	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/storage"
	"github.com/san-kum/orbitlab/internal/tui"
	"github.com/san-kum/orbitlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	step       float64
	duration   float64
	live       bool
	// Sweep flags
	xParam  string
	xMin    float64
	xMax    float64
	xSteps  int
	yParam  string
	yMin    float64
	yMax    float64
	ySteps  int
	budget  int
	sweepDt float64
	escape  float64
	workers int
	svgOut  string
	noSave  bool
	// Lyapunov flags
	lyapDuration float64
	perturbation float64
	// Run/config flags
	scheme    string
	cfgOut    string
	exportOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitlab",
		Short: "three-body gravity simulation and stability sweeps",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&step, "step", 0, "physics sub-step (seconds, 0 = preset value)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration (seconds, 0 = preset value)")
	runCmd.Flags().StringVar(&scheme, "integrator", "", "integration scheme: rk4 or leapfrog")
	runCmd.Flags().BoolVar(&live, "live", false, "interactive live view")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the trajectories to an svg file")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip writing the run to the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep a 2D grid of perturbations and map stability",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&xParam, "x-param", "", "x perturbation target (e.g. vel_x_3)")
	sweepCmd.Flags().Float64Var(&xMin, "x-min", 0, "x offset range start")
	sweepCmd.Flags().Float64Var(&xMax, "x-max", 0, "x offset range end")
	sweepCmd.Flags().IntVar(&xSteps, "x-steps", 0, "x grid resolution")
	sweepCmd.Flags().StringVar(&yParam, "y-param", "", "y perturbation target (e.g. mass_3)")
	sweepCmd.Flags().Float64Var(&yMin, "y-min", 0, "y offset range start")
	sweepCmd.Flags().Float64Var(&yMax, "y-max", 0, "y offset range end")
	sweepCmd.Flags().IntVar(&ySteps, "y-steps", 0, "y grid resolution")
	sweepCmd.Flags().IntVar(&budget, "budget", 0, "step budget per cell")
	sweepCmd.Flags().Float64Var(&sweepDt, "dt", 0, "coarse step size")
	sweepCmd.Flags().Float64Var(&escape, "escape", 0, "escape radius")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all cores)")
	sweepCmd.Flags().StringVar(&svgOut, "svg", "", "write the heatmap to an svg file")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "skip writing the sweep to the data directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [preset]",
		Short: "estimate the divergence exponent of a configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLyapunov,
	}
	lyapunovCmd.Flags().Float64Var(&lyapDuration, "time", 50.0, "duration (seconds)")
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-6, "initial separation")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored results",
		RunE:  listResults,
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "show a stored result's metadata and location",
		Args:  cobra.ExactArgs(1),
		RunE:  showResult,
	}

	configCmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "write a preset's configuration to a yaml file for editing",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVarP(&cfgOut, "out", "o", "orbitlab.yaml", "output file")

	exportCmd := &cobra.Command{
		Use:   "export <id>",
		Short: "render a stored result to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportResult,
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default <id>.svg)")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "compare integrator throughput and energy drift",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().Float64Var(&duration, "time", 0, "duration (seconds, 0 = preset value)")

	rootCmd.AddCommand(runCmd, sweepCmd, presetsCmd, lyapunovCmd, listCmd, showCmd, configCmd, exportCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the preset argument and config file into a single
// Config; an explicit config file overrides the preset.
func loadConfig(args []string) (*config.Config, string, error) {
	preset := "binary"
	if len(args) > 0 {
		preset = args[0]
	}

	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		preset = filepath.Base(configFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, preset, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, preset, err := loadConfig(args)
	if err != nil {
		return err
	}
	if step > 0 {
		cfg.Step = step
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if scheme != "" {
		cfg.Integrator = scheme
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := cfg.Simulator()
	if err != nil {
		return err
	}

	if live {
		return tui.Run(s, worldScale(cfg.BodySet()))
	}

	diagnostics := []metrics.Metric{
		metrics.NewEnergyDrift(cfg.Accelerator()),
		metrics.NewMomentumDrift(),
		metrics.NewMaxRadius(),
	}
	for _, m := range diagnostics {
		s.AddObserver(m)
	}

	var (
		times  []float64
		states []orbit.Bodies
		energy []float64
	)
	trajectories := viz.NewTrajectoryPlot(orbit.BodyCount)

	// Sample roughly 500 states regardless of duration.
	sampleEvery := int(cfg.Duration / cfg.Step / 500)
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	record := func() {
		bodies := s.Snapshot()
		t := s.Time()
		times = append(times, t)
		states = append(states, bodies)
		energy = append(energy, s.TotalEnergy())
		trajectories.Sample(bodies)
	}

	record()
	steps := int(cfg.Duration / cfg.Step)
	for i := 0; i < steps; i++ {
		s.Advance(cfg.Step)
		if (i+1)%sampleEvery == 0 {
			record()
		}
	}

	fmt.Println(trajectories.Render(70, 24))
	fmt.Println(viz.EnergyPlot(energy, 70, 12))

	if svgOut != "" {
		paths := make([][]struct{ X, Y float64 }, orbit.BodyCount)
		for _, bodies := range states {
			for i := range bodies {
				paths[i] = append(paths[i], struct{ X, Y float64 }{bodies[i].Position.X, bodies[i].Position.Y})
			}
		}
		if err := os.WriteFile(svgOut, []byte(export.TrajectorySVG(paths, 800, 800)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", s.Steps())
	fmt.Fprintf(w, "sim time\t%.2fs\n", s.Time())
	fmt.Fprintf(w, "angular momentum (z)\t%.6g\n", gravity.AngularMomentum(s.Snapshot()))
	for _, m := range diagnostics {
		fmt.Fprintf(w, "%s\t%.3e\n", m.Name(), m.Value())
	}
	w.Flush()

	if noSave {
		return nil
	}

	results := make(map[string]float64, len(diagnostics))
	for _, m := range diagnostics {
		results[m.Name()] = m.Value()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.SaveRun(storage.Metadata{
		Preset:    preset,
		G:         cfg.G,
		Softening: cfg.Softening,
		Step:      cfg.Step,
		Duration:  cfg.Duration,
		Metrics:   results,
	}, times, states)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s\n", id)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, preset, err := loadConfig(args)
	if err != nil {
		return err
	}

	// Flags override the config's sweep section one field at a time.
	if xParam != "" {
		cfg.Sweep.XParam = xParam
	}
	if yParam != "" {
		cfg.Sweep.YParam = yParam
	}
	if cmd.Flags().Changed("x-min") {
		cfg.Sweep.XMin = xMin
	}
	if cmd.Flags().Changed("x-max") {
		cfg.Sweep.XMax = xMax
	}
	if xSteps > 0 {
		cfg.Sweep.XSteps = xSteps
	}
	if cmd.Flags().Changed("y-min") {
		cfg.Sweep.YMin = yMin
	}
	if cmd.Flags().Changed("y-max") {
		cfg.Sweep.YMax = yMax
	}
	if ySteps > 0 {
		cfg.Sweep.YSteps = ySteps
	}
	if budget > 0 {
		cfg.Sweep.Budget = budget
	}
	if sweepDt > 0 {
		cfg.Sweep.Dt = sweepDt
	}
	if escape > 0 {
		cfg.Sweep.EscapeRadius = escape
	}
	if workers > 0 {
		cfg.Sweep.Workers = workers
	}

	spec, err := cfg.SweepSpec()
	if err != nil {
		return err
	}
	ev := cfg.Evaluator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	grid, err := ev.Sweep(ctx, cfg.BodySet(), spec)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(viz.Heatmap(grid))
	fmt.Printf("%d cells in %s\n", spec.XSteps*spec.YSteps, elapsed.Round(time.Millisecond))

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.HeatmapSVG(grid, 8)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.SaveSweep(storage.Metadata{
		Preset:    preset,
		G:         cfg.G,
		Softening: cfg.Softening,
		Step:      ev.Dt,
	}, grid)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s\n", id)
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}

	lambda := analysis.DivergenceExponent(cfg.BodySet(), cfg.G, cfg.Softening, perturbation, cfg.Step, lyapDuration)

	fmt.Printf("divergence exponent: %.6f\n", lambda)
	if lambda > 0 {
		fmt.Println("positive: nearby trajectories separate exponentially (chaotic)")
	} else {
		fmt.Println("non-positive: no exponential divergence detected")
	}
	return nil
}

func listResults(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	metas, err := st.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("no stored results")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tPRESET\tWHEN")
	for _, m := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Kind, m.Preset, m.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func showResult(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", meta.ID)
	fmt.Fprintf(w, "kind\t%s\n", meta.Kind)
	fmt.Fprintf(w, "preset\t%s\n", meta.Preset)
	fmt.Fprintf(w, "when\t%s\n", meta.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(w, "g\t%g\n", meta.G)
	fmt.Fprintf(w, "softening\t%g\n", meta.Softening)
	fmt.Fprintf(w, "step\t%g\n", meta.Step)
	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, meta.Metrics[name])
	}
	fmt.Fprintf(w, "path\t%s\n", st.ResultPath(meta.ID))
	return w.Flush()
}

func exportResult(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = meta.ID + ".svg"
	}

	var svg string
	switch meta.Kind {
	case "sweep":
		grid, err := st.LoadSweep(meta.ID)
		if err != nil {
			return err
		}
		svg = export.HeatmapSVG(grid, 8)
	case "run":
		_, states, err := st.LoadRun(meta.ID)
		if err != nil {
			return err
		}
		if len(states) == 0 {
			return fmt.Errorf("run %s has no sampled states", meta.ID)
		}
		paths := make([][]struct{ X, Y float64 }, len(states[0]))
		for _, bodies := range states {
			for i := range bodies {
				paths[i] = append(paths[i], struct{ X, Y float64 }{bodies[i].Position.X, bodies[i].Position.Y})
			}
		}
		svg = export.TrajectorySVG(paths, 800, 800)
	default:
		return fmt.Errorf("unknown result kind %q", meta.Kind)
	}

	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	steps := int(cfg.Duration / cfg.Step)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tELAPSED\tSTEPS/S\tENERGY DRIFT")

	for _, name := range []string{"rk4", "leapfrog"} {
		cfg.Integrator = name
		s, err := cfg.Simulator()
		if err != nil {
			return err
		}
		drift := metrics.NewEnergyDrift(cfg.Accelerator())
		s.AddObserver(drift)

		start := time.Now()
		for i := 0; i < steps; i++ {
			s.Advance(cfg.Step)
		}
		elapsed := time.Since(start)

		rate := float64(s.Steps()) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%s\t%.0f\t%.3e\n",
			name, s.Steps(), elapsed.Round(time.Microsecond), rate, drift.Value())
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	if err := config.Save(cfgOut, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", cfgOut)
	return nil
}

// worldScale picks a live-view extent comfortably larger than the
// initial configuration.
func worldScale(bodies orbit.Bodies) float64 {
	max := 1.0
	for i := range bodies {
		if r := bodies[i].Position.Magnitude(); r > max {
			max = r
		}
	}
	return max * 4
}
