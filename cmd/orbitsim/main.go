package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/gui"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	dataDir     string
	logLevel    string
	configFile  string
	preset      string
	dt          float64
	zoom        float64
	workers     int
	steps       int
	shotSteps   int
	sampleEvery int
	liveFPS     int
	guiFPS      int
	outFile     string
	svgFile     string
	width       int
	height      int
	braille     bool
	dtSweep     []float64

	log = logrus.New()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "2D gravitational n-body sandbox",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			log.SetOutput(os.Stderr)
			return nil
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".orbitsim", "data directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&configFile, "config", "", "scenario file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use a built-in scenario")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	pf.Float64Var(&zoom, "zoom", config.DefaultZoom, "initial camera zoom")
	pf.IntVar(&workers, "workers", 1, "force accumulation workers")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store its trajectory",
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&steps, "steps", 5000, "number of ticks")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 5, "record positions every n ticks")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&liveFPS, "fps", 30, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run simulation in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&guiFPS, "fps", 60, "frame rate")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "advance a scenario and render one frame as SVG",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&shotSteps, "steps", 1000, "number of ticks before the frame")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().IntVar(&width, "width", 1000, "image width")
	snapshotCmd.Flags().IntVar(&height, "height", 800, "image height")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "print a braille frame instead of SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [body...]",
		Short: "plot orbital radius of stored bodies",
		Args:  cobra.MinimumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the trajectories as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id] [body]",
		Short: "estimate a body's orbital period",
		Args:  cobra.ExactArgs(2),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare energy drift across timesteps",
		RunE:  compareTimesteps,
	}
	compareCmd.Flags().IntVar(&steps, "steps", 5000, "number of ticks")
	compareCmd.Flags().Float64SliceVar(&dtSweep, "dts", []float64{0.005, 0.01, 0.02, 0.04}, "timesteps to compare")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, snapshotCmd, presetsCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, compareCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadScenario resolves the scenario from --preset and --config, then
// applies flags the user set explicitly.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Physics.Dt = dt
	}
	if flags.Changed("zoom") {
		cfg.Camera.Zoom = zoom
	}
	if flags.Changed("workers") {
		cfg.Physics.Workers = workers
	}
	return cfg, cfg.Validate()
}

func buildSystem(cmd *cobra.Command) (*config.Config, *sim.System, error) {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := cfg.Build(sim.WithLogger(log.WithField("scenario", cfg.Name)))
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

func addMetrics(s *sim.System) {
	s.AddMetric(metrics.NewEnergyDrift(s.Config().Gravity()))
	s.AddMetric(metrics.NewAngularMomentumDrift())
	s.AddMetric(metrics.NewRadiusDeviation())
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, s, err := buildSystem(cmd)
	if err != nil {
		return err
	}
	addMetrics(s)

	rec := storage.NewRecorder(sampleEvery)
	rec.Capture(0, s.Bodies())
	s.AddObserver(rec)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"scenario": cfg.Name,
		"bodies":   len(s.Bodies()),
		"steps":    steps,
		"dt":       cfg.Physics.Dt,
	}).Info("run started")
	start := time.Now()

	result, err := s.RunSteps(cmd.Context(), steps)
	if err != nil {
		log.WithError(err).Warn("run interrupted, saving partial trajectory")
	}

	runID, err := st.Save(storage.RunMetadata{
		Scenario: cfg.Name,
		Dt:       cfg.Physics.Dt,
		G:        cfg.Physics.G,
		Steps:    result.Ticks,
		Metrics:  result.Metrics,
	}, rec)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"run":     runID,
		"ticks":   result.Ticks,
		"elapsed": time.Since(start).String(),
	}).Info("run finished")

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d (t=%.2f)\n", result.Ticks, result.Time)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	_, s, err := buildSystem(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(s, liveFPS)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, s, err := buildSystem(cmd)
	if err != nil {
		return err
	}
	opts := gui.DefaultOptions()
	opts.Title = "orbitsim :: " + cfg.Name
	if guiFPS > 0 {
		opts.FPS = int32(guiFPS)
	}
	return gui.Run(s, opts)
}

func snapshot(cmd *cobra.Command, args []string) error {
	_, s, err := buildSystem(cmd)
	if err != nil {
		return err
	}
	if _, err := s.RunSteps(cmd.Context(), shotSteps); err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if braille {
		canvas := viz.NewCanvas(width/10, height/20)
		s.Render(viz.NewCanvasDrawer(canvas))
		_, err := fmt.Fprint(out, canvas.String())
		return err
	}

	d := export.NewSVGDrawer(width, height)
	s.Render(d)
	_, err = d.WriteTo(out)
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tZOOM")
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		names := make([]string, len(p.Bodies))
		for i, b := range p.Bodies {
			names[i] = b.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", name, strings.Join(names, ","), p.Camera.Zoom)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPS\tDT\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			len(run.Bodies),
		)
	}

	return w.Flush()
}

// radiusSeries returns each sample's distance from the first stored body.
func radiusSeries(traj *storage.Trajectory, name string) ([]float64, error) {
	xs, ys, ok := traj.Series(name)
	if !ok {
		return nil, fmt.Errorf("body %q not in run (have %v)", name, traj.Names)
	}
	cx, cy, _ := traj.Series(traj.Names[0])
	radii := make([]float64, len(xs))
	for i := range xs {
		radii[i] = r2.Norm(r2.Vec{X: xs[i] - cx[i], Y: ys[i] - cy[i]})
	}
	return radii, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	bodies := args[1:]
	if len(bodies) == 0 {
		bodies = traj.Names[1:]
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(traj.Frames))

	for _, name := range bodies {
		radii, err := radiusSeries(traj, name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(radii,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s distance from %s", name, traj.Names[0])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgFile == "" {
		return nil
	}
	series := make([]export.Series, 0, len(traj.Names))
	for i, name := range traj.Names {
		xs, ys, _ := traj.Series(name)
		hue := 360 * float64(i) / float64(len(traj.Names))
		series = append(series, export.Series{Name: name, Xs: xs, Ys: ys, Color: colorful.Hcl(hue, 0.6, 0.7).Clamped()})
	}
	if err := os.WriteFile(svgFile, []byte(export.TrajectoriesToSVG(series, 800, 800)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgFile)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID, body := args[0], args[1]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	xs, _, ok := traj.Series(body)
	if !ok {
		return fmt.Errorf("body %q not in run (have %v)", body, traj.Names)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("body: %s\n\n", body)

	// The initial capture makes the first interval irregular.
	if len(xs) > 1 {
		xs = xs[1:]
	}
	sampleDt := meta.Dt * float64(meta.SampleEvery)

	ps := analysis.PowerSpectrum(xs)
	if len(ps) > 4 {
		plotData := ps[:len(ps)/2]
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (x)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	period, err := analysis.DominantPeriod(xs, sampleDt)
	if err != nil {
		return err
	}
	fmt.Printf("period: %.3f (%.0f ticks)\n", period, period/meta.Dt)
	fmt.Printf("frequency: %.5f\n", 1/period)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	if len(traj.Frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "body", "x", "y"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, frame := range traj.Frames {
		t := strconv.FormatFloat(traj.Times[i], 'f', 6, 64)
		for j, name := range traj.Names {
			row := []string{
				t,
				name,
				strconv.FormatFloat(frame[2*j], 'f', 6, 64),
				strconv.FormatFloat(frame[2*j+1], 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}

func compareTimesteps(cmd *cobra.Command, args []string) error {
	scenario, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	cfgs := make([]sim.Config, len(dtSweep))
	for i, d := range dtSweep {
		c := scenario.SimConfig()
		c.Dt = d
		cfgs[i] = c
	}

	build := func(c sim.Config) (*sim.System, error) {
		sc := *scenario
		sc.Physics.Dt = c.Dt
		s, err := sc.Build(sim.WithLogger(log.WithField("dt", c.Dt)))
		if err != nil {
			return nil, err
		}
		addMetrics(s)
		return s, nil
	}

	fmt.Printf("comparing timesteps for %s (%d steps each)\n\n", scenario.Name, steps)
	start := time.Now()
	results, err := sim.NewEnsemble(build, steps).Run(cmd.Context(), cfgs)
	if err != nil {
		return err
	}

	fmt.Printf("%-10s  %-10s  %-14s  %-14s  %-14s\n", "dt", "sim_time", "energy_drift", "ang_mom_drift", "radius_cv")
	fmt.Println(strings.Repeat("-", 72))
	for i, r := range results {
		fmt.Printf("%-10.4f  %-10.2f  %-14.3e  %-14.3e  %-14.3e\n",
			dtSweep[i], r.Time,
			r.Metrics["energy_drift"], r.Metrics["angular_momentum_drift"], r.Metrics["radius_deviation"])
	}
	log.WithField("elapsed", time.Since(start).String()).Info("comparison finished")
	return nil
}
