package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/render"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/tui"
)

var (
	dataDir     string
	configFile  string
	preset      string
	integrator  string
	factor      float64
	ticks       int
	scale       float64
	recordEvery int
	bodiesFile  string
	includeSun  bool
	only        []string
	// Output path for export; stdout when empty
	outFile      string
	exportFormat string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "orbitsim",
		Short:         "2d gravitational n-body simulator",
		RunE:          runLive,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".orbitsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration (default "+defaultPreset+")")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator: "+methodList())
	pf.Float64Var(&factor, "factor", config.DefaultFactor, "simulation speed factor (base steps per tick)")
	pf.IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to run headless")
	pf.Float64Var(&scale, "scale", config.DefaultScale, "display scale in metres per cell")
	pf.IntVar(&recordEvery, "record-every", config.DefaultRecordEvery, "record a frame every n integration calls")
	pf.StringVar(&bodiesFile, "bodies", "", "body dataset (.csv or .json)")
	pf.BoolVar(&includeSun, "include-sun", false, "add a sun at the origin to a dataset")
	pf.StringSliceVar(&only, "only", nil, "keep only the named bodies from a dataset")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation headless and store the trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the same bodies",
		RunE:  compareIntegrators,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot orbital radius of each body in a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or svg")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liveCmd, runCmd, compareCmd, listCmd, plotCmd, exportCmd, presetsCmd)
	return rootCmd
}

func methodList() string {
	names := make([]string, 0, 3)
	for _, m := range integrators.Methods() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

func runLive(cmd *cobra.Command, args []string) error {
	st, err := resolve(cmd)
	if err != nil {
		return err
	}
	simCfg, err := st.cfg.SimConfig()
	if err != nil {
		return err
	}
	s, err := sim.New(st.bodies, simCfg)
	if err != nil {
		return err
	}
	return tui.Run(s, tui.Options{Title: st.source, Scale: st.cfg.Scale})
}

func runSimulation(cmd *cobra.Command, args []string) error {
	st, err := resolve(cmd)
	if err != nil {
		return err
	}
	simCfg, err := st.cfg.SimConfig()
	if err != nil {
		return err
	}
	s, err := sim.New(st.bodies, simCfg)
	if err != nil {
		return err
	}

	s.AddMetric(metrics.NewEnergyDriftFrom(st.bodies))
	if len(st.bodies) > 1 {
		s.AddMetric(metrics.NewSeparation(0, 1))
	}
	rec := sim.NewRecorder(st.bodies.Names(), st.cfg.RecordEvery)
	rec.Record(st.bodies, 0)
	s.AddObserver(rec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	calls, dt := s.Plan()
	fmt.Printf("running %s: %d bodies, %s, %d ticks of %d×%.0fs\n",
		st.source, len(st.bodies), s.Method(), st.cfg.Ticks, calls, dt)
	start := time.Now()

	runErr := s.Run(ctx, st.cfg.Ticks)
	if runErr != nil && !isHazard(runErr) {
		return runErr
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Source:     st.source,
		Integrator: s.Method().String(),
		BaseDt:     s.BaseDt(),
		Factor:     s.Factor(),
		Ticks:      st.cfg.Ticks,
		Steps:      s.Steps(),
		SimTime:    s.Time(),
		Metrics:    s.Metrics(),
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}

	store := storage.New(dataDir)
	runID, err := store.Save(meta, rec.Trajectory())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (%.1f days)\n", s.Steps(), s.Time()/sim.Day)
	fmt.Println("\nmetrics:")
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}

	if runErr != nil {
		return fmt.Errorf("simulation halted: %w", runErr)
	}
	return nil
}

// isHazard reports whether err is a numerical failure of the simulation
// rather than an interrupted run.
func isHazard(err error) bool {
	var simErr *dynamo.SimulationError
	return errors.As(err, &simErr)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	st, err := resolve(cmd)
	if err != nil {
		return err
	}
	simCfg, err := st.cfg.SimConfig()
	if err != nil {
		return err
	}

	methods := integrators.Methods()
	if len(args) > 0 {
		methods = nil
		for _, a := range args {
			m, err := integrators.ParseMethod(a)
			if err != nil {
				return err
			}
			methods = append(methods, m)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("comparing integrators on %s (base dt=%.0fs, factor=%g, ticks=%d)\n\n",
		st.source, simCfg.BaseDt, simCfg.Factor, st.cfg.Ticks)

	start := time.Now()
	outcomes, err := sim.Compare(ctx, st.bodies, simCfg, methods, st.cfg.Ticks, nil)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tORDER\tSYMPLECTIC\tSTEPS\tDAYS\tDRIFT\tMAX_DRIFT\tSTATUS")
	for _, o := range outcomes {
		status := "ok"
		if o.Err != nil {
			status = o.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%d\t%.1f\t%.2e\t%.2e\t%s\n",
			o.Method, o.Method.Order(), o.Method.Symplectic(),
			o.Steps, o.Time/sim.Day, o.EnergyDrift, o.MaxDrift, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n\n", elapsed)

	for _, o := range outcomes {
		if len(o.History) < 2 {
			continue
		}
		graph := asciigraph.Plot(downsample(o.History, 80),
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("relative energy drift (%s)", o.Method)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tINTEG\tFACTOR\tSTEPS\tDAYS\tBODIES\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "halted"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%d\t%.1f\t%d\t%s\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.Factor,
			run.Steps,
			run.SimTime/sim.Day,
			len(run.Bodies),
			status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}
	traj, err := store.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s (%s)\n", meta.Source, meta.Integrator)
	fmt.Printf("samples: %d\n", traj.Len())
	fmt.Println(render.Legend(traj.Names))
	fmt.Println()

	maxPlots := 6
	for i, name := range traj.Names {
		if i >= maxPlots {
			fmt.Printf("(%d more bodies not shown)\n", len(traj.Names)-maxPlots)
			break
		}
		series := traj.Series(i)
		data := make([]float64, len(series))
		for k, p := range series {
			data[k] = math.Hypot(p.X, p.Y) / 1e9
		}
		if flat(data) {
			continue
		}

		graph := asciigraph.Plot(downsample(data, 80),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s distance from origin (10^6 km)", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return err
	}
	traj, err := store.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	write := func(w io.Writer) error {
		switch exportFormat {
		case "json":
			return storage.ExportJSON(w, *meta, traj)
		case "svg":
			_, err := io.WriteString(w, render.TrajectorySVG(traj, 800, 800))
			return err
		default:
			return fmt.Errorf("unknown export format: %s", exportFormat)
		}
	}

	if outFile == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, outFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tINTEG\tFACTOR\tTICKS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		names := make([]string, len(p.Bodies))
		for i, b := range p.Bodies {
			names[i] = b.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%d\n", name, strings.Join(names, ","), p.Integrator, p.Factor, p.Ticks)
	}
	return w.Flush()
}

// downsample picks at most n evenly spaced points, always keeping the last.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n || n < 2 {
		return data
	}
	out := make([]float64, n)
	step := float64(len(data)-1) / float64(n-1)
	for i := range out {
		out[i] = data[int(math.Round(float64(i)*step))]
	}
	return out
}

func flat(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}
