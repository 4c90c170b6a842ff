package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/eulergrowth/internal/analysis"
	"github.com/san-kum/eulergrowth/internal/config"
	"github.com/san-kum/eulergrowth/internal/dynamo"
	"github.com/san-kum/eulergrowth/internal/export"
	"github.com/san-kum/eulergrowth/internal/integrators"
	"github.com/san-kum/eulergrowth/internal/metrics"
	"github.com/san-kum/eulergrowth/internal/models"
	"github.com/san-kum/eulergrowth/internal/optim"
	"github.com/san-kum/eulergrowth/internal/storage"
	"github.com/san-kum/eulergrowth/internal/tui"
	"github.com/san-kum/eulergrowth/internal/viz"
)

var (
	dataDir string
	verbose bool

	n0         float64
	doubling   float64
	rate       float64
	dt         float64
	duration   float64
	runName    string
	configFile string
	preset     string
	noSave     bool
	showPlot   bool

	plotWidth  int
	plotHeight int
	svgOut     string
	svgWidth   int
	svgHeight  int

	convergeHalvings int
	tuneHalvings     int
	tolerance        float64
	frameRate        int
	replaySecs       float64
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("command failed", "err", err)
		if errors.Is(err, dynamo.ErrInvalidArgument) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "eulergrowth",
		Short:         "forward euler lab for exponential growth",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".eulergrowth", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate and store a run",
		Args:  cobra.NoArgs,
		RunE:  runIntegration,
	}
	addParamFlags(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to preset or config name)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "print a comparison plot")
	addPlotFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run summary",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot euler vs analytical",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addPlotFlags(plotCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 500, "image height")

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "measure global error while halving dt",
		Args:  cobra.NoArgs,
		RunE:  convergenceStudy,
	}
	addParamFlags(convergeCmd)
	convergeCmd.Flags().IntVar(&convergeHalvings, "halvings", 6, "number of step sizes")
	addPlotFlags(convergeCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "find the largest dt meeting a final relative error",
		Args:  cobra.NoArgs,
		RunE:  tuneStep,
	}
	addParamFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&tolerance, "tol", 0.01, "final relative error tolerance")
	tuneCmd.Flags().IntVar(&tuneHalvings, "halvings", 12, "number of candidate step sizes")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay a run in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().Float64Var(&replaySecs, "seconds", 5, "replay length")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(config.Presets))
			for _, name := range config.ListPresets() {
				p, err := config.GetPreset(name).Params()
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					name,
					fmt.Sprintf("%g", p.N0),
					fmt.Sprintf("%.4g", p.Rate),
					fmt.Sprintf("%g", p.Dt),
					fmt.Sprintf("%g", p.Duration),
				})
			}
			fmt.Print(viz.Table([]string{"NAME", "N0", "RATE", "DT", "DURATION"}, rows))
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportCSVCmd, svgCmd, convergeCmd, tuneCmd, liveCmd, presetsCmd)

	return rootCmd
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&n0, "n0", config.DefaultN0, "initial value")
	cmd.Flags().Float64Var(&doubling, "doubling", config.DefaultDoublingTime, "doubling time (negative for halving)")
	cmd.Flags().Float64Var(&rate, "rate", 0, "rate constant (overrides --doubling)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		slog.Debug("preset applied", "preset", preset)
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		slog.Debug("config loaded", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("n0") {
		cfg.N0 = n0
	}
	if flags.Changed("doubling") {
		cfg.DoublingTime = doubling
		cfg.Rate = nil
	}
	if flags.Changed("rate") {
		cfg.SetRate(rate)
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("name") {
		cfg.Name = runName
	}

	return cfg, nil
}

func integrate(cmd *cobra.Command) (*config.Config, dynamo.Params, dynamo.Trajectory, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, dynamo.Params{}, nil, err
	}
	p, err := cfg.Params()
	if err != nil {
		return nil, dynamo.Params{}, nil, err
	}

	start := time.Now()
	traj, err := integrators.NewEuler().Integrate(p)
	if err != nil {
		return nil, dynamo.Params{}, nil, err
	}
	slog.Debug("integrated", "steps", traj.Len(), "elapsed", time.Since(start))

	if !traj.IsValid() {
		slog.Warn("trajectory overflowed", "rate", p.Rate, "duration", p.Duration)
	}
	return cfg, p, traj, nil
}

func exactReference(p dynamo.Params) metrics.Reference {
	g := models.NewGrowth(p.Rate)
	return func(t float64) float64 { return g.Exact(p.N0, t) }
}

func openStore() *storage.Store {
	return storage.New(dataDir).WithLogger(slog.Default().With("component", "storage"))
}

func runIntegration(cmd *cobra.Command, args []string) error {
	cfg, p, traj, err := integrate(cmd)
	if err != nil {
		return err
	}

	euler := integrators.NewEuler()
	meta := storage.RunMetadata{
		Name:       cfg.Name,
		Params:     p,
		Integrator: euler.Name(),
		Metrics:    metrics.Evaluate(traj, metrics.Default(exactReference(p))...),
	}
	if d := models.NewGrowth(p.Rate).DoublingTime(); !math.IsInf(d, 0) {
		meta.DoublingTime = d
	}

	cmp := analysis.Compare(traj, p.N0, p.Rate)
	final := cmp.Samples[len(cmp.Samples)-1]

	title := cfg.Name
	if !noSave {
		st := openStore()
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, traj)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		slog.Info("run stored", "id", runID)
		title = runID
	}

	fmt.Println(viz.Summary(viz.RunSummary{
		Title:   title,
		Params:  p,
		Steps:   traj.Len(),
		Final:   final.Euler,
		Exact:   final.Exact,
		Metrics: meta.Metrics,
	}))

	if showPlot {
		fmt.Println()
		fmt.Println(viz.PlotComparison(cmp, plotWidth, plotHeight))
	}
	return nil
}

func loadRun(runID string) (*storage.RunMetadata, dynamo.Trajectory, error) {
	st := openStore()
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	if traj.Len() == 0 {
		return nil, nil, dynamo.ErrEmptyTrajectory
	}
	return meta, traj, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := openStore()
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%g", run.Params.N0),
			fmt.Sprintf("%.4g", run.Params.Rate),
			fmt.Sprintf("%g", run.Params.Dt),
			fmt.Sprintf("%g", run.Params.Duration),
			strconv.Itoa(run.Steps),
		})
	}
	fmt.Print(viz.Table([]string{"ID", "TIME", "N0", "RATE", "DT", "DURATION", "STEPS"}, rows))
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	cmp := analysis.Compare(traj, meta.Params.N0, meta.Params.Rate)
	final := cmp.Samples[len(cmp.Samples)-1]
	fmt.Println(viz.Summary(viz.RunSummary{
		Title:   meta.ID,
		Params:  meta.Params,
		Steps:   traj.Len(),
		Final:   final.Euler,
		Exact:   final.Exact,
		Metrics: meta.Metrics,
	}))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", traj.Len())
	fmt.Println(viz.PlotComparison(analysis.Compare(traj, meta.Params.N0, meta.Params.Rate), plotWidth, plotHeight))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, traj)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(csv.NewWriter(os.Stdout), analysis.Compare(traj, meta.Params.N0, meta.Params.Rate))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.ComparisonToSVG(analysis.Compare(traj, meta.Params.N0, meta.Params.Rate), svgWidth, svgHeight)
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	slog.Info("svg written", "path", svgOut)
	return nil
}

func convergenceStudy(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}
	if convergeHalvings < 1 {
		return dynamo.InvalidArgument("halvings", float64(convergeHalvings), "at least 1")
	}

	rows, err := analysis.Convergence(cmd.Context(), p.N0, p.Rate, p.Duration, analysis.Halvings(p.Dt, convergeHalvings))
	if err != nil {
		return err
	}

	fmt.Printf("convergence for n0=%g rate=%.4g duration=%g\n\n", p.N0, p.Rate, p.Duration)
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		order := "-"
		if !math.IsNaN(row.Order) {
			order = fmt.Sprintf("%.3f", row.Order)
		}
		table = append(table, []string{
			fmt.Sprintf("%g", row.Dt),
			strconv.Itoa(row.Steps),
			fmt.Sprintf("%.6g", row.FinalValue),
			fmt.Sprintf("%.3e", row.MaxAbsError),
			order,
		})
	}
	fmt.Print(viz.Table([]string{"DT", "STEPS", "FINAL", "MAX_ABS_ERR", "ORDER"}, table))

	if graph := viz.PlotConvergence(rows, plotWidth, plotHeight); graph != "" {
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func tuneStep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}
	if tuneHalvings < 1 {
		return dynamo.InvalidArgument("halvings", float64(tuneHalvings), "at least 1")
	}

	search := optim.NewStepSearch(analysis.Halvings(p.Dt, tuneHalvings), optim.FinalRelError)
	best, err := search.LargestStep(cmd.Context(), p, tolerance)
	if err != nil {
		return err
	}

	fmt.Println(viz.Table(
		[]string{"DT", "STEPS", "FINAL_REL_ERR"},
		[][]string{{fmt.Sprintf("%g", best.Dt), strconv.Itoa(best.Steps), fmt.Sprintf("%.3e", best.Error)}},
	))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	_, p, traj, err := integrate(cmd)
	if err != nil {
		return err
	}
	return tui.Run(analysis.Compare(traj, p.N0, p.Rate), frameRate, replaySecs)
}
