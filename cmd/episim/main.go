package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/experiment"
	"github.com/san-kum/episim/internal/logging"
	"github.com/san-kum/episim/internal/storage"
	"github.com/san-kum/episim/internal/term"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	seed       int64
	dt         float64
	steps      int
	dist       string
	beta       float64
	sigma      float64
	gamma      float64
	mu         float64
	omega      float64
	save       bool
	runs       int
	workers    int
	format     string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "episim",
		Short:        "stochastic compartmental epidemic simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".episim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (error, warn, info, debug, trace)")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run one simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", true, "save the run to the data directory")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [model]",
		Short: "repeat a simulation over consecutive seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 100, "number of runs")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "write a saved run to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Args:  cobra.NoArgs,
		RunE:  listModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				return fmt.Errorf("no presets for model: %s", args[0])
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, ensembleCmd, listCmd, showCmd, exportCmd, modelsCmd, presetsCmd)
	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultMaxSteps, "maximum number of steps")
	cmd.Flags().StringVar(&dist, "dist", "binomial", "transition distribution (binomial, poisson)")
	cmd.Flags().Float64Var(&beta, "beta", 0, "transmission rate")
	cmd.Flags().Float64Var(&sigma, "sigma", 0, "incubation rate")
	cmd.Flags().Float64Var(&gamma, "gamma", 0, "recovery rate")
	cmd.Flags().Float64Var(&mu, "mu", 0, "mortality rate")
	cmd.Flags().Float64Var(&omega, "omega", 0, "waning immunity rate")
	cmd.MarkFlagsMutuallyExclusive("config", "preset")
}

func newLogger(w io.Writer) *slog.Logger {
	return logging.NewLogger(logLevel, w)
}

// resolveConfig builds the run configuration: model defaults or a preset or
// a config file, then any flags set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	model := ""
	if len(args) > 0 {
		model = args[0]
	}

	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if model != "" && loaded.Model != model {
			return nil, fmt.Errorf("config %s is for model %s, not %s", configFile, loaded.Model, model)
		}
		cfg = loaded
	case preset != "":
		if model == "" {
			model = config.DefaultModel
		}
		cfg = config.GetPreset(model, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
	default:
		if model == "" {
			model = config.DefaultModel
		}
		cfg = config.Defaults(model)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.MaxSteps = steps
	}
	if flags.Changed("dist") {
		cfg.Distribution = dist
	}
	if flags.Changed("beta") {
		cfg.Rates.Transmission = beta
	}
	if flags.Changed("sigma") {
		cfg.Rates.Incubation = sigma
	}
	if flags.Changed("gamma") {
		cfg.Rates.Recovery = gamma
	}
	if flags.Changed("mu") {
		cfg.Rates.Mortality = mu
	}
	if flags.Changed("omega") {
		cfg.Rates.Waning = omega
	}
	return cfg, nil
}

func buildRunner(cmd *cobra.Command, args []string) (*config.Config, experiment.Runner, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}

	registry := experiment.NewRegistry()
	registry.SetLogger(newLogger(cmd.ErrOrStderr()))
	runner, err := registry.Build(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, runner, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, runner, err := buildRunner(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	rec, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run %s: %w", runner.Model(), err)
	}
	elapsed := time.Since(start)

	fields := []term.Field{
		{Name: "R0", Value: term.Float(runner.R0())},
		{Name: "seed", Value: strconv.FormatInt(cfg.Seed, 10)},
		{Name: "distribution", Value: runner.Config().Distribution.String()},
		{Name: "steps", Value: strconv.Itoa(rec.Steps)},
		{Name: "elapsed", Value: elapsed.Round(time.Microsecond).String()},
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(runMetadata(cfg, runner.Config()), rec)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		if err := config.Save(filepath.Join(st.RunDir(runID), "config.yaml"), cfg); err != nil {
			return fmt.Errorf("save run config: %w", err)
		}
		fields = append([]term.Field{{Name: "run id", Value: runID}}, fields...)
	}

	fields = append(fields, finalFields(rec)...)
	fields = append(fields, metricFields(rec.Metrics)...)

	fmt.Fprintln(cmd.OutOrStdout(), term.Summary(runner.Model(), fields))
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	_, runner, err := buildRunner(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	records, err := runner.Ensemble(cmd.Context(), runs, workers)
	if err != nil {
		return fmt.Errorf("ensemble %s: %w", runner.Model(), err)
	}
	elapsed := time.Since(start)

	summary := experiment.Summarize(records)
	rows := make([][]string, 0, len(summary))
	for _, name := range experiment.MetricNames(summary) {
		s := summary[name]
		rows = append(rows, []string{
			name,
			term.Float(s.Mean),
			term.Float(s.StdDev),
			term.Float(s.Min),
			term.Float(s.Max),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d runs in %v (R0 %s)\n", runner.Model(), len(records), elapsed.Round(time.Millisecond), term.Float(runner.R0()))
	fmt.Fprintln(out, term.Table([]string{"METRIC", "MEAN", "STD", "MIN", "MAX"}, rows))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	saved, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(saved) == 0 {
		fmt.Fprintln(out, term.Subtle.Render("no runs"))
		return nil
	}

	rows := make([][]string, 0, len(saved))
	for _, r := range saved {
		rows = append(rows, []string{
			r.ID,
			r.Model,
			strconv.Itoa(r.Steps),
			strconv.FormatInt(r.Seed, 10),
			r.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}
	fmt.Fprintln(out, term.Table([]string{"ID", "MODEL", "STEPS", "SEED", "TIME"}, rows))
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rec, err := st.LoadTrajectory(args[0])
	if err != nil {
		return fmt.Errorf("load run %s: %w", args[0], err)
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fields := []term.Field{
		{Name: "model", Value: meta.Model},
		{Name: "seed", Value: strconv.FormatInt(meta.Seed, 10)},
		{Name: "dt", Value: term.Float(meta.Dt)},
		{Name: "distribution", Value: meta.Distribution},
		{Name: "steps", Value: fmt.Sprintf("%d / %d", meta.Steps, meta.MaxSteps)},
		{Name: "time", Value: meta.Timestamp.Format(time.RFC3339)},
	}
	fields = append(fields, finalFields(rec)...)
	fields = append(fields, metricFields(meta.Metrics)...)

	fmt.Fprintln(cmd.OutOrStdout(), term.Summary(meta.ID, fields))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rec, err := st.LoadTrajectory(args[0])
	if err != nil {
		return fmt.Errorf("load run %s: %w", args[0], err)
	}

	switch format {
	case "csv":
		return storage.ExportCSV(cmd.OutOrStdout(), rec)
	case "json":
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		return storage.ExportJSON(cmd.OutOrStdout(), meta, rec)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func listModels(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	rows := make([][]string, 0)
	for _, name := range registry.ListModels() {
		desc, err := registry.Describe(name)
		if err != nil {
			return err
		}
		rows = append(rows, []string{name, desc})
	}
	fmt.Fprintln(cmd.OutOrStdout(), term.Table([]string{"MODEL", "DESCRIPTION"}, rows))
	return nil
}

func runMetadata(cfg *config.Config, sim epidemic.Config) storage.RunMetadata {
	return storage.RunMetadata{
		Preset:       preset,
		Seed:         sim.Seed,
		Dt:           sim.Dt,
		MaxSteps:     sim.MaxSteps,
		Distribution: sim.Distribution.String(),
		Params:       cfg.Params(),
	}
}

func finalFields(rec *epidemic.Record) []term.Field {
	if len(rec.Counts) == 0 {
		return nil
	}
	last := rec.Counts[len(rec.Counts)-1]
	fields := make([]term.Field, len(rec.Labels))
	for i, l := range rec.Labels {
		fields[i] = term.Field{Name: l, Value: strconv.FormatInt(last[i], 10)}
	}
	return fields
}

func metricFields(m map[string]float64) []term.Field {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]term.Field, 0, len(m))
	for _, name := range names {
		fields = append(fields, term.Field{Name: name, Value: term.Float(m[name])})
	}
	return fields
}
