package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ksdash/internal/client"
	"github.com/san-kum/ksdash/internal/config"
	"github.com/san-kum/ksdash/internal/dashboard"
	"github.com/san-kum/ksdash/internal/export"
	"github.com/san-kum/ksdash/internal/logging"
	"github.com/san-kum/ksdash/internal/render"
	"github.com/san-kum/ksdash/internal/session"
)

var (
	configFile string
	endpoint   string
	logLevel   string

	// run parameters
	preset       string
	length       float64
	gridPoints   int
	duration     float64
	dt           float64
	viscosity    float64
	epochs       int
	learningRate float64

	sliceOnly bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ksdash",
		Short:        "dashboard for the KS equation PINN solver",
		SilenceUsage: true,
		RunE:         runDashboard,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "backend base URL (default "+config.DefaultEndpoint+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "fetch the latest simulation and plot its last time slice",
		Args:  cobra.NoArgs,
		RunE:  fetchSimulation,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "ask the backend to start a new simulation run",
		Args:  cobra.NoArgs,
		RunE:  submitRun,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
	runCmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length")
	runCmd.Flags().IntVar(&gridPoints, "grid-points", config.DefaultGridPoints, "spatial grid points")
	runCmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "simulated time")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "output time step")
	runCmd.Flags().Float64Var(&viscosity, "viscosity", config.DefaultViscosity, "fourth-order diffusion coefficient")
	runCmd.Flags().IntVar(&epochs, "epochs", config.DefaultEpochs, "training epochs")
	runCmd.Flags().Float64Var(&learningRate, "learning-rate", config.DefaultLearningRate, "optimizer learning rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	exportCmd := &cobra.Command{
		Use:   "export [path]",
		Short: "fetch the latest simulation and write it as .json, .csv or .svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSimulation,
	}
	exportCmd.Flags().BoolVar(&sliceOnly, "slice", false, "svg only: plot u(x) at the last time instead of the surface")

	rootCmd.AddCommand(fetchCmd, runCmd, presetsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves file, .env and environment settings, then applies
// the persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Endpoint = endpoint
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func openLog(cfg *config.Config, path string) (logging.Logger, func() error, error) {
	return logging.Open(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Path:   path,
	})
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the terminal belongs to the dashboard, so logs go to a file
	log, closeLog, err := openLog(cfg, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	return dashboard.Run(ctx, cfg, log)
}

// fetchOnce runs the same once-per-mount session the dashboard uses.
func fetchOnce(ctx context.Context, cfg *config.Config, log logging.Logger) (*client.Client, session.State) {
	c := client.New(cfg.Endpoint, cfg.RequestTimeout)
	ctl := session.New(c, c.Endpoint(), log)
	defer ctl.Close()
	return c, ctl.Load(ctx)
}

func fetchSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLog(cfg, "")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	c, st := fetchOnce(ctx, cfg, log)
	if st.HasError() {
		return errors.New(st.Err())
	}

	res := st.Data()
	field, err := render.Decode(res.Payload)
	if err != nil {
		fmt.Printf("%s (%v)\n", render.EmptyText, err)
		return nil
	}

	lo, hi := field.Range()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "endpoint\t%s\n", c.Endpoint())
	fmt.Fprintf(w, "request\t%s\n", res.RequestID)
	fmt.Fprintf(w, "fetched\t%s\n", res.FetchedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "frames\t%d\n", field.Frames())
	fmt.Fprintf(w, "points\t%d\n", len(field.X))
	fmt.Fprintf(w, "u range\t[%.4f, %.4f]\n", lo, hi)
	for _, k := range field.ParamKeys() {
		fmt.Fprintf(w, "%s\t%g\n", k, field.Params[k])
	}
	w.Flush()
	fmt.Println()

	last := field.Frames() - 1
	graph := asciigraph.Plot(field.Slice(last),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("u(x) at t=%.2f", field.T[last])),
	)
	fmt.Println(graph)
	return nil
}

func submitRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLog(cfg, "")
	if err != nil {
		return err
	}
	defer closeLog()

	params := cfg.Params
	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		params = p
	}

	// flags override preset and config
	flags := cmd.Flags()
	if flags.Changed("length") {
		params.Length = length
	}
	if flags.Changed("grid-points") {
		params.GridPoints = gridPoints
	}
	if flags.Changed("duration") {
		params.Duration = duration
	}
	if flags.Changed("dt") {
		params.Dt = dt
	}
	if flags.Changed("viscosity") {
		params.Viscosity = viscosity
	}
	if flags.Changed("epochs") {
		params.Epochs = epochs
	}
	if flags.Changed("learning-rate") {
		params.LearningRate = learningRate
	}

	if err := params.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	c := client.New(cfg.Endpoint, cfg.RequestTimeout)
	run, err := c.Submit(ctx, params)
	if err != nil {
		log.Error(ctx, "run request failed", logging.Err(err), logging.String("endpoint", c.Endpoint()))
		return err
	}
	log.Info(ctx, "run requested",
		logging.String("run_id", run.ID),
		logging.String("request_id", run.RequestID))

	fmt.Printf("run started: %s\n", run.ID)
	if run.Status != "" {
		fmt.Printf("status: %s\n", run.Status)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLENGTH\tGRID\tDURATION\tDT\tVISCOSITY\tEPOCHS\tLR")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%d\t%g\t%g\t%g\t%d\t%g\n",
			name, p.Length, p.GridPoints, p.Duration, p.Dt, p.Viscosity, p.Epochs, p.LearningRate)
	}
	return w.Flush()
}

func exportSimulation(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := export.FormatFor(path)
	if err != nil {
		return err
	}
	if sliceOnly && format != export.FormatSVG {
		return fmt.Errorf("--slice needs an .svg path, got %s", filepath.Ext(path))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLog(cfg, "")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	c, st := fetchOnce(ctx, cfg, log)
	if st.HasError() {
		return errors.New(st.Err())
	}
	res := st.Data()
	field, err := render.Decode(res.Payload)
	if err != nil {
		return fmt.Errorf("nothing to export: %w", err)
	}

	if sliceOnly {
		last := field.Frames() - 1
		svg := export.SliceSVG(field.X, field.Slice(last), 800, 300, "#ffd700")
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
	} else if err := export.ToFile(path, export.NewSnapshot(c.Endpoint(), res.RequestID, res.FetchedAt, field)); err != nil {
		return err
	}

	log.Info(ctx, "snapshot exported", logging.String("path", path), logging.String("format", format))
	fmt.Printf("exported %d frames to %s\n", field.Frames(), path)
	return nil
}
