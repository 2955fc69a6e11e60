package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/metrics"
	"github.com/san-kum/thermosim/internal/report"
	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/storage"
	"github.com/san-kum/thermosim/internal/tui"
)

var (
	dataDir string

	kp            float64
	ki            float64
	ts            float64
	steps         int
	setpoint      float64
	initial       float64
	alpha         float64
	beta          float64
	ambient       float64
	ambientStepAt int
	ambientStepTo float64
	uMin          float64
	uMax          float64
	noiseStd      float64
	seed          int64

	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "thermosim",
		Short: "PI thermostat control and simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive form when no subcommand is given.
			return tui.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".thermosim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one simulation",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run P-only and PI control on the same scenario",
		RunE:  compareControllers,
	}
	addScenarioFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive parameter form",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive()
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "integral gain")
	cmd.Flags().Float64Var(&ts, "ts", config.DefaultTs, "sample period (s)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of samples")
	cmd.Flags().Float64Var(&setpoint, "setpoint", config.DefaultSetpoint, "target temperature")
	cmd.Flags().Float64Var(&initial, "initial", config.DefaultInitial, "initial temperature")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.2, "plant response speed")
	cmd.Flags().Float64Var(&beta, "beta", 0.5, "actuator effectiveness")
	cmd.Flags().Float64Var(&ambient, "ambient", config.DefaultAmbient, "initial ambient temperature")
	cmd.Flags().IntVar(&ambientStepAt, "ambient-step-at", 120, "step index of the ambient change (-1 disables)")
	cmd.Flags().Float64Var(&ambientStepTo, "ambient-step-to", 24.0, "ambient value after the change")
	cmd.Flags().Float64Var(&uMin, "umin", -100, "lower output bound")
	cmd.Flags().Float64Var(&uMax, "umax", 100, "upper output bound")
	cmd.Flags().Float64Var(&noiseStd, "noise", 0, "process noise standard deviation")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "noise source seed")
}

// buildConfig resolves precedence: preset, then config file, then any
// explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("kp") {
		cfg.Controller.Kp = kp
	}
	if flags.Changed("ki") {
		cfg.Controller.Ki = ki
	}
	if flags.Changed("ts") {
		cfg.Controller.Ts = ts
	}
	if flags.Changed("umin") {
		cfg.Controller.UMin = uMin
	}
	if flags.Changed("umax") {
		cfg.Controller.UMax = uMax
	}
	if flags.Changed("alpha") {
		cfg.Plant.Alpha = alpha
	}
	if flags.Changed("beta") {
		cfg.Plant.Beta = beta
	}
	if flags.Changed("steps") {
		cfg.Scenario.Steps = steps
	}
	if flags.Changed("setpoint") {
		cfg.Scenario.Setpoint = setpoint
	}
	if flags.Changed("initial") {
		cfg.Scenario.Initial = initial
	}
	if flags.Changed("ambient") {
		cfg.Scenario.Ambient = ambient
	}
	if flags.Changed("ambient-step-at") {
		cfg.Scenario.AmbientStepAt = ambientStepAt
	}
	if flags.Changed("ambient-step-to") {
		cfg.Scenario.AmbientStepTo = ambientStepTo
	}
	if flags.Changed("noise") {
		cfg.Scenario.NoiseStd = noiseStd
	}
	if flags.Changed("seed") || cfg.Scenario.Seed == 0 {
		cfg.Scenario.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newDriver(cfg *config.Config) *sim.Driver {
	d := sim.NewDriver()
	d.AddMetric(metrics.NewControlEffort())
	d.AddMetric(metrics.NewSteadyStateError(20))
	d.AddMetric(metrics.NewOvershoot(cfg.Scenario.Setpoint, cfg.Scenario.Initial))
	d.AddMetric(metrics.NewSettlingTime(0.05))
	return d
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctrl, err := cfg.NewController()
	if err != nil {
		return err
	}

	res, err := newDriver(cfg).Run(ctrl, cfg.NoiseSource(), cfg.RunConfig())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save("pi", cfg, res)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n\n", runID)
	if err := report.Summary(os.Stdout, res); err != nil {
		return err
	}
	fmt.Println()
	report.Plot(os.Stdout, res)
	return nil
}

func compareControllers(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	pCfg := *cfg
	pCfg.Controller.Ki = 0

	pCtrl, err := pCfg.NewController()
	if err != nil {
		return err
	}
	pRes, err := newDriver(&pCfg).Run(pCtrl, pCfg.NoiseSource(), pCfg.RunConfig())
	if err != nil {
		return err
	}

	piCtrl, err := cfg.NewController()
	if err != nil {
		return err
	}
	piRes, err := newDriver(cfg).Run(piCtrl, cfg.NoiseSource(), cfg.RunConfig())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	if _, err := st.Save("p", &pCfg, pRes); err != nil {
		return err
	}
	if _, err := st.Save("pi", cfg, piRes); err != nil {
		return err
	}

	return report.Compare(os.Stdout, "p-only", pRes, "pi", piRes)
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
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tSTEPS\tTS\tKP\tKI")
	for _, run := range runs {
		var kpv, kiv float64
		if run.Config != nil {
			kpv = run.Config.Controller.Kp
			kiv = run.Config.Controller.Ki
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.2f\t%.2f\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Ts,
			kpv,
			kiv,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", res.Steps())
	report.Plot(os.Stdout, res)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, res)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	res, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "temp", "setpoint", "ambient", "integral", "control", "error"}); err != nil {
		return err
	}
	for i := range res.Times {
		row := []string{
			strconv.FormatFloat(res.Times[i], 'f', 6, 64),
			strconv.FormatFloat(res.Temps[i], 'f', 6, 64),
			strconv.FormatFloat(res.Setpoints[i], 'f', 6, 64),
			strconv.FormatFloat(res.Ambients[i], 'f', 6, 64),
			strconv.FormatFloat(res.Integrals[i], 'f', 6, 64),
			"",
			"",
		}
		if i < len(res.Controls) {
			row[5] = strconv.FormatFloat(res.Controls[i], 'f', 6, 64)
			row[6] = strconv.FormatFloat(res.Errors[i], 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
