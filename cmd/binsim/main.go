// Command binsim runs binary-star inspiral simulations: two particle clouds
// on a decaying orbit under softened self-gravity and gravitational-wave
// drag.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/arvela/binsim/internal/body"
	"github.com/arvela/binsim/internal/config"
	"github.com/arvela/binsim/internal/export"
	"github.com/arvela/binsim/internal/inspiral"
	"github.com/arvela/binsim/internal/metrics"
	"github.com/arvela/binsim/internal/param"
	"github.com/arvela/binsim/internal/physics"
	"github.com/arvela/binsim/internal/sim"
	"github.com/arvela/binsim/internal/snapshot"
	"github.com/arvela/binsim/internal/storage"
	"github.com/arvela/binsim/internal/tui"
	"github.com/arvela/binsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	paramsFile string
	resumeFrom string

	nStar1    int
	nStar2    int
	dt        float64
	steps     int
	stopRatio float64
	seed      int64
	live      bool

	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "binsim",
		Short: "binary-star inspiral simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".binsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an inspiral simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "run config file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
	runCmd.Flags().StringVar(&paramsFile, "params", "", "parameter file (key = value)")
	runCmd.Flags().StringVar(&resumeFrom, "resume", "", "resume from a snapshot file")
	runCmd.Flags().IntVar(&nStar1, "n1", 0, "particles in star 1 (overrides config)")
	runCmd.Flags().IntVar(&nStar2, "n2", 0, "particles in star 2 (overrides config)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides config)")
	runCmd.Flags().IntVar(&steps, "steps", 0, "step count (overrides config)")
	runCmd.Flags().Float64Var(&stopRatio, "stop-ratio", -1, "merger threshold ratio (overrides config)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks from the clock)")
	runCmd.Flags().BoolVar(&live, "live", false, "show a live terminal view")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot a stored run's separation history and orbit",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "export a stored run's orbit as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgOut, "out", "orbit.svg", "output file")

	infoCmd := &cobra.Command{
		Use:   "info [run-id]",
		Short: "print a stored run's snapshot header",
		Args:  cobra.ExactArgs(1),
		RunE:  showInfo,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, infoCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if nStar1 > 0 {
		cfg.NStar1 = nStar1
	}
	if nStar2 > 0 {
		cfg.NStar2 = nStar2
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if steps > 0 {
		cfg.Steps = steps
	}
	if stopRatio >= 0 {
		cfg.StopRatio = stopRatio
	}
	if seed != 0 {
		cfg.Seed = seed
	} else if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	effect := inspiral.New()
	if err := effect.SetStopRatio(cfg.StopRatio); err != nil {
		return err
	}

	// the parameter file wins over yaml and flags; a bad value aborts the run
	if paramsFile != "" {
		if err := param.ReadFile(paramsFile, effect); err != nil {
			return fmt.Errorf("reading %s: %w", paramsFile, err)
		}
		if !effect.OptionsComplete() {
			return fmt.Errorf("%s: required option %q missing", paramsFile, inspiral.OptionStopRatio)
		}
	}

	var particles *body.Particles
	if resumeFrom != "" {
		header, p, err := snapshot.ReadFile(resumeFrom)
		if err != nil {
			return err
		}
		if err := effect.ReadHeader(header); err != nil {
			return fmt.Errorf("%s is not a binary-run snapshot: %w", resumeFrom, err)
		}
		particles = p
		cfg.NStar1 = effect.NStar1
		cfg.NStar2 = effect.NStar2
		cfg.ParticleMass = p.Mass
	} else {
		effect.SetPartition(cfg.NStar1, cfg.NStar2)
	}

	model := physics.NewBinary(cfg.NStar1, cfg.NStar2,
		cfg.ParticleMass, cfg.Separation, cfg.Softening, cfg.Units.G())
	if particles == nil {
		particles = model.InitialState(rand.New(rand.NewSource(cfg.Seed)))
	}

	if err := effect.Init(cfg.TotalN(), cfg.ParticleMass, cfg.Units.C()); err != nil {
		if errors.Is(err, inspiral.ErrNoPartition) {
			fmt.Fprintln(os.Stderr, "warning: no star partition; running without gravitational-wave drag")
		} else {
			return err
		}
	}

	simulator := sim.New(model, effect)
	simulator.AddMetric(metrics.NewSeparation(effect))
	simulator.AddMetric(metrics.NewLuminosity(effect, cfg.Units.G(), cfg.Units.C()))
	simulator.AddMetric(metrics.NewEnergyDrift(model))

	simCfg := sim.Config{Dt: cfg.Dt, Steps: cfg.Steps, ValidateState: true}

	var result *sim.Result
	if live {
		result, err = runLive(simulator, effect, particles, simCfg)
	} else {
		result, err = simulator.Run(context.Background(), particles, simCfg)
	}
	if err != nil {
		return err
	}
	for _, stepErr := range result.Errors {
		fmt.Fprintln(os.Stderr, "warning:", stepErr)
	}

	return saveRun(cfg, effect, particles, result)
}

func runLive(simulator *sim.Simulator, effect *inspiral.Effect, p *body.Particles, simCfg sim.Config) (*sim.Result, error) {
	frames := make(chan tui.Frame, 64)

	every := simCfg.Steps / 400
	simulator.AddObserver(tui.NewObserver(frames, every, effect))

	type runDone struct {
		result *sim.Result
		err    error
	}
	doneCh := make(chan runDone, 1)

	go func() {
		result, err := simulator.Run(context.Background(), p, simCfg)
		final := tui.Frame{
			Step:       result.StepsTaken,
			Time:       float64(result.StepsTaken) * simCfg.Dt,
			Separation: lastSeparation(result),
			Merged:     result.MergerStep >= 0,
			Done:       true,
		}
		// the view may have quit already and stopped draining
		select {
		case frames <- final:
		default:
		}
		close(frames)
		doneCh <- runDone{result, err}
	}()

	program := tea.NewProgram(tui.NewModel(frames, simCfg.Steps))
	if _, err := program.Run(); err != nil {
		return nil, err
	}

	d := <-doneCh
	return d.result, d.err
}

func lastSeparation(result *sim.Result) float64 {
	if len(result.Separations) == 0 {
		return 0
	}
	return result.Separations[len(result.Separations)-1]
}

func saveRun(cfg *config.Config, effect *inspiral.Effect, p *body.Particles, result *sim.Result) error {
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Seed:      cfg.Seed,
		NStar1:    cfg.NStar1,
		NStar2:    cfg.NStar2,
		StopRatio: effect.StopRatio(),
		Dt:        cfg.Dt,
		Steps:     cfg.Steps,
	}

	runID, err := store.Save(meta, result)
	if err != nil {
		return err
	}

	header := snapshot.NewHeader()
	effect.WriteHeader(header)
	header.SetFloat("Time", float64(result.StepsTaken)*cfg.Dt)
	if err := snapshot.WriteFile(store.SnapshotPath(runID), header, p); err != nil {
		return err
	}
	if err := param.WriteFile(store.ParamsPath(runID), effect); err != nil {
		return err
	}

	fmt.Printf("saved %s (%d steps)\n", runID, result.StepsTaken)
	if result.MergerStep >= 0 {
		fmt.Printf("merger at step %d, t=%.4f\n", result.MergerStep, result.MergerTime)
	} else {
		fmt.Printf("no merger; final separation %.4f\n", lastSeparation(result))
	}
	for name, value := range result.Metrics {
		fmt.Printf("  %s = %g\n", name, value)
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
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tN1\tN2\tSTEPS\tMERGER\tENERGY DRIFT")
	for _, r := range runs {
		merger := "-"
		if r.MergerStep >= 0 {
			merger = fmt.Sprintf("step %d", r.MergerStep)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%.2e\n",
			r.ID, r.NStar1, r.NStar2, r.Steps, merger, r.EnergyDrift)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	h, err := store.LoadHistory(args[0])
	if err != nil {
		return err
	}
	if len(h.Separations) < 2 {
		return fmt.Errorf("run %s has no usable history", args[0])
	}

	fmt.Println(asciigraph.Plot(downsample(h.Separations, 120),
		asciigraph.Height(12),
		asciigraph.Caption("separation vs time")))
	fmt.Println()
	fmt.Println(viz.PlotOrbits(h.Orbit1, h.Orbit2, 60, 16).String())
	return nil
}

func downsample(data []float64, max int) []float64 {
	if len(data) <= max {
		return data
	}
	out := make([]float64, max)
	for i := range out {
		out[i] = data[i*len(data)/max]
	}
	return out
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	h, err := store.LoadHistory(args[0])
	if err != nil {
		return err
	}

	svg := export.OrbitSVG(h.Orbit1, h.Orbit2, 800, 600)
	if svg == "" {
		return fmt.Errorf("run %s has no usable orbit history", args[0])
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func showInfo(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)

	header, p, err := snapshot.ReadFile(store.SnapshotPath(args[0]))
	if err != nil {
		return err
	}

	effect := inspiral.New()
	if err := effect.ReadHeader(header); err != nil {
		return err
	}

	fmt.Printf("particles: %d (mass %g)\n", p.N, p.Mass)
	fmt.Printf("%s: %d\n", inspiral.FieldNStar1, effect.NStar1)
	fmt.Printf("%s: %d\n", inspiral.FieldNStar2, effect.NStar2)
	if t, err := header.Float("Time"); err == nil {
		fmt.Printf("time: %g\n", t)
	}
	return nil
}
