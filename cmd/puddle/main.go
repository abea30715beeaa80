package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/puddle/internal/analysis"
	"github.com/san-kum/puddle/internal/config"
	"github.com/san-kum/puddle/internal/export"
	"github.com/san-kum/puddle/internal/palette"
	"github.com/san-kum/puddle/internal/physics"
	"github.com/san-kum/puddle/internal/puddle"
	"github.com/san-kum/puddle/internal/term"
	"github.com/san-kum/puddle/internal/viz"
)

var (
	damping         float64
	intensity       float64
	paletteName     string
	simulator       string
	stencil         string
	frameRate       int
	seed            int64
	cellWidth       int
	maxDisplacement float64
	stiffness       float64
	configFile      string
	preset          string
	frontend        string
	noFallback      bool
	logFile         string
	pick            bool

	frames    int
	rows      int
	cols      int
	settle    int
	svgPath   string
	energySVG string
	sweep     []float64
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Width(10)
)

// main exits with status 1 when a command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "puddle",
		Short: "rain ripples on the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPuddle,
	}

	pf := rootCmd.PersistentFlags()
	pf.Float64VarP(&damping, "damping", "d", config.DefaultDamping, "fraction of amplitude kept each frame (0,1]")
	pf.Float64VarP(&intensity, "intensity", "i", config.DefaultIntensity, "rain intensity, higher is more frequent")
	pf.StringVarP(&paletteName, "palette", "p", config.DefaultPalette, "palette id or name (0 mono, 1 blue, 2 grey)")
	pf.StringVarP(&simulator, "simulator", "s", config.DefaultSimulator, "simulator (stencil, spring, oscillator)")
	pf.Float64VarP(&stiffness, "stiffness", "k", physics.DefaultStiffness, "spring constant of the spring simulator")
	pf.StringVar(&stencil, "stencil", config.DefaultStencil, "stencil weights (smooth, cross)")
	pf.IntVar(&frameRate, "fps", config.DefaultFrameRate, "frames per second")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	pf.IntVar(&cellWidth, "cell-width", config.DefaultCellWidth, "terminal columns per cell")
	pf.Float64Var(&maxDisplacement, "max-displacement", config.DefaultMaxDisplacement, "displacement that saturates the palette")
	pf.StringVarP(&configFile, "config", "c", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&noFallback, "no-fallback", false, "fail instead of falling back to mono")
	pf.StringVar(&logFile, "log", "", "write a debug log to this file")

	rootCmd.Flags().StringVar(&frontend, "frontend", "tcell", "display frontend (tcell, tea)")
	rootCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu (tea frontend)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		Run:   listPresets,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "run headless and report energy and spectrum",
		Args:  cobra.NoArgs,
		RunE:  analyze,
	}
	analyzeCmd.Flags().IntVar(&frames, "frames", 512, "frames to record")
	analyzeCmd.Flags().IntVar(&rows, "rows", 40, "grid rows")
	analyzeCmd.Flags().IntVar(&cols, "cols", 80, "grid columns")
	analyzeCmd.Flags().IntVar(&settle, "settle", 300, "rain-free frames used to measure decay")
	analyzeCmd.Flags().StringVar(&svgPath, "svg", "", "write the final field as svg")
	analyzeCmd.Flags().StringVar(&energySVG, "energy-svg", "", "write the energy series as svg")
	analyzeCmd.Flags().Float64SliceVar(&sweep, "sweep", nil, "compare several damping values instead of one run")

	saveConfigCmd := &cobra.Command{
		Use:   "save-config path",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}

	rootCmd.AddCommand(presetsCmd, analyzeCmd, saveConfigCmd)
	return rootCmd
}

// buildConfig layers defaults, the preset, the config file and explicitly
// set flags, in that order.
func buildConfig(cmd *cobra.Command, presetName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", config.ErrInvalid, presetName)
		}
	}
	if configFile != "" {
		var err error
		if cfg, err = config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("intensity") {
		cfg.Intensity = intensity
	}
	if flags.Changed("palette") {
		cfg.Palette = paletteName
	}
	if flags.Changed("simulator") {
		cfg.Simulator = simulator
	}
	if flags.Changed("stiffness") {
		cfg.Spring.Stiffness = stiffness
	}
	if flags.Changed("stencil") {
		cfg.Stencil = stencil
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("cell-width") {
		cfg.CellWidth = cellWidth
	}
	if flags.Changed("max-displacement") {
		cfg.MaxDisplacement = maxDisplacement
	}
	if noFallback {
		cfg.Fallback = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLog routes the standard logger to path. Without a path nothing is
// logged, since the terminal belongs to the display.
func openLog() (*log.Logger, func(), error) {
	if logFile == "" {
		return nil, func() {}, nil
	}
	f, err := tea.LogToFile(logFile, "puddle")
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.Default(), func() { f.Close() }, nil
}

func runPuddle(cmd *cobra.Command, args []string) error {
	if frontend != "tcell" && frontend != "tea" {
		return fmt.Errorf("%w: unknown frontend %q", config.ErrInvalid, frontend)
	}
	if pick && frontend != "tea" {
		return fmt.Errorf("%w: --pick needs --frontend tea", config.ErrInvalid)
	}
	cfg, err := buildConfig(cmd, preset)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	logger, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	if frontend == "tea" {
		return runTea(cmd, cfg, logger)
	}
	return runTerm(cfg, logger)
}

func runTerm(cfg *config.Config, logger *log.Logger) error {
	flags := &puddle.Flags{}
	stop := term.WatchSignals(flags)
	defer stop()

	screen, err := term.Open(flags, cfg.CellWidth)
	if err != nil {
		return err
	}
	defer screen.Close()

	engine, err := puddle.New(puddle.Options{
		Config:  cfg,
		Surface: screen,
		Flags:   flags,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	return puddle.NewLoop(engine).Run(context.Background())
}

func runTea(cmd *cobra.Command, cfg *config.Config, logger *log.Logger) error {
	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	lipgloss.SetColorProfile(profile)

	if pick {
		build := func(name string) (*config.Config, error) { return buildConfig(cmd, name) }
		return viz.Run(viz.NewPicker(build, profile, logger))
	}

	model, err := viz.NewModel(cfg, profile, logger)
	if err != nil {
		return err
	}
	return viz.Run(model)
}

func listPresets(cmd *cobra.Command, args []string) {
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Printf("%s %s\n", nameStyle.Render(name), valueStyle.Render(fmt.Sprintf(
			"%s (%s, %s, damping %.2f, intensity %g)",
			config.Describe(name), p.Simulator, p.Palette, p.Damping, p.Intensity)))
	}
}

func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, preset)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("%s %s\n", labelStyle.Render("Saved"), valueStyle.Render(args[0]))
	return nil
}

func analyze(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, preset)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	logger, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	if len(sweep) > 0 {
		return sweepDamping(cmd.Context(), cfg)
	}

	tr, engine, err := analysis.Record(cfg, rows, cols, frames, logger)
	if err != nil {
		return err
	}
	spectrum := tr.Spectrum()
	freq, power := spectrum.Dominant()
	final := engine.Pair().Current.Clone()
	drift := analysis.Drift(engine.Simulator(), engine.Pair(), settle)
	rate := analysis.DecayRate(engine.Simulator(), engine.Pair(), cfg.Damping, settle)

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s on %dx%d, %d frames", engine.Simulator().Name(), rows, cols, frames)))
	fmt.Println()
	printSeries(tr.Energy, "energy per frame")
	if len(spectrum.Power) > 2 {
		printSeries(spectrum.Power[1:], fmt.Sprintf("probe power, 0 to %.1f Hz", float64(cfg.FrameRate)/2))
	}

	row := func(label, value string) {
		fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
	}
	row("Drops", fmt.Sprintf("%d (mean wait %.1f frames)", engine.Drops(), engine.Scheduler().MeanWait()))
	row("Final energy", fmt.Sprintf("%.4f", engine.Energy()))
	row("Saturated", fmt.Sprintf("%.1f%% of frames", tr.Saturation*100))
	row("Lossless drift", fmt.Sprintf("%.3g", drift))
	row("Dominant", fmt.Sprintf("%.3f Hz (power %.4g)", freq, power))
	if math.IsNaN(rate) {
		row("Decay", "n/a")
	} else {
		row("Decay", fmt.Sprintf("%.4f per frame (ln damping %.4f)", rate, math.Log(cfg.Damping)))
	}

	if svgPath != "" {
		m := palette.Mapper{Palette: engine.Palette(), MaxDisplacement: cfg.MaxDisplacement}
		if err := os.WriteFile(svgPath, []byte(export.FieldToSVG(final, m, 8)), 0644); err != nil {
			return err
		}
		row("Field", svgPath)
	}
	if energySVG != "" {
		if err := os.WriteFile(energySVG, []byte(export.SeriesToSVG(tr.Energy, 800, 300, "#00a8cc")), 0644); err != nil {
			return err
		}
		row("Energy plot", energySVG)
	}

	return nil
}

func sweepDamping(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := analysis.Sweep(ctx, cfg, sweep, rows, cols, frames, settle)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s damping sweep on %dx%d, %d frames", cfg.Simulator, rows, cols, frames)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAMPING\tDROPS\tDOMINANT\tFINAL ENERGY\tDECAY\tLN DAMPING")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%d\t%.3f Hz\t%.4f\t%.4f\t%.4f\n",
			r.Damping, r.Drops, r.Dominant, r.FinalEnergy, r.DecayRate, math.Log(r.Damping))
	}
	return w.Flush()
}

func printSeries(values []float64, caption string) {
	if len(values) < 2 {
		return
	}
	fmt.Println(asciigraph.Plot(values, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption(caption)))
	fmt.Println()
}
