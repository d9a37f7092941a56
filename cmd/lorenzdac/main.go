package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lorenzdac/internal/analysis"
	"github.com/san-kum/lorenzdac/internal/calib"
	"github.com/san-kum/lorenzdac/internal/capture"
	"github.com/san-kum/lorenzdac/internal/config"
	"github.com/san-kum/lorenzdac/internal/dac"
	"github.com/san-kum/lorenzdac/internal/driver"
	"github.com/san-kum/lorenzdac/internal/export"
	"github.com/san-kum/lorenzdac/internal/metrics"
	"github.com/san-kum/lorenzdac/internal/physics"
	"github.com/san-kum/lorenzdac/internal/session"
	"github.com/san-kum/lorenzdac/internal/viz"
)

var (
	configFile string
	preset     string
	dataDir    string
	output     string
	// capture
	ticks int
	drive bool
	// analyze
	channel      int
	lyapSteps    int
	perturbation float64
	ensemble     int
	// export
	format  string
	outFile string
	svgSize int
	// monitor
	theme string
)

func main() {
	log.SetPrefix("lorenzdac: ")
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	rootCmd := &cobra.Command{
		Use:   "lorenzdac",
		Short: "drive a two channel DAC from the Lorenz attractor",
		Long: "With no subcommand, calibrates the output range and then writes the\n" +
			"normalised x and z coordinates to the DAC forever.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runDriver,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "capture directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "", "output backend: "+strings.Join(session.NewRegistry().ListOutputs(), ", "))

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "run the calibration pass and print the range",
		Args:  cobra.NoArgs,
		RunE:  runCalibrate,
	}

	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "record ticks to the capture directory",
		Args:  cobra.NoArgs,
		RunE:  runCapture,
	}
	captureCmd.Flags().IntVar(&ticks, "ticks", 10000, "number of ticks to record")
	captureCmd.Flags().BoolVar(&drive, "drive", false, "also write the codes to the configured output")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list captures",
		Args:  cobra.NoArgs,
		RunE:  listCaptures,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [capture_id]",
		Short: "plot both channels of a capture",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCapture,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [capture_id]",
		Short: "spectrum, statistics and Lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeCapture,
	}
	analyzeCmd.Flags().IntVar(&channel, "channel", 0, "channel to analyze (0 or 1)")
	analyzeCmd.Flags().IntVar(&lyapSteps, "lyap-steps", 50000, "steps for the Lyapunov estimate")
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation for the Lyapunov estimate")
	analyzeCmd.Flags().IntVar(&ensemble, "ensemble", 1, "number of Lyapunov runs from shifted starting points")

	exportCmd := &cobra.Command{
		Use:   "export [capture_id]",
		Short: "export a capture as json, svg or dots",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCapture,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, svg or dots")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().IntVar(&svgSize, "size", 512, "svg size in pixels")

	monitorCmd := &cobra.Command{
		Use:   "monitor",
		Short: "drive the outputs with a live XY scope",
		Args:  cobra.NoArgs,
		RunE:  runMonitor,
	}
	monitorCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "scope theme: "+strings.Join(viz.ThemeNames(), ", "))

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tOUTPUT\tTICK\tCHANNELS\tRESUME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s/%s\t%v\n", name, p.Output, p.Tick, p.Channels[0], p.Channels[1], p.Resume)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(calibrateCmd, captureCmd, listCmd, plotCmd, analyzeCmd, exportCmd, monitorCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig applies defaults, then the preset, then the config file, then
// flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

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

	if output != "" {
		cfg.Output = output
	}
	if dataDir != "" {
		cfg.CaptureDir = dataDir
	}
	return cfg, cfg.Validate()
}

func openSession(cfg *config.Config) (*session.Session, error) {
	s, err := session.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Setup(session.NewRegistry()); err != nil {
		return nil, err
	}
	return s, nil
}

func runDriver(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = s.Run(ctx)
	if ctx.Err() != nil {
		log.Printf("stopped after %d ticks", s.Driver().Ticks())
		return nil
	}
	return err
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Output = config.OutputNull
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	start := time.Now()
	box, err := s.Calibrate()
	if err != nil {
		return err
	}

	fmt.Printf("calibrated in %v (%d steps)\n", time.Since(start), cfg.CalibrationSteps)
	printBox(box)
	fmt.Printf("coefficients: %v, dt %g\n", physics.NewLorenz(s.Params()).Params(), s.Params().Dt)
	fmt.Printf("final state: %s\n", s.Driver().State())
	return nil
}

func printBox(box calib.Box) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AXIS\tMIN\tMAX\tWIDTH")
	fmt.Fprintf(w, "x\t%.6f\t%.6f\t%.6f\n", box.X.Min, box.X.Max, box.X.Width())
	fmt.Fprintf(w, "y\t%.6f\t%.6f\t%.6f\n", box.Y.Min, box.Y.Max, box.Y.Width())
	fmt.Fprintf(w, "z\t%.6f\t%.6f\t%.6f\n", box.Z.Min, box.Z.Max, box.Z.Width())
	w.Flush()
}

func runCapture(cmd *cobra.Command, args []string) error {
	if ticks < 1 {
		return fmt.Errorf("ticks must be positive, got %d", ticks)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !drive {
		cfg.Output = config.OutputNull
	}

	st := capture.New(cfg.CaptureDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	box, err := s.Calibrate()
	if err != nil {
		return err
	}

	rec := &capture.Recorder{Frames: make([]driver.Frame, 0, ticks)}
	drv := s.Driver()
	drv.AddObserver(rec)
	ms := metrics.Defaults()
	for _, m := range ms {
		drv.AddObserver(m)
	}

	start := time.Now()
	if drive {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		drv.AddObserver(driver.ObserverFunc(func(f driver.Frame) {
			if f.Tick+1 >= ticks {
				cancel()
			}
		}))
		if err := drv.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
	} else if _, err := drv.RunTicks(ticks); err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := capture.Metadata{
		Params:   s.Params(),
		Initial:  s.Initial(),
		Steps:    cfg.CalibrationSteps,
		Resume:   cfg.Resume,
		Interval: cfg.Tick,
		Axes:     cfg.Channels,
		Box:      box,
		Metrics:  metrics.Collect(ms),
	}
	id, err := st.Save(meta, rec.Frames)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("capture id: %s\n", id)
	fmt.Printf("ticks: %d\n", len(rec.Frames))
	fmt.Println("\nmetrics:")
	for _, m := range ms {
		fmt.Printf("  %s: %.6f\n", m.Name(), m.Value())
	}
	return nil
}

func captureStore() (*capture.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return capture.New(cfg.CaptureDir), nil
}

func listCaptures(cmd *cobra.Command, args []string) error {
	st, err := captureStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no captures found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tTICKS\tINTERVAL\tCHANNELS\tRESUME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s/%s\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Interval,
			run.Axes[0], run.Axes[1],
			run.Resume,
		)
	}
	return w.Flush()
}

func loadCapture(id string) (*capture.Metadata, []driver.Frame, error) {
	st, err := captureStore()
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(id)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("no data in capture %s", id)
	}
	return meta, frames, nil
}

func plotCapture(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadCapture(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("capture: %s\n", meta.ID)
	fmt.Printf("ticks: %d every %s\n\n", len(frames), meta.Interval)

	for ch := 0; ch < 2; ch++ {
		graph := asciigraph.Plot(capture.Channel(frames, ch),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(dac.MaxCode),
			asciigraph.Caption(fmt.Sprintf("ch%d (%s)", ch, meta.Axes[ch])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Printf("xy: ch0 (%s) across, ch1 (%s) up\n", meta.Axes[0], meta.Axes[1])
	fmt.Print(analysis.XYPlot(capture.Channel(frames, 0), capture.Channel(frames, 1), 80, 30))
	return nil
}

func analyzeCapture(cmd *cobra.Command, args []string) error {
	if channel != 0 && channel != 1 {
		return fmt.Errorf("channel must be 0 or 1, got %d", channel)
	}
	meta, frames, err := loadCapture(args[0])
	if err != nil {
		return err
	}
	data := capture.Channel(frames, channel)

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("channel: ch%d (%s)\n\n", channel, meta.Axes[channel])

	ps := analysis.PowerSpectrum(data)
	if len(ps) > 4 {
		graph := asciigraph.Plot(ps[1:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (ch%d)", channel)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(data, meta.Interval)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	sum := analysis.Summarize(data, 0, dac.MaxCode)
	fmt.Printf("\ncodes: min %.0f  max %.0f  mean %.2f  stddev %.2f\n", sum.Min, sum.Max, sum.Mean, sum.StdDev)
	fmt.Printf("saturated: %d of %d (%.2f%%)\n", sum.Saturated, len(data), 100*float64(sum.Saturated)/float64(len(data)))

	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for _, m := range metrics.Defaults() {
			if v, ok := meta.Metrics[m.Name()]; ok {
				fmt.Printf("  %s: %.6f\n", m.Name(), v)
			}
		}
	}

	st, p := session.NewStepper()
	if ensemble <= 1 {
		lambda := analysis.LyapunovExponent(st, meta.Initial, p.Dt, lyapSteps, perturbation)
		fmt.Printf("\nlargest lyapunov exponent: %.4f (over %d steps)\n", lambda, lyapSteps)
		return nil
	}

	e := analysis.Ensemble{Advancer: st, Dt: p.Dt, Steps: lyapSteps, Perturbation: perturbation}
	lambdas := e.Run(meta.Initial, ensemble, 0.1)
	ls := analysis.Summarize(lambdas, math.Inf(-1), math.Inf(1))
	fmt.Printf("\nlargest lyapunov exponent: %.4f +/- %.4f (%d runs, %d steps each)\n", ls.Mean, ls.StdDev, ensemble, lyapSteps)
	return nil
}

func exportCapture(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadCapture(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch strings.ToLower(format) {
	case "json":
		return export.JSON(w, *meta, frames)
	case "svg":
		return export.TraceSVG(w, frames, svgSize, string(viz.Themes[0].Trace))
	case "dots":
		canvas := viz.NewCanvas(80, 40)
		for _, f := range frames {
			canvas.Set(canvas.Project(f.Codes[0], f.Codes[1], dac.MaxCode))
		}
		_, err := io.WriteString(w, export.CanvasSVG(canvas, float64(svgSize)/160))
		return err
	default:
		return fmt.Errorf("unknown format: %s (json, svg, dots)", format)
	}
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.Calibrate(); err != nil {
		return err
	}

	m, err := viz.NewMonitor(context.Background(), s.Driver())
	if err != nil {
		return err
	}
	defer m.Stop()

	final, err := tea.NewProgram(m.WithTheme(theme), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if mon, ok := final.(viz.Monitor); ok {
		if mon.Err() != nil {
			return mon.Err()
		}
		log.Printf("stopped after %d ticks", mon.Ticks())
	}
	return nil
}
