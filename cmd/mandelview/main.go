package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mandelview/internal/analysis"
	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/interact"
	"github.com/san-kum/mandelview/internal/storage"
	"github.com/san-kum/mandelview/internal/viz"
)

var (
	configFile string
	preset     string
	scheme     string
	width      int
	height     int
	workers    int
	tileSize   int
	backend    string
	debugLog   string
	dataDir    string
	theme      string
	// render
	saveName string
	// bench
	frames    int
	tileSizes []int
	// stats
	bins int
)

// main is the entry point for the mandelview CLI; with no subcommand it opens
// the interactive terminal explorer.
func main() {
	rootCmd := &cobra.Command{
		Use:          "mandelview",
		Short:        "interactive mandelbrot explorer",
		SilenceUsage: true,
		RunE:         runExplorer,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "starting view preset")
	rootCmd.PersistentFlags().StringVar(&scheme, "scheme", "0", "color scheme (0-4 or \"Scheme 1\"-\"Scheme 5\")")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "canvas width in pixels (render, bench, stats)")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "canvas height in pixels (render, bench, stats)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "worker goroutines (0 = one per cpu)")
	rootCmd.PersistentFlags().IntVar(&tileSize, "tile", compute.DefaultTileSize, "tile edge in pixels")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", config.DefaultBackend, "compute backend (auto, cpu, cuda)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mandelview", "saved views directory")
	rootCmd.Flags().StringVar(&debugLog, "debug-log", "", "write debug log to file")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "status bar theme")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame to the terminal",
		Args:  cobra.NoArgs,
		RunE:  renderFrame,
	}
	renderCmd.Flags().StringVar(&saveName, "save", "", "save the view under this name")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame dispatch",
		Args:  cobra.NoArgs,
		RunE:  benchFrames,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 20, "frames per configuration")
	benchCmd.Flags().IntSliceVar(&tileSizes, "tiles", []int{8, 16, 32, 64}, "tile sizes to compare")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "escape-count histogram of the view",
		Args:  cobra.NoArgs,
		RunE:  escapeStats,
	}
	statsCmd.Flags().IntVar(&bins, "bins", 64, "histogram buckets")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list view presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCENTER\tSPAN\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g%+gi\t%g\t%s\n", p.Name, p.Re, p.Im, p.Span, p.Description)
			}
			return w.Flush()
		},
	}

	schemesCmd := &cobra.Command{
		Use:   "schemes",
		Short: "list color schemes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buf := fractal.NewPixelBuffer(fractal.MaxIter/4, 2)
			for s := fractal.Scheme(0); s < fractal.NumSchemes; s++ {
				for x := 0; x < buf.Width; x++ {
					c := fractal.Color(x*4, s)
					buf.Set(x, 0, c)
					buf.Set(x, 1, c)
				}
				fmt.Printf("%d  %-9s %s\n", int(s), s, viz.HalfBlocks(buf, buf.Width, 1))
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved views",
		Args:  cobra.NoArgs,
		RunE:  listViews,
	}

	showCmd := &cobra.Command{
		Use:   "show [view_id]",
		Short: "render a saved view",
		Args:  cobra.ExactArgs(1),
		RunE:  showView,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [view_id]",
		Short: "print a saved view as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			return st.ExportJSON(os.Stdout, args[0])
		},
	}

	rootCmd.AddCommand(renderCmd, benchCmd, statsCmd, presetsCmd, schemesCmd, listCmd, showCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, with flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Preset = preset
		cfg.Viewport = nil
	}
	if flags.Changed("scheme") {
		s, err := fractal.ParseScheme(scheme)
		if err != nil {
			return nil, err
		}
		cfg.Scheme = int(s)
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("workers") {
		cfg.Compute.Workers = workers
	}
	if flags.Changed("tile") {
		cfg.Compute.TileSize = tileSize
	}
	if flags.Changed("backend") {
		cfg.Compute.Backend = backend
	}
	if flags.Lookup("debug-log") != nil && flags.Changed("debug-log") {
		cfg.DebugLog = debugLog
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newBackend(cfg *config.Config) (compute.Backend, error) {
	return compute.NewBackend(cfg.Compute.Backend, cfg.GetComputeOptions())
}

func runExplorer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "debug")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Cleanup()
	log.Printf("backend: %s", b.Name())

	if !viz.SetTheme(cfg.Theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, viz.ThemeNames())
	}

	presets := make([]viz.Preset, 0, len(config.Presets))
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		presets = append(presets, viz.Preset{Name: p.Name, Viewport: p.Viewport})
	}

	st := storage.New(cfg.DataDir)
	save := func(frame *fractal.PixelBuffer, fs interact.FrameStats) (string, error) {
		return saveView(st, "explorer", b.Name(), frame, fs)
	}

	return viz.RunExplorer(viz.ExplorerOptions{
		Backend: b,
		Scheme:  cfg.ColorScheme(),
		Start:   cfg.GetViewport,
		Presets: presets,
		Save:    save,
	})
}

func saveView(st *storage.Store, name, backendName string, frame *fractal.PixelBuffer, fs interact.FrameStats) (string, error) {
	if err := st.Init(); err != nil {
		return "", err
	}
	stats, err := analysis.ComputeEscapeStats(frame.Width, frame.Height, fs.Viewport)
	if err != nil {
		return "", err
	}
	return st.Save(storage.View{
		Name:     name,
		Width:    frame.Width,
		Height:   frame.Height,
		Viewport: fs.Viewport,
		Scheme:   fs.Scheme,
		Backend:  backendName,
		Elapsed:  fs.Elapsed,
		Stats:    stats,
	})
}

// stdoutSurface prints each frame as half blocks.
type stdoutSurface struct {
	cfg *config.Config
	out io.Writer
}

func (s *stdoutSurface) CanvasSize() (int, int)      { return s.cfg.Width, s.cfg.Height }
func (s *stdoutSurface) ColorScheme() fractal.Scheme { return s.cfg.ColorScheme() }
func (s *stdoutSurface) FrameUnavailable(err error)  { fmt.Fprintf(os.Stderr, "frame unavailable: %v\n", err) }

func (s *stdoutSurface) SubmitFrame(buf *fractal.PixelBuffer) {
	fmt.Fprintln(s.out, viz.HalfBlocks(buf, buf.Width, (buf.Height+1)/2))
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Cleanup()

	surface := &stdoutSurface{cfg: cfg, out: os.Stdout}
	ctrl := interact.NewController(cfg.GetViewport(cfg.Width, cfg.Height))
	session := interact.NewSession(surface, ctrl, b)

	var stats interact.FrameStats
	session.OnFrame(func(fs interact.FrameStats) { stats = fs })

	frame := session.RenderNow(cmd.Context())
	if frame == nil {
		if cfg.Width <= 1 || cfg.Height <= 1 {
			return fmt.Errorf("canvas %dx%d too small: %w", cfg.Width, cfg.Height, fractal.ErrNoFrame)
		}
		return fractal.ErrFrameUnavailable
	}

	if saveName != "" {
		id, err := saveView(storage.New(cfg.DataDir), saveName, b.Name(), frame, stats)
		if err != nil {
			return fmt.Errorf("save view: %w", err)
		}
		fmt.Printf("view saved: %s\n", id)
	}

	c := stats.Viewport.Center(stats.Width, stats.Height)
	fmt.Println(viz.Metric("center", fmt.Sprintf("%.10f%+.10fi", real(c), imag(c))) + "  " +
		viz.Metric("scale", fmt.Sprintf("%.4g", stats.Viewport.Scale)) + "  " +
		viz.Metric("scheme", stats.Scheme.String()) + "  " +
		viz.Metric("took", stats.Elapsed.String()))
	return nil
}

func benchFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if frames < 1 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	job := compute.Job{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Viewport: cfg.GetViewport(cfg.Width, cfg.Height),
		Scheme:   cfg.ColorScheme(),
	}
	if job.Degenerate() {
		return fmt.Errorf("canvas %dx%d too small: %w", cfg.Width, cfg.Height, fractal.ErrNoFrame)
	}

	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("benchmark %dx%d, %d frames", job.Width, job.Height, frames)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tTILE\tTOTAL\tPER FRAME\tMPIX/S")

	ctx := context.Background()
	for _, ts := range tileSizes {
		if ts <= 0 {
			return fmt.Errorf("tile size must be positive, got %d", ts)
		}
		opts := cfg.GetComputeOptions()
		opts.TileSize = ts
		b, err := compute.NewBackend(cfg.Compute.Backend, opts)
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < frames; i++ {
			if _, err := compute.Dispatch(ctx, b, job); err != nil {
				b.Cleanup()
				return err
			}
		}
		elapsed := time.Since(start)
		b.Cleanup()

		perFrame := elapsed / time.Duration(frames)
		mpix := float64(job.Width*job.Height*frames) / elapsed.Seconds() / 1e6
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.2f\n", b.Name(), ts, elapsed.Round(time.Microsecond), perFrame.Round(time.Microsecond), mpix)
	}

	return w.Flush()
}

func escapeStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	vp := cfg.GetViewport(cfg.Width, cfg.Height)
	stats, err := analysis.ComputeEscapeStats(cfg.Width, cfg.Height, vp)
	if err != nil {
		return err
	}

	data := stats.Bins(bins)
	if len(data) == 0 {
		return fmt.Errorf("bins must be positive, got %d", bins)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("escape counts (%d buckets over 0..%d)", bins, fractal.MaxIter)),
	)
	fmt.Println(graph)
	fmt.Println()

	c := vp.Center(cfg.Width, cfg.Height)
	fmt.Println(viz.Metric("pixels", fmt.Sprintf("%d", stats.Total())))
	fmt.Println(viz.Metric("in set", fmt.Sprintf("%.2f%%", 100*stats.InSetFraction())))
	fmt.Println(viz.Metric("mean escape", fmt.Sprintf("%.2f", stats.Mean)))
	fmt.Println(viz.Metric("center", fmt.Sprintf("%.10f%+.10fi", real(c), imag(c))))
	return nil
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listViews(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	views, err := st.List()
	if err != nil {
		return err
	}

	if len(views) == 0 {
		fmt.Println("no saved views")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tCENTER\tSCALE\tSCHEME\tIN SET")

	for _, v := range views {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.8f%+.8fi\t%.4g\t%s\t%.1f%%\n",
			v.ID,
			v.Timestamp.Format("2006-01-02 15:04:05"),
			v.Width, v.Height,
			v.CenterRe, v.CenterIm,
			v.Scale,
			fractal.Scheme(v.Scheme),
			100*v.InSet,
		)
	}

	return w.Flush()
}

// showView re-renders a saved view at its saved size.
func showView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	meta, err := storage.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}

	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Cleanup()

	job := compute.Job{
		Width:    meta.Width,
		Height:   meta.Height,
		Viewport: meta.Viewport(),
		Scheme:   fractal.Scheme(meta.Scheme),
	}
	if cmd.Flags().Changed("scheme") {
		job.Scheme = cfg.ColorScheme()
	}

	frame, err := compute.Dispatch(cmd.Context(), b, job)
	if err != nil {
		return err
	}

	fmt.Println(viz.HalfBlocks(frame, frame.Width, (frame.Height+1)/2))
	fmt.Println(viz.Metric("view", meta.ID) + "  " + viz.Metric("scheme", job.Scheme.String()))
	return nil
}
