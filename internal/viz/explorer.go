package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/interact"
)

// panStep is the keyboard pan distance in pixels.
const panStep = 8

// ExplorerOptions configures the terminal explorer.
type ExplorerOptions struct {
	Backend compute.Backend
	Scheme  fractal.Scheme
	// Start returns the initial viewport once the canvas size is known.
	Start func(width, height int) fractal.Viewport
	// Presets are cycled with the p key.
	Presets []Preset
	// Save stores the frame on screen when s is pressed and returns its id.
	Save func(frame *fractal.PixelBuffer, stats interact.FrameStats) (string, error)
}

// Preset is a named starting view.
type Preset struct {
	Name     string
	Viewport func(width, height int) fractal.Viewport
}

type explorer struct {
	opts    ExplorerOptions
	ctrl    *interact.Controller
	session *interact.Session
	surface *Surface

	frame     *fractal.PixelBuffer
	stats     interact.FrameStats
	err       error
	started   bool
	preset    int
	presetTag string
	notice    string

	cols, rows int
}

func newExplorer(opts ExplorerOptions) *explorer {
	if opts.Start == nil {
		opts.Start = fractal.Fit
	}
	surface := NewSurface(opts.Scheme)
	ctrl := interact.NewController(fractal.DefaultViewport())
	session := interact.NewSession(surface, ctrl, opts.Backend)
	session.OnFrame(surface.reportStats)

	return &explorer{
		opts:    opts,
		ctrl:    ctrl,
		session: session,
		surface: surface,
		preset:  -1,
		cols:    80,
		rows:    24,
	}
}

func (m *explorer) Init() tea.Cmd { return nil }

func (m *explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case frameMsg:
		m.frame = msg.buf
		m.err = nil
		return m, nil
	case frameErrMsg:
		m.err = msg.err
		return m, nil
	case statsMsg:
		m.stats = interact.FrameStats(msg)
		return m, nil
	}
	return m, nil
}

func (m *explorer) resize(cols, rows int) {
	m.cols, m.rows = cols, rows
	w, h := m.canvasSize()
	m.surface.SetCanvasSize(w, h)

	if !m.started && w > 1 && h > 1 {
		m.started = true
		_ = m.ctrl.SetViewport(m.opts.Start(w, h))
		return
	}
	m.ctrl.HandleGesture(interact.Gesture{Kind: interact.Resize})
}

// canvasSize leaves the last row for the status bar.
func (m *explorer) canvasSize() (int, int) {
	return CanvasSize(m.cols, m.rows-1)
}

func (m *explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w, h := m.canvasSize()
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "1", "2", "3", "4", "5":
		m.setScheme(fractal.Scheme(key[0] - '1'))
	case "tab":
		m.setScheme(m.surface.ColorScheme().Next())
	case "left":
		m.keyPan(panStep, 0)
	case "right":
		m.keyPan(-panStep, 0)
	case "up":
		m.keyPan(0, panStep)
	case "down":
		m.keyPan(0, -panStep)
	case "+", "=":
		m.ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, X: float64(w) / 2, Y: float64(h) / 2, Delta: 1})
	case "-", "_":
		m.ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, X: float64(w) / 2, Y: float64(h) / 2, Delta: -1})
	case "p":
		if len(m.opts.Presets) > 0 {
			m.preset = (m.preset + 1) % len(m.opts.Presets)
			p := m.opts.Presets[m.preset]
			m.presetTag = p.Name
			_ = m.ctrl.SetViewport(p.Viewport(w, h))
		}
	case "r":
		m.presetTag = ""
		_ = m.ctrl.SetViewport(m.opts.Start(w, h))
	case "s":
		m.save()
	case "t":
		applyTheme(NextTheme())
		m.notice = "theme " + CurrentTheme.Name
	}
	return m, nil
}

func (m *explorer) save() {
	if m.opts.Save == nil || m.frame == nil {
		return
	}
	id, err := m.opts.Save(m.frame, m.stats)
	if err != nil {
		m.notice = "save failed: " + err.Error()
		return
	}
	m.notice = "saved " + id
}

func (m *explorer) setScheme(s fractal.Scheme) {
	m.surface.SetColorScheme(s)
	m.session.RequestFrame()
}

// keyPan drags the content by (dx, dy) pixels unless the mouse is dragging.
func (m *explorer) keyPan(dx, dy float64) {
	if m.ctrl.Panning() {
		return
	}
	m.ctrl.HandleGesture(interact.Gesture{Kind: interact.PanStart})
	m.ctrl.HandleGesture(interact.Gesture{Kind: interact.PanMove, X: dx, Y: dy})
	m.ctrl.HandleGesture(interact.Gesture{Kind: interact.PanEnd})
}

func (m *explorer) handleMouse(msg tea.MouseMsg) {
	x, y := CellToPixel(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, X: x, Y: y, Delta: 1})
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, X: x, Y: y, Delta: -1})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.ctrl.HandleGesture(interact.Gesture{Kind: interact.PanStart, X: x, Y: y})
	case msg.Action == tea.MouseActionMotion:
		m.ctrl.HandleGesture(interact.Gesture{Kind: interact.PanMove, X: x, Y: y})
	case msg.Action == tea.MouseActionRelease:
		m.ctrl.HandleGesture(interact.Gesture{Kind: interact.PanEnd, X: x, Y: y})
	}
}

func (m *explorer) View() string {
	rows := m.rows - 1
	var canvas string
	if m.frame == nil {
		canvas = lipgloss.Place(m.cols, max(rows, 0), lipgloss.Center, lipgloss.Center,
			StatusRendering.Render("rendering..."))
	} else {
		canvas = HalfBlocks(m.frame, m.cols, rows)
	}
	return canvas + "\n" + m.statusLine()
}

func (m *explorer) statusLine() string {
	w, h := m.canvasSize()
	vp := m.ctrl.Viewport()
	c := vp.Center(w, h)

	parts := []string{
		SchemeBadge.Render(m.surface.ColorScheme().String()),
		Metric("re", fmt.Sprintf("%.10f", real(c))),
		Metric("im", fmt.Sprintf("%.10f", imag(c))),
		Metric("zoom", fmt.Sprintf("%.3g", vp.Scale)),
		Metric("frame", m.stats.Elapsed.Round(100_000).String()),
		Metric("backend", m.session.Backend().Name()),
	}
	if m.presetTag != "" {
		parts = append(parts, Metric("preset", m.presetTag))
	}
	if m.err != nil {
		parts = append(parts, StatusFailed.Render("frame unavailable"))
	}
	if m.notice != "" {
		parts = append(parts, MetricValue.Render(m.notice))
	}
	parts = append(parts, KeyHint.Render("drag pan · wheel zoom · 1-5 scheme · p preset · s save · t theme · r reset · q quit"))

	return StatusBar.MaxWidth(m.cols).Render(strings.Join(parts, "  "))
}

// RunExplorer runs the interactive terminal explorer until the user quits.
func RunExplorer(opts ExplorerOptions) error {
	if opts.Backend == nil {
		opts.Backend = compute.AutoSelectBackend(compute.Options{})
	}
	m := newExplorer(opts)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.surface.Attach(p.Send)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.session.Run(ctx)

	_, err := p.Run()
	return err
}
