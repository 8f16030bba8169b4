package viz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/interact"
)

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		cols, rows int
		w, h       int
	}{
		{80, 23, 80, 46},
		{1, 1, 1, 2},
		{0, 0, 0, 0},
		{10, -1, 10, 0},
	}
	for _, tt := range tests {
		w, h := CanvasSize(tt.cols, tt.rows)
		if w != tt.w || h != tt.h {
			t.Errorf("CanvasSize(%d, %d) = %dx%d, want %dx%d", tt.cols, tt.rows, w, h, tt.w, tt.h)
		}
	}
}

func TestHalfBlocks(t *testing.T) {
	buf := fractal.NewPixelBuffer(4, 4)
	fractal.RenderTile(buf, buf.Bounds(), fractal.Fit(4, 4), 0)

	out := HalfBlocks(buf, 4, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if n := strings.Count(out, upperHalf); n != 8 {
		t.Errorf("expected 8 cells, got %d", n)
	}

	if HalfBlocks(nil, 4, 2) != "" {
		t.Error("expected empty output for nil buffer")
	}
}

func TestHalfBlocks_PadsPastBuffer(t *testing.T) {
	buf := fractal.NewPixelBuffer(2, 2)
	out := HalfBlocks(buf, 5, 3)
	if n := strings.Count(out, upperHalf); n != 15 {
		t.Errorf("expected 15 cells, got %d", n)
	}
}

func newTestExplorer() *explorer {
	return newExplorer(ExplorerOptions{
		Backend: compute.NewCPUBackend(compute.Options{Workers: 1}),
		Scheme:  2,
		Presets: []Preset{{
			Name:     "zoomed",
			Viewport: func(w, h int) fractal.Viewport { return fractal.Viewport{Scale: 9} },
		}},
	})
}

func TestExplorer_FirstResizeFits(t *testing.T) {
	m := newTestExplorer()
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 21})

	w, h := m.surface.CanvasSize()
	if w != 60 || h != 40 {
		t.Fatalf("unexpected canvas %dx%d", w, h)
	}
	if got := m.ctrl.Viewport(); got != fractal.Fit(60, 40) {
		t.Errorf("expected fit viewport, got %+v", got)
	}

	m.ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, X: 10, Y: 10, Delta: 1})
	zoomed := m.ctrl.Viewport()
	m.Update(tea.WindowSizeMsg{Width: 70, Height: 21})
	if m.ctrl.Viewport() != zoomed {
		t.Error("later resizes must keep the viewport")
	}
}

func TestExplorer_Keys(t *testing.T) {
	m := newTestExplorer()
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 11})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	if s := m.surface.ColorScheme(); s != 3 {
		t.Errorf("expected scheme index 3, got %d", s)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if s := m.surface.ColorScheme(); s != 4 {
		t.Errorf("expected scheme index 4 after tab, got %d", s)
	}

	before := m.ctrl.Viewport()
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.ctrl.Viewport().OffsetX; got != before.OffsetX+panStep {
		t.Errorf("expected offset %f, got %f", before.OffsetX+panStep, got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if got := m.ctrl.Viewport().Scale; got != 9 {
		t.Errorf("expected preset scale 9, got %f", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if got := m.ctrl.Viewport(); got != fractal.Fit(40, 20) {
		t.Errorf("expected reset to fit, got %+v", got)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestExplorer_MouseDrag(t *testing.T) {
	m := newTestExplorer()
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 11})
	start := m.ctrl.Viewport()

	m.Update(tea.MouseMsg{X: 10, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{X: 14, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	m.Update(tea.MouseMsg{X: 14, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	got := m.ctrl.Viewport()
	if got.OffsetX != start.OffsetX-4 || got.OffsetY != start.OffsetY-4 {
		t.Errorf("unexpected drag result: %+v from %+v", got, start)
	}
	if m.ctrl.Panning() {
		t.Error("release should end the drag")
	}
}

func TestExplorer_MouseWheel(t *testing.T) {
	m := newTestExplorer()
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 11})
	start := m.ctrl.Viewport()

	m.Update(tea.MouseMsg{X: 20, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if got := m.ctrl.Viewport().Scale; got <= start.Scale {
		t.Errorf("wheel up should zoom in: %f -> %f", start.Scale, got)
	}
}

func TestExplorer_FrameMessages(t *testing.T) {
	m := newTestExplorer()
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 4})

	if !strings.Contains(m.View(), "rendering...") {
		t.Error("expected placeholder before first frame")
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	buf := m.session.RenderNow(ctx)
	if buf == nil {
		t.Fatal("expected a frame")
	}
	m.Update(frameMsg{buf: buf})
	view := m.View()
	if strings.Contains(view, "rendering...") {
		t.Error("placeholder still shown after frame")
	}
	if !strings.Contains(view, "Scheme 3") {
		t.Error("status bar should name the scheme")
	}

	m.Update(frameErrMsg{err: errors.New("boom")})
	if !strings.Contains(m.View(), "frame unavailable") {
		t.Error("expected failure notice")
	}
	if m.frame != buf {
		t.Error("previous frame must stay displayed after a failure")
	}
}

func TestExplorer_Save(t *testing.T) {
	m := newTestExplorer()
	var saved *fractal.PixelBuffer
	var savedStats interact.FrameStats
	m.opts.Save = func(frame *fractal.PixelBuffer, stats interact.FrameStats) (string, error) {
		saved, savedStats = frame, stats
		return "view-1", nil
	}
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 4})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if saved != nil {
		t.Fatal("nothing to save before the first frame")
	}

	buf := fractal.NewPixelBuffer(200, 6)
	stats := interact.FrameStats{Width: 200, Height: 6, Scheme: 2, Viewport: fractal.Viewport{Scale: 2}}
	m.Update(frameMsg{buf: buf})
	m.Update(statsMsg(stats))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	if saved != buf {
		t.Error("expected the displayed frame to be saved")
	}
	if savedStats != stats {
		t.Errorf("expected stats %+v, got %+v", stats, savedStats)
	}
	if !strings.Contains(m.View(), "saved view-1") {
		t.Error("expected save notice in status bar")
	}

	m.opts.Save = func(*fractal.PixelBuffer, interact.FrameStats) (string, error) {
		return "", errors.New("disk full")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if !strings.Contains(m.View(), "save failed: disk full") {
		t.Error("expected failure notice")
	}
}

func TestThemes(t *testing.T) {
	defer applyTheme(ThemeMidnight)

	if _, ok := GetTheme("nope"); ok {
		t.Error("unknown theme should not resolve")
	}
	if SetTheme("nope") {
		t.Error("SetTheme should reject unknown names")
	}
	if CurrentTheme.Name != "midnight" {
		t.Errorf("expected midnight, got %s", CurrentTheme.Name)
	}

	if !SetTheme("paper") {
		t.Fatal("paper theme missing")
	}
	if StatusBar.GetBackground() != ThemePaper.Bar {
		t.Error("status bar not restyled")
	}

	seen := map[string]bool{}
	for range Themes {
		next := NextTheme()
		seen[next.Name] = true
		applyTheme(next)
	}
	if len(seen) != len(Themes) || CurrentTheme.Name != "paper" {
		t.Errorf("cycling should visit every theme and wrap, saw %v", seen)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}

func TestExplorer_ThemeKey(t *testing.T) {
	defer applyTheme(ThemeMidnight)

	m := newTestExplorer()
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 4})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})

	if CurrentTheme.Name != "phosphor" {
		t.Errorf("expected phosphor after one press, got %s", CurrentTheme.Name)
	}
	if !strings.Contains(m.View(), "theme phosphor") {
		t.Error("expected theme notice")
	}
}
