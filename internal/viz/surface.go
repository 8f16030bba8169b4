package viz

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/interact"
)

type frameMsg struct {
	buf *fractal.PixelBuffer
}

type frameErrMsg struct {
	err error
}

type statsMsg interact.FrameStats

// Surface is the terminal display surface. The session reads the canvas and
// scheme from it and delivers frames into the bubbletea program.
type Surface struct {
	mu     sync.Mutex
	width  int
	height int
	scheme fractal.Scheme
	send   func(tea.Msg)
}

func NewSurface(scheme fractal.Scheme) *Surface {
	return &Surface{scheme: scheme}
}

// Attach routes frames into p.
func (s *Surface) Attach(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

func (s *Surface) CanvasSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetCanvasSize records the pixel size of the drawable area.
func (s *Surface) SetCanvasSize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

func (s *Surface) ColorScheme() fractal.Scheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheme
}

func (s *Surface) SetColorScheme(scheme fractal.Scheme) {
	s.mu.Lock()
	s.scheme = scheme
	s.mu.Unlock()
}

func (s *Surface) SubmitFrame(buf *fractal.PixelBuffer) {
	s.deliver(frameMsg{buf: buf})
}

func (s *Surface) FrameUnavailable(err error) {
	s.deliver(frameErrMsg{err: err})
}

func (s *Surface) reportStats(fs interact.FrameStats) {
	s.deliver(statsMsg(fs))
}

func (s *Surface) deliver(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

var _ interact.Surface = (*Surface)(nil)
