package interact

import (
	"log"
	"sync"

	"github.com/san-kum/mandelview/internal/fractal"
)

// ZoomFactor is the scale change of one wheel notch.
const ZoomFactor = 1.1

// FrameRequester is notified whenever the viewport changes.
type FrameRequester interface {
	RequestFrame()
}

type panState int

const (
	idle panState = iota
	panning
)

// Controller translates gestures into viewport updates.
type Controller struct {
	mu        sync.Mutex
	vp        fractal.Viewport
	state     panState
	sx, sy    float64
	requester FrameRequester
	logger    *log.Logger
}

func NewController(vp fractal.Viewport) *Controller {
	if vp.Validate() != nil {
		vp = fractal.DefaultViewport()
	}
	return &Controller{vp: vp, logger: log.Default()}
}

// SetRequester wires the sink notified after each viewport change.
func (c *Controller) SetRequester(r FrameRequester) {
	c.mu.Lock()
	c.requester = r
	c.mu.Unlock()
}

// SetLogger replaces the debug logger.
func (c *Controller) SetLogger(l *log.Logger) {
	c.mu.Lock()
	c.logger = l
	c.mu.Unlock()
}

// Viewport returns a snapshot of the current viewport.
func (c *Controller) Viewport() fractal.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp
}

// Panning reports whether a drag is in progress.
func (c *Controller) Panning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == panning
}

// SetViewport replaces the viewport, e.g. for presets or reset, and requests
// a frame.
func (c *Controller) SetViewport(vp fractal.Viewport) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.vp = vp
	r := c.requester
	c.mu.Unlock()

	request(r)
	return nil
}

// HandleGesture applies g and reports whether a new frame was requested.
func (c *Controller) HandleGesture(g Gesture) bool {
	c.mu.Lock()
	changed := c.apply(g)
	r := c.requester
	logger := c.logger
	vp := c.vp
	c.mu.Unlock()

	if logger != nil && g.Kind == Zoom {
		logger.Printf("debug: %s delta=%g at (%g, %g) scale=%g", g.Kind, g.Delta, g.X, g.Y, vp.Scale)
	}
	if changed {
		request(r)
	}
	return changed
}

func (c *Controller) apply(g Gesture) bool {
	switch g.Kind {
	case PanStart:
		c.state = panning
		c.sx, c.sy = g.X, g.Y
		return false

	case PanMove:
		if c.state != panning {
			return false
		}
		dx := g.X - c.sx
		dy := g.Y - c.sy
		// content follows the pointer
		c.vp.OffsetX -= dx
		c.vp.OffsetY -= dy
		c.sx, c.sy = g.X, g.Y
		return true

	case PanEnd:
		c.state = idle
		return false

	case Zoom:
		var f float64
		switch {
		case g.Delta > 0:
			f = ZoomFactor
		case g.Delta < 0:
			f = 1 / ZoomFactor
		default:
			return false
		}
		scale := c.vp.Scale * f
		if scale < fractal.MinScale || scale > fractal.MaxScale {
			return false
		}
		// keep the plane point under the pointer fixed
		c.vp.OffsetX = (c.vp.OffsetX+g.X)*f - g.X
		c.vp.OffsetY = (c.vp.OffsetY+g.Y)*f - g.Y
		c.vp.Scale = scale
		return true

	case Resize:
		return true
	}
	return false
}

func request(r FrameRequester) {
	if r != nil {
		r.RequestFrame()
	}
}
