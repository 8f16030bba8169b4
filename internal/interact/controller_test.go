package interact_test

import (
	"io"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/interact"
)

type countingRequester struct{ n int }

func (c *countingRequester) RequestFrame() { c.n++ }

var _ = Describe("Controller", func() {
	var (
		ctrl *interact.Controller
		reqs *countingRequester
	)

	BeforeEach(func() {
		ctrl = interact.NewController(fractal.DefaultViewport())
		ctrl.SetLogger(log.New(io.Discard, "", 0))
		reqs = &countingRequester{}
		ctrl.SetRequester(reqs)
	})

	It("falls back to the default viewport when given an invalid one", func() {
		c := interact.NewController(fractal.Viewport{Scale: -3})
		Expect(c.Viewport()).To(Equal(fractal.DefaultViewport()))
	})

	Describe("panning", func() {
		It("moves the offset against the drag and requests a frame", func() {
			ctrl.HandleGesture(interact.Gesture{Kind: interact.PanStart, X: 10, Y: 10})
			Expect(ctrl.Panning()).To(BeTrue())
			Expect(reqs.n).To(Equal(0))

			Expect(ctrl.HandleGesture(interact.Gesture{Kind: interact.PanMove, X: 15, Y: 7})).To(BeTrue())
			vp := ctrl.Viewport()
			Expect(vp.OffsetX).To(Equal(-5.0))
			Expect(vp.OffsetY).To(Equal(3.0))
			Expect(vp.Scale).To(Equal(1.0))
			Expect(reqs.n).To(Equal(1))
		})

		It("ignores moves outside a drag", func() {
			Expect(ctrl.HandleGesture(interact.Gesture{Kind: interact.PanMove, X: 50, Y: 50})).To(BeFalse())
			Expect(ctrl.Viewport()).To(Equal(fractal.DefaultViewport()))
			Expect(reqs.n).To(Equal(0))
		})

		It("returns to idle on pan end", func() {
			ctrl.HandleGesture(interact.Gesture{Kind: interact.PanStart})
			ctrl.HandleGesture(interact.Gesture{Kind: interact.PanEnd})
			Expect(ctrl.Panning()).To(BeFalse())
			Expect(ctrl.HandleGesture(interact.Gesture{Kind: interact.PanMove, X: 3})).To(BeFalse())
		})

		It("composes a sequence of moves like one move of the net displacement", func() {
			ctrl.HandleGesture(interact.Gesture{Kind: interact.PanStart, X: 100, Y: 100})
			for _, p := range [][2]float64{{103, 98}, {110, 90}, {90, 95}, {125, 140}} {
				ctrl.HandleGesture(interact.Gesture{Kind: interact.PanMove, X: p[0], Y: p[1]})
			}
			stepped := ctrl.Viewport()

			other := interact.NewController(fractal.DefaultViewport())
			other.SetLogger(log.New(io.Discard, "", 0))
			other.HandleGesture(interact.Gesture{Kind: interact.PanStart, X: 100, Y: 100})
			other.HandleGesture(interact.Gesture{Kind: interact.PanMove, X: 125, Y: 140})

			Expect(stepped).To(Equal(other.Viewport()))
			Expect(stepped.OffsetX).To(Equal(-25.0))
			Expect(stepped.OffsetY).To(Equal(-40.0))
		})
	})

	Describe("zooming", func() {
		It("zooms in on positive delta and out on negative", func() {
			ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, Delta: 1})
			Expect(ctrl.Viewport().Scale).To(BeNumerically("~", 1.1, 1e-12))

			ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, Delta: -120})
			Expect(ctrl.Viewport().Scale).To(BeNumerically("~", 1.0, 1e-12))
			Expect(reqs.n).To(Equal(2))
		})

		It("ignores a zero delta", func() {
			Expect(ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, X: 4, Y: 4})).To(BeFalse())
			Expect(ctrl.Viewport()).To(Equal(fractal.DefaultViewport()))
			Expect(reqs.n).To(Equal(0))
		})

		It("keeps the plane point under the pointer fixed", func() {
			Expect(ctrl.SetViewport(fractal.Viewport{OffsetX: 37, OffsetY: -12, Scale: 2.5})).To(Succeed())
			before := ctrl.Viewport()
			mx, my := 213, 97

			ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, X: float64(mx), Y: float64(my), Delta: 1})
			after := ctrl.Viewport()

			pb, pa := before.Point(mx, my), after.Point(mx, my)
			Expect(real(pa)).To(BeNumerically("~", real(pb), 1e-12))
			Expect(imag(pa)).To(BeNumerically("~", imag(pb), 1e-12))
		})

		It("round-trips a zoom in and out at the same pointer", func() {
			start := fractal.Viewport{OffsetX: 412.5, OffsetY: -33.25, Scale: 7.75}
			Expect(ctrl.SetViewport(start)).To(Succeed())

			ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, X: 320, Y: 240, Delta: 1})
			ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, X: 320, Y: 240, Delta: -1})

			end := ctrl.Viewport()
			Expect(end.OffsetX).To(BeNumerically("~", start.OffsetX, 1e-9))
			Expect(end.OffsetY).To(BeNumerically("~", start.OffsetY, 1e-9))
			Expect(end.Scale).To(BeNumerically("~", start.Scale, 1e-12))
		})

		It("refuses to zoom past the scale bounds", func() {
			Expect(ctrl.SetViewport(fractal.Viewport{Scale: fractal.MaxScale})).To(Succeed())
			Expect(ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, Delta: 1})).To(BeFalse())
			Expect(ctrl.Viewport().Scale).To(Equal(fractal.MaxScale))

			Expect(ctrl.SetViewport(fractal.Viewport{Scale: fractal.MinScale})).To(Succeed())
			Expect(ctrl.HandleGesture(interact.Gesture{Kind: interact.Zoom, Delta: -1})).To(BeFalse())
			Expect(ctrl.Viewport().Scale).To(Equal(fractal.MinScale))
		})
	})

	Describe("resizing", func() {
		It("requests a frame with the viewport unchanged", func() {
			Expect(ctrl.HandleGesture(interact.Gesture{Kind: interact.Resize})).To(BeTrue())
			Expect(ctrl.Viewport()).To(Equal(fractal.DefaultViewport()))
			Expect(reqs.n).To(Equal(1))
		})
	})

	Describe("SetViewport", func() {
		It("rejects a non-positive scale", func() {
			err := ctrl.SetViewport(fractal.Viewport{Scale: 0})
			Expect(err).To(MatchError(fractal.ErrInvalidViewport))
			Expect(reqs.n).To(Equal(0))
		})

		It("requests a frame for a valid viewport", func() {
			Expect(ctrl.SetViewport(fractal.Viewport{Scale: 3})).To(Succeed())
			Expect(reqs.n).To(Equal(1))
		})
	})

	It("names gesture kinds", func() {
		Expect(interact.Zoom.String()).To(Equal("zoom"))
		Expect(interact.GestureKind(42).String()).To(Equal("gesture(42)"))
	})
})
