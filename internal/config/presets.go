package config

import (
	"sort"

	"github.com/san-kum/mandelview/internal/fractal"
)

// Preset is a landmark of the set: a center point and the width of the
// plane region to show.
type Preset struct {
	Name        string
	Description string
	Re, Im      float64
	Span        float64
}

// Viewport centers the preset on a width x height canvas.
func (p *Preset) Viewport(width, height int) fractal.Viewport {
	if width <= 1 || height <= 1 {
		return fractal.DefaultViewport()
	}
	scale := fractal.SpanScale(p.Span, width)
	return fractal.Centered(complex(p.Re, p.Im), scale, width, height)
}

var Presets = map[string]*Preset{
	"full": {
		Name: "full", Description: "the whole set",
		Re: -0.5, Im: 0, Span: 3.0,
	},
	"seahorse": {
		Name: "seahorse", Description: "dense filaments and repeating seahorse curls",
		Re: -0.75, Im: 0.10, Span: 0.1,
	},
	"elephant": {
		Name: "elephant", Description: "large bulb with trunk-like tendrils",
		Re: -1.80, Im: -0.06, Span: 0.1,
	},
	"spiral-minibrot": {
		Name: "spiral-minibrot", Description: "small copy of the set with tight spiral arms",
		Re: -0.74275, Im: 0.13175, Span: 0.0015,
	},
	"triple-spiral": {
		Name: "triple-spiral", Description: "threefold symmetric spiral",
		Re: -0.7465, Im: 0.0965, Span: 0.003,
	},
	"dragon": {
		Name: "dragon", Description: "deep, highly detailed spiral filaments",
		Re: -0.7375, Im: 0.1825, Span: 0.005,
	},
	"mini-spiral": {
		Name: "mini-spiral", Description: "self-similar copy inside a spiral arm",
		Re: -1.73825, Im: -0.02275, Span: 0.0015,
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
