package fractal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is one 8-bit-per-channel pixel.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scheme selects one of the fixed color mappings.
type Scheme int

// NumSchemes is the number of defined color schemes.
const NumSchemes = 5

// Valid reports whether s names a defined scheme.
func (s Scheme) Valid() bool {
	return s >= 0 && s < NumSchemes
}

// Next cycles to the following scheme.
func (s Scheme) Next() Scheme {
	if !s.Valid() {
		return 0
	}
	return (s + 1) % NumSchemes
}

func (s Scheme) String() string {
	return "Scheme " + strconv.Itoa(int(s)+1)
}

// ParseScheme accepts a zero-based index ("0".."4") or a display name
// ("Scheme 1".."Scheme 5", case and spacing insensitive).
func ParseScheme(v string) (Scheme, error) {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(v), " ", ""))
	if rest, ok := strings.CutPrefix(name, "scheme"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || !Scheme(n-1).Valid() {
			return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, v)
		}
		return Scheme(n - 1), nil
	}
	n, err := strconv.Atoi(name)
	if err != nil || !Scheme(n).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, v)
	}
	return Scheme(n), nil
}

// channel computes the unclamped value of one color channel for count n.
type channel func(n int) float64

func linear(n int) float64 {
	t := float64(n) / 256.0
	return 255 * t
}

func square(n int) float64 {
	t := float64(n) / 256.0
	return 255 * (t * t)
}

func cube(n int) float64 {
	t := float64(n) / 256.0
	return 255 * (t * t * t)
}

func band128(n int) float64 {
	return math.Mod(255*(float64(n)/128.0), 256)
}

func band64(n int) float64 {
	return math.Mod(255*(float64(n)/64.0), 256)
}

// schemes holds the r, g, b channel formulas of every scheme.
var schemes = [NumSchemes][3]channel{
	{linear, square, cube},
	{cube, linear, square},
	{square, cube, linear},
	{linear, band128, band64},
	{band64, band128, linear},
}

// Color maps an iteration count to a pixel under scheme s. Schemes outside
// the defined range use the last one. Channel values are truncated toward
// zero and clamped to [0, 255].
func Color(n int, s Scheme) RGB {
	if !s.Valid() {
		s = NumSchemes - 1
	}
	row := &schemes[s]
	return RGB{
		R: clampByte(row[0](n)),
		G: clampByte(row[1](n)),
		B: clampByte(row[2](n)),
	}
}

func clampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
