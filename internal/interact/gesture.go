package interact

import "fmt"

// GestureKind enumerates the input events a surface reports.
type GestureKind int

const (
	PanStart GestureKind = iota
	PanMove
	PanEnd
	Zoom
	Resize
)

var gestureNames = [...]string{"pan-start", "pan-move", "pan-end", "zoom", "resize"}

func (k GestureKind) String() string {
	if k < 0 || int(k) >= len(gestureNames) {
		return fmt.Sprintf("gesture(%d)", int(k))
	}
	return gestureNames[k]
}

// Gesture is one input event. X and Y are the pointer position in canvas
// pixels. Delta carries the wheel direction for Zoom: positive zooms in,
// negative zooms out, zero is ignored.
type Gesture struct {
	Kind  GestureKind
	X, Y  float64
	Delta float64
}
