package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mandelview/internal/fractal"
)

// upperHalf shows the top pixel in the foreground color and the bottom pixel
// in the background color.
const upperHalf = "▀"

// CanvasSize converts a terminal area into pixels: one column wide, two
// pixels tall per cell.
func CanvasSize(cols, rows int) (width, height int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return cols, rows * 2
}

// CellToPixel maps a terminal cell to the top pixel it shows.
func CellToPixel(col, row int) (x, y float64) {
	return float64(col), float64(row * 2)
}

type cellColors struct {
	top, bottom fractal.RGB
}

// HalfBlocks renders buf as cols x rows terminal cells. Runs of equal cells
// share one styled span. Cells past the buffer edge are black.
func HalfBlocks(buf *fractal.PixelBuffer, cols, rows int) string {
	if buf == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}

		runStart := 0
		var run cellColors
		for col := 0; col <= cols; col++ {
			var cur cellColors
			if col < cols {
				cur = cellColors{buf.At(col, row*2), buf.At(col, row*2+1)}
				if col == 0 {
					run = cur
					continue
				}
				if cur == run {
					continue
				}
			}
			sb.WriteString(span(run, col-runStart))
			run = cur
			runStart = col
		}
	}
	return sb.String()
}

func span(c cellColors, n int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.top.Hex())).
		Background(lipgloss.Color(c.bottom.Hex())).
		Render(strings.Repeat(upperHalf, n))
}
