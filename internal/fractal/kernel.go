package fractal

import "image"

// RenderTile computes every pixel of tile, clipped to the buffer, and writes
// it into buf. Each pixel depends only on its own coordinates, so calls on
// disjoint tiles can run concurrently.
func RenderTile(buf *PixelBuffer, tile image.Rectangle, vp Viewport, s Scheme) {
	tile = tile.Intersect(buf.Bounds())
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		i := buf.offset(tile.Min.X, y)
		for x := tile.Min.X; x < tile.Max.X; x++ {
			c := Color(Escape(vp.Point(x, y), MaxIter), s)
			buf.Pix[i] = c.R
			buf.Pix[i+1] = c.G
			buf.Pix[i+2] = c.B
			i += 3
		}
	}
}

// RenderCounts writes the escape count of every pixel in tile into counts,
// a row-major field of width * height entries.
func RenderCounts(counts []uint16, width, height int, tile image.Rectangle, vp Viewport) {
	tile = tile.Intersect(image.Rect(0, 0, width, height))
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		row := counts[y*width : (y+1)*width]
		for x := tile.Min.X; x < tile.Max.X; x++ {
			row[x] = uint16(Escape(vp.Point(x, y), MaxIter))
		}
	}
}

// ColorCounts maps a count field onto buf under scheme s for the rows
// [startY, endY).
func ColorCounts(buf *PixelBuffer, counts []uint16, s Scheme, startY, endY int) {
	if startY < 0 {
		startY = 0
	}
	if endY > buf.Height {
		endY = buf.Height
	}
	for y := startY; y < endY; y++ {
		i := buf.offset(0, y)
		for x := 0; x < buf.Width; x++ {
			c := Color(int(counts[y*buf.Width+x]), s)
			buf.Pix[i] = c.R
			buf.Pix[i+1] = c.G
			buf.Pix[i+2] = c.B
			i += 3
		}
	}
}
