package render

import "image"

// recordingCanvas remembers every write and flags those outside its bounds.
type recordingCanvas struct {
	width, height int
	bpp           int
	writes        map[image.Point]Color
	outOfBounds   []image.Point
}

func newRecordingCanvas(width, height int) *recordingCanvas {
	return &recordingCanvas{width: width, height: height, bpp: 32, writes: map[image.Point]Color{}}
}

func (c *recordingCanvas) Size() (int, int) { return c.width, c.height }
func (c *recordingCanvas) BitsPerPixel() int { return c.bpp }

func (c *recordingCanvas) SetRGB(x, y int, col Color) {
	p := image.Pt(x, y)
	if !p.In(image.Rect(0, 0, c.width, c.height)) {
		c.outOfBounds = append(c.outOfBounds, p)
		return
	}
	c.writes[p] = col
}
