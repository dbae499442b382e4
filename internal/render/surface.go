package render

import (
	"fmt"
	"image"
	"image/color"
)

// Canvas is the write target of every paint operation. Callers never see
// stride or byte layout; they address pixels by coordinate.
type Canvas interface {
	// Size returns the visible surface size in pixels.
	Size() (width int, height int)
	BitsPerPixel() int
	// SetRGB writes one pixel. Writes outside the surface are dropped.
	SetRGB(x, y int, c Color)
}

// Surface is a pixel buffer laid out like a Linux framebuffer: rows of
// Stride bytes, each pixel BPP/8 bytes in native byte order.
// Pix may be memory-mapped device memory.
//
// Surface implements Canvas and draw.Image.
type Surface struct {
	Pix    []byte
	Stride int
	Width  int
	Height int
	BPP    int
}

// NewSurface allocates an in-memory surface with a tightly packed stride.
func NewSurface(width, height, bpp int) *Surface {
	stride := width * bpp / 8
	return &Surface{
		Pix:    make([]byte, stride*height),
		Stride: stride,
		Width:  width,
		Height: height,
		BPP:    bpp,
	}
}

// WrapSurface builds a Surface over an existing buffer, typically an mmapped
// framebuffer. The buffer must cover stride*height bytes.
func WrapSurface(pix []byte, stride, width, height, bpp int) (*Surface, error) {
	if width < 0 || height < 0 || stride < 0 {
		return nil, fmt.Errorf("invalid surface geometry %dx%d stride %d", width, height, stride)
	}
	if len(pix) < stride*height {
		return nil, fmt.Errorf("surface buffer too small: %d bytes for stride %d x %d rows", len(pix), stride, height)
	}
	return &Surface{Pix: pix, Stride: stride, Width: width, Height: height, BPP: bpp}, nil
}

func (s *Surface) Size() (int, int) { return s.Width, s.Height }
func (s *Surface) BitsPerPixel() int { return s.BPP }

// PixOffset returns the index of the first byte of pixel (x, y).
func (s *Surface) PixOffset(x, y int) int {
	return y*s.Stride + x*(s.BPP/8)
}

// SetRGB implements Canvas.
func (s *Surface) SetRGB(x, y int, c Color) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return
	}
	v, err := Pack(c.R(), c.G(), c.B(), s.BPP)
	if err != nil {
		return
	}
	i := s.PixOffset(x, y)
	n := s.BPP / 8
	if i+n > len(s.Pix) || i+n > s.Stride*s.Height {
		return
	}
	PutPixel(s.Pix[i:i+n], v, s.BPP)
}

// RGBAt reads pixel (x, y) back. Out-of-bounds reads return black.
func (s *Surface) RGBAt(x, y int) Color {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0
	}
	i := s.PixOffset(x, y)
	n := s.BPP / 8
	if n == 0 || i+n > len(s.Pix) {
		return 0
	}
	return unpack(s.Pix[i:i+n], s.BPP)
}

// Fill paints every pixel with c.
func (s *Surface) Fill(c Color) {
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			s.SetRGB(x, y, c)
		}
	}
}

// image.Image / draw.Image

func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.Width, s.Height) }
func (s *Surface) ColorModel() color.Model { return color.RGBAModel }
func (s *Surface) At(x, y int) color.Color { return s.RGBAt(x, y) }
func (s *Surface) Set(x, y int, c color.Color) { s.SetRGB(x, y, FromColor(c)) }
