package render

import (
	"encoding/binary"
	"errors"
	"image"
	"testing"

	"github.com/rook-computer/fbsplash/internal/ppm"
)

func solidImage(w, h int, r, g, b uint8) *ppm.Image {
	pix := make([]byte, 0, w*h*3)
	for i := 0; i < w*h; i++ {
		pix = append(pix, r, g, b)
	}
	return &ppm.Image{Width: w, Height: h, Pix: pix}
}

// gradientImage encodes each pixel's coordinates in its red and green channels.
func gradientImage(w, h int) *ppm.Image {
	pix := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix = append(pix, uint8(x), uint8(y), 7)
		}
	}
	return &ppm.Image{Width: w, Height: h, Pix: pix}
}

func TestBlitCentered_SmallImage(t *testing.T) {
	s := NewSurface(100, 100, 32)
	s.Fill(sentinel)
	if err := BlitCentered(s, solidImage(10, 10, 255, 0, 0)); err != nil {
		t.Fatalf("blit: %v", err)
	}

	want, _ := Pack(255, 0, 0, 32)
	i := s.PixOffset(50, 50)
	if got := binary.NativeEndian.Uint32(s.Pix[i : i+4]); got != want {
		t.Fatalf("expected packed red %#x at (50,50), got %#x", want, got)
	}

	region := image.Rect(45, 45, 55, 55)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			got := s.RGBAt(x, y)
			if image.Pt(x, y).In(region) {
				if got != 0xFF0000 {
					t.Fatalf("expected red at (%d,%d), got %#06x", x, y, got)
				}
			} else if got != sentinel {
				t.Fatalf("expected untouched pixel at (%d,%d), got %#06x", x, y, got)
			}
		}
	}
}

func TestBlitCentered_LargerImageIsCropped(t *testing.T) {
	c := newRecordingCanvas(100, 80)
	if err := BlitCentered(c, gradientImage(150, 120)); err != nil {
		t.Fatalf("blit: %v", err)
	}
	if len(c.outOfBounds) > 0 {
		t.Fatalf("wrote outside the canvas at %v", c.outOfBounds[:1])
	}
	if len(c.writes) != 100*80 {
		t.Fatalf("expected every pixel written, got %d", len(c.writes))
	}
	// image is placed at (-25,-20)
	if got := c.writes[image.Pt(0, 0)]; got != RGB(25, 20, 7) {
		t.Fatalf("expected image pixel (25,20) at origin, got %#06x", got)
	}
	if got := c.writes[image.Pt(99, 79)]; got != RGB(124, 99, 7) {
		t.Fatalf("expected image pixel (124,99) at bottom right, got %#06x", got)
	}
}

func TestBlitCentered_16bpp(t *testing.T) {
	s := NewSurface(8, 8, 16)
	if err := BlitCentered(s, solidImage(2, 2, 0xFF, 0x80, 0x10)); err != nil {
		t.Fatalf("blit: %v", err)
	}
	i := s.PixOffset(3, 3)
	want, _ := Pack(0xFF, 0x80, 0x10, 16)
	if got := binary.NativeEndian.Uint16(s.Pix[i : i+2]); uint32(got) != want {
		t.Fatalf("expected %#x, got %#x", want, got)
	}
}

func TestBlitCentered_UnsupportedFormat(t *testing.T) {
	c := newRecordingCanvas(10, 10)
	c.bpp = 24
	if err := BlitCentered(c, solidImage(2, 2, 1, 2, 3)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if len(c.writes) != 0 {
		t.Fatalf("expected no writes, got %d", len(c.writes))
	}
}
