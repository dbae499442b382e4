package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// frameWriter saves numbered PNG snapshots of the simulated screen.
type frameWriter struct {
	Dir   string
	Scale float64

	count int
}

func (w *frameWriter) Count() int { return w.count }

// Write encodes src as the next frame and returns its path.
func (w *frameWriter) Write(src image.Image) (string, error) {
	path := filepath.Join(w.Dir, fmt.Sprintf("frame-%03d.png", w.count))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, scaled(src, w.Scale)); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	w.count++
	return path, nil
}

// scaled returns src resized by factor with nearest-neighbour sampling so
// individual anti-aliased pixels stay visible when zooming in.
func scaled(src image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return src
	}
	bounds := src.Bounds()
	width := int(float64(bounds.Dx()) * factor)
	height := int(float64(bounds.Dy()) * factor)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
	return dst
}
