// Package ppm decodes binary PPM (P6) images with 8-bit channels.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// ErrFormat reports a malformed or unsupported PPM stream.
var ErrFormat = errors.New("invalid ppm")

const (
	magic = "P6"

	// Upper bound on either dimension; keeps width*height*3 far from overflow.
	maxDimension = 1 << 15
)

// Image is a decoded raster: Width*Height RGB triples, row-major.
// It implements image.Image.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }
func (m *Image) ColorModel() color.Model { return color.RGBAModel }

func (m *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.RGBA{}
	}
	r, g, b := m.RGBAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// RGBAt returns the channels of pixel (x, y). It does not bounds-check.
func (m *Image) RGBAt(x, y int) (r, g, b uint8) {
	i := (y*m.Width + x) * 3
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Config is the parsed header.
type Config struct {
	Width  int
	Height int
	MaxVal int
}

// Decode reads a complete P6 image from r.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	cfg, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	pix := make([]byte, cfg.Width*cfg.Height*3)
	if n, err := io.ReadFull(br, pix); err != nil {
		return nil, fmt.Errorf("%w: short pixel data (%d of %d bytes): %v", ErrFormat, n, len(pix), err)
	}
	return &Image{Width: cfg.Width, Height: cfg.Height, Pix: pix}, nil
}

// DecodeHeader reads only the header.
func DecodeHeader(r io.Reader) (Config, error) {
	return readHeader(bufio.NewReader(r))
}

func readHeader(br *bufio.Reader) (Config, error) {
	var m [2]byte
	if _, err := io.ReadFull(br, m[:]); err != nil {
		return Config{}, fmt.Errorf("%w: reading magic: %v", ErrFormat, err)
	}
	if string(m[:]) != magic {
		return Config{}, fmt.Errorf("%w: bad magic %q (must be %s)", ErrFormat, m[:], magic)
	}

	var fields [3]int
	names := [3]string{"width", "height", "maxval"}
	for i := range fields {
		v, err := readInt(br)
		if err != nil {
			return Config{}, fmt.Errorf("%w: reading %s: %v", ErrFormat, names[i], err)
		}
		fields[i] = v
	}
	cfg := Config{Width: fields[0], Height: fields[1], MaxVal: fields[2]}

	if cfg.MaxVal != 255 {
		return Config{}, fmt.Errorf("%w: unsupported maxval %d (must be 255)", ErrFormat, cfg.MaxVal)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxDimension || cfg.Height > maxDimension {
		return Config{}, fmt.Errorf("%w: unsupported dimensions %dx%d", ErrFormat, cfg.Width, cfg.Height)
	}

	// Exactly one whitespace byte separates the header from the raster.
	c, err := br.ReadByte()
	if err != nil {
		return Config{}, fmt.Errorf("%w: missing raster: %v", ErrFormat, err)
	}
	if !isSpace(c) {
		return Config{}, fmt.Errorf("%w: expected whitespace after maxval, got %q", ErrFormat, c)
	}
	return cfg, nil
}

// readInt skips whitespace and '#' comments, then reads a decimal integer.
// The byte that terminates the number is left unread.
func readInt(br *bufio.Reader) (int, error) {
	if err := skipSpaceAndComments(br); err != nil {
		return 0, err
	}
	var digits []byte
	for {
		c, err := br.ReadByte()
		if err == io.EOF && len(digits) > 0 {
			break
		}
		if err != nil {
			return 0, err
		}
		if c < '0' || c > '9' {
			if err := br.UnreadByte(); err != nil {
				return 0, err
			}
			break
		}
		digits = append(digits, c)
		if len(digits) > 9 {
			return 0, errors.New("number too large")
		}
	}
	if len(digits) == 0 {
		return 0, errors.New("expected a number")
	}
	return strconv.Atoi(string(digits))
}

func skipSpaceAndComments(br *bufio.Reader) error {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case isSpace(c):
		case c == '#':
			if _, err := br.ReadString('\n'); err != nil {
				return err
			}
		default:
			return br.UnreadByte()
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func init() {
	image.RegisterFormat("ppm", magic,
		func(r io.Reader) (image.Image, error) { return Decode(r) },
		func(r io.Reader) (image.Config, error) {
			cfg, err := DecodeHeader(r)
			if err != nil {
				return image.Config{}, err
			}
			return image.Config{ColorModel: color.RGBAModel, Width: cfg.Width, Height: cfg.Height}, nil
		})
}
