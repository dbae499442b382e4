package render

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when a surface uses a pixel depth other
// than 16 or 32 bits.
var ErrUnsupportedFormat = errors.New("unsupported framebuffer format")

// Supported reports whether bpp can be written by Pack.
func Supported(bpp int) error {
	switch bpp {
	case 16, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d bpp", ErrUnsupportedFormat, bpp)
	}
}

// Pack converts an 8-bit RGB triple to the on-surface pixel value for bpp.
// 16 bpp truncates to 5-6-5 without rounding or dithering.
func Pack(r, g, b uint8, bpp int) (uint32, error) {
	switch bpp {
	case 32:
		return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
	case 16:
		return uint32(r>>3)<<11 | uint32(g>>2)<<5 | uint32(b>>3), nil
	default:
		return 0, Supported(bpp)
	}
}

// PutPixel stores a packed pixel in native byte order. buf must hold at
// least bpp/8 bytes.
func PutPixel(buf []byte, v uint32, bpp int) {
	switch bpp {
	case 32:
		binary.NativeEndian.PutUint32(buf, v)
	case 16:
		binary.NativeEndian.PutUint16(buf, uint16(v))
	}
}

// unpack is the inverse of Pack, used when reading a surface back as an image.
// Low bits lost by 5-6-5 packing read back as zero.
func unpack(buf []byte, bpp int) Color {
	switch bpp {
	case 32:
		v := binary.NativeEndian.Uint32(buf)
		return Color(v & 0xFFFFFF)
	case 16:
		v := binary.NativeEndian.Uint16(buf)
		return RGB(uint8(v>>11)<<3, (uint8(v>>5)&0x3F)<<2, (uint8(v)&0x1F)<<3)
	default:
		return 0
	}
}
