//go:build linux && cgo

package system

import (
	"fmt"
	"image/png"
	"os"

	fb "github.com/gonutz/framebuffer"
)

// CaptureFramebuffer saves what is currently on the framebuffer at device
// to a PNG file at path.
func CaptureFramebuffer(device, path string) error {
	dev, err := fb.Open(device)
	if err != nil {
		return fmt.Errorf("%w: capture open %s: %v", ErrDevice, device, err)
	}
	defer dev.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := png.Encode(f, dev); err != nil {
		f.Close()
		return fmt.Errorf("capture: encode %s: %w", path, err)
	}
	return f.Close()
}
