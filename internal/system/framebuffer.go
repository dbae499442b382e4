package system

import (
	"errors"
	"sync"

	"github.com/rook-computer/fbsplash/internal/render"
)

// ErrDevice reports a failure to open, query or map the display device.
var ErrDevice = errors.New("display device error")

// DefaultDevice is the framebuffer used when none is configured.
const DefaultDevice = "/dev/fb0"

// ScreenInfo is the geometry reported by the framebuffer driver.
type ScreenInfo struct {
	ID           string
	Width        int
	Height       int
	BitsPerPixel int
	Stride       int // bytes per row
}

// Framebuffer is an open, memory-mapped display device.
type Framebuffer struct {
	Info ScreenInfo

	surface *render.Surface
	release func() error

	once     sync.Once
	closeErr error
}

// Surface returns the mapped pixels. It must not be used after Close.
func (fb *Framebuffer) Surface() *render.Surface { return fb.surface }

// Close unmaps the pixels and closes the device. Only the first call
// releases anything; later calls return the first result.
func (fb *Framebuffer) Close() error {
	fb.once.Do(func() {
		if fb.release != nil {
			fb.closeErr = fb.release()
		}
		fb.surface = nil
	})
	return fb.closeErr
}
