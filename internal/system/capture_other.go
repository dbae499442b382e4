//go:build !linux || !cgo

package system

import "fmt"

func CaptureFramebuffer(device, path string) error {
	return fmt.Errorf("%w: framebuffer capture needs linux with cgo (%s)", ErrDevice, device)
}
