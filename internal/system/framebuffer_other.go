//go:build !linux

package system

import "fmt"

func OpenFramebuffer(path string) (*Framebuffer, error) {
	return nil, fmt.Errorf("%w: framebuffer devices are only supported on linux (%s)", ErrDevice, path)
}
