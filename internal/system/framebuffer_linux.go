//go:build linux

package system

import (
	"bytes"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/fbsplash/internal/render"
)

// linux/fb.h
const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

type fbVarScreenInfo struct {
	XRes         uint32
	YRes         uint32
	XResVirtual  uint32
	YResVirtual  uint32
	XOffset      uint32
	YOffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          fbBitfield
	Green        fbBitfield
	Blue         fbBitfield
	Transp       fbBitfield
	NonStd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	PixClock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HSyncLen     uint32
	VSyncLen     uint32
	Sync         uint32
	VMode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

// Field types follow the kernel struct so Go's alignment matches C's
// (unsigned long is pointer sized).
type fbFixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// OpenFramebuffer opens and maps the framebuffer device at path. The
// mapping covers stride*height bytes of the visible screen.
func OpenFramebuffer(path string) (*Framebuffer, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDevice, path, err)
	}

	vinfo, err := getVarScreenInfo(fd)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: FBIOGET_VSCREENINFO on %s: %v", ErrDevice, path, err)
	}
	finfo, err := getFixScreenInfo(fd)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: FBIOGET_FSCREENINFO on %s: %v", ErrDevice, path, err)
	}

	info := ScreenInfo{
		ID:           string(bytes.TrimRight(finfo.ID[:], "\x00")),
		Width:        int(vinfo.XRes),
		Height:       int(vinfo.YRes),
		BitsPerPixel: int(vinfo.BitsPerPixel),
		Stride:       int(finfo.LineLength),
	}
	size := info.Stride * info.Height
	if size <= 0 {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s reports empty geometry %dx%d stride %d", ErrDevice, path, info.Width, info.Height, info.Stride)
	}

	mem, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: mmap %s (%d bytes): %v", ErrDevice, path, size, err)
	}

	surface, err := render.WrapSurface(mem, info.Stride, info.Width, info.Height, info.BitsPerPixel)
	if err != nil {
		_ = unix.Munmap(mem)
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %v", ErrDevice, err)
	}

	return &Framebuffer{
		Info:    info,
		surface: surface,
		release: func() error {
			return errors.Join(unix.Munmap(mem), unix.Close(fd))
		},
	}, nil
}

func getVarScreenInfo(fd int) (fbVarScreenInfo, error) {
	var info fbVarScreenInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), fbioGetVScreenInfo, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return info, errno
	}
	return info, nil
}

func getFixScreenInfo(fd int) (fbFixScreenInfo, error) {
	var info fbFixScreenInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), fbioGetFScreenInfo, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return info, errno
	}
	return info, nil
}
