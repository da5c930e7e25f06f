//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevSource reads keys and single-touch taps from /dev/input/event* devices.
// Touch coordinates are scaled to Width x Height.
type EvdevSource struct {
	Pattern string
	Width   int
	Height  int
	Logger  logger

	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEvdevSource(width, height int, l logger) *EvdevSource {
	return &EvdevSource{
		Pattern: "/dev/input/event*",
		Width:   width,
		Height:  height,
		Logger:  l,
		ch:      make(chan Event, 32),
	}
}

func (s *EvdevSource) Events() <-chan Event { return s.ch }

// Start opens every matching device. It is best-effort: with no devices it logs
// and returns nil, leaving the source silent.
func (s *EvdevSource) Start(ctx context.Context) error {
	paths, err := filepath.Glob(s.Pattern)
	if err != nil || len(paths) == 0 {
		if s.Logger != nil {
			s.Logger.Infof("input", "no evdev devices match %s", s.Pattern)
		}
		return nil
	}

	readCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Errorf("input", "open %s: %v", path, err)
			}
			continue
		}
		t := newTracker(s.Width, s.Height, absRange(fd, absMTPosition, absX, s.Width), absRange(fd, absMTPosY, absY, s.Height))
		if s.Logger != nil {
			s.Logger.Infof("input", "reading %s", path)
		}
		s.wg.Add(1)
		go s.read(readCtx, os.NewFile(uintptr(fd), path), fd, t)
	}
	return nil
}

func (s *EvdevSource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	return nil
}

func (s *EvdevSource) read(ctx context.Context, f *os.File, fd int, t *tracker) {
	defer s.wg.Done()
	defer func() {
		_ = f.Close()
	}()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	buf := make([]byte, 4096)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		_, pollErr := unix.Poll(pollFds, 250)
		if pollErr != nil {
			if pollErr == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, readErr := unix.Read(fd, buf)
		if readErr != nil {
			if readErr == unix.EAGAIN || readErr == unix.EINTR {
				continue
			}
			return
		}

		for _, raw := range decodeEvents(buf[:n], tvSize) {
			ev, ok := t.feed(raw)
			if !ok {
				continue
			}
			select {
			case s.ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// absRange queries EVIOCGABS for the preferred axis, then the fallback axis.
// Devices without absolute axes map 1:1 onto the canvas.
func absRange(fd int, preferred, fallback uint16, size int) axisRange {
	for _, axis := range []uint16{preferred, fallback} {
		if info, err := ioctlGetAbs(fd, axis); err == nil && info.Maximum > info.Minimum {
			return axisRange{Min: info.Minimum, Max: info.Maximum}
		}
	}
	return axisRange{Min: 0, Max: int32(size - 1)}
}

func ioctlGetAbs(fd int, axis uint16) (absInfo, error) {
	var info absInfo
	// _IOR('E', 0x40 + axis, struct input_absinfo)
	req := uintptr(2<<30) | uintptr(unsafe.Sizeof(info))<<16 | uintptr('E')<<8 | uintptr(0x40+axis)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return info, errno
	}
	return info, nil
}
