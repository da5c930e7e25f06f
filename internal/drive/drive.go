// Package drive watches the mount table for USB mass-storage drives.
//
// The watcher never mounts anything itself; it reports drives once the
// system automounter has mounted them under one of the configured roots.
package drive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DefaultMountTable  = "/proc/mounts"
	DefaultSysDevBlock = "/sys/dev/block"
	DefaultInterval    = time.Second
)

// DefaultRoots are the directories automounters mount removable media under.
var DefaultRoots = []string{"/media", "/run/media", "/mnt"}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Mount is one mounted filesystem.
type Mount struct {
	Device string
	Path   string
}

// Watcher polls the mount table and reports each qualifying drive once per
// insertion.
type Watcher struct {
	MountTable  string
	SysDevBlock string
	Roots       []string
	Interval    time.Duration
	Logger      Logger

	// USB reports whether m lives on a USB device. Defaults to a sysfs lookup
	// of the mountpoint's device numbers.
	USB func(m Mount) bool

	ch      chan Mount
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	known   map[string]bool
	lastErr string
}

func NewWatcher(logger Logger) *Watcher {
	return &Watcher{
		MountTable:  DefaultMountTable,
		SysDevBlock: DefaultSysDevBlock,
		Roots:       DefaultRoots,
		Interval:    DefaultInterval,
		Logger:      logger,
	}
}

// Arrivals delivers newly mounted drives. It is valid after Start and is
// closed by Stop.
func (w *Watcher) Arrivals() <-chan Mount { return w.ch }

// Start scans once immediately and then every Interval until ctx is done or
// Stop is called. Drives mounted before Start are reported by the first scan.
func (w *Watcher) Start(ctx context.Context) error {
	if w.cancel != nil {
		return errors.New("drive watcher already started")
	}
	if w.Interval <= 0 {
		return errors.New("drive watcher needs a positive interval")
	}
	w.ch = make(chan Mount, 4)
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	go w.run(ctx)
	return nil
}

// Stop ends polling and closes the Arrivals channel.
func (w *Watcher) Stop() error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()
	w.wg.Wait()
	w.cancel = nil
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.ch)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		arrived, err := w.Scan()
		w.logScanError(err)
		for _, m := range arrived {
			w.infof("%s mounted at %s", m.Device, m.Path)
			select {
			case w.ch <- m:
			case <-ctx.Done():
				return
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Scan reads the mount table once and returns the drives that were not
// mounted at the previous scan. A drive that disappears is forgotten, so
// mounting it again reports it again. On error the previous view is kept.
func (w *Watcher) Scan() ([]Mount, error) {
	f, err := os.Open(w.MountTable)
	if err != nil {
		return nil, fmt.Errorf("mount table: %w", err)
	}
	defer f.Close()
	mounts, err := ParseMounts(f)
	if err != nil {
		return nil, fmt.Errorf("mount table %s: %w", w.MountTable, err)
	}

	current := make(map[string]bool)
	var arrived []Mount
	for _, m := range mounts {
		if current[m.Path] || !w.qualifies(m) {
			continue
		}
		current[m.Path] = true
		if !w.known[m.Path] {
			arrived = append(arrived, m)
		}
	}
	w.known = current
	return arrived, nil
}

func (w *Watcher) qualifies(m Mount) bool {
	if !strings.HasPrefix(m.Device, "/dev/") || !underRoot(m.Path, w.Roots) {
		return false
	}
	if w.USB != nil {
		return w.USB(m)
	}
	major, minor, err := deviceNumbers(m.Path)
	if err != nil {
		return false
	}
	return usbBacked(w.SysDevBlock, major, minor)
}

func underRoot(path string, roots []string) bool {
	for _, root := range roots {
		root = strings.TrimSuffix(root, "/")
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+"/") {
			return true
		}
	}
	return false
}

// usbBacked resolves /sys/dev/block/<major>:<minor> and reports whether the
// device hangs off a USB controller.
func usbBacked(sysDevBlock string, major, minor uint32) bool {
	link := filepath.Join(sysDevBlock, fmt.Sprintf("%d:%d", major, minor))
	resolved, err := filepath.EvalSymlinks(link)
	if err != nil {
		return false
	}
	return strings.Contains(filepath.ToSlash(resolved), "/usb")
}

// ParseMounts reads a mount table in /proc/mounts format. Octal escapes in
// the device and mountpoint fields are decoded.
func ParseMounts(r io.Reader) ([]Mount, error) {
	var out []Mount
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		out = append(out, Mount{Device: unescapeMount(fields[0]), Path: unescapeMount(fields[1])})
	}
	return out, sc.Err()
}

// unescapeMount decodes the \NNN octal escapes the kernel uses for spaces,
// tabs, newlines and backslashes.
func unescapeMount(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func (w *Watcher) logScanError(err error) {
	if err == nil {
		w.lastErr = ""
		return
	}
	// Repeats of the same failure are logged once.
	if err.Error() == w.lastErr {
		return
	}
	w.lastErr = err.Error()
	if w.Logger != nil {
		w.Logger.Errorf("drive", "%v", err)
	}
}

func (w *Watcher) infof(format string, args ...interface{}) {
	if w.Logger != nil {
		w.Logger.Infof("drive", format, args...)
	}
}
