package drive

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

const baseMounts = `/dev/mmcblk0p2 / ext4 rw,noatime 0 0
proc /proc proc rw,relatime 0 0
tmpfs /run tmpfs rw,nosuid,nodev 0 0
/dev/mmcblk0p1 /boot/firmware vfat rw,relatime 0 0
`

func writeMounts(t *testing.T, path, extra string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(baseMounts+extra), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	table := filepath.Join(t.TempDir(), "mounts")
	writeMounts(t, table, "")
	w := NewWatcher(nil)
	w.MountTable = table
	w.Interval = 10 * time.Millisecond
	// Devices named sd* are USB sticks here; the eMMC is not.
	w.USB = func(m Mount) bool { return strings.HasPrefix(m.Device, "/dev/sd") }
	return w, table
}

func TestParseMounts(t *testing.T) {
	in := "/dev/sda1 /media/pi/MY\\040STICK vfat rw 0 0\n\nbroken\n/dev/sdb1 /mnt/back\\134slash ext4 rw 0 0\n"
	got, err := ParseMounts(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []Mount{
		{Device: "/dev/sda1", Path: "/media/pi/MY STICK"},
		{Device: "/dev/sdb1", Path: `/mnt/back\slash`},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseMounts = %+v, want %+v", got, want)
	}
}

func TestUnescapeMount(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/media/plain", "/media/plain"},
		{`/media/a\040b`, "/media/a b"},
		{`/media/tab\011x`, "/media/tab\tx"},
		{`/media/trailing\04`, `/media/trailing\04`},
		{`/media/not\999octal`, `/media/not\999octal`},
	}
	for _, tt := range tests {
		if got := unescapeMount(tt.in); got != tt.want {
			t.Errorf("unescapeMount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnderRoot(t *testing.T) {
	roots := []string{"/media", "/run/media/", ""}
	tests := []struct {
		path string
		want bool
	}{
		{"/media/pi/STICK", true},
		{"/media", true},
		{"/run/media/pi/STICK", true},
		{"/mediafiles", false},
		{"/mnt/usb", false},
		{"/", false},
	}
	for _, tt := range tests {
		if got := underRoot(tt.path, roots); got != tt.want {
			t.Errorf("underRoot(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestScanReportsEachInsertionOnce(t *testing.T) {
	w, table := newTestWatcher(t)

	steps := []struct {
		name  string
		extra string
		want  []Mount
	}{
		{"nothing mounted", "", nil},
		{"stick inserted", "/dev/sda1 /media/pi/HOLOTAPE vfat rw 0 0\n", []Mount{{"/dev/sda1", "/media/pi/HOLOTAPE"}}},
		{"still mounted", "/dev/sda1 /media/pi/HOLOTAPE vfat rw 0 0\n", nil},
		{"non-usb and outside roots ignored", "/dev/sda1 /media/pi/HOLOTAPE vfat rw 0 0\n/dev/mmcblk0p3 /media/data ext4 rw 0 0\n/dev/sdb1 /srv/disk ext4 rw 0 0\n//nas/share /mnt/nas cifs rw 0 0\n", nil},
		{"removed", "", nil},
		{"reinserted", "/dev/sda1 /media/pi/HOLOTAPE vfat rw 0 0\n", []Mount{{"/dev/sda1", "/media/pi/HOLOTAPE"}}},
		{"second stick and bind mount of the first", "/dev/sda1 /media/pi/HOLOTAPE vfat rw 0 0\n/dev/sda1 /media/pi/HOLOTAPE vfat rw 0 0\n/dev/sdb1 /run/media/pi/DATA exfat rw 0 0\n", []Mount{{"/dev/sdb1", "/run/media/pi/DATA"}}},
	}
	for _, step := range steps {
		writeMounts(t, table, step.extra)
		got, err := w.Scan()
		if err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if !reflect.DeepEqual(got, step.want) {
			t.Errorf("%s: Scan = %+v, want %+v", step.name, got, step.want)
		}
	}
}

func TestScanErrorKeepsPreviousView(t *testing.T) {
	w, table := newTestWatcher(t)
	writeMounts(t, table, "/dev/sda1 /media/pi/HOLOTAPE vfat rw 0 0\n")
	if got, _ := w.Scan(); len(got) != 1 {
		t.Fatalf("first scan = %+v", got)
	}

	w.MountTable = filepath.Join(t.TempDir(), "missing")
	if _, err := w.Scan(); err == nil {
		t.Fatal("expected error for a missing mount table")
	}

	w.MountTable = table
	if got, _ := w.Scan(); len(got) != 0 {
		t.Errorf("drive reported again after a failed scan: %+v", got)
	}
}

func TestUSBBacked(t *testing.T) {
	sys := t.TempDir()
	devBlock := filepath.Join(sys, "dev", "block")
	usbPart := filepath.Join(sys, "devices", "platform", "scb", "usb1", "1-1", "1-1:1.0", "host0", "block", "sda", "sda1")
	mmcPart := filepath.Join(sys, "devices", "platform", "emmc2bus", "mmc0", "block", "mmcblk0", "mmcblk0p1")
	for _, dir := range []string{devBlock, usbPart, mmcPart} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Symlink(usbPart, filepath.Join(devBlock, "8:1")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(mmcPart, filepath.Join(devBlock, "179:1")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		major, minor uint32
		want         bool
	}{
		{8, 1, true},
		{179, 1, false},
		{8, 17, false}, // no such device
	}
	for _, tt := range tests {
		if got := usbBacked(devBlock, tt.major, tt.minor); got != tt.want {
			t.Errorf("usbBacked(%d:%d) = %v, want %v", tt.major, tt.minor, got, tt.want)
		}
	}
}

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Infof(component string, format string, args ...interface{}) {}

func (l *recordingLogger) Errorf(component string, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, format)
}

func TestWatcherDeliversArrivals(t *testing.T) {
	w, table := newTestWatcher(t)
	writeMounts(t, table, "/dev/sda1 /media/pi/HOLOTAPE vfat rw 0 0\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(ctx); err == nil {
		t.Error("second Start should fail")
	}

	select {
	case m := <-w.Arrivals():
		if m.Path != "/media/pi/HOLOTAPE" {
			t.Errorf("arrival = %+v", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no arrival for a drive mounted before Start")
	}

	writeMounts(t, table, "/dev/sda1 /media/pi/HOLOTAPE vfat rw 0 0\n/dev/sdb1 /media/pi/SECOND vfat rw 0 0\n")
	select {
	case m := <-w.Arrivals():
		if m.Path != "/media/pi/SECOND" {
			t.Errorf("arrival = %+v", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no arrival for the second drive")
	}

	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-w.Arrivals(); ok {
		t.Error("Arrivals still open after Stop")
	}
}

func TestWatcherLogsRepeatedErrorOnce(t *testing.T) {
	logger := &recordingLogger{}
	w := NewWatcher(logger)
	w.MountTable = filepath.Join(t.TempDir(), "missing")
	w.Interval = 5 * time.Millisecond
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}
	if len(logger.errors) != 1 {
		t.Errorf("logged %d errors, want 1", len(logger.errors))
	}
}

func TestWatcherRejectsZeroInterval(t *testing.T) {
	w := NewWatcher(nil)
	w.Interval = 0
	if err := w.Start(context.Background()); err == nil {
		t.Error("expected error")
	}
}
