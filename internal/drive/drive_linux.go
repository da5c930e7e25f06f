//go:build linux

package drive

import "golang.org/x/sys/unix"

// deviceNumbers returns the major and minor numbers of the device holding path.
func deviceNumbers(path string) (major, minor uint32, err error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, 0, err
	}
	dev := uint64(st.Dev)
	return unix.Major(dev), unix.Minor(dev), nil
}
