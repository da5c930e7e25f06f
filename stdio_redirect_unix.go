//go:build unix

package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// redirectStdIO points fds 1 and 2 at path so runtime panics from any
// goroutine land in the file while the console is in graphics mode.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_APPEND|unix.O_WRONLY|unix.O_CLOEXEC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)

	for _, target := range []int{unix.Stdout, unix.Stderr} {
		if err := unix.Dup2(fd, target); err != nil {
			return fmt.Errorf("dup2 onto fd %d: %w", target, err)
		}
	}
	return nil
}
