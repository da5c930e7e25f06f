package system

import (
	"fmt"
	"os/exec"
	"sync"
)

// Spawner starts an external program without waiting for it.
type Spawner interface {
	Spawn(name string, args ...string) error
}

// ExecSpawner starts programs detached from the caller: in their own process
// group, with stdin and stdout connected to the null device. Start returns as
// soon as the process exists; a background goroutine reaps it and reports the
// exit through OnExit so no zombie is left behind. The caller never waits.
type ExecSpawner struct {
	// OnExit, when set, is called from the reaper goroutine with the tail of the child's stderr.
	OnExit func(name string, err error, stderrTail string)
}

func (s ExecSpawner) Spawn(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	detach(cmd)
	stderr := &ringBuffer{max: 2048}
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	go func() {
		err := cmd.Wait()
		if s.OnExit != nil {
			s.OnExit(name, err, stderr.String())
		}
	}()
	return nil
}

// ringBuffer keeps the last max bytes written to it.
type ringBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func (r *ringBuffer) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max <= 0 {
		return len(p), nil
	}

	if len(p) >= r.max {
		r.buf = append(r.buf[:0], p[len(p)-r.max:]...)
		return len(p), nil
	}

	if len(r.buf)+len(p) > r.max {
		drop := len(r.buf) + len(p) - r.max
		r.buf = append(r.buf[drop:], p...)
		return len(p), nil
	}

	r.buf = append(r.buf, p...)
	return len(p), nil
}

func (r *ringBuffer) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.buf)
}
