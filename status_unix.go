//go:build unix

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/kioskshell/internal/app"
	"github.com/rook-computer/kioskshell/internal/state"
)

// notifyStatus logs a status snapshot on every SIGUSR1 until stop is called.
func notifyStatus(store *state.Store, logger app.Logger) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				logger.Infof("status", "%s", store.Snapshot())
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
