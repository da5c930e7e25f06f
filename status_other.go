//go:build !unix

package main

import (
	"github.com/rook-computer/kioskshell/internal/app"
	"github.com/rook-computer/kioskshell/internal/state"
)

func notifyStatus(store *state.Store, logger app.Logger) (stop func()) {
	return func() {}
}
