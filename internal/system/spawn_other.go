//go:build !unix

package system

import "os/exec"

func detach(cmd *exec.Cmd) {}
