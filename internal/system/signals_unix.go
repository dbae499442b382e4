//go:build unix

package system

import (
	"os"

	"golang.org/x/sys/unix"
)

// AdvanceSignals are the signals that advance the progress bar by one step.
func AdvanceSignals() []os.Signal { return []os.Signal{unix.SIGUSR1} }
