//go:build !unix

package system

import "os"

func AdvanceSignals() []os.Signal { return nil }
