//go:build !linux

package system

import "context"

const (
	KeyEsc = 1
	KeyF4  = 62
)

func WatchAbortKey(ctx context.Context, logger Logger, onAbort func(), keys ...uint16) bool {
	return false
}
