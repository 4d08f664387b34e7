//go:build !linux

package fsops

import (
	"os"
	"time"
)

// fileTimes falls back to the modification time on platforms where
// creation/access times are not portably available.
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	return info.ModTime(), info.ModTime()
}
