package fsops

import (
	"os"
	"syscall"
	"time"
)

// fileTimes extracts creation (inode change) and access times from the
// stat result where the platform exposes them.
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		created = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
		accessed = time.Unix(st.Atim.Sec, st.Atim.Nsec)
		return created, accessed
	}
	return info.ModTime(), info.ModTime()
}
