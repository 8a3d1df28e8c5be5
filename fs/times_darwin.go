//go:build darwin

package fs

import (
	"os"
	"syscall"
	"time"
)

func statTimes(info os.FileInfo) (atime, ctime time.Time) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	return time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec),
		time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
}
