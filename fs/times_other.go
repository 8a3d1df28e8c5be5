//go:build !linux && !darwin

package fs

import (
	"os"
	"time"
)

// Access and change times aren't portable; fall back to the modification time
func statTimes(info os.FileInfo) (atime, ctime time.Time) {
	return info.ModTime(), info.ModTime()
}
