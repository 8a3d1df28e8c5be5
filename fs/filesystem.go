package fs

import (
	"io/fs"
	"time"
)

// FileSystem abstracts the metadata and listing calls the walker needs so that
// callers can search local directories or SFTP mounts interchangeably.
type FileSystem interface {
	// Lstat returns file info without following symlinks.
	Lstat(path string) (FileInfo, error)

	// Stat returns file info, following symlinks.
	Stat(path string) (FileInfo, error)

	// ReadDir lists dirPath, returning lstat information of every child.
	// Order of returned entries is unspecified.
	ReadDir(dirPath string) ([]FileInfo, error)

	// Join joins path elements using the separator of this file system.
	Join(elem ...string) string

	// IsReadableDirectory returns true if path is an existing, readable directory.
	IsReadableDirectory(path string) bool

	// Close releases any resources held by the filesystem (e.g. SSH connections).
	Close() error
}

// FileInfo holds the subset of os.FileInfo fields we need.
type FileInfo struct {
	Name       string
	Size       int64
	Mode       fs.FileMode
	ModTime    time.Time
	AccessTime time.Time
	ChangeTime time.Time
	IsDir      bool
}

// IsSocket reports whether the info describes a unix domain socket
func (f FileInfo) IsSocket() bool {
	return f.Mode&fs.ModeSocket != 0
}

// IsRegular reports whether the info describes a regular file
func (f FileInfo) IsRegular() bool {
	return f.Mode.IsRegular()
}
