package fs

import (
	"os"
	"path/filepath"
)

// LocalFS implements FileSystem using standard os.* calls.
type LocalFS struct{}

// NewLocalFS returns a new LocalFS.
func NewLocalFS() *LocalFS {
	return &LocalFS{}
}

func (l *LocalFS) Lstat(path string) (FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fileInfoFromOS(info), nil
}

func (l *LocalFS) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fileInfoFromOS(info), nil
}

func (l *LocalFS) ReadDir(dirPath string) ([]FileInfo, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}
	infos := make([]FileInfo, 0, len(dirEntries))
	for _, d := range dirEntries {
		// DirEntry.Info lstats, so an entry removed since listing surfaces here
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil, &Error{Kind: StatFailure, Path: filepath.Join(dirPath, d.Name()), Err: infoErr}
		}
		infos = append(infos, fileInfoFromOS(info))
	}
	return infos, nil
}

func (l *LocalFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (l *LocalFS) IsReadableDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func (l *LocalFS) Close() error {
	return nil
}

func fileInfoFromOS(info os.FileInfo) FileInfo {
	atime, ctime := statTimes(info)
	return FileInfo{
		Name:       info.Name(),
		Size:       info.Size(),
		Mode:       info.Mode(),
		ModTime:    info.ModTime(),
		AccessTime: atime,
		ChangeTime: ctime,
		IsDir:      info.IsDir(),
	}
}
