package fs

import (
	"io/fs"
	"path"
	"time"

	"github.com/pkg/sftp"
)

// SFTPFS implements FileSystem over an SFTP connection.
type SFTPFS struct {
	client *sftp.Client
}

// NewSFTPFS wraps an existing sftp.Client in a FileSystem.
func NewSFTPFS(client *sftp.Client) *SFTPFS {
	return &SFTPFS{client: client}
}

func (s *SFTPFS) Lstat(p string) (FileInfo, error) {
	info, err := s.client.Lstat(p)
	if err != nil {
		return FileInfo{}, err
	}
	return sftpFileInfo(info), nil
}

func (s *SFTPFS) Stat(p string) (FileInfo, error) {
	info, err := s.client.Stat(p)
	if err != nil {
		return FileInfo{}, err
	}
	return sftpFileInfo(info), nil
}

// ReadDir relies on the server's READDIR reply, which carries lstat attributes
func (s *SFTPFS) ReadDir(dirPath string) ([]FileInfo, error) {
	osInfos, err := s.client.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}
	infos := make([]FileInfo, 0, len(osInfos))
	for _, info := range osInfos {
		infos = append(infos, sftpFileInfo(info))
	}
	return infos, nil
}

// Join uses POSIX separators regardless of the local OS
func (s *SFTPFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (s *SFTPFS) IsReadableDirectory(p string) bool {
	info, err := s.client.Stat(p)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func (s *SFTPFS) Close() error {
	return s.client.Close()
}

func sftpFileInfo(info fs.FileInfo) FileInfo {
	fi := FileInfo{
		Name:       info.Name(),
		Size:       info.Size(),
		Mode:       info.Mode(),
		ModTime:    info.ModTime(),
		AccessTime: info.ModTime(),
		ChangeTime: info.ModTime(),
		IsDir:      info.IsDir(),
	}
	// SFTP v3 has no ctime attribute
	if st, ok := info.Sys().(*sftp.FileStat); ok {
		fi.AccessTime = time.Unix(int64(st.Atime), 0)
	}
	return fi
}
