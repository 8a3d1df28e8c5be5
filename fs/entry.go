package fs

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is an immutable snapshot of one path, taken when the walker first visits it.
// All accessors answer from that snapshot, so a prune decision and a match decision
// on the same entry always agree.
type Entry struct {
	path  string
	info  FileInfo
	depth int
	fsys  FileSystem
}

// NewEntry creates the entry of a search root. Symlinks are followed for roots only.
func NewEntry(fsys FileSystem, path string) (*Entry, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, &Error{Kind: InvalidPath, Path: path, Err: err}
	}
	return &Entry{
		path:  path,
		info:  info,
		depth: structuralDepth(path),
		fsys:  fsys,
	}, nil
}

// Path is the path as constructed from the search root
func (e *Entry) Path() string {
	return e.path
}

// Name is the base name
func (e *Entry) Name() string {
	if e.info.Name != "" {
		return e.info.Name
	}
	return filepath.Base(e.path)
}

// Info returns the metadata snapshot
func (e *Entry) Info() FileInfo {
	return e.info
}

func (e *Entry) IsDirectory() bool {
	return e.info.IsDir
}

func (e *Entry) IsRegular() bool {
	return e.info.IsRegular()
}

func (e *Entry) IsSocket() bool {
	return e.info.IsSocket()
}

func (e *Entry) Size() int64 {
	return e.info.Size
}

func (e *Entry) ModTime() time.Time {
	return e.info.ModTime
}

func (e *Entry) AccessTime() time.Time {
	return e.info.AccessTime
}

func (e *Entry) ChangeTime() time.Time {
	return e.info.ChangeTime
}

// Extension returns the extension of the base name without the leading dot
func (e *Entry) Extension() string {
	ext := filepath.Ext(e.Name())
	return strings.TrimPrefix(ext, ".")
}

// IsHidden reports whether the base name starts with a dot
func (e *Entry) IsHidden() bool {
	return IsHiddenName(e.Name())
}

// Depth is the number of path components (the structural depth)
func (e *Entry) Depth() int {
	return e.depth
}

// DepthRelativeTo returns the depth of this entry below an ancestor of given structural depth
func (e *Entry) DepthRelativeTo(ancestorDepth int) int {
	return e.depth - ancestorDepth
}

// Children lists the entries of a directory sorted by name. It returns nil for anything else.
func (e *Entry) Children() ([]*Entry, error) {
	if !e.info.IsDir {
		return nil, nil
	}
	infos, err := e.fsys.ReadDir(e.path)
	if err != nil {
		if KindOf(err) != 0 {
			return nil, err
		}
		return nil, &Error{Kind: ListingFailure, Path: e.path, Err: err}
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	children := make([]*Entry, 0, len(infos))
	for _, info := range infos {
		children = append(children, &Entry{
			path:  e.fsys.Join(e.path, info.Name),
			info:  info,
			depth: e.depth + 1,
			fsys:  e.fsys,
		})
	}
	return children, nil
}

func (e *Entry) String() string {
	return e.path
}

// IsHiddenName reports whether a base name denotes a hidden entry ("." and ".." don't)
func IsHiddenName(name string) bool {
	return len(name) > 1 && name[0] == '.' && name != ".."
}

func structuralDepth(path string) int {
	depth := 0
	for _, c := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if c != "" && c != "." && !strings.HasSuffix(c, ":") {
			depth++
		}
	}
	return depth
}
