// Package fstest provides an in-memory fs.FileSystem for tests, with injectable failures.
package fstest

import (
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	hfs "github.com/m-manu/filehound/fs"
)

type node struct {
	info     hfs.FileInfo
	children map[string]struct{}
}

// MemoryFS is a tree of files kept in memory. Paths use forward slashes.
type MemoryFS struct {
	mx          sync.RWMutex
	nodes       map[string]*node
	listErrs    map[string]error
	statErrs    map[string]error
	readDirHook func(dirPath string)
}

// NewMemoryFS creates a file system holding only "/"
func NewMemoryFS() *MemoryFS {
	m := &MemoryFS{
		nodes:    map[string]*node{},
		listErrs: map[string]error{},
		statErrs: map[string]error{},
	}
	m.nodes["/"] = &node{info: hfs.FileInfo{Name: "/", Mode: fs.ModeDir | 0755, IsDir: true}, children: map[string]struct{}{}}
	return m
}

// AddDir adds a directory and its missing parents
func (m *MemoryFS) AddDir(p string) *MemoryFS {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.mkdirAll(clean(p))
	return m
}

// AddFile adds a regular file of given size, creating missing parents
func (m *MemoryFS) AddFile(p string, size int64, modTime time.Time) *MemoryFS {
	return m.add(p, hfs.FileInfo{Size: size, Mode: 0644, ModTime: modTime, AccessTime: modTime, ChangeTime: modTime})
}

// AddSocket adds a unix domain socket
func (m *MemoryFS) AddSocket(p string) *MemoryFS {
	return m.add(p, hfs.FileInfo{Mode: fs.ModeSocket | 0755})
}

// FailReadDir makes listing of dirPath fail with err
func (m *MemoryFS) FailReadDir(dirPath string, err error) *MemoryFS {
	m.mx.Lock()
	m.listErrs[clean(dirPath)] = err
	m.mx.Unlock()
	return m
}

// FailStat makes Stat and Lstat of p fail with err
func (m *MemoryFS) FailStat(p string, err error) *MemoryFS {
	m.mx.Lock()
	m.statErrs[clean(p)] = err
	m.mx.Unlock()
	return m
}

// OnReadDir registers a function called at the start of every ReadDir
func (m *MemoryFS) OnReadDir(hook func(dirPath string)) *MemoryFS {
	m.mx.Lock()
	m.readDirHook = hook
	m.mx.Unlock()
	return m
}

func (m *MemoryFS) add(p string, info hfs.FileInfo) *MemoryFS {
	p = clean(p)
	m.mx.Lock()
	defer m.mx.Unlock()
	parent := m.mkdirAll(path.Dir(p))
	info.Name = path.Base(p)
	m.nodes[p] = &node{info: info}
	parent.children[info.Name] = struct{}{}
	return m
}

func (m *MemoryFS) mkdirAll(p string) *node {
	if n, exists := m.nodes[p]; exists {
		return n
	}
	parent := m.mkdirAll(path.Dir(p))
	name := path.Base(p)
	n := &node{
		info:     hfs.FileInfo{Name: name, Mode: fs.ModeDir | 0755, IsDir: true},
		children: map[string]struct{}{},
	}
	m.nodes[p] = n
	parent.children[name] = struct{}{}
	return n
}

func (m *MemoryFS) Lstat(p string) (hfs.FileInfo, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()
	p = clean(p)
	if err, failing := m.statErrs[p]; failing {
		return hfs.FileInfo{}, err
	}
	n, exists := m.nodes[p]
	if !exists {
		return hfs.FileInfo{}, &fs.PathError{Op: "lstat", Path: p, Err: fs.ErrNotExist}
	}
	return n.info, nil
}

func (m *MemoryFS) Stat(p string) (hfs.FileInfo, error) {
	return m.Lstat(p)
}

func (m *MemoryFS) ReadDir(dirPath string) ([]hfs.FileInfo, error) {
	m.mx.RLock()
	hook := m.readDirHook
	m.mx.RUnlock()
	if hook != nil {
		hook(dirPath)
	}
	m.mx.RLock()
	defer m.mx.RUnlock()
	dirPath = clean(dirPath)
	if err, failing := m.listErrs[dirPath]; failing {
		return nil, err
	}
	n, exists := m.nodes[dirPath]
	if !exists || !n.info.IsDir {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist}
	}
	infos := make([]hfs.FileInfo, 0, len(n.children))
	for name := range n.children {
		childPath := path.Join(dirPath, name)
		if err, failing := m.statErrs[childPath]; failing {
			return nil, &hfs.Error{Kind: hfs.StatFailure, Path: childPath, Err: err}
		}
		infos = append(infos, m.nodes[childPath].info)
	}
	return infos, nil
}

func (m *MemoryFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (m *MemoryFS) IsReadableDirectory(p string) bool {
	info, err := m.Stat(p)
	return err == nil && info.IsDir
}

func (m *MemoryFS) Close() error {
	return nil
}

func clean(p string) string {
	return path.Clean("/" + strings.TrimPrefix(p, "/"))
}
