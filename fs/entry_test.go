package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-manu/filehound/fs"
	"github.com/m-manu/filehound/fs/fstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLocalEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), "12345")
	writeFile(t, filepath.Join(dir, "a.txt"), "")
	writeFile(t, filepath.Join(dir, ".hidden", "c.json"), "{}")

	root, err := fs.NewEntry(fs.NewLocalFS(), dir)
	require.NoError(t, err)
	assert.True(t, root.IsDirectory())
	assert.False(t, root.IsRegular())

	children, err := root.Children()
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, ".hidden", children[0].Name())
	assert.Equal(t, "a.txt", children[1].Name())
	assert.Equal(t, "b.json", children[2].Name())

	assert.True(t, children[0].IsHidden())
	assert.True(t, children[0].IsDirectory())
	assert.Equal(t, filepath.Join(dir, "b.json"), children[2].Path())
	assert.Equal(t, int64(5), children[2].Size())
	assert.Equal(t, "json", children[2].Extension())
	assert.True(t, children[2].IsRegular())
	assert.False(t, children[2].IsSocket())
	for _, c := range children {
		assert.Equal(t, root.Depth()+1, c.Depth())
		assert.Equal(t, 1, c.DepthRelativeTo(root.Depth()))
	}
	assert.False(t, children[1].ModTime().IsZero())
	assert.False(t, children[1].AccessTime().IsZero())
	assert.False(t, children[1].ChangeTime().IsZero())

	fileChildren, err := children[2].Children()
	assert.NoError(t, err)
	assert.Nil(t, fileChildren)
}

func TestLocalEntryDoesNotFollowSymlinkedChildren(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "target", "x.txt"), "x")
	if err := os.Symlink(filepath.Join(dir, "target"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	root, err := fs.NewEntry(fs.NewLocalFS(), dir)
	require.NoError(t, err)
	children, err := root.Children()
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "link", children[0].Name())
	assert.False(t, children[0].IsDirectory())
}

func TestNewEntryOfMissingPath(t *testing.T) {
	_, err := fs.NewEntry(fs.NewLocalFS(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrInvalidPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, fs.InvalidPath, fs.KindOf(err))
}

func TestChildrenFailures(t *testing.T) {
	listErr := errors.New("permission denied")
	statErr := errors.New("vanished")
	fsys := fstest.NewMemoryFS().
		AddFile("/a/locked/x", 1, time.Now()).
		AddFile("/a/flaky/y", 1, time.Now()).
		FailReadDir("/a/locked", listErr).
		FailStat("/a/flaky/y", statErr)

	locked, err := fs.NewEntry(fsys, "/a/locked")
	require.NoError(t, err)
	_, err = locked.Children()
	assert.ErrorIs(t, err, fs.ErrListingFailure)
	assert.ErrorIs(t, err, listErr)
	assert.Equal(t, fs.ListingFailure, fs.KindOf(err))

	flaky, err := fs.NewEntry(fsys, "/a/flaky")
	require.NoError(t, err)
	_, err = flaky.Children()
	assert.ErrorIs(t, err, fs.ErrStatFailure)
	assert.ErrorIs(t, err, statErr)
	assert.False(t, errors.Is(err, fs.ErrListingFailure))
}

func TestStructuralDepth(t *testing.T) {
	fsys := fstest.NewMemoryFS().AddFile("/a/b/c.txt", 0, time.Now())
	tests := []struct {
		path  string
		depth int
	}{
		{"/", 0},
		{"/a", 1},
		{"/a/b", 2},
		{"/a/b/c.txt", 3},
		{"/a/b/", 2},
	}
	for _, tt := range tests {
		e, err := fs.NewEntry(fsys, tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.depth, e.Depth(), "path: %s", tt.path)
	}
}

func TestIsHiddenName(t *testing.T) {
	assert.True(t, fs.IsHiddenName(".git"))
	assert.True(t, fs.IsHiddenName(".a"))
	assert.False(t, fs.IsHiddenName("."))
	assert.False(t, fs.IsHiddenName(".."))
	assert.False(t, fs.IsHiddenName("a.txt"))
	assert.False(t, fs.IsHiddenName(""))
}

func TestErrorKindString(t *testing.T) {
	err := &fs.Error{Kind: fs.ListingFailure, Path: "/x", Err: errors.New("boom")}
	assert.Equal(t, `listing failure: "/x": boom`, err.Error())
	assert.Equal(t, fs.ErrorKind(0), fs.KindOf(errors.New("plain")))
	assert.Equal(t, "ErrorKind(9)", fs.ErrorKind(9).String())
}
