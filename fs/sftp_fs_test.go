package fs_test

import (
	"context"
	"net"
	"testing"

	"github.com/m-manu/filehound/fs"
	"github.com/m-manu/filehound/match"
	"github.com/m-manu/filehound/walker"
	"github.com/pkg/sftp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sftpFixture serves an in-memory tree over a pipe and returns a FileSystem backed by it
func sftpFixture(t *testing.T) *fs.SFTPFS {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	server := sftp.NewRequestServer(serverConn, sftp.InMemHandler())
	go func() {
		_ = server.Serve()
	}()
	client, err := sftp.NewClientPipe(clientConn, clientConn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})

	require.NoError(t, client.MkdirAll("/r/sub"))
	for path, content := range map[string]string{
		"/r/b.json":     "22",
		"/r/a.json":     "1",
		"/r/sub/c.json": "333",
		"/r/.h":         "",
	} {
		f, createErr := client.Create(path)
		require.NoError(t, createErr)
		_, writeErr := f.Write([]byte(content))
		require.NoError(t, writeErr)
		require.NoError(t, f.Close())
	}
	return fs.NewSFTPFS(client)
}

func TestSFTPWalk(t *testing.T) {
	sftpFS := sftpFixture(t)
	root, err := fs.NewEntry(sftpFS, "/r")
	require.NoError(t, err)
	assert.True(t, root.IsDirectory())

	w := walker.New(walker.Options{Parallelism: 2})
	syncFound, err := w.WalkSync(root, match.Ext("json"))
	require.NoError(t, err)
	asyncFound, err := w.Walk(context.Background(), root, match.Ext("json"))
	require.NoError(t, err)

	expected := []string{"/r/a.json", "/r/b.json", "/r/sub/c.json"}
	assert.Equal(t, expected, entryPaths(syncFound))
	assert.Equal(t, expected, entryPaths(asyncFound))
	assert.Equal(t, int64(3), syncFound[2].Size())
}

func TestSFTPEntryTimes(t *testing.T) {
	sftpFS := sftpFixture(t)
	root, err := fs.NewEntry(sftpFS, "/r")
	require.NoError(t, err)
	children, err := root.Children()
	require.NoError(t, err)
	require.Len(t, children, 4)
	assert.Equal(t, ".h", children[0].Name())
	assert.True(t, children[0].IsHidden())

	for _, c := range children {
		assert.False(t, c.ModTime().IsZero(), "entry: %v", c)
		assert.Equal(t, c.ModTime(), c.ChangeTime(), "entry: %v", c)
		assert.False(t, c.AccessTime().IsZero(), "entry: %v", c)
		assert.Equal(t, c.AccessTime(), c.Info().AccessTime, "entry: %v", c)
	}
}

func TestSFTPJoinIsPOSIX(t *testing.T) {
	sftpFS := sftpFixture(t)
	assert.Equal(t, "/r/sub/c.json", sftpFS.Join("/r", "sub", "c.json"))
	assert.Equal(t, "/r/c.json", sftpFS.Join("/r/", "sub", "..", "c.json"))
	assert.True(t, sftpFS.IsReadableDirectory("/r/sub"))
	assert.False(t, sftpFS.IsReadableDirectory("/r/a.json"))
}

func TestSFTPMissingRoot(t *testing.T) {
	_, err := fs.NewEntry(sftpFixture(t), "/missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrInvalidPath)
	var fsErr *fs.Error
	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, fs.InvalidPath, fsErr.Kind)
	assert.Equal(t, "/missing", fsErr.Path)
}

func entryPaths(entries []*fs.Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path())
	}
	return paths
}
