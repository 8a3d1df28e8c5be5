package match

import (
	"testing"
	"time"

	"github.com/m-manu/filehound/fs"
	"github.com/m-manu/filehound/fs/fstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtNormalizesLeadingDot(t *testing.T) {
	withDot, withoutDot := Ext(".json"), Ext("json")
	for _, e := range fixtureEntries(t) {
		assert.Equal(t, withDot.Test(e), withoutDot.Test(e), "entry: %v", e)
	}
	fsys := fixtureFS()
	assert.True(t, withDot.Test(entry(t, fsys, "/root/a.json")))
	assert.False(t, withDot.Test(entry(t, fsys, "/root/dummy.txt")))
}

func TestExtMatchesAnyOfManyExtensions(t *testing.T) {
	fsys := fixtureFS()
	p := Ext("txt", ".json")
	assert.True(t, p.Test(entry(t, fsys, "/root/a.json")))
	assert.True(t, p.Test(entry(t, fsys, "/root/dummy.txt")))
	assert.False(t, p.Test(entry(t, fsys, "/root/daemon.sock")))
}

func TestGlob(t *testing.T) {
	fsys := fixtureFS()
	tests := []struct {
		pattern  string
		path     string
		expected bool
	}{
		{"*.json", "/root/a.json", true},
		{"*.json", "/root/dummy.txt", false},
		{"*.json", "/root/.cache/x.json", true},
		{"*my*", "/root/mydir", true},
		{"{a,b}.json", "/root/b.json", true},
		{"/root/*.json", "/root/a.json", true},
		{"/root/*.json", "/root/.cache/x.json", false},
		{"/root/**/*.json", "/root/.cache/x.json", true},
	}
	for _, tt := range tests {
		p, err := Glob(tt.pattern)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, p.Test(entry(t, fsys, tt.path)), "pattern: %s, path: %s", tt.pattern, tt.path)
	}
	_, err := Glob("[a-")
	assert.Error(t, err)
}

func TestLikeAndDiscard(t *testing.T) {
	fsys := fixtureFS()
	like := Must(Like(`\.json$`))
	assert.True(t, like.Test(entry(t, fsys, "/root/a.json")))
	assert.False(t, like.Test(entry(t, fsys, "/root/dummy.txt")))

	discard := Must(Discard(`\.json$`, `dummy`))
	assert.False(t, discard.Test(entry(t, fsys, "/root/a.json")))
	assert.False(t, discard.Test(entry(t, fsys, "/root/dummy.txt")))
	assert.True(t, discard.Test(entry(t, fsys, "/root/daemon.sock")))

	_, err := Like("(")
	assert.Error(t, err)
	_, err = Discard("ok", "(")
	assert.Error(t, err)
}

func TestSizeAndIsEmpty(t *testing.T) {
	fsys := fixtureFS()
	assert.True(t, Must(Size("20")).Test(entry(t, fsys, "/root/b.json")))
	assert.False(t, Must(Size("20")).Test(entry(t, fsys, "/root/a.json")))
	assert.True(t, Must(Size(">=1k")).Test(entry(t, fsys, "/root/.cache/x.json")))
	assert.True(t, IsEmpty().Test(entry(t, fsys, "/root/.hidden.json")))
	assert.False(t, IsEmpty().Test(entry(t, fsys, "/root/a.json")))
	_, err := Size("huge")
	assert.Error(t, err)
}

func TestTimePredicates(t *testing.T) {
	previous := now
	now = func() time.Time { return fixtureTime }
	defer func() { now = previous }()

	fsys := fixtureFS()
	a, b, dummy := entry(t, fsys, "/root/a.json"), entry(t, fsys, "/root/b.json"), entry(t, fsys, "/root/dummy.txt")

	modified := Must(Modified("> 1 day"))
	assert.False(t, modified.Test(a))
	assert.True(t, modified.Test(b))
	assert.True(t, modified.Test(dummy))

	assert.True(t, Must(Modified("10 days")).Test(dummy))
	assert.True(t, Must(Accessed("< 1 day")).Test(a))
	assert.True(t, Must(Changed("2")).Test(b))

	_, err := Modified("< 2 eons")
	assert.Error(t, err)
}

func TestSocketAndDirectories(t *testing.T) {
	fsys := fixtureFS()
	assert.True(t, Socket().Test(entry(t, fsys, "/root/daemon.sock")))
	assert.False(t, Socket().Test(entry(t, fsys, "/root/a.json")))

	assert.True(t, Directories().Test(entry(t, fsys, "/root/mydir")))
	assert.True(t, Directories().Test(entry(t, fsys, "/root/.cache")))
	assert.False(t, Directories(DirectoryOptions{ExcludeHidden: true}).Test(entry(t, fsys, "/root/.cache")))
	assert.False(t, Directories().Test(entry(t, fsys, "/root/a.json")))
}

func TestHiddenPredicates(t *testing.T) {
	fsys := fixtureFS()
	assert.False(t, IgnoreHiddenFiles().Test(entry(t, fsys, "/root/.hidden.json")))
	assert.True(t, IgnoreHiddenFiles().Test(entry(t, fsys, "/root/.cache/x.json")))
	assert.False(t, IgnoreHiddenPath().Test(entry(t, fsys, "/root/.cache/x.json")))
	assert.True(t, IgnoreHiddenPath().Test(entry(t, fsys, "/root/a.json")))
}

func TestIgnoreHiddenPathDoubleDot(t *testing.T) {
	fsys := fstest.NewMemoryFS().
		AddFile("/root/..cache/x.json", 1, fixtureTime).
		AddFile("/root/..y.json", 1, fixtureTime).
		AddFile("/root/..cache/.z.json", 1, fixtureTime)
	assert.True(t, IgnoreHiddenPath().Test(entry(t, fsys, "/root/..cache/x.json")))
	assert.False(t, IgnoreHiddenPath().Test(entry(t, fsys, "/root/..y.json")))
	assert.False(t, IgnoreHiddenPath().Test(entry(t, fsys, "/root/..cache/.z.json")))
}

func TestCustom(t *testing.T) {
	fsys := fixtureFS()
	p := Custom("big", func(e *fs.Entry) bool { return e.Size() == 1024 })
	assert.True(t, p.Test(entry(t, fsys, "/root/.cache/x.json")))
	assert.False(t, p.Test(entry(t, fsys, "/root/a.json")))
	assert.Equal(t, "big", p.String())
}
