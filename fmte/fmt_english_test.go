package fmte

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinting(t *testing.T) {
	var stdout, stderr bytes.Buffer
	SetOutput(&stdout, &stderr)

	PrintfV("hidden unless verbose\n")
	PrintMatch("/a/b", true)
	PrintMatch("/a/c.txt", false)
	PrintfErr("error: %s\n", "boom")
	PrintfWarn("warning: %d\n", 1000)

	assert.Equal(t, "/a/b\n/a/c.txt\n", stdout.String())
	assert.Equal(t, "error: boom\nwarning: 1,000\n", stderr.String())

	stdout.Reset()
	VerboseOn()
	PrintfV("found %d files\n", 12345)
	Off()
	PrintfV("muted too\n")
	PrintMatch("/still/printed", false)
	assert.Equal(t, "found 12,345 files\n/still/printed\n", stdout.String())
}
