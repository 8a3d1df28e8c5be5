package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWithoutPredicatesRejectsEverything(t *testing.T) {
	for _, negate := range []bool{false, true} {
		matcher := NewBuilder().Negate(negate).Build()
		for _, e := range fixtureEntries(t) {
			assert.False(t, matcher.Test(e), "negate: %v, entry: %v", negate, e)
		}
	}
}

func TestBuildComposesWithAnd(t *testing.T) {
	fsys := fixtureFS()
	matcher := NewBuilder().Add(Ext("json"), Must(Size("20"))).Build()
	assert.True(t, matcher.Test(entry(t, fsys, "/root/b.json")))
	assert.False(t, matcher.Test(entry(t, fsys, "/root/a.json")))
	assert.False(t, matcher.Test(entry(t, fsys, "/root/dummy.txt")))
}

func TestBuildNegatesAll(t *testing.T) {
	fsys := fixtureFS()
	matcher := NewBuilder().Add(Must(Glob("*.json"))).Negate(true).Build()
	assert.True(t, matcher.Test(entry(t, fsys, "/root/dummy.txt")))
	assert.False(t, matcher.Test(entry(t, fsys, "/root/a.json")))
}

func TestBuildIsIdempotent(t *testing.T) {
	b := NewBuilder().Add(Ext("json"), IgnoreHiddenFiles())
	first, second := b.Build(), b.Build()
	for _, e := range fixtureEntries(t) {
		assert.Equal(t, first.Test(e), second.Test(e), "entry: %v", e)
	}
	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, 2, b.Len())
}

func TestBuilderTargetFollowsFirstDirectoryPredicate(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, Regular, b.Target())
	b.Add(Ext("json"))
	assert.Equal(t, Regular, b.Target())
	b.Add(Directories())
	assert.Equal(t, Directory, b.Target())
	b.Add(Must(Glob("*dir*")))
	assert.Equal(t, Directory, b.Target())
	assert.Equal(t, Directory, b.Build().Target())

	b.Negate(true)
	assert.Equal(t, Directory, b.Target())
	assert.Equal(t, b.Build().Target(), b.Target())
}

func TestBuilderSkipsNilPredicates(t *testing.T) {
	b := NewBuilder().Add(nil, Ext("json"), nil)
	assert.Equal(t, 1, b.Len())
}
