package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReducePaths(t *testing.T) {
	tests := []struct {
		input    []string
		expected []string
	}{
		{[]string{"/a"}, []string{"/a"}},
		{[]string{"/a", "/a/b"}, []string{"/a"}},
		{[]string{"/a/b", "/a"}, []string{"/a"}},
		{[]string{"/a", "/c"}, []string{"/a", "/c"}},
		{[]string{"/c", "/a"}, []string{"/a", "/c"}},
		{[]string{"/a/b/c/d", "/x", "/a/b"}, []string{"/a/b", "/x"}},
		{[]string{"/ab", "/a"}, []string{"/a", "/ab"}},
		{[]string{"/a", "/a"}, []string{"/a"}},
		{[]string{"/", "/a", "/b/c"}, []string{"/"}},
		{[]string{"a", "a/b", "c"}, []string{"a", "c"}},
		{[]string{".", "a/b", "c"}, []string{"."}},
		{[]string{}, []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ReducePaths(tt.input), "input: %v", tt.input)
	}
}

func TestReducePathsDoesNotAlterInput(t *testing.T) {
	input := []string{"/z", "/a", "/a/b"}
	_ = ReducePaths(input)
	assert.Equal(t, []string{"/z", "/a", "/a/b"}, input)
}
