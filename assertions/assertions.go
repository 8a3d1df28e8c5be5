package assertions

import (
	"reflect"
	"testing"
)

// AssertEquals asserts whether actual value is deeply equal to expected value
func AssertEquals(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("expected=%+v (type %v)  actual=%+v (type %v)",
			expected, reflect.TypeOf(expected), actual, reflect.TypeOf(actual))
	}
}

// AssertTrue asserts whether actual value is true
func AssertTrue(t *testing.T, actual bool) {
	t.Helper()
	if !actual {
		t.Error("result was expected to be true")
	}
}

// AssertSamePaths asserts that two path lists have the same elements in the same order
func AssertSamePaths(t *testing.T, expected, actual []string) {
	t.Helper()
	if len(expected) == 0 && len(actual) == 0 {
		return
	}
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("paths differ\nexpected:\n%v\nactual:\n%v", lines(expected), lines(actual))
	}
}

func lines(paths []string) string {
	s := ""
	for _, p := range paths {
		s += "  " + p + "\n"
	}
	return s
}
