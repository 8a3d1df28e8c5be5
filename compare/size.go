// Package compare parses the small comparison expressions used to filter entries
// by size ("<10k", ">= 2mb", "100") and by age ("< 2 days", "> 8 hours").
package compare

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docker/go-units"
)

// Operator is a relational operator of an expression
type Operator string

const (
	Equal          Operator = "=="
	Less           Operator = "<"
	LessOrEqual    Operator = "<="
	Greater        Operator = ">"
	GreaterOrEqual Operator = ">="
)

var sizePattern = regexp.MustCompile(`^\s*(<=|>=|<|>|==?)?\s*(.*?)\s*$`)

// ParseSize compiles a size expression into a predicate over byte counts.
// Units are binary (1k = 1024 bytes) and an optional trailing "b" is allowed.
// Without an operator, equality is assumed.
func ParseSize(expression string) (func(size int64) bool, error) {
	matches := sizePattern.FindStringSubmatch(expression)
	if matches == nil || matches[2] == "" {
		return nil, fmt.Errorf("couldn't comprehend size expression \"%s\"", expression)
	}
	op := normalizeOperator(matches[1])
	value, err := units.RAMInBytes(matches[2])
	if err != nil {
		return nil, fmt.Errorf("couldn't comprehend size \"%s\": %+v", matches[2], err)
	}
	return func(size int64) bool {
		return op.holds(compareInt64(size, value))
	}, nil
}

// MustParseSize is ParseSize that panics on invalid expressions
func MustParseSize(expression string) func(int64) bool {
	f, err := ParseSize(expression)
	if err != nil {
		panic(err)
	}
	return f
}

func normalizeOperator(s string) Operator {
	switch s {
	case "", "=", "==":
		return Equal
	}
	return Operator(strings.TrimSpace(s))
}

// holds reports whether the operator accepts a three-way comparison result
func (op Operator) holds(cmp int) bool {
	switch op {
	case Less:
		return cmp < 0
	case LessOrEqual:
		return cmp <= 0
	case Greater:
		return cmp > 0
	case GreaterOrEqual:
		return cmp >= 0
	}
	return cmp == 0
}

func compareInt64(a, b int64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}
