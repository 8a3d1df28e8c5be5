// Package match holds the predicates a search evaluates against every visited entry.
//
// A Predicate is a small expression tree: atoms test one property of an entry and
// the And, Or and Not combinators build new trees without touching their operands,
// so a predicate can be shared between queries and between concurrent walkers.
package match

import (
	"fmt"

	"github.com/m-manu/filehound/fs"
)

// Target tells the walker which kind of entries a predicate is meant for
type Target int8

const (
	// Regular predicates are tested against non-directory entries
	Regular Target = iota
	// Directory predicates are tested against directories, turning on directory-only mode
	Directory
)

func (t Target) String() string {
	if t == Directory {
		return "directory"
	}
	return "regular"
}

type op int8

const (
	opNone op = iota
	opAll
	opAtom
	opAnd
	opOr
	opNot
)

// Predicate is a boolean test over an entry. The zero value rejects everything.
type Predicate struct {
	op     op
	target Target
	name   string
	test   func(e *fs.Entry) bool
	left   *Predicate
	right  *Predicate
}

// New creates an atomic predicate
func New(name string, target Target, test func(e *fs.Entry) bool) *Predicate {
	return &Predicate{op: opAtom, target: target, name: name, test: test}
}

// None rejects every entry
func None() *Predicate {
	return &Predicate{op: opNone}
}

// All accepts every entry
func All() *Predicate {
	return &Predicate{op: opAll}
}

// Test evaluates the predicate. It's safe for concurrent use.
func (p *Predicate) Test(e *fs.Entry) bool {
	if p == nil {
		return false
	}
	switch p.op {
	case opAll:
		return true
	case opAtom:
		return p.test(e)
	case opAnd:
		return p.left.Test(e) && p.right.Test(e)
	case opOr:
		return p.left.Test(e) || p.right.Test(e)
	case opNot:
		return !p.left.Test(e)
	}
	return false
}

// Target is Directory when the predicate or any of its operands is a Directory predicate
func (p *Predicate) Target() Target {
	if p == nil {
		return Regular
	}
	return p.target
}

// And returns a predicate matching entries that both p and q match
func (p *Predicate) And(q *Predicate) *Predicate {
	return &Predicate{op: opAnd, target: combinedTarget(p, q), left: p, right: q}
}

// Or returns a predicate matching entries that p or q match
func (p *Predicate) Or(q *Predicate) *Predicate {
	return &Predicate{op: opOr, target: combinedTarget(p, q), left: p, right: q}
}

// Not returns a predicate matching entries that p doesn't match
func (p *Predicate) Not() *Predicate {
	return &Predicate{op: opNot, target: p.Target(), left: p}
}

// And combines all given predicates; it accepts everything when there are none
func And(predicates ...*Predicate) *Predicate {
	if len(predicates) == 0 {
		return All()
	}
	result := predicates[0]
	for _, p := range predicates[1:] {
		result = result.And(p)
	}
	return result
}

// Or combines all given predicates; it rejects everything when there are none
func Or(predicates ...*Predicate) *Predicate {
	if len(predicates) == 0 {
		return None()
	}
	result := predicates[0]
	for _, p := range predicates[1:] {
		result = result.Or(p)
	}
	return result
}

// Not negates p
func Not(p *Predicate) *Predicate {
	return p.Not()
}

func combinedTarget(p, q *Predicate) Target {
	if p.Target() == Directory || q.Target() == Directory {
		return Directory
	}
	return Regular
}

func (p *Predicate) String() string {
	if p == nil {
		return "none"
	}
	switch p.op {
	case opAll:
		return "all"
	case opAtom:
		return p.name
	case opAnd:
		return fmt.Sprintf("(%v and %v)", p.left, p.right)
	case opOr:
		return fmt.Sprintf("(%v or %v)", p.left, p.right)
	case opNot:
		return fmt.Sprintf("not %v", p.left)
	}
	return "none"
}
