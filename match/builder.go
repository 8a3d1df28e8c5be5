package match

// Builder collects the predicates of one query and composes them into its matcher.
// It isn't safe for concurrent use; the predicates it builds are.
type Builder struct {
	predicates []*Predicate
	negate     bool
}

// NewBuilder creates an empty Builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends predicates. Adding a Directory predicate switches the target to Directory;
// a later Regular predicate doesn't switch it back.
func (b *Builder) Add(predicates ...*Predicate) *Builder {
	for _, p := range predicates {
		if p == nil {
			continue
		}
		b.predicates = append(b.predicates, p)
	}
	return b
}

// Negate wraps the composed predicate in Not
func (b *Builder) Negate(negate bool) *Builder {
	b.negate = negate
	return b
}

// Target is the target kind of the predicate Build returns
func (b *Builder) Target() Target {
	return b.Build().Target()
}

// Len returns the number of predicates added so far
func (b *Builder) Len() int {
	return len(b.predicates)
}

// Build composes the added predicates with AND, negated if requested.
// With nothing added, the result rejects every entry (negated or not), so an
// unconfigured search finds nothing rather than everything.
func (b *Builder) Build() *Predicate {
	if len(b.predicates) == 0 {
		return None()
	}
	composed := And(b.predicates...)
	if b.negate {
		composed = composed.Not()
	}
	return composed
}
