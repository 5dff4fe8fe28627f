// engine implements the exhaustive enumeration of tuples over a domain,
// which all of the evaluation modes share.

package relcalc

// mode determines what happens at the leaves of the enumeration and when it
// can stop early.
type mode int

const (
	// queryMode visits every assignment
	queryMode mode = iota

	// anyMode stops at the first assignment that satisfies the leaf
	anyMode

	// allMode stops at the first assignment that does not satisfy the leaf
	allMode
)

func (m mode) String() string {
	switch m {
	case anyMode:
		return "any"
	case allMode:
		return "all"
	}
	return "query"
}

// enumerator assigns every combination of candidate values to the attributes
// of a scratch tuple, and calls leaf once per complete assignment.
type enumerator[V any] struct {
	mode mode

	// cands are the candidate values for each attribute, read from the
	// domain once before the walk starts.
	cands [][]V

	// bind writes a value into attribute i of the scratch tuple
	bind func(i int, v V)

	// leaf evaluates the predicate on the scratch tuple.  In query mode it
	// also records the tuple.
	leaf func() bool
}

func newEnumerator[V any](m mode, d Domain[V], deg int, bind func(int, V), leaf func() bool) *enumerator[V] {
	cands := make([][]V, deg)
	for i := range cands {
		cands[i] = d.Values(i)
	}
	return &enumerator[V]{m, cands, bind, leaf}
}

// run walks the whole search space and returns the result of the
// quantifier.  In query mode the result has no meaning.
func (e *enumerator[V]) run() bool {
	return e.walk(len(e.cands))
}

// walk binds the attribute at deg-n to each candidate and recurses with the
// n-1 free variables that are left.  Attribute 0 is the outermost loop, so
// assignments are produced in lexicographic order of the domain.
func (e *enumerator[V]) walk(n int) bool {
	if n == 0 {
		return e.leaf()
	}
	i := len(e.cands) - n
	for _, v := range e.cands[i] {
		e.bind(i, v)
		b := e.walk(n - 1)
		if e.mode == anyMode && b {
			return true
		}
		if e.mode == allMode && !b {
			return false
		}
	}
	// exhausted without a short circuit: no witness for any, no
	// counterexample for all.
	return e.mode == allMode
}
