// domain implements interpretation domains, the universes of values that
// free variables range over.

package relcalc

import (
	"cmp"
	"reflect"

	"github.com/google/btree"

	"github.com/jonlawlor/relcalc/att"
)

// Domain supplies the candidate values for each free variable of a tuple
// being enumerated.  i is the position of the attribute in the tuple.
//
// The calculus is single sorted, so both implementations in this package
// return the same values for every position.  The returned slice is read
// only, and it has to be the same for every call during an evaluation.
type Domain[V any] interface {
	Values(i int) []V
}

// Range is a domain of the contiguous integers start, start+1, ...,
// start+count-1.
type Range struct {
	start int
	count int
	vals  []int
}

// NewRange creates a domain of count integers starting at start.  The
// second argument is a count and not an upper bound, so NewRange(0, 100) is
// the integers 0 through 99.  A count <= 0 is an empty domain.
func NewRange(start, count int) *Range {
	count = max(count, 0)
	vals := make([]int, count)
	for i := range vals {
		vals[i] = start + i
	}
	return &Range{start, count, vals}
}

// Start is the smallest value in the domain
func (d *Range) Start() int { return d.start }

// Count is the number of values in the domain
func (d *Range) Count() int { return d.count }

// Values returns the integers in ascending order
func (d *Range) Values(int) []int {
	if d == nil {
		return nil
	}
	return d.vals
}

// Set is a domain of explicitly added values.  Adding a value twice has no
// effect, and values are enumerated in ascending order.  The zero value is
// an empty Set.
//
// A Set grows while it is being built and should not change while it is
// used by an evaluation.
type Set[V cmp.Ordered] struct {
	tree *btree.BTreeG[V]

	// vals caches the ascending values between calls to Add
	vals []V
}

// NewSet creates a domain from the given values
func NewSet[V cmp.Ordered](vs ...V) *Set[V] {
	d := &Set[V]{}
	for _, v := range vs {
		d.Add(v)
	}
	return d
}

// Add inserts v into the domain
func (d *Set[V]) Add(v V) {
	if d.tree == nil {
		d.tree = btree.NewG(32, cmp.Less[V])
	}
	if _, dup := d.tree.ReplaceOrInsert(v); !dup {
		d.vals = nil
	}
}

// Has returns true if v is in the domain
func (d *Set[V]) Has(v V) bool {
	if d == nil || d.tree == nil {
		return false
	}
	return d.tree.Has(v)
}

// Len is the number of distinct values in the domain
func (d *Set[V]) Len() int {
	if d == nil || d.tree == nil {
		return 0
	}
	return d.tree.Len()
}

// Values returns the values in ascending order
func (d *Set[V]) Values(int) []V {
	if d == nil {
		return nil
	}
	if d.tree == nil {
		return []V{}
	}
	if d.vals == nil {
		d.vals = make([]V, 0, d.tree.Len())
		d.tree.Ascend(func(v V) bool {
			d.vals = append(d.vals, v)
			return true
		})
	}
	return d.vals
}

// AddActive adds the active domain of a relation to d: every attribute value
// of its tuples whose kind matches V.  Restricting quantifiers to the active
// domain of the relations they mention keeps the evaluation finite and small.
// It returns an error if T is not a tuple.
func AddActive[V cmp.Ordered, T comparable](d *Set[V], r *Relation[T]) error {
	s, err := shapeOf(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	vt := reflect.TypeFor[V]()
	var pos []int
	for i, ft := range s.types {
		if ft.Kind() == vt.Kind() {
			pos = append(pos, i)
		}
	}
	for _, tup := range r.All() {
		rtup := reflect.ValueOf(tup)
		for _, i := range pos {
			d.Add(att.Field(rtup, i).Convert(vt).Interface().(V))
		}
	}
	return nil
}
