// relation implements base relations, which are literal collections of
// tuples.

package relcalc

import (
	"iter"
	"reflect"
	"slices"
)

// Relation is an ordered collection of tuples of the same type, which is the
// set of facts that predicates test membership against.  Duplicates are
// allowed but have no effect on membership.
//
// Relations are read only once they are constructed.  The only way tuples are
// added after construction is the accumulation done by Query.
type Relation[T comparable] struct {
	tups []T
}

// New creates a new Relation from a literal sequence of tuples.  The input is
// copied.
func New[T comparable](tups ...T) *Relation[T] {
	return &Relation[T]{tups: slices.Clone(tups)}
}

// FromRows creates a new Relation from rows of untyped values, each of which
// has to have exactly one value for each attribute of T.
func FromRows[T comparable, V any](rows [][]V) (*Relation[T], error) {
	s, err := shapeOf(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	var tup T
	b, err := newBinder[V](s, reflect.ValueOf(&tup).Elem())
	if err != nil {
		return nil, err
	}
	r := &Relation[T]{tups: make([]T, 0, len(rows))}
	for _, row := range rows {
		if len(row) != s.deg() {
			return nil, &DegreeError{s.deg(), len(row)}
		}
		for i, v := range row {
			b.bind(i, v)
		}
		r.add(tup)
	}
	return r, nil
}

// Contains returns true if the relation has a tuple equal to t.  Equality is
// go's == on the tuple, which compares attributes position by position.
func (r *Relation[T]) Contains(t T) bool {
	if r == nil {
		return false
	}
	return slices.Contains(r.tups, t)
}

// Card returns the cardinality of the relation, counting duplicates.
func (r *Relation[T]) Card() int {
	if r == nil {
		return 0
	}
	return len(r.tups)
}

// Deg returns the degree of the relation
func (r *Relation[T]) Deg() int {
	return Deg[T]()
}

// Tuple returns the i'th tuple in insertion order.
func (r *Relation[T]) Tuple(i int) T {
	return r.tups[i]
}

// Tuples returns a copy of the tuples in insertion order.
func (r *Relation[T]) Tuples() []T {
	if r == nil {
		return nil
	}
	return slices.Clone(r.tups)
}

// All iterates over the tuples in insertion order.
func (r *Relation[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if r == nil {
			return
		}
		for i, t := range r.tups {
			if !yield(i, t) {
				return
			}
		}
	}
}

// add appends a copy of t
func (r *Relation[T]) add(t T) {
	r.tups = append(r.tups, t)
}
