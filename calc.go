// calc implements the entry points of the calculus: Query, Any and All.

package relcalc

import (
	"reflect"
)

// The arity of an evaluation is the degree of the predicate's input tuple.
// It is worked out here, at the call boundary, and the enumerator only sees
// the resulting number of free variables.

// prepare checks the predicate's tuple type against the domain and returns an
// enumerator that binds values into the scratch tuple tup.
func prepare[T any, V any](m mode, d Domain[V], p func(T) bool, tup *T, leaf func() bool) (*enumerator[V], error) {
	if d == nil {
		return nil, ErrNilDomain
	}
	if p == nil {
		return nil, ErrNilPredicate
	}
	s, err := shapeOf(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	b, err := newBinder[V](s, reflect.ValueOf(tup).Elem())
	if err != nil {
		return nil, err
	}
	return newEnumerator(m, d, s.deg(), b.bind, leaf), nil
}

// Query evaluates the calculus expression {t | p(t)}, where every attribute
// of t ranges over the domain d.  It returns a new relation with every tuple
// that satisfies p, in lexicographic order of the domain with the first
// attribute varying slowest.
//
// An empty domain results in an empty relation.  T has to be a struct with
// exported fields or an array, and values of the domain have to fit each of
// its attributes; otherwise an error is returned before p is ever called.
func Query[T comparable, V any](d Domain[V], p func(T) bool) (*Relation[T], error) {
	r := &Relation[T]{}
	var tup T
	e, err := prepare(queryMode, d, p, &tup, func() bool {
		if p(tup) {
			r.add(tup)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	e.run()
	return r, nil
}

// Any evaluates the existential quantifier ∃t p(t), where every attribute of
// t ranges over the domain d.  It stops at the first satisfying tuple.  It is
// false on an empty domain.
func Any[T any, V any](d Domain[V], p func(T) bool) (bool, error) {
	var tup T
	e, err := prepare(anyMode, d, p, &tup, func() bool { return p(tup) })
	if err != nil {
		return false, err
	}
	return e.run(), nil
}

// All evaluates the universal quantifier ∀t p(t), where every attribute of t
// ranges over the domain d.  It stops at the first tuple that does not
// satisfy p.  It is true on an empty domain.
func All[T any, V any](d Domain[V], p func(T) bool) (bool, error) {
	var tup T
	e, err := prepare(allMode, d, p, &tup, func() bool { return p(tup) })
	if err != nil {
		return false, err
	}
	return e.run(), nil
}

// MustQuery is like Query but panics if the predicate does not fit the
// domain.
func MustQuery[T comparable, V any](d Domain[V], p func(T) bool) *Relation[T] {
	r, err := Query(d, p)
	if err != nil {
		panic(err)
	}
	return r
}

// MustAny is like Any but panics if the predicate does not fit the domain.
// It is meant for quantifiers nested inside of other predicates.
func MustAny[T any, V any](d Domain[V], p func(T) bool) bool {
	b, err := Any(d, p)
	if err != nil {
		panic(err)
	}
	return b
}

// MustAll is like All but panics if the predicate does not fit the domain.
// It is meant for quantifiers nested inside of other predicates.
func MustAll[T any, V any](d Domain[V], p func(T) bool) bool {
	b, err := All(d, p)
	if err != nil {
		panic(err)
	}
	return b
}
