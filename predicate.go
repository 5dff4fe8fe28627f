// predicate defines typed predicates and their composition

package relcalc

import (
	"reflect"

	"github.com/jonlawlor/relcalc/att"
)

// Predicate is a boolean formula with free variables given by the attributes
// of T.  Any func(T) bool can be used where a Predicate is expected.
type Predicate[T any] func(T) bool

// Not predicate
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(t T) bool { return !p(t) }
}

// And predicate
func (p1 Predicate[T]) And(p2 Predicate[T]) Predicate[T] {
	return func(t T) bool { return p1(t) && p2(t) }
}

// Or predicate
func (p1 Predicate[T]) Or(p2 Predicate[T]) Predicate[T] {
	return func(t T) bool { return p1(t) || p2(t) }
}

// Xor predicate
func (p1 Predicate[T]) Xor(p2 Predicate[T]) Predicate[T] {
	return func(t T) bool { return p1(t) != p2(t) }
}

// Implies predicate, which is how a universal quantifier is restricted to a
// relation: ∀t (R(t) → p(t)).
func (p1 Predicate[T]) Implies(p2 Predicate[T]) Predicate[T] {
	return func(t T) bool { return !p1(t) || p2(t) }
}

// Member is the predicate R(t), true for the tuples of a relation
func Member[T comparable](r *Relation[T]) Predicate[T] {
	return r.Contains
}

// Where compiles an attribute predicate, like
// att.Attribute("Paid").GT(att.Attribute("Sum")), into a typed predicate on
// T.  It returns an error if the predicate uses attributes that T does not
// have, or if an ad hoc predicate takes an input that T's attributes can not
// be copied into.
func Where[T any](p att.Predicate) (Predicate[T], error) {
	e := reflect.TypeFor[T]()
	s, err := shapeOf(e)
	if err != nil {
		return nil, err
	}
	if err := checkAdHoc(p, s); err != nil {
		return nil, err
	}
	if err := att.EnsureSubDomain(p.Domain(), s.names); err != nil {
		return nil, err
	}
	f := p.EvalFunc(e)
	return func(t T) bool { return f(t) }, nil
}

// checkAdHoc walks the predicate and checks the input of every ad hoc
// predicate in it against the tuple shape s.
func checkAdHoc(p att.Predicate, s *shape) error {
	switch p := p.(type) {
	case att.NotPred:
		return checkAdHoc(p.P, s)
	case att.AndPred:
		return checkAdHoc2(p.P1, p.P2, s)
	case att.OrPred:
		return checkAdHoc2(p.P1, p.P2, s)
	case att.XorPred:
		return checkAdHoc2(p.P1, p.P2, s)
	case att.AdHoc:
		in, err := shapeOf(p.Input())
		if err != nil {
			return err
		}
		for name, fm := range att.FieldMap(s.e, in.e) {
			t1, t2 := s.types[fm.I], in.types[fm.J]
			if _, ok := fits(t1, t2); !ok {
				return &FieldTypeError{name, t2, t1}
			}
		}
	}
	return nil
}

func checkAdHoc2(p1, p2 att.Predicate, s *shape) error {
	if err := checkAdHoc(p1, s); err != nil {
		return err
	}
	return checkAdHoc(p2, s)
}

// MustWhere is like Where but panics if the predicate does not fit T
func MustWhere[T any](p att.Predicate) Predicate[T] {
	f, err := Where[T](p)
	if err != nil {
		panic(err)
	}
	return f
}
