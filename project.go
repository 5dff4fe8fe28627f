// project implements projection of relations onto a subset of attributes

package relcalc

import (
	"reflect"

	"github.com/jonlawlor/relcalc/att"
)

// Project returns the relation of U tuples made from the attributes of r
// with the same names.  Attribute order in U does not matter, and tuples
// that become equal are only kept once, in first occurrence order.
//
// U must not have attributes that T does not have, and each of them has to
// be of a type that the matching attribute of T can be assigned or
// converted to.
func Project[U, T comparable](r *Relation[T]) (*Relation[U], error) {
	s1, err := shapeOf(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	s2, err := shapeOf(reflect.TypeFor[U]())
	if err != nil {
		return nil, err
	}
	if err := att.EnsureSubDomain(s2.names, s1.names); err != nil {
		return nil, err
	}

	// figure out which fields stay, and where they are in each of the tuple
	// types.
	fMap := att.FieldMap(s1.e, s2.e)
	conv := make(map[att.Attribute]bool, len(fMap))
	for name, fm := range fMap {
		t1, t2 := s1.types[fm.I], s2.types[fm.J]
		c, ok := fits(t1, t2)
		if !ok {
			return nil, &FieldTypeError{name, t2, t1}
		}
		conv[name] = c
	}

	r2 := &Relation[U]{}
	seen := make(map[U]struct{}, r.Card())
	var tup2 U
	rtup2 := reflect.ValueOf(&tup2).Elem()
	for _, tup1 := range r.All() {
		rtup1 := reflect.ValueOf(tup1)
		for name, fm := range fMap {
			f := att.Field(rtup1, fm.I)
			if conv[name] {
				f = f.Convert(s2.types[fm.J])
			}
			att.Field(rtup2, fm.J).Set(f)
		}
		if _, dup := seen[tup2]; dup {
			continue
		}
		seen[tup2] = struct{}{}
		r2.add(tup2)
	}
	return r2, nil
}
