// record describes the shape of tuples and writes domain values into them

package relcalc

import (
	"reflect"

	"github.com/jonlawlor/relcalc/att"
)

// shape is the heading of a tuple type, which is either a struct with only
// exported fields or an array.
type shape struct {
	e     reflect.Type
	names []att.Attribute
	types []reflect.Type
}

// shapeOf checks that e is a tuple type and returns its shape.
func shapeOf(e reflect.Type) (*shape, error) {
	if e == nil {
		return nil, &KindError{e}
	}
	switch e.Kind() {
	case reflect.Struct:
		for i := 0; i < e.NumField(); i++ {
			if f := e.Field(i); !f.IsExported() {
				return nil, &UnexportedFieldError{e, f.Name}
			}
		}
	case reflect.Array:
	default:
		return nil, &KindError{e}
	}
	return &shape{e, att.FieldNames(e), att.FieldTypes(e)}, nil
}

// deg is the degree (arity) of the tuple
func (s *shape) deg() int {
	return len(s.names)
}

// Deg returns the degree of tuples of type T, which is the number of free
// variables a predicate on T binds.  It is zero if T is not a tuple.
func Deg[T any]() int {
	return len(Heading[T]())
}

// Heading returns the attribute names of tuples of type T, which are the
// field names of a struct or the positions of an array.  It is nil if T is
// not a tuple.
func Heading[T any]() []att.Attribute {
	s, err := shapeOf(reflect.TypeFor[T]())
	if err != nil {
		return nil
	}
	return s.names
}

// binder writes domain values of type V into the attributes of one tuple.
// The fields are resolved once, so binding a value is a single reflect
// assignment.
type binder[V any] struct {
	fields []reflect.Value
	conv   []reflect.Type
}

// newBinder checks that values of type V fit every attribute of the tuple
// that rtup points into, and returns a binder for it.  rtup has to be
// addressable.
func newBinder[V any](s *shape, rtup reflect.Value) (*binder[V], error) {
	vt := reflect.TypeFor[V]()
	b := &binder[V]{
		fields: make([]reflect.Value, s.deg()),
		conv:   make([]reflect.Type, s.deg()),
	}
	for i, ft := range s.types {
		conv, ok := fits(vt, ft)
		if !ok {
			return nil, &FieldTypeError{s.names[i], ft, vt}
		}
		if conv {
			b.conv[i] = ft
		}
		b.fields[i] = att.Field(rtup, i)
	}
	return b, nil
}

// fits reports whether a value of type from can be stored in an attribute of
// type to, and whether that needs a conversion.  Conversions are only done
// between types of the same kind, like int and `type date int`.
func fits(from, to reflect.Type) (conv, ok bool) {
	switch {
	case from.AssignableTo(to):
		return false, true
	case from.Kind() == to.Kind() && from.ConvertibleTo(to):
		return true, true
	}
	return false, false
}

// bind sets attribute i to v
func (b *binder[V]) bind(i int, v V) {
	rv := reflect.ValueOf(&v).Elem()
	if b.conv[i] != nil {
		rv = rv.Convert(b.conv[i])
	}
	b.fields[i].Set(rv)
}
