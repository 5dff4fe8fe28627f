// errors are a set of types useful for shape checks, given the absence of
// static arity checking in go generics.

package relcalc

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/jonlawlor/relcalc/att"
)

// I've tried to reproduce go's type error strings here, because these errors
// act as a (poor) replacement for static type checking.  All of them are
// returned before any enumeration starts.

var (
	// ErrNilDomain is returned when an evaluation is given no domain
	ErrNilDomain = errors.New("relcalc: nil interpretation domain")

	// ErrNilPredicate is returned when an evaluation is given no predicate
	ErrNilPredicate = errors.New("relcalc: nil predicate")
)

// KindError represents an error that occurs when a predicate's input is not
// a tuple, which is either a struct or an array.
type KindError struct {
	Found reflect.Type
}

func (e *KindError) Error() string {
	return "relcalc: expected tuple of kind 'struct' or 'array', found '" + typeName(e.Found) + "'"
}

// UnexportedFieldError represents an error that occurs when a tuple struct
// has an unexported field, which the enumeration can not assign.
type UnexportedFieldError struct {
	Tuple reflect.Type
	Field string
}

func (e *UnexportedFieldError) Error() string {
	return "relcalc: tuple '" + typeName(e.Tuple) + "' has unexported field '" + e.Field + "'"
}

// FieldTypeError represents an error that occurs when the values of an
// interpretation domain can not be assigned to an attribute of a tuple.
type FieldTypeError struct {
	Attribute att.Attribute
	Expected  reflect.Type
	Found     reflect.Type
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("relcalc: cannot use value of type '%s' as attribute %s of type '%s'",
		typeName(e.Found), e.Attribute, typeName(e.Expected))
}

// DegreeError represents an error that occurs when a row does not have the
// same degree as the tuples it is converted into.
type DegreeError struct {
	Expected int
	Found    int
}

func (e *DegreeError) Error() string {
	return fmt.Sprintf("relcalc: expected degree %d, found %d", e.Expected, e.Found)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
