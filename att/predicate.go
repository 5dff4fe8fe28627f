// predicate defines logical predicates over the attributes of a tuple

package att

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
)

// Predicate is a boolean formula over the attributes of a tuple.  It is
// compiled against a concrete tuple type with EvalFunc, and the tuple type
// must contain every attribute listed by Domain.
type Predicate interface {
	// EvalFunc returns a function which evaluates the predicate on tuples of
	// type e.  The tuple type should be checked against Domain first, with
	// EnsureSubDomain.
	EvalFunc(e reflect.Type) func(t interface{}) bool

	// Domain is the set of attributes required to evaluate the predicate
	Domain() []Attribute

	String() string

	// infix boolean expressions
	And(p2 Predicate) AndPred
	Or(p2 Predicate) OrPred
	Xor(p2 Predicate) XorPred
}

// Not predicate
func Not(p Predicate) NotPred {
	// Prefix not is a lot more comprehensible than postfix!  To that end, it
	// is not a part of the interface because that would require postfix.
	return NotPred{p}
}

// NotPred represents a logical not of a predicate
type NotPred struct {
	P Predicate
}

// String representation of Not
func (p NotPred) String() string {
	return fmt.Sprintf("!(%v)", p.P)
}

// Domain is the set of attributes required to evaluate the predicate
func (p NotPred) Domain() []Attribute {
	return p.P.Domain()
}

// EvalFunc returns a function that evaluates the predicate on a tuple
func (p NotPred) EvalFunc(e reflect.Type) func(t interface{}) bool {
	f := p.P.EvalFunc(e)
	return func(t interface{}) bool { return !f(t) }
}

// And predicate
func (p1 NotPred) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 NotPred) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 NotPred) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// AndPred represents a logical and predicate
type AndPred struct {
	P1 Predicate
	P2 Predicate
}

// String representation of And
func (p AndPred) String() string {
	return fmt.Sprintf("(%v) && (%v)", p.P1, p.P2)
}

// Domain is the set of attributes required to evaluate the predicate
func (p AndPred) Domain() []Attribute {
	return unionAttributes(p.P1.Domain(), p.P2.Domain())
}

// EvalFunc returns a function that evaluates the predicate on a tuple
func (p AndPred) EvalFunc(e reflect.Type) func(t interface{}) bool {
	f1 := p.P1.EvalFunc(e)
	f2 := p.P2.EvalFunc(e)
	return func(t interface{}) bool { return f1(t) && f2(t) }
}

// And predicate
func (p1 AndPred) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 AndPred) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 AndPred) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// OrPred represents a logical or predicate
type OrPred struct {
	P1 Predicate
	P2 Predicate
}

// String representation of Or
func (p OrPred) String() string {
	return fmt.Sprintf("(%v) || (%v)", p.P1, p.P2)
}

// Domain is the set of attributes required to evaluate the predicate
func (p OrPred) Domain() []Attribute {
	return unionAttributes(p.P1.Domain(), p.P2.Domain())
}

// EvalFunc returns a function that evaluates the predicate on a tuple
func (p OrPred) EvalFunc(e reflect.Type) func(t interface{}) bool {
	f1 := p.P1.EvalFunc(e)
	f2 := p.P2.EvalFunc(e)
	return func(t interface{}) bool { return f1(t) || f2(t) }
}

// And predicate
func (p1 OrPred) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 OrPred) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 OrPred) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// XorPred represents a logical xor predicate
type XorPred struct {
	P1 Predicate
	P2 Predicate
}

// String representation of Xor
func (p XorPred) String() string {
	return fmt.Sprintf("(%v) != (%v)", p.P1, p.P2)
}

// Domain is the set of attributes required to evaluate the predicate
func (p XorPred) Domain() []Attribute {
	return unionAttributes(p.P1.Domain(), p.P2.Domain())
}

// EvalFunc returns a function that evaluates the predicate on a tuple
func (p XorPred) EvalFunc(e reflect.Type) func(t interface{}) bool {
	f1 := p.P1.EvalFunc(e)
	f2 := p.P2.EvalFunc(e)
	return func(t interface{}) bool { return f1(t) != f2(t) }
}

// And predicate
func (p1 XorPred) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 XorPred) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 XorPred) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// AdHoc is a predicate built from a go func.  The func's input tuple is
// filled in from the attributes with the same names in the tuple the
// predicate is evaluated on, so its attributes have to be a subdomain of the
// evaluated tuple.
type AdHoc struct {
	in   reflect.Type
	call func(reflect.Value) bool
}

// NewAdHoc creates an AdHoc predicate.  T should be a struct or array.
func NewAdHoc[T any](f func(T) bool) AdHoc {
	return AdHoc{
		in:   reflect.TypeFor[T](),
		call: func(v reflect.Value) bool { return f(v.Interface().(T)) },
	}
}

// Input is the tuple type the func takes
func (p AdHoc) Input() reflect.Type {
	return p.in
}

// String representation of AdHoc
func (p AdHoc) String() string {
	names := p.Domain()
	str := make([]string, len(names))
	for i, n := range names {
		str[i] = string(n)
	}
	// it would be nice to print the name of the func when it is not
	// anonymous, but runtime.FuncForPC names need a lot of trimming
	return "func({" + strings.Join(str, ", ") + "})"
}

// Domain is the set of attributes required to evaluate the predicate
func (p AdHoc) Domain() []Attribute {
	if k := p.in.Kind(); k != reflect.Struct && k != reflect.Array {
		return nil
	}
	return FieldNames(p.in)
}

// EvalFunc returns a function that evaluates the predicate on a tuple
func (p AdHoc) EvalFunc(e1 reflect.Type) func(t interface{}) bool {
	// figure out which fields stay, and where they are in each of the tuple
	// types.
	fMap := FieldMap(e1, p.in)
	return func(tup1 interface{}) bool {
		tup2 := reflect.New(p.in).Elem()
		rtup1 := reflect.ValueOf(tup1)
		for _, fm := range fMap {
			f1 := Field(rtup1, fm.I)
			f2 := Field(tup2, fm.J)
			if f1.Type() != f2.Type() {
				f1 = f1.Convert(f2.Type())
			}
			f2.Set(f1)
		}
		return p.call(tup2)
	}
}

// And predicate
func (p1 AdHoc) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 AdHoc) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 AdHoc) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// The comparisons are named after the MIPS assembly condition names, which
// keeps them short.  The v param is an interface because it might be a
// literal, or another attribute.

type cmpOp int

const (
	opEQ cmpOp = iota
	opNE
	opLT
	opLE
	opGT
	opGE
)

var opSymbols = [...]string{"==", "!=", "<", "<=", ">", ">="}

// CmpPred compares an attribute with either another attribute or a literal.
type CmpPred struct {
	op  cmpOp
	att []Attribute
	lit interface{}
}

func newCmp(op cmpOp, att1 Attribute, v interface{}) CmpPred {
	if att2, ok := v.(Attribute); ok {
		return CmpPred{op, []Attribute{att1, att2}, nil}
	}
	return CmpPred{op, []Attribute{att1}, v}
}

// EQ is equal to (==)
func (att1 Attribute) EQ(v interface{}) CmpPred { return newCmp(opEQ, att1, v) }

// NE is not equal to (!=)
func (att1 Attribute) NE(v interface{}) CmpPred { return newCmp(opNE, att1, v) }

// LT is less than (<)
func (att1 Attribute) LT(v interface{}) CmpPred { return newCmp(opLT, att1, v) }

// LE is less than or equal to (<=)
func (att1 Attribute) LE(v interface{}) CmpPred { return newCmp(opLE, att1, v) }

// GT is greater than (>)
func (att1 Attribute) GT(v interface{}) CmpPred { return newCmp(opGT, att1, v) }

// GE is greater than or equal to (>=)
func (att1 Attribute) GE(v interface{}) CmpPred { return newCmp(opGE, att1, v) }

// String representation of the comparison
func (p CmpPred) String() string {
	if len(p.att) == 2 {
		return fmt.Sprintf("%v %s %v", p.att[0], opSymbols[p.op], p.att[1])
	}
	return fmt.Sprintf("%v %s %v", p.att[0], opSymbols[p.op], p.lit)
}

// Domain is the set of attributes required to evaluate the predicate
func (p CmpPred) Domain() []Attribute {
	return p.att
}

// EvalFunc returns a function that evaluates the predicate on a tuple.
// Attributes missing from e make the predicate false.
func (p CmpPred) EvalFunc(e reflect.Type) func(t interface{}) bool {
	names := FieldNames(e)
	i := position(names, p.att[0])
	if i < 0 {
		return func(interface{}) bool { return false }
	}
	if len(p.att) == 2 {
		j := position(names, p.att[1])
		if j < 0 {
			return func(interface{}) bool { return false }
		}
		return func(tup interface{}) bool {
			rtup := reflect.ValueOf(tup)
			return p.op.holds(Field(rtup, i), Field(rtup, j))
		}
	}
	rlit := reflect.ValueOf(p.lit)
	return func(tup interface{}) bool {
		return p.op.holds(Field(reflect.ValueOf(tup), i), rlit)
	}
}

// And predicate
func (p1 CmpPred) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 CmpPred) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 CmpPred) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// holds applies the comparison.  Ordering is defined on numbers and strings,
// everything else only supports == and !=.
func (op cmpOp) holds(a, b reflect.Value) bool {
	c, ok := compare(a, b)
	if !ok {
		eq := a.IsValid() && b.IsValid() && a.Type() == b.Type() &&
			a.Comparable() && a.Equal(b)
		switch op {
		case opEQ:
			return eq
		case opNE:
			return !eq
		}
		return false
	}
	switch op {
	case opEQ:
		return c == 0
	case opNE:
		return c != 0
	case opLT:
		return c < 0
	case opLE:
		return c <= 0
	case opGT:
		return c > 0
	default:
		return c >= 0
	}
}

// compare orders two numbers or two strings, regardless of their named
// types, so an attribute of type `type date int` compares with an int
// literal.
func compare(a, b reflect.Value) (int, bool) {
	switch {
	case isInt(a) && isInt(b):
		return cmp.Compare(a.Int(), b.Int()), true
	case isUint(a) && isUint(b):
		return cmp.Compare(a.Uint(), b.Uint()), true
	case isInt(a) && isUint(b):
		if a.Int() < 0 {
			return -1, true
		}
		return cmp.Compare(uint64(a.Int()), b.Uint()), true
	case isUint(a) && isInt(b):
		if b.Int() < 0 {
			return 1, true
		}
		return cmp.Compare(a.Uint(), uint64(b.Int())), true
	case isNumber(a) && isNumber(b):
		return cmp.Compare(toFloat(a), toFloat(b)), true
	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return strings.Compare(a.String(), b.String()), true
	}
	return 0, false
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumber(v reflect.Value) bool {
	return isInt(v) || isUint(v) || v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	}
	return v.Float()
}
