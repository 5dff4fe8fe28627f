// Package att represents attributes, the named positions of tuples, and the
// predicates constructed from attributes.
//
// Tuples are either structs with exported fields, in which case the
// attributes are the field names, or arrays, in which case the attributes are
// the decimal positions "0", "1", ...
package att

import (
	"reflect"
	"strconv"
)

// Attribute represents a particular attribute's name in a tuple
type Attribute string

// FieldNames takes a reflect.Type of a struct or array and returns the
// attribute names in order
func FieldNames(e reflect.Type) []Attribute {
	if e.Kind() == reflect.Array {
		names := make([]Attribute, e.Len())
		for i := range names {
			names[i] = Attribute(strconv.Itoa(i))
		}
		return names
	}
	n := e.NumField()
	names := make([]Attribute, n)
	for i := 0; i < n; i++ {
		f := e.Field(i)
		names[i] = Attribute(f.Name)
	}
	return names
}

// FieldTypes takes a reflect.Type of a struct or array and returns the types
// of the attributes in order
func FieldTypes(e reflect.Type) []reflect.Type {
	if e.Kind() == reflect.Array {
		types := make([]reflect.Type, e.Len())
		for i := range types {
			types[i] = e.Elem()
		}
		return types
	}
	n := e.NumField()
	types := make([]reflect.Type, n)
	for i := 0; i < n; i++ {
		f := e.Field(i)
		types[i] = f.Type
	}
	return types
}

// Field returns the i'th attribute value of a struct or array tuple.
func Field(rtup reflect.Value, i int) reflect.Value {
	if rtup.Kind() == reflect.Array {
		return rtup.Index(i)
	}
	return rtup.Field(i)
}

// FieldIndex is used to map between attributes in different tuples
// that have the same name
type FieldIndex struct {
	I int
	J int
}

// FieldMap creates a map from fields of one tuple type to the fields of
// another.  The returned map's values have two fields I,J , which indicate the
// location of the attribute in the input types.
// If the attribute is absent from either of the inputs, it is not returned.
func FieldMap(e1, e2 reflect.Type) map[Attribute]FieldIndex {
	return AttributeMap(FieldNames(e1), FieldNames(e2))
}

// AttributeMap creates a map from one list of attributes to another, see
// FieldMap.
func AttributeMap(fn1, fn2 []Attribute) map[Attribute]FieldIndex {
	m := make(map[Attribute]FieldIndex)
	for i, n1 := range fn1 {
		for j, n2 := range fn2 {
			if n1 == n2 {
				m[n1] = FieldIndex{i, j}
				break
			}
		}
	}
	return m
}

// position returns the index of an attribute, or -1 if it is absent
func position(names []Attribute, a Attribute) int {
	for i, n := range names {
		if n == a {
			return i
		}
	}
	return -1
}

// IsSubDomain returns true if the attributes in sub are all members of dom,
// otherwise false
// this would be faster if []Attributes were always ordered
func IsSubDomain(sub, dom []Attribute) bool {
SubLoop:
	for _, n1 := range sub {
		for _, n2 := range dom {
			if n1 == n2 {
				continue SubLoop
			}
		}
		return false
	}
	return true
}

// unionAttributes produces a union of two sets of attributes, without dups
// assuming that the input attributes are already unique. This returns a copy
// and does not modify the inputs.
func unionAttributes(att1 []Attribute, att2 []Attribute) []Attribute {
	// For small sets of attributes (which should be typical!) this should be
	// faster than a map.
	att := make([]Attribute, len(att1))
	copy(att, att1)
Found:
	for _, v2 := range att2 {
		for _, v1 := range att1 {
			if v1 == v2 {
				continue Found
			}
		}
		att = append(att, v2)
	}
	return att
}
