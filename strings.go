// strings deals with string representation of relations

package relcalc

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/jonlawlor/relcalc/att"
)

// HeadingString returns the attribute names of the relation's tuples,
// separated by commas.
func (r *Relation[T]) HeadingString() string {
	names := Heading[T]()
	str := make([]string, len(names))
	for i, n := range names {
		str[i] = string(n)
	}
	return strings.Join(str, ", ")
}

// String returns a text representation of the Relation
func (r *Relation[T]) String() string {
	return "Relation(" + r.HeadingString() + ")"
}

// GoString returns a go literal that constructs the relation
func (r *Relation[T]) GoString() string {
	if r.Card() == 0 {
		return "relcalc.New[" + typeName(reflect.TypeFor[T]()) + "]()"
	}
	s := new(bytes.Buffer)
	s.WriteString("relcalc.New(\n")
	for _, tup := range r.All() {
		fmt.Fprintf(s, "\t%#v,\n", tup)
	}
	s.WriteString(")")
	return s.String()
}

// PrettyPrint returns an ascii table of the relation's tuples, in insertion
// order.
func PrettyPrint[T comparable](r *Relation[T]) string {
	// use a buffer to write to and later turn into a string
	s := new(bytes.Buffer)

	w := new(tabwriter.Writer)
	// \xff is used as an escape delim; see the tabwriter docs
	// align elements to the right as well
	w.Init(s, 1, 1, 1, ' ', tabwriter.StripEscape|tabwriter.AlignRight)

	cn := Heading[T]()
	deg := len(cn)

	// make a spacer, to be replaced later
	for i := 0; i < deg; i++ {
		fmt.Fprintf(w, "+\t ")
	}
	fmt.Fprintf(w, "\t+\n")

	// heading
	for _, name := range cn {
		fmt.Fprintf(w, "|\t \xff%s\xff ", name)
	}
	fmt.Fprintf(w, "\t|\n")

	// write the body
	for _, tup := range r.All() {
		rtup := reflect.ValueOf(tup)
		for j := 0; j < deg; j++ {
			fmt.Fprintf(w, "|\t \xff%s\xff ", formatValue(att.Field(rtup, j)))
		}
		fmt.Fprintf(w, "\t|\n")
	}

	w.Flush()
	str := s.String()

	// replace the blanks in the spacers with "-"
	lineWidth := strings.Index(str, "\n")
	sep := " " + strings.Replace(str[1:lineWidth], " ", "-", -1)
	return sep + str[lineWidth:lineWidth*2+2] + sep + str[lineWidth*2+1:] + sep
}

// formatValue renders one attribute value
func formatValue(f reflect.Value) string {
	switch f.Kind() {
	case reflect.String:
		return f.String()
	case reflect.Bool:
		return fmt.Sprintf("%t", f.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", f.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fmt.Sprintf("%d", f.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%g", f.Float())
	default:
		return fmt.Sprintf("%v", f)
	}
}
