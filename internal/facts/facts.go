// Package facts loads named integer relations, the base relations that
// calculus queries test membership against, from YAML files or SQLite
// databases.
package facts

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/jonlawlor/relcalc"
)

// ErrUnknownRelation is returned when a fact base has no relation with the
// requested name.
var ErrUnknownRelation = errors.New("unknown relation")

// identifiers are used unquoted in messages and quoted in SQL, so they are
// restricted to plain names.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Relation is a named relation of integer tuples.
type Relation struct {
	// Name identifies the relation in queries, e.g. "bevetel".
	Name string `yaml:"name" json:"name"`

	// Heading names the attributes, in tuple order.
	Heading []string `yaml:"heading" json:"heading"`

	// Tuples holds one value per attribute for every tuple.
	Tuples [][]int `yaml:"tuples" json:"tuples"`
}

// Deg is the number of attributes
func (r Relation) Deg() int {
	return len(r.Heading)
}

// validate checks names and that every tuple matches the heading
func (r Relation) validate() error {
	if !identRe.MatchString(r.Name) {
		return fmt.Errorf("invalid relation name %q", r.Name)
	}
	if len(r.Heading) == 0 {
		return fmt.Errorf("relation %s: heading is required", r.Name)
	}
	for _, h := range r.Heading {
		if !identRe.MatchString(h) {
			return fmt.Errorf("relation %s: invalid attribute name %q", r.Name, h)
		}
	}
	for i, tup := range r.Tuples {
		if len(tup) != len(r.Heading) {
			return fmt.Errorf("relation %s: tuple %d: %w", r.Name, i,
				&relcalc.DegreeError{Expected: len(r.Heading), Found: len(tup)})
		}
	}
	return nil
}

// Base is a set of named relations.
type Base struct {
	// Relations in the order they were loaded
	Relations []Relation `yaml:"relations" json:"relations"`
}

// NewBase creates a fact base from relations, rejecting invalid or
// duplicate ones.
func NewBase(rels ...Relation) (*Base, error) {
	b := &Base{Relations: make([]Relation, 0, len(rels))}
	for _, r := range rels {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, ok := b.Lookup(r.Name); ok {
			return nil, fmt.Errorf("duplicate relation %q", r.Name)
		}
		b.Relations = append(b.Relations, r)
	}
	return b, nil
}

// Example returns the income (bevetel) and payment (befizet) facts that the
// calculus examples are written against.
func Example() *Base {
	return &Base{Relations: []Relation{
		{
			Name:    "bevetel",
			Heading: []string{"Date", "Sum"},
			Tuples:  [][]int{{1, 5}, {2, 6}, {3, 7}, {4, 8}},
		},
		{
			Name:    "befizet",
			Heading: []string{"Sum", "Paid"},
			Tuples:  [][]int{{5, 1}, {6, 2}, {3, 3}, {2, 4}},
		},
	}}
}

// Names returns the relation names in load order
func (b *Base) Names() []string {
	names := make([]string, len(b.Relations))
	for i, r := range b.Relations {
		names[i] = r.Name
	}
	return names
}

// Lookup finds a relation by name
func (b *Base) Lookup(name string) (Relation, bool) {
	i := slices.IndexFunc(b.Relations, func(r Relation) bool { return r.Name == name })
	if i < 0 {
		return Relation{}, false
	}
	return b.Relations[i], true
}

// Typed converts the named relation into a relation of T, which must have
// one int compatible attribute per column.  Attribute names are not
// compared, only the degree.
func Typed[T comparable](b *Base, name string) (*relcalc.Relation[T], error) {
	r, ok := b.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("relation %q: %w", name, ErrUnknownRelation)
	}
	if deg := relcalc.Deg[T](); deg != r.Deg() {
		return nil, fmt.Errorf("relation %s: %w", name, &relcalc.DegreeError{Expected: deg, Found: r.Deg()})
	}
	rel, err := relcalc.FromRows[T](r.Tuples)
	if err != nil {
		return nil, fmt.Errorf("relation %s: %w", name, err)
	}
	return rel, nil
}
