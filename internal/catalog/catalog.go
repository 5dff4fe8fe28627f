// Package catalog holds the named calculus queries that the relcalc command
// evaluates against a fact base.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/jonlawlor/relcalc"
	"github.com/jonlawlor/relcalc/att"
	"github.com/jonlawlor/relcalc/internal/facts"
)

// Domain kinds
const (
	DomainRange  = "range"
	DomainActive = "active"
)

// ValidDomains defines the allowed domain kinds.
var ValidDomains = []string{DomainRange, DomainActive}

var (
	// ErrUnknownQuery is returned by Lookup for names that are not in the
	// catalog.
	ErrUnknownQuery = errors.New("unknown query")

	// ErrInvalidDomain is returned by Run for a domain kind that is not in
	// ValidDomains.
	ErrInvalidDomain = errors.New("invalid domain")
)

// Options selects the interpretation domain of an evaluation.
type Options struct {
	// Domain is DomainRange or DomainActive.
	Domain string

	// Start and Count describe the range domain, [Start, Start+Count).
	Start int
	Count int
}

// DefaultOptions ranges over the integers 0 through 99.
func DefaultOptions() Options {
	return Options{Domain: DomainRange, Start: 0, Count: 100}
}

// Result is the outcome of a query: either a relation (Heading and Tuples)
// or a truth value (Holds).
type Result struct {
	Query   string   `json:"query"`
	Heading []string `json:"heading,omitempty"`
	Tuples  [][]int  `json:"tuples,omitempty"`
	Holds   *bool    `json:"holds,omitempty"`

	table string
}

// String renders the result as an ascii table, or true / false.
func (r *Result) String() string {
	if r.Holds != nil {
		return strconv.FormatBool(*r.Holds)
	}
	return r.table
}

// Query is a named calculus expression over the relations of a fact base.
type Query struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Formula     string   `json:"formula"`
	Relations   []string `json:"relations"`

	eval func(b *facts.Base, opts Options) (*Result, error)
}

// Run evaluates the query against b.
func (q Query) Run(b *facts.Base, opts Options) (*Result, error) {
	if !slices.Contains(ValidDomains, opts.Domain) {
		return nil, fmt.Errorf("%w %q: must be one of %v", ErrInvalidDomain, opts.Domain, ValidDomains)
	}
	slog.Debug("evaluating query", "query", q.Name, "domain", opts.Domain, "start", opts.Start, "count", opts.Count)
	res, err := q.eval(b, opts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Name, err)
	}
	res.Query = q.Name
	return res, nil
}

// All returns the catalog, ordered by name.
func All() []Query {
	qs := slices.Clone(queries)
	slices.SortFunc(qs, func(a, b Query) int { return strings.Compare(a.Name, b.Name) })
	return qs
}

// Lookup finds a query by name.
func Lookup(name string) (Query, error) {
	i := slices.IndexFunc(queries, func(q Query) bool { return q.Name == name })
	if i < 0 {
		return Query{}, fmt.Errorf("%w %q", ErrUnknownQuery, name)
	}
	return queries[i], nil
}

// domain builds the interpretation domain.  The active domain is made of
// the attribute values of the given relations.
func domain(opts Options, active ...func(*relcalc.Set[int]) error) (relcalc.Domain[int], error) {
	if opts.Domain == DomainActive {
		d := relcalc.NewSet[int]()
		for _, add := range active {
			if err := add(d); err != nil {
				return nil, fmt.Errorf("failed to build active domain: %w", err)
			}
		}
		slog.Debug("active domain", "values", d.Len())
		return d, nil
	}
	return relcalc.NewRange(opts.Start, opts.Count), nil
}

// activeOf adds the active domain of r
func activeOf[T comparable](r *relcalc.Relation[T]) func(*relcalc.Set[int]) error {
	return func(d *relcalc.Set[int]) error { return relcalc.AddActive(d, r) }
}

// relationResult converts a query result into rows of ints
func relationResult[T comparable](r *relcalc.Relation[T]) *Result {
	heading := relcalc.Heading[T]()
	res := &Result{
		Heading: make([]string, len(heading)),
		Tuples:  make([][]int, 0, r.Card()),
		table:   relcalc.PrettyPrint(r),
	}
	for i, a := range heading {
		res.Heading[i] = string(a)
	}
	for _, tup := range r.All() {
		rtup := reflect.ValueOf(tup)
		row := make([]int, len(heading))
		for i := range row {
			row[i] = int(att.Field(rtup, i).Int())
		}
		res.Tuples = append(res.Tuples, row)
	}
	slog.Debug("query result", "tuples", r.Card())
	return res
}

func boolResult(b bool) *Result {
	slog.Debug("query result", "holds", b)
	return &Result{Holds: &b}
}
