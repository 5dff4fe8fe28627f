package relcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests for Query, Any and All

func TestQueryIncomePayments(t *testing.T) {
	inc, pay := income(), payment()
	d := NewRange(0, 100)

	// {t | income(t[0], t[1]) ∧ ∃u (payment(u) ∧ u[0] = t[1] ∧ u[1] = t[2])}
	res, err := Query(d, func(t [3]int) bool {
		return inc.Contains([2]int{t[0], t[1]}) && MustAny(d, func(u [2]int) bool {
			return pay.Contains(u) && u[0] == t[1] && u[1] == t[2]
		})
	})
	require.NoError(t, err)

	// (3, 7) has no payment with sum 7, and (4, 8) has no payment with sum 8
	assert.Equal(t, [][3]int{{1, 5, 1}, {2, 6, 2}}, res.Tuples())
}

func TestQueryCardinality(t *testing.T) {
	always := func(int) bool { return true }

	r1, err := Query(NewRange(0, 4), func(t [3]int) bool { return always(t[0]) })
	require.NoError(t, err)
	assert.Equal(t, 64, r1.Card())

	r2, err := Query(NewSet("a", "b", "c"), func(t struct{ X, Y string }) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, 9, r2.Card())

	// every combination shows up exactly once
	seen := map[[3]int]int{}
	for _, tup := range r1.All() {
		seen[tup]++
	}
	assert.Len(t, seen, 64)
	for tup, n := range seen {
		assert.Equal(t, 1, n, "%v", tup)
	}
}

func TestQueryOrder(t *testing.T) {
	res, err := Query(NewSet(2, 0, 1), func(t [2]int) bool { return true })
	require.NoError(t, err)

	// attribute 0 is the outermost loop
	var want [][2]int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want = append(want, [2]int{i, j})
		}
	}
	assert.Equal(t, want, res.Tuples())
}

func TestQueryIdempotent(t *testing.T) {
	d := NewRange(0, 10)
	p := func(t [2]int) bool { return (t[0]+t[1])%3 == 0 }
	r1, err := Query(d, p)
	require.NoError(t, err)
	r2, err := Query(d, p)
	require.NoError(t, err)
	assert.Equal(t, r1.Tuples(), r2.Tuples())
	assert.NotZero(t, r1.Card())
}

func TestQuantifierDuality(t *testing.T) {
	d := NewRange(-2, 5)
	var preds = []struct {
		name string
		p    Predicate[[2]int]
	}{
		{"true", func([2]int) bool { return true }},
		{"false", func([2]int) bool { return false }},
		{"equal", func(t [2]int) bool { return t[0] == t[1] }},
		{"sum is 4", func(t [2]int) bool { return t[0]+t[1] == 4 }},
		{"sum is 9", func(t [2]int) bool { return t[0]+t[1] == 9 }},
		{"not both negative", func(t [2]int) bool { return t[0] >= 0 || t[1] >= 0 }},
	}
	for _, tt := range preds {
		anyP, err := Any[[2]int](d, tt.p)
		require.NoError(t, err)
		allNotP, err := All[[2]int](d, Not(tt.p))
		require.NoError(t, err)
		assert.Equal(t, anyP, !allNotP, "%s: Any(p) => %v, All(!p) => %v", tt.name, anyP, allNotP)
	}
}

func TestEmptyDomain(t *testing.T) {
	var domains = []struct {
		name string
		d    Domain[int]
	}{
		{"range", NewRange(10, 0)},
		{"negative range", NewRange(10, -3)},
		{"set", NewSet[int]()},
	}
	for _, tt := range domains {
		calls := 0
		p := func(t [2]int) bool {
			calls++
			return true
		}
		r, err := Query(tt.d, p)
		require.NoError(t, err)
		assert.Equal(t, 0, r.Card(), tt.name)
		assert.NotNil(t, r, tt.name)

		b, err := Any(tt.d, p)
		require.NoError(t, err)
		assert.False(t, b, "%s: Any", tt.name)

		b, err = All(tt.d, func(t [2]int) bool { return false })
		require.NoError(t, err)
		assert.True(t, b, "%s: All", tt.name)

		assert.Zero(t, calls, tt.name)
	}
}

func TestShortCircuit(t *testing.T) {
	d := NewRange(0, 10)

	calls := 0
	b, err := Any(d, func(t [2]int) bool {
		calls++
		return t == [2]int{0, 3}
	})
	require.NoError(t, err)
	assert.True(t, b)
	assert.Equal(t, 4, calls, "Any stops at the first witness")

	calls = 0
	b, err = All(d, func(t [2]int) bool {
		calls++
		return t != [2]int{1, 0}
	})
	require.NoError(t, err)
	assert.False(t, b)
	assert.Equal(t, 11, calls, "All stops at the first counterexample")

	calls = 0
	_, err = Query(d, func(t [2]int) bool {
		calls++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 100, calls, "Query visits everything")
}

func TestNestedQuantifiers(t *testing.T) {
	d := NewRange(0, 4)

	// the inner quantifier enumerates the same domain with its own tuple, so
	// the outer tuple has to come through unchanged.
	res, err := Query(d, func(t [2]int) bool {
		before := t
		swapped := MustAny(d, func(u [2]int) bool {
			return u[0] == t[1] && u[1] == t[0]
		})
		bounded := MustAll(d, func(u [2]int) bool {
			return u[0] < 4 && u[1] < 4
		})
		if t != before {
			panic("outer tuple changed")
		}
		return swapped && bounded && t[0] < t[1]
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, res.Tuples())

	// ∀x ∃y y = x + 1 fails at the top of the domain, ∀x ∃y y = x does not
	b, err := All(d, func(x [1]int) bool {
		return MustAny(d, func(y [1]int) bool { return y[0] == x[0]+1 })
	})
	require.NoError(t, err)
	assert.False(t, b)

	b, err = All(d, func(x [1]int) bool {
		return MustAny(d, func(y [1]int) bool { return y[0] == x[0] })
	})
	require.NoError(t, err)
	assert.True(t, b)
}

func TestQueryActiveDomain(t *testing.T) {
	ords := orders()
	d := NewSet[int]()
	require.NoError(t, AddActive(d, ords))

	// suppliers who supply part 2:
	// {t | ∃o (orders(o) ∧ o.SNO = t.SNO ∧ o.PNO = 2)}
	type snoTup struct{ SNO int }
	res, err := Query(d, func(t snoTup) bool {
		return MustAny(d, func(o orderTup) bool {
			return ords.Contains(o) && o.SNO == t.SNO && o.PNO == 2
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []snoTup{{1}, {2}}, res.Tuples())

	// every order is for at least 100
	b, err := All[orderTup](d, Member(ords).Implies(func(o orderTup) bool { return o.Qty >= 100 }))
	require.NoError(t, err)
	assert.True(t, b)
}

func TestQueryStringDomain(t *testing.T) {
	routes := New(
		[2]string{"London", "Paris"},
		[2]string{"Paris", "Athens"},
		[2]string{"Athens", "Oslo"},
	)
	d := NewSet[string]()
	require.NoError(t, AddActive(d, routes))

	// {t | ∃u (routes(t.From, u) ∧ routes(u, t.To))}
	type hop struct{ From, To string }
	res, err := Query(d, func(t hop) bool {
		return MustAny(d, func(u [1]string) bool {
			return routes.Contains([2]string{t.From, u[0]}) && routes.Contains([2]string{u[0], t.To})
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []hop{{"London", "Athens"}, {"Paris", "Oslo"}}, res.Tuples())
}

func TestNamedAttributeTypes(t *testing.T) {
	type date int
	type sum int
	type incomeTup struct {
		Date date
		Sum  sum
	}
	res, err := Query(NewRange(1, 3), func(t incomeTup) bool { return int(t.Date) == int(t.Sum) })
	require.NoError(t, err)
	assert.Equal(t, []incomeTup{{1, 1}, {2, 2}, {3, 3}}, res.Tuples())
}

func TestZeroDegree(t *testing.T) {
	// without free variables the predicate is evaluated once, even on an
	// empty domain
	r, err := Query(NewRange(0, 0), func(struct{}) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, 1, r.Card())

	b, err := Any(NewRange(0, 0), func([0]int) bool { return true })
	require.NoError(t, err)
	assert.True(t, b)
}

func TestShapeErrors(t *testing.T) {
	d := NewRange(0, 3)
	called := false

	_, err := Query(d, func(t int) bool {
		called = true
		return true
	})
	var kindErr *KindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, "relcalc: expected tuple of kind 'struct' or 'array', found 'int'", err.Error())

	type private struct {
		A int
		b int
	}
	_, err = Any(d, func(t private) bool {
		called = true
		return true
	})
	var unexpErr *UnexportedFieldError
	require.ErrorAs(t, err, &unexpErr)
	assert.Equal(t, "b", unexpErr.Field)

	_, err = All(d, func(t struct {
		Date int
		Name string
	}) bool {
		called = true
		return true
	})
	var typeErr *FieldTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.EqualValues(t, "Name", typeErr.Attribute)
	assert.Equal(t, "relcalc: cannot use value of type 'int' as attribute Name of type 'string'", err.Error())

	// an int domain must not be converted into strings
	_, err = Query(d, func(t [1]string) bool {
		called = true
		return true
	})
	require.ErrorAs(t, err, &typeErr)

	_, err = Query[[1]int, int](nil, func([1]int) bool {
		called = true
		return true
	})
	assert.ErrorIs(t, err, ErrNilDomain)

	_, err = Query[[1]int, int](d, nil)
	assert.ErrorIs(t, err, ErrNilPredicate)

	assert.False(t, called, "predicate was called despite a shape error")
}

func TestMustPanics(t *testing.T) {
	d := NewRange(0, 3)
	p := func(t [1]string) bool { return true }
	assert.Panics(t, func() { MustQuery(d, p) })
	assert.Panics(t, func() { MustAny(d, p) })
	assert.Panics(t, func() { MustAll(d, p) })

	assert.NotPanics(t, func() {
		assert.Equal(t, 3, MustQuery(d, func([1]int) bool { return true }).Card())
		assert.True(t, MustAny(d, func(t [1]int) bool { return t[0] == 2 }))
		assert.False(t, MustAll(d, func(t [1]int) bool { return t[0] < 2 }))
	})
}

func BenchmarkQueryIncomePayments(b *testing.B) {
	inc, pay := income(), payment()
	d := NewRange(0, 20)
	for i := 0; i < b.N; i++ {
		MustQuery(d, func(t [3]int) bool {
			return inc.Contains([2]int{t[0], t[1]}) && MustAny(d, func(u [2]int) bool {
				return pay.Contains(u) && u[0] == t[1] && u[1] == t[2]
			})
		})
	}
}
