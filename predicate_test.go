package relcalc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonlawlor/relcalc/att"
)

// tests & benchmarks for Predicates

// tests predicate composition
func TestCombinators(t *testing.T) {
	var True Predicate[[1]int] = func([1]int) bool { return true }
	var False Predicate[[1]int] = func([1]int) bool { return false }
	var predTests = []struct {
		name string
		in   Predicate[[1]int]
		out  bool
	}{
		{"Not(True)", Not(True), false},
		{"Not(False)", Not(False), true},

		{"True.And(True)", True.And(True), true},
		{"False.And(True)", False.And(True), false},
		{"True.And(False)", True.And(False), false},

		{"True.Or(False)", True.Or(False), true},
		{"False.Or(False)", False.Or(False), false},

		{"True.Xor(True)", True.Xor(True), false},
		{"False.Xor(True)", False.Xor(True), true},

		{"True.Implies(False)", True.Implies(False), false},
		{"False.Implies(False)", False.Implies(False), true},
		{"False.Implies(True)", False.Implies(True), true},
		{"True.Implies(True)", True.Implies(True), true},
	}
	for _, tt := range predTests {
		if b := tt.in([1]int{}); b != tt.out {
			t.Errorf("%s => %v, want %v", tt.name, b, tt.out)
		}
	}
}

func TestMember(t *testing.T) {
	p := Member(income())
	assert.True(t, p([2]int{3, 7}))
	assert.False(t, p([2]int{7, 3}))

	// ∀t (payment(t) → t.Sum < 10)
	b, err := All[[2]int](NewRange(0, 10), Member(payment()).Implies(func(t [2]int) bool { return t[0] < 10 }))
	require.NoError(t, err)
	assert.True(t, b)
}

func TestWhere(t *testing.T) {
	type paymentTup struct {
		Sum  int
		Paid int
	}
	pay := New(paymentTup{5, 1}, paymentTup{6, 2}, paymentTup{3, 3}, paymentTup{2, 4})

	overpaid, err := Where[paymentTup](att.Attribute("Paid").GT(att.Attribute("Sum")))
	require.NoError(t, err)

	res, err := Query[paymentTup](NewRange(0, 10), Member(pay).And(overpaid))
	require.NoError(t, err)
	assert.Equal(t, []paymentTup{{2, 4}}, res.Tuples())

	// literals and composition
	p, err := Where[paymentTup](att.Attribute("Sum").GE(5).And(att.Not(att.Attribute("Paid").EQ(2))))
	require.NoError(t, err)
	res, err = Query[paymentTup](NewRange(0, 10), Member(pay).And(p))
	require.NoError(t, err)
	assert.Equal(t, []paymentTup{{5, 1}}, res.Tuples())

	// array attributes are named by position
	p2, err := Where[[2]int](att.Attribute("0").LT(att.Attribute("1")))
	require.NoError(t, err)
	assert.True(t, p2([2]int{1, 2}))
	assert.False(t, p2([2]int{2, 1}))

	// ad hoc predicates are projected onto the tuple by name
	type sumTup struct{ Sum int }
	p3, err := Where[paymentTup](att.NewAdHoc(func(t sumTup) bool { return t.Sum%2 == 0 }))
	require.NoError(t, err)
	assert.True(t, p3(paymentTup{6, 2}))
	assert.False(t, p3(paymentTup{5, 1}))
}

func TestWhereErrors(t *testing.T) {
	type paymentTup struct {
		Sum  int
		Paid int
	}
	_, err := Where[paymentTup](att.Attribute("Date").EQ(att.Attribute("Sum")))
	var subErr *att.AttributeSubsetError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, []att.Attribute{"Date"}, subErr.Found)

	_, err = Where[float64](att.Attribute("Sum").EQ(1))
	var kindErr *KindError
	assert.ErrorAs(t, err, &kindErr)

	// ad hoc inputs have to be tuples
	_, err = Where[paymentTup](att.NewAdHoc(func(x int) bool { return x > 0 }))
	kindErr = nil
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, reflect.TypeFor[int](), kindErr.Found)

	// and their attributes have to take the tuple's values without changing
	// kind, also when nested in a combination
	type sumString struct{ Sum string }
	bad := att.NewAdHoc(func(x sumString) bool { return x.Sum == "5" })
	for _, p := range []att.Predicate{
		bad,
		att.Not(bad),
		att.Attribute("Paid").GT(1).And(bad),
		att.Attribute("Paid").GT(1).Or(att.Not(bad)),
		att.Attribute("Paid").GT(1).Xor(bad),
	} {
		var typeErr *FieldTypeError
		_, err = Where[paymentTup](p)
		require.ErrorAs(t, err, &typeErr, p.String())
		assert.Equal(t, att.Attribute("Sum"), typeErr.Attribute)
		assert.Equal(t, "relcalc: cannot use value of type 'int' as attribute Sum of type 'string'", typeErr.Error())
	}

	// named types of the same kind are converted
	type date int
	type dateTup struct{ Sum date }
	p, err := Where[paymentTup](att.NewAdHoc(func(x dateTup) bool { return x.Sum == 5 }))
	require.NoError(t, err)
	assert.True(t, p(paymentTup{5, 1}))
}

func BenchmarkWhere(b *testing.B) {
	p := MustWhere[[2]int](att.Attribute("0").LT(att.Attribute("1")))
	d := NewRange(0, 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MustQuery[[2]int](d, p)
	}
}
