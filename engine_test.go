package relcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// record captures the assignments an enumerator makes
type record struct {
	cur  []int
	seen [][]int
}

func (r *record) bind(i int, v int) { r.cur[i] = v }

func (r *record) leaf(b func([]int) bool) func() bool {
	return func() bool {
		r.seen = append(r.seen, append([]int(nil), r.cur...))
		return b(r.cur)
	}
}

func TestEnumeratorOrder(t *testing.T) {
	rec := &record{cur: make([]int, 3)}
	e := newEnumerator[int](queryMode, NewSet(1, 2), 3, rec.bind, rec.leaf(func([]int) bool { return true }))
	e.run()
	assert.Equal(t, [][]int{
		{1, 1, 1}, {1, 1, 2}, {1, 2, 1}, {1, 2, 2},
		{2, 1, 1}, {2, 1, 2}, {2, 2, 1}, {2, 2, 2},
	}, rec.seen)
}

func TestEnumeratorModes(t *testing.T) {
	var modeTests = []struct {
		m     mode
		leaf  func([]int) bool
		out   bool
		calls int
	}{
		{anyMode, func(c []int) bool { return c[0] == 1 && c[1] == 0 }, true, 4},
		{anyMode, func([]int) bool { return false }, false, 9},
		{allMode, func(c []int) bool { return c[1] != 2 }, false, 3},
		{allMode, func([]int) bool { return true }, true, 9},
		{queryMode, func([]int) bool { return true }, false, 9},
	}
	for _, tt := range modeTests {
		rec := &record{cur: make([]int, 2)}
		e := newEnumerator[int](tt.m, NewRange(0, 3), 2, rec.bind, rec.leaf(tt.leaf))
		assert.Equal(t, tt.out, e.run(), "%v", tt.m)
		assert.Len(t, rec.seen, tt.calls, "%v", tt.m)
	}
}

func TestEnumeratorNoVariables(t *testing.T) {
	for _, m := range []mode{queryMode, anyMode, allMode} {
		calls := 0
		e := newEnumerator[int](m, NewRange(0, 0), 0, nil, func() bool {
			calls++
			return false
		})
		assert.False(t, e.run(), "%v", m)
		assert.Equal(t, 1, calls, "%v", m)
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "query", queryMode.String())
	assert.Equal(t, "any", anyMode.String())
	assert.Equal(t, "all", allMode.String())
}
