package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name     string
		values   []string
		expected []string
	}{
		{name: "no values", values: nil, expected: []string{}},
		{name: "one value", values: []string{"a"}, expected: []string{"a"}},
		{name: "several values", values: []string{"a", "", "c"}, expected: []string{"a", "", "c"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(tc.values...)
			assert.Equal(t, len(tc.expected), e.Num())
			assert.Equal(t, tc.expected, e.Values())
		})
	}
}

func TestGet_MissingIsDistinctFromEmpty(t *testing.T) {
	e := New("", "b")

	v, ok := e.Get(0)
	require.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = e.Get(2)
	assert.False(t, ok, "field past the end must be reported as missing")

	_, ok = e.Get(-1)
	assert.False(t, ok)
}

func TestCopy_IsIndependent(t *testing.T) {
	e := New("a", "b")
	e.SetIndex(1, 7)

	c := e.Copy()
	require.True(t, e.Equal(c))

	c.Set(0, "changed")
	c.SetIndex(1, 9)

	assert.Equal(t, "a", e.Value(0))
	assert.Equal(t, 7, e.Index(1))
	assert.Equal(t, "changed", c.Value(0))
}

func TestSetGrowsAndInsertShifts(t *testing.T) {
	e := NewOne("a")
	e.Set(2, "c")
	assert.Equal(t, []string{"a", "", "c"}, e.Values())

	e.SetIndex(2, 4)
	e.Insert(1, "x")
	assert.Equal(t, []string{"a", "x", "", "c"}, e.Values())
	assert.Equal(t, 4, e.Index(3), "insert must carry indices with their fields")
	assert.Equal(t, 0, e.Index(1))

	e.Insert(10, "end")
	assert.Equal(t, "end", e.Value(4))
}

func TestAppend_SkipsLeadingFields(t *testing.T) {
	left := New("ab", "1")
	right := New("b", "2", "3")
	right.SetIndex(2, 5)

	left.Append(right, 1)

	assert.Equal(t, []string{"ab", "1", "2", "3"}, left.Values())
	assert.Equal(t, 5, left.Index(3))
}

func TestFromMatch(t *testing.T) {
	e := FromMatch([]string{"x12", "x", "12"})
	assert.Equal(t, 3, e.Num())
	assert.Equal(t, "x12", e.Value(0))
	assert.Equal(t, "12", e.Value(2))
}

func TestString(t *testing.T) {
	e := New("a", "b")
	e.SetIndex(1, 3)
	assert.Equal(t, "[a(0), b(3)]", e.String())
}
