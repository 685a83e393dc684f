package macro

import (
	"testing"

	"github.com/specialistvlad/netmacro/internal/expansion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "nothing to escape", in: "abc", expected: "abc"},
		{name: "empty", in: "", expected: ""},
		{name: "braces", in: "{a}", expected: `\{a\}`},
		{name: "comma", in: "a,b", expected: `a\,b`},
		{name: "backslash", in: `a\b`, expected: `a\\b`},
		{name: "other characters untouched", in: "$(@x)", expected: "$(@x)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Escape(tc.in))
		})
	}
}

func TestEscape_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"{a,b}",
		`trailing\`,
		`\{,}\`,
		"{1:3}",
		"2*x",
		"a,b,{c,{d}}",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, err := NewFromString(Escape(in)).ExpandMultiple(nil)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, 1, got[0].Num())
			assert.Equal(t, in, got[0].Value(0))
		})
	}
}

func TestExpandEscape(t *testing.T) {
	ctx := expansion.NewContext(nil)
	ctx.AddDefine("n", expansion.NewOne("2"))
	ctx.AddDefine("c", expansion.NewOne(","))

	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "empty", text: "", expected: ""},
		{name: "plain", text: "abc", expected: "abc"},
		{name: "group is kept", text: "a{b,c}", expected: "a{b,c}"},
		{name: "range is not enumerated", text: "{1:@n}", expected: "{1:2}"},
		{name: "escaped literal", text: `x\{`, expected: `x\{`},
		{name: "nested groups", text: "{a{1,2},b}", expected: "{a{1,2},b}"},
		{name: "filter replaces the elements", text: "{a,b$map(<@0>)}", expected: "{<a>,<b>}"},
		{name: "filter output is escaped", text: "{a,b$map(@0@c)}", expected: `{a\,,b\,}`},
		{name: "reduce", text: "{1:3$reduce($(@0 + @1))}", expected: "{6}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mustParse(t, tc.text).ExpandEscape(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestExpandEscape_NestedFilterRunsOncePerElement(t *testing.T) {
	calc := &countingCalculator{}
	s := mustParse(t, "{{1,2$map($(@0 * 2))}}", WithCalculator(calc))

	got, err := s.ExpandEscape(expansion.NewContext(nil))
	require.NoError(t, err)
	assert.Equal(t, "{{2,4}}", got)
	assert.Equal(t, 2, calc.calls)
}

func TestExpandEscape_NestedFilterFeedsOuterFilter(t *testing.T) {
	got, err := mustParse(t, "{{1,2$map(<@0>)},x$map(_@0)}").ExpandEscape(expansion.NewContext(nil))
	require.NoError(t, err)
	assert.Equal(t, "{_<1>,_<2>,_x}", got)
}

func TestExpandEscape_UnbalancedBraces(t *testing.T) {
	_, err := NewFromString("{a").ExpandEscape(nil)
	assert.ErrorIs(t, err, ErrUnbalancedBraces)
}
