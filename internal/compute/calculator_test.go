package compute

import (
	"errors"
	"math"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHCLCalculator_Compute(t *testing.T) {
	testCases := []struct {
		name      string
		expr      string
		expected  float64
		expectErr bool
	}{
		{name: "integer arithmetic", expr: "1 + 2 * 3", expected: 7},
		{name: "parentheses", expr: "(1 + 2) * 3", expected: 9},
		{name: "division", expr: "7 / 2", expected: 3.5},
		{name: "modulo", expr: "7 % 3", expected: 1},
		{name: "negative", expr: "-4 + 1", expected: -3},
		{name: "comparison true", expr: "3 > 2", expected: 1},
		{name: "comparison false", expr: "3 == 2", expected: 0},
		{name: "logical", expr: "1 < 2 && 2 < 3", expected: 1},
		{name: "conditional", expr: "2 > 1 ? 10 : 20", expected: 10},
		{name: "stdlib function", expr: "max(1, 5, 3)", expected: 5},
		{name: "pow", expr: "pow(2, 10)", expected: 1024},
		{name: "custom math function", expr: "sqrt(16)", expected: 4},
		{name: "constant", expr: "floor(pi)", expected: 3},
		{name: "string number", expr: `"42"`, expected: 42},
		{name: "error - syntax", expr: "1 +", expectErr: true},
		{name: "error - unknown variable", expr: "x + 1", expectErr: true},
		{name: "error - not a number", expr: `"abc"`, expectErr: true},
		{name: "error - nan", expr: "sqrt(-1)", expectErr: true},
	}

	calc := New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calc.Compute(tc.expr)
			if tc.expectErr {
				require.Error(t, err)
				var computeErr *Error
				require.True(t, errors.As(err, &computeErr))
				assert.Equal(t, tc.expr, computeErr.Expr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestHCLCalculator_WithVariable(t *testing.T) {
	calc := New(WithVariable("n", 4))
	got, err := calc.Compute("n * 2")
	require.NoError(t, err)
	assert.Equal(t, float64(8), got)
}

func TestHCLCalculator_DiagnosticsAreUnwrapped(t *testing.T) {
	_, err := New().Compute("1 +")
	require.Error(t, err)

	var diags hcl.Diagnostics
	assert.True(t, errors.As(err, &diags))
	assert.True(t, diags.HasErrors())
}

func TestHCLCalculator_CachesParsedExpressions(t *testing.T) {
	calc := New(WithCacheSize(2))

	for _, expr := range []string{"1", "2", "1", "3"} {
		_, err := calc.Compute(expr)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calc.cache.len())

	_, ok := calc.cache.get("2")
	assert.False(t, ok, "least recently used entry must be evicted")
	_, ok = calc.cache.get("1")
	assert.True(t, ok)

	_, err := calc.Compute("1 +")
	require.Error(t, err)
	_, ok = calc.cache.get("1 +")
	assert.False(t, ok, "parse failures are not cached")
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		name     string
		in       float64
		expected string
	}{
		{name: "integer", in: 3, expected: "3"},
		{name: "negative integer", in: -12, expected: "-12"},
		{name: "negative zero", in: math.Copysign(0, -1), expected: "0"},
		{name: "large integer", in: 1e6, expected: "1000000"},
		{name: "fraction", in: 0.5, expected: "0.5"},
		{name: "repeating fraction", in: 1.0 / 3, expected: "0.3333333333333333"},
		{name: "tiny", in: 1e-9, expected: "1e-09"},
		{name: "huge", in: 1e300, expected: "1e+300"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Format(tc.in))
		})
	}
}
