package macro

import (
	"testing"

	"github.com/specialistvlad/netmacro/internal/compute"
	"github.com/specialistvlad/netmacro/internal/expansion"
	"github.com/stretchr/testify/require"
)

// countingCalculator counts evaluations and delegates to the default
// calculator.
type countingCalculator struct {
	calls int
}

func (c *countingCalculator) Compute(expr string) (float64, error) {
	c.calls++
	return compute.Default().Compute(expr)
}

func mustParse(t *testing.T, text string, opts ...Option) *EmbeddedString {
	t.Helper()
	s, err := Parse(text, opts...)
	require.NoError(t, err)
	return s
}

func firstFields(list []*expansion.Expansion) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Value(0)
	}
	return out
}
