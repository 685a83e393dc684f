package macro

import (
	"errors"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/netmacro/internal/expansion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruction(t *testing.T) {
	s := New().
		AddText("a").
		Push(NodeEquation, 0).
		AddText("1 + 2").
		Pop().
		AddText("b")

	got, err := s.Expand(expansion.NewContext(nil))
	require.NoError(t, err)
	assert.Equal(t, "a3b", got)

	require.Len(t, s.Root().Children, 3)
	assert.Equal(t, NodeEquation, s.Root().Children[1].Type)
}

func TestPopAtRootIsNoop(t *testing.T) {
	s := NewFromString("x").Pop().Pop()
	assert.Equal(t, "x", s.String())
}

func TestPrependText(t *testing.T) {
	s := NewFromString("world").PrependText("hello ")
	assert.Equal(t, "hello world", s.String())
}

func TestAddString(t *testing.T) {
	other := mustParse(t, "$(2 * 3)")
	s := NewFromString("n").AddString(other)

	got, err := s.Expand(expansion.NewContext(nil))
	require.NoError(t, err)
	assert.Equal(t, "n6", got)

	other.AddText("changed")
	got, err = s.Expand(expansion.NewContext(nil))
	require.NoError(t, err)
	assert.Equal(t, "n6", got, "the added tree must be a copy")
}

func TestAddString_NestsOpenNodes(t *testing.T) {
	other := New().AddText("x").
		Push(NodeEquation, 0).AddText("1 + ").
		Push(NodeEquation, 0).AddText("2")
	s := NewFromString("n").AddString(other)

	got, err := s.Expand(expansion.NewContext(nil))
	require.NoError(t, err)
	assert.Equal(t, "nx3", got)

	got, err = other.Expand(expansion.NewContext(nil))
	require.NoError(t, err)
	assert.Equal(t, "x", got, "open nodes are not part of the result")
}

func TestNumericConstructors(t *testing.T) {
	assert.Equal(t, "0.5", NewFromFloat(0.5).String())
	assert.Equal(t, "2", NewFromFloat(2).String())
	assert.Equal(t, "-7", NewFromInt(-7).String())
}

func TestBraceLevel(t *testing.T) {
	s := New().PushBrace().AddText("a,b").PushBrace().AddText("c").PopBrace()
	assert.Equal(t, 1, s.BraceLevel())
	s.PopBrace()
	assert.Equal(t, 0, s.BraceLevel())
	assert.Equal(t, "{a,b{c}}", s.String())
}

func TestRange(t *testing.T) {
	rng := hcl.Range{Filename: "model.hcl", Start: hcl.Pos{Line: 3, Column: 5}}
	s := NewFromString("x", WithRange(rng))
	assert.Equal(t, rng, s.Range())

	rng.Start.Line = 4
	s.SetRange(rng)
	assert.Equal(t, 4, s.Range().Start.Line)
}

func TestExpand_CachesPerContextAndMarker(t *testing.T) {
	calc := &countingCalculator{}
	s := mustParse(t, "$(1 + 1)", WithCalculator(calc))
	ctx := expansion.NewContext(nil)

	got, err := s.Expand(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	got, err = s.Expand(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", got)
	assert.Equal(t, 1, calc.calls, "second expand must come from the cache")

	ctx.AddDefine("x", expansion.NewOne("1"))
	_, err = s.Expand(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calc.calls, "a context change must invalidate the cache")

	_, err = s.Expand(expansion.NewContext(nil))
	require.NoError(t, err)
	assert.Equal(t, 3, calc.calls, "a different context must invalidate the cache")
}

func TestExpand_MutationClearsCache(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(s *EmbeddedString)
	}{
		{name: "add empty text", mutate: func(s *EmbeddedString) { s.AddText("") }},
		{name: "push", mutate: func(s *EmbeddedString) { s.Push(NodeText, 0) }},
		{name: "pop", mutate: func(s *EmbeddedString) { s.Pop() }},
		{name: "add string", mutate: func(s *EmbeddedString) { s.AddString(New()) }},
		{name: "clear cache", mutate: func(s *EmbeddedString) { s.ClearCache() }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calc := &countingCalculator{}
			s := mustParse(t, "$(2)", WithCalculator(calc))
			ctx := expansion.NewContext(nil)

			_, err := s.Expand(ctx)
			require.NoError(t, err)
			tc.mutate(s)
			_, err = s.Expand(ctx)
			require.NoError(t, err)

			assert.Equal(t, 2, calc.calls)
		})
	}
}

func TestExpand_ErrorsAreNotCached(t *testing.T) {
	s := mustParse(t, "@missing")
	ctx := expansion.NewContext(nil)

	_, err := s.Expand(ctx)
	require.Error(t, err)

	ctx.AddDefine("missing", expansion.NewOne("now"))
	got, err := s.Expand(ctx)
	require.NoError(t, err)
	assert.Equal(t, "now", got)
}

func TestExpand_NoContextRoundTrip(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "plain text", text: "abc", expected: "abc"},
		{name: "equation", text: "a$(1 + 2)b", expected: "a$(1 + 2)b"},
		{name: "indirection", text: "@x", expected: "@[x]"},
		{name: "deep indirection", text: "@@1", expected: "@@[1]"},
		{name: "bracketed", text: "@[n+]", expected: "@[n+]"},
		{name: "nested", text: "$(@n * 2)", expected: "$(@[n] * 2)"},
		{name: "condition", text: "$$(1)(a)", expected: "$$(1a)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := mustParse(t, tc.text)
			got, err := s.Expand(nil)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.expected, s.String())
		})
	}
}

func TestEquation(t *testing.T) {
	ctx := expansion.NewContext(nil)
	ctx.AddDefine("n", expansion.NewOne("4"))
	ctx.AddDefine("empty", expansion.NewOne(""))

	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "define", text: "$(@n * 2)", expected: "8"},
		{name: "fraction", text: "$(@n / 8)", expected: "0.5"},
		{name: "empty child becomes zero", text: "$(1 + @empty)", expected: "1"},
		{name: "nested equations", text: "$($(1 + 1) * 3)", expected: "6"},
		{name: "parentheses", text: "$((1 + 2) * 3)", expected: "9"},
		{name: "function", text: "$(max(@n, 10))", expected: "10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mustParse(t, tc.text).Expand(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestEquation_ComputeError(t *testing.T) {
	_, err := mustParse(t, "$(1 +)").Expand(expansion.NewContext(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCompute))

	var computeErr *ComputeError
	require.True(t, errors.As(err, &computeErr))
	assert.Equal(t, "1 +", computeErr.Expr)
}

func TestCondition(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		n        string
		expected string
	}{
		{name: "true branch", text: "$$(@n > 2)(big)(small)", n: "3", expected: "big"},
		{name: "false branch", text: "$$(@n > 2)(big)(small)", n: "1", expected: "small"},
		{name: "false without else", text: "x$$(@n > 2)(big)y", n: "1", expected: "xy"},
		{name: "fraction truncates to false", text: "$$(@n)(yes)(no)", n: "0.5", expected: "no"},
		{name: "branches are macros", text: "$$(@n)($(@n * 10))(none)", n: "2", expected: "20"},
		{name: "parentheses inside a branch", text: "$$(1)((a))", n: "0", expected: "(a)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := expansion.NewContext(nil)
			ctx.AddDefine("n", expansion.NewOne(tc.n))
			got, err := mustParse(t, tc.text).Expand(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
