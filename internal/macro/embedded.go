package macro

import (
	"log/slog"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/netmacro/internal/compute"
	"github.com/specialistvlad/netmacro/internal/expansion"
)

// EmbeddedString is a piece of macro text held as a node tree.
//
// The tree is built with Push, Pop and AddText (or all at once with Parse)
// and evaluated with Expand, ExpandMultiple or ExpandEscape. The result of
// the interpolation pass is cached per context and context marker; any
// change to the tree drops the cache.
//
// An EmbeddedString is not safe for concurrent use.
type EmbeddedString struct {
	stack  []*Node
	braces int

	calc   compute.Calculator
	logger *slog.Logger
	rng    hcl.Range

	cached       string
	hasCache     bool
	cachedCtx    *expansion.Context
	cachedMarker uint64

	// filters registered by the last interpolation, in document order
	filters []filter
}

type filter struct {
	node     *Node
	position int
}

// New creates an empty EmbeddedString.
func New(opts ...Option) *EmbeddedString {
	o := buildOptions(opts)
	return &EmbeddedString{
		stack:  []*Node{{Type: NodeText}},
		calc:   o.calculator,
		logger: o.logger,
		rng:    o.rng,
	}
}

// NewFromString creates an EmbeddedString holding s as literal text.
func NewFromString(s string, opts ...Option) *EmbeddedString {
	return New(opts...).AddText(s)
}

// NewFromFloat creates an EmbeddedString holding the formatted number.
func NewFromFloat(v float64, opts ...Option) *EmbeddedString {
	return NewFromString(compute.Format(v), opts...)
}

// NewFromInt creates an EmbeddedString holding the decimal integer.
func NewFromInt(v int, opts ...Option) *EmbeddedString {
	return NewFromString(strconv.Itoa(v), opts...)
}

func (s *EmbeddedString) top() *Node {
	return s.stack[len(s.stack)-1]
}

// Root returns the bottom of the construction stack. Once every pushed node
// has been popped it holds the whole tree.
func (s *EmbeddedString) Root() *Node {
	return s.stack[0]
}

// Range returns where the text was authored.
func (s *EmbeddedString) Range() hcl.Range {
	return s.rng
}

// SetRange records where the text was authored.
func (s *EmbeddedString) SetRange(rng hcl.Range) {
	s.rng = rng
}

// AddText appends a text leaf to the open node.
func (s *EmbeddedString) AddText(text string) *EmbeddedString {
	s.ClearCache()
	if text == "" {
		return s
	}
	parent := s.top()
	parent.Children = append(parent.Children, &Node{Type: NodeText, Text: text})
	return s
}

// PrependText inserts a text leaf before the other children of the open
// node.
func (s *EmbeddedString) PrependText(text string) *EmbeddedString {
	s.ClearCache()
	if text == "" {
		return s
	}
	parent := s.top()
	parent.Children = append([]*Node{{Type: NodeText, Text: text}}, parent.Children...)
	return s
}

// Push opens a new node. Text and nodes added until the matching Pop
// become its children.
func (s *EmbeddedString) Push(typ NodeType, depth int) *EmbeddedString {
	s.stack = append(s.stack, &Node{Type: typ, Depth: depth})
	s.ClearCache()
	return s
}

// Pop closes the open node into its parent. Popping the root does nothing.
func (s *EmbeddedString) Pop() *EmbeddedString {
	s.ClearCache()
	if len(s.stack) < 2 {
		return s
	}
	node := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	parent := s.top()
	parent.Children = append(parent.Children, node)
	return s
}

// PushBrace appends an opening brace and raises the brace level.
func (s *EmbeddedString) PushBrace() *EmbeddedString {
	s.AddText("{")
	s.braces++
	return s
}

// PopBrace appends a closing brace and lowers the brace level.
func (s *EmbeddedString) PopBrace() *EmbeddedString {
	s.AddText("}")
	s.braces--
	return s
}

// BraceLevel returns the number of braces opened with PushBrace and not
// yet closed with PopBrace.
func (s *EmbeddedString) BraceLevel() int {
	return s.braces
}

// AddString appends a copy of other's tree to the open node. Nodes still
// open in other are copied as if they had been popped, each nested in the
// one below it.
func (s *EmbeddedString) AddString(other *EmbeddedString) *EmbeddedString {
	s.ClearCache()
	if other == nil {
		return s
	}
	frames := make([]*Node, len(other.stack))
	for i, n := range other.stack {
		frames[i] = n.copy()
	}
	for i := len(frames) - 1; i > 0; i-- {
		frames[i-1].Children = append(frames[i-1].Children, frames[i])
	}
	parent := s.top()
	parent.Children = append(parent.Children, frames[0])
	return s
}

// ClearCache drops the cached interpolation and the filters it registered.
func (s *EmbeddedString) ClearCache() {
	s.cached = ""
	s.hasCache = false
	s.cachedCtx = nil
	s.cachedMarker = 0
	s.filters = nil
}

// Expand runs the interpolation pass against ctx and returns the flat
// string. Nodes that are still open are not part of the result. A nil ctx
// yields the round-trip form of the text: equations, conditions and
// indirections are written back instead of evaluated.
func (s *EmbeddedString) Expand(ctx *expansion.Context) (string, error) {
	if s.hasCache && s.cachedCtx == ctx && (ctx == nil || ctx.Marker() == s.cachedMarker) {
		s.logger.Debug("Embedded string cache hit.", "value", s.cached)
		return s.cached, nil
	}
	s.ClearCache()

	out, marks, err := s.evaluate(s.Root(), ctx, evaluateSelf|updateFilters)
	if err != nil {
		return "", err
	}

	s.filters = marks
	s.cached = out
	s.hasCache = true
	s.cachedCtx = ctx
	if ctx != nil {
		s.cachedMarker = ctx.Marker()
	}
	s.logger.Debug("Embedded string evaluated.", "value", out, "filters", len(marks))
	return out, nil
}

// String returns the round-trip form of the text. It does not touch the
// cache.
func (s *EmbeddedString) String() string {
	out, _, err := s.evaluate(s.Root(), nil, evaluateSelf)
	if err != nil {
		return ""
	}
	return out
}
