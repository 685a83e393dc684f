package macro

import (
	"math"
	"strings"

	"github.com/specialistvlad/netmacro/internal/compute"
	"github.com/specialistvlad/netmacro/internal/expansion"
)

type evalFlags uint8

const (
	// evaluateSelf applies the node's own semantics on top of its
	// children. Without it only the children are concatenated, which is
	// how filter bodies are run.
	evaluateSelf evalFlags = 1 << iota
	// updateFilters registers map and reduce nodes as filters.
	updateFilters
)

// evaluate returns the text of n together with the filters found below it.
// Filter positions are byte offsets into the returned text.
func (s *EmbeddedString) evaluate(n *Node, ctx *expansion.Context, flags evalFlags) (string, []filter, error) {
	var (
		b     strings.Builder
		parts []string
		marks []filter
	)

	if flags&evaluateSelf == 0 || !n.isFilter() {
		for _, child := range n.Children {
			text, childMarks, err := s.evaluate(child, ctx, flags|evaluateSelf)
			if err != nil {
				return "", nil, err
			}
			if n.Type == NodeEquation && text == "" {
				text = "0"
			}
			for _, m := range childMarks {
				m.position += b.Len()
				marks = append(marks, m)
			}
			b.WriteString(text)
			parts = append(parts, text)
		}
	}

	inner := b.String()
	if flags&evaluateSelf == 0 {
		return inner, marks, nil
	}

	var (
		out string
		err error
	)
	switch n.Type {
	case NodeText:
		out = n.Text + inner
	case NodeEquation:
		if ctx == nil {
			out = "$(" + inner + ")"
			break
		}
		var v float64
		if v, err = s.compute(inner); err == nil {
			out = compute.Format(v)
		}
	case NodeCondition:
		if ctx == nil {
			out = "$$(" + inner + ")"
			break
		}
		out, err = s.condition(parts)
	case NodeIndirection:
		if ctx == nil {
			out = strings.Repeat("@", n.Depth+1) + "[" + inner + "]"
			break
		}
		out, err = s.resolveIndirection(ctx, n.Depth, inner)
	case NodeMap, NodeReduce:
		if flags&updateFilters != 0 {
			s.logger.Debug("Filter registered.", "type", n.Type.String())
			marks = append(marks, filter{node: n})
		}
	}
	if err != nil {
		return "", nil, err
	}

	shift := len(out) - len(inner)
	for i := range marks {
		if marks[i].node != n {
			marks[i].position += shift
		}
	}
	return out, marks, nil
}

func (s *EmbeddedString) compute(expr string) (float64, error) {
	v, err := s.calc.Compute(expr)
	if err != nil {
		return 0, &ComputeError{Expr: expr, Err: err}
	}
	return v, nil
}

// condition picks between the already evaluated branches of a condition
// node. parts[0] is the condition itself.
func (s *EmbeddedString) condition(parts []string) (string, error) {
	truth := false
	if len(parts) > 0 {
		v, err := s.compute(parts[0])
		if err != nil {
			return "", err
		}
		truth = math.Trunc(v) != 0
	}
	switch {
	case truth && len(parts) > 1:
		return parts[1], nil
	case !truth && len(parts) > 2:
		return parts[2], nil
	default:
		return "", nil
	}
}
