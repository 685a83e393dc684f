package macro

import (
	"regexp"
	"strconv"

	"github.com/specialistvlad/netmacro/internal/expansion"
)

var (
	rangePattern  = regexp.MustCompile(`^\s*([0-9]+):([0-9]+)(?::([0-9]+))?\s*$`)
	repeatPattern = regexp.MustCompile(`(?s)^\s*([0-9]+)\s*\*(.*)$`)
)

// ExpandMultiple runs the interpolation pass and then the brace pass,
// returning one Expansion per alternative. Field 0 of each Expansion is the
// expanded text; every brace group adds a field holding the element it
// contributed.
func (s *EmbeddedString) ExpandMultiple(ctx *expansion.Context) ([]*expansion.Expansion, error) {
	flat, err := s.Expand(ctx)
	if err != nil {
		return nil, err
	}
	if flat == "" {
		return []*expansion.Expansion{expansion.NewOne("")}, nil
	}

	root, err := parseBraces(flat)
	if err != nil {
		return nil, err
	}
	return s.expandNode(ctx, root)
}

func (s *EmbeddedString) expandNode(ctx *expansion.Context, n *exNode) ([]*expansion.Expansion, error) {
	switch n.typ {
	case exText:
		return []*expansion.Expansion{expansion.NewOne(n.text)}, nil
	case exConcat:
		return s.expandConcat(ctx, n)
	default:
		return s.expandElements(ctx, n)
	}
}

// expandConcat joins the results of the children as a cartesian product.
// The combined field 0 is the concatenation, followed by the remaining
// fields of both sides; field 0 indices number the results in order.
func (s *EmbeddedString) expandConcat(ctx *expansion.Context, n *exNode) ([]*expansion.Expansion, error) {
	var ret []*expansion.Expansion
	for i, child := range n.children {
		items, err := s.expandNode(ctx, child)
		if err != nil {
			return nil, err
		}

		ret = product(ret, items, i == 0)
	}
	return ret, nil
}

// product joins every left item with every right item. With first set the
// left side is ignored and the right items are copied.
func product(left, right []*expansion.Expansion, first bool) []*expansion.Expansion {
	next := make([]*expansion.Expansion, 0, max(len(left), 1)*len(right))
	if first {
		for _, item := range right {
			next = append(next, item.Copy())
		}
	} else {
		for _, l := range left {
			for _, r := range right {
				joined := expansion.NewOne(l.Value(0) + r.Value(0))
				joined.Append(l, 1)
				joined.Append(r, 1)
				next = append(next, joined)
			}
		}
	}
	for idx, e := range next {
		e.SetIndex(0, idx)
	}
	return next
}

// expandElements collects the alternatives of a brace group. Filters
// registered at an alternative boundary are applied to everything
// collected before it.
func (s *EmbeddedString) expandElements(ctx *expansion.Context, n *exNode) ([]*expansion.Expansion, error) {
	var ret []*expansion.Expansion
	pos := n.begin

	for _, child := range n.children {
		var err error
		if ret, _, err = s.applyFilters(ctx, ret, pos); err != nil {
			return nil, err
		}

		items, err := s.expandNode(ctx, child)
		if err != nil {
			return nil, err
		}
		ret = append(ret, expandItems(items)...)
		pos = child.end
	}

	ret, _, err := s.applyFilters(ctx, ret, pos)
	if err != nil {
		return nil, err
	}
	annotate(ret)
	return ret, nil
}

// expandItems replaces single field items written as a range or a repeat
// by the literals they stand for.
func expandItems(items []*expansion.Expansion) []*expansion.Expansion {
	var out []*expansion.Expansion
	for _, item := range items {
		if item.Num() != 1 {
			out = append(out, item)
			continue
		}
		out = append(out, parseRange(item.Value(0))...)
	}
	return out
}

// parseRange expands "start:end", "start:step:end" and "N*text". Anything
// else is returned as a single literal.
func parseRange(s string) []*expansion.Expansion {
	if m := rangePattern.FindStringSubmatch(s); m != nil {
		start, err1 := strconv.Atoi(m[1])
		step, err2 := strconv.Atoi(m[2])
		end := step
		var err3 error
		if m[3] != "" {
			end, err3 = strconv.Atoi(m[3])
		} else {
			step = 1
		}
		if err1 == nil && err2 == nil && err3 == nil {
			if step <= 0 {
				return nil
			}
			var out []*expansion.Expansion
			for i := start; i <= end; i += step {
				out = append(out, expansion.NewOne(strconv.Itoa(i)))
			}
			return out
		}
	}

	if m := repeatPattern.FindStringSubmatch(s); m != nil {
		if count, err := strconv.Atoi(m[1]); err == nil {
			out := make([]*expansion.Expansion, 0, count)
			for i := 0; i < count; i++ {
				out = append(out, expansion.NewOne(m[2]))
			}
			return out
		}
	}

	return []*expansion.Expansion{expansion.NewOne(s)}
}

// annotate records each element as field 1, indexed by its position in
// the group.
func annotate(items []*expansion.Expansion) {
	for i, item := range items {
		item.Insert(1, item.Value(0))
		item.SetIndex(1, i)
	}
}

// groupHasFilters reports whether a filter is registered at one of the
// boundaries of group n.
func (s *EmbeddedString) groupHasFilters(n *exNode) bool {
	if len(s.filters) == 0 {
		return false
	}
	if len(s.filtersAt(n.begin)) > 0 {
		return true
	}
	for _, child := range n.children {
		if len(s.filtersAt(child.end)) > 0 {
			return true
		}
	}
	return false
}

func (s *EmbeddedString) filtersAt(pos int) []*Node {
	var out []*Node
	for _, f := range s.filters {
		if f.position == pos {
			out = append(out, f.node)
		}
	}
	return out
}

// applyFilters runs the filters registered at pos over items. The
// returned boolean reports whether any filter ran.
func (s *EmbeddedString) applyFilters(ctx *expansion.Context, items []*expansion.Expansion, pos int) ([]*expansion.Expansion, bool, error) {
	filters := s.filtersAt(pos)
	if len(filters) == 0 {
		return items, false, nil
	}

	all := expansion.New()
	for _, item := range items {
		all.Add(item.Value(0))
	}
	scope := expansion.NewContext(ctx)
	scope.AddExpansion(all)

	for _, f := range filters {
		var err error
		if f.Type == NodeReduce {
			items, err = s.reduce(scope, items, f)
		} else {
			items, err = s.mapItems(scope, items, f)
		}
		if err != nil {
			return nil, true, err
		}
		s.logger.Debug("Filter applied.", "type", f.Type.String(), "position", pos, "items", len(items))
	}
	return items, true, nil
}

// reduce folds items through the filter body. Each step sees the
// accumulator as @0 and the next element as @1.
func (s *EmbeddedString) reduce(scope *expansion.Context, items []*expansion.Expansion, f *Node) ([]*expansion.Expansion, error) {
	if len(items) == 0 {
		return []*expansion.Expansion{expansion.NewOne("")}, nil
	}

	acc := items[0].Value(0)
	for _, item := range items[1:] {
		step := expansion.NewContext(scope)
		step.AddExpansion(expansion.New(acc, item.Value(0)))

		var err error
		if acc, _, err = s.evaluate(f, step, 0); err != nil {
			return nil, err
		}
	}
	return []*expansion.Expansion{expansion.NewOne(acc)}, nil
}

// mapItems replaces every element by the filter body evaluated with the
// element as the current expansion.
func (s *EmbeddedString) mapItems(scope *expansion.Context, items []*expansion.Expansion, f *Node) ([]*expansion.Expansion, error) {
	out := make([]*expansion.Expansion, 0, len(items))
	for _, item := range items {
		step := expansion.NewContext(scope)
		step.AddExpansion(item)

		text, _, err := s.evaluate(f, step, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, expansion.NewOne(text))
	}
	return out, nil
}
