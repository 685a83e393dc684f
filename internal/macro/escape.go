package macro

import (
	"strings"

	"github.com/specialistvlad/netmacro/internal/expansion"
)

// Escape prefixes every brace, comma and backslash in s with a backslash so
// that the brace pass reads s back as a single literal.
func Escape(s string) string {
	if !strings.ContainsAny(s, `{}\,`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '{', '}', '\\', ',':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ExpandEscape runs the interpolation pass and returns the text in the
// escaped form the brace pass would read, without enumerating brace
// groups. Filters registered for a group are applied and replace the
// group's elements.
func (s *EmbeddedString) ExpandEscape(ctx *expansion.Context) (string, error) {
	flat, err := s.Expand(ctx)
	if err != nil {
		return "", err
	}
	if flat == "" {
		return "", nil
	}

	root, err := parseBraces(flat)
	if err != nil {
		return "", err
	}
	text, _, err := s.escapeNode(ctx, root, false)
	return text, err
}

// escapeNode returns the escaped text of n. With withItems set it also
// returns the alternatives the brace pass yields for n, built in the same
// walk so nested filters run once.
func (s *EmbeddedString) escapeNode(ctx *expansion.Context, n *exNode, withItems bool) (string, []*expansion.Expansion, error) {
	switch n.typ {
	case exText:
		var items []*expansion.Expansion
		if withItems {
			items = []*expansion.Expansion{expansion.NewOne(n.text)}
		}
		return Escape(n.text), items, nil
	case exConcat:
		var (
			b     strings.Builder
			items []*expansion.Expansion
		)
		for i, child := range n.children {
			text, childItems, err := s.escapeNode(ctx, child, withItems)
			if err != nil {
				return "", nil, err
			}
			b.WriteString(text)
			if withItems {
				items = product(items, childItems, i == 0)
			}
		}
		return b.String(), items, nil
	default:
		return s.escapeElements(ctx, n, withItems)
	}
}

// escapeElements writes group n back in braces. Alternatives are only
// enumerated when a filter of this group or the caller needs them.
func (s *EmbeddedString) escapeElements(ctx *expansion.Context, n *exNode, withItems bool) (string, []*expansion.Expansion, error) {
	collect := withItems || s.groupHasFilters(n)

	var (
		items []*expansion.Expansion
		texts []string
	)
	pos := n.begin

	for _, child := range n.children {
		var err error
		if items, texts, err = s.applyFiltersEscape(ctx, items, texts, pos); err != nil {
			return "", nil, err
		}

		text, childItems, err := s.escapeNode(ctx, child, collect)
		if err != nil {
			return "", nil, err
		}
		texts = append(texts, text)
		if collect {
			items = append(items, expandItems(childItems)...)
		}
		pos = child.end
	}

	items, texts, err := s.applyFiltersEscape(ctx, items, texts, pos)
	if err != nil {
		return "", nil, err
	}
	if withItems {
		annotate(items)
	}
	return "{" + strings.Join(texts, ",") + "}", items, nil
}

func (s *EmbeddedString) applyFiltersEscape(ctx *expansion.Context, items []*expansion.Expansion, texts []string, pos int) ([]*expansion.Expansion, []string, error) {
	filtered, applied, err := s.applyFilters(ctx, items, pos)
	if err != nil || !applied {
		return filtered, texts, err
	}
	texts = make([]string, len(filtered))
	for i, item := range filtered {
		texts[i] = Escape(item.Value(0))
	}
	return filtered, texts, nil
}
