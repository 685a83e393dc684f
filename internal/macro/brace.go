package macro

import "strings"

type exNodeType int

const (
	exText exNodeType = iota
	exConcat
	exElements
)

// exNode is a node of the brace tree built from a flat string. begin and
// end are byte offsets of the delimiters that opened and closed the node.
type exNode struct {
	typ      exNodeType
	parent   *exNode
	children []*exNode
	text     string
	begin    int
	end      int
}

func (n *exNode) add(typ exNodeType, text string, begin int) *exNode {
	child := &exNode{typ: typ, parent: n, text: text, begin: begin}
	n.children = append(n.children, child)
	return child
}

// parseBraces builds the brace tree of text. Backslash escapes the next
// byte; a trailing backslash is kept. Commas and closing braces outside of
// any group are plain text.
func parseBraces(text string) (*exNode, error) {
	root := &exNode{typ: exConcat}
	current := root
	var buf strings.Builder

	flush := func() {
		current.add(exText, buf.String(), 0)
		buf.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\\':
			if i+1 < len(text) {
				i++
				buf.WriteByte(text[i])
			} else {
				buf.WriteByte('\\')
			}
		case '{':
			flush()
			elements := current.add(exElements, "", i)
			current = elements.add(exConcat, "", i)
		case '}':
			if current.parent == nil {
				buf.WriteByte(c)
				break
			}
			flush()
			current.end = i
			current.parent.end = i
			current = current.parent.parent
		case ',':
			if current.parent == nil {
				buf.WriteByte(c)
				break
			}
			flush()
			current.end = i
			current = current.parent.add(exConcat, "", i)
		default:
			buf.WriteByte(c)
		}
	}

	if current != root {
		return nil, ErrUnbalancedBraces
	}
	flush()
	return root, nil
}
