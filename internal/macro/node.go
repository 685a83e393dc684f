package macro

import "fmt"

// NodeType identifies the kind of a Node.
type NodeType int

const (
	NodeText NodeType = iota
	NodeEquation
	NodeCondition
	NodeIndirection
	NodeMap
	NodeReduce
)

func (t NodeType) String() string {
	switch t {
	case NodeText:
		return "text"
	case NodeEquation:
		return "equation"
	case NodeCondition:
		return "condition"
	case NodeIndirection:
		return "indirection"
	case NodeMap:
		return "map"
	case NodeReduce:
		return "reduce"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is an element of the interpolation tree. Text is only meaningful
// for NodeText. Children are kept in document order.
type Node struct {
	Type     NodeType
	Text     string
	Depth    int
	Children []*Node
}

func (n *Node) isFilter() bool {
	return n.Type == NodeMap || n.Type == NodeReduce
}

func (n *Node) copy() *Node {
	c := &Node{Type: n.Type, Text: n.Text, Depth: n.Depth}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.copy()
		}
	}
	return c
}
