package config

import "github.com/hashicorp/hcl/v2"

// Model is the unified, format-agnostic representation of an authored
// network before any macro is expanded.
type Model struct {
	Defines []*Define
	Nodes   []*Node
	Edges   []*Edge
}

// Text is an authored macro string and the place it was written.
type Text struct {
	Value string
	Range hcl.Range
}

// Define is a named value seeded into the root expansion context.
type Define struct {
	Name  string
	Value Text
}

// Attribute is a named macro string on a node or an edge.
type Attribute struct {
	Name  string
	Value Text
}

// Node is a node template. Its ID may expand to any number of nodes.
type Node struct {
	ID         Text
	Properties []*Attribute
}

// Edge is an edge template. ID, From and To may each expand to several
// values.
type Edge struct {
	ID        Text
	From      Text
	To        Text
	Equations []*Attribute
}

// Counts returns the number of defines, node templates and edge templates
// in the model.
func (m *Model) Counts() (defines, nodes, edges int) {
	if m == nil {
		return 0, 0, 0
	}
	return len(m.Defines), len(m.Nodes), len(m.Edges)
}

// Merge appends the contents of other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Defines = append(m.Defines, other.Defines...)
	m.Nodes = append(m.Nodes, other.Nodes...)
	m.Edges = append(m.Edges, other.Edges...)
}
