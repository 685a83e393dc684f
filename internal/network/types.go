package network

// Property is a named, fully expanded value.
type Property struct {
	Name  string
	Value string
}

// Node is a single expanded node.
type Node struct {
	ID         string
	Properties []Property
}

// Edge is a single expanded edge between two nodes.
type Edge struct {
	ID        string
	From      string
	To        string
	Equations []Property
}
