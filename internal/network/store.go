package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Network stores nodes and edges using maps and a mutex for thread-safe
// concurrent access. Iteration follows insertion order.
type Network struct {
	mu        sync.RWMutex
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[string]*Edge
	edgeOrder []string
	outgoing  map[string][]string // Key: node ID, Value: IDs of edges leaving it
}

// New creates a new, empty network.
func New() *Network {
	return &Network{
		nodes:    make(map[string]*Node),
		edges:    make(map[string]*Edge),
		outgoing: make(map[string][]string),
	}
}

// AddNode adds a new node. Node IDs are unique within a network.
func (n *Network) AddNode(ctx context.Context, node *Node) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if node.ID == "" {
		return errors.New("node ID must not be empty")
	}
	if _, exists := n.nodes[node.ID]; exists {
		return fmt.Errorf("node '%s' is already defined", node.ID)
	}
	n.nodes[node.ID] = node
	n.nodeOrder = append(n.nodeOrder, node.ID)
	return nil
}

// AddEdge adds a new edge. Both endpoints must already exist.
func (n *Network) AddEdge(ctx context.Context, edge *Edge) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if edge.ID == "" {
		return errors.New("edge ID must not be empty")
	}
	if _, exists := n.edges[edge.ID]; exists {
		return fmt.Errorf("edge '%s' is already defined", edge.ID)
	}
	if _, exists := n.nodes[edge.From]; !exists {
		return fmt.Errorf("edge '%s' source node '%s' not found in network", edge.ID, edge.From)
	}
	if _, exists := n.nodes[edge.To]; !exists {
		return fmt.Errorf("edge '%s' target node '%s' not found in network", edge.ID, edge.To)
	}

	n.edges[edge.ID] = edge
	n.edgeOrder = append(n.edgeOrder, edge.ID)
	n.outgoing[edge.From] = append(n.outgoing[edge.From], edge.ID)
	return nil
}

// Node retrieves a single node by its ID.
func (n *Network) Node(ctx context.Context, id string) (*Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	node, ok := n.nodes[id]
	return node, ok
}

// Nodes returns all nodes in insertion order.
func (n *Network) Nodes(ctx context.Context) []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()

	nodes := make([]*Node, 0, len(n.nodeOrder))
	for _, id := range n.nodeOrder {
		nodes = append(nodes, n.nodes[id])
	}
	return nodes
}

// Edges returns all edges in insertion order.
func (n *Network) Edges(ctx context.Context) []*Edge {
	n.mu.RLock()
	defer n.mu.RUnlock()

	edges := make([]*Edge, 0, len(n.edgeOrder))
	for _, id := range n.edgeOrder {
		edges = append(edges, n.edges[id])
	}
	return edges
}

// EdgesFrom returns the edges leaving the given node.
func (n *Network) EdgesFrom(ctx context.Context, id string) ([]*Edge, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if _, exists := n.nodes[id]; !exists {
		return nil, fmt.Errorf("node '%s' not found in network", id)
	}

	ids := n.outgoing[id]
	edges := make([]*Edge, 0, len(ids))
	for _, edgeID := range ids {
		edges = append(edges, n.edges[edgeID])
	}
	return edges, nil
}

// Len returns the number of nodes and edges.
func (n *Network) Len() (nodes, edges int) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.nodes), len(n.edges)
}
