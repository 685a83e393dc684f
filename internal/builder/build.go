package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/netmacro/internal/config"
	"github.com/specialistvlad/netmacro/internal/ctxlog"
	"github.com/specialistvlad/netmacro/internal/expansion"
	"github.com/specialistvlad/netmacro/internal/network"
)

// Build implements the Builder interface.
func (b *DefaultBuilder) Build(ctx context.Context, model *config.Model) (*network.Network, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting network construction.")

	if model == nil {
		model = &config.Model{}
	}
	root := expansion.NewContext(nil)
	net := network.New()

	// First pass: seed the root context.
	if diags := b.seedDefines(ctx, root, model.Defines); diags.HasErrors() {
		return nil, fmt.Errorf("failed to expand defines: %w", diags)
	}
	logger.Debug("Build: Define seeding complete.", "define_count", len(root.LocalDefines()))

	// Second pass: nodes.
	if diags := b.createNodes(ctx, root, model.Nodes, net); diags.HasErrors() {
		return nil, fmt.Errorf("failed to expand nodes: %w", diags)
	}
	nodeCount, _ := net.Len()
	logger.Debug("Build: Node creation complete.", "node_count", nodeCount)

	// Third pass: edges.
	if diags := b.createEdges(ctx, root, model.Edges, net); diags.HasErrors() {
		return nil, fmt.Errorf("failed to expand edges: %w", diags)
	}

	nodeCount, edgeCount := net.Len()
	logger.Info("Build: Network construction successful.", "nodes", nodeCount, "edges", edgeCount)
	return net, nil
}

// scopeFor returns a child of root holding e as its current expansion. The
// child shares the root define table.
func scopeFor(root *expansion.Context, e *expansion.Expansion) *expansion.Context {
	scope := expansion.NewContext(root)
	scope.ShareDefines(root)
	scope.AddExpansion(e)
	return scope
}
