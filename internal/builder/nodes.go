package builder

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/netmacro/internal/config"
	"github.com/specialistvlad/netmacro/internal/ctxlog"
	"github.com/specialistvlad/netmacro/internal/expansion"
	"github.com/specialistvlad/netmacro/internal/network"
)

// createNodes populates the network with one node per alternative of each
// node template.
func (b *DefaultBuilder) createNodes(ctx context.Context, root *expansion.Context, nodes []*config.Node, net *network.Network) hcl.Diagnostics {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting node creation pass.", "template_count", len(nodes))

	var diags hcl.Diagnostics
	for _, tmpl := range nodes {
		idString, diag := b.parse(ctx, tmpl.ID)
		if diag != nil {
			diags = append(diags, diag)
			continue
		}
		props, moreDiags := b.parseAttributes(ctx, tmpl.Properties)
		if moreDiags.HasErrors() {
			diags = append(diags, moreDiags...)
			continue
		}

		ids, err := idString.ExpandMultiple(root)
		if err != nil {
			diags = append(diags, macroDiagnostic(err, tmpl.ID.Range))
			continue
		}
		logger.Debug("Expanded node template.", "template", tmpl.ID.Value, "count", len(ids))

		for _, id := range ids {
			scope := scopeFor(root, id)
			node := &network.Node{ID: id.Value(0)}

			values, moreDiags := expandAttributes(scope, props)
			if moreDiags.HasErrors() {
				diags = append(diags, moreDiags...)
				continue
			}
			node.Properties = values

			if err := net.AddNode(ctx, node); err != nil {
				diags = append(diags, errorDiagnostic("Invalid node", err, tmpl.ID.Range))
				continue
			}
			logger.Debug("Created node.", "id", node.ID, "property_count", len(node.Properties))
		}
	}
	return diags
}

// expandAttributes expands every attribute in scope, in order.
func expandAttributes(scope *expansion.Context, attrs []parsedAttribute) ([]network.Property, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	out := make([]network.Property, 0, len(attrs))
	for _, attr := range attrs {
		value, err := attr.str.Expand(scope)
		if err != nil {
			diags = append(diags, macroDiagnostic(err, attr.text.Range))
			continue
		}
		out = append(out, network.Property{Name: attr.name, Value: value})
	}
	return out, diags
}
