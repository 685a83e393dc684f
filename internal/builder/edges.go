package builder

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/netmacro/internal/config"
	"github.com/specialistvlad/netmacro/internal/ctxlog"
	"github.com/specialistvlad/netmacro/internal/expansion"
	"github.com/specialistvlad/netmacro/internal/network"
)

// createEdges links the nodes created in the previous pass.
func (b *DefaultBuilder) createEdges(ctx context.Context, root *expansion.Context, edges []*config.Edge, net *network.Network) hcl.Diagnostics {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting edge creation pass.", "template_count", len(edges))

	var diags hcl.Diagnostics
	for _, tmpl := range edges {
		idString, diag := b.parse(ctx, tmpl.ID)
		if diag != nil {
			diags = append(diags, diag)
			continue
		}
		fromString, diag := b.parse(ctx, tmpl.From)
		if diag != nil {
			diags = append(diags, diag)
			continue
		}
		toString, diag := b.parse(ctx, tmpl.To)
		if diag != nil {
			diags = append(diags, diag)
			continue
		}
		equations, moreDiags := b.parseAttributes(ctx, tmpl.Equations)
		if moreDiags.HasErrors() {
			diags = append(diags, moreDiags...)
			continue
		}

		ids, err := idString.ExpandMultiple(root)
		if err != nil {
			diags = append(diags, macroDiagnostic(err, tmpl.ID.Range))
			continue
		}
		logger.Debug("Expanded edge template.", "template", tmpl.ID.Value, "count", len(ids))

		for _, id := range ids {
			scope := scopeFor(root, id)

			froms, err := fromString.ExpandMultiple(scope)
			if err != nil {
				diags = append(diags, macroDiagnostic(err, tmpl.From.Range))
				continue
			}
			tos, err := toString.ExpandMultiple(scope)
			if err != nil {
				diags = append(diags, macroDiagnostic(err, tmpl.To.Range))
				continue
			}

			multiple := len(froms)*len(tos) > 1
			n := 0
			for _, from := range froms {
				for _, to := range tos {
					edge := &network.Edge{ID: id.Value(0), From: from.Value(0), To: to.Value(0)}
					if multiple {
						edge.ID = fmt.Sprintf("%s_%d", edge.ID, n)
					}
					n++

					// Each pair gets its own scope so counters in the
					// equations advance per edge.
					values, moreDiags := expandAttributes(scopeFor(root, id), equations)
					if moreDiags.HasErrors() {
						diags = append(diags, moreDiags...)
						continue
					}
					edge.Equations = values

					if err := net.AddEdge(ctx, edge); err != nil {
						diags = append(diags, errorDiagnostic("Invalid edge", err, tmpl.ID.Range))
						continue
					}
					logger.Debug("Created edge.", "id", edge.ID, "from", edge.From, "to", edge.To)
				}
			}
		}
	}
	return diags
}
