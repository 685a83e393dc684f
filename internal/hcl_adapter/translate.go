package hcl_adapter

import (
	"context"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/netmacro/internal/config"
	"github.com/specialistvlad/netmacro/internal/ctxlog"
)

func (l *Loader) translateDefine(block *defineBlock) (*config.Define, hcl.Diagnostics) {
	value, diags := exprText(block.Value)
	return &config.Define{Name: block.Name, Value: value}, diags
}

func (l *Loader) translateNode(ctx context.Context, block *nodeBlock) (*config.Node, hcl.Diagnostics) {
	props, diags := bodyAttributes(block.Remain)
	ctxlog.FromContext(ctx).Debug("Translated node block.", "id", block.ID, "properties", len(props))

	return &config.Node{
		ID:         config.Text{Value: block.ID, Range: block.IDRange},
		Properties: props,
	}, diags
}

func (l *Loader) translateEdge(ctx context.Context, block *edgeBlock) (*config.Edge, hcl.Diagnostics) {
	from, diags := exprText(block.From)
	to, moreDiags := exprText(block.To)
	diags = append(diags, moreDiags...)
	equations, moreDiags := bodyAttributes(block.Remain)
	diags = append(diags, moreDiags...)
	ctxlog.FromContext(ctx).Debug("Translated edge block.", "id", block.ID, "equations", len(equations))

	return &config.Edge{
		ID:        config.Text{Value: block.ID, Range: block.IDRange},
		From:      from,
		To:        to,
		Equations: equations,
	}, diags
}

// exprText evaluates a constant expression into its string form. Numbers
// and bools are converted, anything referencing variables is an error.
func exprText(expr hcl.Expression) (config.Text, hcl.Diagnostics) {
	var value string
	diags := gohcl.DecodeExpression(expr, nil, &value)
	return config.Text{Value: value, Range: expr.Range()}, diags
}

// bodyAttributes returns the attributes of body as config attributes,
// ordered as they appear in the source.
func bodyAttributes(body hcl.Body) ([]*config.Attribute, hcl.Diagnostics) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	out := make([]*config.Attribute, 0, len(ordered))
	for _, attr := range ordered {
		value, moreDiags := exprText(attr.Expr)
		diags = append(diags, moreDiags...)
		out = append(out, &config.Attribute{Name: attr.Name, Value: value})
	}
	return out, diags
}
