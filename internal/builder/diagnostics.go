package builder

import (
	"context"
	"errors"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/netmacro/internal/config"
	"github.com/specialistvlad/netmacro/internal/ctxlog"
	"github.com/specialistvlad/netmacro/internal/macro"
)

func errorDiagnostic(summary string, err error, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   err.Error(),
		Subject:  rng.Ptr(),
	}
}

// macroDiagnostic picks a summary matching the kind of macro failure.
func macroDiagnostic(err error, rng hcl.Range) *hcl.Diagnostic {
	summary := "Macro expansion failed"
	switch {
	case errors.Is(err, macro.ErrSyntax):
		summary = "Invalid macro syntax"
	case errors.Is(err, macro.ErrInvalidExpansion):
		summary = "Unknown expansion"
	case errors.Is(err, macro.ErrCompute):
		summary = "Invalid equation"
	case errors.Is(err, macro.ErrUnbalancedBraces):
		summary = "Unbalanced braces"
	}
	return errorDiagnostic(summary, err, rng)
}

// parse builds the embedded string for an authored text.
func (b *DefaultBuilder) parse(ctx context.Context, text config.Text) (*macro.EmbeddedString, *hcl.Diagnostic) {
	s, err := macro.Parse(text.Value,
		macro.WithCalculator(b.calc),
		macro.WithLogger(ctxlog.FromContext(ctx)),
		macro.WithRange(text.Range),
	)
	if err != nil {
		return nil, macroDiagnostic(err, text.Range)
	}
	return s, nil
}

type parsedAttribute struct {
	name string
	text config.Text
	str  *macro.EmbeddedString
}

func (b *DefaultBuilder) parseAttributes(ctx context.Context, attrs []*config.Attribute) ([]parsedAttribute, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	out := make([]parsedAttribute, 0, len(attrs))
	for _, attr := range attrs {
		s, diag := b.parse(ctx, attr.Value)
		if diag != nil {
			diags = append(diags, diag)
			continue
		}
		out = append(out, parsedAttribute{name: attr.Name, text: attr.Value, str: s})
	}
	return out, diags
}
