package builder

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/netmacro/internal/config"
	"github.com/specialistvlad/netmacro/internal/ctxlog"
	"github.com/specialistvlad/netmacro/internal/expansion"
	"github.com/specialistvlad/netmacro/internal/macro"
)

func (b *DefaultBuilder) seedDefines(ctx context.Context, root *expansion.Context, defines []*config.Define) hcl.Diagnostics {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting define seeding pass.", "override_count", len(b.defines))

	overrides := make(map[string]*expansion.Expansion, len(b.defines))
	for name, value := range b.defines {
		overrides[name] = expansion.NewOne(value)
	}
	root.AddDefines(overrides)

	var diags hcl.Diagnostics
	for _, def := range defines {
		if _, ok := b.defines[def.Name]; ok {
			logger.Debug("Define overridden, skipping model value.", "name", def.Name)
			continue
		}

		s, diag := b.parse(ctx, def.Value)
		if diag != nil {
			diags = append(diags, diag)
			continue
		}
		items, err := s.ExpandMultiple(root)
		if err != nil {
			diags = append(diags, macroDiagnostic(err, def.Value.Range))
			continue
		}

		value := collapse(items)
		root.AddDefine(def.Name, value)
		logger.Debug("Seeded define.", "name", def.Name, "value", value.String())
	}
	return diags
}

// collapse folds the alternatives of a define into one Expansion. A single
// alternative is kept whole.
func collapse(items []*expansion.Expansion) *expansion.Expansion {
	if len(items) == 1 {
		return items[0]
	}

	values := make([]string, 0, len(items))
	escaped := make([]string, 0, len(items))
	for _, item := range items {
		values = append(values, item.Value(0))
		escaped = append(escaped, macro.Escape(item.Value(0)))
	}
	return expansion.New(append([]string{strings.Join(escaped, ",")}, values...)...)
}
