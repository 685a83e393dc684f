package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/netmacro/internal/builder"
	"github.com/specialistvlad/netmacro/internal/ctxlog"
	"github.com/specialistvlad/netmacro/internal/expansion"
	"github.com/specialistvlad/netmacro/internal/macro"
	"github.com/specialistvlad/netmacro/internal/network"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.Expression != "" {
		return a.runExpression(ctx)
	}

	ctx = ctxlog.With(ctx, "model", a.config.ModelPath)
	model, err := a.loader.Load(ctx, a.config.ModelPath)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	defines, nodes, edges := model.Counts()
	a.logger.Debug("Model loaded.", "defines", defines, "nodes", nodes, "edges", edges)

	b := builder.New(
		builder.WithCalculator(a.calc),
		builder.WithDefines(a.config.Defines),
	)
	net, err := b.Build(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to build network: %w", err)
	}

	err = a.withOutput(func(w io.Writer) error {
		if a.config.Format == FormatText {
			return network.WriteText(ctx, w, net)
		}
		return network.WriteHCL(ctx, w, net)
	})
	if err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// runExpression expands a single macro in a root context seeded with the
// configured defines and prints one alternative per line.
func (a *App) runExpression(ctx context.Context) error {
	root := expansion.NewContext(nil)
	defines := make(map[string]*expansion.Expansion, len(a.config.Defines))
	for name, value := range a.config.Defines {
		defines[name] = expansion.NewOne(value)
	}
	root.AddDefines(defines)

	s, err := macro.Parse(a.config.Expression,
		macro.WithCalculator(a.calc),
		macro.WithLogger(ctxlog.FromContext(ctx)),
	)
	if err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}

	items, err := s.ExpandMultiple(root)
	if err != nil {
		return fmt.Errorf("failed to expand expression: %w", err)
	}

	var dump strings.Builder
	if err := root.Dump(&dump); err == nil {
		a.logger.Debug("Expression expanded.", "alternatives", len(items), "context", dump.String())
	}

	return a.withOutput(func(w io.Writer) error {
		for _, item := range items {
			if _, err := fmt.Fprintln(w, item.Value(0)); err != nil {
				return err
			}
		}
		return nil
	})
}

// withOutput calls fn with the configured destination, creating the output
// file when one is set.
func (a *App) withOutput(fn func(w io.Writer) error) error {
	if a.config.Output == "" || a.config.Output == "-" {
		return fn(a.outW)
	}

	f, err := os.Create(a.config.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", a.config.Output, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", a.config.Output, err)
	}
	a.logger.Info("Output written.", "path", a.config.Output)
	return nil
}
