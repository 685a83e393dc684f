package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/netmacro/internal/config"
	"github.com/specialistvlad/netmacro/internal/ctxlog"
	"github.com/specialistvlad/netmacro/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and merges the blocks into one
// model. Directories are walked recursively in lexical order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		fileModel, diags := l.decode(ctx, hclFile)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		model.Merge(fileModel)
	}

	defines, nodes, edges := model.Counts()
	logger.Debug("HCL loading complete.", "defines", defines, "nodes", nodes, "edges", edges)
	return model, nil
}

// Parse decodes a single in-memory HCL source. filename is only used for
// source ranges.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	model, diags := l.decode(ctx, hclFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return model, nil
}

func (l *Loader) decode(ctx context.Context, file *hcl.File) (*config.Model, hcl.Diagnostics) {
	var root fileRoot
	diags := gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, diags
	}

	model := &config.Model{}
	for _, block := range root.Defines {
		def, moreDiags := l.translateDefine(block)
		diags = append(diags, moreDiags...)
		model.Defines = append(model.Defines, def)
	}
	for _, block := range root.Nodes {
		node, moreDiags := l.translateNode(ctx, block)
		diags = append(diags, moreDiags...)
		model.Nodes = append(model.Nodes, node)
	}
	for _, block := range root.Edges {
		edge, moreDiags := l.translateEdge(ctx, block)
		diags = append(diags, moreDiags...)
		model.Edges = append(model.Edges, edge)
	}
	return model, diags
}
