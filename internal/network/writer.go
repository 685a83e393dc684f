package network

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// WriteHCL renders the network as HCL node and edge blocks. Edge blocks
// carry from and to attributes followed by the equations.
func WriteHCL(ctx context.Context, w io.Writer, n *Network) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	first := true
	separate := func() {
		if !first {
			body.AppendNewline()
		}
		first = false
	}

	for _, node := range n.Nodes(ctx) {
		separate()
		block := body.AppendNewBlock("node", []string{node.ID})
		setProperties(block.Body(), node.Properties)
	}
	for _, edge := range n.Edges(ctx) {
		separate()
		block := body.AppendNewBlock("edge", []string{edge.ID})
		block.Body().SetAttributeValue("from", cty.StringVal(edge.From))
		block.Body().SetAttributeValue("to", cty.StringVal(edge.To))
		setProperties(block.Body(), edge.Equations)
	}

	if _, err := w.Write(hclwrite.Format(f.Bytes())); err != nil {
		return fmt.Errorf("failed to write HCL output: %w", err)
	}
	return nil
}

func setProperties(body *hclwrite.Body, props []Property) {
	for _, p := range props {
		body.SetAttributeValue(p.Name, cty.StringVal(p.Value))
	}
}

// WriteText renders the network one element per line, with properties
// indented below their owner.
func WriteText(ctx context.Context, w io.Writer, n *Network) error {
	bw := bufio.NewWriter(w)

	for _, node := range n.Nodes(ctx) {
		fmt.Fprintf(bw, "node %s\n", node.ID)
		writeProperties(bw, node.Properties)
	}
	for _, edge := range n.Edges(ctx) {
		fmt.Fprintf(bw, "edge %s: %s -> %s\n", edge.ID, edge.From, edge.To)
		writeProperties(bw, edge.Equations)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text output: %w", err)
	}
	return nil
}

func writeProperties(w io.Writer, props []Property) {
	for _, p := range props {
		fmt.Fprintf(w, "  %s = %s\n", p.Name, p.Value)
	}
}
