package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all possible top-level blocks from a file.
type fileRoot struct {
	Defines []*defineBlock `hcl:"define,block"`
	Nodes   []*nodeBlock   `hcl:"node,block"`
	Edges   []*edgeBlock   `hcl:"edge,block"`
}

type defineBlock struct {
	Name  string         `hcl:"name,label"`
	Value hcl.Expression `hcl:"value"`
}

type nodeBlock struct {
	ID      string    `hcl:"id,label"`
	IDRange hcl.Range `hcl:"id,label_range"`
	Remain  hcl.Body  `hcl:",remain"`
}

type edgeBlock struct {
	ID      string         `hcl:"id,label"`
	IDRange hcl.Range      `hcl:"id,label_range"`
	From    hcl.Expression `hcl:"from"`
	To      hcl.Expression `hcl:"to"`
	Remain  hcl.Body       `hcl:",remain"`
}
