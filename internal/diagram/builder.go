package diagram

import (
	"fmt"

	"github.com/uiact/actiongraph/internal/graph"
)

// Options controls diagram construction.
type Options struct {
	Vertical      bool // top-to-bottom instead of left-to-right
	GroupByOrigin bool // color nodes by the branch label that created them
}

// originPalette is the fixed color cycle for provenance grouping.
var originPalette = []string{
	"#1a5276", "#2d6a2d", "#b7791a", "#6c3483", "#8b1a1a", "#148f77",
}

// Build constructs a Model from the composite's current graph state.
// It is a pure function of the graph: no mutation, no I/O.
func Build(c *graph.Composite, opts Options) *Model {
	keys := c.Keys()
	edges := c.Edges()

	// Provenance: the label of the first edge that reaches each node.
	origin := make(map[string]string, len(keys))
	for _, e := range edges {
		if _, seen := origin[e.To]; !seen {
			origin[e.To] = e.Label
		}
	}

	model := &Model{
		Title:    c.Name(),
		Vertical: opts.Vertical,
	}

	for _, key := range keys {
		dn := &Node{
			ID:    key,
			Label: nodeLabel(c, key),
			Kind:  nodeKind(c, key),
		}
		if opts.GroupByOrigin {
			dn.Origin = origin[key]
		}
		model.Nodes = append(model.Nodes, dn)
	}

	for _, e := range edges {
		model.Edges = append(model.Edges, Edge{From: e.From, To: e.To, Label: e.Label})
	}

	if opts.GroupByOrigin {
		model.Palette = buildPalette(model.Nodes)
	}
	return model
}

// nodeKind classifies a graph-local key for styling.
func nodeKind(c *graph.Composite, key string) NodeKind {
	switch key {
	case c.StartKey():
		return NodeKindStart
	case c.EndKey():
		return NodeKindEnd
	}
	if graph.IsSentinel(c.NodeByKey(key)) {
		return NodeKindSentinel
	}
	return NodeKindAction
}

// nodeLabel creates a human-readable label for a node.
func nodeLabel(c *graph.Composite, key string) string {
	n := c.NodeByKey(key)
	switch key {
	case c.StartKey():
		return "Start"
	case c.EndKey():
		return "End"
	}
	if n.Name() != n.ID() {
		return fmt.Sprintf("%s\n(%s)", n.Name(), n.Kind())
	}
	return fmt.Sprintf("%s\n(%s)", n.ID(), n.Kind())
}

// buildPalette assigns a color to each distinct non-empty origin, cycling
// through the fixed palette in first-seen order.
func buildPalette(nodes []*Node) map[string]string {
	palette := make(map[string]string)
	i := 0
	for _, n := range nodes {
		if n.Origin == "" {
			continue
		}
		if _, ok := palette[n.Origin]; ok {
			continue
		}
		palette[n.Origin] = originPalette[i%len(originPalette)]
		i++
	}
	return palette
}
