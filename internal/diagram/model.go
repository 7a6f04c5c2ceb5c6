package diagram

// NodeKind classifies a diagram node for shape and style selection.
type NodeKind string

const (
	NodeKindStart    NodeKind = "start"
	NodeKindEnd      NodeKind = "end"
	NodeKindAction   NodeKind = "action"
	NodeKindSentinel NodeKind = "sentinel" // inlined sub-graph boundary
)

// Model is the intermediate representation used by all renderers.
type Model struct {
	Title    string
	Vertical bool // top-to-bottom layout; false = left-to-right
	Nodes    []*Node
	Edges    []Edge
	Palette  map[string]string // origin label → fill color, set when grouping
}

// Node represents a single graph node in the diagram.
type Node struct {
	ID     string
	Label  string
	Kind   NodeKind
	Origin string // branch label that created the node, used for coloring
}

// Edge represents a labeled connection between two nodes.
type Edge struct {
	From  string
	To    string
	Label string
}
