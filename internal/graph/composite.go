// Package graph provides the composition engine: composite actions own a
// node map, an edge list and start/end sentinels, support alternative labeled
// branches between the sentinels, inline sub-graphs, extend from their leaves,
// and sample one concrete executable path.
package graph

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/uiact/actiongraph/internal/action"
	"github.com/uiact/actiongraph/pkg/schema"
)

// Sentinel name suffixes. Sentinels are inert primitives delimiting a
// composite's graph boundary.
const (
	StartSuffix = "__start__"
	EndSuffix   = "__end__"
)

// Node is any element a composite graph can hold: a primitive action or
// another composite.
type Node interface {
	ID() string
	Name() string
	Kind() string
}

// KindComposite is the Kind() of a Composite node.
const KindComposite = "composite"

// Edge connects two graph-local node keys under a branch label.
// The label names the AddPath call that created the edge.
type Edge struct {
	From  string
	To    string
	Label string
}

// Composite is a reusable recipe expressed as a directed graph with possibly
// multiple alternative branches between a shared start and end sentinel.
// Construction never deletes nodes or edges; only slot contents mutate later.
// Not safe for concurrent mutation; builds must be externally serialized.
type Composite struct {
	id          string
	name        string
	description string

	nodes     map[string]Node // graph-local key → node
	nodeOrder []string        // insertion order, for deterministic traversal
	edges     []Edge
	edgeSet   map[Edge]struct{}
	out       map[string][]Edge // adjacency in insertion order

	startKey string
	endKey   string
	start    *action.Primitive
	end      *action.Primitive

	alloc  action.Allocator
	logger *slog.Logger
}

// CompositeOption configures a Composite at construction time.
type CompositeOption func(*Composite)

// WithAllocator sets the id allocator for the composite and its sentinels.
func WithAllocator(alloc action.Allocator) CompositeOption {
	return func(c *Composite) { c.alloc = alloc }
}

// WithDescription sets a human-readable description.
func WithDescription(description string) CompositeOption {
	return func(c *Composite) { c.description = description }
}

// WithLogger sets the composite logger.
func WithLogger(logger *slog.Logger) CompositeOption {
	return func(c *Composite) { c.logger = logger }
}

// NewComposite creates an empty composite with fresh start/end sentinels.
func NewComposite(name string, opts ...CompositeOption) *Composite {
	c := &Composite{
		name:    name,
		nodes:   make(map[string]Node),
		edgeSet: make(map[Edge]struct{}),
		out:     make(map[string][]Edge),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.alloc == nil {
		c.alloc = action.DefaultAllocator()
	}

	c.id = c.alloc.Next(KindComposite)
	if c.name == "" {
		c.name = c.id
	}

	c.start = action.NewPrimitive(action.KindSentinel, c.alloc, nil,
		action.WithName(c.name+StartSuffix))
	c.end = action.NewPrimitive(action.KindSentinel, c.alloc, nil,
		action.WithName(c.name+EndSuffix))

	c.startKey = c.addNode(c.start)
	c.endKey = c.addNode(c.end)
	return c
}

// ID returns the composite identity.
func (c *Composite) ID() string { return c.id }

// Name returns the composite name.
func (c *Composite) Name() string { return c.name }

// Kind returns "composite".
func (c *Composite) Kind() string { return KindComposite }

// Description returns the human-readable description.
func (c *Composite) Description() string { return c.description }

// Start returns the start sentinel.
func (c *Composite) Start() *action.Primitive { return c.start }

// End returns the end sentinel.
func (c *Composite) End() *action.Primitive { return c.end }

// StartKey returns the graph-local key of the start sentinel.
func (c *Composite) StartKey() string { return c.startKey }

// EndKey returns the graph-local key of the end sentinel.
func (c *Composite) EndKey() string { return c.endKey }

// Keys returns graph-local node keys in insertion order.
func (c *Composite) Keys() []string {
	out := make([]string, len(c.nodeOrder))
	copy(out, c.nodeOrder)
	return out
}

// NodeByKey returns the node stored under a graph-local key.
func (c *Composite) NodeByKey(key string) Node {
	return c.nodes[key]
}

// Edges returns a copy of the edge list in insertion order.
func (c *Composite) Edges() []Edge {
	out := make([]Edge, len(c.edges))
	copy(out, c.edges)
	return out
}

// Outgoing returns the outgoing edges of a graph-local key in insertion order.
func (c *Composite) Outgoing(key string) []Edge {
	edges := c.out[key]
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// AddPath installs one more alternative branch between start and end: every
// sequence element is wired left to right, composites are inlined, and the
// last element gets an edge to the end sentinel. Elements that are neither a
// primitive nor a composite fail fast before the graph is touched.
func (c *Composite) AddPath(label string, seq ...Node) error {
	if err := validateSequence(seq); err != nil {
		return err
	}

	current := c.startKey
	for _, el := range seq {
		current = c.attach(current, el, label)
	}
	c.addEdge(Edge{From: current, To: c.endKey, Label: label})

	c.logger.Debug("added branch",
		slog.String("composite", c.id),
		slog.String("label", label),
		slog.Int("length", len(seq)))
	return nil
}

// AppendPath fans every current leaf out to the head of a new chain,
// extending all branches uniformly. The chain is not wired to end; callers
// seal the graph with CommitEnd. On a fully sealed graph the extension
// attaches to the predecessors of the end sentinel.
func (c *Composite) AppendPath(label string, seq ...Node) error {
	if err := validateSequence(seq); err != nil {
		return err
	}
	if len(seq) == 0 {
		return nil
	}

	heads := c.attachPoints()
	current := c.attachFanOut(heads, seq[0], label)
	for _, el := range seq[1:] {
		current = c.attach(current, el, label)
	}
	return nil
}

// AppendGraph fans every current leaf out to a single node or sub-graph.
// Like AppendPath it does not rewire to end.
func (c *Composite) AppendGraph(label string, el Node) error {
	return c.AppendPath(label, el)
}

// CommitEnd wires every current leaf to the end sentinel, sealing the graph.
func (c *Composite) CommitEnd() {
	for _, leaf := range c.leafKeys() {
		c.addEdge(Edge{From: leaf, To: c.endKey, Label: "end"})
	}
}

// FindLeaves returns nodes reachable from start that have no outgoing edges,
// in depth-first visit order. The end sentinel is excluded by default since
// the node feeding into it is the meaningful leaf.
func (c *Composite) FindLeaves(excludeEnd bool) []Node {
	keys := c.findLeafKeys(excludeEnd)
	out := make([]Node, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.nodes[k])
	}
	return out
}

// leafKeys is FindLeaves(true) over keys.
func (c *Composite) leafKeys() []string {
	return c.findLeafKeys(true)
}

// findLeafKeys runs an iterative depth-first traversal from start collecting
// keys with zero outgoing edges.
func (c *Composite) findLeafKeys(excludeEnd bool) []string {
	var leaves []string
	visited := map[string]bool{}
	stack := []string{c.startKey}

	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[key] {
			continue
		}
		visited[key] = true

		next := c.out[key]
		if len(next) == 0 {
			if excludeEnd && key == c.endKey {
				continue
			}
			leaves = append(leaves, key)
			continue
		}
		// Push in reverse so edges are visited in insertion order.
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i].To)
		}
	}
	return leaves
}

// attachPoints returns the keys an extension fans out from: the current
// leaves, or the predecessors of end when the graph is fully sealed.
func (c *Composite) attachPoints() []string {
	if leaves := c.leafKeys(); len(leaves) > 0 {
		return leaves
	}
	var preds []string
	seen := map[string]bool{}
	for _, e := range c.edges {
		if e.To == c.endKey && !seen[e.From] {
			seen[e.From] = true
			preds = append(preds, e.From)
		}
	}
	return preds
}

// attach wires el after the cursor key and returns the new cursor.
// Composites are inlined: their nodes and edges are spliced in under a fresh
// namespace, the cursor gets an edge to their start, and the new cursor is
// their end.
func (c *Composite) attach(current string, el Node, label string) string {
	switch n := el.(type) {
	case *Composite:
		startKey, endKey := c.inline(n)
		c.addEdge(Edge{From: current, To: startKey, Label: label})
		return endKey
	default:
		key := c.addNode(el)
		c.addEdge(Edge{From: current, To: key, Label: label})
		return key
	}
}

// attachFanOut wires el after every head and returns the new cursor. The
// element is added once; each head gets an edge to it.
func (c *Composite) attachFanOut(heads []string, el Node, label string) string {
	switch n := el.(type) {
	case *Composite:
		startKey, endKey := c.inline(n)
		for _, h := range heads {
			c.addEdge(Edge{From: h, To: startKey, Label: label})
		}
		return endKey
	default:
		key := c.addNode(el)
		for _, h := range heads {
			c.addEdge(Edge{From: h, To: key, Label: label})
		}
		return key
	}
}

// inline splices a sub-composite's nodes and edges into this graph under a
// per-splice namespace, so the same composite instantiated twice cannot
// collide. Its sentinels become ordinary interior nodes. Returns the
// graph-local keys of the spliced start and end.
func (c *Composite) inline(sub *Composite) (string, string) {
	ns := sub.id + "@" + uuid.NewString()[:8] + "/"

	for _, key := range sub.nodeOrder {
		c.putNode(ns+key, sub.nodes[key])
	}
	for _, e := range sub.edges {
		c.addEdge(Edge{From: ns + e.From, To: ns + e.To, Label: e.Label})
	}

	c.logger.Debug("inlined sub-graph",
		slog.String("composite", c.id),
		slog.String("sub", sub.id),
		slog.Int("nodes", len(sub.nodeOrder)))
	return ns + sub.startKey, ns + sub.endKey
}

// addNode stores a node under its own id, keeping the first insertion when
// the same node participates in several branches.
func (c *Composite) addNode(n Node) string {
	key := n.ID()
	c.putNode(key, n)
	return key
}

func (c *Composite) putNode(key string, n Node) {
	if _, exists := c.nodes[key]; exists {
		return
	}
	c.nodes[key] = n
	c.nodeOrder = append(c.nodeOrder, key)
}

// addEdge inserts an edge unless the identical (from, to, label) triple is
// already present.
func (c *Composite) addEdge(e Edge) {
	if _, dup := c.edgeSet[e]; dup {
		return
	}
	c.edgeSet[e] = struct{}{}
	c.edges = append(c.edges, e)
	c.out[e.From] = append(c.out[e.From], e)
}

// validateSequence rejects sequences containing anything that is not a
// primitive or composite action, before any graph mutation.
func validateSequence(seq []Node) error {
	for i, el := range seq {
		switch el.(type) {
		case *action.Primitive:
		case *Composite:
		default:
			return schema.NewErrorf(schema.ErrCodeMalformedSequence,
				"sequence element %d is %T, want primitive or composite action", i, el)
		}
	}
	return nil
}

// IsSentinel reports whether a node is a start or end sentinel by the name
// suffix convention.
func IsSentinel(n Node) bool {
	return strings.HasSuffix(n.Name(), StartSuffix) || strings.HasSuffix(n.Name(), EndSuffix)
}
