package graph

import (
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/uiact/actiongraph/internal/action"
)

// Walker samples one concrete executable path through a composite. Each Step
// call picks uniformly among the current node's outgoing edges, skips
// non-executable nodes without consuming a caller-visible step, and finishes
// either at the end sentinel (returned exactly once) or at a dead end
// (silent). Deterministic for a fixed seed. Not restartable: a fresh walk
// needs a new Walker.
type Walker struct {
	c          *Composite
	rng        *rand.Rand
	preference string
	walkID     string
	current    string
	finished   bool
}

// Walk starts a new sampling walk over the composite. labelPreference, when
// non-empty, restricts edge choice to labels containing it as a substring,
// falling back to the unfiltered set when nothing matches.
func (c *Composite) Walk(seed int64, labelPreference string) *Walker {
	return &Walker{
		c:          c,
		rng:        rand.New(rand.NewSource(seed)),
		preference: labelPreference,
		walkID:     uuid.NewString(),
		current:    c.startKey,
	}
}

// WalkID returns the walk correlation id.
func (w *Walker) WalkID() string { return w.walkID }

// Finished reports whether the walk has terminated.
func (w *Walker) Finished() bool { return w.finished }

// Step advances the walk and returns the next executable node. The second
// return is false once the walk is finished: after the end sentinel has been
// returned, or on a dead end. Skipping decorative nodes is an explicit loop,
// so long sentinel chains cannot grow the stack.
func (w *Walker) Step() (Node, bool) {
	if w.finished {
		return nil, false
	}

	for {
		candidates := w.candidates(w.current)
		if len(candidates) == 0 {
			// Dead end: normal, silent termination.
			w.finished = true
			w.c.logger.Debug("walk dead end",
				slog.String("walk_id", w.walkID),
				slog.String("at", w.current))
			return nil, false
		}

		edge := candidates[w.rng.Intn(len(candidates))]
		w.current = edge.To
		node := w.c.nodes[edge.To]

		if edge.To == w.c.endKey {
			w.finished = true
			return node, true
		}

		if executable(node) {
			w.c.logger.Debug("walk step",
				slog.String("walk_id", w.walkID),
				slog.String("node", node.ID()),
				slog.String("label", edge.Label))
			return node, true
		}
		// Non-executable: keep walking without surfacing a step.
	}
}

// Run drives the walk to exhaustion, collecting every executable node
// including the final end sentinel. maxSteps bounds the walk; zero means
// no bound beyond termination of the graph itself.
func (w *Walker) Run(maxSteps int) []Node {
	var out []Node
	for maxSteps <= 0 || len(out) < maxSteps {
		node, ok := w.Step()
		if !ok {
			break
		}
		out = append(out, node)
	}
	return out
}

// candidates returns the outgoing edges of key, filtered by the label
// preference when it matches at least one edge.
func (w *Walker) candidates(key string) []Edge {
	edges := w.c.out[key]
	if w.preference == "" {
		return edges
	}
	var filtered []Edge
	for _, e := range edges {
		if strings.Contains(e.Label, w.preference) {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return edges
	}
	return filtered
}

// executable reports whether a node is on the walker's allow-list.
func executable(n Node) bool {
	p, ok := n.(*action.Primitive)
	if !ok {
		return false
	}
	return action.Executable(p.Kind())
}
