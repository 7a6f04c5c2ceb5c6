package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uiact/actiongraph/internal/action"
	"github.com/uiact/actiongraph/pkg/schema"
)

func click(alloc action.Allocator, target string) *action.Primitive {
	return action.NewPrimitive(action.KindClick, alloc, map[string]any{"target": target})
}

func typeText(alloc action.Allocator, text string) *action.Primitive {
	return action.NewPrimitive(action.KindType, alloc, map[string]any{"text": text})
}

func TestComposite_Sentinels(t *testing.T) {
	c := NewComposite("save", WithAllocator(action.NewKindAllocator()))

	assert.Equal(t, "save__start__", c.Start().Name())
	assert.Equal(t, "save__end__", c.End().Name())
	assert.True(t, IsSentinel(c.Start()))
	assert.True(t, IsSentinel(c.End()))
	assert.Equal(t, KindComposite, c.Kind())
}

func TestComposite_AddPath_WiresSequence(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))

	a := click(alloc, "File menu")
	b := typeText(alloc, "report.txt")
	require.NoError(t, c.AddPath("menu", a, b))

	// Following only menu-labeled edges from start reproduces the sequence.
	cur := c.StartKey()
	var visited []string
	for cur != c.EndKey() {
		edges := c.Outgoing(cur)
		require.Len(t, edges, 1)
		assert.Equal(t, "menu", edges[0].Label)
		cur = edges[0].To
		visited = append(visited, cur)
	}
	assert.Equal(t, []string{a.ID(), b.ID(), c.EndKey()}, visited)
}

func TestComposite_AddPath_AlternativeBranches(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))

	require.NoError(t, c.AddPath("hotkey", typeText(alloc, "ctrl+s")))
	require.NoError(t, c.AddPath("menu", click(alloc, "File"), click(alloc, "Save")))

	out := c.Outgoing(c.StartKey())
	require.Len(t, out, 2, "each AddPath call installs one more alternative from start")
	assert.Equal(t, "hotkey", out[0].Label)
	assert.Equal(t, "menu", out[1].Label)
}

func TestComposite_AddPath_DuplicateNotReinserted(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))

	a := click(alloc, "OK")
	require.NoError(t, c.AddPath("ok", a))
	before := len(c.Edges())

	require.NoError(t, c.AddPath("ok", a))
	assert.Equal(t, before, len(c.Edges()), "identical (from,to,label) triples are deduplicated")
}

func TestComposite_StartEndInvariants(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))
	require.NoError(t, c.AddPath("a", click(alloc, "x")))
	require.NoError(t, c.AddPath("b", typeText(alloc, "y"), click(alloc, "z")))

	for _, e := range c.Edges() {
		assert.NotEqual(t, c.StartKey(), e.To, "start has no incoming edges")
		assert.NotEqual(t, c.EndKey(), e.From, "end has no outgoing edges")
	}
}

type bogusNode struct{}

func (bogusNode) ID() string   { return "bogus" }
func (bogusNode) Name() string { return "bogus" }
func (bogusNode) Kind() string { return "bogus" }

func TestComposite_AddPath_MalformedElementFailsFast(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))

	nodesBefore := len(c.Keys())
	err := c.AddPath("bad", click(alloc, "x"), bogusNode{})
	require.Error(t, err)

	var gErr *schema.GraphError
	require.True(t, errors.As(err, &gErr))
	assert.Equal(t, schema.ErrCodeMalformedSequence, gErr.Code)

	// Fail fast: no partially-wired graph.
	assert.Equal(t, nodesBefore, len(c.Keys()))
	assert.Empty(t, c.Edges())
}

func TestComposite_Inline_SplicesSubGraph(t *testing.T) {
	alloc := action.NewKindAllocator()

	sub := NewComposite("confirm", WithAllocator(alloc))
	require.NoError(t, sub.AddPath("button", click(alloc, "OK")))

	outer := NewComposite("save", WithAllocator(alloc))
	lead := typeText(alloc, "name")
	require.NoError(t, outer.AddPath("default", lead, sub))

	// Outer holds its own sentinels, the lead node, and the spliced copy of
	// the sub-graph (two sentinels + one click).
	assert.Len(t, outer.Keys(), 2+1+3)

	// The spliced start is reachable from the lead node; the spliced end
	// connects onward to the outer end.
	var toSubStart, fromSubEnd bool
	for _, e := range outer.Edges() {
		if e.From == lead.ID() {
			toSubStart = true
			assert.Contains(t, e.To, sub.StartKey())
		}
		if e.To == outer.EndKey() && e.From != lead.ID() {
			fromSubEnd = true
			assert.Contains(t, e.From, sub.EndKey())
		}
	}
	assert.True(t, toSubStart)
	assert.True(t, fromSubEnd)
}

func TestComposite_Inline_SameSubTwiceNoCollision(t *testing.T) {
	alloc := action.NewKindAllocator()

	sub := NewComposite("confirm", WithAllocator(alloc))
	require.NoError(t, sub.AddPath("button", click(alloc, "OK")))

	outer := NewComposite("save", WithAllocator(alloc))
	require.NoError(t, outer.AddPath("first", sub))
	require.NoError(t, outer.AddPath("second", sub))

	// Two distinct splices: each instantiation site gets its own namespace.
	assert.Len(t, outer.Keys(), 2+3+3)
}

func TestComposite_FindLeaves_SealedGraphIsEmpty(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))
	require.NoError(t, c.AddPath("a", click(alloc, "x"), typeText(alloc, "y")))

	assert.Empty(t, c.FindLeaves(true))

	// Including the end sentinel, it is the only leaf.
	leaves := c.FindLeaves(false)
	require.Len(t, leaves, 1)
	assert.Equal(t, c.End().ID(), leaves[0].ID())
}

func TestComposite_AppendPath_ExtendsLeaves(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))
	require.NoError(t, c.AddPath("a", click(alloc, "x")))

	ext := typeText(alloc, "suffix")
	require.NoError(t, c.AppendPath("ext", ext))

	leaves := c.FindLeaves(true)
	require.Len(t, leaves, 1)
	assert.Equal(t, ext.ID(), leaves[0].ID())
}

func TestComposite_AppendPath_FansOutAllLeaves(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))
	require.NoError(t, c.AddPath("a", click(alloc, "x")))
	require.NoError(t, c.AddPath("b", click(alloc, "y")))

	// First extension hangs off the end-feeding nodes; a second extension
	// then fans out from the single new leaf.
	first := typeText(alloc, "one")
	require.NoError(t, c.AppendPath("ext", first))

	second := typeText(alloc, "two")
	require.NoError(t, c.AppendPath("ext", second))

	leaves := c.FindLeaves(true)
	require.Len(t, leaves, 1)
	assert.Equal(t, second.ID(), leaves[0].ID())

	// Both branch tails reach the first extension node.
	var incoming int
	for _, e := range c.Edges() {
		if e.To == first.ID() {
			incoming++
		}
	}
	assert.Equal(t, 2, incoming)
}

func TestComposite_CommitEnd_SealsGraph(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))
	require.NoError(t, c.AddPath("a", click(alloc, "x")))

	ext := typeText(alloc, "suffix")
	require.NoError(t, c.AppendPath("ext", ext))
	c.CommitEnd()

	assert.Empty(t, c.FindLeaves(true))

	var sealed bool
	for _, e := range c.Edges() {
		if e.From == ext.ID() && e.To == c.EndKey() {
			sealed = true
		}
	}
	assert.True(t, sealed)
}

func TestComposite_AppendGraph_InlinesComposite(t *testing.T) {
	alloc := action.NewKindAllocator()

	sub := NewComposite("confirm", WithAllocator(alloc))
	require.NoError(t, sub.AddPath("button", click(alloc, "OK")))

	c := NewComposite("save", WithAllocator(alloc))
	require.NoError(t, c.AddPath("a", click(alloc, "x")))
	require.NoError(t, c.AppendGraph("confirm", sub))
	c.CommitEnd()

	assert.Empty(t, c.FindLeaves(true))
	assert.Len(t, c.Keys(), 2+1+3)
}

func TestComposite_NodesNeverDeleted(t *testing.T) {
	alloc := action.NewKindAllocator()
	c := NewComposite("save", WithAllocator(alloc))
	require.NoError(t, c.AddPath("a", click(alloc, "x")))
	n := len(c.Keys())
	e := len(c.Edges())

	require.NoError(t, c.AppendPath("ext", typeText(alloc, "y")))
	c.CommitEnd()

	assert.Greater(t, len(c.Keys()), n)
	assert.Greater(t, len(c.Edges()), e)
}
