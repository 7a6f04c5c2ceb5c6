package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextIDs_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GraphID(ctx))

	ctx = WithGraphID(ctx, "composite0")
	ctx = WithNodeID(ctx, "click3")
	ctx = WithWalkID(ctx, "w-1")

	assert.Equal(t, "composite0", GraphID(ctx))
	assert.Equal(t, "click3", NodeID(ctx))
	assert.Equal(t, "w-1", WalkID(ctx))
}

func TestCorrelationHandler_InjectsIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCorrelationHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithWalkID(WithGraphID(context.Background(), "composite0"), "w-9")
	logger.InfoContext(ctx, "sampled step")

	out := buf.String()
	assert.Contains(t, out, "graph_id=composite0")
	assert.Contains(t, out, "walk_id=w-9")
	assert.NotContains(t, out, "node_id")
}

func TestCorrelationHandler_NoIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCorrelationHandler(slog.NewTextHandler(&buf, nil)))

	logger.InfoContext(context.Background(), "plain")

	out := buf.String()
	assert.Contains(t, out, "plain")
	assert.NotContains(t, out, "graph_id")
}

func TestCorrelationHandler_WithAttrsPreservesWrapping(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCorrelationHandler(slog.NewTextHandler(&buf, nil))).
		With(slog.String("component", "walker"))

	logger.InfoContext(WithNodeID(context.Background(), "type2"), "step")

	out := buf.String()
	assert.Contains(t, out, "component=walker")
	assert.Contains(t, out, "node_id=type2")
}
