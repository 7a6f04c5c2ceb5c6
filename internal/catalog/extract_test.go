package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taskDoc = `{
	"task_id": "t-17",
	"trajectory": {
		"actions": [
			{"kind": "click", "arguments": {"target": "address bar"}},
			{"kind": "type", "arguments": {"text": "example.com"}},
			{"kind": "press", "arguments": {"key": "enter"}}
		]
	}
}`

func TestExtractor_ArrayResult(t *testing.T) {
	x := NewExtractor()

	descs, err := x.Extract(context.Background(), []byte(taskDoc), ".trajectory.actions")
	require.NoError(t, err)
	require.Len(t, descs, 3)
	assert.Equal(t, "click", descs[0]["kind"])
	assert.Equal(t, "press", descs[2]["kind"])
}

func TestExtractor_StreamResult(t *testing.T) {
	x := NewExtractor()

	descs, err := x.Extract(context.Background(), []byte(taskDoc),
		`.trajectory.actions[] | select(.kind != "press")`)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, "type", descs[1]["kind"])
}

func TestExtractor_SingleObject(t *testing.T) {
	x := NewExtractor()

	descs, err := x.Extract(context.Background(), []byte(taskDoc), ".trajectory.actions[0]")
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, "click", descs[0]["kind"])
}

func TestExtractor_NoMatch(t *testing.T) {
	x := NewExtractor()

	descs, err := x.Extract(context.Background(), []byte(taskDoc), ".missing")
	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestExtractor_NonObjectResult(t *testing.T) {
	x := NewExtractor()

	_, err := x.Extract(context.Background(), []byte(taskDoc), ".task_id")
	require.Error(t, err)
}

func TestExtractor_BadDocument(t *testing.T) {
	x := NewExtractor()

	_, err := x.Extract(context.Background(), []byte("{"), ".")
	require.Error(t, err)
}

func TestExtractor_BadQuery(t *testing.T) {
	x := NewExtractor()

	_, err := x.Extract(context.Background(), []byte(taskDoc), "][")
	require.Error(t, err)
}
