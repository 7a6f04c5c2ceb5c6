package diagram

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderImage_ProducesPNG(t *testing.T) {
	model := &Model{
		Title:    "save",
		Vertical: true,
		Nodes: []*Node{
			{ID: "s", Label: "Start", Kind: NodeKindStart},
			{ID: "click0", Label: "click0\n(click)", Kind: NodeKindAction, Origin: "menu"},
			{ID: "e", Label: "End", Kind: NodeKindEnd},
		},
		Edges: []Edge{
			{From: "s", To: "click0", Label: "menu"},
			{From: "click0", To: "e", Label: "menu"},
		},
		Palette: map[string]string{"menu": "#2d6a2d"},
	}

	png, err := RenderImage(model)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderImage_EmptyModel(t *testing.T) {
	png, err := RenderImage(&Model{Title: "empty"})
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "a", firstLine("a\nb"))
	assert.Equal(t, "plain", firstLine("plain"))
}
