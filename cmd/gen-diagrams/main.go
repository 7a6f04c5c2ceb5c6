// gen-diagrams generates sample diagram outputs for README documentation.
// Run: go run ./cmd/gen-diagrams
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/uiact/actiongraph/internal/action"
	"github.com/uiact/actiongraph/internal/diagram"
	"github.com/uiact/actiongraph/internal/graph"
	"github.com/uiact/actiongraph/internal/logging"
)

func main() {
	logger := slog.New(logging.NewCorrelationHandler(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	slog.SetDefault(logger)

	alloc := action.NewKindAllocator()

	// "Save document" recipe: hotkey branch vs menu branch.
	saveDoc := graph.NewComposite("save-document",
		graph.WithAllocator(alloc),
		graph.WithDescription("Save the current document"))

	hotkey := action.NewPrimitive(action.KindHotkey, alloc, map[string]any{
		"keys": []string{"ctrl", "s"},
	}, action.WithTemplate(`agent.hotkey(${{ args.keys }})`))

	fileMenu := action.NewPrimitive(action.KindClick, alloc, map[string]any{
		"target": "the File menu",
	})
	saveItem := action.NewPrimitive(action.KindClick, alloc, map[string]any{
		"target": "the Save menu item",
	})

	must(saveDoc.AddPath("hotkey", hotkey))
	must(saveDoc.AddPath("menu", fileMenu, saveItem))

	// Outer recipe inlining the save composite after typing some text.
	editAndSave := graph.NewComposite("edit-and-save", graph.WithAllocator(alloc))
	typeText := action.NewPrimitive(action.KindType, alloc, map[string]any{
		"text": "hello world",
	})
	must(editAndSave.AddPath("default", typeText, saveDoc))

	model := diagram.Build(editAndSave, diagram.Options{Vertical: true, GroupByOrigin: true})

	outDir := filepath.Join("docs", "assets")
	os.MkdirAll(outDir, 0o755)

	mermaid := diagram.RenderMermaid(model)
	os.WriteFile(filepath.Join(outDir, "diagram-mermaid.md"), []byte("```mermaid\n"+mermaid+"\n```\n"), 0o644)
	fmt.Println("=== Mermaid ===")
	fmt.Println(mermaid)

	png, imgErr := diagram.RenderImage(model)
	if imgErr != nil {
		fmt.Fprintf(os.Stderr, "image error: %v\n", imgErr)
	} else {
		pngPath := filepath.Join(outDir, "diagram-sample.png")
		os.WriteFile(pngPath, png, 0o644)
		fmt.Printf("=== Image (PNG) ===\nWritten: %s (%d bytes)\n", pngPath, len(png))
	}

	// One sampled walk through the outer recipe.
	ctx := context.Background()
	fmt.Println("=== Sampled walk (seed 42) ===")
	walker := editAndSave.Walk(42, "")
	for {
		node, ok := walker.Step()
		if !ok {
			break
		}
		if p, isPrim := node.(*action.Primitive); isPrim && p.Kind() != action.KindSentinel {
			snippet, err := p.Render(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "render error: %v\n", err)
				continue
			}
			fmt.Printf("%s: %s\n", p.ID(), snippet)
		}
	}
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "build error: %v\n", err)
		os.Exit(1)
	}
}
