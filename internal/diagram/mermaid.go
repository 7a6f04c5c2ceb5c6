package diagram

import (
	"fmt"
	"strings"
)

// RenderMermaid renders a Model as a Mermaid flowchart string.
func RenderMermaid(model *Model) string {
	var b strings.Builder

	if model.Vertical {
		b.WriteString("graph TD\n")
	} else {
		b.WriteString("graph LR\n")
	}

	// Title as comment.
	if model.Title != "" {
		b.WriteString(fmt.Sprintf("    %%%% %s\n", model.Title))
	}

	for _, node := range model.Nodes {
		b.WriteString(fmt.Sprintf("    %s\n", mermaidNodeDef(node)))
	}

	for _, edge := range model.Edges {
		label := ""
		if edge.Label != "" {
			label = fmt.Sprintf("|%s|", edge.Label)
		}
		b.WriteString(fmt.Sprintf("    %s -->%s %s\n",
			mermaidSafeID(edge.From), label, mermaidSafeID(edge.To)))
	}

	// Provenance class definitions.
	if len(model.Palette) > 0 {
		b.WriteString("\n")
		for _, origin := range sortedOrigins(model.Palette) {
			b.WriteString(fmt.Sprintf("    classDef %s fill:%s,color:#fff\n",
				mermaidSafeID(origin), model.Palette[origin]))
		}
		for _, node := range model.Nodes {
			if node.Origin != "" && node.Kind == NodeKindAction {
				b.WriteString(fmt.Sprintf("    class %s %s\n",
					mermaidSafeID(node.ID), mermaidSafeID(node.Origin)))
			}
		}
	}

	return b.String()
}

// mermaidNodeDef returns a Mermaid node definition with the appropriate shape.
func mermaidNodeDef(node *Node) string {
	id := mermaidSafeID(node.ID)
	label := firstLine(node.Label)

	switch node.Kind {
	case NodeKindStart, NodeKindEnd:
		return fmt.Sprintf("%s((%q))", id, label)
	case NodeKindSentinel:
		return fmt.Sprintf("%s([%q])", id, label)
	default: // action
		return fmt.Sprintf("%s[%q]", id, label)
	}
}

// mermaidSafeID converts a node ID to a Mermaid-safe identifier.
func mermaidSafeID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", " ", "_", "/", "_", "@", "_")
	return r.Replace(id)
}

// sortedOrigins returns palette keys in sorted order for stable output.
func sortedOrigins(palette map[string]string) []string {
	keys := make([]string, 0, len(palette))
	for k := range palette {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		key := keys[i]
		j := i - 1
		for j >= 0 && keys[j] > key {
			keys[j+1] = keys[j]
			j--
		}
		keys[j+1] = key
	}
	return keys
}
