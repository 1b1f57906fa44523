// Package graph renders the stage as Mermaid diagrams: the layer stack in
// strength order and the composed prim hierarchy.
package graph

import (
	"fmt"
	"strings"

	"github.com/strataforge/strata/internal/presentation/outline"
	"github.com/strataforge/strata/pkg/stage"
)

// GenerateMermaid produces a Mermaid flowchart of the composed hierarchy
// with the layer stack as a subgraph. Styling:
//   - Root: ((Circle))
//   - Defined prims: [Rectangle]
//   - Over-only prims: [/Parallelogram/]
//   - The edit target layer is highlighted.
func GenerateMermaid(st *stage.Stage) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	sb.WriteString("    subgraph layers [Layer stack, strongest first]\n")
	var prev string
	for _, l := range st.Layers() {
		safeID := "layer_" + sanitizeMermaidID(l.Identifier())
		sb.WriteString(fmt.Sprintf("        %s[\"%s\"]\n", safeID, l.DisplayName()))
		if prev != "" {
			sb.WriteString(fmt.Sprintf("        %s --> %s\n", prev, safeID))
		}
		prev = safeID
	}
	sb.WriteString("    end\n")

	sb.WriteString("    root((\"/\"))\n")
	for _, e := range outline.Entries(st) {
		safeID := sanitizeMermaidID(e.Path)
		name := e.Path[strings.LastIndexByte(e.Path, '/')+1:]

		opener, closer := "[", "]"
		if e.Specifier != "def" {
			opener, closer = "[/", "/]" // opinion without a definition
		}
		label := name
		if e.TypeName != "" {
			label = fmt.Sprintf("%s : %s", name, e.TypeName)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		parentID := "root"
		if idx := strings.LastIndexByte(e.Path, '/'); idx > 0 {
			parentID = sanitizeMermaidID(e.Path[:idx])
		}
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", parentID, safeID))
	}

	sb.WriteString("\n    classDef target fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString(fmt.Sprintf("    class layer_%s target;\n",
		sanitizeMermaidID(st.EditTarget().Identifier())))

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
