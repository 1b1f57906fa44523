// Package outline renders the composed stage hierarchy for inspection
// surfaces: a flat entry list for APIs and a markdown outline for the CLI.
package outline

import (
	"fmt"
	"strings"

	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/stage"
)

// Entry is one composed prim in depth-first order.
type Entry struct {
	Path      string   `json:"path"`
	TypeName  string   `json:"type,omitempty"`
	Specifier string   `json:"specifier"`
	Layers    []string `json:"layers"`
}

// Entries walks the composed hierarchy depth-first and returns one entry
// per prim, children in sorted order.
func Entries(st *stage.Stage) []Entry {
	var out []Entry
	var walk func(p domain.Path)
	walk = func(p domain.Path) {
		for _, name := range st.ChildrenOf(p) {
			child, err := p.AppendChild(name)
			if err != nil {
				continue
			}
			composed, ok := st.ComposePrim(child)
			if !ok {
				continue
			}
			var layers []string
			for _, l := range st.LayersWithSpec(child) {
				layers = append(layers, l.DisplayName())
			}
			out = append(out, Entry{
				Path:      child.String(),
				TypeName:  composed.TypeName,
				Specifier: string(composed.Specifier),
				Layers:    layers,
			})
			walk(child)
		}
	}
	walk(domain.RootPath)
	return out
}

// Markdown renders the composed hierarchy as a nested markdown outline,
// suitable for glamour rendering in a terminal.
func Markdown(st *stage.Stage) string {
	var sb strings.Builder
	sb.WriteString("# Stage\n\n")
	sb.WriteString(fmt.Sprintf("Edit target: **%s**\n\n", st.EditTarget().DisplayName()))
	for _, e := range Entries(st) {
		depth := strings.Count(e.Path, "/") - 1
		sb.WriteString(strings.Repeat("  ", depth))
		name := e.Path[strings.LastIndexByte(e.Path, '/')+1:]
		if e.TypeName != "" {
			sb.WriteString(fmt.Sprintf("- **%s** (%s)", name, e.TypeName))
		} else {
			sb.WriteString(fmt.Sprintf("- **%s**", name))
		}
		sb.WriteString(fmt.Sprintf(" in %s\n", strings.Join(e.Layers, ", ")))
	}
	return sb.String()
}
