// Package graph renders editor graphs as Mermaid flowcharts for docs,
// the CLI and the export endpoint.
package graph

import (
	"fmt"
	"strings"

	flow "github.com/transparentlyai/adkflow-sub012/pkg/graph"
)

// Overlay contains transient state to visualize on top of the graph.
type Overlay struct {
	SelectedNodes []string
	IssueNodes    []string
}

// GenerateMermaid produces Mermaid flowchart syntax for a graph.
// Shapes encode the node kind:
//   - Agent: [Rectangle]
//   - Tool: [[Subroutine]]
//   - Prompt: [/Parallelogram/]
//   - Variable: ([Stadium])
//   - Probe: {{Hexagon}}
//
// Groups become subgraphs containing their children; nesting follows
// the parent relation.
func GenerateMermaid(g flow.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	children := flow.ChildIndex(g.Nodes)
	byID := make(map[string]flow.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	// Top level first, groups expand recursively.
	for _, n := range g.Nodes {
		if n.ParentID != "" {
			if _, ok := byID[n.ParentID]; ok {
				continue
			}
		}
		writeNode(&sb, n, children, byID, 1)
	}

	for _, e := range g.Edges {
		arrow := "-->"
		if e.Label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(e.Label, "\"", "'"))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeID(e.Source), arrow, sanitizeID(e.Target)))
	}

	if overlay != nil {
		writeOverlay(&sb, overlay)
	}

	return sb.String()
}

func writeNode(sb *strings.Builder, n flow.Node, children map[string][]string, byID map[string]flow.Node, depth int) {
	indent := strings.Repeat("    ", depth)
	safeID := sanitizeID(n.ID)
	label := n.Label
	if label == "" {
		label = n.ID
	}
	label = strings.ReplaceAll(label, "\"", "'")

	if n.Kind == flow.KindGroup {
		sb.WriteString(fmt.Sprintf("%ssubgraph %s[\"%s\"]\n", indent, safeID, label))
		for _, childID := range children[n.ID] {
			if child, ok := byID[childID]; ok {
				writeNode(sb, child, children, byID, depth+1)
			}
		}
		sb.WriteString(indent + "end\n")
		return
	}

	opener, closer := "[", "]"
	switch n.Kind {
	case flow.KindTool:
		opener, closer = "[[", "]]"
	case flow.KindPrompt:
		opener, closer = "[/", "/]"
	case flow.KindVariable:
		opener, closer = "([", "])"
	case flow.KindProbe:
		opener, closer = "{{", "}}"
	}
	sb.WriteString(fmt.Sprintf("%s%s%s\"%s\"%s\n", indent, safeID, opener, label, closer))
}

func writeOverlay(sb *strings.Builder, overlay *Overlay) {
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text for readable contrast on both light and dark themes.
	sb.WriteString("    classDef selected fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef issue fill:#ffebee,stroke:#b71c1c,stroke-width:2px,color:#000;\n")

	seen := make(map[string]bool)
	for _, id := range overlay.SelectedNodes {
		safeID := sanitizeID(id)
		if safeID != "" && !seen[safeID] {
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s selected;\n", safeID))
		}
	}
	for _, id := range overlay.IssueNodes {
		safeID := sanitizeID(id)
		if safeID != "" && !seen[safeID] {
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s issue;\n", safeID))
		}
	}
}

func sanitizeID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
