// Package tracetree assembles flat span lists from agent runs into
// trees for the trace explorer. Spans reference at most one parent,
// the same discipline node groups follow on the canvas.
package tracetree

import (
	"sort"
	"time"
)

// Span is one recorded operation in a run.
type Span struct {
	ID       string    `json:"id"`
	ParentID string    `json:"parent_id,omitempty"`
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Duration returns the span's own wall time.
func (s Span) Duration() time.Duration {
	if s.End.Before(s.Start) {
		return 0
	}
	return s.End.Sub(s.Start)
}

// Node is a span placed in the tree with its resolved children.
type Node struct {
	Span     Span    `json:"span"`
	Children []*Node `json:"children,omitempty"`
}

// SubtreeDuration returns the wall time covered by the node and all of
// its descendants: from the earliest start to the latest end beneath it.
func (n *Node) SubtreeDuration() time.Duration {
	start, end := n.bounds()
	if end.Before(start) {
		return 0
	}
	return end.Sub(start)
}

func (n *Node) bounds() (time.Time, time.Time) {
	start, end := n.Span.Start, n.Span.End
	for _, c := range n.Children {
		cs, ce := c.bounds()
		if cs.Before(start) {
			start = cs
		}
		if ce.After(end) {
			end = ce
		}
	}
	return start, end
}

// Walk visits the node and its descendants depth-first.
func (n *Node) Walk(fn func(*Node, int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Assemble builds trees from a flat span list. A span whose parent is
// missing from the list is promoted to a root rather than dropped, so a
// truncated trace still renders. Roots and children are ordered by
// start time, ties broken by ID for stable output.
func Assemble(spans []Span) []*Node {
	nodes := make(map[string]*Node, len(spans))
	for _, s := range spans {
		nodes[s.ID] = &Node{Span: s}
	}

	parents := make(map[string]string, len(spans))
	for _, s := range spans {
		parents[s.ID] = s.ParentID
	}

	var roots []*Node
	for _, s := range spans {
		n := nodes[s.ID]
		if s.ParentID == "" || s.ParentID == s.ID {
			roots = append(roots, n)
			continue
		}
		parent, ok := nodes[s.ParentID]
		if !ok || onCycle(parents, s.ID) {
			roots = append(roots, n) // orphan or corrupt parent chain
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	sortNodes(roots)
	for _, n := range nodes {
		sortNodes(n.Children)
	}
	return roots
}

// onCycle reports whether the span's ancestor chain fails to terminate.
// Members of a parent cycle, and spans hanging off one, are promoted to
// roots so the trace still renders fully.
func onCycle(parents map[string]string, id string) bool {
	seen := map[string]bool{}
	for cur := id; cur != ""; cur = parents[cur] {
		if seen[cur] {
			return true
		}
		seen[cur] = true
		if _, ok := parents[cur]; !ok {
			return false
		}
	}
	return false
}

func sortNodes(ns []*Node) {
	sort.SliceStable(ns, func(i, j int) bool {
		if !ns[i].Span.Start.Equal(ns[j].Span.Start) {
			return ns[i].Span.Start.Before(ns[j].Span.Start)
		}
		return ns[i].Span.ID < ns[j].Span.ID
	})
}
