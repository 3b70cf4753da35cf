package graph

import (
	"fmt"
	"strings"
)

// Issue describes a single structural problem found in a graph.
type Issue struct {
	Code    string `json:"code"`
	Subject string `json:"subject"` // offending node or edge ID
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// Issue codes.
const (
	IssueDuplicateID   = "duplicate_id"
	IssueDanglingEdge  = "dangling_edge"
	IssueUnknownParent = "unknown_parent"
	IssueParentCycle   = "parent_cycle"
	IssueParentKind    = "parent_not_group"
	IssueUnknownKind   = "unknown_kind"
)

var knownKinds = map[string]bool{
	KindAgent:    true,
	KindPrompt:   true,
	KindTool:     true,
	KindVariable: true,
	KindProbe:    true,
	KindGroup:    true,
}

// Validate checks the structural integrity of a graph: unique node IDs,
// edges with both endpoints present, parent references that exist, point
// at group nodes, and form no cycles. It returns all problems found.
func Validate(g Graph) []Issue {
	var issues []Issue

	byID := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := byID[n.ID]; dup {
			issues = append(issues, Issue{
				Code:    IssueDuplicateID,
				Subject: n.ID,
				Message: fmt.Sprintf("node ID %q is defined more than once", n.ID),
			})
			continue
		}
		byID[n.ID] = n

		if !knownKinds[n.Kind] {
			issues = append(issues, Issue{
				Code:    IssueUnknownKind,
				Subject: n.ID,
				Message: fmt.Sprintf("node %q has unknown kind %q", n.ID, n.Kind),
			})
		}
	}

	for _, n := range g.Nodes {
		if n.ParentID == "" {
			continue
		}
		parent, ok := byID[n.ParentID]
		if !ok {
			issues = append(issues, Issue{
				Code:    IssueUnknownParent,
				Subject: n.ID,
				Message: fmt.Sprintf("node %q references missing parent %q", n.ID, n.ParentID),
			})
			continue
		}
		if parent.Kind != KindGroup {
			issues = append(issues, Issue{
				Code:    IssueParentKind,
				Subject: n.ID,
				Message: fmt.Sprintf("node %q is nested under %q which is not a group", n.ID, n.ParentID),
			})
		}
	}

	issues = append(issues, findParentCycles(g.Nodes, byID)...)

	for _, e := range g.Edges {
		if _, ok := byID[e.Source]; !ok {
			issues = append(issues, Issue{
				Code:    IssueDanglingEdge,
				Subject: e.ID,
				Message: fmt.Sprintf("edge %q has missing source %q", e.ID, e.Source),
			})
		}
		if _, ok := byID[e.Target]; !ok {
			issues = append(issues, Issue{
				Code:    IssueDanglingEdge,
				Subject: e.ID,
				Message: fmt.Sprintf("edge %q has missing target %q", e.ID, e.Target),
			})
		}
	}

	return issues
}

// findParentCycles walks each ancestor chain with a per-walk visited set.
// A chain that revisits a node is reported once, against the node whose
// walk detected it.
func findParentCycles(nodes []Node, byID map[string]Node) []Issue {
	var issues []Issue
	reported := make(map[string]bool)

	for _, n := range nodes {
		seen := map[string]bool{n.ID: true}
		current := n.ParentID
		for current != "" {
			if seen[current] {
				if !reported[current] {
					reported[current] = true
					issues = append(issues, Issue{
						Code:    IssueParentCycle,
						Subject: current,
						Message: fmt.Sprintf("parent chain through %q forms a cycle", current),
					})
				}
				break
			}
			seen[current] = true
			parent, ok := byID[current]
			if !ok {
				break // missing parent reported separately
			}
			current = parent.ParentID
		}
	}

	return issues
}

// ValidateErr runs Validate and folds any issues into a single error.
// It returns nil for a structurally sound graph.
func ValidateErr(g Graph) error {
	issues := Validate(g)
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.String()
	}
	return fmt.Errorf("graph has %d problem(s):\n- %s", len(issues), strings.Join(msgs, "\n- "))
}
