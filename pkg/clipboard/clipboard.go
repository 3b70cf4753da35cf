package clipboard

import (
	"sync"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
)

// Payload is the captured nodes/edges snapshot held by the clipboard
// between copy and paste.
type Payload struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`

	// ContextID identifies the tab/document the copy originated from, so
	// paste can be scoped or invalidated if the context changed.
	ContextID string `json:"context_id"`
}

// clone returns a deep copy so callers can never mutate the slot.
func (p *Payload) clone() *Payload {
	c := &Payload{
		Nodes:     make([]graph.Node, len(p.Nodes)),
		Edges:     make([]graph.Edge, len(p.Edges)),
		ContextID: p.ContextID,
	}
	for i, n := range p.Nodes {
		c.Nodes[i] = n.Clone()
	}
	copy(c.Edges, p.Edges)
	return c
}

// Manager owns the single clipboard slot for an editor session.
// The zero value is unusable; obtain one from a session workspace.
type Manager struct {
	scope *Scope

	mu      sync.RWMutex
	payload *Payload
}

// New binds a Manager to a live scope. It panics if the scope is nil or
// already closed: clipboard access without its governing session is a
// contract violation and must fail at construction, not at first paste.
func New(scope *Scope) *Manager {
	scope.check()
	return &Manager{scope: scope}
}

// Copy captures the downward closure of the current selection.
//
// The closure starts from every node whose Selected flag is set and pulls
// in all descendants via the parent relation, so copying a group always
// copies its contents. Only edges with both endpoints inside the closure
// are captured. Node order follows the original node list. An empty
// selection leaves the slot untouched; a non-empty copy replaces it.
func (m *Manager) Copy(nodes []graph.Node, edges []graph.Edge, contextID string) {
	m.scope.check()

	var selected []string
	for _, n := range nodes {
		if n.Selected {
			selected = append(selected, n.ID)
		}
	}
	if len(selected) == 0 {
		// Guard against accidental clearing via an empty copy.
		return
	}

	included := graph.Descendants(nodes, selected)

	captured := make([]graph.Node, 0, len(included))
	for _, n := range nodes {
		if !included[n.ID] {
			continue
		}
		c := n.Clone()
		c.Selected = false // transient UI state is not part of the payload
		captured = append(captured, c)
	}

	capturedEdges := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		if included[e.Source] && included[e.Target] {
			capturedEdges = append(capturedEdges, e)
		}
	}

	m.mu.Lock()
	m.payload = &Payload{Nodes: captured, Edges: capturedEdges, ContextID: contextID}
	m.mu.Unlock()
}

// Clear empties the clipboard slot unconditionally. Idempotent.
func (m *Manager) Clear() {
	m.scope.check()
	m.mu.Lock()
	m.payload = nil
	m.mu.Unlock()
}

// Has reports whether a payload is present.
func (m *Manager) Has() bool {
	m.scope.check()
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payload != nil
}

// Payload returns a read-only view (deep copy) of the current payload,
// or false when the clipboard is empty. Reading is non-destructive.
func (m *Manager) Payload() (*Payload, bool) {
	m.scope.check()
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.payload == nil {
		return nil, false
	}
	return m.payload.clone(), true
}
