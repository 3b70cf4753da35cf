// Package catalog holds the registry of node-kind definitions: the field
// schema, widget hints, and typed-config decoder for every kind of node
// the canvas can place.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/schema"
)

// Definition describes one node kind.
type Definition struct {
	// Kind is the node kind identifier (graph.KindAgent etc.).
	Kind string
	// Label is the palette display name.
	Label string
	// Schema declares the configurable fields and their widgets.
	Schema schema.Schema
}

// Catalog manages the available node-kind definitions.
type Catalog struct {
	mu    sync.RWMutex
	kinds map[string]Definition
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		kinds: make(map[string]Definition),
	}
}

// Register adds a definition to the catalog.
// If a definition with the same kind exists, it is overwritten.
func (c *Catalog) Register(def Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kinds[def.Kind] = def
}

// Lookup returns the definition for a kind.
func (c *Catalog) Lookup(kind string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.kinds[kind]
	return def, ok
}

// Kinds returns the registered kind identifiers.
func (c *Catalog) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.kinds))
	for k := range c.kinds {
		out = append(out, k)
	}
	return out
}

// ValidateNode checks a node's data payload against its kind's schema.
// Unknown kinds are an error; structural checks live in graph.Validate.
func (c *Catalog) ValidateNode(n graph.Node) error {
	def, ok := c.Lookup(n.Kind)
	if !ok {
		return fmt.Errorf("node %q: kind not in catalog: %s", n.ID, n.Kind)
	}
	if err := schema.Validate(def.Schema, n.Data); err != nil {
		return fmt.Errorf("node %q: %w", n.ID, err)
	}
	return nil
}

// ValidateGraph validates every node payload in the graph, collecting all
// failures.
func (c *Catalog) ValidateGraph(g graph.Graph) error {
	var errs []error
	for _, n := range g.Nodes {
		if err := c.ValidateNode(n); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &schema.AggregateError{Errors: errs}
	}
	return nil
}

// Issues validates every node payload in the graph and reports failures
// as issues, one per node, alongside the structural checks in
// graph.Validate. Kinds missing from the catalog are skipped here since
// graph.Validate already reports them.
func (c *Catalog) Issues(g graph.Graph) []graph.Issue {
	var issues []graph.Issue
	for _, n := range g.Nodes {
		def, ok := c.Lookup(n.Kind)
		if !ok {
			continue
		}
		if err := schema.Validate(def.Schema, n.Data); err != nil {
			issues = append(issues, graph.Issue{
				Code:    "invalid_payload",
				Subject: n.ID,
				Message: err.Error(),
			})
		}
	}
	return issues
}

// Description is the wire form of a definition, ready for the canvas to
// generate a palette entry and config widgets from.
type Description struct {
	Kind   string                    `json:"kind"`
	Label  string                    `json:"label"`
	Fields map[string]map[string]any `json:"fields"`
}

// Describe returns all definitions sorted by kind.
func (c *Catalog) Describe() []Description {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Description, 0, len(c.kinds))
	for _, def := range c.kinds {
		out = append(out, Description{
			Kind:   def.Kind,
			Label:  def.Label,
			Fields: schema.Describe(def.Schema),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// DecodeConfig decodes a node's data payload into a typed config struct,
// applying schema defaults first. Field names follow mapstructure tags.
func (c *Catalog) DecodeConfig(n graph.Node, out any) error {
	def, ok := c.Lookup(n.Kind)
	if !ok {
		return fmt.Errorf("node %q: kind not in catalog: %s", n.ID, n.Kind)
	}
	data := schema.ApplyDefaults(def.Schema, n.Data)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true, // JSON numbers arrive as float64
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("node %q: decoder setup: %w", n.ID, err)
	}
	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("node %q: decode config: %w", n.ID, err)
	}
	return nil
}
