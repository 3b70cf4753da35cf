// Package manifest defines the persisted project format: a YAML document
// carrying the project identity and its canvas graph.
package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
)

// APIVersion is the manifest format version this build reads and writes.
const APIVersion = "adkflow/v1"

// PromptRef points a manifest at a prompt file in the prompt store.
type PromptRef struct {
	NodeID string `json:"node_id" yaml:"node_id"`
	Path   string `json:"path" yaml:"path"`
}

// Project is a persisted editor project.
type Project struct {
	APIVersion  string      `json:"api_version" yaml:"api_version"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Graph       graph.Graph `json:"graph" yaml:"graph"`
	Prompts     []PromptRef `json:"prompts,omitempty" yaml:"prompts,omitempty"`

	// Meta carries opaque annotations (store middleware, tooling).
	Meta map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// New creates an empty project with the current API version.
func New(name string) *Project {
	return &Project{
		APIVersion: APIVersion,
		Name:       name,
	}
}

// Encode serializes the project to YAML.
func Encode(p *Project) ([]byte, error) {
	if p.APIVersion == "" {
		p.APIVersion = APIVersion
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}

// Decode parses and validates a YAML manifest. The graph must be
// structurally sound; an unknown api version is rejected so newer
// manifests fail loudly instead of being silently mangled.
func Decode(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	if p.APIVersion == "" {
		// Early manifests omitted the version field; treat as v1.
		p.APIVersion = APIVersion
	}
	if p.APIVersion != APIVersion {
		return nil, fmt.Errorf("unsupported manifest version %q (want %s)", p.APIVersion, APIVersion)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("manifest has no project name")
	}
	if err := graph.ValidateErr(p.Graph); err != nil {
		return nil, fmt.Errorf("manifest %q: %w", p.Name, err)
	}

	return &p, nil
}
