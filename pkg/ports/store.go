package ports

import (
	"context"

	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
)

// ProjectStore defines the interface for persisting project manifests.
type ProjectStore interface {
	// Save persists the project under the given ID.
	Save(ctx context.Context, projectID string, project *manifest.Project) error

	// Load retrieves the project for a given ID.
	// Returns graph.ErrProjectNotFound if the project does not exist.
	Load(ctx context.Context, projectID string) (*manifest.Project, error)

	// Delete removes the project for a given ID.
	Delete(ctx context.Context, projectID string) error

	// List returns all stored project IDs.
	List(ctx context.Context) ([]string, error)
}
