// Package file implements ports.ProjectStore on the local filesystem.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
)

// Store persists projects as YAML manifests in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".adkflow/projects".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".adkflow", "projects")
	}
	return &Store{BasePath: basePath}
}

// Save persists the project manifest atomically.
// It writes to a temporary file first, syncs via fsync, and then renames
// it to the destination.
func (s *Store) Save(ctx context.Context, projectID string, project *manifest.Project) error {
	if projectID == "" {
		return fmt.Errorf("projectID cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure project directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, projectID+".yaml")

	data, err := manifest.Encode(project)
	if err != nil {
		return err
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+projectID+"-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op if already renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Close before rename (Windows cannot rename an open file).
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists, so remove it first. The
	// delete+rename window is acceptable compared to a partial write.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing manifest for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to manifest: %w", err)
	}

	return nil
}

// Load retrieves and validates the project manifest.
func (s *Store) Load(ctx context.Context, projectID string) (*manifest.Project, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, projectID+".yaml")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, graph.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return manifest.Decode(data)
}

// Delete removes the project manifest.
func (s *Store) Delete(ctx context.Context, projectID string) error {
	if projectID == "" {
		return fmt.Errorf("projectID cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, projectID+".yaml")

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete manifest file: %w", err)
	}

	return nil
}

// List returns all stored project IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var projects []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			name := entry.Name()
			id := name[:len(name)-len(".yaml")]
			projects = append(projects, id)
		}
	}

	return projects, nil
}
