// Package loam adapts the Loam document library to the adkflow
// PromptStore port. Prompt files are markdown documents whose
// frontmatter carries the prompt metadata (title, variables, model).
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/ports"
)

// PromptMetadata is the frontmatter schema of a prompt file.
type PromptMetadata struct {
	ID        string   `yaml:"id,omitempty" json:"id,omitempty"`
	Title     string   `yaml:"title,omitempty" json:"title,omitempty"`
	Variables []string `yaml:"variables,omitempty" json:"variables,omitempty"`
	Model     string   `yaml:"model,omitempty" json:"model,omitempty"`
}

// Store implements ports.PromptStore on a Loam repository.
type Store struct {
	Repo *loam.TypedRepository[PromptMetadata]
}

// New creates a prompt store from an existing typed repository.
func New(repo *loam.TypedRepository[PromptMetadata]) *Store {
	return &Store{Repo: repo}
}

// Open initializes a Loam repository at the given directory and wraps it
// as a prompt store. Versioning is disabled: the editor owns its own
// save semantics and prompt directories commonly live inside user repos.
func Open(dir string) (*Store, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[PromptMetadata](repo)), nil
}

// Get retrieves a prompt by ID. The ID matches the document name with or
// without its markdown extension.
func (s *Store) Get(ctx context.Context, id string) (*ports.Prompt, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		if missing, lerr := s.isMissing(ctx, id); lerr == nil && missing {
			return nil, graph.ErrPromptNotFound
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	promptID := doc.Data.ID
	if promptID == "" {
		promptID = doc.ID
	}

	return &ports.Prompt{
		ID:        trimExtension(promptID),
		Title:     doc.Data.Title,
		Content:   strings.TrimRight(doc.Content, "\n "),
		Variables: doc.Data.Variables,
		Model:     doc.Data.Model,
	}, nil
}

// Save writes a prompt file.
func (s *Store) Save(ctx context.Context, p *ports.Prompt) error {
	if p.ID == "" {
		return fmt.Errorf("prompt ID cannot be empty")
	}

	err := s.Repo.Save(ctx, &loam.DocumentModel[PromptMetadata]{
		ID:      p.ID,
		Content: p.Content,
		Data: PromptMetadata{
			ID:        p.ID,
			Title:     p.Title,
			Variables: p.Variables,
			Model:     p.Model,
		},
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", p.ID, err)
	}
	return nil
}

// List returns all prompt IDs available in the store.
func (s *Store) List(ctx context.Context) ([]string, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		// Collision detection: two files claiming one prompt ID is a
		// project defect the user must resolve, not something to mask.
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: prompt ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

// Watch implements ports.Watchable, forwarding the IDs of changed prompt
// files for hot reload.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	events, err := s.Repo.Watch(ctx, "**/*.{md,markdown}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

// isMissing checks the repository listing for the ID, so a failed Get can
// be classified as not-found versus an IO problem.
func (s *Store) isMissing(ctx context.Context, id string) (bool, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	want := trimExtension(id)
	for _, have := range ids {
		if have == want {
			return false, nil
		}
	}
	return true, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	switch ext {
	case ".md", ".markdown":
		return strings.TrimSuffix(id, ext)
	}
	return id
}
