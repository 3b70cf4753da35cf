package ports

import "context"

// Prompt is a prompt file: markdown content plus frontmatter metadata.
type Prompt struct {
	ID        string
	Title     string
	Content   string
	Variables []string
	Model     string
}

// PromptStore defines how the editor reads and saves prompt files.
type PromptStore interface {
	// Get retrieves a prompt by ID.
	// Returns graph.ErrPromptNotFound if the prompt does not exist.
	Get(ctx context.Context, id string) (*Prompt, error)

	// Save writes a prompt file.
	Save(ctx context.Context, p *Prompt) error

	// List returns all prompt IDs available in the store.
	List(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for stores that can notify about backend
// changes. This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that receives the ID of each changed entry.
	Watch(ctx context.Context) (<-chan string, error)
}
