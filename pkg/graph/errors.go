package graph

import "errors"

// ErrProjectNotFound is returned when a project ID cannot be found in the store.
var ErrProjectNotFound = errors.New("project not found")

// ErrPromptNotFound is returned when a prompt file cannot be found.
var ErrPromptNotFound = errors.New("prompt not found")
