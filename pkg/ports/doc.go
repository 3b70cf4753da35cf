/*
Package ports defines the driven ports (interfaces) for the adkflow editor.

These interfaces decouple the editor core from external implementations,
allowing projects and prompt files to live in various storage backends.

# Key Interfaces

  - ProjectStore: persists project manifests (file, Redis).
  - PromptStore: reads and saves prompt files (Loam markdown repository).
  - Watchable: change notification for hot reload.
*/
package ports
