/*
Package clipboard implements the editor's copy/paste model.

A Manager owns a single in-memory clipboard slot. Copying expands the
current selection to its downward closure under the parent relation
(selecting a group always captures its contents, transitively) and keeps
only the edges whose endpoints both survived the capture, so a payload
never contains a dangling edge. The slot is last-write-wins; copying
with nothing selected is a defined no-op, never an accidental clear.

Clipboard access is a scoped capability: Managers are issued by an open
editor session (see pkg/session) and panic if used after the session
closes or without one, so integration mistakes surface immediately in
development instead of silently corrupting state.

Paste is delegated to the canvas: Materialize hands the caller a clone
of the payload with fresh identifiers and remapped references.
*/
package clipboard
