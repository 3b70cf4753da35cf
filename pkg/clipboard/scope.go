package clipboard

import "sync/atomic"

// Scope is the lifetime that governs clipboard access. Scopes are issued
// by the session layer when a workspace opens and closed when it ends;
// a Manager outside a live scope is a programming error, not a
// recoverable condition.
type Scope struct {
	closed atomic.Bool
}

// OpenScope establishes a new clipboard lifetime.
func OpenScope() *Scope {
	return &Scope{}
}

// Close ends the scope. Idempotent. Any Manager bound to the scope
// panics on subsequent use.
func (s *Scope) Close() {
	s.closed.Store(true)
}

// Live reports whether the scope is still open.
func (s *Scope) Live() bool {
	return s != nil && !s.closed.Load()
}

// check panics unless the scope is live. The message names the contract
// so the failure is actionable at the call site.
func (s *Scope) check() {
	if s == nil {
		panic("clipboard: Manager used without an owning session scope (construct via session.Open)")
	}
	if s.closed.Load() {
		panic("clipboard: Manager used after its session scope was closed")
	}
}
