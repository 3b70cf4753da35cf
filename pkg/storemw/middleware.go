// Package storemw provides composable middleware around ProjectStore
// implementations.
package storemw

import "github.com/transparentlyai/adkflow-sub012/pkg/ports"

// Middleware allows wrapping a ProjectStore to add behavior.
type Middleware func(ports.ProjectStore) ports.ProjectStore

// Chain applies middlewares in order, outermost first.
func Chain(store ports.ProjectStore, mws ...Middleware) ports.ProjectStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
