// Package inmemory provides a process-local username registry, mainly for
// tests and embedded hosts without an external store.
package inmemory

import (
	"context"
	"sync"

	"github.com/regkit/usernamer/model"
)

var _ model.Oracle = (*Registry)(nil)

// Registry is a mutex-guarded set of taken usernames.
type Registry struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewRegistry creates an empty registry, pre-populated with the given names.
func NewRegistry(taken ...string) *Registry {
	names := make(map[string]struct{}, len(taken))
	for _, n := range taken {
		names[n] = struct{}{}
	}
	return &Registry{names: names}
}

// CheckUsername returns model.ErrUsernameInUse when the name is taken.
func (r *Registry) CheckUsername(ctx context.Context, username string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.names[username]; ok {
		return model.ErrUsernameInUse
	}
	return nil
}

// Reserve atomically marks a username as taken, failing with
// model.ErrUsernameInUse if someone else got there first.
func (r *Registry) Reserve(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[username]; ok {
		return model.ErrUsernameInUse
	}
	r.names[username] = struct{}{}
	return nil
}
