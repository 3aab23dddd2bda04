// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Registry hands out one Session per client id. Idle sessions expire after
// the configured TTL; the persisted voted flag outlives them.
type Registry struct {
	deps  Deps
	mu    sync.Mutex
	cache *gocache.Cache
}

func NewRegistry(deps Deps, ttl time.Duration) *Registry {
	return &Registry{
		deps:  deps,
		cache: gocache.New(ttl, ttl),
	}
}

// Get returns the client's session, creating it on first use. Every call
// extends the session's lifetime.
func (r *Registry) Get(clientID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s *Session
	if v, ok := r.cache.Get(clientID); ok {
		s = v.(*Session)
	} else {
		s = New(r.deps, clientID)
	}
	r.cache.SetDefault(clientID, s)
	return s
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}
