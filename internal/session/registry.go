// Package session maps opaque browser tokens to SessionContext values for
// the HTTP surface. The registry is the only shared structure across
// concurrently connected users, so it is mutex-guarded; the contexts it
// hands out are values, mutated by handlers and written back per cycle.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mbagrov/chatshell/internal/models"
)

// Registry stores one SessionContext per issued token.
type Registry struct {
	mu       sync.RWMutex
	contexts map[string]models.SessionContext
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{contexts: make(map[string]models.SessionContext)}
}

// Issue creates a fresh unauthenticated context under a new random token
// and returns the token.
func (r *Registry) Issue() string {
	token := uuid.NewString()
	r.mu.Lock()
	r.contexts[token] = models.NewSessionContext()
	r.mu.Unlock()
	return token
}

// Get returns the context for the token. Unknown tokens yield a fresh
// unauthenticated context and false, so a stale cookie degrades to the
// login page instead of an error.
func (r *Registry) Get(token string) (models.SessionContext, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sctx, ok := r.contexts[token]
	if !ok {
		return models.NewSessionContext(), false
	}
	return sctx, true
}

// Put stores the context produced by one render cycle back under its token.
func (r *Registry) Put(token string, sctx models.SessionContext) {
	r.mu.Lock()
	r.contexts[token] = sctx
	r.mu.Unlock()
}

// Drop removes the token entirely, for clients that discard their cookie.
func (r *Registry) Drop(token string) {
	r.mu.Lock()
	delete(r.contexts, token)
	r.mu.Unlock()
}
