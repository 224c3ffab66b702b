package repository

import (
	"context"
	"sync"
)

// MemoryCredentialRepository is an in-memory credential table, used when no
// database DSN is configured. Registration mutates the map, so all access
// is mutex-guarded.
type MemoryCredentialRepository struct {
	mu    sync.RWMutex
	creds map[string]string
}

// NewMemoryCredentialRepository creates a repository seeded with the given
// login -> secret pairs. seed may be nil.
func NewMemoryCredentialRepository(seed map[string]string) *MemoryCredentialRepository {
	creds := make(map[string]string, len(seed))
	for login, secret := range seed {
		creds[login] = secret
	}
	return &MemoryCredentialRepository{creds: creds}
}

// Verify reports whether the username is known and the secret matches.
func (r *MemoryCredentialRepository) Verify(_ context.Context, username, secret string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want, ok := r.creds[username]
	return ok && want == secret, nil
}

// Register adds a credential pair. An existing login is left untouched,
// matching the Postgres backend's ON CONFLICT DO NOTHING.
func (r *MemoryCredentialRepository) Register(_ context.Context, username, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.creds[username]; !ok {
		r.creds[username] = secret
	}
	return nil
}
