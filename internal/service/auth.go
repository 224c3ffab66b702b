// Package service provides the session-state core: the authentication gate,
// the page-navigation state machine, and the chat turn processor. Every
// operation takes a SessionContext value and returns the mutated copy; the
// caller's render loop decides what to draw from the result.
package service

import (
	"context"
	"errors"

	"github.com/mbagrov/chatshell/internal/history"
	"github.com/mbagrov/chatshell/internal/models"
)

// ErrInvalidCredentials is returned by Login when the credential check
// rejects the username/secret pair. The caller's prior context is unchanged.
var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialVerifier defines the credential check required by AuthManager.
type CredentialVerifier interface {
	// Verify reports whether the username/secret pair is valid.
	// ctx carries deadlines and cancellation for backends that need them.
	Verify(ctx context.Context, username, secret string) (bool, error)
}

// AuthManager owns the authenticated/unauthenticated lifecycle of a
// session context, delegating the credential check to a CredentialVerifier.
type AuthManager struct {
	verifier CredentialVerifier
	store    *history.Store
}

// NewAuthManager constructs an AuthManager over the given verifier and
// chat history store.
func NewAuthManager(verifier CredentialVerifier, store *history.Store) *AuthManager {
	return &AuthManager{verifier: verifier, store: store}
}

// Login verifies the credentials and, on success, returns an authenticated
// context on the Home page with no active chat session, lazily creating the
// user's chat store on first login. On failure it returns the input context
// untouched along with ErrInvalidCredentials or the verifier's error.
func (m *AuthManager) Login(ctx context.Context, sctx models.SessionContext, username, secret string) (models.SessionContext, error) {
	ok, err := m.verifier.Verify(ctx, username, secret)
	if err != nil {
		return sctx, err
	}
	if !ok {
		return sctx, ErrInvalidCredentials
	}

	m.store.EnsureUser(username)

	sctx.Authenticated = true
	sctx.Username = username
	sctx.CurrentPage = models.PageHome
	sctx.CurrentSession = ""
	return sctx, nil
}

// Logout returns the context to its unauthenticated state on the Login
// page. The user's chat history is left alone; it is visible again on the
// next login of the same user within this process.
func (m *AuthManager) Logout(sctx models.SessionContext) models.SessionContext {
	sctx.Authenticated = false
	sctx.Username = ""
	sctx.CurrentSession = ""
	sctx.CurrentPage = models.PageLogin
	return sctx
}
