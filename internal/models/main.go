// Package models defines the core data structures for session state and chat messages.
package models

// PageID identifies one of the shell's views.
type PageID string

const (
	// PageLogin is the unauthenticated landing view.
	PageLogin PageID = "Login"
	// PageHome is the default view after a successful login.
	PageHome PageID = "Home"
	// PageChatbot is the chat view.
	PageChatbot PageID = "Chatbot"
	// PageUpload is the file-upload view.
	PageUpload PageID = "Upload"

	// PageLogout is a virtual navigation target, not a resting page.
	// Selecting it routes through AuthManager.Logout and lands on PageLogin.
	PageLogout PageID = "Logout"
)

// Valid reports whether p is a resting page a context may occupy.
func (p PageID) Valid() bool {
	switch p {
	case PageLogin, PageHome, PageChatbot, PageUpload:
		return true
	}
	return false
}

// Role classifies a chat message for display.
type Role string

const (
	// RoleInfo marks a message typed by the user.
	RoleInfo Role = "info"
	// RoleSuccess marks a generated response.
	RoleSuccess Role = "success"
)

// Message is a single chat entry. Immutable once appended to a session.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// SessionContext is the full mutable state owned by one user's interaction
// flow. Handlers receive a value, apply one render cycle's mutations, and
// hand the result back; nothing in the core holds a reference to it.
type SessionContext struct {
	// Authenticated reports whether the login gate has been passed.
	Authenticated bool `json:"authenticated"`
	// Username is set only while Authenticated is true.
	Username string `json:"username,omitempty"`
	// CurrentPage is the view to render next. PageLogin iff unauthenticated.
	CurrentPage PageID `json:"current_page"`
	// CurrentSession is the active chat label within today's bucket,
	// or empty when no session has been assigned yet.
	CurrentSession string `json:"current_session,omitempty"`
	// InputNonce forces a fresh input-control identity after each turn so a
	// previously typed value cannot linger in a stale control. It carries no
	// meaning beyond re-render identity and never decreases.
	InputNonce int `json:"input_nonce"`
}

// NewSessionContext returns the initial unauthenticated context.
func NewSessionContext() SessionContext {
	return SessionContext{CurrentPage: PageLogin}
}

// WithNextNonce returns a copy of the context with the input nonce advanced.
// Called after creating a chat session and after a completed send.
func (c SessionContext) WithNextNonce() SessionContext {
	c.InputNonce++
	return c
}
