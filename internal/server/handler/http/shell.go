// Package http provides the HTTP handlers for the chat shell. Each request
// is one render cycle: the handler loads the caller's SessionContext from
// the registry, applies exactly one state transition, stores the result,
// and responds with the recomputed view.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mbagrov/chatshell/internal/middleware"
	"github.com/mbagrov/chatshell/internal/models"
	"github.com/mbagrov/chatshell/internal/service"
	"github.com/mbagrov/chatshell/internal/session"
)

// AuthService defines the authentication operations required by the handlers.
type AuthService interface {
	// Login verifies credentials and returns the authenticated context, or
	// the input context unchanged with service.ErrInvalidCredentials.
	Login(ctx context.Context, sctx models.SessionContext, username, secret string) (models.SessionContext, error)
	// Logout resets the context to its unauthenticated state.
	Logout(sctx models.SessionContext) models.SessionContext
}

// ChatService defines the chat-turn operations required by the handlers.
type ChatService interface {
	Submit(sctx models.SessionContext, date, rawText string) models.SessionContext
	NewChat(sctx models.SessionContext, date string) models.SessionContext
	SelectSession(sctx models.SessionContext, label string) models.SessionContext
	EnsureDefault(sctx models.SessionContext, date string) models.SessionContext
	Transcript(username, date, label string) []models.Message
}

// Navigator applies one page-selection request.
type Navigator interface {
	Navigate(sctx models.SessionContext, target models.PageID) models.SessionContext
}

// HistoryView is the read-only slice of the chat store the view needs.
type HistoryView interface {
	Days(username, today string) []string
	Sessions(username, date string) []string
}

// CredentialRegistrar creates credential rows for new users.
type CredentialRegistrar interface {
	Register(ctx context.Context, username, secret string) error
}

// ShellHandler handles all chat-shell requests.
type ShellHandler struct {
	Auth      AuthService
	Chat      ChatService
	Nav       Navigator
	History   HistoryView
	Registrar CredentialRegistrar
	Registry  *session.Registry

	// Now supplies the process clock; overridable in tests. Nil means
	// time.Now.
	Now func() time.Time
}

// DayView is one sidebar group: a date and its session labels in creation
// order.
type DayView struct {
	Date     string   `json:"date"`
	Sessions []string `json:"sessions"`
}

// View is the rendered state returned after every cycle. Messages are most
// recent turn first; Days are sorted descending with today always present.
type View struct {
	Page     models.PageID    `json:"page"`
	Username string           `json:"username,omitempty"`
	Session  string           `json:"session,omitempty"`
	Nonce    int              `json:"nonce"`
	Days     []DayView        `json:"days,omitempty"`
	Messages []models.Message `json:"messages,omitempty"`
}

func (h *ShellHandler) today() string {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return now().Format("2006-01-02")
}

// context resolves the request's SessionContext through the session token.
func (h *ShellHandler) context(r *http.Request) (string, models.SessionContext) {
	token := middleware.GetTokenFromContext(r.Context())
	sctx, _ := h.Registry.Get(token)
	return token, sctx
}

// render completes a cycle: the chat view gets its default session assigned
// if none is active, the context is stored, and the view is written.
func (h *ShellHandler) render(w http.ResponseWriter, token string, sctx models.SessionContext) {
	today := h.today()
	if sctx.Authenticated && sctx.CurrentPage == models.PageChatbot && sctx.CurrentSession == "" {
		sctx = h.Chat.EnsureDefault(sctx, today)
	}
	h.Registry.Put(token, sctx)

	view := View{
		Page:     sctx.CurrentPage,
		Username: sctx.Username,
		Session:  sctx.CurrentSession,
		Nonce:    sctx.InputNonce,
	}
	if sctx.Authenticated {
		for _, date := range h.History.Days(sctx.Username, today) {
			view.Days = append(view.Days, DayView{
				Date:     date,
				Sessions: h.History.Sessions(sctx.Username, date),
			})
		}
		if sctx.CurrentSession != "" {
			view.Messages = h.Chat.Transcript(sctx.Username, today, sctx.CurrentSession)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}

// CredentialsRequest is the JSON payload for registration and login.
type CredentialsRequest struct {
	Login  string `json:"login"`
	Secret string `json:"secret"`
}

// Register handles POST /api/register, creating a credential row.
func (h *ShellHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Secret == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Registrar.Register(r.Context(), req.Login, req.Secret); err != nil {
		http.Error(w, "failed to save user", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Login handles POST /api/login. A failed check leaves the caller's
// context exactly as it was.
func (h *ShellHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	token, sctx := h.context(r)
	next, err := h.Auth.Login(r.Context(), sctx, req.Login, req.Secret)
	if errors.Is(err, service.ErrInvalidCredentials) {
		http.Error(w, "invalid username or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, token, next)
}

// Logout handles POST /api/logout. Chat history survives; only the context
// resets.
func (h *ShellHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, sctx := h.context(r)
	h.render(w, token, h.Auth.Logout(sctx))
}

// Render handles GET /api/view, recomputing the view without a transition.
func (h *ShellHandler) Render(w http.ResponseWriter, r *http.Request) {
	token, sctx := h.context(r)
	h.render(w, token, sctx)
}

// NavigateRequest is the JSON payload for a page switch.
type NavigateRequest struct {
	Page models.PageID `json:"page"`
}

// Navigate handles POST /api/navigate.
func (h *ShellHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Page == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	token, sctx := h.context(r)
	if !sctx.Authenticated {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	h.render(w, token, h.Nav.Navigate(sctx, req.Page))
}

// NewChat handles POST /api/chats, creating a session in today's bucket.
func (h *ShellHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	token, sctx := h.context(r)
	if !sctx.Authenticated {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	h.render(w, token, h.Chat.NewChat(sctx, h.today()))
}

// SelectRequest is the JSON payload for switching the active session.
type SelectRequest struct {
	Label string `json:"label"`
}

// SelectSession handles POST /api/chats/select. The label must name a
// session in today's bucket; the store itself is never touched.
func (h *ShellHandler) SelectSession(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Label == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	token, sctx := h.context(r)
	if !sctx.Authenticated {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	known := false
	for _, label := range h.History.Sessions(sctx.Username, h.today()) {
		if label == req.Label {
			known = true
			break
		}
	}
	if !known {
		http.Error(w, "unknown session", http.StatusBadRequest)
		return
	}
	h.render(w, token, h.Chat.SelectSession(sctx, req.Label))
}

// SendRequest is the JSON payload for one chat message.
type SendRequest struct {
	Text string `json:"text"`
}

// Send handles POST /api/messages. Whitespace-only text is a no-op cycle,
// not an error.
func (h *ShellHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	token, sctx := h.context(r)
	if !sctx.Authenticated {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	h.render(w, token, h.Chat.Submit(sctx, h.today(), req.Text))
}
