package service

import (
	"strings"

	"github.com/mbagrov/chatshell/internal/history"
	"github.com/mbagrov/chatshell/internal/models"
)

// Responder produces the reply text for one user message. The shell ships
// with EchoResponder; a real generator plugs in behind the same method.
type Responder interface {
	Respond(text string) string
}

// EchoResponder answers every message with "Response to: " plus the input.
type EchoResponder struct{}

// Respond implements Responder.
func (EchoResponder) Respond(text string) string {
	return "Response to: " + text
}

// TurnProcessor orchestrates one chat exchange: resolve the active session,
// obtain a response, record both messages, advance the input nonce.
type TurnProcessor struct {
	store     *history.Store
	responder Responder
}

// NewTurnProcessor constructs a TurnProcessor over the store and responder.
func NewTurnProcessor(store *history.Store, responder Responder) *TurnProcessor {
	return &TurnProcessor{store: store, responder: responder}
}

// Submit processes one send action for the given date. Whitespace-only
// input is not an error, just a no-op that returns the context unchanged.
// Otherwise the default session is resolved (assigning "Chat 1" when the
// context has none), the turn is appended, and the nonce advances so the
// rendered input control is recreated empty.
func (p *TurnProcessor) Submit(sctx models.SessionContext, date, rawText string) models.SessionContext {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return sctx
	}

	label := p.store.GetOrCreateDefault(sctx.Username, date, sctx.CurrentSession)
	response := p.responder.Respond(text)
	p.store.AppendTurn(sctx.Username, date, label, text, response)

	sctx.CurrentSession = label
	return sctx.WithNextNonce()
}

// NewChat creates a fresh session in today's bucket, makes it current, and
// advances the nonce.
func (p *TurnProcessor) NewChat(sctx models.SessionContext, date string) models.SessionContext {
	sctx.CurrentSession = p.store.CreateSession(sctx.Username, date)
	return sctx.WithNextNonce()
}

// EnsureDefault resolves the session the chat view writes into, assigning
// "Chat 1" when the context has none. Unlike Submit, resolving alone does
// not advance the nonce.
func (p *TurnProcessor) EnsureDefault(sctx models.SessionContext, date string) models.SessionContext {
	sctx.CurrentSession = p.store.GetOrCreateDefault(sctx.Username, date, sctx.CurrentSession)
	return sctx
}

// SelectSession switches the active session label. The store is not
// touched; only the context changes.
func (p *TurnProcessor) SelectSession(sctx models.SessionContext, label string) models.SessionContext {
	sctx.CurrentSession = label
	return sctx.WithNextNonce()
}

// Transcript returns the session's messages most recent turn first, the
// order the chat view renders them in. Storage order stays chronological;
// this is a read-side projection.
func (p *TurnProcessor) Transcript(username, date, label string) []models.Message {
	msgs := p.store.Messages(username, date, label)
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs
}
