package service

import (
	"fmt"
	"testing"

	"github.com/mbagrov/chatshell/internal/history"
	"github.com/mbagrov/chatshell/internal/models"
)

const testDate = "2025-06-01"

func chatContext() models.SessionContext {
	return models.SessionContext{
		Authenticated: true,
		Username:      "user1",
		CurrentPage:   models.PageChatbot,
	}
}

func TestSubmit_AppendsTurnAndAdvancesNonce(t *testing.T) {
	store := history.NewStore()
	p := NewTurnProcessor(store, EchoResponder{})

	sctx := p.Submit(chatContext(), testDate, "Hello")

	if sctx.CurrentSession != "Chat 1" {
		t.Errorf("CurrentSession = %q; want %q", sctx.CurrentSession, "Chat 1")
	}
	if sctx.InputNonce != 1 {
		t.Errorf("InputNonce = %d; want 1", sctx.InputNonce)
	}

	msgs := store.Messages("user1", testDate, "Chat 1")
	if len(msgs) != 2 {
		t.Fatalf("messages = %d; want 2", len(msgs))
	}
	if msgs[0].Role != models.RoleInfo || msgs[0].Text != "Hello" {
		t.Errorf("first message = %+v; want info %q", msgs[0], "Hello")
	}
	if msgs[1].Role != models.RoleSuccess || msgs[1].Text != "Response to: Hello" {
		t.Errorf("second message = %+v; want success %q", msgs[1], "Response to: Hello")
	}
}

func TestSubmit_TrimsInput(t *testing.T) {
	store := history.NewStore()
	p := NewTurnProcessor(store, EchoResponder{})

	p.Submit(chatContext(), testDate, "  Hi  ")

	msgs := store.Messages("user1", testDate, "Chat 1")
	if len(msgs) != 2 || msgs[0].Text != "Hi" {
		t.Errorf("messages = %+v; want trimmed %q stored", msgs, "Hi")
	}
}

func TestSubmit_WhitespaceOnlyIsNoOp(t *testing.T) {
	store := history.NewStore()
	p := NewTurnProcessor(store, EchoResponder{})

	prior := chatContext()
	sctx := p.Submit(prior, testDate, "   ")
	if sctx != prior {
		t.Errorf("context changed on blank send: %+v; want %+v", sctx, prior)
	}
	if got := store.Sessions("user1", testDate); len(got) != 0 {
		t.Errorf("sessions created on blank send: %v", got)
	}
}

func TestSubmit_WritesIntoSelectedSession(t *testing.T) {
	store := history.NewStore()
	p := NewTurnProcessor(store, EchoResponder{})

	sctx := p.NewChat(chatContext(), testDate)
	sctx = p.NewChat(sctx, testDate)
	if sctx.CurrentSession != "Chat 2" {
		t.Fatalf("CurrentSession = %q; want %q", sctx.CurrentSession, "Chat 2")
	}

	p.Submit(sctx, testDate, "into two")

	if msgs := store.Messages("user1", testDate, "Chat 1"); len(msgs) != 0 {
		t.Errorf("Chat 1 messages = %d; want 0", len(msgs))
	}
	if msgs := store.Messages("user1", testDate, "Chat 2"); len(msgs) != 2 {
		t.Errorf("Chat 2 messages = %d; want 2", len(msgs))
	}
}

func TestNewChat_LabelsAndNonce(t *testing.T) {
	p := NewTurnProcessor(history.NewStore(), EchoResponder{})

	sctx := chatContext()
	for i := 1; i <= 3; i++ {
		sctx = p.NewChat(sctx, testDate)
		want := fmt.Sprintf("Chat %d", i)
		if sctx.CurrentSession != want {
			t.Errorf("CurrentSession = %q; want %q", sctx.CurrentSession, want)
		}
		if sctx.InputNonce != i {
			t.Errorf("InputNonce = %d; want %d", sctx.InputNonce, i)
		}
	}
}

func TestSelectSession_NoStoreMutation(t *testing.T) {
	store := history.NewStore()
	p := NewTurnProcessor(store, EchoResponder{})

	sctx := p.NewChat(chatContext(), testDate)
	p.Submit(sctx, testDate, "one")
	before := store.Messages("user1", testDate, "Chat 1")

	sctx = p.SelectSession(sctx, "Chat 1")
	if sctx.CurrentSession != "Chat 1" {
		t.Errorf("CurrentSession = %q; want %q", sctx.CurrentSession, "Chat 1")
	}

	after := store.Messages("user1", testDate, "Chat 1")
	if len(before) != len(after) {
		t.Errorf("store mutated by SelectSession: %d -> %d messages", len(before), len(after))
	}
	if got := store.Sessions("user1", testDate); len(got) != 1 {
		t.Errorf("sessions = %v; want just Chat 1", got)
	}
}

func TestEnsureDefault_AssignsWithoutNonceAdvance(t *testing.T) {
	store := history.NewStore()
	p := NewTurnProcessor(store, EchoResponder{})

	sctx := p.EnsureDefault(chatContext(), testDate)
	if sctx.CurrentSession != history.DefaultLabel {
		t.Errorf("CurrentSession = %q; want %q", sctx.CurrentSession, history.DefaultLabel)
	}
	if sctx.InputNonce != 0 {
		t.Errorf("InputNonce = %d; want 0", sctx.InputNonce)
	}

	// Already-assigned contexts pass through.
	sctx.CurrentSession = "Chat 5"
	sctx = p.EnsureDefault(sctx, testDate)
	if sctx.CurrentSession != "Chat 5" {
		t.Errorf("CurrentSession = %q; want %q", sctx.CurrentSession, "Chat 5")
	}
}

func TestTranscript_ReverseChronological(t *testing.T) {
	store := history.NewStore()
	p := NewTurnProcessor(store, EchoResponder{})

	sctx := chatContext()
	for _, text := range []string{"A", "B", "C"} {
		sctx = p.Submit(sctx, testDate, text)
	}

	got := p.Transcript("user1", testDate, "Chat 1")
	want := []string{"Response to: C", "C", "Response to: B", "B", "Response to: A", "A"}
	if len(got) != len(want) {
		t.Fatalf("transcript length = %d; want %d", len(got), len(want))
	}
	for i, text := range want {
		if got[i].Text != text {
			t.Errorf("transcript[%d] = %q; want %q", i, got[i].Text, text)
		}
	}

	// Storage order stays chronological.
	stored := store.Messages("user1", testDate, "Chat 1")
	if stored[0].Text != "A" {
		t.Errorf("stored[0] = %q; want %q", stored[0].Text, "A")
	}
}
