// Package history owns the per-user, per-day chat log. Sessions are grouped
// into day buckets keyed by ISO calendar date; labels are generated per
// bucket and are unique only within one date, which is all the sidebar's
// day-grouped display relies on.
package history

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mbagrov/chatshell/internal/models"
)

// DefaultLabel is the session assigned to the chat view when the context
// has no active session yet.
const DefaultLabel = "Chat 1"

// DayBucket holds one date's chat sessions for one user, in creation order.
type DayBucket struct {
	order    []string
	sessions map[string][]models.Message
}

func newDayBucket() *DayBucket {
	return &DayBucket{sessions: make(map[string][]models.Message)}
}

// Len returns the number of sessions in the bucket.
func (b *DayBucket) Len() int { return len(b.order) }

// UserChatStore holds all day buckets for one user. It is created on the
// user's first login of the process lifetime and never destroyed.
type UserChatStore struct {
	days map[string]*DayBucket
}

func (u *UserChatStore) day(date string) *DayBucket {
	bucket, ok := u.days[date]
	if !ok {
		bucket = newDayBucket()
		u.days[date] = bucket
	}
	return bucket
}

// Store is the process-wide chat history, keyed by username. Only insertion
// into the username map is shared across users, so that map is the single
// guarded structure; each user's subtree has exactly one writer (that user's
// request flow) and needs no further locking.
type Store struct {
	mu    sync.RWMutex
	users map[string]*UserChatStore
}

// NewStore returns an empty chat history store.
func NewStore() *Store {
	return &Store{users: make(map[string]*UserChatStore)}
}

// EnsureUser lazily creates the user's chat store. Idempotent; safe to call
// from concurrent first logins of different users.
func (s *Store) EnsureUser(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		s.users[username] = &UserChatStore{days: make(map[string]*DayBucket)}
	}
}

func (s *Store) user(username string) *UserChatStore {
	s.mu.RLock()
	u := s.users[username]
	s.mu.RUnlock()
	if u == nil {
		s.EnsureUser(username)
		s.mu.RLock()
		u = s.users[username]
		s.mu.RUnlock()
	}
	return u
}

// EnsureDay creates an empty bucket for the date if absent. Idempotent.
func (s *Store) EnsureDay(username, date string) {
	s.user(username).day(date)
}

// CreateSession inserts an empty session into the date's bucket and returns
// its generated label, "Chat N" where N counts sessions already in the
// bucket plus one. Labels repeat across dates; callers must not treat them
// as globally unique.
func (s *Store) CreateSession(username, date string) string {
	bucket := s.user(username).day(date)
	label := fmt.Sprintf("Chat %d", bucket.Len()+1)
	bucket.order = append(bucket.order, label)
	bucket.sessions[label] = []models.Message{}
	return label
}

// GetOrCreateDefault resolves the session the chat view should write into.
// An empty current label assigns DefaultLabel, creating that session if it
// does not already exist under that exact label; a non-empty label is
// returned unchanged.
func (s *Store) GetOrCreateDefault(username, date, current string) string {
	if current != "" {
		return current
	}
	bucket := s.user(username).day(date)
	if _, ok := bucket.sessions[DefaultLabel]; !ok {
		bucket.order = append(bucket.order, DefaultLabel)
		bucket.sessions[DefaultLabel] = []models.Message{}
	}
	return DefaultLabel
}

// AppendTurn appends one exchange to the session: the user's text as an
// info message followed by the response as a success message. Both land in
// one call; a session has a single writer, so no reader can observe the
// half-appended state.
func (s *Store) AppendTurn(username, date, label, userText, responseText string) {
	bucket := s.user(username).day(date)
	bucket.sessions[label] = append(bucket.sessions[label],
		models.Message{Role: models.RoleInfo, Text: userText},
		models.Message{Role: models.RoleSuccess, Text: responseText},
	)
}

// Messages returns a copy of the session's log in chronological order.
// Display-side reversal is the caller's projection, not the store's.
func (s *Store) Messages(username, date, label string) []models.Message {
	bucket := s.user(username).day(date)
	msgs := bucket.sessions[label]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Sessions returns the date's session labels in creation order.
func (s *Store) Sessions(username, date string) []string {
	bucket := s.user(username).day(date)
	out := make([]string, len(bucket.order))
	copy(out, bucket.order)
	return out
}

// Days returns the user's dates sorted descending, most recent first. The
// passed current day is always present, created empty if needed, so the
// sidebar can render today's group before any chat exists.
func (s *Store) Days(username, today string) []string {
	u := s.user(username)
	u.day(today)
	out := make([]string, 0, len(u.days))
	for date := range u.days {
		out = append(out, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
