// Package session owns the registry of live guest conversations.
package session

import (
	"sync"
	"time"

	"github.com/ricacasa/concierge/internal/model/conversation"
)

// DefaultTimeout is how long a session survives without guest activity.
const DefaultTimeout = 30 * time.Minute

// Store is the single writer for all conversation sessions. Expiry is
// authoritative on read; the per-create timers only bound memory when a
// guest never comes back.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*conversation.Session
	timeout  time.Duration
	now      func() time.Time
}

// NewStore returns a Store with the given idle timeout. A zero or
// negative timeout falls back to DefaultTimeout.
func NewStore(timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Store{
		sessions: make(map[string]*conversation.Session),
		timeout:  timeout,
		now:      time.Now,
	}
}

// Create provisions a fresh main-menu session for the participant,
// replacing any existing one, and schedules its expiry sweep.
func (s *Store) Create(id, displayName string) conversation.Session {
	now := s.now()
	sess := &conversation.Session{
		ID:           id,
		DisplayName:  displayName,
		State:        conversation.StateMainMenu,
		Context:      make(map[string]string),
		CreatedAt:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	out := copySession(sess)
	s.mu.Unlock()

	time.AfterFunc(s.timeout, func() { s.sweep(id) })

	return out
}

// Get returns the participant's session, refreshing its activity
// deadline. An entry past the idle timeout is evicted and reported
// absent. Only inbound-message handling may call this path; passive
// reads go through Peek or All so they cannot keep a session alive.
func (s *Store) Get(id string) (conversation.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return conversation.Session{}, false
	}

	now := s.now()
	if now.Sub(sess.LastActivity) > s.timeout {
		delete(s.sessions, id)
		return conversation.Session{}, false
	}

	sess.LastActivity = now
	return copySession(sess), true
}

// Peek returns the session without refreshing its activity deadline.
// Expired entries are still treated as absent and evicted.
func (s *Store) Peek(id string) (conversation.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return conversation.Session{}, false
	}
	if s.now().Sub(sess.LastActivity) > s.timeout {
		delete(s.sessions, id)
		return conversation.Session{}, false
	}
	return copySession(sess), true
}

// All returns every live session without refreshing activity deadlines,
// evicting any that have expired along the way.
func (s *Store) All() []conversation.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]conversation.Session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > s.timeout {
			delete(s.sessions, id)
			continue
		}
		out = append(out, copySession(sess))
	}
	return out
}

// UpdateState sets the session state, shallow-merges the context patch
// and refreshes the activity deadline. A missing session is a silent
// no-op; transitions are only issued right after a successful Get or
// Create, so absence here means the session expired mid-turn and the
// guest will simply re-enter the menu.
func (s *Store) UpdateState(id string, state conversation.State, patch map[string]string) (conversation.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return conversation.Session{}, false
	}

	sess.State = state
	for k, v := range patch {
		sess.Context[k] = v
	}
	sess.LastActivity = s.now()
	return copySession(sess), true
}

// Delete removes the participant's session. Idempotent.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// sweep deletes the session only if it is still past its idle timeout
// when the timer fires; activity since scheduling makes it a no-op.
func (s *Store) sweep(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	if s.now().Sub(sess.LastActivity) >= s.timeout {
		delete(s.sessions, id)
	}
}

func copySession(sess *conversation.Session) conversation.Session {
	out := *sess
	out.Context = make(map[string]string, len(sess.Context))
	for k, v := range sess.Context {
		out.Context[k] = v
	}
	return out
}
