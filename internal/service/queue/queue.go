// Package queue records guest messages that need a human follow-up.
package queue

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes why an entry was recorded.
type Kind string

const (
	// KindInput is free text captured by a menu option that requested it.
	KindInput Kind = "input"
	// KindWaiting is a message sent while the guest sits in the human queue.
	KindWaiting Kind = "waiting"
)

// Entry is one recorded guest message awaiting team review.
type Entry struct {
	ID             string    `json:"id"`
	ParticipantID  string    `json:"participantId"`
	DisplayName    string    `json:"displayName"`
	Kind           Kind      `json:"kind"`
	InputType      string    `json:"inputType,omitempty"`
	SelectedOption string    `json:"selectedOption,omitempty"`
	Body           string    `json:"body"`
	ReceivedAt     time.Time `json:"receivedAt"`
}

// Queue is an in-memory, append-only record of handoff entries.
type Queue struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{now: time.Now}
}

// Add records an entry and returns it with id and timestamp filled in.
func (q *Queue) Add(e Entry) Entry {
	e.ID = uuid.NewString()
	e.ReceivedAt = q.now().UTC()

	q.mu.Lock()
	q.entries = append(q.entries, e)
	q.mu.Unlock()

	return e
}

// Entries returns a copy of everything recorded so far, oldest first.
func (q *Queue) Entries() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}
