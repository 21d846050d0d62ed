// Package status tracks the chat-network connection state for the
// operator dashboard.
package status

import (
	"sync"
	"time"
)

// Status enumerates the pairing/connection lifecycle.
type Status string

const (
	Disconnected  Status = "disconnected"
	AwaitingScan  Status = "awaiting_scan"
	Authenticated Status = "authenticated"
	Connected     Status = "connected"
	Loading       Status = "loading"
	AuthFailure   Status = "auth_failure"
)

// Snapshot is one point-in-time view of the connection.
type Snapshot struct {
	Status         Status    `json:"status"`
	Phone          string    `json:"phone,omitempty"`
	QRCode         string    `json:"qrCode,omitempty"`
	LoadingPercent int       `json:"loadingPercent,omitempty"`
	LoadingMessage string    `json:"loadingMessage,omitempty"`
	Error          string    `json:"error,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Sink receives every published snapshot.
type Sink interface {
	Publish(Snapshot)
}

// Tracker is the single writer of connection status. The transport
// adapter mutates it; the dashboard reads Current or subscribes via
// the sink passed at construction.
type Tracker struct {
	mu   sync.Mutex
	snap Snapshot
	sink Sink
	now  func() time.Time
}

// NewTracker starts disconnected. sink may be nil.
func NewTracker(sink Sink) *Tracker {
	return &Tracker{
		snap: Snapshot{Status: Disconnected},
		sink: sink,
		now:  time.Now,
	}
}

// Current returns the latest snapshot.
func (t *Tracker) Current() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// SetAwaitingScan records a fresh pairing code awaiting a scan.
func (t *Tracker) SetAwaitingScan(qrDataURL string) {
	t.publish(Snapshot{Status: AwaitingScan, QRCode: qrDataURL})
}

// SetAuthenticated records a successful handshake, before readiness.
func (t *Tracker) SetAuthenticated() {
	t.publish(Snapshot{Status: Authenticated})
}

// SetConnected records the client as ready, with the paired phone
// number when it could be determined.
func (t *Tracker) SetConnected(phone string) {
	t.publish(Snapshot{Status: Connected, Phone: phone})
}

// SetLoading records pairing progress.
func (t *Tracker) SetLoading(percent int, message string) {
	t.publish(Snapshot{Status: Loading, LoadingPercent: percent, LoadingMessage: message})
}

// SetAuthFailure records a failed handshake. The raw error text is
// operator-facing only.
func (t *Tracker) SetAuthFailure(errText string) {
	t.publish(Snapshot{Status: AuthFailure, Error: errText})
}

// SetDisconnected records a dropped or closed connection.
func (t *Tracker) SetDisconnected(reason string) {
	t.publish(Snapshot{Status: Disconnected, Reason: reason})
}

func (t *Tracker) publish(snap Snapshot) {
	snap.Timestamp = t.now().UTC()

	t.mu.Lock()
	t.snap = snap
	sink := t.sink
	t.mu.Unlock()

	if sink != nil {
		sink.Publish(snap)
	}
}
