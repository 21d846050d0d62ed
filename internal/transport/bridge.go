package transport

import (
	"context"
	"log"

	"github.com/ricacasa/concierge/internal/status"
)

// Handler consumes one inbound message to completion.
type Handler interface {
	HandleMessage(ctx context.Context, ev Event) error
}

// Bridge sits between the chat-network adapter and the core: it mirrors
// connection events into the status tracker and dispatches inbound
// messages to the conversation machine. Group, broadcast and own-echo
// traffic is dropped here and never reaches the machine.
type Bridge struct {
	tracker *status.Tracker
	handler Handler
}

// NewBridge wires the adapter callbacks to the tracker and handler.
func NewBridge(tracker *status.Tracker, handler Handler) *Bridge {
	return &Bridge{tracker: tracker, handler: handler}
}

// OnQR reports a fresh pairing code, already rendered as a data URL.
func (b *Bridge) OnQR(qrDataURL string) {
	log.Printf("[transport] pairing code generated")
	b.tracker.SetAwaitingScan(qrDataURL)
}

// OnAuthenticated reports a successful handshake.
func (b *Bridge) OnAuthenticated() {
	log.Printf("[transport] authenticated")
	b.tracker.SetAuthenticated()
}

// OnReady reports the client as connected and usable.
func (b *Bridge) OnReady(phone string) {
	log.Printf("[transport] connected as %s", phone)
	b.tracker.SetConnected(phone)
}

// OnAuthFailure reports a failed handshake.
func (b *Bridge) OnAuthFailure(message string) {
	log.Printf("[transport] authentication failed: %s", message)
	b.tracker.SetAuthFailure(message)
}

// OnLoading reports pairing progress.
func (b *Bridge) OnLoading(percent int, message string) {
	b.tracker.SetLoading(percent, message)
}

// OnDisconnected reports a dropped or closed connection.
func (b *Bridge) OnDisconnected(reason string) {
	log.Printf("[transport] disconnected: %s", reason)
	b.tracker.SetDisconnected(reason)
}

// OnMessage routes one inbound message. Each message is handled on its
// own goroutine so a slow turn (delayed sends) never blocks other
// participants; the machine serializes turns per participant itself.
func (b *Bridge) OnMessage(ev Event) {
	if ev.IsGroup || ev.IsBroadcast || ev.IsFromMe {
		return
	}

	go func() {
		if err := b.handler.HandleMessage(context.Background(), ev); err != nil {
			log.Printf("[transport] message handling failed for %s: %v", ev.SenderID, err)
		}
	}()
}
