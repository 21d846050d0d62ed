// Package transport defines the contracts between the responder core
// and the external chat-network client.
package transport

import "context"

// Event is one inbound message as delivered by the chat network.
type Event struct {
	SenderID    string
	SenderName  string
	Body        string
	IsGroup     bool
	IsBroadcast bool
	IsFromMe    bool
}

// Sender delivers a text message to one participant. Implementations
// must preserve per-participant ordering for sequential calls.
type Sender interface {
	SendText(ctx context.Context, participantID, text string) error
}

// Client is the full control contract with the chat-network adapter.
type Client interface {
	Sender

	// Disconnect logs the adapter out of the chat network.
	Disconnect(ctx context.Context) error

	// Reset tears the pairing session down so the next start requires
	// a fresh scan.
	Reset(ctx context.Context) error
}
