package transport

import (
	"bufio"
	"context"
	"io"
	"log"
	"strings"

	"github.com/ricacasa/concierge/internal/status"
)

// LogClient is a development stand-in for a real chat-network adapter:
// outbound messages go to the process log, inbound messages are typed
// on a console reader, and control operations drive the status tracker
// directly. Production deployments swap in a real Client.
type LogClient struct {
	tracker     *status.Tracker
	sessionDir  string
	sessionName string
}

// NewLogClient returns a LogClient bound to the status tracker and the
// pairing session location.
func NewLogClient(tracker *status.Tracker, sessionDir, sessionName string) *LogClient {
	return &LogClient{tracker: tracker, sessionDir: sessionDir, sessionName: sessionName}
}

// SendText logs the outbound message.
func (c *LogClient) SendText(_ context.Context, participantID, text string) error {
	log.Printf("[transport] -> %s: %s", participantID, text)
	return nil
}

// Disconnect reports the client as logged out.
func (c *LogClient) Disconnect(context.Context) error {
	c.tracker.SetDisconnected("logout")
	return nil
}

// Reset tears down the pairing session folder and reports the client
// disconnected; the next start would need a fresh scan.
func (c *LogClient) Reset(ctx context.Context) error {
	if err := CleanSessionDir(ctx, c.sessionDir, c.sessionName); err != nil {
		return err
	}
	c.tracker.SetDisconnected("reset")
	return nil
}

// Run feeds console lines through the bridge as inbound messages from a
// single synthetic participant, so the whole responder can be exercised
// without a chat network. Blocks until the reader is drained or the
// context ends.
func (c *LogClient) Run(ctx context.Context, bridge *Bridge, r io.Reader) {
	bridge.OnReady("console")

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		bridge.OnMessage(Event{
			SenderID:   "console",
			SenderName: "Operator",
			Body:       line,
		})
	}
}
