// Package conversation routes inbound guest messages through the menu
// tree and decides every state transition.
package conversation

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ricacasa/concierge/internal/catalog"
	"github.com/ricacasa/concierge/internal/model/conversation"
	"github.com/ricacasa/concierge/internal/model/menu"
	"github.com/ricacasa/concierge/internal/service/queue"
	"github.com/ricacasa/concierge/internal/service/session"
	"github.com/ricacasa/concierge/internal/transport"
)

// DefaultDisplayName stands in when the chat network has no push name.
const DefaultDisplayName = "Guest"

// AfterCapture selects what follows a captured free-text reply.
type AfterCapture string

const (
	// AfterCaptureMenu returns the guest to the main menu (self-service).
	AfterCaptureMenu AfterCapture = "menu"
	// AfterCaptureHuman parks the guest in the human queue instead.
	AfterCaptureHuman AfterCapture = "human"
)

// Config carries the machine's behavioral switches.
type Config struct {
	// WelcomeDelay separates the welcome text from the menu that follows.
	WelcomeDelay time.Duration
	// StepDelay separates grouped informational sends within one turn.
	StepDelay time.Duration
	// AfterCapture pins the state that follows a captured reply.
	AfterCapture AfterCapture
	// PropagateSendErrors surfaces send failures to the transport layer
	// instead of logging and abandoning the turn.
	PropagateSendErrors bool
}

// Machine maps (session state, inbound text) to transitions and sends.
// Turns for the same participant are serialized; different participants
// may be in flight concurrently.
type Machine struct {
	cfg     Config
	store   *session.Store
	menu    *menu.Menu
	catalog *catalog.Catalog
	sender  transport.Sender
	handoff *queue.Queue

	sleep func(context.Context, time.Duration)

	mu    sync.Mutex
	locks map[string]*participantLock
}

// NewMachine wires the state machine to its collaborators.
func NewMachine(cfg Config, store *session.Store, m *menu.Menu, c *catalog.Catalog, sender transport.Sender, handoff *queue.Queue) *Machine {
	if cfg.AfterCapture == "" {
		cfg.AfterCapture = AfterCaptureMenu
	}
	return &Machine{
		cfg:     cfg,
		store:   store,
		menu:    m,
		catalog: c,
		sender:  sender,
		handoff: handoff,
		sleep:   pause,
		locks:   make(map[string]*participantLock),
	}
}

// HandleMessage processes one inbound message to completion, including
// every send it triggers. All failures are contained at this boundary
// unless PropagateSendErrors is set.
func (m *Machine) HandleMessage(ctx context.Context, ev transport.Event) error {
	if ev.IsGroup || ev.IsBroadcast || ev.IsFromMe {
		return nil
	}

	unlock := m.lockParticipant(ev.SenderID)
	defer unlock()

	err := m.route(ctx, ev)
	if err == nil {
		return nil
	}
	if m.cfg.PropagateSendErrors {
		return err
	}
	log.Printf("[machine] turn abandoned for %s: %v", ev.SenderID, err)
	return nil
}

func (m *Machine) route(ctx context.Context, ev transport.Event) error {
	id := ev.SenderID
	name := ev.SenderName
	if name == "" {
		name = DefaultDisplayName
	}

	original := strings.TrimSpace(ev.Body)
	normalized := strings.ToLower(original)

	log.Printf("[machine] message from %s (%s): %s", name, id, original)

	sess, ok := m.store.Get(id)

	// New conversation or an explicit restart.
	if !ok || isResetKeyword(normalized) {
		m.store.Create(id, name)
		return m.sendWelcome(ctx, id, name)
	}

	// Back to the main menu from any state.
	if isBackKeyword(normalized) {
		m.store.UpdateState(id, conversation.StateMainMenu, nil)
		return m.send(ctx, id, catalog.KeyMainMenu)
	}

	switch sess.State {
	case conversation.StateMainMenu:
		return m.handleMenuSelection(ctx, id, normalized, sess)
	case conversation.StateAwaitingInput:
		return m.handleCapturedInput(ctx, id, sess, original)
	case conversation.StateTalkToHuman:
		m.handoff.Add(queue.Entry{
			ParticipantID: id,
			DisplayName:   sess.DisplayName,
			Kind:          queue.KindWaiting,
			Body:          original,
		})
		log.Printf("[machine] guest message while queued for human (%s): %s", id, original)
		return m.send(ctx, id, catalog.KeyWaitingForHuman)
	default:
		// Corrupted session state: reset with a visible notice.
		if err := m.send(ctx, id, catalog.KeyInvalidOption, catalog.KeyMainMenu); err != nil {
			return err
		}
		m.store.UpdateState(id, conversation.StateMainMenu, nil)
		return nil
	}
}

func (m *Machine) sendWelcome(ctx context.Context, id, name string) error {
	if err := m.sendText(ctx, id, "welcome", m.catalog.Welcome(name)); err != nil {
		return err
	}
	m.sleep(ctx, m.cfg.WelcomeDelay)
	return m.send(ctx, id, catalog.KeyMainMenu)
}

// handleMenuSelection resolves a main-menu reply: a farewell keyword
// ends the conversation, a valid option number runs its action, and
// anything else re-prompts the menu. Farewells are only honored here so
// the word "bye" typed while a reply is being captured stays free text.
func (m *Machine) handleMenuSelection(ctx context.Context, id, normalized string, sess conversation.Session) error {
	if isFarewellKeyword(normalized) {
		m.store.Delete(id)
		return m.sendText(ctx, id, "goodbye", m.catalog.Goodbye(sess.DisplayName))
	}

	n, err := strconv.Atoi(normalized)
	if err != nil {
		return m.send(ctx, id, catalog.KeyInvalidOption, catalog.KeyMainMenu)
	}
	opt, ok := m.menu.ByNumber(n)
	if !ok {
		return m.send(ctx, id, catalog.KeyInvalidOption, catalog.KeyMainMenu)
	}

	log.Printf("[machine] guest %s selected: %s", id, opt.Title)
	return m.executeAction(ctx, id, opt)
}

func (m *Machine) executeAction(ctx context.Context, id string, opt menu.Option) error {
	switch opt.Action {
	case menu.ActionShowInfo:
		body, ok := m.catalog.Lookup(opt.Response)
		if !ok {
			body, _ = m.catalog.Lookup(catalog.KeyInfoNotFound)
		}
		if err := m.sendText(ctx, id, opt.Response, body); err != nil {
			return err
		}
		m.sleep(ctx, m.cfg.StepDelay)
		if err := m.send(ctx, id, catalog.KeyAnythingElse, catalog.KeyMainMenu); err != nil {
			return err
		}
		m.store.UpdateState(id, conversation.StateMainMenu, nil)
		return nil

	case menu.ActionRequestInput:
		prompt, ok := m.catalog.Lookup(opt.Response)
		if !ok {
			prompt, _ = m.catalog.Lookup(catalog.KeyRequestDetails)
		}
		if err := m.sendText(ctx, id, opt.Response, prompt); err != nil {
			return err
		}
		if err := m.send(ctx, id, catalog.KeyBackToMenu); err != nil {
			return err
		}
		m.store.UpdateState(id, conversation.StateAwaitingInput, map[string]string{
			conversation.ContextInputType:      opt.InputType,
			conversation.ContextSelectedOption: opt.ID,
		})
		return nil

	case menu.ActionTransferToHuman:
		if err := m.send(ctx, id, catalog.KeyTransferToHuman); err != nil {
			return err
		}
		m.store.UpdateState(id, conversation.StateTalkToHuman, nil)
		return nil

	default:
		if err := m.send(ctx, id, catalog.KeyFeatureNotAvailable, catalog.KeyMainMenu); err != nil {
			return err
		}
		m.store.UpdateState(id, conversation.StateMainMenu, nil)
		return nil
	}
}

func (m *Machine) handleCapturedInput(ctx context.Context, id string, sess conversation.Session, original string) error {
	m.handoff.Add(queue.Entry{
		ParticipantID:  id,
		DisplayName:    sess.DisplayName,
		Kind:           queue.KindInput,
		InputType:      sess.Context[conversation.ContextInputType],
		SelectedOption: sess.Context[conversation.ContextSelectedOption],
		Body:           original,
	})
	log.Printf("[machine] guest input (%s): %s", sess.Context[conversation.ContextInputType], original)

	if err := m.send(ctx, id, catalog.KeyMessageReceived); err != nil {
		return err
	}
	m.sleep(ctx, m.cfg.StepDelay)
	if err := m.send(ctx, id, catalog.KeyAnythingElse); err != nil {
		return err
	}

	if m.cfg.AfterCapture == AfterCaptureHuman {
		m.store.UpdateState(id, conversation.StateTalkToHuman, nil)
		return nil
	}

	if err := m.send(ctx, id, catalog.KeyMainMenu); err != nil {
		return err
	}
	m.store.UpdateState(id, conversation.StateMainMenu, nil)
	return nil
}

// send resolves one or more catalog keys and delivers them in order.
func (m *Machine) send(ctx context.Context, id string, keys ...string) error {
	for _, key := range keys {
		body, _ := m.catalog.Lookup(key)
		if err := m.sendText(ctx, id, key, body); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) sendText(ctx context.Context, id, key, body string) error {
	if err := m.sender.SendText(ctx, id, body); err != nil {
		log.Printf("[machine] send %q to %s failed: %v", key, id, err)
		return err
	}
	return nil
}

type participantLock struct {
	mu   sync.Mutex
	refs int
}

// lockParticipant serializes turns for one participant and returns the
// matching release func. Entries are refcounted and dropped when the
// last holder releases, so the map only holds ids with turns in flight.
func (m *Machine) lockParticipant(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &participantLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

func isResetKeyword(s string) bool {
	switch s {
	case "menu", "start", "hi", "hello":
		return true
	}
	return false
}

func isBackKeyword(s string) bool {
	switch s {
	case "0", "back", "menu":
		return true
	}
	return false
}

func isFarewellKeyword(s string) bool {
	switch s {
	case "bye", "goodbye":
		return true
	}
	return false
}

func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
