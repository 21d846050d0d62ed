package conversation

import "time"

// State identifies where a guest is in the menu tree.
type State string

const (
	StateMainMenu      State = "MAIN_MENU"
	StateAwaitingInput State = "AWAITING_INPUT"
	StateTalkToHuman   State = "TALK_TO_HUMAN"
)

// Known context keys recorded alongside a state transition.
const (
	ContextInputType      = "inputType"
	ContextSelectedOption = "selectedOption"
)

// Session captures the live conversational state for one participant.
type Session struct {
	ID           string            `json:"id"`
	DisplayName  string            `json:"displayName"`
	State        State             `json:"state"`
	Context      map[string]string `json:"context"`
	CreatedAt    time.Time         `json:"createdAt"`
	LastActivity time.Time         `json:"lastActivity"`
}
