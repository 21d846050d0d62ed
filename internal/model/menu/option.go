package menu

// Action names what selecting an option does.
type Action string

const (
	ActionShowInfo        Action = "SHOW_INFO"
	ActionRequestInput    Action = "REQUEST_INPUT"
	ActionTransferToHuman Action = "TRANSFER_TO_HUMAN"
)

// Option is one selectable entry in the main menu.
type Option struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	Emoji     string `json:"emoji,omitempty"`
	Action    Action `json:"action"`
	Response  string `json:"response,omitempty"`
	InputType string `json:"inputType,omitempty"`
}

// Seed provides the default guest-facing menu.
func Seed() []Option {
	return []Option{
		{
			ID:       "instant_booking",
			Title:    "Instant booking",
			Subtitle: "I want to book now",
			Emoji:    "📅",
			Action:   ActionShowInfo,
			Response: "instantBooking",
		},
		{
			ID:       "early_late_checkout",
			Title:    "Early check-in / Late check-out",
			Subtitle: "Check availability",
			Emoji:    "⏰",
			Action:   ActionShowInfo,
			Response: "earlyLateCheckout",
		},
		{
			ID:        "special_occasion",
			Title:     "Special occasion",
			Subtitle:  "Let us know if you're celebrating something special",
			Emoji:     "🎉",
			Action:    ActionRequestInput,
			Response:  "specialOccasion",
			InputType: "special_request",
		},
		{
			ID:       "parking",
			Title:    "Parking information",
			Subtitle: "Parking details and availability",
			Emoji:    "🚗",
			Action:   ActionShowInfo,
			Response: "parkingInfo",
		},
		{
			ID:        "change_reservation",
			Title:     "Change my reservation",
			Subtitle:  "I need to modify my booking",
			Emoji:     "✏️",
			Action:    ActionRequestInput,
			Response:  "changeReservation",
			InputType: "reservation_change",
		},
		{
			ID:        "question",
			Title:     "I have a question",
			Subtitle:  "I have another enquiry",
			Emoji:     "❓",
			Action:    ActionRequestInput,
			Response:  "generalQuestion",
			InputType: "general_question",
		},
	}
}
