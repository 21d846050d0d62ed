// Package catalog maps symbolic keys to guest-facing response templates.
package catalog

import (
	"fmt"
	"strings"

	"github.com/ricacasa/concierge/internal/model/menu"
)

// Reserved keys used by the conversation machine.
const (
	KeyMainMenu            = "mainMenu"
	KeyInvalidOption       = "invalidOption"
	KeyError               = "error"
	KeyAnythingElse        = "anythingElse"
	KeyInfoNotFound        = "infoNotFound"
	KeyFeatureNotAvailable = "featureNotAvailable"
	KeyMessageReceived     = "messageReceived"
	KeyTransferToHuman     = "transferToHuman"
	KeyWaitingForHuman     = "waitingForHuman"
	KeyBackToMenu          = "backToMenu"
	KeyRequestDetails      = "requestDetails"
)

// Catalog resolves template keys to message bodies.
type Catalog struct {
	templates map[string]string
}

// New builds the catalog; the main-menu body is rendered from the menu
// definition so the two can never drift apart.
func New(m *menu.Menu) *Catalog {
	t := defaultTemplates()
	t[KeyMainMenu] = m.Render()
	return &Catalog{templates: t}
}

// Lookup resolves a key to its template body.
func (c *Catalog) Lookup(key string) (string, bool) {
	body, ok := c.templates[key]
	return body, ok
}

// Welcome greets a guest by display name.
func (c *Catalog) Welcome(name string) string {
	return fmt.Sprintf(strings.TrimSpace(`
Hello, *%s*! 👋

Thank you for contacting *Rica Casa*. We’ve received your message and will get back to you as soon as possible.

Please feel free to share any details or questions about how we can assist you. In *our catalogue*, you'll find houses available for rent. 🏠
`), name)
}

// Goodbye closes a conversation by display name.
func (c *Catalog) Goodbye(name string) string {
	return fmt.Sprintf(strings.TrimSpace(`
👋 Thank you for contacting us, *%s*!

We hope you have a wonderful stay.
See you soon!

_Type "menu" at any time to start a new conversation._
`), name)
}

func defaultTemplates() map[string]string {
	return map[string]string{
		KeyInvalidOption: "❌ Invalid option. Please send only the *number* of the option you want.",

		KeyError: "⚠️ An error occurred. Let's go back to the main menu.",

		KeyAnythingElse: "If you would like to discuss another matter, please type your message and we will respond as soon as possible.",

		KeyInfoNotFound: "ℹ️ Information not available at the moment.",

		KeyFeatureNotAvailable: "🚧 This feature is still under development.",

		KeyMessageReceived: "✅ Thank you! Your message has been received. Our team will get back to you shortly.",

		KeyWaitingForHuman: "⏳ You are in the queue. Please wait...",

		KeyBackToMenu: "_Type *0* to go back to the main menu._",

		KeyRequestDetails: "📝 Please provide the details of your request:",

		KeyTransferToHuman: strings.TrimSpace(`
👤 *Connecting you to our team*

Please wait a moment, one of our team members will respond to you shortly.

⏰ *Response time:*
We typically respond within a few hours during business hours.
`),

		"instantBooking": strings.TrimSpace(`
📅 *Instant Booking*

Your reservation is confirmed automatically.

You will receive all the important information 24h before your check in, including:
• Reservation confirmation
• Check-in and check-out times
• Codes, address and all information needed for check in

Everything is sent automatically to make your experience smooth and easy. ✨
`),

		"earlyLateCheckout": strings.TrimSpace(`
⏰ *Early Check-in or Late Check-out*

The availability of early check-in or late check-out depends on whether we have another guest on the same day.

*Early check-in:*
You're welcome to drop your luggage from 1:00 PM.

*Late check-out:*
This is subject to availability, depending on the next check-in.

📌 Please make sure to check with us *24 hours before* check-in or check-out so we can confirm availability.
`),

		"specialOccasion": strings.TrimSpace(`
🎉 *Special Occasion*

Are you celebrating a special occasion?

Let us know the occasion and any special requests.
We will do our best to make your stay even more memorable. ✨

Please type your message below:
`),

		"parkingInfo": strings.TrimSpace(`
🚗 *Parking Information*

Most of our properties are central and for this reason do not have parking available.

For accurate information, please tell us the name of the property you will be staying at.
We will be happy to assist you.

💡 *Tip:* There is free street parking after 8pm and pay & display during the day in some roads. However, there is an app that you can download called *'Just Park'* - it will tell you the available spaces to rent by the hour or day in your area. Check it out! 😉
`),

		"changeReservation": strings.TrimSpace(`
✏️ *I Need to Change My Reservation*

To assist you, we need to understand:
• The reason for the change
• What you would like to modify in your reservation
• Your full name and reservation dates

⚠️ *Important:*
Any changes must be requested at least *7 days in advance*.
Unfortunately, we are unable to make changes within 7 days of check-in.

Please type your request below:
`),

		"generalQuestion": strings.TrimSpace(`
❓ *I Have a Question*

Please write your question below.
How can we help you?
`),

		"requestPropertyName": "🏠 Please tell us the *name of the property* you will be staying at:",
	}
}
