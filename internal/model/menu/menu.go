package menu

import (
	"fmt"
	"strings"
)

// Menu exposes ordered option lookup for the conversation machine.
type Menu struct {
	options []Option
}

// New returns a Menu backed by the supplied options.
func New(options []Option) *Menu {
	return &Menu{options: append([]Option(nil), options...)}
}

// Options returns a copy of the option list.
func (m *Menu) Options() []Option {
	return append([]Option(nil), m.options...)
}

// ByNumber resolves a 1-based selection number to its option.
func (m *Menu) ByNumber(n int) (Option, bool) {
	if n < 1 || n > len(m.options) {
		return Option{}, false
	}
	return m.options[n-1], true
}

// Len returns the number of selectable options.
func (m *Menu) Len() int {
	return len(m.options)
}

// Render builds the numbered main-menu body from the option list.
func (m *Menu) Render() string {
	var b strings.Builder
	b.WriteString("*How can we help you today?*\n\n")

	for i, opt := range m.options {
		fmt.Fprintf(&b, "*%d-* %s\n", i+1, opt.Title)
		if opt.Subtitle != "" {
			fmt.Fprintf(&b, "_%s_\n", opt.Subtitle)
		}
		b.WriteString("\n")
	}

	b.WriteString("To reply, simply send *the number* corresponding to your chosen option.")
	return b.String()
}
