package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/jothom/inquiry/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label   string
	State   ButtonState
	Primary bool // drawn in the accent color when enabled and not focused
}

// Enabled reports whether the button can be activated.
func (b Button) Enabled() bool {
	return b.State != ButtonDisabled
}

// Button labels
const (
	labelBack       = "← Back"
	labelNext       = "Next →"
	labelSubmit     = "Submit Project Details"
	labelSubmitting = "Submitting..."
)

// ButtonBar manages a set of buttons with consistent styling.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Buttons returns the buttons in display order.
func (b *ButtonBar) Buttons() []Button {
	return b.buttons
}

// Render renders the button bar centered in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch {
		case btn.State == ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case btn.State == ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		case btn.Primary:
			rendered = append(rendered, s.ButtonSubmit.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// CreateBackNextButtons creates the Back / Next pair.
// focused is the index of the focused button, or -1. A disabled button is
// never drawn focused.
func CreateBackNextButtons(backEnabled, nextEnabled bool, nextLabel string, focused int) []Button {
	back := Button{Label: labelBack, State: ButtonNormal}
	if !backEnabled {
		back.State = ButtonDisabled
	}
	next := Button{Label: nextLabel, State: ButtonNormal}
	if !nextEnabled {
		next.State = ButtonDisabled
	}

	buttons := []Button{back, next}
	if focused >= 0 && focused < len(buttons) && buttons[focused].Enabled() {
		buttons[focused].State = ButtonFocused
	}
	return buttons
}

// CreateBackSubmitButtons creates the Back / Submit pair for the final step.
func CreateBackSubmitButtons(submitEnabled, submitting bool, focused int) []Button {
	label := labelSubmit
	if submitting {
		label = labelSubmitting
	}
	buttons := CreateBackNextButtons(true, submitEnabled && !submitting, label, focused)
	buttons[1].Primary = true
	return buttons
}
