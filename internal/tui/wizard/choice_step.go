package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/tui/theme"
)

// ChoiceStep renders a step that picks one option for a single field.
type ChoiceStep struct {
	spec     inquiry.StepSpec
	session  *inquiry.Session
	field    inquiry.Field
	options  []string
	cursor   int
	selected int // -1 when the record holds no valid option
	focused  bool
	width    int
	height   int
}

// NewChoiceStep creates a choice list for the step's single field.
func NewChoiceStep(spec inquiry.StepSpec, session *inquiry.Session) *ChoiceStep {
	c := &ChoiceStep{spec: spec, session: session, selected: -1, width: 60}
	if len(spec.Fields) > 0 {
		c.field = spec.Fields[0]
		c.options = inquiry.Options(c.field)
	}
	c.load()
	return c
}

func (c *ChoiceStep) load() {
	c.selected = -1
	value := c.session.Record.Get(c.field)
	for i, opt := range c.options {
		if opt == value {
			c.selected = i
			c.cursor = i
			return
		}
	}
}

// Init initializes the choice step.
func (c *ChoiceStep) Init() tea.Cmd {
	return nil
}

// Focus reloads the selection from the record.
func (c *ChoiceStep) Focus() tea.Cmd {
	c.load()
	c.focused = true
	return nil
}

// Blur removes the cursor highlight.
func (c *ChoiceStep) Blur() {
	c.focused = false
}

// Selected returns the chosen option, or "" when nothing is chosen.
func (c *ChoiceStep) Selected() string {
	if c.selected < 0 {
		return ""
	}
	return c.options[c.selected]
}

// Update handles messages for the choice step.
func (c *ChoiceStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.options) == 0 {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.options)-1 {
			c.cursor++
		}
	case "space":
		c.choose()
	case "enter":
		c.choose()
		return emit(NextRequestedMsg{})
	case "tab":
		return emit(TabExitForwardMsg{})
	case "shift+tab":
		return emit(TabExitBackwardMsg{})
	}
	return nil
}

func (c *ChoiceStep) choose() {
	c.selected = c.cursor
	c.session.Record.Set(c.field, c.options[c.cursor])
}

// View renders the option list.
func (c *ChoiceStep) View() string {
	st := theme.Current().S()
	var b strings.Builder

	b.WriteString(st.Label.Render(c.field.Label() + " *"))
	b.WriteString("\n\n")

	for i, opt := range c.options {
		mark := "○"
		if i == c.selected {
			mark = "●"
		}
		line := mark + " " + opt
		if c.focused && i == c.cursor {
			b.WriteString(st.Selected.Render("▸ " + line))
		} else if i == c.selected {
			b.WriteString("  " + st.Progress.Render(line))
		} else {
			b.WriteString("  " + st.Label.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SetSize updates the size of the choice step.
func (c *ChoiceStep) SetSize(width, height int) {
	c.width = width
	c.height = height
}
