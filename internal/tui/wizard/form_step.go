package wizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/tui/theme"
)

var placeholders = map[inquiry.Field]string{
	inquiry.FieldFullName:     "e.g., Thandi Mokoena",
	inquiry.FieldEmail:        "e.g., thandi@example.com",
	inquiry.FieldPhoneNumber:  "e.g., 082 555 0199",
	inquiry.FieldStreetOrArea: "e.g., 12 Main Road or Sea Point",
	inquiry.FieldCityTown:     "e.g., Cape Town",
}

// formField is one row of a form step. Enumerated fields are drawn as a
// selector instead of a text input.
type formField struct {
	field   inquiry.Field
	input   textinput.Model
	options []string
	choice  int // index into options, -1 when nothing is chosen
}

func (f *formField) isSelector() bool {
	return f.options != nil
}

// load copies the record value into the widget.
func (f *formField) load(r *inquiry.Record) {
	value := r.Get(f.field)
	if !f.isSelector() {
		f.input.SetValue(value)
		return
	}
	f.choice = -1
	for i, opt := range f.options {
		if opt == value {
			f.choice = i
			break
		}
	}
}

// cycle moves the selector by delta, wrapping at both ends.
func (f *formField) cycle(delta int) string {
	n := len(f.options)
	if f.choice < 0 {
		if delta < 0 {
			f.choice = n - 1
		} else {
			f.choice = 0
		}
	} else {
		f.choice = (f.choice + delta + n) % n
	}
	return f.options[f.choice]
}

// FormStep renders a step made of several single-line fields.
type FormStep struct {
	spec    inquiry.StepSpec
	session *inquiry.Session
	fields  []*formField
	focus   int
	focused bool
	width   int
	height  int
}

// NewFormStep creates a form for the given step.
func NewFormStep(spec inquiry.StepSpec, session *inquiry.Session) *FormStep {
	fs := &FormStep{spec: spec, session: session, width: 60}
	for _, f := range spec.Fields {
		ff := &formField{field: f, options: inquiry.Options(f), choice: -1}
		if !ff.isSelector() {
			ti := textinput.New()
			ti.Placeholder = placeholders[f]
			ti.CharLimit = 200
			ff.input = ti
		}
		ff.load(&session.Record)
		fs.fields = append(fs.fields, ff)
	}
	return fs
}

// Init initializes the form step.
func (s *FormStep) Init() tea.Cmd {
	return textinput.Blink
}

// Focus reloads the record into the fields and focuses the current one.
func (s *FormStep) Focus() tea.Cmd {
	for _, f := range s.fields {
		f.load(&s.session.Record)
	}
	s.focused = true
	return s.focusField(s.focus)
}

// Blur blurs every field.
func (s *FormStep) Blur() {
	s.focused = false
	for _, f := range s.fields {
		if !f.isSelector() {
			f.input.Blur()
		}
	}
}

// FocusedField returns the field that has keyboard focus.
func (s *FormStep) FocusedField() inquiry.Field {
	if len(s.fields) == 0 {
		return ""
	}
	return s.fields[s.focus].field
}

func (s *FormStep) focusField(i int) tea.Cmd {
	if len(s.fields) == 0 {
		return nil
	}
	s.focus = max(0, min(i, len(s.fields)-1))
	var cmd tea.Cmd
	for idx, f := range s.fields {
		if f.isSelector() {
			continue
		}
		if idx == s.focus {
			cmd = f.input.Focus()
		} else {
			f.input.Blur()
		}
	}
	return cmd
}

// Update handles messages for the form step.
func (s *FormStep) Update(msg tea.Msg) tea.Cmd {
	if len(s.fields) == 0 {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s.updateInput(msg)
	}

	current := s.fields[s.focus]
	switch keyMsg.String() {
	case "tab", "down":
		if s.focus == len(s.fields)-1 {
			if keyMsg.String() == "tab" {
				return emit(TabExitForwardMsg{})
			}
			return nil
		}
		return s.focusField(s.focus + 1)
	case "shift+tab", "up":
		if s.focus == 0 {
			if keyMsg.String() == "shift+tab" {
				return emit(TabExitBackwardMsg{})
			}
			return nil
		}
		return s.focusField(s.focus - 1)
	case "enter":
		if s.focus == len(s.fields)-1 {
			return emit(NextRequestedMsg{})
		}
		return s.focusField(s.focus + 1)
	}

	if current.isSelector() {
		switch keyMsg.String() {
		case "left", "h":
			s.session.Record.Set(current.field, current.cycle(-1))
		case "right", "l", "space":
			s.session.Record.Set(current.field, current.cycle(1))
		}
		return nil
	}

	return s.updateInput(msg)
}

func (s *FormStep) updateInput(msg tea.Msg) tea.Cmd {
	current := s.fields[s.focus]
	if current.isSelector() {
		return nil
	}
	var cmd tea.Cmd
	current.input, cmd = current.input.Update(msg)
	s.session.Record.Set(current.field, current.input.Value())
	return cmd
}

// View renders the form fields.
func (s *FormStep) View() string {
	st := theme.Current().S()
	var b strings.Builder

	for i, f := range s.fields {
		label := f.field.Label()
		if s.required(f.field) {
			label += " *"
		}
		if s.focused && i == s.focus {
			b.WriteString(st.Selected.Render("▸ " + label))
		} else {
			b.WriteString(st.Label.Render("  " + label))
		}
		b.WriteString("\n")

		if f.isSelector() {
			b.WriteString("  " + s.renderSelector(f, s.focused && i == s.focus))
		} else {
			b.WriteString("  " + f.input.View())
		}
		b.WriteString("\n\n")
	}

	b.WriteString(st.Muted.Render("* required"))
	return lipgloss.NewStyle().Width(s.width).Render(b.String())
}

func (s *FormStep) renderSelector(f *formField, active bool) string {
	st := theme.Current().S()
	parts := make([]string, 0, len(f.options))
	for i, opt := range f.options {
		switch {
		case i == f.choice:
			parts = append(parts, st.Selected.Render("● "+opt))
		default:
			parts = append(parts, st.Muted.Render("○ "+opt))
		}
	}
	line := strings.Join(parts, "  ")
	if active {
		line = st.HintKey.Render("◂ ") + line + st.HintKey.Render(" ▸")
	}
	return line
}

func (s *FormStep) required(f inquiry.Field) bool {
	for _, r := range s.spec.Required {
		if r == f {
			return true
		}
	}
	return false
}

// SetSize updates the size of the form step.
func (s *FormStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	for _, f := range s.fields {
		if !f.isSelector() {
			f.input.SetWidth(max(20, width-6))
		}
	}
}
