package wizard

import (
	"os"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/tui/theme"
)

const descriptionPlaceholder = "Describe your project. Include styles, materials, sizes, and any inspiration you have."

// TextStep renders a step with one multi-line free text field.
type TextStep struct {
	spec     inquiry.StepSpec
	session  *inquiry.Session
	field    inquiry.Field
	textarea textarea.Model
	width    int
	height   int
	err      string
}

// NewTextStep creates a text area for the step's single field.
func NewTextStep(spec inquiry.StepSpec, session *inquiry.Session) *TextStep {
	ta := textarea.New()
	ta.Placeholder = descriptionPlaceholder
	ta.CharLimit = 5000
	ta.SetHeight(8)
	ta.SetWidth(60)

	t := &TextStep{spec: spec, session: session, textarea: ta, width: 60}
	if len(spec.Fields) > 0 {
		t.field = spec.Fields[0]
	}
	t.textarea.SetValue(session.Record.Get(t.field))
	return t
}

// Init initializes the text step.
func (t *TextStep) Init() tea.Cmd {
	return textarea.Blink
}

// Focus reloads the record value and focuses the text area.
func (t *TextStep) Focus() tea.Cmd {
	if t.textarea.Value() != t.session.Record.Get(t.field) {
		t.textarea.SetValue(t.session.Record.Get(t.field))
	}
	return t.textarea.Focus()
}

// Blur blurs the text area.
func (t *TextStep) Blur() {
	t.textarea.Blur()
}

// Update handles messages for the text step.
func (t *TextStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DescriptionEditedMsg:
		if msg.Err != nil {
			t.err = "editor: " + msg.Err.Error()
			return nil
		}
		t.err = ""
		t.textarea.SetValue(msg.Content)
		t.session.Record.Set(t.field, msg.Content)
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+d":
			return emit(NextRequestedMsg{})
		case "ctrl+e":
			return t.openEditor()
		case "tab":
			return emit(TabExitForwardMsg{})
		case "shift+tab":
			return emit(TabExitBackwardMsg{})
		default:
			t.err = ""
		}
	}

	var cmd tea.Cmd
	t.textarea, cmd = t.textarea.Update(msg)
	t.session.Record.Set(t.field, t.textarea.Value())
	return cmd
}

// openEditor hands the current text to $EDITOR and reads it back.
func (t *TextStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "inquiry_description_*.md")
	if err != nil {
		t.err = "editor: " + err.Error()
		return nil
	}
	path := tmpfile.Name()
	if _, err := tmpfile.WriteString(t.textarea.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(path)
		t.err = "editor: " + err.Error()
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("inquiry", path)
	if err != nil {
		_ = os.Remove(path)
		t.err = "editor: " + err.Error()
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			return DescriptionEditedMsg{Err: err}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return DescriptionEditedMsg{Err: err}
		}
		return DescriptionEditedMsg{Content: string(content)}
	})
}

// View renders the text step.
func (t *TextStep) View() string {
	current := theme.Current()
	st := current.S()

	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(current.BorderDefault))

	parts := []string{
		st.Label.Render(t.field.Label() + " *"),
		box.Render(t.textarea.View()),
		st.Muted.Render("ctrl+e opens $EDITOR • ctrl+d continues"),
	}
	if t.err != "" {
		parts = append(parts, renderError(t.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the size of the text step.
func (t *TextStep) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.textarea.SetWidth(max(20, width-4))
	t.textarea.SetHeight(max(6, min(15, height-12)))
}
