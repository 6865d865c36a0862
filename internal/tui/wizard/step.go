package wizard

import (
	tea "charm.land/bubbletea/v2"
	"github.com/jothom/inquiry/internal/inquiry"
)

// stepComponent is the renderer for one wizard step. Components read and
// write the session's record directly, so validity is always current.
type stepComponent interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Focus is called on entering the step and reloads values from the record.
	Focus() tea.Cmd
	Blur()
}

// escapeCapturer is implemented by steps that use esc themselves, such as
// the upload step while its file picker is open.
type escapeCapturer interface {
	CapturesEscape() bool
}

// newStepComponent builds the renderer for a step from its table entry.
func newStepComponent(spec inquiry.StepSpec, session *inquiry.Session, startDir string) stepComponent {
	switch spec.Kind {
	case inquiry.KindChoice:
		return NewChoiceStep(spec, session)
	case inquiry.KindText:
		return NewTextStep(spec, session)
	case inquiry.KindFiles:
		return NewUploadStep(spec, session, startDir)
	default:
		return NewFormStep(spec, session)
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
