// Package wizard is the terminal front end of the project inquiry: one
// Bubbletea model that walks the seven steps and submits the result.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/logger"
	"github.com/jothom/inquiry/internal/tui/theme"
)

// DefaultBannerDuration is how long the success banner stays up.
const DefaultBannerDuration = 5 * time.Second

const responseFooter = "We'll respond within 24 hours."

var log = logger.Named("wizard")

// Options configures a wizard run.
type Options struct {
	Pipeline       *inquiry.Pipeline
	BannerDuration time.Duration
	DataDir        string // where ui-state.json is kept
	StartDir       string // where the file picker opens; defaults to the saved one
}

// Model is the Bubbletea model for the inquiry wizard.
type Model struct {
	ctx            context.Context
	session        *inquiry.Session
	pipeline       *inquiry.Pipeline
	bannerDuration time.Duration

	steps   [inquiry.StepCount]stepComponent
	upload  *UploadStep
	stepGen int // controller generation the focused step was entered at

	buttonFocused  bool
	buttonIdx      int // 0 = Back, 1 = Next/Submit
	showErrorModal bool
	retryNote      string
	banner         bannerTimer
	quitting       bool

	width  int
	height int
}

// New creates a wizard over session. The pipeline must be set in opts.
func New(ctx context.Context, session *inquiry.Session, opts Options) *Model {
	if opts.BannerDuration <= 0 {
		opts.BannerDuration = DefaultBannerDuration
	}
	m := &Model{
		ctx:            ctx,
		session:        session,
		pipeline:       opts.Pipeline,
		bannerDuration: opts.BannerDuration,
	}
	for _, spec := range inquiry.Steps() {
		c := newStepComponent(spec, session, opts.StartDir)
		if u, ok := c.(*UploadStep); ok {
			m.upload = u
		}
		m.steps[spec.Step-1] = c
	}
	return m
}

// Session returns the session the wizard edits.
func (m *Model) Session() *inquiry.Session {
	return m.session
}

// PickerDir returns the directory the file picker last browsed.
func (m *Model) PickerDir() string {
	if m.upload == nil {
		return ""
	}
	return m.upload.CurrentDir()
}

func (m *Model) current() stepComponent {
	return m.steps[m.session.Steps.Current()-1]
}

// Init initializes every step and focuses the first.
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.steps)+1)
	for _, s := range m.steps {
		cmds = append(cmds, s.Init())
	}
	cmds = append(cmds, m.enterStep())
	return tea.Batch(cmds...)
}

// enterStep moves keyboard focus to the controller's current step.
func (m *Model) enterStep() tea.Cmd {
	for _, s := range m.steps {
		s.Blur()
	}
	m.stepGen = m.session.Steps.Generation()
	m.buttonFocused = false
	m.updateStepSize()
	return m.current().Focus()
}

// Update handles messages for the wizard. Whenever the controller changes
// step, focus moves to the new step.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.session.Steps.Generation() != m.stepGen {
		cmd = tea.Batch(cmd, m.enterStep())
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateStepSize()
		return nil

	case TabExitForwardMsg:
		m.focusButtons(1)
		return nil

	case TabExitBackwardMsg:
		m.focusButtons(0)
		return nil

	case NextRequestedMsg:
		return m.next()

	case submitResultMsg:
		return m.finishSubmit(msg.result)

	case bannerExpiredMsg:
		if m.banner.Expire(msg) {
			m.session.ClearSucceeded()
		}
		return nil

	case FilesPickedMsg, FilePickErrorMsg:
		return m.steps[inquiry.StepUploads-1].Update(msg)

	case DescriptionEditedMsg:
		return m.steps[inquiry.StepDescription-1].Update(msg)
	}

	return m.current().Update(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.showErrorModal {
		switch msg.String() {
		case "y", "Y":
			return m.retry()
		case "n", "N", "esc":
			m.showErrorModal = false
			m.retryNote = ""
		}
		// Ignore other keys when modal is visible
		return nil
	}

	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.buttonFocused {
		switch msg.String() {
		case "left", "h":
			m.moveButtonFocus(0)
			return nil
		case "right", "l":
			m.moveButtonFocus(1)
			return nil
		case "tab", "shift+tab", "up", "down":
			m.buttonFocused = false
			return m.current().Focus()
		case "enter", "space":
			return m.activateButton()
		}
	}

	switch msg.String() {
	case "esc":
		if c, ok := m.current().(escapeCapturer); ok && c.CapturesEscape() {
			break
		}
		if m.session.Steps.Current() == inquiry.FirstStep {
			return m.quit()
		}
		return m.back()
	case "ctrl+n":
		return m.next()
	case "ctrl+s":
		if m.session.Steps.Current() == inquiry.LastStep {
			return m.submit()
		}
		return nil
	}

	if m.buttonFocused {
		return nil
	}
	return m.current().Update(msg)
}

// buttons returns the button bar for the current step.
func (m *Model) buttons() []Button {
	focused := -1
	if m.buttonFocused {
		focused = m.buttonIdx
	}
	if m.session.Steps.Current() == inquiry.LastStep {
		return CreateBackSubmitButtons(m.session.CanSubmit(), m.session.State().Pending(), focused)
	}
	return CreateBackNextButtons(
		m.session.Steps.Current() != inquiry.FirstStep,
		m.session.Steps.CanAdvance(&m.session.Record),
		labelNext,
		focused,
	)
}

// focusButtons moves focus from the step to the button bar, preferring the
// given button and falling back to the other one. Nothing happens when both
// are disabled.
func (m *Model) focusButtons(prefer int) {
	m.buttonIdx = prefer
	m.buttonFocused = true
	buttons := m.buttons()
	if !buttons[prefer].Enabled() {
		other := 1 - prefer
		if !buttons[other].Enabled() {
			m.buttonFocused = false
			return
		}
		m.buttonIdx = other
	}
	m.current().Blur()
}

func (m *Model) moveButtonFocus(idx int) {
	if m.buttons()[idx].Enabled() {
		m.buttonIdx = idx
	}
}

func (m *Model) activateButton() tea.Cmd {
	buttons := m.buttons()
	if !buttons[m.buttonIdx].Enabled() {
		return nil
	}
	if m.buttonIdx == 0 {
		return m.back()
	}
	return m.next()
}

// next advances, or submits on the last step. A blocked advance does
// nothing; the Next button is already drawn disabled.
func (m *Model) next() tea.Cmd {
	if m.session.Steps.Current() == inquiry.LastStep {
		return m.submit()
	}
	if err := m.session.Steps.Advance(&m.session.Record); err != nil {
		log.Debug("advance refused: %v", err)
	}
	return nil
}

func (m *Model) back() tea.Cmd {
	if err := m.session.Steps.Retreat(); err == nil {
		m.session.DismissFailure()
	}
	return nil
}

// submit starts a pipeline run on a snapshot of the session. While one is
// pending, further requests are ignored.
func (m *Model) submit() tea.Cmd {
	sub, err := m.session.BeginSubmit()
	if err != nil {
		log.Debug("submit refused: %v", err)
		return nil
	}
	return m.run(sub)
}

// retry resends the inquiry from the error modal. The session moves back to
// the final step if needed; the modal stays open when the record can no
// longer be sent.
func (m *Model) retry() tea.Cmd {
	sub, err := m.session.RetrySubmit()
	if err != nil {
		log.Warn("retry refused: %v", err)
		m.retryNote = "Fill in the required fields before retrying."
		return nil
	}
	m.showErrorModal = false
	m.retryNote = ""
	return m.run(sub)
}

func (m *Model) run(sub inquiry.Submission) tea.Cmd {
	m.banner.Cancel()
	log.Info("submitting inquiry for %q with %d attachment(s)", sub.Record.FullName, len(sub.Attachments))

	ctx, pipeline := m.ctx, m.pipeline
	return func() tea.Msg {
		return submitResultMsg{result: pipeline.Run(ctx, sub)}
	}
}

func (m *Model) finishSubmit(res inquiry.Result) tea.Cmd {
	m.session.FinishSubmit(res)

	if res.Err != nil {
		log.Error("submission failed after %s: %v", res.Duration, res.Err)
		m.showErrorModal = true
		m.retryNote = ""
		return nil
	}

	log.Info("inquiry %s stored in %s", res.InquiryID, res.Duration)
	if res.AttachmentErr != nil {
		log.Warn("inquiry %s stored without attachments: %v", res.InquiryID, res.AttachmentErr)
	}
	if m.upload != nil {
		m.upload.Reset()
	}
	return m.banner.Start(m.bannerDuration)
}

func (m *Model) quit() tea.Cmd {
	m.banner.Cancel()
	m.quitting = true
	return tea.Quit
}

func (m *Model) modalWidth() int {
	return max(minModalWidth, min(maxModalWidth, m.width-10))
}

// innerWidth is the usable width inside the modal's border and padding.
func (m *Model) innerWidth() int {
	return m.modalWidth() - 8
}

// updateStepSize updates the size of every step component.
func (m *Model) updateStepSize() {
	// Reserve space for title, progress, banner, buttons and hints
	contentWidth := m.innerWidth()
	contentHeight := max(10, m.height-16)
	for _, s := range m.steps {
		s.SetSize(contentWidth, contentHeight)
	}
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	if m.quitting {
		return view
	}
	view.AltScreen = true

	var content string
	if m.showErrorModal {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderErrorModal())
	} else {
		content = m.renderModal()
	}

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderModal draws the current step inside the centered wizard frame.
func (m *Model) renderModal() string {
	s := theme.Current().S()
	step := m.session.Steps.Current()
	width := m.modalWidth()
	inner := m.innerWidth()

	var sections []string
	title := fmt.Sprintf("Project Inquiry - Step %d of %d: %s", step, inquiry.StepCount, step.Title())
	sections = append(sections, s.ModalTitle.Width(inner).Render(title))
	sections = append(sections, m.renderProgress(inner))
	sections = append(sections, "")

	if banner := m.renderStatus(inner); banner != "" {
		sections = append(sections, banner, "")
	}

	sections = append(sections, m.current().View())

	if !m.overlayOpen() {
		bar := NewButtonBar(m.buttons())
		bar.SetWidth(inner)
		sections = append(sections, "", bar.Render())
		sections = append(sections, "", m.renderHints())
	}

	if step == inquiry.LastStep {
		sections = append(sections, "", s.Muted.Width(inner).Align(lipgloss.Center).Render(responseFooter))
	}

	modal := s.ModalContainer.Width(width).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderProgress draws one dot per step, filled up to the current step.
func (m *Model) renderProgress(width int) string {
	s := theme.Current().S()
	current := int(m.session.Steps.Current())
	var b strings.Builder
	for i := 1; i <= inquiry.StepCount; i++ {
		if i > 1 {
			b.WriteString(" ")
		}
		if i <= current {
			b.WriteString(s.Progress.Render("●"))
		} else {
			b.WriteString(s.Muted.Render("○"))
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderStatus draws the submission banner for the current state.
func (m *Model) renderStatus(width int) string {
	st := m.session.State()
	switch {
	case st.Succeeded() && m.banner.Active():
		return renderSuccessBanner(width, st.Warning)
	case st.Failed():
		return renderFailureBanner(width, st.Reason)
	case st.Pending():
		return theme.Current().S().Muted.Render("Submitting your inquiry...")
	}
	return ""
}

func (m *Model) renderHints() string {
	if m.buttonFocused {
		return renderHintBar("←→", "choose", "enter", "activate", "tab", "back to form", "ctrl+c", "quit")
	}
	switch m.steps[m.session.Steps.Current()-1].(type) {
	case *FormStep:
		return renderHintBar("↑↓", "field", "←→", "option", "tab", "buttons", "esc", "back")
	case *ChoiceStep:
		return renderHintBar("↑↓", "move", "space", "select", "enter", "select & next", "esc", "back")
	case *TextStep:
		return renderHintBar("ctrl+e", "editor", "ctrl+d", "next", "tab", "buttons", "esc", "back")
	case *UploadStep:
		return renderHintBar("a", "add files", "d", "remove", "r", "review", "ctrl+s", "submit", "esc", "back")
	}
	return ""
}

func (m *Model) overlayOpen() bool {
	c, ok := m.current().(escapeCapturer)
	return ok && c.CapturesEscape()
}

// renderErrorModal renders the retry prompt shown after a failed submission.
func (m *Model) renderErrorModal() string {
	t := theme.Current()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Error)).
		MarginBottom(1)
	titleText := titleStyle.Render("⚠ Submission Failed")

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1)
	messageText := messageStyle.Render(fmt.Sprintf("We could not send your inquiry: %s", m.session.State().Reason))

	keptText := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgSubtle)).
		Render("Everything you entered has been kept.")

	buttons := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Render("Press Y to retry, N or ESC to cancel")

	lines := []string{titleText, messageText, keptText, ""}
	if m.retryNote != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Render(m.retryNote), "")
	}
	lines = append(lines, buttons)
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return lipgloss.NewStyle().
		Width(60).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Error)).
		Render(content)
}
