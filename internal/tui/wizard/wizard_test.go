package wizard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/tui/testfixtures"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, session *inquiry.Session, ins *testfixtures.MockInserter) *Model {
	t.Helper()
	p := inquiry.NewPipeline(ins, inquiry.WithTimeout(time.Second))
	m := New(context.Background(), session, Options{
		Pipeline:       p,
		BannerDuration: 20 * time.Millisecond,
		StartDir:       t.TempDir(),
	})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})
	return m
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, s string) {
	for _, k := range testfixtures.Type(s) {
		send(m, k)
	}
}

// submitAndWait presses ctrl+s and feeds the pipeline result back.
func submitAndWait(t *testing.T, m *Model) {
	t.Helper()
	cmd := send(m, testfixtures.Key("ctrl+s"))
	require.NotNil(t, cmd, "submit should start a pipeline run")
	require.True(t, m.session.State().Pending())

	msg := cmd()
	res, ok := msg.(submitResultMsg)
	require.True(t, ok, "expected submitResultMsg, got %T", msg)
	send(m, res)
}

func TestWizard_NextDisabledUntilContactFilled(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, inquiry.NewSession(), testfixtures.NewMockInserter())
	require.Equal(t, inquiry.StepContact, m.session.Steps.Current())
	require.False(t, m.buttons()[1].Enabled(), "Next must start disabled")
	require.False(t, m.buttons()[0].Enabled(), "Back is disabled on the first step")

	typeText(m, "Thandi Mokoena")
	send(m, testfixtures.Key("down"))
	typeText(m, "thandi@example.com")
	require.False(t, m.buttons()[1].Enabled())

	// A blocked ctrl+n stays put
	send(m, testfixtures.Key("ctrl+n"))
	require.Equal(t, inquiry.StepContact, m.session.Steps.Current())

	send(m, testfixtures.Key("down"))
	typeText(m, "082 555 0199")
	require.True(t, m.buttons()[1].Enabled())
	require.Equal(t, "Thandi Mokoena", m.session.Record.FullName)
	require.Equal(t, inquiry.DefaultContactMethod, m.session.Record.PreferredContactMethod)

	send(m, testfixtures.Key("ctrl+n"))
	require.Equal(t, inquiry.StepProjectType, m.session.Steps.Current())
}

func TestWizard_ContactMethodSelector(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, inquiry.NewSession(), testfixtures.NewMockInserter())
	for range 3 {
		send(m, testfixtures.Key("down"))
	}
	form := m.current().(*FormStep)
	require.Equal(t, inquiry.FieldPreferredContactMethod, form.FocusedField())

	// Email is last in the list, so right wraps to Call
	send(m, testfixtures.Key("right"))
	require.Equal(t, inquiry.ContactCall, m.session.Record.PreferredContactMethod)
	send(m, testfixtures.Key("left"))
	require.Equal(t, inquiry.ContactEmail, m.session.Record.PreferredContactMethod)
}

func TestWizard_EscRetreatsWithoutClearing(t *testing.T) {
	t.Parallel()

	s := inquiry.NewSession()
	s.Record = testfixtures.CompleteRecord()
	m := newTestModel(t, s, testfixtures.NewMockInserter())

	send(m, testfixtures.Key("ctrl+n"), testfixtures.Key("ctrl+n"))
	require.Equal(t, inquiry.StepLocation, m.session.Steps.Current())

	send(m, testfixtures.Key("esc"))
	require.Equal(t, inquiry.StepProjectType, m.session.Steps.Current())
	require.Equal(t, testfixtures.CompleteRecord(), m.session.Record)
}

func TestWizard_EscOnFirstStepQuits(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, inquiry.NewSession(), testfixtures.NewMockInserter())
	cmd := send(m, testfixtures.Key("esc"))
	require.Contains(t, testfixtures.Collect(cmd), tea.Msg(tea.QuitMsg{}))
	require.True(t, m.quitting)
}

func TestWizard_ChoiceEnterSelectsAndAdvances(t *testing.T) {
	t.Parallel()

	s := inquiry.NewSession()
	s.Record = testfixtures.ContactOnlyRecord()
	require.NoError(t, s.Steps.Advance(&s.Record))
	m := newTestModel(t, s, testfixtures.NewMockInserter())

	require.False(t, m.buttons()[1].Enabled())

	send(m, testfixtures.Key("down"))
	cmd := send(m, testfixtures.Key("enter"))
	require.Equal(t, inquiry.Options(inquiry.FieldProjectType)[1], m.session.Record.ProjectType)

	msgs := testfixtures.Collect(cmd)
	require.Contains(t, msgs, tea.Msg(NextRequestedMsg{}))
	send(m, NextRequestedMsg{})
	require.Equal(t, inquiry.StepLocation, m.session.Steps.Current())
}

func TestWizard_TabFocusesButtons(t *testing.T) {
	t.Parallel()

	s := inquiry.NewSession()
	s.Record = testfixtures.CompleteRecord()
	m := newTestModel(t, s, testfixtures.NewMockInserter())

	send(m, TabExitForwardMsg{})
	require.True(t, m.buttonFocused)
	require.Equal(t, 1, m.buttonIdx)

	// Back is disabled on step 1, so left keeps Next focused
	send(m, testfixtures.Key("left"))
	require.Equal(t, 1, m.buttonIdx)

	send(m, testfixtures.Key("enter"))
	require.Equal(t, inquiry.StepProjectType, m.session.Steps.Current())
	require.False(t, m.buttonFocused, "entering a step returns focus to it")

	send(m, TabExitBackwardMsg{})
	require.True(t, m.buttonFocused)
	require.Equal(t, 0, m.buttonIdx)
	send(m, testfixtures.Key("enter"))
	require.Equal(t, inquiry.StepContact, m.session.Steps.Current())
}

func TestWizard_TabStaysWhenNoButtonEnabled(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, inquiry.NewSession(), testfixtures.NewMockInserter())
	send(m, TabExitForwardMsg{})
	require.False(t, m.buttonFocused)
}

func TestWizard_SubmitSuccessResetsAndShowsBanner(t *testing.T) {
	t.Parallel()

	s := testfixtures.SessionAtLastStep()
	s.Attachments.AddFiles(testfixtures.Photo("kitchen.png"))
	ins := testfixtures.NewMockInserter()
	m := newTestModel(t, s, ins)

	submitAndWait(t, m)

	require.Equal(t, 1, ins.Calls())
	require.Equal(t, []string{inquiry.Collection}, ins.Collections())
	require.Equal(t, testfixtures.CompleteRecord(), ins.Records()[0])

	st := m.session.State()
	require.True(t, st.Succeeded())
	require.Equal(t, testfixtures.FixedInquiryID, st.InquiryID)
	require.Equal(t, inquiry.NewRecord(), m.session.Record)
	require.Zero(t, m.session.Attachments.Len())
	require.Equal(t, inquiry.StepContact, m.session.Steps.Current())
	require.True(t, m.banner.Active())
	require.Contains(t, m.renderModal(), "Submission Successful!")

	send(m, bannerExpiredMsg{generation: m.banner.generation})
	require.Equal(t, inquiry.StatusIdle, m.session.State().Status)
	require.NotContains(t, m.renderModal(), "Submission Successful!")
}

func TestWizard_SecondSubmitWhilePendingIgnored(t *testing.T) {
	t.Parallel()

	ins := testfixtures.NewMockInserter()
	m := newTestModel(t, testfixtures.SessionAtLastStep(), ins)

	first := send(m, testfixtures.Key("ctrl+s"))
	require.NotNil(t, first)
	require.Nil(t, send(m, testfixtures.Key("ctrl+s")))
	require.Nil(t, send(m, NextRequestedMsg{}))
	require.Equal(t, labelSubmitting, m.buttons()[1].Label)
	require.False(t, m.buttons()[1].Enabled())

	send(m, first())
	require.Equal(t, 1, ins.Calls())
}

func TestWizard_FailureKeepsDataAndRetries(t *testing.T) {
	t.Parallel()

	ins := testfixtures.NewMockInserter()
	ins.SetErr(errors.New("collection offline"))
	m := newTestModel(t, testfixtures.SessionAtLastStep(), ins)

	submitAndWait(t, m)

	require.True(t, m.showErrorModal)
	require.True(t, m.session.State().Failed())
	require.Contains(t, m.session.State().Reason, "collection offline")
	require.Equal(t, testfixtures.CompleteRecord(), m.session.Record)
	require.Equal(t, inquiry.LastStep, m.session.Steps.Current())
	require.Contains(t, m.renderErrorModal(), "Submission Failed")

	// Other keys are swallowed while the modal is up
	require.Nil(t, send(m, testfixtures.Key("ctrl+s")))
	require.Equal(t, 1, ins.Calls())

	ins.SetErr(nil)
	cmd := send(m, testfixtures.Key("y"))
	require.NotNil(t, cmd)
	require.False(t, m.showErrorModal)
	send(m, cmd())

	require.Equal(t, 2, ins.Calls())
	require.True(t, m.session.State().Succeeded())
}

func TestWizard_RetryAfterLeavingLastStep(t *testing.T) {
	t.Parallel()

	ins := testfixtures.NewMockInserter()
	ins.SetErr(errors.New("collection offline"))
	m := newTestModel(t, testfixtures.SessionAtLastStep(), ins)

	run := send(m, testfixtures.Key("ctrl+s"))
	require.NotNil(t, run)
	send(m, testfixtures.Key("esc"))
	require.Equal(t, inquiry.StepDescription, m.session.Steps.Current(), "navigation stays allowed while pending")

	send(m, run())
	require.True(t, m.showErrorModal)
	require.True(t, m.session.State().Failed())

	ins.SetErr(nil)
	retry := send(m, testfixtures.Key("y"))
	require.NotNil(t, retry, "y must resend from any step")
	require.False(t, m.showErrorModal)
	require.Equal(t, inquiry.LastStep, m.session.Steps.Current())
	require.True(t, m.session.State().Pending())

	// the step change batches a focus command with the retry
	for _, msg := range testfixtures.Collect(retry) {
		send(m, msg)
	}
	require.Equal(t, 2, ins.Calls())
	require.True(t, m.session.State().Succeeded())
}

func TestWizard_RetryRefusedForIncompleteRecord(t *testing.T) {
	t.Parallel()

	ins := testfixtures.NewMockInserter()
	ins.SetErr(errors.New("collection offline"))
	m := newTestModel(t, testfixtures.SessionAtLastStep(), ins)
	submitAndWait(t, m)

	m.session.Record.Email = ""
	require.Nil(t, send(m, testfixtures.Key("y")))
	require.True(t, m.showErrorModal, "the modal stays open with a note")
	require.Contains(t, m.renderErrorModal(), "required fields")
	require.Equal(t, 1, ins.Calls())

	send(m, testfixtures.Key("n"))
	require.False(t, m.showErrorModal)
	require.Empty(t, m.retryNote)
}

func TestWizard_DismissFailureModal(t *testing.T) {
	t.Parallel()

	ins := testfixtures.NewMockInserter()
	ins.SetErr(errors.New("collection offline"))
	m := newTestModel(t, testfixtures.SessionAtLastStep(), ins)
	submitAndWait(t, m)

	send(m, testfixtures.Key("n"))
	require.False(t, m.showErrorModal)
	require.True(t, m.session.State().Failed(), "inline banner stays after closing the modal")
	require.Contains(t, m.renderModal(), "Submission failed")

	send(m, testfixtures.Key("esc"))
	require.Equal(t, inquiry.StepDescription, m.session.Steps.Current())
	require.Equal(t, inquiry.StatusIdle, m.session.State().Status)
	require.Equal(t, 1, ins.Calls())
}

func TestWizard_QuitCancelsBanner(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testfixtures.SessionAtLastStep(), testfixtures.NewMockInserter())
	submitAndWait(t, m)
	gen := m.banner.generation

	send(m, testfixtures.Key("ctrl+c"))
	require.False(t, m.banner.Active())

	// A late tick from the cancelled timer changes nothing
	send(m, bannerExpiredMsg{generation: gen})
	require.True(t, m.session.State().Succeeded())
}

func TestWizard_BannerTickFires(t *testing.T) {
	t.Parallel()

	var b bannerTimer
	cmd := b.Start(10 * time.Millisecond)
	msg, ok := cmd().(bannerExpiredMsg)
	require.True(t, ok)
	require.True(t, b.Expire(msg))
	require.False(t, b.Active())
}

func TestBannerTimer_RestartInvalidatesOldTick(t *testing.T) {
	t.Parallel()

	var b bannerTimer
	b.Start(time.Hour)
	old := bannerExpiredMsg{generation: b.generation}
	b.Start(time.Hour)

	require.False(t, b.Expire(old))
	require.True(t, b.Active())
	require.True(t, b.Expire(bannerExpiredMsg{generation: b.generation}))
}

func TestBannerTimer_CancelIdle(t *testing.T) {
	t.Parallel()

	var b bannerTimer
	b.Cancel()
	require.False(t, b.Active())
	require.Zero(t, b.generation)
}

func TestWizard_UploadStepStagesFiles(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testfixtures.SessionAtLastStep(), testfixtures.NewMockInserter())

	send(m, FilesPickedMsg{Files: []inquiry.Attachment{testfixtures.Photo("a.png"), testfixtures.Photo("b.png")}, Done: true})
	require.Equal(t, 2, m.session.Attachments.Len())
	require.Contains(t, m.renderModal(), "a.png")

	send(m, testfixtures.Key("a"))
	require.True(t, m.upload.Picking())

	// esc closes the picker instead of leaving the step
	send(m, testfixtures.Key("esc"))
	require.False(t, m.upload.Picking())
	require.Equal(t, inquiry.LastStep, m.session.Steps.Current())

	send(m, testfixtures.Key("up"), testfixtures.Key("d"))
	require.Equal(t, 1, m.session.Attachments.Len())
	a, _ := m.session.Attachments.At(0)
	require.Equal(t, "b.png", a.Name)
}

func TestWizard_PickerMarksFollowUploadList(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testfixtures.SessionAtLastStep(), testfixtures.NewMockInserter())
	m.session.Attachments.Clear()
	dir := m.upload.startDir
	for _, name := range []string{"a.png", "b.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("\x89PNG\r\n\x1a\n"+name), 0644))
	}

	send(m, testfixtures.Key("a"))
	require.True(t, m.upload.Picking())
	picker := m.upload.picker

	// ".." sits first, so a.png is one row down
	send(m, testfixtures.Key("down"))
	for range 2 {
		load := send(m, testfixtures.Key("space"))
		require.NotNil(t, load)
		send(m, load())
	}
	require.Equal(t, 2, m.session.Attachments.Len())

	send(m, testfixtures.Key("esc"))
	send(m, testfixtures.Key("up"), testfixtures.Key("d"))
	require.Equal(t, 1, m.session.Attachments.Len())
	left, _ := m.session.Attachments.At(0)
	require.Equal(t, "b.png", left.Name)

	// b.png is still staged and stays marked; a.png can be added again
	send(m, testfixtures.Key("a"))
	picker.selectedIdx = 2
	require.Nil(t, send(m, testfixtures.Key("space")))
	picker.selectedIdx = 1
	require.NotNil(t, send(m, testfixtures.Key("space")))
}

func TestWizard_PickerUnmarksUnreadableFile(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testfixtures.SessionAtLastStep(), testfixtures.NewMockInserter())
	path := filepath.Join(m.upload.startDir, "plan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	send(m, testfixtures.Key("a"))
	send(m, testfixtures.Key("down"))
	require.NotNil(t, send(m, testfixtures.Key("space")))
	require.True(t, m.upload.picker.added[path])

	send(m, FilePickErrorMsg{Path: path, Err: errors.New("permission denied")})
	require.False(t, m.upload.picker.added[path])
	require.Contains(t, m.upload.err, "permission denied")

	send(m, testfixtures.Key("a"))
	m.upload.picker.selectedIdx = 1
	require.NotNil(t, send(m, testfixtures.Key("space")), "the file can be tried again")
}

func TestWizard_ReviewPane(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testfixtures.SessionAtLastStep(), testfixtures.NewMockInserter())
	send(m, testfixtures.Key("r"))
	require.True(t, m.upload.Reviewing())
	require.Contains(t, m.upload.summary(), testfixtures.FixedFullName)

	send(m, testfixtures.Key("esc"))
	require.False(t, m.upload.Reviewing())
	require.Equal(t, inquiry.LastStep, m.session.Steps.Current())
}

func TestWizard_DescriptionFromEditor(t *testing.T) {
	t.Parallel()

	s := inquiry.NewSession()
	m := newTestModel(t, s, testfixtures.NewMockInserter())

	send(m, DescriptionEditedMsg{Content: "A loft conversion."})
	require.Equal(t, "A loft conversion.", s.Record.ProjectDescription)

	send(m, DescriptionEditedMsg{Err: errors.New("editor crashed")})
	require.Equal(t, "A loft conversion.", s.Record.ProjectDescription)
}

func TestWizard_FooterOnLastStep(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, testfixtures.SessionAtLastStep(), testfixtures.NewMockInserter())
	view := m.renderModal()
	require.Contains(t, view, "Step 7 of 7: Upload Files")
	require.Contains(t, view, responseFooter)
	require.Contains(t, view, labelSubmit)
}
