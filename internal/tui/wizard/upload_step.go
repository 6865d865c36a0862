package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/tui/theme"
)

const uploadHint = "Images, sketches, blueprints, inspiration photos"

type uploadMode int

const (
	uploadList uploadMode = iota
	uploadPicking
	uploadReview
)

// UploadStep stages attachments and offers a review of the whole inquiry
// before it is submitted.
type UploadStep struct {
	spec     inquiry.StepSpec
	session  *inquiry.Session
	picker   *FilePicker
	startDir string
	review   viewport.Model
	mode     uploadMode
	cursor   int
	focused  bool
	err      string
	width    int
	height   int
}

// NewUploadStep creates the upload step. startDir is where the file picker
// opens first.
func NewUploadStep(spec inquiry.StepSpec, session *inquiry.Session, startDir string) *UploadStep {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(10),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &UploadStep{
		spec:     spec,
		session:  session,
		startDir: startDir,
		review:   vp,
		width:    60,
		height:   20,
	}
}

// Init initializes the upload step.
func (u *UploadStep) Init() tea.Cmd {
	return nil
}

// Focus returns the step to its file list.
func (u *UploadStep) Focus() tea.Cmd {
	u.focused = true
	u.clampCursor()
	if u.session.Attachments.Len() == 0 && u.picker != nil {
		u.picker.Forget()
	}
	return nil
}

// Reset closes any overlay after the session was cleared.
func (u *UploadStep) Reset() {
	u.mode = uploadList
	u.cursor = 0
	u.err = ""
	if u.picker != nil {
		u.picker.Forget()
	}
}

// Blur removes the cursor highlight.
func (u *UploadStep) Blur() {
	u.focused = false
}

// CapturesEscape reports whether esc closes an overlay instead of going back.
func (u *UploadStep) CapturesEscape() bool {
	return u.mode != uploadList
}

// CurrentDir returns the directory the file picker last browsed.
func (u *UploadStep) CurrentDir() string {
	if u.picker != nil {
		return u.picker.CurrentDir()
	}
	return u.startDir
}

// Picking reports whether the file picker is open.
func (u *UploadStep) Picking() bool {
	return u.mode == uploadPicking
}

// Reviewing reports whether the review pane is open.
func (u *UploadStep) Reviewing() bool {
	return u.mode == uploadReview
}

// Update handles messages for the upload step.
func (u *UploadStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FilesPickedMsg:
		u.session.Attachments.AddFiles(msg.Files...)
		u.err = ""
		if msg.Done {
			u.mode = uploadList
			u.cursor = u.session.Attachments.Len() - 1
			u.clampCursor()
		}
		return nil
	case FilePickErrorMsg:
		u.err = fmt.Sprintf("could not read %s: %v", msg.Path, msg.Err)
		if u.picker != nil {
			u.picker.Unmark(msg.Path)
		}
		u.mode = uploadList
		return nil
	case tea.KeyPressMsg:
		switch u.mode {
		case uploadPicking:
			if msg.String() == "esc" {
				u.mode = uploadList
				return nil
			}
			return u.picker.Update(msg)
		case uploadReview:
			switch msg.String() {
			case "esc", "r":
				u.mode = uploadList
				return nil
			}
			var cmd tea.Cmd
			u.review, cmd = u.review.Update(msg)
			return cmd
		}
		return u.updateList(msg)
	}

	if u.mode == uploadReview {
		var cmd tea.Cmd
		u.review, cmd = u.review.Update(msg)
		return cmd
	}
	return nil
}

func (u *UploadStep) updateList(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if u.cursor > 0 {
			u.cursor--
		}
	case "down", "j":
		if u.cursor < u.session.Attachments.Len()-1 {
			u.cursor++
		}
	case "d", "x", "delete":
		removed, ok := u.session.Attachments.At(u.cursor)
		u.session.Attachments.RemoveFile(u.cursor)
		u.clampCursor()
		if ok && u.picker != nil {
			u.picker.Unmark(removed.Path)
		}
	case "a":
		u.openPicker()
	case "r":
		u.openReview()
	case "enter":
		return emit(NextRequestedMsg{})
	case "tab":
		return emit(TabExitForwardMsg{})
	case "shift+tab":
		return emit(TabExitBackwardMsg{})
	}
	return nil
}

func (u *UploadStep) openPicker() {
	if u.picker == nil {
		u.picker = NewFilePicker(u.startDir)
	}
	u.picker.SetSize(u.width, u.height)
	u.err = ""
	u.mode = uploadPicking
}

func (u *UploadStep) openReview() {
	u.review.SetContent(RenderMarkdown(u.summary(), u.width))
	u.review.GotoTop()
	u.mode = uploadReview
}

func (u *UploadStep) summary() string {
	files := u.session.Attachments.Files()
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return inquiry.Markdown(u.session.Record, names)
}

func (u *UploadStep) clampCursor() {
	n := u.session.Attachments.Len()
	if u.cursor >= n {
		u.cursor = n - 1
	}
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// View renders the upload step.
func (u *UploadStep) View() string {
	switch u.mode {
	case uploadPicking:
		return u.picker.View()
	case uploadReview:
		return u.review.View() + "\n\n" + renderHintBar("↑↓", "scroll", "r/esc", "close")
	}

	st := theme.Current().S()
	var b strings.Builder
	b.WriteString(st.Label.Render("Attachments (optional)"))
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(uploadHint))
	b.WriteString("\n\n")

	n := u.session.Attachments.Len()
	if n == 0 {
		b.WriteString(st.Muted.Italic(true).Render("No files added"))
		b.WriteString("\n")
	}
	for i := 0; i < n; i++ {
		a, _ := u.session.Attachments.At(i)
		line := truncate(fmt.Sprintf("%s (%s)", a.Name, inquiry.HumanSize(a.Size())), u.width-4)
		if u.focused && i == u.cursor {
			b.WriteString(st.Selected.Render("▸ " + line))
		} else {
			b.WriteString("  " + st.Label.Render(line))
		}
		b.WriteString("\n")
	}
	if n > 0 {
		b.WriteString("\n")
		b.WriteString(st.Muted.Render(fmt.Sprintf("%d file(s), %s total", n, inquiry.HumanSize(u.session.Attachments.TotalSize()))))
		b.WriteString("\n")
	}
	if u.err != "" {
		b.WriteString("\n")
		b.WriteString(renderError(u.err))
		b.WriteString("\n")
	}
	return b.String()
}

// SetSize updates the size of the upload step.
func (u *UploadStep) SetSize(width, height int) {
	u.width = width
	u.height = height
	u.review.SetWidth(width)
	u.review.SetHeight(max(5, height-2))
	if u.picker != nil {
		u.picker.SetSize(width, height)
	}
	if u.mode == uploadReview {
		u.review.SetContent(RenderMarkdown(u.summary(), width))
	}
}
