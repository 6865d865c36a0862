package wizard

import (
	"github.com/jothom/inquiry/internal/inquiry"
)

// TabExitForwardMsg is sent by a step when tab leaves its last input.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent by a step when shift+tab leaves its first input.
type TabExitBackwardMsg struct{}

// NextRequestedMsg asks the wizard to advance (or submit on the last step).
type NextRequestedMsg struct{}

// FilesPickedMsg carries files the picker loaded from disk. Done closes the
// picker.
type FilesPickedMsg struct {
	Files []inquiry.Attachment
	Done  bool
}

// FilePickErrorMsg reports a file that could not be read.
type FilePickErrorMsg struct {
	Path string
	Err  error
}

// DescriptionEditedMsg carries the text returned from the external editor.
type DescriptionEditedMsg struct {
	Content string
	Err     error
}

// submitResultMsg carries a finished pipeline run back to the event loop.
type submitResultMsg struct {
	result inquiry.Result
}

// bannerExpiredMsg ends the success banner started with the same generation.
type bannerExpiredMsg struct {
	generation int
}
