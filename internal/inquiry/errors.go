package inquiry

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationBlocked is returned when the current step still has blank
	// required fields.
	ErrValidationBlocked = errors.New("required fields are empty")
	// ErrFinalStep is returned by Advance on the last step, which submits instead.
	ErrFinalStep = errors.New("already on the final step")
	// ErrFirstStep is returned by Retreat on the first step.
	ErrFirstStep = errors.New("already on the first step")
	// ErrNotFinalStep is returned when a submit is attempted before the last step.
	ErrNotFinalStep = errors.New("submission is only possible from the final step")
	// ErrSubmitInFlight is returned while a previous submission is still pending.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	// ErrNoFailure is returned by RetrySubmit when there is nothing to retry.
	ErrNoFailure = errors.New("no failed submission to retry")
	// ErrMalformedResponse marks an acknowledgement the backend should never send.
	ErrMalformedResponse = errors.New("malformed response from backend")
)

// SubmissionError reports a failed insert or upload.
type SubmissionError struct {
	Op  string // "insert" or "upload"
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission %s failed: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// blocked wraps ErrValidationBlocked with the step and its missing fields.
func blocked(step Step, r *Record) error {
	spec, ok := step.Spec()
	if !ok {
		return fmt.Errorf("step %d: %w", step, ErrValidationBlocked)
	}
	var missing []Field
	for _, f := range spec.Required {
		if !r.Filled(f) {
			missing = append(missing, f)
		}
	}
	return fmt.Errorf("step %d (%s) missing %v: %w", step, spec.Title, missing, ErrValidationBlocked)
}
