package inquiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jothom/inquiry/internal/logger"
)

// DefaultSubmitTimeout bounds a single insert when no timeout is configured.
const DefaultSubmitTimeout = 15 * time.Second

var log = logger.Named("pipeline")

// SubmissionStatus is the lifecycle of a submission.
type SubmissionStatus int

const (
	StatusIdle SubmissionStatus = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s SubmissionStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SubmissionState is the single source of truth for the busy and success
// indicators shown by the renderer.
type SubmissionState struct {
	Status    SubmissionStatus
	Reason    string // set when Failed
	InquiryID string // set when Succeeded
	Warning   string // set when Succeeded but attachments could not be stored
}

// Pending reports whether a submission is in flight.
func (s SubmissionState) Pending() bool { return s.Status == StatusPending }

// Succeeded reports whether the last submission succeeded.
func (s SubmissionState) Succeeded() bool { return s.Status == StatusSucceeded }

// Failed reports whether the last submission failed.
func (s SubmissionState) Failed() bool { return s.Status == StatusFailed }

// Inserter stores one record in a named collection and returns its id.
type Inserter interface {
	Insert(ctx context.Context, collection string, r Record) (string, error)
}

// Uploader stores the attachments of an already inserted inquiry.
type Uploader interface {
	Upload(ctx context.Context, inquiryID string, files []Attachment) error
}

// Session owns everything one person fills in: the record, the staged files,
// the step controller and the submission state. It is not safe for concurrent
// use; the wizard drives it from a single event loop.
type Session struct {
	Record      Record
	Attachments AttachmentSet
	Steps       Controller

	state SubmissionState
}

// NewSession returns an empty session on the first step.
func NewSession() *Session {
	return &Session{Record: NewRecord()}
}

// State returns the current submission state.
func (s *Session) State() SubmissionState {
	return s.state
}

// CanSubmit reports whether BeginSubmit would succeed.
func (s *Session) CanSubmit() bool {
	return !s.state.Pending() &&
		s.Steps.Current() == LastStep &&
		IsValid(LastStep, &s.Record) &&
		s.Record.Complete()
}

// Submission is an immutable snapshot handed to the pipeline.
type Submission struct {
	Record      Record
	Attachments []Attachment
}

// BeginSubmit marks the session pending and snapshots what will be sent.
// While a submission is pending it returns ErrSubmitInFlight.
func (s *Session) BeginSubmit() (Submission, error) {
	if s.state.Pending() {
		return Submission{}, ErrSubmitInFlight
	}
	if s.Steps.Current() != LastStep {
		return Submission{}, ErrNotFinalStep
	}
	if !IsValid(LastStep, &s.Record) {
		return Submission{}, blocked(LastStep, &s.Record)
	}
	if !s.Record.Complete() {
		return Submission{}, fmt.Errorf("record missing %v: %w", s.Record.Missing(), ErrValidationBlocked)
	}

	s.state = SubmissionState{Status: StatusPending}
	return Submission{
		Record:      s.Record,
		Attachments: s.Attachments.Files(),
	}, nil
}

// RetrySubmit starts a new submission after a failure, returning to the
// final step first when the person has navigated away in the meantime. It
// returns ErrNoFailure when the last submission did not fail.
func (s *Session) RetrySubmit() (Submission, error) {
	if !s.state.Failed() {
		return Submission{}, ErrNoFailure
	}
	if !s.Record.Complete() {
		return Submission{}, fmt.Errorf("record missing %v: %w", s.Record.Missing(), ErrValidationBlocked)
	}
	if s.Steps.Current() != LastStep {
		s.Steps.moveTo(LastStep)
	}
	return s.BeginSubmit()
}

// FinishSubmit applies a pipeline result. Success clears the form and returns
// to the first step; failure keeps everything that was entered.
func (s *Session) FinishSubmit(res Result) {
	if res.Err != nil {
		s.state = SubmissionState{Status: StatusFailed, Reason: res.Err.Error()}
		return
	}

	s.state = SubmissionState{Status: StatusSucceeded, InquiryID: res.InquiryID}
	if res.AttachmentErr != nil {
		s.state.Warning = res.AttachmentErr.Error()
	}
	s.Record.Reset()
	s.Attachments.Clear()
	s.Steps.Reset()
}

// ClearSucceeded drops a success status back to idle once the banner has
// been shown. Other states are left alone.
func (s *Session) ClearSucceeded() {
	if s.state.Succeeded() {
		s.state = SubmissionState{}
	}
}

// DismissFailure drops a failure status back to idle.
func (s *Session) DismissFailure() {
	if s.state.Failed() {
		s.state = SubmissionState{}
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	InquiryID     string
	Err           error // insert failure; the record was not stored
	AttachmentErr error // upload failure after a successful insert
	Duration      time.Duration
}

// Pipeline sends submissions to the backend.
type Pipeline struct {
	inserter Inserter
	uploader Uploader
	timeout  time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithUploader enables attachment upload after a successful insert.
func WithUploader(u Uploader) Option {
	return func(p *Pipeline) { p.uploader = u }
}

// WithTimeout bounds each backend call. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewPipeline creates a pipeline around an inserter.
func NewPipeline(inserter Inserter, opts ...Option) *Pipeline {
	p := &Pipeline{
		inserter: inserter,
		timeout:  DefaultSubmitTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Timeout returns the per-call timeout.
func (p *Pipeline) Timeout() time.Duration {
	return p.timeout
}

// Run inserts the record and then, independently, uploads its attachments.
// It never panics and never touches a Session.
func (p *Pipeline) Run(ctx context.Context, sub Submission) Result {
	start := time.Now()
	id, err := p.insert(ctx, sub.Record)
	if err != nil {
		log.Error("Insert into %s failed: %v", Collection, err)
		return Result{Err: err, Duration: time.Since(start)}
	}
	log.Info("Inquiry %s stored in %s", id, Collection)

	res := Result{InquiryID: id}
	if p.uploader != nil && len(sub.Attachments) > 0 {
		if err := p.upload(ctx, id, sub.Attachments); err != nil {
			log.Warn("Attachments for inquiry %s not stored: %v", id, err)
			res.AttachmentErr = err
		} else {
			log.Info("Stored %d attachments for inquiry %s", len(sub.Attachments), id)
		}
	}
	res.Duration = time.Since(start)
	return res
}

// Submit runs a whole submission synchronously against a session.
func (p *Pipeline) Submit(ctx context.Context, s *Session) (Result, error) {
	sub, err := s.BeginSubmit()
	if err != nil {
		return Result{}, err
	}
	res := p.Run(ctx, sub)
	s.FinishSubmit(res)
	return res, res.Err
}

func (p *Pipeline) insert(ctx context.Context, r Record) (string, error) {
	if p.inserter == nil {
		return "", &SubmissionError{Op: "insert", Err: errors.New("no backend configured")}
	}
	id, err := p.call(ctx, func(ctx context.Context) (string, error) {
		return p.inserter.Insert(ctx, Collection, r)
	})
	if err == nil && id == "" {
		err = fmt.Errorf("%w: empty inquiry id", ErrMalformedResponse)
	}
	if err != nil {
		return "", &SubmissionError{Op: "insert", Err: err}
	}
	return id, nil
}

func (p *Pipeline) upload(ctx context.Context, id string, files []Attachment) error {
	_, err := p.call(ctx, func(ctx context.Context) (string, error) {
		return "", p.uploader.Upload(ctx, id, files)
	})
	if err != nil {
		return &SubmissionError{Op: "upload", Err: err}
	}
	return nil
}

type callResult struct {
	id  string
	err error
}

// call runs fn under the pipeline timeout. It returns when fn returns or the
// deadline passes, whichever comes first, so a backend that ignores its
// context cannot keep a submission pending.
func (p *Pipeline) call(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan callResult, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- callResult{err: fmt.Errorf("%w: %v", ErrMalformedResponse, rec)}
			}
		}()
		id, err := fn(ctx)
		done <- callResult{id: id, err: err}
	}()

	select {
	case res := <-done:
		return res.id, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
