// Package testfixtures provides mock implementations and test utilities for TUI testing.
//
// This file contains mock implementations of the submission collaborators:
//   - MockInserter: records inserts, can fail or hold a call until released
//   - MockUploader: records uploads and can fail
//
// All mocks are thread-safe, since the pipeline calls them off the event loop.
//
// Example usage:
//
//	func TestMyComponent(t *testing.T) {
//	    ins := testfixtures.NewMockInserter()
//	    p := inquiry.NewPipeline(ins)
//
//	    // Drive the wizard...
//	    // Later verify calls:
//	    require.Equal(t, 1, ins.Calls())
//	}
package testfixtures

import (
	"context"
	"sync"

	"github.com/jothom/inquiry/internal/inquiry"
)

// MockInserter is a mock implementation of inquiry.Inserter.
type MockInserter struct {
	mu sync.Mutex

	// ID returned from a successful insert
	ID string
	// Error to return from Insert
	Err error

	records     []inquiry.Record
	collections []string
	gate        chan struct{}
}

// NewMockInserter creates an inserter that succeeds with FixedInquiryID.
func NewMockInserter() *MockInserter {
	return &MockInserter{ID: FixedInquiryID}
}

// Hold makes later Insert calls block until Release is called or their
// context ends.
func (m *MockInserter) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = make(chan struct{})
}

// Release unblocks held Insert calls.
func (m *MockInserter) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate != nil {
		close(m.gate)
		m.gate = nil
	}
}

// SetErr changes the error returned by later inserts.
func (m *MockInserter) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

// Insert records the call and returns the configured result.
func (m *MockInserter) Insert(ctx context.Context, collection string, r inquiry.Record) (string, error) {
	m.mu.Lock()
	m.records = append(m.records, r)
	m.collections = append(m.collections, collection)
	gate, id, err := m.gate, m.ID, m.Err
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// Calls returns the number of Insert calls.
func (m *MockInserter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Records returns a copy of the inserted records.
func (m *MockInserter) Records() []inquiry.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]inquiry.Record, len(m.records))
	copy(out, m.records)
	return out
}

// Collections returns the collection names passed to Insert.
func (m *MockInserter) Collections() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.collections...)
}

// MockUploader is a mock implementation of inquiry.Uploader.
type MockUploader struct {
	mu sync.Mutex

	// Error to return from Upload
	Err error

	uploads map[string][]inquiry.Attachment
}

// NewMockUploader creates an uploader that accepts everything.
func NewMockUploader() *MockUploader {
	return &MockUploader{uploads: make(map[string][]inquiry.Attachment)}
}

// Upload records the files under the inquiry id.
func (m *MockUploader) Upload(ctx context.Context, inquiryID string, files []inquiry.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.uploads[inquiryID] = append(m.uploads[inquiryID], files...)
	return nil
}

// Uploaded returns the files stored for an inquiry.
func (m *MockUploader) Uploaded(inquiryID string) []inquiry.Attachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]inquiry.Attachment(nil), m.uploads[inquiryID]...)
}
