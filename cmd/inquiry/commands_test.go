package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/store"
	"github.com/jothom/inquiry/internal/tui/testfixtures"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func recordYAML(t *testing.T, r inquiry.Record) string {
	t.Helper()
	data, err := yaml.Marshal(r)
	require.NoError(t, err)
	return string(data)
}

func TestReadRecord_NormalizesFields(t *testing.T) {
	t.Parallel()

	rec, err := readRecord(strings.NewReader("full_name: '  Thandi  '\nemail: thandi@example.com\n"))
	require.NoError(t, err)
	require.Equal(t, "Thandi", rec.FullName)
	require.Equal(t, inquiry.DefaultContactMethod, rec.PreferredContactMethod)
}

func TestReadRecord_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := readRecord(strings.NewReader("full_name: Thandi\nbudget: lots\n"))
	require.Error(t, err)
}

func TestReadRecord_EmptyInput(t *testing.T) {
	t.Parallel()

	rec, err := readRecord(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, rec.FullName)
}

func TestPrepareSession_Complete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plan := filepath.Join(dir, "plan.pdf")
	require.NoError(t, os.WriteFile(plan, []byte("%PDF-1.4"), 0644))

	rec, err := readRecord(strings.NewReader(recordYAML(t, testfixtures.CompleteRecord())))
	require.NoError(t, err)

	s, err := prepareSession(rec, []string{plan})
	require.NoError(t, err)
	require.Equal(t, inquiry.LastStep, s.Steps.Current())
	require.True(t, s.CanSubmit())
	require.Equal(t, 1, s.Attachments.Len())
}

func TestPrepareSession_Incomplete(t *testing.T) {
	t.Parallel()

	_, err := prepareSession(testfixtures.ContactOnlyRecord(), nil)
	require.ErrorContains(t, err, "inquiry incomplete")
}

func TestPrepareSession_RejectsUnsupportedAttachment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("notes"), 0644))

	_, err := prepareSession(testfixtures.CompleteRecord(), []string{notes})
	require.ErrorContains(t, err, "only images and PDF")
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := renderTable([]store.Inquiry{{
		ID:          testfixtures.FixedInquiryID,
		SubmittedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Record:      testfixtures.CompleteRecord(),
	}})
	require.Contains(t, out, "ID")
	require.Contains(t, out, testfixtures.FixedInquiryID)
	require.Contains(t, out, "Cape Town")
}

func TestInquiryMarkdown(t *testing.T) {
	t.Parallel()

	md := inquiryMarkdown(store.Inquiry{
		ID:          testfixtures.FixedInquiryID,
		SubmittedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Record:      testfixtures.CompleteRecord(),
	}, []store.AttachmentInfo{{Name: "plan.pdf", MediaType: "application/pdf", Size: 2048}})

	require.Contains(t, md, testfixtures.FixedFullName)
	require.Contains(t, md, "plan.pdf (application/pdf, ")
	require.Contains(t, md, testfixtures.FixedInquiryID)
}
