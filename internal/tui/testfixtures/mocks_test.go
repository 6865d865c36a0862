package testfixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/stretchr/testify/require"
)

func TestMockInserter_Insert(t *testing.T) {
	t.Parallel()

	ins := NewMockInserter()
	id, err := ins.Insert(context.Background(), inquiry.Collection, CompleteRecord())
	require.NoError(t, err)
	require.Equal(t, FixedInquiryID, id)
	require.Equal(t, 1, ins.Calls())
	require.Equal(t, []string{inquiry.Collection}, ins.Collections())
	require.Equal(t, FixedFullName, ins.Records()[0].FullName)
}

func TestMockInserter_Error(t *testing.T) {
	t.Parallel()

	ins := NewMockInserter()
	ins.SetErr(errors.New("insert rejected"))

	_, err := ins.Insert(context.Background(), inquiry.Collection, CompleteRecord())
	require.EqualError(t, err, "insert rejected")
	require.Equal(t, 1, ins.Calls())
}

func TestMockInserter_HoldRelease(t *testing.T) {
	t.Parallel()

	ins := NewMockInserter()
	ins.Hold()

	done := make(chan error, 1)
	go func() {
		_, err := ins.Insert(context.Background(), inquiry.Collection, CompleteRecord())
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("held insert returned early")
	case <-time.After(50 * time.Millisecond):
	}

	ins.Release()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(DefaultWaitDuration):
		t.Fatal("released insert did not return")
	}
}

func TestMockInserter_HoldHonoursContext(t *testing.T) {
	t.Parallel()

	ins := NewMockInserter()
	ins.Hold()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ins.Insert(ctx, inquiry.Collection, CompleteRecord())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockUploader(t *testing.T) {
	t.Parallel()

	up := NewMockUploader()
	require.NoError(t, up.Upload(context.Background(), FixedInquiryID, []inquiry.Attachment{Photo("a.png")}))
	require.Len(t, up.Uploaded(FixedInquiryID), 1)

	up.Err = errors.New("bucket offline")
	require.Error(t, up.Upload(context.Background(), FixedInquiryID, nil))
}

func TestSessionAtLastStep(t *testing.T) {
	t.Parallel()

	s := SessionAtLastStep()
	require.Equal(t, inquiry.LastStep, s.Steps.Current())
	require.True(t, s.CanSubmit())
}

func TestKey(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"enter", "tab", "shift+tab", "esc", "space", "up", "down", "ctrl+s", "y"} {
		require.Equal(t, name, Key(name).String())
	}
}
