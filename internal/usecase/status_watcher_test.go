package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameSink struct {
	frames chan StatusFrame
}

func newFrameSink() *frameSink {
	return &frameSink{frames: make(chan StatusFrame, 64)}
}

func (s *frameSink) emit(frame StatusFrame) error {
	s.frames <- frame
	return nil
}

func (s *frameSink) next(t *testing.T) StatusFrame {
	t.Helper()
	select {
	case frame := <-s.frames:
		return frame
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for frame")
		return StatusFrame{}
	}
}

func TestStatusWatcher_CompletedSendsOneFrame(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(testNow)
	watcher := NewStatusWatcher(clock, time.UTC)
	sink := newFrameSink()

	err := watcher.Watch(context.Background(), tournament.Tournament{ID: 1, Date: "2026-03-01", Time: "1:00 PM"}, sink.emit)
	require.NoError(t, err)

	frame := sink.next(t)
	assert.Equal(t, FrameStatus, frame.Kind)
	assert.True(t, frame.Status.IsCompleted())
	assert.Len(t, sink.frames, 0)
}

func TestStatusWatcher_StopsWhenLiveTournamentCompletes(t *testing.T) {
	t.Parallel()

	// Started 3h59m30s ago, so the next status tick crosses the live window.
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 13, 59, 30, 0, time.UTC))
	watcher := NewStatusWatcher(clock, time.UTC)
	sink := newFrameSink()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, tournament.Tournament{ID: 2, Date: "2026-03-10", Time: "10:00 AM"}, sink.emit)
	}()

	first := sink.next(t)
	require.True(t, first.Status.IsLive())

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(DefaultStatusInterval)

	last := sink.next(t)
	assert.Equal(t, FrameStatus, last.Kind)
	assert.True(t, last.Status.IsCompleted())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatalf("watcher did not stop after completion")
	}
}

func TestStatusWatcher_CountdownTicksAndTeardown(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(testNow)
	watcher := NewStatusWatcher(clock, time.UTC)
	sink := newFrameSink()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, tournament.Tournament{ID: 3, Date: "2026-03-10", Time: "1:00 PM"}, sink.emit)
	}()

	assert.Equal(t, FrameStatus, sink.next(t).Kind)
	initial := sink.next(t)
	require.Equal(t, FrameCountdown, initial.Kind)
	assert.Equal(t, tournament.Countdown{Hours: 1}, initial.Countdown)

	blockCtx, blockCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer blockCancel()
	require.NoError(t, clock.BlockUntilContext(blockCtx, 2))
	clock.Advance(DefaultCountdownInterval)

	tick := sink.next(t)
	assert.Equal(t, FrameCountdown, tick.Kind)
	assert.Equal(t, tournament.Countdown{Minutes: 59, Seconds: 59}, tick.Countdown)

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not stop on disconnect")
	}
}

func TestStatusWatcher_EmitErrorStops(t *testing.T) {
	t.Parallel()

	watcher := NewStatusWatcher(clockwork.NewFakeClockAt(testNow), time.UTC)
	gone := errors.New("client gone")

	err := watcher.Watch(context.Background(), tournament.Tournament{ID: 4}, func(StatusFrame) error { return gone })
	assert.True(t, errors.Is(err, gone))
}
