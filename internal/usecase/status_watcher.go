package usecase

import (
	"context"
	"time"

	"github.com/ffmaxarena/arena-api/internal/domain/tournament"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultStatusInterval    = 30 * time.Second
	DefaultCountdownInterval = time.Second
)

type FrameKind string

const (
	FrameStatus    FrameKind = "status"
	FrameCountdown FrameKind = "countdown"
)

// StatusFrame is one update pushed to a live status subscriber.
type StatusFrame struct {
	Kind         FrameKind
	TournamentID int64
	Status       tournament.Status
	Countdown    tournament.Countdown
	At           time.Time
}

// StatusWatcher re-derives a tournament's status on two timers: a slow
// status tick and a fast countdown tick that only runs while upcoming.
type StatusWatcher struct {
	clock             clockwork.Clock
	location          *time.Location
	statusInterval    time.Duration
	countdownInterval time.Duration
}

func NewStatusWatcher(clock clockwork.Clock, location *time.Location) *StatusWatcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	return &StatusWatcher{
		clock:             clock,
		location:          location,
		statusInterval:    DefaultStatusInterval,
		countdownInterval: DefaultCountdownInterval,
	}
}

// Watch emits frames until the tournament completes (returns nil), ctx ends,
// or emit fails. Both tickers are stopped on every return path.
func (w *StatusWatcher) Watch(ctx context.Context, item tournament.Tournament, emit func(StatusFrame) error) error {
	now := w.clock.Now().In(w.location)
	status := item.StatusAt(now)
	start, scheduled := tournament.StartsAt(item.Date, item.Time, w.location)

	if err := emit(w.statusFrame(item.ID, status, now)); err != nil {
		return err
	}
	if status.IsCompleted() {
		return nil
	}

	statusTicker := w.clock.NewTicker(w.statusInterval)
	defer statusTicker.Stop()

	var (
		countdownTicker clockwork.Ticker
		countdownC      <-chan time.Time
	)
	stopCountdown := func() {
		if countdownTicker != nil {
			countdownTicker.Stop()
			countdownTicker = nil
			countdownC = nil
		}
	}
	defer stopCountdown()

	if status.IsUpcoming() && scheduled {
		if err := emit(w.countdownFrame(item.ID, status, start, now)); err != nil {
			return err
		}
		countdownTicker = w.clock.NewTicker(w.countdownInterval)
		countdownC = countdownTicker.Chan()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-statusTicker.Chan():
			now = w.clock.Now().In(w.location)
			status = item.StatusAt(now)
			if !status.IsUpcoming() {
				stopCountdown()
			}
			if err := emit(w.statusFrame(item.ID, status, now)); err != nil {
				return err
			}
			if status.IsCompleted() {
				return nil
			}
		case <-countdownC:
			now = w.clock.Now().In(w.location)
			next := item.StatusAt(now)
			if !next.IsUpcoming() {
				stopCountdown()
				status = next
				if err := emit(w.statusFrame(item.ID, status, now)); err != nil {
					return err
				}
				continue
			}
			if err := emit(w.countdownFrame(item.ID, next, start, now)); err != nil {
				return err
			}
		}
	}
}

func (w *StatusWatcher) statusFrame(id int64, status tournament.Status, now time.Time) StatusFrame {
	return StatusFrame{Kind: FrameStatus, TournamentID: id, Status: status, At: now}
}

func (w *StatusWatcher) countdownFrame(id int64, status tournament.Status, start, now time.Time) StatusFrame {
	return StatusFrame{
		Kind:         FrameCountdown,
		TournamentID: id,
		Status:       status,
		Countdown:    tournament.CountdownTo(start, now),
		At:           now,
	}
}
