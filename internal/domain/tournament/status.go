package tournament

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// LiveDuration is how long a tournament counts as live after its start.
const LiveDuration = 4 * time.Hour

// NeverStarts is the time diff of a tournament without a date or time.
const NeverStarts = time.Duration(math.MaxInt64)

type State string

const (
	StateUpcoming  State = "Upcoming"
	StateLive      State = "Live"
	StateCompleted State = "Completed"
)

const (
	MessageTBA       = "Date & Time TBA"
	MessageLive      = "LIVE NOW"
	MessageCompleted = "Completed"
	MessageSoon      = "Starts soon"
)

// Status is the lifecycle classification of a tournament at one instant.
// It is always recomputed and never stored.
type Status struct {
	State    State
	Message  string
	TimeDiff time.Duration
}

func (s Status) IsUpcoming() bool  { return s.State == StateUpcoming }
func (s Status) IsLive() bool      { return s.State == StateLive }
func (s Status) IsCompleted() bool { return s.State == StateCompleted }

// HasSchedule is false for the TBA case.
func (s Status) HasSchedule() bool { return s.TimeDiff != NeverStarts }

// Clock is a 24-hour time of day.
type Clock struct {
	Hours   int
	Minutes int
}

// ParseTime converts "H:MM AM" / "H:MM PM" into a 24-hour clock.
// Anything without both separators, or with non-numeric parts, yields 00:00.
func ParseTime(raw string) Clock {
	if !strings.Contains(raw, ":") || !strings.Contains(raw, " ") {
		return Clock{}
	}

	parts := strings.Split(raw, " ")
	hm := strings.Split(parts[0], ":")
	if len(hm) < 2 {
		return Clock{}
	}
	hours, err := strconv.Atoi(hm[0])
	if err != nil {
		return Clock{}
	}
	minutes, err := strconv.Atoi(hm[1])
	if err != nil {
		return Clock{}
	}

	ampm := strings.ToLower(parts[1])
	if ampm == "pm" && hours < 12 {
		hours += 12
	}
	if ampm == "am" && hours == 12 {
		hours = 0
	}

	return Clock{Hours: hours, Minutes: minutes}
}

// FormatTime renders the admin form parts as the stored "hour:minute AMPM" string.
func FormatTime(hour, minute, ampm string) string {
	hour = strings.TrimSpace(hour)
	minute = strings.TrimSpace(minute)
	ampm = strings.ToUpper(strings.TrimSpace(ampm))
	if hour == "" || minute == "" || ampm == "" {
		return ""
	}
	if len(minute) == 1 {
		minute = "0" + minute
	}
	return hour + ":" + minute + " " + ampm
}

// StartsAt combines the calendar date and time of day in loc.
// ok is false when either part is missing or the date does not parse.
func StartsAt(date, clock string, loc *time.Location) (time.Time, bool) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(clock) == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, false
	}

	c := ParseTime(clock)
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hours, c.Minutes, 0, 0, loc), true
}

// DeriveStatus classifies a tournament relative to now. The calendar date is
// read in now's location.
func DeriveStatus(date, clock string, now time.Time) Status {
	start, ok := StartsAt(date, clock, now.Location())
	if !ok {
		return Status{State: StateUpcoming, Message: MessageTBA, TimeDiff: NeverStarts}
	}

	diff := start.Sub(now)
	switch {
	case diff > 0:
		return Status{State: StateUpcoming, Message: upcomingMessage(diff), TimeDiff: diff}
	case diff > -LiveDuration:
		return Status{State: StateLive, Message: MessageLive, TimeDiff: diff}
	default:
		return Status{State: StateCompleted, Message: MessageCompleted, TimeDiff: diff}
	}
}

// StatusAt is DeriveStatus for a stored tournament.
func (t Tournament) StatusAt(now time.Time) Status {
	return DeriveStatus(t.Date, t.Time, now)
}

func upcomingMessage(diff time.Duration) string {
	days := int64(diff / (24 * time.Hour))
	switch {
	case days > 1:
		return fmt.Sprintf("Starts in %d days", days)
	case days == 1:
		return "Starts in 1 day"
	default:
		return MessageSoon
	}
}

// Countdown is the days/hours/mins/secs breakdown shown on the detail view.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// CountdownTo is zero once start is no longer in the future.
func CountdownTo(start, now time.Time) Countdown {
	diff := start.Sub(now)
	if diff <= 0 {
		return Countdown{}
	}

	return Countdown{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff/time.Hour) % 24,
		Minutes: int(diff/time.Minute) % 60,
		Seconds: int(diff/time.Second) % 60,
	}
}
