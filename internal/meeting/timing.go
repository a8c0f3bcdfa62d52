package meeting

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseClock parses an "HH:MM" wall clock time.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse(timeLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	return t.Hour(), t.Minute(), nil
}

// ParseDate accepts a calendar date (local midnight) or an RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(dateLayout, value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", value)
}

// DayBounds returns local midnight and 23:59:59 of the day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(time.Local)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.Local)
	return start, end
}

// FullMeetingDate is the scheduled day with its time of day replaced by ScheduledTime.
// ok is false when ScheduledTime does not parse.
func (m *Meeting) FullMeetingDate() (time.Time, bool) {
	hour, minute, err := ParseClock(m.ScheduledTime)
	if err != nil || m.ScheduledDate.IsZero() {
		return time.Time{}, false
	}
	d := m.ScheduledDate.In(time.Local)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.Local), true
}

func (m *Meeting) EndTime() (time.Time, bool) {
	start, ok := m.FullMeetingDate()
	if !ok || m.Duration <= 0 {
		return time.Time{}, false
	}
	return start.Add(time.Duration(m.Duration) * time.Minute), true
}

func (m *Meeting) IsUpcoming(now time.Time) bool {
	start, ok := m.FullMeetingDate()
	return ok && start.After(now)
}

func (m *Meeting) IsToday(now time.Time) bool {
	start, ok := m.FullMeetingDate()
	if !ok {
		return false
	}
	n := now.In(time.Local)
	return start.Year() == n.Year() && start.YearDay() == n.YearDay()
}

// IsInProgress reports whether now falls within [start, end], both inclusive.
func (m *Meeting) IsInProgress(now time.Time) bool {
	start, ok := m.FullMeetingDate()
	end, okEnd := m.EndTime()
	if !ok || !okEnd {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

// IsOverdue is true for a meeting still marked scheduled after its end.
func (m *Meeting) IsOverdue(now time.Time) bool {
	end, ok := m.EndTime()
	return ok && now.After(end) && m.Status == StatusScheduled
}

// TimeUntil is the signed duration from now to the start.
func (m *Meeting) TimeUntil(now time.Time) (time.Duration, bool) {
	start, ok := m.FullMeetingDate()
	if !ok {
		return 0, false
	}
	return start.Sub(now), true
}
