// Package scheduling holds the pure rules of the slot engine and the patient
// queue. Nothing here touches the store; callers load state, ask a question,
// and persist the answer.
package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
)

const minutesPerDay = 24 * 60

var ErrInvalidClock = errors.New("invalid clock time, expected HH:MM")

// ParseClock converts "HH:MM" (seconds tolerated) into minutes after midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if h == 24 && m == 0 {
		return minutesPerDay, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// parseShiftEnd treats a midnight end as the end of the same day.
func parseShiftEnd(s string) (int, error) {
	end, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	if end == 0 {
		return minutesPerDay, nil
	}
	return end, nil
}

// FormatClock renders minutes after midnight as "HH:MM", wrapping at midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ShiftWindow returns the working window of an entry in minutes.
// ok is false when the entry is non-working or the window is empty.
func ShiftWindow(e entity.WeeklyScheduleEntry) (start, end int, ok bool) {
	if !e.HasShiftWindow() {
		return 0, 0, false
	}
	start, err := ParseClock(e.ShiftStart)
	if err != nil {
		return 0, 0, false
	}
	end, err = parseShiftEnd(e.ShiftEnd)
	if err != nil || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// CivilDate truncates t to its calendar date in loc, expressed as UTC midnight.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(entity.DateLayout, s, time.UTC)
}
