package scheduling

import (
	"errors"
	"fmt"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
)

type ChangeType string

const (
	ChangeTypeSchedule ChangeType = "schedule"
	ChangeTypeDuration ChangeType = "duration"
	ChangeTypeTimeOff  ChangeType = "timeoff"
)

var ErrInvalidChange = errors.New("invalid proposed change")

// ProposedChange is a schedule edit under review. Only the fields matching
// Type are read.
type ProposedChange struct {
	Type            ChangeType
	Schedule        []entity.WeeklyScheduleEntry
	DurationMinutes int
	TimeOffStart    time.Time
	TimeOffEnd      time.Time
}

func (c ProposedChange) Validate() error {
	switch c.Type {
	case ChangeTypeSchedule:
		seen := make(map[int]bool, len(c.Schedule))
		for _, e := range c.Schedule {
			if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
				return fmt.Errorf("%w: day_of_week %d out of range", ErrInvalidChange, e.DayOfWeek)
			}
			if seen[e.DayOfWeek] {
				return fmt.Errorf("%w: day_of_week %d listed twice", ErrInvalidChange, e.DayOfWeek)
			}
			seen[e.DayOfWeek] = true
			if e.IsWorking {
				if _, _, ok := ShiftWindow(e); !ok {
					return fmt.Errorf("%w: day_of_week %d has no valid shift window", ErrInvalidChange, e.DayOfWeek)
				}
			}
		}
	case ChangeTypeDuration:
		if c.DurationMinutes < MinSlotMinutes || c.DurationMinutes > MaxSlotMinutes {
			return fmt.Errorf("%w: %v", ErrInvalidChange, ErrInvalidDuration)
		}
	case ChangeTypeTimeOff:
		if c.TimeOffStart.IsZero() || c.TimeOffEnd.IsZero() || c.TimeOffEnd.Before(c.TimeOffStart) {
			return fmt.Errorf("%w: time-off range is empty", ErrInvalidChange)
		}
	default:
		return fmt.Errorf("%w: unknown change type %q", ErrInvalidChange, c.Type)
	}
	return nil
}

// FindConflicts returns the appointments that would no longer fit after the
// change. Input appointments are expected to be the future open ones.
func FindConflicts(appointments []entity.Appointment, change ProposedChange) ([]entity.Appointment, error) {
	if err := change.Validate(); err != nil {
		return nil, err
	}

	var conflicts []entity.Appointment
	switch change.Type {
	case ChangeTypeDuration:
		// Slot boundaries are rebuilt wholesale, so nothing survives.
		conflicts = append(conflicts, appointments...)
	case ChangeTypeTimeOff:
		period := entity.TimeOffPeriod{StartDate: change.TimeOffStart, EndDate: change.TimeOffEnd}
		for _, a := range appointments {
			if period.Covers(a.Date) {
				conflicts = append(conflicts, a)
			}
		}
	case ChangeTypeSchedule:
		byDay := make(map[time.Weekday]entity.WeeklyScheduleEntry, len(change.Schedule))
		for _, e := range change.Schedule {
			byDay[time.Weekday(e.DayOfWeek)] = e
		}
		for _, a := range appointments {
			if !fitsSchedule(a, byDay) {
				conflicts = append(conflicts, a)
			}
		}
	}
	return conflicts, nil
}

func fitsSchedule(a entity.Appointment, byDay map[time.Weekday]entity.WeeklyScheduleEntry) bool {
	entry, ok := byDay[a.Date.Weekday()]
	if !ok {
		return false
	}
	shiftStart, shiftEnd, ok := ShiftWindow(entry)
	if !ok {
		return false
	}
	start, err := ParseClock(a.StartTime)
	if err != nil {
		return false
	}
	end, err := parseShiftEnd(a.EndTime)
	if err != nil {
		return false
	}
	return start >= shiftStart && end <= shiftEnd
}

// ConflictSummary aggregates a conflict list for review
type ConflictSummary struct {
	AffectedCount int
	FirstDate     *time.Time
	LastDate      *time.Time
}

func Summarize(conflicts []entity.Appointment) ConflictSummary {
	summary := ConflictSummary{AffectedCount: len(conflicts)}
	for i := range conflicts {
		d := conflicts[i].Date
		if summary.FirstDate == nil || d.Before(*summary.FirstDate) {
			summary.FirstDate = &d
		}
		if summary.LastDate == nil || d.After(*summary.LastDate) {
			summary.LastDate = &d
		}
	}
	return summary
}
