package scheduling

import (
	"errors"
	"fmt"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	MinSlotMinutes  = 5
	MaxSlotMinutes  = 240
	MaxGenerateDays = 366
)

var (
	ErrInvalidDuration = errors.New("slot duration must be between 5 and 240 minutes")
	ErrInvalidRange    = errors.New("invalid date range")
)

// Periods splits the day into MORNING, EVENING and NIGHT.
type Periods struct {
	MorningEnd int
	EveningEnd int
}

// DefaultPeriods ends the morning at 14:00 and the evening at 22:00.
var DefaultPeriods = Periods{MorningEnd: 14 * 60, EveningEnd: 22 * 60}

func NewPeriods(morningEnd, eveningEnd string) (Periods, error) {
	m, err := ParseClock(morningEnd)
	if err != nil {
		return Periods{}, err
	}
	e, err := ParseClock(eveningEnd)
	if err != nil {
		return Periods{}, err
	}
	if e < m {
		return Periods{}, fmt.Errorf("evening end %s is before morning end %s", eveningEnd, morningEnd)
	}
	return Periods{MorningEnd: m, EveningEnd: e}, nil
}

// Classify returns the period a slot starting at the given minute belongs to
func (p Periods) Classify(startMinute int) entity.SlotPeriod {
	switch {
	case startMinute < p.MorningEnd:
		return entity.SlotPeriodMorning
	case startMinute < p.EveningEnd:
		return entity.SlotPeriodEvening
	default:
		return entity.SlotPeriodNight
	}
}

type GenerateInput struct {
	HospitalID      uuid.UUID
	DoctorID        uuid.UUID
	From            time.Time
	To              time.Time
	DurationMinutes int
	Schedule        []entity.WeeklyScheduleEntry
	TimeOff         []entity.TimeOffPeriod
	Existing        map[entity.SlotKey]struct{}
	// Cutoff leaves out slots that have already started. Zero disables it.
	Cutoff DayCutoff
}

// DayCutoff is a local date and wall-clock minute
type DayCutoff struct {
	Date   time.Time
	Minute int
}

func (c DayCutoff) passed(date time.Time, startMinute int) bool {
	if c.Date.IsZero() {
		return false
	}
	if !date.Equal(c.Date) {
		return date.Before(c.Date)
	}
	return startMinute <= c.Minute
}

type GenerateResult struct {
	Slots   []entity.Slot
	Skipped int
}

// GenerateSlots expands the weekly template into dated slots for [From, To].
// Candidates already present in Existing, or produced earlier in the same run,
// are counted as skipped instead of emitted.
func GenerateSlots(in GenerateInput, periods Periods) (GenerateResult, error) {
	if in.DurationMinutes < MinSlotMinutes || in.DurationMinutes > MaxSlotMinutes {
		return GenerateResult{}, ErrInvalidDuration
	}
	if err := ValidateRange(in.From, in.To); err != nil {
		return GenerateResult{}, err
	}

	byDay := make(map[time.Weekday]entity.WeeklyScheduleEntry, len(in.Schedule))
	for _, e := range in.Schedule {
		byDay[time.Weekday(e.DayOfWeek)] = e
	}

	seen := make(map[entity.SlotKey]struct{}, len(in.Existing))
	for k := range in.Existing {
		seen[k] = struct{}{}
	}

	var result GenerateResult
	for date := in.From; !date.After(in.To); date = date.AddDate(0, 0, 1) {
		entry, ok := byDay[date.Weekday()]
		if !ok {
			continue
		}
		start, end, ok := ShiftWindow(entry)
		if !ok {
			continue
		}
		if OnTimeOff(in.TimeOff, date) {
			continue
		}

		for t := start; t+in.DurationMinutes <= end; t += in.DurationMinutes {
			if in.Cutoff.passed(date, t) {
				continue
			}
			slot := entity.Slot{
				HospitalID:      in.HospitalID,
				DoctorID:        in.DoctorID,
				Date:            date,
				StartTime:       FormatClock(t),
				EndTime:         FormatClock(t + in.DurationMinutes),
				DurationMinutes: in.DurationMinutes,
				Period:          periods.Classify(t),
				Status:          entity.SlotStatusAvailable,
			}
			key := slot.Key()
			if _, dup := seen[key]; dup {
				result.Skipped++
				continue
			}
			seen[key] = struct{}{}
			result.Slots = append(result.Slots, slot)
		}
	}

	return result, nil
}

// OnTimeOff reports whether date is covered by an approved period
func OnTimeOff(periods []entity.TimeOffPeriod, date time.Time) bool {
	for i := range periods {
		if periods[i].IsApproved() && periods[i].Covers(date) {
			return true
		}
	}
	return false
}

func ValidateRange(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidRange)
	}
	if to.Sub(from) > time.Duration(MaxGenerateDays)*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, MaxGenerateDays)
	}
	return nil
}
