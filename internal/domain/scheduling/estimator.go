package scheduling

import (
	"math"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// QueueSnapshot is a doctor's queue for one day at a fixed instant. Estimates
// are derived from it on demand and never stored.
type QueueSnapshot struct {
	Entries []entity.QueueEntry
	// AppointmentMinutes holds the booked slot length per appointment id.
	AppointmentMinutes     map[uuid.UUID]int
	DefaultDurationMinutes int
	MinSamples             int
	Now                    time.Time
}

// AverageConsultation is the mean consultation length of the day's completed
// entries, floored at half the default duration. ok is false below MinSamples.
func (s QueueSnapshot) AverageConsultation() (minutes float64, ok bool) {
	var total, n int
	for _, e := range s.Entries {
		if e.Status == entity.QueueStatusCompleted && e.ConsultationTimeMinutes != nil {
			total += *e.ConsultationTimeMinutes
			n++
		}
	}
	if n == 0 || n < s.MinSamples {
		return 0, false
	}
	avg := float64(total) / float64(n)
	floor := float64(s.DefaultDurationMinutes) / 2
	if avg < floor {
		avg = floor
	}
	return avg, true
}

// ExpectedMinutes is how long the entry is expected to spend with the doctor
func (s QueueSnapshot) ExpectedMinutes(e entity.QueueEntry) float64 {
	if e.AppointmentID != nil {
		if d, ok := s.AppointmentMinutes[*e.AppointmentID]; ok && d > 0 {
			return float64(d)
		}
	}
	if avg, ok := s.AverageConsultation(); ok {
		return avg
	}
	return float64(s.DefaultDurationMinutes)
}

// EstimateWait returns the ETA in whole minutes for a QUEUED or WAITING entry.
// ok is false for unknown entries and for entries already with the doctor or
// finished.
func (s QueueSnapshot) EstimateWait(entryID uuid.UUID) (minutes int, ok bool) {
	target, found := s.find(entryID)
	if !found {
		return 0, false
	}
	if target.Status != entity.QueueStatusQueued && target.Status != entity.QueueStatusWaiting {
		return 0, false
	}

	var total float64
	for _, e := range s.Entries {
		if e.ID == target.ID || !e.IsActive() || e.QueueNumber >= target.QueueNumber {
			continue
		}
		expected := s.ExpectedMinutes(e)
		if e.Status == entity.QueueStatusWithDoctor {
			total += s.remaining(e, expected)
			continue
		}
		total += expected
	}
	return int(math.Ceil(total - 1e-9)), true
}

func (s QueueSnapshot) remaining(e entity.QueueEntry, expected float64) float64 {
	if e.WithDoctorAt == nil {
		return expected
	}
	elapsed := s.Now.Sub(*e.WithDoctorAt).Minutes()
	return math.Max(0, expected-elapsed)
}

// Position is the 1-based place of a QUEUED or WAITING entry among the
// patients still waiting. ok is false otherwise.
func (s QueueSnapshot) Position(entryID uuid.UUID) (position int, ok bool) {
	target, found := s.find(entryID)
	if !found {
		return 0, false
	}
	if target.Status != entity.QueueStatusQueued && target.Status != entity.QueueStatusWaiting {
		return 0, false
	}
	position = 1
	for _, e := range s.Entries {
		if e.ID == target.ID || e.QueueNumber >= target.QueueNumber {
			continue
		}
		if e.Status == entity.QueueStatusQueued || e.Status == entity.QueueStatusWaiting {
			position++
		}
	}
	return position, true
}

func (s QueueSnapshot) find(id uuid.UUID) (entity.QueueEntry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return entity.QueueEntry{}, false
}
