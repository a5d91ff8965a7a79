package scheduling

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func TestEstimateWait_TwoQueuedAhead(t *testing.T) {
	a := queueEntry(1, entity.QueueStatusQueued)
	b := queueEntry(2, entity.QueueStatusQueued)
	me := queueEntry(3, entity.QueueStatusQueued)

	snap := QueueSnapshot{
		Entries:                []entity.QueueEntry{a, b, me},
		DefaultDurationMinutes: 20,
		MinSamples:             3,
		Now:                    time.Now(),
	}
	got, ok := snap.EstimateWait(me.ID)
	if !ok {
		t.Fatal("expected an estimate")
	}
	if got != 40 {
		t.Errorf("expected 40 minutes, got %d", got)
	}
}

func TestEstimateWait_OneWithDoctor(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	started := now.Add(-5 * time.Minute)

	a := queueEntry(1, entity.QueueStatusWithDoctor)
	a.WithDoctorAt = &started
	b := queueEntry(2, entity.QueueStatusQueued)
	me := queueEntry(3, entity.QueueStatusQueued)

	snap := QueueSnapshot{
		Entries:                []entity.QueueEntry{a, b, me},
		DefaultDurationMinutes: 20,
		MinSamples:             3,
		Now:                    now,
	}
	got, ok := snap.EstimateWait(me.ID)
	if !ok {
		t.Fatal("expected an estimate")
	}
	if got != 35 {
		t.Errorf("expected 35 minutes, got %d", got)
	}
}

func TestEstimateWait_OverrunDoesNotGoNegative(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	started := now.Add(-45 * time.Minute)

	a := queueEntry(1, entity.QueueStatusWithDoctor)
	a.WithDoctorAt = &started
	me := queueEntry(2, entity.QueueStatusQueued)

	snap := QueueSnapshot{Entries: []entity.QueueEntry{a, me}, DefaultDurationMinutes: 20, Now: now}
	if got, _ := snap.EstimateWait(me.ID); got != 0 {
		t.Errorf("expected 0 minutes, got %d", got)
	}
}

func TestEstimateWait_UsesAppointmentDurationThenAverage(t *testing.T) {
	apptID := uuid.New()
	scheduled := queueEntry(4, entity.QueueStatusQueued)
	scheduled.AppointmentID = &apptID
	walkIn := queueEntry(5, entity.QueueStatusWaiting)
	me := queueEntry(6, entity.QueueStatusQueued)

	done := []entity.QueueEntry{
		queueEntry(1, entity.QueueStatusCompleted),
		queueEntry(2, entity.QueueStatusCompleted),
		queueEntry(3, entity.QueueStatusCompleted),
	}
	done[0].ConsultationTimeMinutes = intPtr(10)
	done[1].ConsultationTimeMinutes = intPtr(12)
	done[2].ConsultationTimeMinutes = intPtr(14)

	snap := QueueSnapshot{
		Entries:                append(done, scheduled, walkIn, me),
		AppointmentMinutes:     map[uuid.UUID]int{apptID: 30},
		DefaultDurationMinutes: 20,
		MinSamples:             3,
		Now:                    time.Now(),
	}

	// 30 from the booked slot + 12 from the day's average.
	if got, _ := snap.EstimateWait(me.ID); got != 42 {
		t.Errorf("expected 42 minutes, got %d", got)
	}
}

func TestAverageConsultation_FloorAndSampleThreshold(t *testing.T) {
	done := []entity.QueueEntry{
		queueEntry(1, entity.QueueStatusCompleted),
		queueEntry(2, entity.QueueStatusCompleted),
	}
	done[0].ConsultationTimeMinutes = intPtr(2)
	done[1].ConsultationTimeMinutes = intPtr(4)

	snap := QueueSnapshot{Entries: done, DefaultDurationMinutes: 30, MinSamples: 3}
	if _, ok := snap.AverageConsultation(); ok {
		t.Fatal("expected no average below the sample threshold")
	}

	third := queueEntry(3, entity.QueueStatusCompleted)
	third.ConsultationTimeMinutes = intPtr(3)
	snap.Entries = append(snap.Entries, third)
	avg, ok := snap.AverageConsultation()
	if !ok {
		t.Fatal("expected an average")
	}
	if avg != 15 {
		t.Errorf("expected average floored at 15, got %v", avg)
	}
}

func TestPosition(t *testing.T) {
	a := queueEntry(1, entity.QueueStatusWithDoctor)
	b := queueEntry(2, entity.QueueStatusWaiting)
	c := queueEntry(3, entity.QueueStatusLeft)
	me := queueEntry(4, entity.QueueStatusQueued)
	snap := QueueSnapshot{Entries: []entity.QueueEntry{a, b, c, me}}

	if pos, ok := snap.Position(me.ID); !ok || pos != 2 {
		t.Errorf("expected position 2, got %d (ok=%v)", pos, ok)
	}
	if _, ok := snap.Position(a.ID); ok {
		t.Error("entry with the doctor has no position")
	}
	if _, ok := snap.EstimateWait(c.ID); ok {
		t.Error("finished entry has no estimate")
	}
}
