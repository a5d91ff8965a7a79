package usecase

import (
	"errors"
	"testing"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

func TestPublicGetAppointment_ListsFreeSlots(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	appt := f.book(t, "2030-06-04", "09:00")

	res, err := f.public.GetAppointment(f.ctx, appt.PublicToken, "2030-06-04")
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if !res.CanCancel || !res.CanReschedule {
		t.Fatal("expected an open appointment to be movable")
	}
	if res.DoctorName != f.doctor.FullName {
		t.Fatalf("expected doctor name, got %q", res.DoctorName)
	}
	if len(res.AvailableSlots) != 15 {
		t.Fatalf("expected 15 free slots, got %d", len(res.AvailableSlots))
	}

	if _, err := f.public.GetAppointment(f.ctx, "unknown", ""); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestPublicReschedule_MovesAppointment(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-05")
	appt := f.book(t, "2030-06-04", "09:00")
	target := f.slotAt(t, "2030-06-05", "10:30")

	res, err := f.public.RescheduleAppointment(f.ctx, appt.PublicToken, &dto.PublicRescheduleRequest{SlotID: target.ID})
	if err != nil {
		t.Fatalf("RescheduleAppointment: %v", err)
	}
	if res.PublicToken == "" || res.PublicToken == appt.PublicToken {
		t.Fatal("expected a fresh link for the new appointment")
	}
	if res.Appointment.Date != "2030-06-05" || res.Appointment.StartTime != "10:30" {
		t.Fatalf("unexpected new appointment %+v", res.Appointment)
	}

	old := f.store.appointments[appt.ID]
	if old.Status != entity.AppointmentStatusCancelled || old.CancellationReason != entity.CancelReasonRescheduled {
		t.Fatalf("expected old appointment cancelled as rescheduled, got %s %q", old.Status, old.CancellationReason)
	}
	if got := f.store.slots[*appt.SlotID].Status; got != entity.SlotStatusAvailable {
		t.Fatalf("expected old slot released, got %s", got)
	}
	if got := f.store.slots[target.ID].Status; got != entity.SlotStatusBooked {
		t.Fatalf("expected new slot booked, got %s", got)
	}
}

func TestPublicReschedule_FailureKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-05")
	appt := f.book(t, "2030-06-04", "09:00")
	target := f.slotAt(t, "2030-06-05", "10:30")

	// someone else holds the target but its row was never marked BOOKED
	taken := entity.Appointment{
		ID:          uuid.New(),
		HospitalID:  f.identity.HospitalID,
		SlotID:      &target.ID,
		PatientID:   uuid.New(),
		DoctorID:    f.doctor.ID,
		Date:        target.Date,
		StartTime:   target.StartTime,
		EndTime:     target.EndTime,
		Status:      entity.AppointmentStatusScheduled,
		PublicToken: "other",
	}
	f.store.appointments[taken.ID] = taken

	_, err := f.public.RescheduleAppointment(f.ctx, appt.PublicToken, &dto.PublicRescheduleRequest{SlotID: target.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected a conflict, got %v", err)
	}

	if got := f.store.appointments[appt.ID].Status; got != entity.AppointmentStatusScheduled {
		t.Fatalf("expected original kept SCHEDULED, got %s", got)
	}
	if got := f.store.slots[*appt.SlotID].Status; got != entity.SlotStatusBooked {
		t.Fatalf("expected original slot kept BOOKED, got %s", got)
	}
	if got := f.store.slots[target.ID].Status; got != entity.SlotStatusBooked {
		t.Fatalf("expected target slot healed to BOOKED, got %s", got)
	}
}

func TestPublicReschedule_SameSlot(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	appt := f.book(t, "2030-06-04", "09:00")

	_, err := f.public.RescheduleAppointment(f.ctx, appt.PublicToken, &dto.PublicRescheduleRequest{SlotID: *appt.SlotID})
	if !errors.Is(err, ErrRescheduleSameSlot) {
		t.Fatalf("expected ErrRescheduleSameSlot, got %v", err)
	}
}

func TestPublicCancelAppointment(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	appt := f.book(t, "2030-06-04", "09:00")

	res, err := f.public.CancelAppointment(f.ctx, appt.PublicToken)
	if err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}
	if res.Status != string(entity.AppointmentStatusCancelled) || res.CanCancel {
		t.Fatalf("unexpected response %+v", res)
	}
	if last := f.store.audits[len(f.store.audits)-1]; last.UserID != nil {
		t.Fatal("expected the public action audited without a user")
	}

	if _, err := f.public.CancelAppointment(f.ctx, appt.PublicToken); !errors.Is(err, ErrAppointmentAlreadyCancelled) {
		t.Fatalf("expected ErrAppointmentAlreadyCancelled, got %v", err)
	}
}

func TestPublicQueueEntry_Status(t *testing.T) {
	f := newFixture(t)
	f.addQueueEntry(1, entity.QueueStatusQueued)
	mine := f.addQueueEntry(2, entity.QueueStatusQueued)

	res, err := f.public.GetQueueEntry(f.ctx, mine.PublicToken)
	if err != nil {
		t.Fatalf("GetQueueEntry: %v", err)
	}
	if res.Position == nil || *res.Position != 2 {
		t.Fatalf("expected position 2, got %v", res.Position)
	}
	if res.EstimatedWaitMinutes == nil || *res.EstimatedWaitMinutes != 30 {
		t.Fatalf("expected 30 minutes, got %v", res.EstimatedWaitMinutes)
	}
	if res.DoctorCheckedIn || !res.CanCancel {
		t.Fatalf("unexpected flags %+v", res)
	}

	left, err := f.public.CancelQueueEntry(f.ctx, mine.PublicToken)
	if err != nil {
		t.Fatalf("CancelQueueEntry: %v", err)
	}
	if left.Status != string(entity.QueueStatusLeft) || left.CanCancel || left.Position != nil {
		t.Fatalf("unexpected response after leaving %+v", left)
	}
	if _, err := f.public.CancelQueueEntry(f.ctx, mine.PublicToken); !errors.Is(err, ErrQueueNotCancellable) {
		t.Fatalf("expected ErrQueueNotCancellable, got %v", err)
	}
}

func TestPublicCancelQueueEntry_ExpiredLink(t *testing.T) {
	f := newFixture(t)
	entry := f.addQueueEntry(1, entity.QueueStatusQueued)
	f.calendar.day.Date = testToday.AddDate(0, 0, 1)

	_, err := f.public.CancelQueueEntry(f.ctx, entry.PublicToken)
	if !errors.Is(err, ErrPublicLinkExpired) {
		t.Fatalf("expected ErrPublicLinkExpired, got %v", err)
	}
	if got := f.store.queue[entry.ID].Status; got != entity.QueueStatusQueued {
		t.Fatalf("expected entry untouched, got %s", got)
	}
}
