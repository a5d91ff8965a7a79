package usecase

import (
	"errors"
	"testing"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_active_slot"}
}

func TestGenerateSlots_SkipsExistingOnRerun(t *testing.T) {
	f := newFixture(t)

	first := f.generate(t, "2030-06-03", "2030-06-09")
	if first.Generated != 80 || first.SkippedDuplicates != 0 {
		t.Fatalf("first run: generated=%d skipped=%d, want 80/0", first.Generated, first.SkippedDuplicates)
	}

	second := f.generate(t, "2030-06-03", "2030-06-09")
	if second.Generated != 0 || second.SkippedDuplicates != 80 {
		t.Fatalf("second run: generated=%d skipped=%d, want 0/80", second.Generated, second.SkippedDuplicates)
	}
	if len(f.store.slots) != 80 {
		t.Fatalf("expected 80 slots stored, got %d", len(f.store.slots))
	}
}

func TestGenerateSlots_InvalidRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.slots.GenerateSlots(f.ctx, f.doctor.ID, &dto.GenerateSlotsRequest{StartDate: "2030-06-09", EndDate: "2030-06-03"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateSlots_OutOfScope(t *testing.T) {
	f := newFixture(t)

	ctx := f.restricted(f.patient.ID)
	_, err := f.slots.GenerateSlots(ctx, f.doctor.ID, &dto.GenerateSlotsRequest{StartDate: "2030-06-03", EndDate: "2030-06-03"})
	if !errors.Is(err, ErrOutOfScope) || !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrOutOfScope, got %v", err)
	}
	if f.store.writes != 0 {
		t.Fatalf("expected no writes, got %d", f.store.writes)
	}
}

func TestBookAndCancel_SlotCountsRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-03", "2030-06-03")

	stats := f.dayStats(t, "2030-06-03")
	if stats.Total != 16 || stats.Available != 16 {
		t.Fatalf("before booking: %+v", stats)
	}

	appt := f.book(t, "2030-06-03", "10:00")
	if appt.Status != string(entity.AppointmentStatusScheduled) {
		t.Fatalf("expected SCHEDULED, got %s", appt.Status)
	}
	if appt.PublicToken == "" {
		t.Fatal("expected a public token")
	}

	stats = f.dayStats(t, "2030-06-03")
	if stats.Available != 15 || stats.Booked != 1 {
		t.Fatalf("after booking: %+v", stats)
	}

	cancelled, err := f.appointments.CancelAppointment(f.ctx, appt.ID, nil)
	if err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}
	if cancelled.CancellationReason != entity.CancelReasonByStaff {
		t.Fatalf("expected default reason, got %q", cancelled.CancellationReason)
	}

	stats = f.dayStats(t, "2030-06-03")
	if stats.Available != 16 || stats.Booked != 0 {
		t.Fatalf("after cancel: %+v", stats)
	}
}

func TestCancelAppointment_Twice(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	appt := f.book(t, "2030-06-04", "09:00")

	if _, err := f.appointments.CancelAppointment(f.ctx, appt.ID, &dto.CancelAppointmentRequest{Reason: "patient called"}); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	_, err := f.appointments.CancelAppointment(f.ctx, appt.ID, nil)
	if !errors.Is(err, ErrAppointmentAlreadyCancelled) {
		t.Fatalf("expected ErrAppointmentAlreadyCancelled, got %v", err)
	}
	if got := f.store.appointments[appt.ID].CancellationReason; got != "patient called" {
		t.Fatalf("second cancel overwrote reason: %q", got)
	}
}

func TestBookAppointment_DriftedSlotHealsToBooked(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	slot := f.slotAt(t, "2030-06-04", "11:00")

	// An active appointment exists but the slot row still says AVAILABLE.
	holder := entity.Appointment{
		ID:          uuid.New(),
		HospitalID:  f.identity.HospitalID,
		SlotID:      &slot.ID,
		PatientID:   f.patient.ID,
		DoctorID:    f.doctor.ID,
		Date:        slot.Date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      entity.AppointmentStatusScheduled,
		PublicToken: "holder",
	}
	f.store.appointments[holder.ID] = holder

	_, err := f.appointments.BookAppointment(f.ctx, &dto.BookAppointmentRequest{SlotID: slot.ID, PatientID: f.patient.ID})
	if !errors.Is(err, ErrSlotAlreadyBooked) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrSlotAlreadyBooked, got %v", err)
	}
	if got := f.store.slots[slot.ID].Status; got != entity.SlotStatusBooked {
		t.Fatalf("expected slot healed to BOOKED, got %s", got)
	}
}

func TestBookAppointment_UniqueViolationIsConflict(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	slot := f.slotAt(t, "2030-06-04", "09:30")

	f.store.createAppointmentErr = uniqueViolation()
	_, err := f.appointments.BookAppointment(f.ctx, &dto.BookAppointmentRequest{SlotID: slot.ID, PatientID: f.patient.ID})
	if !errors.Is(err, ErrSlotAlreadyBooked) {
		t.Fatalf("expected ErrSlotAlreadyBooked, got %v", err)
	}
	if got := f.store.slots[slot.ID].Status; got != entity.SlotStatusAvailable {
		t.Fatalf("expected slot left AVAILABLE, got %s", got)
	}
}

func TestBookAppointment_SlotInPast(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-03", "2030-06-03")
	slot := f.slotAt(t, "2030-06-03", "09:00")

	f.calendar.day.Date = testToday.AddDate(0, 0, 1)
	_, err := f.appointments.BookAppointment(f.ctx, &dto.BookAppointmentRequest{SlotID: slot.ID, PatientID: f.patient.ID})
	if !errors.Is(err, ErrSlotInPast) {
		t.Fatalf("expected ErrSlotInPast, got %v", err)
	}
}

func TestBookAppointment_BlockedSlot(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	slot := f.slotAt(t, "2030-06-04", "14:00")

	if _, err := f.slots.BlockSlot(f.ctx, slot.ID); err != nil {
		t.Fatalf("BlockSlot: %v", err)
	}
	_, err := f.appointments.BookAppointment(f.ctx, &dto.BookAppointmentRequest{SlotID: slot.ID, PatientID: f.patient.ID})
	if !errors.Is(err, ErrSlotNotAvailable) {
		t.Fatalf("expected ErrSlotNotAvailable, got %v", err)
	}

	if _, err := f.slots.UnblockSlot(f.ctx, slot.ID); err != nil {
		t.Fatalf("UnblockSlot: %v", err)
	}
	if _, err := f.slots.UnblockSlot(f.ctx, slot.ID); !errors.Is(err, ErrSlotNotBlocked) {
		t.Fatalf("expected ErrSlotNotBlocked, got %v", err)
	}
}

func TestListSlotsForDate_HealsReleasedSlot(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	slot := f.slotAt(t, "2030-06-04", "15:00")

	// BOOKED with nothing behind it
	slot.Status = entity.SlotStatusBooked
	f.store.slots[slot.ID] = slot

	stats := f.dayStats(t, "2030-06-04")
	if stats.Booked != 0 || stats.Available != 16 {
		t.Fatalf("expected drift healed in response, got %+v", stats)
	}
	if got := f.store.slots[slot.ID].Status; got != entity.SlotStatusAvailable {
		t.Fatalf("expected slot repaired to AVAILABLE, got %s", got)
	}
}

func TestListSlotsForDate_TimeOffShowsCancelled(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-05", "2030-06-05")
	appt := f.book(t, "2030-06-05", "09:00")
	if _, err := f.appointments.CancelAppointment(f.ctx, appt.ID, nil); err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}
	if _, err := f.schedules.CreateTimeOff(f.ctx, f.doctor.ID, &dto.CreateTimeOffRequest{
		StartDate:      "2030-06-05",
		EndDate:        "2030-06-05",
		ApprovalStatus: string(entity.ApprovalStatusApproved),
	}); err != nil {
		t.Fatalf("CreateTimeOff: %v", err)
	}

	day, err := f.slots.ListSlotsForDate(f.ctx, f.doctor.ID, "2030-06-05")
	if err != nil {
		t.Fatalf("ListSlotsForDate: %v", err)
	}
	if !day.IsTimeOff {
		t.Fatal("expected day flagged as time-off")
	}
	if len(day.CancelledAppointments) != 1 || day.CancelledAppointments[0].ID != appt.ID {
		t.Fatalf("expected the cancelled appointment listed, got %+v", day.CancelledAppointments)
	}
}

func TestBookAppointment_SecondBookingIsConflict(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	f.book(t, "2030-06-04", "11:30")
	slot := f.slotAt(t, "2030-06-04", "11:30")

	_, err := f.appointments.BookAppointment(f.ctx, &dto.BookAppointmentRequest{SlotID: slot.ID, PatientID: f.patient.ID})
	if !errors.Is(err, ErrSlotAlreadyBooked) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrSlotAlreadyBooked, got %v", err)
	}
}

func TestBookAppointment_EarlierTodayHasStarted(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-03", "2030-06-03")
	f.at(10, 15)

	started := f.slotAt(t, "2030-06-03", "10:00")
	_, err := f.appointments.BookAppointment(f.ctx, &dto.BookAppointmentRequest{SlotID: started.ID, PatientID: f.patient.ID})
	if !errors.Is(err, ErrSlotInPast) {
		t.Fatalf("expected ErrSlotInPast, got %v", err)
	}

	f.book(t, "2030-06-03", "10:30")
}

func TestGenerateSlots_TodaySkipsStartedSlots(t *testing.T) {
	f := newFixture(t)
	f.at(10, 15)

	gen := f.generate(t, "2030-06-03", "2030-06-04")
	if gen.Generated != 13+16 {
		t.Fatalf("expected 13 slots left today and 16 tomorrow, got %d", gen.Generated)
	}
	for _, s := range f.store.slots {
		if s.Date.Equal(testToday) && s.StartTime < "10:30" {
			t.Fatalf("generated slot %s that already started", s.StartTime)
		}
	}
}
