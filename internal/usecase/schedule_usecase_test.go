package usecase

import (
	"errors"
	"testing"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

func TestSaveWeeklySchedule_RejectsDuplicateDays(t *testing.T) {
	f := newFixture(t)

	_, err := f.schedules.SaveWeeklySchedule(f.ctx, f.doctor.ID, &dto.SaveWeeklyScheduleRequest{
		Entries: []dto.WeeklyScheduleEntryRequest{
			{DayOfWeek: intPtr(1), IsWorking: true, ShiftStart: "09:00", ShiftEnd: "12:00"},
			{DayOfWeek: intPtr(1), IsWorking: true, ShiftStart: "13:00", ShiftEnd: "17:00"},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(f.store.schedules[f.doctor.ID]) != 7 {
		t.Fatal("expected stored template untouched")
	}
}

func TestSaveWeeklySchedule_OvernightShift(t *testing.T) {
	f := newFixture(t)

	res, err := f.schedules.SaveWeeklySchedule(f.ctx, f.doctor.ID, &dto.SaveWeeklyScheduleRequest{
		Entries: []dto.WeeklyScheduleEntryRequest{
			{DayOfWeek: intPtr(1), IsWorking: true, ShiftStart: "20:00", ShiftEnd: "24:00"},
		},
	})
	if err != nil {
		t.Fatalf("SaveWeeklySchedule: %v", err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(res.Entries))
	}

	gen := f.generate(t, "2030-06-03", "2030-06-09")
	if gen.Generated != 8 {
		t.Fatalf("expected 8 evening slots, got %d", gen.Generated)
	}
	last := f.slotAt(t, "2030-06-03", "23:30")
	if last.Period != entity.SlotPeriodNight {
		t.Fatalf("expected NIGHT period, got %s", last.Period)
	}
}

func TestTimeOff_ReviewOnce(t *testing.T) {
	f := newFixture(t)

	period, err := f.schedules.CreateTimeOff(f.ctx, f.doctor.ID, &dto.CreateTimeOffRequest{
		StartDate: "2030-06-10",
		EndDate:   "2030-06-12",
		Reason:    "conference",
	})
	if err != nil {
		t.Fatalf("CreateTimeOff: %v", err)
	}
	if period.ApprovalStatus != string(entity.ApprovalStatusPending) {
		t.Fatalf("expected PENDING, got %s", period.ApprovalStatus)
	}

	// pending periods do not suppress generation
	gen := f.generate(t, "2030-06-10", "2030-06-10")
	if gen.Generated != 16 {
		t.Fatalf("expected 16 slots on a pending day, got %d", gen.Generated)
	}

	approve := &dto.ReviewTimeOffRequest{ApprovalStatus: string(entity.ApprovalStatusApproved)}
	if _, err := f.schedules.ReviewTimeOff(f.ctx, f.doctor.ID, period.ID, approve); err != nil {
		t.Fatalf("ReviewTimeOff: %v", err)
	}
	if _, err := f.schedules.ReviewTimeOff(f.ctx, f.doctor.ID, period.ID, approve); !errors.Is(err, ErrTimeOffAlreadyReviewed) {
		t.Fatalf("expected ErrTimeOffAlreadyReviewed, got %v", err)
	}

	gen = f.generate(t, "2030-06-11", "2030-06-12")
	if gen.Generated != 0 {
		t.Fatalf("expected approved days skipped, got %d", gen.Generated)
	}

	list, err := f.schedules.ListTimeOff(f.ctx, f.doctor.ID)
	if err != nil {
		t.Fatalf("ListTimeOff: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected one period, got %d", list.Total)
	}

	if err := f.schedules.DeleteTimeOff(f.ctx, f.doctor.ID, period.ID); err != nil {
		t.Fatalf("DeleteTimeOff: %v", err)
	}
	if err := f.schedules.DeleteTimeOff(f.ctx, f.doctor.ID, period.ID); !errors.Is(err, ErrTimeOffNotFound) {
		t.Fatalf("expected ErrTimeOffNotFound, got %v", err)
	}
}

func TestUpdateSlotDuration_UsedByNextGeneration(t *testing.T) {
	f := newFixture(t)

	res, err := f.schedules.UpdateSlotDuration(f.ctx, f.doctor.ID, &dto.UpdateSlotDurationRequest{DurationMinutes: 20})
	if err != nil {
		t.Fatalf("UpdateSlotDuration: %v", err)
	}
	if res.SlotDurationMinutes != 20 {
		t.Fatalf("expected 20, got %d", res.SlotDurationMinutes)
	}

	gen := f.generate(t, "2030-06-03", "2030-06-03")
	if gen.Generated != 24 || gen.DurationMinutes != 20 {
		t.Fatalf("expected 24 twenty-minute slots, got %d of %d", gen.Generated, gen.DurationMinutes)
	}
}

func TestDoctorCheckin_RejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)

	if _, err := f.checkins.SetStatus(f.ctx, f.doctor.ID, entity.CheckinStatusNotCheckedIn); !errors.Is(err, ErrInvalidStatusChange) {
		t.Fatalf("expected ErrInvalidStatusChange, got %v", err)
	}

	status, err := f.checkins.GetStatus(f.ctx, f.doctor.ID)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Status != string(entity.CheckinStatusNotCheckedIn) {
		t.Fatalf("expected NOT_CHECKED_IN by default, got %s", status.Status)
	}
}

func TestAuditLogs_RecordMutations(t *testing.T) {
	f := newFixture(t)
	f.generate(t, "2030-06-04", "2030-06-04")
	f.book(t, "2030-06-04", "09:00")

	logs, err := f.auditLogs.GetAllAuditLogs(f.ctx, 1, 10)
	if err != nil {
		t.Fatalf("GetAllAuditLogs: %v", err)
	}
	if logs.Total != 2 {
		t.Fatalf("expected 2 audit entries, got %d", logs.Total)
	}
	if logs.Logs[0].Action != entity.AuditActionAppointmentBook {
		t.Fatalf("expected newest entry first, got %s", logs.Logs[0].Action)
	}

	one, err := f.auditLogs.GetAuditLog(f.ctx, logs.Logs[1].ID)
	if err != nil {
		t.Fatalf("GetAuditLog: %v", err)
	}
	if one.Action != entity.AuditActionSlotsGenerate {
		t.Fatalf("expected generation audited, got %s", one.Action)
	}
	if _, err := f.auditLogs.GetAuditLog(f.ctx, 999); !errors.Is(err, ErrAuditLogNotFound) {
		t.Fatalf("expected ErrAuditLogNotFound, got %v", err)
	}
}
