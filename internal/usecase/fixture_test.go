package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/scheduling"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// 2030-06-03 is a Monday
var (
	testToday = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)
	testNow   = time.Date(2030, 6, 3, 8, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *memStore
	calendar *fixedCalendar
	ctx      context.Context
	identity middleware.Identity
	doctor   entity.DoctorProfile
	patient  entity.PatientProfile

	slots        SlotUsecase
	schedules    ScheduleUsecase
	regeneration RegenerationUsecase
	appointments AppointmentUsecase
	queue        QueueUsecase
	public       PublicUsecase
	checkins     DoctorCheckinUsecase
	auditLogs    AuditLogUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := newMemStore()
	hospitalID := uuid.New()
	doctor := entity.DoctorProfile{
		ID:                  uuid.New(),
		HospitalID:          hospitalID,
		FullName:            "Dr. Rina Hartono",
		SlotDurationMinutes: 30,
		IsActive:            true,
	}
	patient := entity.PatientProfile{ID: uuid.New(), HospitalID: hospitalID, FullName: "Budi Santoso"}
	store.doctors[doctor.ID] = doctor
	store.patients[patient.ID] = patient

	var week []entity.WeeklyScheduleEntry
	for day := 0; day < 7; day++ {
		entry := entity.WeeklyScheduleEntry{ID: uuid.New(), DoctorID: doctor.ID, DayOfWeek: day}
		if day >= int(time.Monday) && day <= int(time.Friday) {
			entry.IsWorking, entry.ShiftStart, entry.ShiftEnd = true, "09:00", "17:00"
		}
		week = append(week, entry)
	}
	store.schedules[doctor.ID] = week

	tx := &mockTransactor{store: store}
	calendar := &fixedCalendar{day: service.BusinessDay{Now: testNow, Date: testToday, Location: time.UTC}}

	doctorRepo := &mockDoctorRepo{s: store}
	patientRepo := &mockPatientRepo{s: store}
	scheduleRepo := &mockScheduleRepo{s: store}
	timeOffRepo := &mockTimeOffRepo{s: store}
	slotRepo := &mockSlotRepo{s: store}
	appointmentRepo := &mockAppointmentRepo{s: store}
	queueRepo := &mockQueueRepo{s: store}
	checkinRepo := &mockCheckinRepo{s: store}
	auditLogRepo := &mockAuditLogRepo{s: store}
	auditService := service.NewAuditService(log, auditLogRepo)

	slots := NewSlotUsecase(tx, log, scheduling.DefaultPeriods, calendar, auditService,
		doctorRepo, scheduleRepo, timeOffRepo, slotRepo, appointmentRepo, queueRepo)

	identity := middleware.Identity{
		UserID:     uuid.New(),
		HospitalID: hospitalID,
		TokenID:    "test-token",
		Visibility: entity.Unrestricted(),
	}

	return &fixture{
		store:    store,
		calendar: calendar,
		ctx:      middleware.WithIdentity(context.Background(), identity),
		identity: identity,
		doctor:   doctor,
		patient:  patient,

		slots:     slots,
		schedules: NewScheduleUsecase(tx, log, auditService, doctorRepo, scheduleRepo, timeOffRepo),
		regeneration: NewRegenerationUsecase(tx, log, 1, calendar, auditService, slots,
			doctorRepo, slotRepo, appointmentRepo, queueRepo),
		appointments: NewAppointmentUsecase(tx, log, calendar, auditService,
			patientRepo, slotRepo, appointmentRepo, queueRepo),
		queue: NewQueueUsecase(tx, log, 3, calendar, auditService,
			doctorRepo, patientRepo, slotRepo, appointmentRepo, queueRepo, checkinRepo),
		public: NewPublicUsecase(tx, log, 3, calendar, auditService,
			doctorRepo, slotRepo, appointmentRepo, queueRepo, checkinRepo),
		checkins:  NewDoctorCheckinUsecase(tx, log, calendar, doctorRepo, checkinRepo),
		auditLogs: NewAuditLogUsecase(tx, log, auditLogRepo),
	}
}

// at moves the clock within the test day
func (f *fixture) at(hour, minute int) {
	f.calendar.day.Now = time.Date(2030, 6, 3, hour, minute, 0, 0, time.UTC)
}

// restricted returns a context whose caller only sees the given doctors
func (f *fixture) restricted(doctorIDs ...uuid.UUID) context.Context {
	identity := f.identity
	identity.Visibility = entity.RestrictTo(doctorIDs...)
	return middleware.WithIdentity(context.Background(), identity)
}

func (f *fixture) generate(t *testing.T, from, to string) *dto.GenerateSlotsResponse {
	t.Helper()
	res, err := f.slots.GenerateSlots(f.ctx, f.doctor.ID, &dto.GenerateSlotsRequest{StartDate: from, EndDate: to})
	if err != nil {
		t.Fatalf("GenerateSlots(%s..%s): %v", from, to, err)
	}
	return res
}

func (f *fixture) slotAt(t *testing.T, date, start string) entity.Slot {
	t.Helper()
	for _, s := range f.store.slots {
		if s.DoctorID == f.doctor.ID && s.Date.Format(entity.DateLayout) == date && s.StartTime == start {
			return s
		}
	}
	t.Fatalf("no slot at %s %s", date, start)
	return entity.Slot{}
}

func (f *fixture) book(t *testing.T, date, start string) *dto.AppointmentResponse {
	t.Helper()
	slot := f.slotAt(t, date, start)
	res, err := f.appointments.BookAppointment(f.ctx, &dto.BookAppointmentRequest{SlotID: slot.ID, PatientID: f.patient.ID})
	if err != nil {
		t.Fatalf("BookAppointment(%s %s): %v", date, start, err)
	}
	return res
}

func (f *fixture) dayStats(t *testing.T, date string) dto.SlotStats {
	t.Helper()
	day, err := f.slots.ListSlotsForDate(f.ctx, f.doctor.ID, date)
	if err != nil {
		t.Fatalf("ListSlotsForDate(%s): %v", date, err)
	}
	return day.Stats
}

func (f *fixture) addQueueEntry(number int, status entity.QueueStatus) entity.QueueEntry {
	entry := entity.QueueEntry{
		ID:          uuid.New(),
		HospitalID:  f.identity.HospitalID,
		DoctorID:    f.doctor.ID,
		Date:        testToday,
		QueueNumber: number,
		EntryType:   entity.QueueEntryTypeWalkIn,
		WalkInName:  "walk-in",
		Status:      status,
		Priority:    entity.QueuePriorityNormal,
		CheckedInAt: testNow,
		PublicToken: uuid.NewString(),
	}
	f.store.queue[entry.ID] = entry
	return entry
}
