//go:build integration

package repository_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/infrastructure/database"
	"go-clinic-scheduling/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres password=postgres dbname=clinic_scheduling_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot get sql.DB: %v\n", err)
		os.Exit(1)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	if err := database.RunMigrations(sqlDB, log); err != nil {
		fmt.Fprintf(os.Stderr, "migrations failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

type seed struct {
	hospital entity.Hospital
	doctor   entity.DoctorProfile
	patient  entity.PatientProfile
	date     time.Time
}

func setupSeed(t *testing.T) seed {
	t.Helper()

	s := seed{
		hospital: entity.Hospital{ID: uuid.New(), Name: "Integration Clinic", Timezone: "UTC"},
		date:     time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC),
	}
	s.doctor = entity.DoctorProfile{ID: uuid.New(), HospitalID: s.hospital.ID, FullName: "Dr. Integration", SlotDurationMinutes: 30, IsActive: true}
	s.patient = entity.PatientProfile{ID: uuid.New(), HospitalID: s.hospital.ID, FullName: "Test Patient"}

	for _, row := range []interface{}{&s.hospital, &s.doctor, &s.patient} {
		if err := testDB.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}

	t.Cleanup(func() {
		testDB.Exec("DELETE FROM appointments WHERE doctor_id = ?", s.doctor.ID)
		testDB.Exec("DELETE FROM slots WHERE doctor_id = ?", s.doctor.ID)
		testDB.Exec("DELETE FROM patient_profiles WHERE id = ?", s.patient.ID)
		testDB.Exec("DELETE FROM doctor_profiles WHERE id = ?", s.doctor.ID)
		testDB.Exec("DELETE FROM hospitals WHERE id = ?", s.hospital.ID)
	})
	return s
}

func (s seed) slots(starts ...string) []entity.Slot {
	out := make([]entity.Slot, 0, len(starts))
	for _, start := range starts {
		t, _ := time.Parse("15:04", start)
		out = append(out, entity.Slot{
			ID:              uuid.New(),
			HospitalID:      s.hospital.ID,
			DoctorID:        s.doctor.ID,
			Date:            s.date,
			StartTime:       start,
			EndTime:         t.Add(30 * time.Minute).Format("15:04"),
			DurationMinutes: 30,
			Period:          entity.SlotPeriodMorning,
			Status:          entity.SlotStatusAvailable,
		})
	}
	return out
}

func (s seed) appointment(slot entity.Slot) *entity.Appointment {
	return &entity.Appointment{
		ID:          uuid.New(),
		HospitalID:  s.hospital.ID,
		SlotID:      &slot.ID,
		PatientID:   s.patient.ID,
		DoctorID:    s.doctor.ID,
		Date:        slot.Date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      entity.AppointmentStatusScheduled,
		PublicToken: uuid.NewString(),
	}
}

func TestSlotRepository_CreateIgnoreDuplicates(t *testing.T) {
	s := setupSeed(t)
	repo := repository.NewSlotRepository()

	n, err := repo.CreateIgnoreDuplicates(testDB, s.slots("09:00", "09:30", "10:00"))
	if err != nil || n != 3 {
		t.Fatalf("first insert: n=%d err=%v", n, err)
	}

	// same keys with fresh ids
	n, err = repo.CreateIgnoreDuplicates(testDB, s.slots("09:30", "10:00", "10:30"))
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only 10:30 inserted, got %d", n)
	}

	day, err := repo.FindByDoctorAndDate(testDB, s.doctor.ID, s.date)
	if err != nil {
		t.Fatalf("FindByDoctorAndDate: %v", err)
	}
	if len(day) != 4 || day[0].StartTime != "09:00" {
		t.Fatalf("expected 4 slots ordered by start, got %d", len(day))
	}
}

func TestAppointmentRepository_OneActivePerSlot(t *testing.T) {
	s := setupSeed(t)
	slots := s.slots("11:00")
	if _, err := repository.NewSlotRepository().CreateIgnoreDuplicates(testDB, slots); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	repo := repository.NewAppointmentRepository()

	first := s.appointment(slots[0])
	if err := repo.Create(testDB, first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	err := repo.Create(testDB, s.appointment(slots[0]))
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		t.Fatalf("expected unique violation, got %v", err)
	}

	n, err := repo.Cancel(testDB, first.ID, entity.CancelReasonByStaff, time.Now())
	if err != nil || n != 1 {
		t.Fatalf("cancel: n=%d err=%v", n, err)
	}
	n, err = repo.Cancel(testDB, first.ID, "again", time.Now())
	if err != nil || n != 0 {
		t.Fatalf("second cancel should affect nothing: n=%d err=%v", n, err)
	}

	if err := repo.Create(testDB, s.appointment(slots[0])); err != nil {
		t.Fatalf("rebooking a released slot: %v", err)
	}
}

func TestSlotRepository_PurgeDetachesCancelledAppointments(t *testing.T) {
	s := setupSeed(t)
	slotRepo := repository.NewSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	slots := s.slots("13:00", "13:30", "14:00", "14:30")
	if _, err := slotRepo.CreateIgnoreDuplicates(testDB, slots); err != nil {
		t.Fatalf("create slots: %v", err)
	}

	// 13:00 is held by a live booking even though its row still says AVAILABLE
	if err := appointmentRepo.Create(testDB, s.appointment(slots[0])); err != nil {
		t.Fatalf("create live appointment: %v", err)
	}
	cancelled := s.appointment(slots[1])
	if err := appointmentRepo.Create(testDB, cancelled); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if _, err := appointmentRepo.Cancel(testDB, cancelled.ID, entity.CancelReasonByStaff, time.Now()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := slotRepo.UpdateStatus(testDB, slots[2].ID, entity.SlotStatusBlocked); err != nil {
		t.Fatalf("block: %v", err)
	}

	count, err := slotRepo.CountPurgeable(testDB, s.doctor.ID, s.date)
	if err != nil || count != 2 {
		t.Fatalf("CountPurgeable: count=%d err=%v", count, err)
	}
	deleted, err := slotRepo.DeletePurgeable(testDB, s.doctor.ID, s.date)
	if err != nil || deleted != count {
		t.Fatalf("DeletePurgeable: deleted=%d err=%v", deleted, err)
	}

	left, err := slotRepo.FindByDoctorAndDate(testDB, s.doctor.ID, s.date)
	if err != nil {
		t.Fatalf("FindByDoctorAndDate: %v", err)
	}
	if len(left) != 2 || left[0].StartTime != "13:00" || left[1].StartTime != "14:00" {
		t.Fatalf("expected booked and blocked slots kept, got %d", len(left))
	}

	var detached entity.Appointment
	if err := testDB.First(&detached, "id = ?", cancelled.ID).Error; err != nil {
		t.Fatalf("reload cancelled appointment: %v", err)
	}
	if detached.SlotID != nil {
		t.Fatalf("expected cancelled appointment detached, still on slot %s", detached.SlotID)
	}
}
