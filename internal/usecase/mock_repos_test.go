package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// memStore backs every mock repository so cross-table rules (slot purge,
// active appointment per slot) behave like the database.
type memStore struct {
	doctors      map[uuid.UUID]entity.DoctorProfile
	patients     map[uuid.UUID]entity.PatientProfile
	schedules    map[uuid.UUID][]entity.WeeklyScheduleEntry
	timeOff      map[uuid.UUID]entity.TimeOffPeriod
	slots        map[uuid.UUID]entity.Slot
	appointments map[uuid.UUID]entity.Appointment
	queue        map[uuid.UUID]entity.QueueEntry
	checkins     map[string]entity.DoctorDailyCheckin
	audits       []entity.AuditLog

	// writes counts mutating repository calls
	writes int

	createAppointmentErr error
	createSlotsErr       error
	purgeErr             error

	// afterQueueLookup runs once a linked queue entry has been read, standing
	// in for a concurrent writer.
	afterQueueLookup func()
}

func newMemStore() *memStore {
	return &memStore{
		doctors:      map[uuid.UUID]entity.DoctorProfile{},
		patients:     map[uuid.UUID]entity.PatientProfile{},
		schedules:    map[uuid.UUID][]entity.WeeklyScheduleEntry{},
		timeOff:      map[uuid.UUID]entity.TimeOffPeriod{},
		slots:        map[uuid.UUID]entity.Slot{},
		appointments: map[uuid.UUID]entity.Appointment{},
		queue:        map[uuid.UUID]entity.QueueEntry{},
		checkins:     map[string]entity.DoctorDailyCheckin{},
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.doctors {
		c.doctors[k] = v
	}
	for k, v := range s.patients {
		c.patients[k] = v
	}
	for k, v := range s.schedules {
		c.schedules[k] = append([]entity.WeeklyScheduleEntry(nil), v...)
	}
	for k, v := range s.timeOff {
		c.timeOff[k] = v
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	for k, v := range s.queue {
		c.queue[k] = v
	}
	for k, v := range s.checkins {
		c.checkins[k] = v
	}
	c.audits = append([]entity.AuditLog(nil), s.audits...)
	return c
}

func (s *memStore) restore(from *memStore) {
	s.doctors = from.doctors
	s.patients = from.patients
	s.schedules = from.schedules
	s.timeOff = from.timeOff
	s.slots = from.slots
	s.appointments = from.appointments
	s.queue = from.queue
	s.checkins = from.checkins
	s.audits = from.audits
}

// mockTransactor rolls the store back when fn fails
type mockTransactor struct {
	store *memStore
}

func (t *mockTransactor) Conn(ctx context.Context) *gorm.DB {
	return nil
}

func (t *mockTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	saved := t.store.snapshot()
	if err := fn(nil); err != nil {
		t.store.restore(saved)
		return err
	}
	return nil
}

type fixedCalendar struct {
	day service.BusinessDay
}

func (c *fixedCalendar) Today(ctx context.Context, hospitalID uuid.UUID) (service.BusinessDay, error) {
	return c.day, nil
}

// ---------- doctors, patients ----------

type mockDoctorRepo struct{ s *memStore }

func (r *mockDoctorRepo) FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.DoctorProfile, error) {
	d, ok := r.s.doctors[id]
	if !ok || d.HospitalID != hospitalID {
		return nil, nil
	}
	return &d, nil
}

func (r *mockDoctorRepo) UpdateSlotDuration(db *gorm.DB, id uuid.UUID, minutes int) error {
	r.s.writes++
	d := r.s.doctors[id]
	d.SlotDurationMinutes = minutes
	r.s.doctors[id] = d
	return nil
}

type mockPatientRepo struct{ s *memStore }

func (r *mockPatientRepo) FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.PatientProfile, error) {
	p, ok := r.s.patients[id]
	if !ok || p.HospitalID != hospitalID {
		return nil, nil
	}
	return &p, nil
}

// ---------- weekly schedule, time-off ----------

type mockScheduleRepo struct{ s *memStore }

func (r *mockScheduleRepo) FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyScheduleEntry, error) {
	return append([]entity.WeeklyScheduleEntry(nil), r.s.schedules[doctorID]...), nil
}

func (r *mockScheduleRepo) Replace(db *gorm.DB, doctorID uuid.UUID, entries []entity.WeeklyScheduleEntry) error {
	r.s.writes++
	r.s.schedules[doctorID] = append([]entity.WeeklyScheduleEntry(nil), entries...)
	return nil
}

type mockTimeOffRepo struct{ s *memStore }

func (r *mockTimeOffRepo) Create(db *gorm.DB, period *entity.TimeOffPeriod) error {
	r.s.writes++
	period.ID = uuid.New()
	r.s.timeOff[period.ID] = *period
	return nil
}

func (r *mockTimeOffRepo) FindByID(db *gorm.DB, doctorID, id uuid.UUID) (*entity.TimeOffPeriod, error) {
	p, ok := r.s.timeOff[id]
	if !ok || p.DoctorID != doctorID {
		return nil, nil
	}
	return &p, nil
}

func (r *mockTimeOffRepo) FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.TimeOffPeriod, error) {
	var result []entity.TimeOffPeriod
	for _, p := range r.s.timeOff {
		if p.DoctorID == doctorID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *mockTimeOffRepo) FindApprovedInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.TimeOffPeriod, error) {
	var result []entity.TimeOffPeriod
	for _, p := range r.s.timeOff {
		if p.DoctorID == doctorID && p.IsApproved() && !p.EndDate.Before(from) && !p.StartDate.After(to) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *mockTimeOffRepo) UpdateApprovalStatus(db *gorm.DB, id uuid.UUID, status entity.ApprovalStatus) error {
	r.s.writes++
	p := r.s.timeOff[id]
	p.ApprovalStatus = status
	r.s.timeOff[id] = p
	return nil
}

func (r *mockTimeOffRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.s.writes++
	if _, ok := r.s.timeOff[id]; !ok {
		return 0, nil
	}
	delete(r.s.timeOff, id)
	return 1, nil
}

// ---------- slots ----------

type mockSlotRepo struct{ s *memStore }

func (r *mockSlotRepo) FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.Slot, error) {
	slot, ok := r.s.slots[id]
	if !ok || slot.HospitalID != hospitalID {
		return nil, nil
	}
	return &slot, nil
}

func (r *mockSlotRepo) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	slot, ok := r.s.slots[id]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (r *mockSlotRepo) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Slot, error) {
	var result []entity.Slot
	for _, slot := range r.s.slots {
		if slot.DoctorID == doctorID && slot.Date.Equal(date) {
			result = append(result, slot)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (r *mockSlotRepo) FindKeysInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.SlotKey, error) {
	var keys []entity.SlotKey
	for _, slot := range r.s.slots {
		if slot.DoctorID == doctorID && !slot.Date.Before(from) && !slot.Date.After(to) {
			keys = append(keys, slot.Key())
		}
	}
	return keys, nil
}

func (r *mockSlotRepo) CreateIgnoreDuplicates(db *gorm.DB, slots []entity.Slot) (int64, error) {
	if r.s.createSlotsErr != nil {
		return 0, r.s.createSlotsErr
	}
	r.s.writes++
	existing := map[entity.SlotKey]bool{}
	for _, slot := range r.s.slots {
		existing[slot.Key()] = true
	}
	var inserted int64
	for _, slot := range slots {
		if existing[slot.Key()] {
			continue
		}
		slot.ID = uuid.New()
		r.s.slots[slot.ID] = slot
		existing[slot.Key()] = true
		inserted++
	}
	return inserted, nil
}

func (r *mockSlotRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.SlotStatus) error {
	r.s.writes++
	slot := r.s.slots[id]
	slot.Status = status
	r.s.slots[id] = slot
	return nil
}

func (r *mockSlotRepo) UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.SlotStatus) (int64, error) {
	r.s.writes++
	slot, ok := r.s.slots[id]
	if !ok || slot.Status != from {
		return 0, nil
	}
	slot.Status = to
	r.s.slots[id] = slot
	return 1, nil
}

func (r *mockSlotRepo) purgeable(doctorID uuid.UUID, from time.Time) []uuid.UUID {
	referenced := map[uuid.UUID]bool{}
	for _, a := range r.s.appointments {
		if a.SlotID != nil && a.IsActive() {
			referenced[*a.SlotID] = true
		}
	}
	var ids []uuid.UUID
	for id, slot := range r.s.slots {
		if slot.DoctorID == doctorID && !slot.Date.Before(from) && slot.Status == entity.SlotStatusAvailable && !referenced[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *mockSlotRepo) CountPurgeable(db *gorm.DB, doctorID uuid.UUID, from time.Time) (int64, error) {
	return int64(len(r.purgeable(doctorID, from))), nil
}

func (r *mockSlotRepo) DeletePurgeable(db *gorm.DB, doctorID uuid.UUID, from time.Time) (int64, error) {
	if r.s.purgeErr != nil {
		return 0, r.s.purgeErr
	}
	r.s.writes++
	ids := r.purgeable(doctorID, from)
	for _, id := range ids {
		delete(r.s.slots, id)
		for apptID, a := range r.s.appointments {
			if a.OnSlot(id) {
				a.SlotID = nil
				r.s.appointments[apptID] = a
			}
		}
	}
	return int64(len(ids)), nil
}

// ---------- appointments ----------

type mockAppointmentRepo struct{ s *memStore }

func (r *mockAppointmentRepo) withRelations(a entity.Appointment) *entity.Appointment {
	if p, ok := r.s.patients[a.PatientID]; ok {
		a.Patient = &p
	}
	if d, ok := r.s.doctors[a.DoctorID]; ok {
		a.Doctor = &d
	}
	return &a
}

func (r *mockAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if r.s.createAppointmentErr != nil {
		return r.s.createAppointmentErr
	}
	r.s.writes++
	for _, a := range r.s.appointments {
		if appointment.SlotID != nil && a.OnSlot(*appointment.SlotID) && a.IsActive() {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_active_slot"}
		}
	}
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	stored := *appointment
	stored.Patient, stored.Doctor = nil, nil
	r.s.appointments[appointment.ID] = stored
	return nil
}

func (r *mockAppointmentRepo) FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := r.s.appointments[id]
	if !ok || a.HospitalID != hospitalID {
		return nil, nil
	}
	return r.withRelations(a), nil
}

func (r *mockAppointmentRepo) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *mockAppointmentRepo) FindByPublicToken(db *gorm.DB, token string) (*entity.Appointment, error) {
	for _, a := range r.s.appointments {
		if a.PublicToken == token {
			return r.withRelations(a), nil
		}
	}
	return nil, nil
}

func (r *mockAppointmentRepo) FindActiveBySlot(db *gorm.DB, slotID uuid.UUID) (*entity.Appointment, error) {
	for _, a := range r.s.appointments {
		if a.OnSlot(slotID) && a.IsActive() {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *mockAppointmentRepo) FindActiveBySlotIDs(db *gorm.DB, slotIDs []uuid.UUID) ([]entity.Appointment, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range slotIDs {
		wanted[id] = true
	}
	var result []entity.Appointment
	for _, a := range r.s.appointments {
		if a.SlotID != nil && wanted[*a.SlotID] && a.IsActive() {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *mockAppointmentRepo) FindOpenByDoctorFrom(db *gorm.DB, doctorID uuid.UUID, from time.Time) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, a := range r.s.appointments {
		if a.DoctorID == doctorID && !a.Date.Before(from) && a.IsOpen() {
			result = append(result, *r.withRelations(a))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (r *mockAppointmentRepo) FindCancelledByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, a := range r.s.appointments {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.IsCancelled() {
			result = append(result, *r.withRelations(a))
		}
	}
	return result, nil
}

func (r *mockAppointmentRepo) FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	var all []entity.Appointment
	for _, a := range r.s.appointments {
		if a.HospitalID != filter.HospitalID || !filter.Visibility.Allows(a.DoctorID) {
			continue
		}
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				match = match || a.Status == s
			}
			if !match {
				continue
			}
		}
		all = append(all, *r.withRelations(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime < all[j].StartTime })

	total := int64(len(all))
	if filter.Offset >= len(all) {
		return []entity.Appointment{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], total, nil
}

func (r *mockAppointmentRepo) Cancel(db *gorm.DB, id uuid.UUID, reason string, at time.Time) (int64, error) {
	r.s.writes++
	a, ok := r.s.appointments[id]
	if !ok || !a.IsOpen() {
		return 0, nil
	}
	a.Cancel(reason, at)
	r.s.appointments[id] = a
	return 1, nil
}

func (r *mockAppointmentRepo) UpdateStatusIf(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus) (int64, error) {
	r.s.writes++
	a, ok := r.s.appointments[id]
	if !ok {
		return 0, nil
	}
	for _, s := range from {
		if a.Status == s {
			a.Status = to
			r.s.appointments[id] = a
			return 1, nil
		}
	}
	return 0, nil
}

func (r *mockAppointmentRepo) UpdateDetails(db *gorm.DB, id uuid.UUID, reasonForVisit, notes string) error {
	r.s.writes++
	a := r.s.appointments[id]
	a.ReasonForVisit, a.Notes = reasonForVisit, notes
	r.s.appointments[id] = a
	return nil
}

// ---------- queue ----------

type mockQueueRepo struct{ s *memStore }

func (r *mockQueueRepo) withRelations(e entity.QueueEntry) entity.QueueEntry {
	if e.PatientID != nil {
		if p, ok := r.s.patients[*e.PatientID]; ok {
			e.Patient = &p
		}
	}
	if e.AppointmentID != nil {
		if a, ok := r.s.appointments[*e.AppointmentID]; ok {
			e.Appointment = &a
		}
	}
	return e
}

func (r *mockQueueRepo) Create(db *gorm.DB, entry *entity.QueueEntry) error {
	r.s.writes++
	for _, e := range r.s.queue {
		if e.AppointmentID != nil && entry.AppointmentID != nil && *e.AppointmentID == *entry.AppointmentID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_queue_entries_appointment"}
		}
	}
	entry.ID = uuid.New()
	stored := *entry
	stored.Patient, stored.Appointment = nil, nil
	r.s.queue[entry.ID] = stored
	return nil
}

func (r *mockQueueRepo) FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.QueueEntry, error) {
	e, ok := r.s.queue[id]
	if !ok || e.HospitalID != hospitalID {
		return nil, nil
	}
	e = r.withRelations(e)
	return &e, nil
}

func (r *mockQueueRepo) FindByPublicToken(db *gorm.DB, token string) (*entity.QueueEntry, error) {
	for _, e := range r.s.queue {
		if e.PublicToken == token {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *mockQueueRepo) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.QueueEntry, error) {
	for _, e := range r.s.queue {
		if e.AppointmentID != nil && *e.AppointmentID == appointmentID {
			if r.s.afterQueueLookup != nil {
				r.s.afterQueueLookup()
			}
			return &e, nil
		}
	}
	return nil, nil
}

func (r *mockQueueRepo) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.QueueEntry, error) {
	var result []entity.QueueEntry
	for _, e := range r.s.queue {
		if e.DoctorID == doctorID && e.Date.Equal(date) {
			result = append(result, r.withRelations(e))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].QueueNumber < result[j].QueueNumber })
	return result, nil
}

func (r *mockQueueRepo) FindLiveByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) ([]entity.QueueEntry, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range appointmentIDs {
		wanted[id] = true
	}
	var result []entity.QueueEntry
	for _, e := range r.s.queue {
		if e.AppointmentID != nil && wanted[*e.AppointmentID] && e.IsActive() {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *mockQueueRepo) LockDoctorDay(db *gorm.DB, doctorID uuid.UUID, date time.Time) error {
	return nil
}

func (r *mockQueueRepo) NextQueueNumber(db *gorm.DB, doctorID uuid.UUID, date time.Time) (int, error) {
	max := 0
	for _, e := range r.s.queue {
		if e.DoctorID == doctorID && e.Date.Equal(date) && e.QueueNumber > max {
			max = e.QueueNumber
		}
	}
	return max + 1, nil
}

func (r *mockQueueRepo) Finish(db *gorm.DB, id uuid.UUID, status entity.QueueStatus, at time.Time) (int64, error) {
	r.s.writes++
	entry, ok := r.s.queue[id]
	if !ok || !entry.IsActive() {
		return 0, nil
	}
	entry.Status = status
	entry.CompletedAt = &at
	r.s.queue[id] = entry
	return 1, nil
}

func (r *mockQueueRepo) Update(db *gorm.DB, entry *entity.QueueEntry) error {
	r.s.writes++
	if _, ok := r.s.queue[entry.ID]; !ok {
		return errors.New("queue entry does not exist")
	}
	stored := *entry
	stored.Patient, stored.Appointment = nil, nil
	r.s.queue[entry.ID] = stored
	return nil
}

func (r *mockQueueRepo) UpdateQueueNumbers(db *gorm.DB, numbers map[uuid.UUID]int) error {
	r.s.writes++
	for id, n := range numbers {
		e := r.s.queue[id]
		e.QueueNumber = n
		r.s.queue[id] = e
	}
	seen := map[string]bool{}
	for _, e := range r.s.queue {
		key := fmt.Sprintf("%s/%d", checkinKey(e.DoctorID, e.Date), e.QueueNumber)
		if seen[key] {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_queue_entries_number"}
		}
		seen[key] = true
	}
	return nil
}

func (r *mockQueueRepo) Delete(db *gorm.DB, id uuid.UUID) error {
	r.s.writes++
	delete(r.s.queue, id)
	return nil
}

// ---------- doctor check-in, audit ----------

type mockCheckinRepo struct{ s *memStore }

func checkinKey(doctorID uuid.UUID, date time.Time) string {
	return doctorID.String() + "/" + date.Format(entity.DateLayout)
}

func (r *mockCheckinRepo) Upsert(db *gorm.DB, checkin *entity.DoctorDailyCheckin) error {
	r.s.writes++
	r.s.checkins[checkinKey(checkin.DoctorID, checkin.Date)] = *checkin
	return nil
}

func (r *mockCheckinRepo) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.DoctorDailyCheckin, error) {
	c, ok := r.s.checkins[checkinKey(doctorID, date)]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type mockAuditLogRepo struct{ s *memStore }

func (r *mockAuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	log.ID = int64(len(r.s.audits) + 1)
	r.s.audits = append(r.s.audits, *log)
	return nil
}

func (r *mockAuditLogRepo) FindAll(db *gorm.DB, hospitalID uuid.UUID, limit, offset int) ([]entity.AuditLog, int64, error) {
	var all []entity.AuditLog
	for i := len(r.s.audits) - 1; i >= 0; i-- {
		if r.s.audits[i].HospitalID == hospitalID {
			all = append(all, r.s.audits[i])
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []entity.AuditLog{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *mockAuditLogRepo) FindByID(db *gorm.DB, hospitalID uuid.UUID, id int64) (*entity.AuditLog, error) {
	for _, l := range r.s.audits {
		if l.ID == id && l.HospitalID == hospitalID {
			return &l, nil
		}
	}
	return nil, nil
}

var (
	_ repository.Transactor               = (*mockTransactor)(nil)
	_ repository.DoctorProfileRepository  = (*mockDoctorRepo)(nil)
	_ repository.PatientProfileRepository = (*mockPatientRepo)(nil)
	_ repository.WeeklyScheduleRepository = (*mockScheduleRepo)(nil)
	_ repository.TimeOffRepository        = (*mockTimeOffRepo)(nil)
	_ repository.SlotRepository           = (*mockSlotRepo)(nil)
	_ repository.AppointmentRepository    = (*mockAppointmentRepo)(nil)
	_ repository.QueueEntryRepository     = (*mockQueueRepo)(nil)
	_ repository.DoctorCheckinRepository  = (*mockCheckinRepo)(nil)
	_ repository.AuditLogRepository       = (*mockAuditLogRepo)(nil)
)
