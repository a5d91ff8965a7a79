package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/scheduling"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type QueueUsecase interface {
	AddWalkIn(ctx context.Context, req *dto.AddWalkInRequest) (*dto.QueueEntryResponse, error)
	CheckIn(ctx context.Context, appointmentID uuid.UUID) (*dto.QueueEntryResponse, error)
	MarkNoShow(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, entryID uuid.UUID, req *dto.UpdateQueueStatusRequest) (*dto.QueueEntryResponse, error)
	UpdatePriority(ctx context.Context, entryID uuid.UUID, req *dto.UpdateQueuePriorityRequest) (*dto.QueueEntryResponse, error)
	MoveToTop(ctx context.Context, entryID uuid.UUID) (*dto.QueueEntryResponse, error)
	Remove(ctx context.Context, entryID uuid.UUID) error
	ListQueue(ctx context.Context, doctorID uuid.UUID, date string) (*dto.QueueListResponse, error)
}

type queueUsecase struct {
	tx              repository.Transactor
	log             *logrus.Logger
	minSamples      int
	calendar        service.Calendar
	auditService    service.AuditService
	doctorRepo      repository.DoctorProfileRepository
	patientRepo     repository.PatientProfileRepository
	appointmentRepo repository.AppointmentRepository
	queueRepo       repository.QueueEntryRepository
	checkinRepo     repository.DoctorCheckinRepository
	lifecycle       *bookingLifecycle
}

func NewQueueUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	minSamples int,
	calendar service.Calendar,
	auditService service.AuditService,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	slotRepo repository.SlotRepository,
	appointmentRepo repository.AppointmentRepository,
	queueRepo repository.QueueEntryRepository,
	checkinRepo repository.DoctorCheckinRepository,
) QueueUsecase {
	return &queueUsecase{
		tx:              tx,
		log:             log,
		minSamples:      minSamples,
		calendar:        calendar,
		auditService:    auditService,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		queueRepo:       queueRepo,
		checkinRepo:     checkinRepo,
		lifecycle: &bookingLifecycle{
			log:             log,
			slotRepo:        slotRepo,
			appointmentRepo: appointmentRepo,
			queueRepo:       queueRepo,
		},
	}
}

func (u *queueUsecase) AddWalkIn(ctx context.Context, req *dto.AddWalkInRequest) (*dto.QueueEntryResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := u.tx.Conn(ctx)
	doctor, err := loadDoctor(db, u.doctorRepo, identity, req.DoctorID)
	if err != nil {
		return nil, err
	}

	if req.PatientID != nil {
		patient, err := u.patientRepo.FindByID(db, identity.HospitalID, *req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", *req.PatientID, err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
	}

	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}

	priority := entity.QueuePriorityNormal
	if req.Priority != "" {
		priority = entity.QueuePriority(req.Priority)
	}

	entry := &entity.QueueEntry{
		HospitalID:  identity.HospitalID,
		DoctorID:    doctor.ID,
		Date:        today.Date,
		EntryType:   entity.QueueEntryTypeWalkIn,
		PatientID:   req.PatientID,
		WalkInName:  req.WalkInName,
		Status:      entity.QueueStatusQueued,
		Priority:    priority,
		CheckedInAt: today.Now,
	}
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		return u.enqueue(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Walk-in queued: id=%s, doctor=%s, number=%d", entry.ID, doctor.ID, entry.QueueNumber)
	return u.reload(ctx, identity.HospitalID, entry), nil
}

// CheckIn puts a patient with an appointment today into the doctor's queue
// and confirms the appointment.
func (u *queueUsecase) CheckIn(ctx context.Context, appointmentID uuid.UUID) (*dto.QueueEntryResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}

	var entry *entity.QueueEntry
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err := u.lockAppointment(tx, identity, appointmentID)
		if err != nil {
			return err
		}
		if appointment.IsCancelled() {
			return ErrAppointmentAlreadyCancelled
		}
		if !appointment.IsOpen() {
			return ErrAppointmentNotOpen
		}
		if !appointment.Date.Equal(today.Date) {
			return ErrAppointmentNotToday
		}

		existing, err := u.queueRepo.FindByAppointmentID(tx, appointment.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAppointmentCheckedIn
		}

		patientID := appointment.PatientID
		entry = &entity.QueueEntry{
			HospitalID:    appointment.HospitalID,
			DoctorID:      appointment.DoctorID,
			Date:          today.Date,
			EntryType:     entity.QueueEntryTypeScheduled,
			AppointmentID: &appointment.ID,
			PatientID:     &patientID,
			Status:        entity.QueueStatusQueued,
			Priority:      entity.QueuePriorityNormal,
			CheckedInAt:   today.Now,
		}
		if err := u.enqueue(tx, entry); err != nil {
			return err
		}

		if appointment.Status == entity.AppointmentStatusScheduled {
			_, err := u.appointmentRepo.UpdateStatusIf(tx, appointment.ID,
				[]entity.AppointmentStatus{entity.AppointmentStatusScheduled}, entity.AppointmentStatusConfirmed)
			if err != nil {
				u.log.Warnf("Failed to confirm appointment %s: %+v", appointment.ID, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAppointmentCheckedIn
		}
		return nil, err
	}

	u.log.Infof("Appointment checked in: appointment=%s, entry=%s, number=%d", appointmentID, entry.ID, entry.QueueNumber)
	return u.reload(ctx, identity.HospitalID, entry), nil
}

// enqueue numbers and stores a new entry under the doctor/day lock
func (u *queueUsecase) enqueue(tx *gorm.DB, entry *entity.QueueEntry) error {
	if err := u.queueRepo.LockDoctorDay(tx, entry.DoctorID, entry.Date); err != nil {
		u.log.Warnf("Failed to lock queue of doctor %s: %+v", entry.DoctorID, err)
		return err
	}
	number, err := u.queueRepo.NextQueueNumber(tx, entry.DoctorID, entry.Date)
	if err != nil {
		u.log.Warnf("Failed to get next queue number for doctor %s: %+v", entry.DoctorID, err)
		return err
	}
	token, err := service.NewPublicToken()
	if err != nil {
		return err
	}

	entry.QueueNumber = number
	entry.PublicToken = token
	if err := u.queueRepo.Create(tx, entry); err != nil {
		u.log.Warnf("Failed to create queue entry for doctor %s: %+v", entry.DoctorID, err)
		return err
	}
	return nil
}

func (u *queueUsecase) MarkNoShow(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err := u.lockAppointment(tx, identity, appointmentID)
		if err != nil {
			return err
		}
		old := appointment.Status
		if err := u.lifecycle.markNoShow(tx, appointment, today.Date, today.Now); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, actorOf(identity), entity.AuditActionAppointmentNoShow, "appointment", appointment.ID.String(),
			map[string]interface{}{"status": old},
			map[string]interface{}{"status": appointment.Status},
		)
	})
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.tx.Conn(ctx), identity.HospitalID, appointmentID)
	if err != nil || appointment == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
		return &dto.AppointmentResponse{ID: appointmentID, Status: string(entity.AppointmentStatusNoShow)}, nil
	}

	u.log.Infof("Appointment %s marked no-show", appointmentID)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *queueUsecase) UpdateStatus(ctx context.Context, entryID uuid.UUID, req *dto.UpdateQueueStatusRequest) (*dto.QueueEntryResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}

	to := entity.QueueStatus(req.Status)
	var entry *entity.QueueEntry
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		entry, err = u.lockEntry(tx, identity, entryID)
		if err != nil {
			return err
		}
		if entry.IsTerminal() {
			return ErrQueueEntryFinished
		}
		if !scheduling.CanTransition(entry.Status, to) {
			return ErrInvalidStatusChange
		}

		applyQueueStatus(entry, to, today.Now)
		if err := u.queueRepo.Update(tx, entry); err != nil {
			u.log.Warnf("Failed to update queue entry %s: %+v", entry.ID, err)
			return err
		}

		if entry.AppointmentID == nil {
			return nil
		}
		var appointmentStatus entity.AppointmentStatus
		switch to {
		case entity.QueueStatusCompleted:
			appointmentStatus = entity.AppointmentStatusCompleted
		case entity.QueueStatusNoShow:
			appointmentStatus = entity.AppointmentStatusNoShow
		default:
			return nil
		}
		if _, err := u.appointmentRepo.UpdateStatusIf(tx, *entry.AppointmentID, openStatuses, appointmentStatus); err != nil {
			u.log.Warnf("Failed to update appointment %s from queue: %+v", *entry.AppointmentID, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Queue entry %s is now %s", entry.ID, entry.Status)
	return converter.QueueEntryToResponse(entry), nil
}

// applyQueueStatus moves the entry and stamps the matching timestamps
func applyQueueStatus(entry *entity.QueueEntry, to entity.QueueStatus, now time.Time) {
	switch to {
	case entity.QueueStatusWaiting:
		entry.CalledAt = &now
	case entity.QueueStatusWithDoctor:
		if entry.CalledAt == nil {
			entry.CalledAt = &now
		}
		entry.WithDoctorAt = &now
	case entity.QueueStatusCompleted:
		entry.CompletedAt = &now
		if entry.WithDoctorAt != nil {
			wait := minutesBetween(entry.CheckedInAt, *entry.WithDoctorAt)
			consultation := minutesBetween(*entry.WithDoctorAt, now)
			entry.WaitTimeMinutes = &wait
			entry.ConsultationTimeMinutes = &consultation
		}
	case entity.QueueStatusNoShow, entity.QueueStatusLeft:
		entry.CompletedAt = &now
	}
	entry.Status = to
}

func minutesBetween(from, to time.Time) int {
	m := int(math.Round(to.Sub(from).Minutes()))
	if m < 0 {
		return 0
	}
	return m
}

func (u *queueUsecase) UpdatePriority(ctx context.Context, entryID uuid.UUID, req *dto.UpdateQueuePriorityRequest) (*dto.QueueEntryResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	var entry *entity.QueueEntry
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		entry, err = u.lockEntry(tx, identity, entryID)
		if err != nil {
			return err
		}
		if entry.IsTerminal() {
			return ErrQueueEntryFinished
		}
		entry.Priority = entity.QueuePriority(req.Priority)
		return u.queueRepo.Update(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	return converter.QueueEntryToResponse(entry), nil
}

// MoveToTop promotes a QUEUED entry ahead of every other QUEUED entry by
// renumbering, and tags it URGENT.
func (u *queueUsecase) MoveToTop(ctx context.Context, entryID uuid.UUID) (*dto.QueueEntryResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	var entry *entity.QueueEntry
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		entry, err = u.lockEntry(tx, identity, entryID)
		if err != nil {
			return err
		}
		if entry.Status != entity.QueueStatusQueued {
			return ErrQueueEntryNotQueued
		}

		entries, err := u.queueRepo.FindByDoctorAndDate(tx, entry.DoctorID, entry.Date)
		if err != nil {
			return err
		}
		numbers, err := scheduling.PromoteToTop(entries, entry.ID)
		if err != nil {
			if errors.Is(err, scheduling.ErrEntryNotQueued) {
				return ErrQueueEntryNotQueued
			}
			return err
		}
		if err := u.queueRepo.UpdateQueueNumbers(tx, numbers); err != nil {
			u.log.Warnf("Failed to renumber queue of doctor %s: %+v", entry.DoctorID, err)
			return err
		}

		old := entry.QueueNumber
		if n, ok := numbers[entry.ID]; ok {
			entry.QueueNumber = n
		}
		entry.Priority = entity.QueuePriorityUrgent
		if err := u.queueRepo.Update(tx, entry); err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actorOf(identity), entity.AuditActionQueueMoveToTop, "queue_entry", entry.ID.String(),
			map[string]interface{}{"queue_number": old},
			map[string]interface{}{"queue_number": entry.QueueNumber, "renumbered": len(numbers)},
		)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Queue entry %s moved to top as number %d", entry.ID, entry.QueueNumber)
	return converter.QueueEntryToResponse(entry), nil
}

func (u *queueUsecase) Remove(ctx context.Context, entryID uuid.UUID) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		entry, err := u.lockEntry(tx, identity, entryID)
		if err != nil {
			return err
		}
		if entry.Status != entity.QueueStatusQueued && entry.Status != entity.QueueStatusWaiting {
			return ErrQueueEntryNotRemovable
		}
		if err := u.queueRepo.Delete(tx, entry.ID); err != nil {
			u.log.Warnf("Failed to delete queue entry %s: %+v", entry.ID, err)
			return err
		}

		u.log.Infof("Queue entry %s removed", entry.ID)
		return u.auditService.LogDelete(ctx, tx, actorOf(identity), entity.AuditActionQueueRemove, "queue_entry", entry.ID.String(),
			converter.QueueEntryToResponse(entry))
	})
}

func (u *queueUsecase) ListQueue(ctx context.Context, doctorID uuid.UUID, date string) (*dto.QueueListResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := u.tx.Conn(ctx)
	doctor, err := loadDoctor(db, u.doctorRepo, identity, doctorID)
	if err != nil {
		return nil, err
	}

	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}
	day := today.Date
	if date != "" {
		if day, err = scheduling.ParseDate(date); err != nil {
			return nil, invalidInput(err)
		}
	}

	entries, err := u.queueRepo.FindByDoctorAndDate(db, doctor.ID, day)
	if err != nil {
		u.log.Warnf("Failed to find queue of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}
	checkin, err := u.checkinRepo.FindByDoctorAndDate(db, doctor.ID, day)
	if err != nil {
		u.log.Warnf("Failed to find check-in of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	snapshot := newQueueSnapshot(entries, doctor.SlotDurationMinutes, u.minSamples, today.Now)
	response := &dto.QueueListResponse{
		DoctorID:     doctor.ID,
		Date:         day.Format(entity.DateLayout),
		DoctorStatus: string(entity.CheckinStatusNotCheckedIn),
		Entries:      make([]dto.QueueEntryResponse, len(entries)),
	}
	if checkin != nil {
		response.DoctorStatus = string(checkin.Status)
	}
	if avg, ok := snapshot.AverageConsultation(); ok {
		response.AverageConsultationMinutes = &avg
	}

	for i := range entries {
		resp := converter.QueueEntryToResponse(&entries[i])
		if position, ok := snapshot.Position(entries[i].ID); ok {
			eta, _ := snapshot.EstimateWait(entries[i].ID)
			resp.Position = &position
			resp.EstimatedWaitMinutes = &eta
			response.Waiting++
		}
		response.Entries[i] = *resp
	}

	return response, nil
}

// newQueueSnapshot prepares the estimator input for one doctor's day
func newQueueSnapshot(entries []entity.QueueEntry, defaultMinutes, minSamples int, now time.Time) scheduling.QueueSnapshot {
	durations := make(map[uuid.UUID]int)
	for _, e := range entries {
		if e.AppointmentID != nil && e.Appointment != nil {
			durations[*e.AppointmentID] = e.Appointment.DurationMinutes()
		}
	}
	return scheduling.QueueSnapshot{
		Entries:                entries,
		AppointmentMinutes:     durations,
		DefaultDurationMinutes: defaultMinutes,
		MinSamples:             minSamples,
		Now:                    now,
	}
}

// lockEntry loads the entry, takes its doctor/day lock and reads it again so
// the returned state is current.
func (u *queueUsecase) lockEntry(tx *gorm.DB, identity middleware.Identity, id uuid.UUID) (*entity.QueueEntry, error) {
	entry, err := u.queueRepo.FindByID(tx, identity.HospitalID, id)
	if err != nil {
		u.log.Warnf("Failed to find queue entry %s: %+v", id, err)
		return nil, err
	}
	if entry == nil {
		return nil, ErrQueueEntryNotFound
	}
	if !identity.Visibility.Allows(entry.DoctorID) {
		return nil, ErrOutOfScope
	}

	if err := u.queueRepo.LockDoctorDay(tx, entry.DoctorID, entry.Date); err != nil {
		return nil, err
	}
	entry, err = u.queueRepo.FindByID(tx, identity.HospitalID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrQueueEntryNotFound
	}
	return entry, nil
}

func (u *queueUsecase) lockAppointment(tx *gorm.DB, identity middleware.Identity, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to lock appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil || appointment.HospitalID != identity.HospitalID {
		return nil, ErrAppointmentNotFound
	}
	if !identity.Visibility.Allows(appointment.DoctorID) {
		return nil, ErrOutOfScope
	}
	return appointment, nil
}

func (u *queueUsecase) reload(ctx context.Context, hospitalID uuid.UUID, entry *entity.QueueEntry) *dto.QueueEntryResponse {
	full, err := u.queueRepo.FindByID(u.tx.Conn(ctx), hospitalID, entry.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload queue entry %s: %+v", entry.ID, err)
		return converter.QueueEntryToResponse(entry)
	}
	return converter.QueueEntryToResponse(full)
}
