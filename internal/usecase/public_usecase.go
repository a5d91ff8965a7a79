package usecase

import (
	"context"
	"errors"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/scheduling"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PublicUsecase serves patient links. Every call is scoped to the single
// record its token points at; there is no caller identity.
type PublicUsecase interface {
	GetAppointment(ctx context.Context, token string, date string) (*dto.PublicAppointmentResponse, error)
	CancelAppointment(ctx context.Context, token string) (*dto.PublicAppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, token string, req *dto.PublicRescheduleRequest) (*dto.PublicRescheduleResponse, error)
	GetQueueEntry(ctx context.Context, token string) (*dto.PublicQueueResponse, error)
	CancelQueueEntry(ctx context.Context, token string) (*dto.PublicQueueResponse, error)
}

type publicUsecase struct {
	tx              repository.Transactor
	log             *logrus.Logger
	minSamples      int
	calendar        service.Calendar
	auditService    service.AuditService
	doctorRepo      repository.DoctorProfileRepository
	slotRepo        repository.SlotRepository
	appointmentRepo repository.AppointmentRepository
	queueRepo       repository.QueueEntryRepository
	checkinRepo     repository.DoctorCheckinRepository
	lifecycle       *bookingLifecycle
}

func NewPublicUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	minSamples int,
	calendar service.Calendar,
	auditService service.AuditService,
	doctorRepo repository.DoctorProfileRepository,
	slotRepo repository.SlotRepository,
	appointmentRepo repository.AppointmentRepository,
	queueRepo repository.QueueEntryRepository,
	checkinRepo repository.DoctorCheckinRepository,
) PublicUsecase {
	return &publicUsecase{
		tx:              tx,
		log:             log,
		minSamples:      minSamples,
		calendar:        calendar,
		auditService:    auditService,
		doctorRepo:      doctorRepo,
		slotRepo:        slotRepo,
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

// GetAppointment returns the appointment status. When date is set and the
// appointment can still be moved, the doctor's free slots of that date are
// listed as reschedule options.
func (u *publicUsecase) GetAppointment(ctx context.Context, token string, date string) (*dto.PublicAppointmentResponse, error) {
	db := u.tx.Conn(ctx)
	appointment, err := u.appointmentRepo.FindByPublicToken(db, token)
	if err != nil {
		u.log.Warnf("Failed to find appointment by link: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrLinkNotFound
	}

	response := converter.AppointmentToPublicResponse(appointment)
	if date == "" || !appointment.IsOpen() {
		return response, nil
	}

	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, invalidInput(err)
	}
	today, err := u.calendar.Today(ctx, appointment.HospitalID)
	if err != nil {
		return nil, err
	}
	response.AvailableSlots = []dto.PublicSlotResponse{}
	if day.Before(today.Date) {
		return response, nil
	}

	slots, err := u.slotRepo.FindByDoctorAndDate(db, appointment.DoctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find slots of doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}
	ids := make([]uuid.UUID, len(slots))
	for i := range slots {
		ids[i] = slots[i].ID
	}
	booked, err := u.appointmentRepo.FindActiveBySlotIDs(db, ids)
	if err != nil {
		return nil, err
	}
	u.lifecycle.healSlots(db, slots, heldSlots(booked))

	for i := range slots {
		start, err := scheduling.ParseClock(slots[i].StartTime)
		if err != nil || today.Started(slots[i].Date, start) {
			continue
		}
		if slots[i].IsAvailable() {
			response.AvailableSlots = append(response.AvailableSlots, converter.SlotToPublicResponse(&slots[i]))
		}
	}
	return response, nil
}

func (u *publicUsecase) CancelAppointment(ctx context.Context, token string) (*dto.PublicAppointmentResponse, error) {
	var appointment *entity.Appointment
	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		appointment, err = u.lockByToken(tx, token)
		if err != nil {
			return err
		}
		today, err := u.calendar.Today(ctx, appointment.HospitalID)
		if err != nil {
			return err
		}

		old := appointment.Status
		if err := u.lifecycle.cancel(tx, appointment, entity.CancelReasonByPatient, today.Now); err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, publicActor(appointment.HospitalID), entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(),
			map[string]interface{}{"status": old},
			map[string]interface{}{"status": appointment.Status, "reason": entity.CancelReasonByPatient},
		)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment %s cancelled through patient link", appointment.ID)
	return converter.AppointmentToPublicResponse(appointment), nil
}

// RescheduleAppointment cancels the current appointment and books the chosen
// slot in one transaction, so a failed booking leaves the original in place.
func (u *publicUsecase) RescheduleAppointment(ctx context.Context, token string, req *dto.PublicRescheduleRequest) (*dto.PublicRescheduleResponse, error) {
	var replacement *entity.Appointment
	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		current, err := u.lockByToken(tx, token)
		if err != nil {
			return err
		}
		if current.IsCancelled() {
			return ErrAppointmentAlreadyCancelled
		}
		if !current.IsOpen() {
			return ErrAppointmentNotOpen
		}

		target, err := u.slotRepo.FindByID(tx, current.HospitalID, req.SlotID)
		if err != nil {
			return err
		}
		if target == nil {
			return ErrSlotNotFound
		}
		if target.DoctorID != current.DoctorID {
			return ErrRescheduleOtherDoctor
		}
		if current.OnSlot(target.ID) {
			return ErrRescheduleSameSlot
		}

		today, err := u.calendar.Today(ctx, current.HospitalID)
		if err != nil {
			return err
		}

		if err := u.lifecycle.cancel(tx, current, entity.CancelReasonRescheduled, today.Now); err != nil {
			return err
		}
		replacement, err = u.lifecycle.book(tx, bookingRequest{
			HospitalID:     current.HospitalID,
			SlotID:         target.ID,
			PatientID:      current.PatientID,
			ReasonForVisit: current.ReasonForVisit,
			Notes:          current.Notes,
			Today:          today,
		})
		if err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, publicActor(current.HospitalID), entity.AuditActionAppointmentReschedule, "appointment", current.ID.String(),
			map[string]interface{}{"appointment_id": current.ID, "slot_id": current.SlotID},
			map[string]interface{}{"appointment_id": replacement.ID, "slot_id": replacement.SlotID},
		)
	})
	if err != nil {
		if errors.Is(err, ErrSlotAlreadyBooked) {
			u.lifecycle.healSlot(u.tx.Conn(ctx), req.SlotID)
		}
		return nil, err
	}

	u.log.Infof("Appointment rescheduled through patient link: new=%s, slot=%s", replacement.ID, replacement.SlotID)

	full, err := u.appointmentRepo.FindByPublicToken(u.tx.Conn(ctx), replacement.PublicToken)
	if err != nil || full == nil {
		full = replacement
	}
	return &dto.PublicRescheduleResponse{
		Appointment: *converter.AppointmentToPublicResponse(full),
		PublicToken: replacement.PublicToken,
	}, nil
}

func (u *publicUsecase) lockByToken(tx *gorm.DB, token string) (*entity.Appointment, error) {
	found, err := u.appointmentRepo.FindByPublicToken(tx, token)
	if err != nil {
		u.log.Warnf("Failed to find appointment by link: %+v", err)
		return nil, err
	}
	if found == nil {
		return nil, ErrLinkNotFound
	}

	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, found.ID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrLinkNotFound
	}
	appointment.Doctor = found.Doctor
	return appointment, nil
}

func (u *publicUsecase) GetQueueEntry(ctx context.Context, token string) (*dto.PublicQueueResponse, error) {
	db := u.tx.Conn(ctx)
	entry, err := u.queueRepo.FindByPublicToken(db, token)
	if err != nil {
		u.log.Warnf("Failed to find queue entry by link: %+v", err)
		return nil, err
	}
	if entry == nil {
		return nil, ErrLinkNotFound
	}

	today, err := u.calendar.Today(ctx, entry.HospitalID)
	if err != nil {
		return nil, err
	}
	return u.queueStatus(db, entry, today)
}

// CancelQueueEntry lets the patient leave the queue. Links of earlier service
// days are expired.
func (u *publicUsecase) CancelQueueEntry(ctx context.Context, token string) (*dto.PublicQueueResponse, error) {
	var entry *entity.QueueEntry
	var today service.BusinessDay
	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		found, err := u.queueRepo.FindByPublicToken(tx, token)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrLinkNotFound
		}

		today, err = u.calendar.Today(ctx, found.HospitalID)
		if err != nil {
			return err
		}
		if !found.Date.Equal(today.Date) {
			return ErrPublicLinkExpired
		}

		if err := u.queueRepo.LockDoctorDay(tx, found.DoctorID, found.Date); err != nil {
			return err
		}
		entry, err = u.queueRepo.FindByPublicToken(tx, token)
		if err != nil {
			return err
		}
		if entry == nil {
			return ErrLinkNotFound
		}
		if entry.Status != entity.QueueStatusQueued && entry.Status != entity.QueueStatusWaiting {
			return ErrQueueNotCancellable
		}

		applyQueueStatus(entry, entity.QueueStatusLeft, today.Now)
		if err := u.queueRepo.Update(tx, entry); err != nil {
			u.log.Warnf("Failed to update queue entry %s: %+v", entry.ID, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Queue entry %s left through patient link", entry.ID)
	return u.queueStatus(u.tx.Conn(ctx), entry, today)
}

func (u *publicUsecase) queueStatus(db *gorm.DB, entry *entity.QueueEntry, today service.BusinessDay) (*dto.PublicQueueResponse, error) {
	isToday := entry.Date.Equal(today.Date)
	response := &dto.PublicQueueResponse{
		QueueNumber: entry.QueueNumber,
		Status:      string(entry.Status),
		Priority:    string(entry.Priority),
		Date:        entry.Date.Format(entity.DateLayout),
		CanCancel:   isToday && (entry.Status == entity.QueueStatusQueued || entry.Status == entity.QueueStatusWaiting),
	}

	checkin, err := u.checkinRepo.FindByDoctorAndDate(db, entry.DoctorID, entry.Date)
	if err != nil {
		u.log.Warnf("Failed to find check-in of doctor %s: %+v", entry.DoctorID, err)
		return nil, err
	}
	response.DoctorCheckedIn = checkin != nil && checkin.IsPresent()

	if !isToday || !response.CanCancel {
		return response, nil
	}

	doctor, err := u.doctorRepo.FindByID(db, entry.HospitalID, entry.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	entries, err := u.queueRepo.FindByDoctorAndDate(db, entry.DoctorID, entry.Date)
	if err != nil {
		u.log.Warnf("Failed to find queue of doctor %s: %+v", entry.DoctorID, err)
		return nil, err
	}

	snapshot := newQueueSnapshot(entries, doctor.SlotDurationMinutes, u.minSamples, today.Now)
	if position, ok := snapshot.Position(entry.ID); ok {
		response.Position = &position
	}
	if eta, ok := snapshot.EstimateWait(entry.ID); ok {
		response.EstimatedWaitMinutes = &eta
	}
	return response, nil
}
