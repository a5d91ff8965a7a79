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

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	tx              repository.Transactor
	log             *logrus.Logger
	calendar        service.Calendar
	auditService    service.AuditService
	patientRepo     repository.PatientProfileRepository
	slotRepo        repository.SlotRepository
	appointmentRepo repository.AppointmentRepository
	lifecycle       *bookingLifecycle
}

func NewAppointmentUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	calendar service.Calendar,
	auditService service.AuditService,
	patientRepo repository.PatientProfileRepository,
	slotRepo repository.SlotRepository,
	appointmentRepo repository.AppointmentRepository,
	queueRepo repository.QueueEntryRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		tx:              tx,
		log:             log,
		calendar:        calendar,
		auditService:    auditService,
		patientRepo:     patientRepo,
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		lifecycle: &bookingLifecycle{
			log:             log,
			slotRepo:        slotRepo,
			appointmentRepo: appointmentRepo,
			queueRepo:       queueRepo,
		},
	}
}

// BookAppointment books an AVAILABLE slot for a patient.
//
// Flow:
// 1. Validate slot is visible to the caller and the patient exists
// 2. Lock the slot row and re-check status plus active appointments
// 3. Insert the appointment and mark the slot BOOKED in the same transaction
// 4. If another booking won the race, repair the slot status and report a conflict
func (u *appointmentUsecase) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := u.tx.Conn(ctx)
	slot, err := u.slotRepo.FindByID(db, identity.HospitalID, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %s: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if !identity.Visibility.Allows(slot.DoctorID) {
		return nil, ErrOutOfScope
	}

	patient, err := u.patientRepo.FindByID(db, identity.HospitalID, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}

	var appointment *entity.Appointment
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err = u.lifecycle.book(tx, bookingRequest{
			HospitalID:     identity.HospitalID,
			SlotID:         slot.ID,
			PatientID:      patient.ID,
			ReasonForVisit: req.ReasonForVisit,
			Notes:          req.Notes,
			BookedBy:       &identity.UserID,
			Today:          today,
		})
		if err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, actorOf(identity), entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(),
			converter.AppointmentToResponse(appointment))
	})
	if err != nil {
		if errors.Is(err, ErrSlotAlreadyBooked) {
			u.lifecycle.healSlot(db, slot.ID)
		}
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, slot=%s, patient=%s", appointment.ID, slot.ID, patient.ID)
	return u.reload(ctx, identity.HospitalID, appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.tx.Conn(ctx), identity.HospitalID, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !identity.Visibility.Allows(appointment.DoctorID) {
		return nil, ErrOutOfScope
	}

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateAppointment edits notes and moves the status forward. A CANCELLED
// status is handled as a cancellation.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.Status != nil && entity.AppointmentStatus(*req.Status) == entity.AppointmentStatusCancelled {
		return u.CancelAppointment(ctx, id, &dto.CancelAppointmentRequest{Reason: req.CancellationReason})
	}

	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}

	var appointment *entity.Appointment
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err = u.lockAppointment(tx, identity.HospitalID, identity.Visibility, id)
		if err != nil {
			return err
		}
		before := converter.AppointmentToResponse(appointment)

		if req.ReasonForVisit != nil || req.Notes != nil {
			if req.ReasonForVisit != nil {
				appointment.ReasonForVisit = *req.ReasonForVisit
			}
			if req.Notes != nil {
				appointment.Notes = *req.Notes
			}
			if err := u.appointmentRepo.UpdateDetails(tx, appointment.ID, appointment.ReasonForVisit, appointment.Notes); err != nil {
				u.log.Warnf("Failed to update appointment %s: %+v", appointment.ID, err)
				return err
			}
		}

		if req.Status != nil {
			if err := u.changeStatus(tx, appointment, entity.AppointmentStatus(*req.Status), today); err != nil {
				return err
			}
		}

		return u.auditService.LogUpdate(ctx, tx, actorOf(identity), entity.AuditActionAppointmentUpdate, "appointment", appointment.ID.String(),
			before, converter.AppointmentToResponse(appointment))
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment updated: id=%s, status=%s", appointment.ID, appointment.Status)
	return u.reload(ctx, identity.HospitalID, appointment), nil
}

func (u *appointmentUsecase) changeStatus(tx *gorm.DB, appointment *entity.Appointment, to entity.AppointmentStatus, today service.BusinessDay) error {
	if appointment.Status == to {
		return nil
	}

	switch to {
	case entity.AppointmentStatusNoShow:
		return u.lifecycle.markNoShow(tx, appointment, today.Date, today.Now)
	case entity.AppointmentStatusConfirmed:
		if appointment.Status != entity.AppointmentStatusScheduled {
			return ErrAppointmentNotOpen
		}
	case entity.AppointmentStatusCompleted:
		if !appointment.IsOpen() {
			return ErrAppointmentNotOpen
		}
	default:
		return ErrInvalidStatusChange
	}

	affected, err := u.appointmentRepo.UpdateStatusIf(tx, appointment.ID, []entity.AppointmentStatus{appointment.Status}, to)
	if err != nil {
		u.log.Warnf("Failed to update status of appointment %s: %+v", appointment.ID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotOpen
	}
	appointment.Status = to
	return nil
}

// CancelAppointment cancels an open appointment and frees its slot. A second
// call returns ErrAppointmentAlreadyCancelled.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}

	reason := entity.CancelReasonByStaff
	if req != nil && req.Reason != "" {
		reason = req.Reason
	}

	var appointment *entity.Appointment
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err = u.lockAppointment(tx, identity.HospitalID, identity.Visibility, id)
		if err != nil {
			return err
		}

		old := appointment.Status
		if err := u.lifecycle.cancel(tx, appointment, reason, today.Now); err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actorOf(identity), entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(),
			map[string]interface{}{"status": old},
			map[string]interface{}{"status": appointment.Status, "reason": reason},
		)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment cancelled: id=%s, slot=%s", appointment.ID, appointment.SlotID)
	return u.reload(ctx, identity.HospitalID, appointment), nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	filter := entity.AppointmentFilter{
		HospitalID: identity.HospitalID,
		DoctorID:   query.DoctorID,
		PatientID:  query.PatientID,
		Visibility: identity.Visibility,
		Limit:      query.Limit,
		Offset:     (query.Page - 1) * query.Limit,
	}
	if query.DateFrom != "" {
		from, err := scheduling.ParseDate(query.DateFrom)
		if err != nil {
			return nil, invalidInput(err)
		}
		filter.DateFrom = &from
	}
	if query.DateTo != "" {
		to, err := scheduling.ParseDate(query.DateTo)
		if err != nil {
			return nil, invalidInput(err)
		}
		filter.DateTo = &to
	}
	for _, s := range query.Statuses {
		filter.Statuses = append(filter.Statuses, entity.AppointmentStatus(s))
	}

	appointments, total, err := u.appointmentRepo.FindAll(u.tx.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Page:         query.Page,
		Limit:        query.Limit,
		Total:        total,
	}, nil
}

func (u *appointmentUsecase) lockAppointment(tx *gorm.DB, hospitalID uuid.UUID, visibility entity.VisibilityFilter, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to lock appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil || appointment.HospitalID != hospitalID {
		return nil, ErrAppointmentNotFound
	}
	if !visibility.Allows(appointment.DoctorID) {
		return nil, ErrOutOfScope
	}
	return appointment, nil
}

// reload fetches the appointment with patient and doctor names, falling back
// to what is already in memory.
func (u *appointmentUsecase) reload(ctx context.Context, hospitalID uuid.UUID, appointment *entity.Appointment) *dto.AppointmentResponse {
	full, err := u.appointmentRepo.FindByID(u.tx.Conn(ctx), hospitalID, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment)
	}
	return converter.AppointmentToResponse(full)
}
