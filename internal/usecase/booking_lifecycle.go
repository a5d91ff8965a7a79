package usecase

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/scheduling"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// bookingLifecycle holds the slot/appointment transitions shared by staff
// booking, regeneration and the public link surface.
type bookingLifecycle struct {
	log             *logrus.Logger
	slotRepo        repository.SlotRepository
	appointmentRepo repository.AppointmentRepository
	queueRepo       repository.QueueEntryRepository
}

var openStatuses = []entity.AppointmentStatus{
	entity.AppointmentStatusScheduled,
	entity.AppointmentStatusConfirmed,
}

type bookingRequest struct {
	HospitalID     uuid.UUID
	SlotID         uuid.UUID
	PatientID      uuid.UUID
	ReasonForVisit string
	Notes          string
	BookedBy       *uuid.UUID
	Today          service.BusinessDay
}

// book reserves the slot and creates the appointment. Must run inside a
// transaction; the slot row stays locked until it ends.
func (b *bookingLifecycle) book(tx *gorm.DB, req bookingRequest) (*entity.Appointment, error) {
	slot, err := b.slotRepo.FindByIDForUpdate(tx, req.SlotID)
	if err != nil {
		b.log.Warnf("Failed to lock slot %s: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil || slot.HospitalID != req.HospitalID {
		return nil, ErrSlotNotFound
	}
	start, err := scheduling.ParseClock(slot.StartTime)
	if err != nil {
		return nil, err
	}
	if req.Today.Started(slot.Date, start) {
		return nil, ErrSlotInPast
	}
	switch slot.Status {
	case entity.SlotStatusAvailable:
	case entity.SlotStatusBooked:
		// Lost the row lock to another booking.
		return nil, ErrSlotAlreadyBooked
	default:
		return nil, ErrSlotNotAvailable
	}

	// The status column can drift, so ask the appointments directly.
	existing, err := b.appointmentRepo.FindActiveBySlot(tx, slot.ID)
	if err != nil {
		b.log.Warnf("Failed to check active appointment for slot %s: %+v", slot.ID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotAlreadyBooked
	}

	token, err := service.NewPublicToken()
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		HospitalID:     req.HospitalID,
		SlotID:         &slot.ID,
		PatientID:      req.PatientID,
		DoctorID:       slot.DoctorID,
		Date:           slot.Date,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		Status:         entity.AppointmentStatusScheduled,
		ReasonForVisit: req.ReasonForVisit,
		Notes:          req.Notes,
		BookedByUserID: req.BookedBy,
		PublicToken:    token,
	}
	if err := b.appointmentRepo.Create(tx, appointment); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyBooked
		}
		b.log.Warnf("Failed to create appointment for slot %s: %+v", slot.ID, err)
		return nil, err
	}

	if err := b.slotRepo.UpdateStatus(tx, slot.ID, entity.SlotStatusBooked); err != nil {
		b.log.Warnf("Failed to mark slot %s booked: %+v", slot.ID, err)
		return nil, err
	}

	return appointment, nil
}

// cancel cancels an open appointment, releases its slot and lets a live queue
// entry go. The appointment should have been loaded with a row lock.
func (b *bookingLifecycle) cancel(tx *gorm.DB, appointment *entity.Appointment, reason string, at time.Time) error {
	if appointment.IsCancelled() {
		return ErrAppointmentAlreadyCancelled
	}
	if !appointment.IsOpen() {
		return ErrAppointmentNotOpen
	}

	affected, err := b.appointmentRepo.Cancel(tx, appointment.ID, reason, at)
	if err != nil {
		b.log.Warnf("Failed to cancel appointment %s: %+v", appointment.ID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotOpen
	}

	if appointment.SlotID != nil {
		if _, err := b.slotRepo.UpdateStatusIf(tx, *appointment.SlotID, entity.SlotStatusBooked, entity.SlotStatusAvailable); err != nil {
			b.log.Warnf("Failed to release slot %s: %+v", appointment.SlotID, err)
			return err
		}
	}

	entry, err := b.queueRepo.FindByAppointmentID(tx, appointment.ID)
	if err != nil {
		b.log.Warnf("Failed to find queue entry of appointment %s: %+v", appointment.ID, err)
		return err
	}
	if entry != nil && entry.IsActive() {
		if _, err := b.queueRepo.Finish(tx, entry.ID, entity.QueueStatusLeft, at); err != nil {
			b.log.Warnf("Failed to release queue entry %s: %+v", entry.ID, err)
			return err
		}
	}

	appointment.Cancel(reason, at)
	return nil
}

// markNoShow records that the patient of an open appointment did not come.
// The slot stays BOOKED.
func (b *bookingLifecycle) markNoShow(tx *gorm.DB, appointment *entity.Appointment, today, at time.Time) error {
	if appointment.IsCancelled() {
		return ErrAppointmentAlreadyCancelled
	}
	if !appointment.IsOpen() {
		return ErrAppointmentNotOpen
	}
	if appointment.Date.After(today) {
		return ErrAppointmentInFuture
	}

	affected, err := b.appointmentRepo.UpdateStatusIf(tx, appointment.ID, openStatuses, entity.AppointmentStatusNoShow)
	if err != nil {
		b.log.Warnf("Failed to mark appointment %s no-show: %+v", appointment.ID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotOpen
	}

	entry, err := b.queueRepo.FindByAppointmentID(tx, appointment.ID)
	if err != nil {
		return err
	}
	if entry != nil && entry.IsActive() {
		if _, err := b.queueRepo.Finish(tx, entry.ID, entity.QueueStatusNoShow, at); err != nil {
			b.log.Warnf("Failed to mark queue entry %s no-show: %+v", entry.ID, err)
			return err
		}
	}

	appointment.Status = entity.AppointmentStatusNoShow
	return nil
}

// healSlot brings the stored slot status back in line with its appointments.
// Failures are logged and never returned.
func (b *bookingLifecycle) healSlot(db *gorm.DB, slotID uuid.UUID) {
	active, err := b.appointmentRepo.FindActiveBySlot(db, slotID)
	if err != nil {
		b.log.Warnf("Failed to check slot %s for drift: %+v", slotID, err)
		return
	}

	from, to := entity.SlotStatusBooked, entity.SlotStatusAvailable
	if active != nil {
		from, to = entity.SlotStatusAvailable, entity.SlotStatusBooked
	}
	b.repairSlot(db, slotID, from, to)
}

func heldSlots(appointments []entity.Appointment) map[uuid.UUID]bool {
	held := make(map[uuid.UUID]bool, len(appointments))
	for _, a := range appointments {
		if a.SlotID != nil {
			held[*a.SlotID] = true
		}
	}
	return held
}

// healSlots repairs drift for slots already loaded together with their
// active appointments, updating the slice in place.
func (b *bookingLifecycle) healSlots(db *gorm.DB, slots []entity.Slot, active map[uuid.UUID]bool) {
	for i := range slots {
		slot := &slots[i]
		switch {
		case slot.Status == entity.SlotStatusAvailable && active[slot.ID]:
			if b.repairSlot(db, slot.ID, entity.SlotStatusAvailable, entity.SlotStatusBooked) {
				slot.Status = entity.SlotStatusBooked
			}
		case slot.Status == entity.SlotStatusBooked && !active[slot.ID]:
			if b.repairSlot(db, slot.ID, entity.SlotStatusBooked, entity.SlotStatusAvailable) {
				slot.Status = entity.SlotStatusAvailable
			}
		}
	}
}

func (b *bookingLifecycle) repairSlot(db *gorm.DB, slotID uuid.UUID, from, to entity.SlotStatus) bool {
	affected, err := b.slotRepo.UpdateStatusIf(db, slotID, from, to)
	if err != nil {
		b.log.Warnf("Failed to repair slot %s: %+v", slotID, err)
		return false
	}
	if affected > 0 {
		b.log.WithFields(logrus.Fields{
			"slot_id": slotID,
			"from":    from,
			"to":      to,
		}).Warn("Repaired slot status drift")
	}
	return affected > 0
}
