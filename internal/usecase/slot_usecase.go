package usecase

import (
	"context"
	"errors"
	"time"

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

type SlotUsecase interface {
	GenerateSlots(ctx context.Context, doctorID uuid.UUID, req *dto.GenerateSlotsRequest) (*dto.GenerateSlotsResponse, error)
	// GenerateForDoctor runs the generator without a caller identity. A zero
	// duration falls back to the doctor's configured duration.
	GenerateForDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID, from, to time.Time, durationMinutes int) (*dto.GenerateSlotsResponse, error)
	ListSlotsForDate(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotDayResponse, error)
	BlockSlot(ctx context.Context, slotID uuid.UUID) (*dto.SlotResponse, error)
	UnblockSlot(ctx context.Context, slotID uuid.UUID) (*dto.SlotResponse, error)
}

type slotUsecase struct {
	tx              repository.Transactor
	log             *logrus.Logger
	periods         scheduling.Periods
	calendar        service.Calendar
	auditService    service.AuditService
	doctorRepo      repository.DoctorProfileRepository
	scheduleRepo    repository.WeeklyScheduleRepository
	timeOffRepo     repository.TimeOffRepository
	slotRepo        repository.SlotRepository
	appointmentRepo repository.AppointmentRepository
	lifecycle       *bookingLifecycle
}

func NewSlotUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	periods scheduling.Periods,
	calendar service.Calendar,
	auditService service.AuditService,
	doctorRepo repository.DoctorProfileRepository,
	scheduleRepo repository.WeeklyScheduleRepository,
	timeOffRepo repository.TimeOffRepository,
	slotRepo repository.SlotRepository,
	appointmentRepo repository.AppointmentRepository,
	queueRepo repository.QueueEntryRepository,
) SlotUsecase {
	return &slotUsecase{
		tx:              tx,
		log:             log,
		periods:         periods,
		calendar:        calendar,
		auditService:    auditService,
		doctorRepo:      doctorRepo,
		scheduleRepo:    scheduleRepo,
		timeOffRepo:     timeOffRepo,
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

func (u *slotUsecase) GenerateSlots(ctx context.Context, doctorID uuid.UUID, req *dto.GenerateSlotsRequest) (*dto.GenerateSlotsResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	doctor, err := loadDoctor(u.tx.Conn(ctx), u.doctorRepo, identity, doctorID)
	if err != nil {
		return nil, err
	}

	from, err := scheduling.ParseDate(req.StartDate)
	if err != nil {
		return nil, invalidInput(err)
	}
	to, err := scheduling.ParseDate(req.EndDate)
	if err != nil {
		return nil, invalidInput(err)
	}

	today, err := u.calendar.Today(ctx, identity.HospitalID)
	if err != nil {
		return nil, err
	}

	var result *dto.GenerateSlotsResponse
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		result, err = u.generate(tx, doctor, from, to, req.DurationMinutes, today)
		if err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, actorOf(identity), entity.AuditActionSlotsGenerate, "slots", doctor.ID.String(), result)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Slots generated: doctor=%s, range=%s..%s, generated=%d, skipped=%d",
		doctor.ID, req.StartDate, req.EndDate, result.Generated, result.SkippedDuplicates)
	return result, nil
}

func (u *slotUsecase) GenerateForDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID, from, to time.Time, durationMinutes int) (*dto.GenerateSlotsResponse, error) {
	db := u.tx.Conn(ctx)

	doctor, err := u.doctorRepo.FindByID(db, hospitalID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	today, err := u.calendar.Today(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	result, err := u.generate(db, doctor, from, to, durationMinutes, today)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Slots generated: doctor=%s, range=%s..%s, generated=%d, skipped=%d",
		doctor.ID, result.StartDate, result.EndDate, result.Generated, result.SkippedDuplicates)
	return result, nil
}

func (u *slotUsecase) generate(db *gorm.DB, doctor *entity.DoctorProfile, from, to time.Time, durationMinutes int, today service.BusinessDay) (*dto.GenerateSlotsResponse, error) {
	if durationMinutes == 0 {
		durationMinutes = doctor.SlotDurationMinutes
	}
	if err := scheduling.ValidateRange(from, to); err != nil {
		return nil, invalidInput(err)
	}

	schedule, err := u.scheduleRepo.FindByDoctor(db, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to find weekly schedule of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}
	timeOff, err := u.timeOffRepo.FindApprovedInRange(db, doctor.ID, from, to)
	if err != nil {
		u.log.Warnf("Failed to find time-off of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}
	keys, err := u.slotRepo.FindKeysInRange(db, doctor.ID, from, to)
	if err != nil {
		u.log.Warnf("Failed to find existing slots of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	existing := make(map[entity.SlotKey]struct{}, len(keys))
	for _, k := range keys {
		existing[k] = struct{}{}
	}

	generated, err := scheduling.GenerateSlots(scheduling.GenerateInput{
		HospitalID:      doctor.HospitalID,
		DoctorID:        doctor.ID,
		From:            from,
		To:              to,
		DurationMinutes: durationMinutes,
		Schedule:        schedule,
		TimeOff:         timeOff,
		Existing:        existing,
		Cutoff:          scheduling.DayCutoff{Date: today.Date, Minute: today.ClockMinute()},
	}, u.periods)
	if err != nil {
		return nil, invalidInput(err)
	}

	inserted, err := u.slotRepo.CreateIgnoreDuplicates(db, generated.Slots)
	if err != nil {
		u.log.Warnf("Failed to insert slots for doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	// Rows ignored by the store lost a race with a concurrent generator.
	skipped := generated.Skipped + len(generated.Slots) - int(inserted)

	return &dto.GenerateSlotsResponse{
		DoctorID:          doctor.ID,
		StartDate:         from.Format(entity.DateLayout),
		EndDate:           to.Format(entity.DateLayout),
		DurationMinutes:   durationMinutes,
		Generated:         int(inserted),
		SkippedDuplicates: skipped,
	}, nil
}

func (u *slotUsecase) ListSlotsForDate(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotDayResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := u.tx.Conn(ctx)
	doctor, err := loadDoctor(db, u.doctorRepo, identity, doctorID)
	if err != nil {
		return nil, err
	}

	day, err := u.resolveDate(ctx, identity.HospitalID, date)
	if err != nil {
		return nil, err
	}

	slots, err := u.slotRepo.FindByDoctorAndDate(db, doctor.ID, day)
	if err != nil {
		u.log.Warnf("Failed to find slots of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	ids := make([]uuid.UUID, len(slots))
	for i := range slots {
		ids[i] = slots[i].ID
	}
	appointments, err := u.appointmentRepo.FindActiveBySlotIDs(db, ids)
	if err != nil {
		u.log.Warnf("Failed to find appointments for slots of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}
	u.lifecycle.healSlots(db, slots, heldSlots(appointments))

	timeOff, err := u.timeOffRepo.FindApprovedInRange(db, doctor.ID, day, day)
	if err != nil {
		u.log.Warnf("Failed to find time-off of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	stats, morning, evening, night := converter.SlotsToDay(slots)
	response := &dto.SlotDayResponse{
		DoctorID:  doctor.ID,
		Date:      day.Format(entity.DateLayout),
		IsTimeOff: scheduling.OnTimeOff(timeOff, day),
		Stats:     stats,
		Morning:   morning,
		Evening:   evening,
		Night:     night,
	}

	if response.IsTimeOff {
		cancelled, err := u.appointmentRepo.FindCancelledByDoctorAndDate(db, doctor.ID, day)
		if err != nil {
			u.log.Warnf("Failed to find cancelled appointments of doctor %s: %+v", doctor.ID, err)
			return nil, err
		}
		response.CancelledAppointments = converter.AppointmentsToResponses(cancelled)
	}

	return response, nil
}

func (u *slotUsecase) resolveDate(ctx context.Context, hospitalID uuid.UUID, date string) (time.Time, error) {
	if date != "" {
		day, err := scheduling.ParseDate(date)
		if err != nil {
			return time.Time{}, invalidInput(err)
		}
		return day, nil
	}
	today, err := u.calendar.Today(ctx, hospitalID)
	if err != nil {
		return time.Time{}, err
	}
	return today.Date, nil
}

func (u *slotUsecase) BlockSlot(ctx context.Context, slotID uuid.UUID) (*dto.SlotResponse, error) {
	return u.setBlocked(ctx, slotID, true)
}

func (u *slotUsecase) UnblockSlot(ctx context.Context, slotID uuid.UUID) (*dto.SlotResponse, error) {
	return u.setBlocked(ctx, slotID, false)
}

func (u *slotUsecase) setBlocked(ctx context.Context, slotID uuid.UUID, block bool) (*dto.SlotResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	from, to, action, stateErr := entity.SlotStatusAvailable, entity.SlotStatusBlocked, entity.AuditActionSlotBlock, ErrSlotNotBlockable
	if !block {
		from, to, action, stateErr = entity.SlotStatusBlocked, entity.SlotStatusAvailable, entity.AuditActionSlotUnblock, ErrSlotNotBlocked
	}

	var slot *entity.Slot
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		slot, err = u.slotRepo.FindByID(tx, identity.HospitalID, slotID)
		if err != nil {
			u.log.Warnf("Failed to find slot %s: %+v", slotID, err)
			return err
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		if !identity.Visibility.Allows(slot.DoctorID) {
			return ErrOutOfScope
		}

		if block {
			active, err := u.appointmentRepo.FindActiveBySlot(tx, slot.ID)
			if err != nil {
				return err
			}
			if active != nil {
				return ErrSlotNotBlockable
			}
		}

		affected, err := u.slotRepo.UpdateStatusIf(tx, slot.ID, from, to)
		if err != nil {
			u.log.Warnf("Failed to update slot %s: %+v", slot.ID, err)
			return err
		}
		if affected == 0 {
			return stateErr
		}

		old := slot.Status
		slot.Status = to
		return u.auditService.LogUpdate(ctx, tx, actorOf(identity), action, "slot", slot.ID.String(),
			map[string]interface{}{"status": old},
			map[string]interface{}{"status": to},
		)
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotBlockable) && slot != nil {
			u.lifecycle.healSlot(u.tx.Conn(ctx), slot.ID)
		}
		return nil, err
	}

	u.log.Infof("Slot %s is now %s", slot.ID, slot.Status)
	return converter.SlotToResponse(slot), nil
}
