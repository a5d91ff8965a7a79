package usecase

import (
	"context"

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

// ScheduleUsecase manages the inputs of slot generation. Changing them does
// not touch existing slots; that is the job of regeneration.
type ScheduleUsecase interface {
	GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID) (*dto.WeeklyScheduleResponse, error)
	SaveWeeklySchedule(ctx context.Context, doctorID uuid.UUID, req *dto.SaveWeeklyScheduleRequest) (*dto.WeeklyScheduleResponse, error)
	UpdateSlotDuration(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateSlotDurationRequest) (*dto.WeeklyScheduleResponse, error)
	CreateTimeOff(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTimeOffRequest) (*dto.TimeOffResponse, error)
	ListTimeOff(ctx context.Context, doctorID uuid.UUID) (*dto.TimeOffListResponse, error)
	ReviewTimeOff(ctx context.Context, doctorID, id uuid.UUID, req *dto.ReviewTimeOffRequest) (*dto.TimeOffResponse, error)
	DeleteTimeOff(ctx context.Context, doctorID, id uuid.UUID) error
}

type scheduleUsecase struct {
	tx           repository.Transactor
	log          *logrus.Logger
	auditService service.AuditService
	doctorRepo   repository.DoctorProfileRepository
	scheduleRepo repository.WeeklyScheduleRepository
	timeOffRepo  repository.TimeOffRepository
}

func NewScheduleUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	auditService service.AuditService,
	doctorRepo repository.DoctorProfileRepository,
	scheduleRepo repository.WeeklyScheduleRepository,
	timeOffRepo repository.TimeOffRepository,
) ScheduleUsecase {
	return &scheduleUsecase{
		tx:           tx,
		log:          log,
		auditService: auditService,
		doctorRepo:   doctorRepo,
		scheduleRepo: scheduleRepo,
		timeOffRepo:  timeOffRepo,
	}
}

func (u *scheduleUsecase) GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID) (*dto.WeeklyScheduleResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := u.tx.Conn(ctx)
	doctor, err := loadDoctor(db, u.doctorRepo, identity, doctorID)
	if err != nil {
		return nil, err
	}

	entries, err := u.scheduleRepo.FindByDoctor(db, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to find weekly schedule of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	return converter.WeeklyScheduleToResponse(doctor, entries), nil
}

func (u *scheduleUsecase) SaveWeeklySchedule(ctx context.Context, doctorID uuid.UUID, req *dto.SaveWeeklyScheduleRequest) (*dto.WeeklyScheduleResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	entries := converter.WeeklyScheduleFromRequest(doctorID, req.Entries)
	// The conflict check validates a template the same way.
	change := scheduling.ProposedChange{Type: scheduling.ChangeTypeSchedule, Schedule: entries}
	if err := change.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	var doctor *entity.DoctorProfile
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err = loadDoctor(tx, u.doctorRepo, identity, doctorID)
		if err != nil {
			return err
		}

		old, err := u.scheduleRepo.FindByDoctor(tx, doctor.ID)
		if err != nil {
			return err
		}
		if err := u.scheduleRepo.Replace(tx, doctor.ID, entries); err != nil {
			u.log.Warnf("Failed to replace weekly schedule of doctor %s: %+v", doctor.ID, err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actorOf(identity), entity.AuditActionScheduleSave, "weekly_schedule", doctor.ID.String(),
			converter.WeeklyScheduleToResponse(doctor, old).Entries,
			converter.WeeklyScheduleToResponse(doctor, entries).Entries,
		)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Weekly schedule saved: doctor=%s, entries=%d", doctor.ID, len(entries))
	return converter.WeeklyScheduleToResponse(doctor, entries), nil
}

func (u *scheduleUsecase) UpdateSlotDuration(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateSlotDurationRequest) (*dto.WeeklyScheduleResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req.DurationMinutes < scheduling.MinSlotMinutes || req.DurationMinutes > scheduling.MaxSlotMinutes {
		return nil, invalidInput(scheduling.ErrInvalidDuration)
	}

	var doctor *entity.DoctorProfile
	var entries []entity.WeeklyScheduleEntry
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err = loadDoctor(tx, u.doctorRepo, identity, doctorID)
		if err != nil {
			return err
		}

		old := doctor.SlotDurationMinutes
		if err := u.doctorRepo.UpdateSlotDuration(tx, doctor.ID, req.DurationMinutes); err != nil {
			u.log.Warnf("Failed to update slot duration of doctor %s: %+v", doctor.ID, err)
			return err
		}
		doctor.SlotDurationMinutes = req.DurationMinutes

		entries, err = u.scheduleRepo.FindByDoctor(tx, doctor.ID)
		if err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actorOf(identity), entity.AuditActionSlotDurationChange, "doctor_profile", doctor.ID.String(),
			map[string]interface{}{"slot_duration_minutes": old},
			map[string]interface{}{"slot_duration_minutes": req.DurationMinutes},
		)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Slot duration of doctor %s set to %d minutes", doctor.ID, req.DurationMinutes)
	return converter.WeeklyScheduleToResponse(doctor, entries), nil
}

func (u *scheduleUsecase) CreateTimeOff(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTimeOffRequest) (*dto.TimeOffResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	start, err := scheduling.ParseDate(req.StartDate)
	if err != nil {
		return nil, invalidInput(err)
	}
	end, err := scheduling.ParseDate(req.EndDate)
	if err != nil {
		return nil, invalidInput(err)
	}
	if end.Before(start) {
		return nil, invalidInput(scheduling.ErrInvalidRange)
	}

	status := entity.ApprovalStatusPending
	if req.ApprovalStatus != "" {
		status = entity.ApprovalStatus(req.ApprovalStatus)
	}

	period := &entity.TimeOffPeriod{
		DoctorID:       doctorID,
		StartDate:      start,
		EndDate:        end,
		Reason:         req.Reason,
		ApprovalStatus: status,
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := loadDoctor(tx, u.doctorRepo, identity, doctorID); err != nil {
			return err
		}
		if err := u.timeOffRepo.Create(tx, period); err != nil {
			u.log.Warnf("Failed to create time-off for doctor %s: %+v", doctorID, err)
			return err
		}
		return u.auditService.LogCreate(ctx, tx, actorOf(identity), entity.AuditActionTimeOffCreate, "time_off", period.ID.String(),
			converter.TimeOffToResponse(period))
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Time-off created: doctor=%s, range=%s..%s, status=%s", doctorID, req.StartDate, req.EndDate, status)
	return converter.TimeOffToResponse(period), nil
}

func (u *scheduleUsecase) ListTimeOff(ctx context.Context, doctorID uuid.UUID) (*dto.TimeOffListResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := u.tx.Conn(ctx)
	if _, err := loadDoctor(db, u.doctorRepo, identity, doctorID); err != nil {
		return nil, err
	}

	periods, err := u.timeOffRepo.FindByDoctor(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find time-off of doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.TimeOffListResponse{
		Periods: converter.TimeOffsToResponses(periods),
		Total:   len(periods),
	}, nil
}

// ReviewTimeOff approves or rejects a pending period. Approval alone does not
// cancel anything; run conflict analysis and regeneration for that.
func (u *scheduleUsecase) ReviewTimeOff(ctx context.Context, doctorID, id uuid.UUID, req *dto.ReviewTimeOffRequest) (*dto.TimeOffResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	var period *entity.TimeOffPeriod
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := loadDoctor(tx, u.doctorRepo, identity, doctorID); err != nil {
			return err
		}

		period, err = u.timeOffRepo.FindByID(tx, doctorID, id)
		if err != nil {
			return err
		}
		if period == nil {
			return ErrTimeOffNotFound
		}
		if period.ApprovalStatus != entity.ApprovalStatusPending {
			return ErrTimeOffAlreadyReviewed
		}

		status := entity.ApprovalStatus(req.ApprovalStatus)
		if err := u.timeOffRepo.UpdateApprovalStatus(tx, period.ID, status); err != nil {
			u.log.Warnf("Failed to review time-off %s: %+v", period.ID, err)
			return err
		}
		old := period.ApprovalStatus
		period.ApprovalStatus = status

		return u.auditService.LogUpdate(ctx, tx, actorOf(identity), entity.AuditActionTimeOffReview, "time_off", period.ID.String(),
			map[string]interface{}{"approval_status": old},
			map[string]interface{}{"approval_status": status},
		)
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Time-off %s reviewed: %s", period.ID, period.ApprovalStatus)
	return converter.TimeOffToResponse(period), nil
}

func (u *scheduleUsecase) DeleteTimeOff(ctx context.Context, doctorID, id uuid.UUID) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := loadDoctor(tx, u.doctorRepo, identity, doctorID); err != nil {
			return err
		}

		period, err := u.timeOffRepo.FindByID(tx, doctorID, id)
		if err != nil {
			return err
		}
		if period == nil {
			return ErrTimeOffNotFound
		}

		affected, err := u.timeOffRepo.Delete(tx, period.ID)
		if err != nil {
			u.log.Warnf("Failed to delete time-off %s: %+v", period.ID, err)
			return err
		}
		if affected == 0 {
			return ErrTimeOffNotFound
		}

		u.log.Infof("Time-off %s deleted", period.ID)
		return u.auditService.LogDelete(ctx, tx, actorOf(identity), entity.AuditActionTimeOffDelete, "time_off", period.ID.String(),
			converter.TimeOffToResponse(period))
	})
}
