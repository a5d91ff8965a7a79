package usecase

import (
	"context"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DoctorCheckinUsecase tracks whether a doctor is in for the current service day
type DoctorCheckinUsecase interface {
	SetStatus(ctx context.Context, doctorID uuid.UUID, status entity.CheckinStatus) (*dto.DoctorCheckinResponse, error)
	GetStatus(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorCheckinResponse, error)
}

type doctorCheckinUsecase struct {
	tx          repository.Transactor
	log         *logrus.Logger
	calendar    service.Calendar
	doctorRepo  repository.DoctorProfileRepository
	checkinRepo repository.DoctorCheckinRepository
}

func NewDoctorCheckinUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	calendar service.Calendar,
	doctorRepo repository.DoctorProfileRepository,
	checkinRepo repository.DoctorCheckinRepository,
) DoctorCheckinUsecase {
	return &doctorCheckinUsecase{
		tx:          tx,
		log:         log,
		calendar:    calendar,
		doctorRepo:  doctorRepo,
		checkinRepo: checkinRepo,
	}
}

func (u *doctorCheckinUsecase) SetStatus(ctx context.Context, doctorID uuid.UUID, status entity.CheckinStatus) (*dto.DoctorCheckinResponse, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}

	switch status {
	case entity.CheckinStatusCheckedIn, entity.CheckinStatusOnBreak, entity.CheckinStatusCheckedOut:
	default:
		return nil, ErrInvalidStatusChange
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

	checkin := &entity.DoctorDailyCheckin{
		DoctorID: doctor.ID,
		Date:     today.Date,
		Status:   status,
	}
	if err := u.checkinRepo.Upsert(db, checkin); err != nil {
		u.log.Warnf("Failed to save check-in of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	u.log.Infof("Doctor %s is %s on %s", doctor.ID, status, today.Date.Format(entity.DateLayout))
	return &dto.DoctorCheckinResponse{
		DoctorID: doctor.ID,
		Date:     today.Date.Format(entity.DateLayout),
		Status:   string(status),
	}, nil
}

func (u *doctorCheckinUsecase) GetStatus(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorCheckinResponse, error) {
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

	response := &dto.DoctorCheckinResponse{
		DoctorID: doctor.ID,
		Date:     today.Date.Format(entity.DateLayout),
		Status:   string(entity.CheckinStatusNotCheckedIn),
	}

	checkin, err := u.checkinRepo.FindByDoctorAndDate(db, doctor.ID, today.Date)
	if err != nil {
		u.log.Warnf("Failed to find check-in of doctor %s: %+v", doctor.ID, err)
		return nil, err
	}
	if checkin != nil {
		response.Status = string(checkin.Status)
	}
	return response, nil
}
