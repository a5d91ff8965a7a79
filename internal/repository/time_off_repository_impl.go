package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type timeOffRepository struct{}

func NewTimeOffRepository() domainRepo.TimeOffRepository {
	return &timeOffRepository{}
}

func (r *timeOffRepository) Create(db *gorm.DB, period *entity.TimeOffPeriod) error {
	return db.Create(period).Error
}

func (r *timeOffRepository) FindByID(db *gorm.DB, doctorID, id uuid.UUID) (*entity.TimeOffPeriod, error) {
	var period entity.TimeOffPeriod
	err := db.Where("id = ? AND doctor_id = ?", id, doctorID).First(&period).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &period, nil
}

func (r *timeOffRepository) FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.TimeOffPeriod, error) {
	var periods []entity.TimeOffPeriod
	err := db.Where("doctor_id = ?", doctorID).Order("start_date DESC").Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

// FindApprovedInRange returns approved periods overlapping [from, to]
func (r *timeOffRepository) FindApprovedInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.TimeOffPeriod, error) {
	var periods []entity.TimeOffPeriod
	err := db.Where("doctor_id = ? AND approval_status = ? AND start_date <= ? AND end_date >= ?",
		doctorID, entity.ApprovalStatusApproved, to, from).
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *timeOffRepository) UpdateApprovalStatus(db *gorm.DB, id uuid.UUID, status entity.ApprovalStatus) error {
	return db.Model(&entity.TimeOffPeriod{}).Where("id = ?", id).Update("approval_status", status).Error
}

func (r *timeOffRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.TimeOffPeriod{})
	return result.RowsAffected, result.Error
}
