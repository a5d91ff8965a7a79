package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeOffRepository interface {
	Create(db *gorm.DB, period *entity.TimeOffPeriod) error
	FindByID(db *gorm.DB, doctorID, id uuid.UUID) (*entity.TimeOffPeriod, error)
	FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.TimeOffPeriod, error)
	FindApprovedInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.TimeOffPeriod, error)
	UpdateApprovalStatus(db *gorm.DB, id uuid.UUID, status entity.ApprovalStatus) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
