package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.DoctorProfile, error)
	UpdateSlotDuration(db *gorm.DB, id uuid.UUID, minutes int) error
}
