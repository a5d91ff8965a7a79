package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.PatientProfile, error)
}
