package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeeklyScheduleRepository interface {
	FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyScheduleEntry, error)
	// Replace deletes the doctor's template and inserts entries in its place.
	Replace(db *gorm.DB, doctorID uuid.UUID, entries []entity.WeeklyScheduleEntry) error
}
