package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.Slot, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Slot, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Slot, error)
	FindKeysInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.SlotKey, error)
	// CreateIgnoreDuplicates inserts slots, skipping existing (doctor, date, start)
	// keys, and returns how many rows were actually inserted.
	CreateIgnoreDuplicates(db *gorm.DB, slots []entity.Slot) (int64, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.SlotStatus) error
	UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.SlotStatus) (int64, error)
	// CountPurgeable and DeletePurgeable work on AVAILABLE slots dated from
	// onwards that no uncancelled appointment references.
	CountPurgeable(db *gorm.DB, doctorID uuid.UUID, from time.Time) (int64, error)
	DeletePurgeable(db *gorm.DB, doctorID uuid.UUID, from time.Time) (int64, error)
}
