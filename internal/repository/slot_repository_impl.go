package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const slotInsertBatchSize = 200

// Cancelled appointments do not hold a slot; the FK detaches them on delete.
const unreferencedSlot = "NOT EXISTS (SELECT 1 FROM appointments a WHERE a.slot_id = slots.id AND a.status <> 'CANCELLED')"

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ? AND hospital_id = ?", id, hospitalID).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) FindKeysInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.SlotKey, error) {
	var slots []entity.Slot
	err := db.Select("doctor_id", "date", "start_time").
		Where("doctor_id = ? AND date BETWEEN ? AND ?", doctorID, from, to).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	keys := make([]entity.SlotKey, len(slots))
	for i := range slots {
		keys[i] = slots[i].Key()
	}
	return keys, nil
}

func (r *slotRepository) CreateIgnoreDuplicates(db *gorm.DB, slots []entity.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "date"}, {Name: "start_time"}},
		DoNothing: true,
	}).CreateInBatches(&slots, slotInsertBatchSize)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.SlotStatus) error {
	return db.Model(&entity.Slot{}).Where("id = ?", id).Update("status", status).Error
}

// UpdateStatusIf moves the slot only when it is still in the expected status.
// Returns affected rows: 1 = moved, 0 = status already changed.
func (r *slotRepository) UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.SlotStatus) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) CountPurgeable(db *gorm.DB, doctorID uuid.UUID, from time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Slot{}).
		Where("doctor_id = ? AND date >= ? AND status = ?", doctorID, from, entity.SlotStatusAvailable).
		Where(unreferencedSlot).
		Count(&count).Error
	return count, err
}

func (r *slotRepository) DeletePurgeable(db *gorm.DB, doctorID uuid.UUID, from time.Time) (int64, error) {
	result := db.Where("doctor_id = ? AND date >= ? AND status = ?", doctorID, from, entity.SlotStatusAvailable).
		Where(unreferencedSlot).
		Delete(&entity.Slot{})
	return result.RowsAffected, result.Error
}
