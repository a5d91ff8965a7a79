package repository

import (
	"errors"
	"fmt"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var liveQueueStatuses = []entity.QueueStatus{
	entity.QueueStatusQueued,
	entity.QueueStatusWaiting,
	entity.QueueStatusWithDoctor,
}

type queueEntryRepository struct{}

func NewQueueEntryRepository() domainRepo.QueueEntryRepository {
	return &queueEntryRepository{}
}

func (r *queueEntryRepository) Create(db *gorm.DB, entry *entity.QueueEntry) error {
	return db.Omit(clause.Associations).Create(entry).Error
}

func (r *queueEntryRepository) FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.QueueEntry, error) {
	var entry entity.QueueEntry
	err := db.Preload("Patient").Preload("Appointment").
		Where("id = ? AND hospital_id = ?", id, hospitalID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *queueEntryRepository) FindByPublicToken(db *gorm.DB, token string) (*entity.QueueEntry, error) {
	var entry entity.QueueEntry
	err := db.Where("public_token = ?", token).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *queueEntryRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.QueueEntry, error) {
	var entry entity.QueueEntry
	err := db.Where("appointment_id = ?", appointmentID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *queueEntryRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.QueueEntry, error) {
	var entries []entity.QueueEntry
	err := db.Preload("Patient").Preload("Appointment").
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("queue_number ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *queueEntryRepository) FindLiveByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) ([]entity.QueueEntry, error) {
	if len(appointmentIDs) == 0 {
		return nil, nil
	}
	var entries []entity.QueueEntry
	err := db.Where("appointment_id IN ? AND status IN ?", appointmentIDs, liveQueueStatuses).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *queueEntryRepository) LockDoctorDay(db *gorm.DB, doctorID uuid.UUID, date time.Time) error {
	key := fmt.Sprintf("queue:%s:%s", doctorID, date.Format(entity.DateLayout))
	return db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

func (r *queueEntryRepository) NextQueueNumber(db *gorm.DB, doctorID uuid.UUID, date time.Time) (int, error) {
	var max int
	err := db.Model(&entity.QueueEntry{}).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Select("COALESCE(MAX(queue_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *queueEntryRepository) Update(db *gorm.DB, entry *entity.QueueEntry) error {
	return db.Omit(clause.Associations).Save(entry).Error
}

func (r *queueEntryRepository) Finish(db *gorm.DB, id uuid.UUID, status entity.QueueStatus, at time.Time) (int64, error) {
	result := db.Model(&entity.QueueEntry{}).
		Where("id = ? AND status IN ?", id, liveQueueStatuses).
		Updates(map[string]interface{}{"status": status, "completed_at": at})
	return result.RowsAffected, result.Error
}

// UpdateQueueNumbers rewrites numbers row by row. The unique constraint on
// (doctor_id, date, queue_number) is deferred, so intermediate states may
// collide as long as the final state does not.
func (r *queueEntryRepository) UpdateQueueNumbers(db *gorm.DB, numbers map[uuid.UUID]int) error {
	for id, number := range numbers {
		err := db.Model(&entity.QueueEntry{}).Where("id = ?", id).Update("queue_number", number).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *queueEntryRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.QueueEntry{}).Error
}
