package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueueEntryRepository interface {
	Create(db *gorm.DB, entry *entity.QueueEntry) error
	FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.QueueEntry, error)
	FindByPublicToken(db *gorm.DB, token string) (*entity.QueueEntry, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.QueueEntry, error)
	// FindByDoctorAndDate returns the day's queue ordered by queue number.
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.QueueEntry, error)
	FindLiveByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) ([]entity.QueueEntry, error)
	// LockDoctorDay serializes numbering for one doctor and day until the
	// transaction ends.
	LockDoctorDay(db *gorm.DB, doctorID uuid.UUID, date time.Time) error
	NextQueueNumber(db *gorm.DB, doctorID uuid.UUID, date time.Time) (int, error)
	Update(db *gorm.DB, entry *entity.QueueEntry) error
	// Finish moves a live entry to a terminal status without touching its
	// queue number. Returns affected rows: 0 when it had already finished.
	Finish(db *gorm.DB, id uuid.UUID, status entity.QueueStatus, at time.Time) (int64, error)
	UpdateQueueNumbers(db *gorm.DB, numbers map[uuid.UUID]int) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
