package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, hospitalID, id uuid.UUID) (*entity.Appointment, error)
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPublicToken(db *gorm.DB, token string) (*entity.Appointment, error)
	FindActiveBySlot(db *gorm.DB, slotID uuid.UUID) (*entity.Appointment, error)
	FindActiveBySlotIDs(db *gorm.DB, slotIDs []uuid.UUID) ([]entity.Appointment, error)
	// FindOpenByDoctorFrom returns SCHEDULED and CONFIRMED appointments dated from onwards.
	FindOpenByDoctorFrom(db *gorm.DB, doctorID uuid.UUID, from time.Time) ([]entity.Appointment, error)
	FindCancelledByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	// Cancel cancels an open appointment. Returns affected rows: 0 means the
	// appointment was no longer open.
	Cancel(db *gorm.DB, id uuid.UUID, reason string, at time.Time) (int64, error)
	UpdateStatusIf(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus) (int64, error)
	UpdateDetails(db *gorm.DB, id uuid.UUID, reasonForVisit, notes string) error
}
