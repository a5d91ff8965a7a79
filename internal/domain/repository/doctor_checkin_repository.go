package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorCheckinRepository interface {
	Upsert(db *gorm.DB, checkin *entity.DoctorDailyCheckin) error
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.DoctorDailyCheckin, error)
}
