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

type doctorCheckinRepository struct{}

func NewDoctorCheckinRepository() domainRepo.DoctorCheckinRepository {
	return &doctorCheckinRepository{}
}

func (r *doctorCheckinRepository) Upsert(db *gorm.DB, checkin *entity.DoctorDailyCheckin) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(checkin).Error
}

func (r *doctorCheckinRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.DoctorDailyCheckin, error) {
	var checkin entity.DoctorDailyCheckin
	err := db.Where("doctor_id = ? AND date = ?", doctorID, date).First(&checkin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &checkin, nil
}
