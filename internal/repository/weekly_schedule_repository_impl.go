package repository

import (
	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type weeklyScheduleRepository struct{}

func NewWeeklyScheduleRepository() domainRepo.WeeklyScheduleRepository {
	return &weeklyScheduleRepository{}
}

func (r *weeklyScheduleRepository) FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyScheduleEntry, error) {
	var entries []entity.WeeklyScheduleEntry
	err := db.Where("doctor_id = ?", doctorID).Order("day_of_week ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *weeklyScheduleRepository) Replace(db *gorm.DB, doctorID uuid.UUID, entries []entity.WeeklyScheduleEntry) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.WeeklyScheduleEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].DoctorID = doctorID
	}
	return db.Create(&entries).Error
}
