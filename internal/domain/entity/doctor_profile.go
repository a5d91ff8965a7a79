package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorProfile represents the schedulable doctor record of a hospital
type DoctorProfile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID          uuid.UUID `gorm:"type:uuid;not null;index" json:"hospital_id"`
	FullName            string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Specialization      string    `gorm:"type:varchar(255)" json:"specialization,omitempty"`
	SlotDurationMinutes int       `gorm:"not null;default:30" json:"slot_duration_minutes"`
	IsActive            bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	WeeklySchedule []WeeklyScheduleEntry `gorm:"foreignKey:DoctorID" json:"weekly_schedule,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
