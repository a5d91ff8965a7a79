package entity

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyScheduleEntry is one weekday of a doctor's recurring shift template.
// DayOfWeek follows time.Weekday (0 = Sunday).
type WeeklyScheduleEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek  int       `gorm:"not null" json:"day_of_week"`
	IsWorking  bool      `gorm:"not null;default:false" json:"is_working"`
	ShiftStart string    `gorm:"type:varchar(5)" json:"shift_start,omitempty"`
	ShiftEnd   string    `gorm:"type:varchar(5)" json:"shift_end,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WeeklyScheduleEntry) TableName() string {
	return "weekly_schedules"
}

// HasShiftWindow reports whether the entry describes a usable working window
func (e *WeeklyScheduleEntry) HasShiftWindow() bool {
	return e.IsWorking && e.ShiftStart != "" && e.ShiftEnd != ""
}
