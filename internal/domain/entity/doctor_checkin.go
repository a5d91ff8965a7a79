package entity

import (
	"time"

	"github.com/google/uuid"
)

type CheckinStatus string

const (
	CheckinStatusNotCheckedIn CheckinStatus = "NOT_CHECKED_IN"
	CheckinStatusCheckedIn    CheckinStatus = "CHECKED_IN"
	CheckinStatusOnBreak      CheckinStatus = "ON_BREAK"
	CheckinStatusCheckedOut   CheckinStatus = "CHECKED_OUT"
)

// DoctorDailyCheckin is the doctor's presence for one service day
type DoctorDailyCheckin struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID     `gorm:"type:uuid;not null" json:"doctor_id"`
	Date      time.Time     `gorm:"type:date;not null" json:"date"`
	Status    CheckinStatus `gorm:"type:varchar(16);not null;default:'NOT_CHECKED_IN'" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DoctorDailyCheckin) TableName() string {
	return "doctor_daily_checkins"
}

// IsPresent reports whether the doctor is in for the day, on break included
func (c *DoctorDailyCheckin) IsPresent() bool {
	return c.Status == CheckinStatusCheckedIn || c.Status == CheckinStatusOnBreak
}
