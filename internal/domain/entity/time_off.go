package entity

import (
	"time"

	"github.com/google/uuid"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// TimeOffPeriod is an inclusive date range during which a doctor does not work.
// Only approved periods suppress slot generation.
type TimeOffPeriod struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	StartDate      time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time      `gorm:"type:date;not null" json:"end_date"`
	Reason         string         `gorm:"type:text" json:"reason,omitempty"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(16);not null;default:'PENDING'" json:"approval_status"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TimeOffPeriod) TableName() string {
	return "time_off_periods"
}

func (t *TimeOffPeriod) IsApproved() bool {
	return t.ApprovalStatus == ApprovalStatusApproved
}

// Covers reports whether date falls inside the period, both ends included
func (t *TimeOffPeriod) Covers(date time.Time) bool {
	return !date.Before(t.StartDate) && !date.After(t.EndDate)
}
