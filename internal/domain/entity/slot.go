package entity

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	SlotStatusBooked    SlotStatus = "BOOKED"
	SlotStatusBlocked   SlotStatus = "BLOCKED"
)

type SlotPeriod string

const (
	SlotPeriodMorning SlotPeriod = "MORNING"
	SlotPeriodEvening SlotPeriod = "EVENING"
	SlotPeriodNight   SlotPeriod = "NIGHT"
)

// Slot is one bookable time unit of a doctor on a date.
// (DoctorID, Date, StartTime) is unique.
type Slot struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"hospital_id"`
	DoctorID        uuid.UUID  `gorm:"type:uuid;not null" json:"doctor_id"`
	Date            time.Time  `gorm:"type:date;not null" json:"date"`
	StartTime       string     `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime         string     `gorm:"type:varchar(5);not null" json:"end_time"`
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`
	Period          SlotPeriod `gorm:"type:varchar(16);not null" json:"period"`
	Status          SlotStatus `gorm:"type:varchar(16);not null;default:'AVAILABLE'" json:"status"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Slot) TableName() string {
	return "slots"
}

func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// Key returns the deduplication key of the slot
func (s *Slot) Key() SlotKey {
	return SlotKey{DoctorID: s.DoctorID, Date: s.Date.Format(DateLayout), StartTime: s.StartTime}
}

// SlotKey identifies a slot independently of its id
type SlotKey struct {
	DoctorID  uuid.UUID
	Date      string
	StartTime string
}

// DateLayout is the wire and key format of calendar dates
const DateLayout = "2006-01-02"
