package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

// Cancellation reasons recorded by the system
const (
	CancelReasonScheduleChange = "schedule change"
	CancelReasonByPatient      = "cancelled by patient"
	CancelReasonByStaff        = "cancelled by staff"
	CancelReasonRescheduled    = "rescheduled by patient"
)

// Appointment binds a patient to a slot
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"hospital_id"`
	SlotID             *uuid.UUID        `gorm:"type:uuid" json:"slot_id,omitempty"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           uuid.UUID         `gorm:"type:uuid;not null" json:"doctor_id"`
	Date               time.Time         `gorm:"type:date;not null" json:"date"`
	StartTime          string            `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime            string            `gorm:"type:varchar(5);not null" json:"end_time"`
	Status             AppointmentStatus `gorm:"type:varchar(16);not null;default:'SCHEDULED'" json:"status"`
	ReasonForVisit     string            `gorm:"type:text" json:"reason_for_visit,omitempty"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	CancellationReason string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	BookedByUserID     *uuid.UUID        `gorm:"type:uuid" json:"booked_by_user_id,omitempty"`
	PublicToken        string            `gorm:"type:varchar(64);not null" json:"-"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment still holds its slot
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCancelled
}

// OnSlot reports whether the appointment still references slotID. A
// cancelled appointment loses its reference once the slot is purged.
func (a *Appointment) OnSlot(slotID uuid.UUID) bool {
	return a.SlotID != nil && *a.SlotID == slotID
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsOpen reports whether the appointment can still be cancelled or rescheduled
func (a *Appointment) IsOpen() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
}

// DurationMinutes is the configured length of the booked slot
func (a *Appointment) DurationMinutes() int {
	start, err1 := time.Parse("15:04", a.StartTime)
	end, err2 := time.Parse("15:04", a.EndTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	d := int(end.Sub(start).Minutes())
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// Cancel marks the appointment cancelled in memory
func (a *Appointment) Cancel(reason string, at time.Time) {
	a.Status = AppointmentStatusCancelled
	a.CancellationReason = reason
	a.CancelledAt = &at
}
