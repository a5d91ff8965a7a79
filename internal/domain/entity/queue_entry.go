package entity

import (
	"time"

	"github.com/google/uuid"
)

type QueueStatus string

const (
	QueueStatusQueued     QueueStatus = "QUEUED"
	QueueStatusWaiting    QueueStatus = "WAITING"
	QueueStatusWithDoctor QueueStatus = "WITH_DOCTOR"
	QueueStatusCompleted  QueueStatus = "COMPLETED"
	QueueStatusNoShow     QueueStatus = "NO_SHOW"
	QueueStatusLeft       QueueStatus = "LEFT"
)

type QueueEntryType string

const (
	QueueEntryTypeWalkIn    QueueEntryType = "WALK_IN"
	QueueEntryTypeScheduled QueueEntryType = "SCHEDULED"
)

type QueuePriority string

const (
	QueuePriorityNormal    QueuePriority = "NORMAL"
	QueuePriorityUrgent    QueuePriority = "URGENT"
	QueuePriorityEmergency QueuePriority = "EMERGENCY"
)

// QueueEntry is one patient in a doctor's same-day queue. Entries are ordered
// by QueueNumber; promotion rewrites numbers instead of adding a sort key.
type QueueEntry struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"hospital_id"`
	DoctorID                uuid.UUID      `gorm:"type:uuid;not null" json:"doctor_id"`
	Date                    time.Time      `gorm:"type:date;not null" json:"date"`
	QueueNumber             int            `gorm:"not null" json:"queue_number"`
	EntryType               QueueEntryType `gorm:"type:varchar(16);not null" json:"entry_type"`
	AppointmentID           *uuid.UUID     `gorm:"type:uuid" json:"appointment_id,omitempty"`
	PatientID               *uuid.UUID     `gorm:"type:uuid" json:"patient_id,omitempty"`
	WalkInName              string         `gorm:"type:varchar(255)" json:"walk_in_name,omitempty"`
	Status                  QueueStatus    `gorm:"type:varchar(16);not null;default:'QUEUED'" json:"status"`
	Priority                QueuePriority  `gorm:"type:varchar(16);not null;default:'NORMAL'" json:"priority"`
	CheckedInAt             time.Time      `gorm:"not null" json:"checked_in_at"`
	CalledAt                *time.Time     `json:"called_at,omitempty"`
	WithDoctorAt            *time.Time     `json:"with_doctor_at,omitempty"`
	CompletedAt             *time.Time     `json:"completed_at,omitempty"`
	WaitTimeMinutes         *int           `json:"wait_time_minutes,omitempty"`
	ConsultationTimeMinutes *int           `json:"consultation_time_minutes,omitempty"`
	PublicToken             string         `gorm:"type:varchar(64);not null" json:"-"`
	CreatedAt               time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient     *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Appointment *Appointment    `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (QueueEntry) TableName() string {
	return "queue_entries"
}

// IsTerminal reports whether the entry can no longer change
func (q *QueueEntry) IsTerminal() bool {
	switch q.Status {
	case QueueStatusCompleted, QueueStatusNoShow, QueueStatusLeft:
		return true
	}
	return false
}

// IsActive reports whether the entry still occupies the doctor's line
func (q *QueueEntry) IsActive() bool {
	return !q.IsTerminal()
}

// DisplayName is the patient's name or the walk-in label
func (q *QueueEntry) DisplayName() string {
	if q.Patient != nil && q.Patient.FullName != "" {
		return q.Patient.FullName
	}
	return q.WalkInName
}
