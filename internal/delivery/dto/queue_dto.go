package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AddWalkInRequest struct {
	DoctorID   uuid.UUID  `json:"doctor_id" validate:"required"`
	PatientID  *uuid.UUID `json:"patient_id"`
	WalkInName string     `json:"walk_in_name" validate:"required_without=PatientID,max=255"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=NORMAL URGENT EMERGENCY"`
}

type UpdateQueueStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=QUEUED WAITING WITH_DOCTOR COMPLETED NO_SHOW LEFT"`
}

type UpdateQueuePriorityRequest struct {
	Priority string `json:"priority" validate:"required,oneof=NORMAL URGENT EMERGENCY"`
}

// Response DTOs

type QueueEntryResponse struct {
	ID                      uuid.UUID  `json:"id"`
	DoctorID                uuid.UUID  `json:"doctor_id"`
	Date                    string     `json:"date"`
	QueueNumber             int        `json:"queue_number"`
	EntryType               string     `json:"entry_type"`
	AppointmentID           *uuid.UUID `json:"appointment_id,omitempty"`
	PatientID               *uuid.UUID `json:"patient_id,omitempty"`
	DisplayName             string     `json:"display_name"`
	Status                  string     `json:"status"`
	Priority                string     `json:"priority"`
	CheckedInAt             time.Time  `json:"checked_in_at"`
	CalledAt                *time.Time `json:"called_at,omitempty"`
	WithDoctorAt            *time.Time `json:"with_doctor_at,omitempty"`
	CompletedAt             *time.Time `json:"completed_at,omitempty"`
	WaitTimeMinutes         *int       `json:"wait_time_minutes,omitempty"`
	ConsultationTimeMinutes *int       `json:"consultation_time_minutes,omitempty"`
	Position                *int       `json:"position,omitempty"`
	EstimatedWaitMinutes    *int       `json:"estimated_wait_minutes,omitempty"`
	PublicToken             string     `json:"public_token,omitempty"`
}

type QueueListResponse struct {
	DoctorID                   uuid.UUID            `json:"doctor_id"`
	Date                       string               `json:"date"`
	DoctorStatus               string               `json:"doctor_status"`
	Entries                    []QueueEntryResponse `json:"entries"`
	Waiting                    int                  `json:"waiting"`
	AverageConsultationMinutes *float64             `json:"average_consultation_minutes,omitempty"`
}

type DoctorCheckinRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=CHECKED_IN ON_BREAK"`
}

type DoctorCheckinResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Status   string    `json:"status"`
}
