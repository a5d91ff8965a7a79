package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// ConflictAnalysisRequest describes a proposed change. Only the fields of the
// chosen change type are read.
type ConflictAnalysisRequest struct {
	ChangeType      string                       `json:"change_type" validate:"required,oneof=schedule duration timeoff"`
	Schedule        []WeeklyScheduleEntryRequest `json:"schedule" validate:"required_if=ChangeType schedule,omitempty,max=7,dive"`
	DurationMinutes int                          `json:"duration_minutes" validate:"required_if=ChangeType duration,omitempty,gte=5,lte=240"`
	StartDate       string                       `json:"start_date" validate:"required_if=ChangeType timeoff,omitempty,date"`
	EndDate         string                       `json:"end_date" validate:"required_if=ChangeType timeoff,omitempty,date"`
}

type RegenerateRequest struct {
	ApprovedAppointmentIDs []uuid.UUID `json:"approved_appointment_ids"`
}

// Response DTOs

type ConflictingAppointment struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	HasQueueEntry bool      `json:"has_queue_entry"`
}

type ConflictSummary struct {
	AffectedCount  int     `json:"affected_count"`
	FirstDate      *string `json:"first_date,omitempty"`
	LastDate       *string `json:"last_date,omitempty"`
	PurgeableSlots int64   `json:"purgeable_slots"`
}

type ConflictAnalysisResponse struct {
	DoctorID   uuid.UUID                `json:"doctor_id"`
	ChangeType string                   `json:"change_type"`
	Conflicts  []ConflictingAppointment `json:"conflicts"`
	Summary    ConflictSummary          `json:"summary"`
}

type RegenerationFailure struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Reason        string    `json:"reason"`
}

// RegenerationResponse reports every step, including partial progress when a
// step failed.
type RegenerationResponse struct {
	DoctorID            uuid.UUID             `json:"doctor_id"`
	Cancelled           []uuid.UUID           `json:"cancelled"`
	AlreadyCancelled    []uuid.UUID           `json:"already_cancelled"`
	FailedCancellations []RegenerationFailure `json:"failed_cancellations"`
	PurgedSlots         int64                 `json:"purged_slots"`
	Generated           int                   `json:"generated"`
	SkippedDuplicates   int                   `json:"skipped_duplicates"`
	HorizonStart        string                `json:"horizon_start"`
	HorizonEnd          string                `json:"horizon_end"`
	StepErrors          map[string]string     `json:"step_errors,omitempty"`
}
