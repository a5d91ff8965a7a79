package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	SlotID         uuid.UUID `json:"slot_id" validate:"required"`
	PatientID      uuid.UUID `json:"patient_id" validate:"required"`
	ReasonForVisit string    `json:"reason_for_visit" validate:"omitempty,max=1000"`
	Notes          string    `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAppointmentRequest struct {
	Status             *string `json:"status" validate:"omitempty,oneof=CONFIRMED COMPLETED NO_SHOW CANCELLED"`
	ReasonForVisit     *string `json:"reason_for_visit" validate:"omitempty,max=1000"`
	Notes              *string `json:"notes" validate:"omitempty,max=2000"`
	CancellationReason string  `json:"cancellation_reason" validate:"omitempty,max=500"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// AppointmentListQuery is parsed from the query string
type AppointmentListQuery struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	DateFrom  string   `validate:"omitempty,date"`
	DateTo    string   `validate:"omitempty,date"`
	Statuses  []string `validate:"omitempty,dive,oneof=SCHEDULED CONFIRMED COMPLETED CANCELLED NO_SHOW"`
	Page      int      `validate:"gte=1"`
	Limit     int      `validate:"gte=1,lte=100"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	SlotID             *uuid.UUID `json:"slot_id,omitempty"`
	PatientID          uuid.UUID  `json:"patient_id"`
	PatientName        string     `json:"patient_name,omitempty"`
	DoctorID           uuid.UUID  `json:"doctor_id"`
	DoctorName         string     `json:"doctor_name,omitempty"`
	Date               string     `json:"date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	Status             string     `json:"status"`
	ReasonForVisit     string     `json:"reason_for_visit,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	PublicToken        string     `json:"public_token,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Page         int                   `json:"-"`
	Limit        int                   `json:"-"`
	Total        int64                 `json:"-"`
}
