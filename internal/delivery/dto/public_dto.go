package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type PublicRescheduleRequest struct {
	SlotID uuid.UUID `json:"slot_id" validate:"required"`
}

// Response DTOs

type PublicSlotResponse struct {
	SlotID    uuid.UUID `json:"slot_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Period    string    `json:"period"`
}

// PublicAppointmentResponse carries no internal ids besides offered slots
type PublicAppointmentResponse struct {
	Status         string               `json:"status"`
	Date           string               `json:"date"`
	StartTime      string               `json:"start_time"`
	EndTime        string               `json:"end_time"`
	DoctorName     string               `json:"doctor_name,omitempty"`
	CanCancel      bool                 `json:"can_cancel"`
	CanReschedule  bool                 `json:"can_reschedule"`
	AvailableSlots []PublicSlotResponse `json:"available_slots,omitempty"`
}

type PublicRescheduleResponse struct {
	Appointment PublicAppointmentResponse `json:"appointment"`
	PublicToken string                    `json:"public_token"`
}

type PublicQueueResponse struct {
	QueueNumber          int    `json:"queue_number"`
	Status               string `json:"status"`
	Priority             string `json:"priority"`
	Date                 string `json:"date"`
	Position             *int   `json:"position,omitempty"`
	EstimatedWaitMinutes *int   `json:"estimated_wait_minutes,omitempty"`
	DoctorCheckedIn      bool   `json:"doctor_checked_in"`
	CanCancel            bool   `json:"can_cancel"`
}
