package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type GenerateSlotsRequest struct {
	StartDate       string `json:"start_date" validate:"required,date"` // Format: YYYY-MM-DD
	EndDate         string `json:"end_date" validate:"required,date"`   // Format: YYYY-MM-DD
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=5,lte=240"`
}

// Response DTOs

type GenerateSlotsResponse struct {
	DoctorID          uuid.UUID `json:"doctor_id"`
	StartDate         string    `json:"start_date"`
	EndDate           string    `json:"end_date"`
	DurationMinutes   int       `json:"duration_minutes"`
	Generated         int       `json:"generated"`
	SkippedDuplicates int       `json:"skipped_duplicates"`
}

type SlotResponse struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Period          string    `json:"period"`
	Status          string    `json:"status"`
}

type SlotStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Booked    int `json:"booked"`
	Blocked   int `json:"blocked"`
}

// SlotDayResponse groups one doctor's slots of a date by period
type SlotDayResponse struct {
	DoctorID  uuid.UUID      `json:"doctor_id"`
	Date      string         `json:"date"`
	IsTimeOff bool           `json:"is_time_off"`
	Stats     SlotStats      `json:"stats"`
	Morning   []SlotResponse `json:"morning"`
	Evening   []SlotResponse `json:"evening"`
	Night     []SlotResponse `json:"night"`
	// CancelledAppointments is only filled on time-off days, as candidates
	// for rebooking.
	CancelledAppointments []AppointmentResponse `json:"cancelled_appointments,omitempty"`
}
