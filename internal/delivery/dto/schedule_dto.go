package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type WeeklyScheduleEntryRequest struct {
	DayOfWeek  *int   `json:"day_of_week" validate:"required,gte=0,lte=6"` // 0 = Sunday
	IsWorking  bool   `json:"is_working"`
	ShiftStart string `json:"shift_start" validate:"required_if=IsWorking true,omitempty,clock"` // Format: HH:MM
	ShiftEnd   string `json:"shift_end" validate:"required_if=IsWorking true,omitempty,clock"`   // Format: HH:MM
}

type SaveWeeklyScheduleRequest struct {
	Entries []WeeklyScheduleEntryRequest `json:"entries" validate:"required,max=7,dive"`
}

type UpdateSlotDurationRequest struct {
	DurationMinutes int `json:"duration_minutes" validate:"required,gte=5,lte=240"`
}

type CreateTimeOffRequest struct {
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
	// ApprovalStatus lets an administrator record an already approved period.
	ApprovalStatus string `json:"approval_status" validate:"omitempty,oneof=PENDING APPROVED"`
}

type ReviewTimeOffRequest struct {
	ApprovalStatus string `json:"approval_status" validate:"required,oneof=APPROVED REJECTED"`
}

// Response DTOs

type WeeklyScheduleEntryResponse struct {
	DayOfWeek  int    `json:"day_of_week"`
	IsWorking  bool   `json:"is_working"`
	ShiftStart string `json:"shift_start,omitempty"`
	ShiftEnd   string `json:"shift_end,omitempty"`
}

type WeeklyScheduleResponse struct {
	DoctorID            uuid.UUID                     `json:"doctor_id"`
	SlotDurationMinutes int                           `json:"slot_duration_minutes"`
	Entries             []WeeklyScheduleEntryResponse `json:"entries"`
}

type TimeOffResponse struct {
	ID             uuid.UUID `json:"id"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Reason         string    `json:"reason,omitempty"`
	ApprovalStatus string    `json:"approval_status"`
	CreatedAt      time.Time `json:"created_at"`
}

type TimeOffListResponse struct {
	Periods []TimeOffResponse `json:"periods"`
	Total   int               `json:"total"`
}
