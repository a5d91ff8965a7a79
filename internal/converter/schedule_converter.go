package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// WeeklyScheduleFromRequest converts request entries to entities for a doctor
func WeeklyScheduleFromRequest(doctorID uuid.UUID, entries []dto.WeeklyScheduleEntryRequest) []entity.WeeklyScheduleEntry {
	result := make([]entity.WeeklyScheduleEntry, 0, len(entries))
	for _, e := range entries {
		entry := entity.WeeklyScheduleEntry{
			DoctorID:  doctorID,
			IsWorking: e.IsWorking,
		}
		if e.DayOfWeek != nil {
			entry.DayOfWeek = *e.DayOfWeek
		}
		if e.IsWorking {
			entry.ShiftStart = e.ShiftStart
			entry.ShiftEnd = e.ShiftEnd
		}
		result = append(result, entry)
	}
	return result
}

func WeeklyScheduleToResponse(doctor *entity.DoctorProfile, entries []entity.WeeklyScheduleEntry) *dto.WeeklyScheduleResponse {
	response := &dto.WeeklyScheduleResponse{
		DoctorID:            doctor.ID,
		SlotDurationMinutes: doctor.SlotDurationMinutes,
		Entries:             make([]dto.WeeklyScheduleEntryResponse, len(entries)),
	}
	for i, e := range entries {
		response.Entries[i] = dto.WeeklyScheduleEntryResponse{
			DayOfWeek:  e.DayOfWeek,
			IsWorking:  e.IsWorking,
			ShiftStart: e.ShiftStart,
			ShiftEnd:   e.ShiftEnd,
		}
	}
	return response
}

// TimeOffToResponse converts a TimeOffPeriod entity to TimeOffResponse DTO
func TimeOffToResponse(period *entity.TimeOffPeriod) *dto.TimeOffResponse {
	if period == nil {
		return nil
	}

	return &dto.TimeOffResponse{
		ID:             period.ID,
		DoctorID:       period.DoctorID,
		StartDate:      period.StartDate.Format(entity.DateLayout),
		EndDate:        period.EndDate.Format(entity.DateLayout),
		Reason:         period.Reason,
		ApprovalStatus: string(period.ApprovalStatus),
		CreatedAt:      period.CreatedAt,
	}
}

func TimeOffsToResponses(periods []entity.TimeOffPeriod) []dto.TimeOffResponse {
	responses := make([]dto.TimeOffResponse, len(periods))
	for i := range periods {
		responses[i] = *TimeOffToResponse(&periods[i])
	}
	return responses
}
