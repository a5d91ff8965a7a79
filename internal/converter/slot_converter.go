package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// SlotToResponse converts a Slot entity to SlotResponse DTO
func SlotToResponse(slot *entity.Slot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.SlotResponse{
		ID:              slot.ID,
		DoctorID:        slot.DoctorID,
		Date:            slot.Date.Format(entity.DateLayout),
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		DurationMinutes: slot.DurationMinutes,
		Period:          string(slot.Period),
		Status:          string(slot.Status),
	}
}

// SlotsToDay groups slots by period and counts them by status
func SlotsToDay(slots []entity.Slot) (stats dto.SlotStats, morning, evening, night []dto.SlotResponse) {
	morning = []dto.SlotResponse{}
	evening = []dto.SlotResponse{}
	night = []dto.SlotResponse{}

	for i := range slots {
		resp := *SlotToResponse(&slots[i])
		switch slots[i].Period {
		case entity.SlotPeriodMorning:
			morning = append(morning, resp)
		case entity.SlotPeriodEvening:
			evening = append(evening, resp)
		default:
			night = append(night, resp)
		}

		stats.Total++
		switch slots[i].Status {
		case entity.SlotStatusAvailable:
			stats.Available++
		case entity.SlotStatusBooked:
			stats.Booked++
		case entity.SlotStatusBlocked:
			stats.Blocked++
		}
	}
	return stats, morning, evening, night
}

func SlotToPublicResponse(slot *entity.Slot) dto.PublicSlotResponse {
	return dto.PublicSlotResponse{
		SlotID:    slot.ID,
		Date:      slot.Date.Format(entity.DateLayout),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Period:    string(slot.Period),
	}
}
