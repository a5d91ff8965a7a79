package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// QueueEntryToResponse converts a QueueEntry entity to QueueEntryResponse DTO
func QueueEntryToResponse(entry *entity.QueueEntry) *dto.QueueEntryResponse {
	if entry == nil {
		return nil
	}

	return &dto.QueueEntryResponse{
		ID:                      entry.ID,
		DoctorID:                entry.DoctorID,
		Date:                    entry.Date.Format(entity.DateLayout),
		QueueNumber:             entry.QueueNumber,
		EntryType:               string(entry.EntryType),
		AppointmentID:           entry.AppointmentID,
		PatientID:               entry.PatientID,
		DisplayName:             entry.DisplayName(),
		Status:                  string(entry.Status),
		Priority:                string(entry.Priority),
		CheckedInAt:             entry.CheckedInAt,
		CalledAt:                entry.CalledAt,
		WithDoctorAt:            entry.WithDoctorAt,
		CompletedAt:             entry.CompletedAt,
		WaitTimeMinutes:         entry.WaitTimeMinutes,
		ConsultationTimeMinutes: entry.ConsultationTimeMinutes,
		PublicToken:             entry.PublicToken,
	}
}
