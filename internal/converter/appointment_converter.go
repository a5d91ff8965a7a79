package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		SlotID:             appointment.SlotID,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		Date:               appointment.Date.Format(entity.DateLayout),
		StartTime:          appointment.StartTime,
		EndTime:            appointment.EndTime,
		Status:             string(appointment.Status),
		ReasonForVisit:     appointment.ReasonForVisit,
		Notes:              appointment.Notes,
		CancellationReason: appointment.CancellationReason,
		CancelledAt:        appointment.CancelledAt,
		PublicToken:        appointment.PublicToken,
		CreatedAt:          appointment.CreatedAt,
	}

	// Include names if preloaded
	if appointment.Patient != nil {
		response.PatientName = appointment.Patient.FullName
	}
	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.FullName
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

func AppointmentToConflict(appointment *entity.Appointment, hasQueueEntry bool) dto.ConflictingAppointment {
	conflict := dto.ConflictingAppointment{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		Date:          appointment.Date.Format(entity.DateLayout),
		StartTime:     appointment.StartTime,
		EndTime:       appointment.EndTime,
		Status:        string(appointment.Status),
		HasQueueEntry: hasQueueEntry,
	}
	if appointment.Patient != nil {
		conflict.PatientName = appointment.Patient.FullName
	}
	return conflict
}

// AppointmentToPublicResponse exposes only what a token holder may see
func AppointmentToPublicResponse(appointment *entity.Appointment) *dto.PublicAppointmentResponse {
	response := &dto.PublicAppointmentResponse{
		Status:        string(appointment.Status),
		Date:          appointment.Date.Format(entity.DateLayout),
		StartTime:     appointment.StartTime,
		EndTime:       appointment.EndTime,
		CanCancel:     appointment.IsOpen(),
		CanReschedule: appointment.IsOpen(),
	}
	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.FullName
	}
	return response
}
