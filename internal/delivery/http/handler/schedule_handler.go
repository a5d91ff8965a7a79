package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"
)

// ScheduleHandler serves the weekly template, the default slot duration and
// time-off periods of a doctor.
type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

func (h *ScheduleHandler) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	schedule, err := h.scheduleUsecase.GetWeeklySchedule(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to get weekly schedule")
		return
	}

	response.Success(w, http.StatusOK, "Weekly schedule retrieved successfully", schedule)
}

func (h *ScheduleHandler) SaveWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.SaveWeeklyScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.SaveWeeklySchedule(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to save weekly schedule")
		return
	}

	response.Success(w, http.StatusOK, "Weekly schedule saved successfully", schedule)
}

func (h *ScheduleHandler) UpdateSlotDuration(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.UpdateSlotDurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.UpdateSlotDuration(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to update slot duration")
		return
	}

	response.Success(w, http.StatusOK, "Slot duration updated successfully", schedule)
}

func (h *ScheduleHandler) CreateTimeOff(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.CreateTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	period, err := h.scheduleUsecase.CreateTimeOff(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to create time-off")
		return
	}

	response.Success(w, http.StatusCreated, "Time-off created successfully", period)
}

func (h *ScheduleHandler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	periods, err := h.scheduleUsecase.ListTimeOff(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to get time-off")
		return
	}

	response.Success(w, http.StatusOK, "Time-off retrieved successfully", periods)
}

func (h *ScheduleHandler) ReviewTimeOff(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}
	periodID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid time-off ID")
		return
	}

	var req dto.ReviewTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	period, err := h.scheduleUsecase.ReviewTimeOff(r.Context(), doctorID, periodID, &req)
	if err != nil {
		writeError(w, err, "Failed to review time-off")
		return
	}

	response.Success(w, http.StatusOK, "Time-off reviewed successfully", period)
}

func (h *ScheduleHandler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}
	periodID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid time-off ID")
		return
	}

	if err := h.scheduleUsecase.DeleteTimeOff(r.Context(), doctorID, periodID); err != nil {
		writeError(w, err, "Failed to delete time-off")
		return
	}

	response.Success(w, http.StatusOK, "Time-off deleted successfully", nil)
}
