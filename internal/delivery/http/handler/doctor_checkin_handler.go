package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"
)

type DoctorCheckinHandler struct {
	checkinUsecase usecase.DoctorCheckinUsecase
	validator      *validator.CustomValidator
}

func NewDoctorCheckinHandler(checkinUsecase usecase.DoctorCheckinUsecase, validator *validator.CustomValidator) *DoctorCheckinHandler {
	return &DoctorCheckinHandler{
		checkinUsecase: checkinUsecase,
		validator:      validator,
	}
}

// CheckIn marks the doctor present for today. A body of {"status":"ON_BREAK"}
// records a break instead.
func (h *DoctorCheckinHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	status := entity.CheckinStatusCheckedIn
	if req.Status != "" {
		status = entity.CheckinStatus(req.Status)
	}
	h.setStatus(w, r, status)
}

func (h *DoctorCheckinHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, entity.CheckinStatusCheckedOut)
}

func (h *DoctorCheckinHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	checkin, err := h.checkinUsecase.GetStatus(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to get doctor status")
		return
	}

	response.Success(w, http.StatusOK, "Doctor status retrieved successfully", checkin)
}

func (h *DoctorCheckinHandler) setStatus(w http.ResponseWriter, r *http.Request, status entity.CheckinStatus) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	checkin, err := h.checkinUsecase.SetStatus(r.Context(), doctorID, status)
	if err != nil {
		writeError(w, err, "Failed to update doctor status")
		return
	}

	response.Success(w, http.StatusOK, "Doctor status updated successfully", checkin)
}
