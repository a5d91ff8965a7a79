package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

// PublicHandler serves the unauthenticated token links handed to patients.
type PublicHandler struct {
	publicUsecase usecase.PublicUsecase
	validator     *validator.CustomValidator
}

func NewPublicHandler(publicUsecase usecase.PublicUsecase, validator *validator.CustomValidator) *PublicHandler {
	return &PublicHandler{
		publicUsecase: publicUsecase,
		validator:     validator,
	}
}

func (h *PublicHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	appointment, err := h.publicUsecase.GetAppointment(r.Context(), token, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *PublicHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	appointment, err := h.publicUsecase.CancelAppointment(r.Context(), token)
	if err != nil {
		writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *PublicHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req dto.PublicRescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.publicUsecase.RescheduleAppointment(r.Context(), token, &req)
	if err != nil {
		writeError(w, err, "Failed to reschedule appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", result)
}

func (h *PublicHandler) GetQueueEntry(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	entry, err := h.publicUsecase.GetQueueEntry(r.Context(), token)
	if err != nil {
		writeError(w, err, "Failed to get queue status")
		return
	}

	response.Success(w, http.StatusOK, "Queue status retrieved successfully", entry)
}

func (h *PublicHandler) CancelQueueEntry(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	entry, err := h.publicUsecase.CancelQueueEntry(r.Context(), token)
	if err != nil {
		writeError(w, err, "Failed to leave queue")
		return
	}

	response.Success(w, http.StatusOK, "You have left the queue", entry)
}
