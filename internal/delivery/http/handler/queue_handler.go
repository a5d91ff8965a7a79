package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"
)

type QueueHandler struct {
	queueUsecase usecase.QueueUsecase
	validator    *validator.CustomValidator
}

func NewQueueHandler(queueUsecase usecase.QueueUsecase, validator *validator.CustomValidator) *QueueHandler {
	return &QueueHandler{
		queueUsecase: queueUsecase,
		validator:    validator,
	}
}

func (h *QueueHandler) AddWalkIn(w http.ResponseWriter, r *http.Request) {
	var req dto.AddWalkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	entry, err := h.queueUsecase.AddWalkIn(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to add walk-in")
		return
	}

	response.Success(w, http.StatusCreated, "Walk-in added to queue successfully", entry)
}

func (h *QueueHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	entry, err := h.queueUsecase.CheckIn(r.Context(), appointmentID)
	if err != nil {
		writeError(w, err, "Failed to check in appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment checked in successfully", entry)
}

func (h *QueueHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.queueUsecase.MarkNoShow(r.Context(), appointmentID)
	if err != nil {
		writeError(w, err, "Failed to mark no-show")
		return
	}

	response.Success(w, http.StatusOK, "Appointment marked as no-show", appointment)
}

func (h *QueueHandler) ListQueue(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	queue, err := h.queueUsecase.ListQueue(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err, "Failed to get queue")
		return
	}

	response.Success(w, http.StatusOK, "Queue retrieved successfully", queue)
}

func (h *QueueHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid queue entry ID")
		return
	}

	var req dto.UpdateQueueStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	entry, err := h.queueUsecase.UpdateStatus(r.Context(), entryID, &req)
	if err != nil {
		writeError(w, err, "Failed to update queue status")
		return
	}

	response.Success(w, http.StatusOK, "Queue status updated successfully", entry)
}

func (h *QueueHandler) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid queue entry ID")
		return
	}

	var req dto.UpdateQueuePriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	entry, err := h.queueUsecase.UpdatePriority(r.Context(), entryID, &req)
	if err != nil {
		writeError(w, err, "Failed to update queue priority")
		return
	}

	response.Success(w, http.StatusOK, "Queue priority updated successfully", entry)
}

func (h *QueueHandler) MoveToTop(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid queue entry ID")
		return
	}

	entry, err := h.queueUsecase.MoveToTop(r.Context(), entryID)
	if err != nil {
		writeError(w, err, "Failed to move queue entry")
		return
	}

	response.Success(w, http.StatusOK, "Queue entry moved to top successfully", entry)
}

func (h *QueueHandler) Remove(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid queue entry ID")
		return
	}

	if err := h.queueUsecase.Remove(r.Context(), entryID); err != nil {
		writeError(w, err, "Failed to remove queue entry")
		return
	}

	response.Success(w, http.StatusOK, "Queue entry removed successfully", nil)
}
