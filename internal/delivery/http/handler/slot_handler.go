package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
	validator   *validator.CustomValidator
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase, validator *validator.CustomValidator) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *SlotHandler) GenerateSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.GenerateSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.slotUsecase.GenerateSlots(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to generate slots")
		return
	}

	response.Success(w, http.StatusCreated, "Slots generated successfully", result)
}

// ListSlotsForDate defaults to the hospital's current day when ?date= is missing
func (h *SlotHandler) ListSlotsForDate(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	day, err := h.slotUsecase.ListSlotsForDate(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", day)
}

func (h *SlotHandler) BlockSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	slot, err := h.slotUsecase.BlockSlot(r.Context(), slotID)
	if err != nil {
		writeError(w, err, "Failed to block slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot blocked successfully", slot)
}

func (h *SlotHandler) UnblockSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	slot, err := h.slotUsecase.UnblockSlot(r.Context(), slotID)
	if err != nil {
		writeError(w, err, "Failed to unblock slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot unblocked successfully", slot)
}
