package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/sirupsen/logrus"
)

type RegenerationHandler struct {
	regenerationUsecase usecase.RegenerationUsecase
	validator           *validator.CustomValidator
	log                 *logrus.Logger
}

func NewRegenerationHandler(regenerationUsecase usecase.RegenerationUsecase, validator *validator.CustomValidator, log *logrus.Logger) *RegenerationHandler {
	return &RegenerationHandler{
		regenerationUsecase: regenerationUsecase,
		validator:           validator,
		log:                 log,
	}
}

// AnalyzeConflicts is read-only, it reports what a proposed change would break
func (h *RegenerationHandler) AnalyzeConflicts(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.ConflictAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	analysis, err := h.regenerationUsecase.AnalyzeConflicts(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to analyze conflicts")
		return
	}

	response.Success(w, http.StatusOK, "Conflicts analyzed successfully", analysis)
}

func (h *RegenerationHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.regenerationUsecase.Regenerate(r.Context(), doctorID, &req)
	if errors.Is(err, usecase.ErrRegenerationIncomplete) {
		h.log.WithField("doctor_id", doctorID).Warnf("Regeneration incomplete: %v", result.StepErrors)
		response.JSON(w, http.StatusMultiStatus, response.Response{
			Success: false,
			Message: err.Error(),
			Data:    result,
		})
		return
	}
	if err != nil {
		writeError(w, err, "Failed to regenerate slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots regenerated successfully", result)
}
