package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CommissionHandlers struct {
	listUC   usecases_port.ListCommissionsUseCasePort
	updateUC usecases_port.UpdateCommissionStatusUseCasePort
}

func NewCommissionHandlers(
	listUC usecases_port.ListCommissionsUseCasePort,
	updateUC usecases_port.UpdateCommissionStatusUseCasePort,
) *CommissionHandlers {
	return &CommissionHandlers{
		listUC:   listUC,
		updateUC: updateUC,
	}
}

// List handles GET /api/commissions
func (h *CommissionHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListCommissions"})

	filter := port.CommissionFilter{}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		if !domain.ValidCommissionStatus(statusStr) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'status' value")
			return
		}
		status := domain.CommissionStatus(statusStr)
		filter.Status = &status
	}
	if agentStr := r.URL.Query().Get("agent_id"); agentStr != "" {
		agentID, err := uuid.Parse(agentStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'agent_id' format")
			return
		}
		filter.AgentID = &agentID
	}

	limit, err := GetLimitOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'limit' value")
		return
	}
	offset, err := GetOffsetOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'offset' value")
		return
	}
	filter.Limit = limit
	filter.Offset = offset

	commissions, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		logger.Error("ListCommissions use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list commissions")
		return
	}

	RespondWithJSON(w, http.StatusOK, toCommissionResponses(commissions))
}

// Update handles PATCH /api/commissions/{commissionID}
func (h *CommissionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateCommissionStatus"})

	commissionID, err := uuid.Parse(chi.URLParam(r, "commissionID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid commission ID in URL")
		return
	}

	var req UpdateCommissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode update commission body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"commission_id": commissionID.String(),
		"status":        req.Status,
	})
	handlerLogger.Info("Processing request to update commission status", nil)

	commission, err := h.updateUC.Execute(r.Context(), commissionID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCommissionNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition):
			handlerLogger.Warn("Update rejected: status transition not allowed", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, "Field 'status' must be one of: pending, approved, paid, disputed")
		default:
			handlerLogger.Error("UpdateCommissionStatus use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update commission")
		}
		return
	}

	handlerLogger.Info("Commission status updated successfully", nil)
	RespondWithJSON(w, http.StatusOK, toCommissionResponse(commission))
}
