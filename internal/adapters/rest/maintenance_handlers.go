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

type MaintenanceHandlers struct {
	createUC usecases_port.CreateMaintenanceRequestUseCasePort
	listUC   usecases_port.ListMaintenanceUseCasePort
	getUC    usecases_port.GetMaintenanceUseCasePort
	updateUC usecases_port.UpdateMaintenanceUseCasePort
}

func NewMaintenanceHandlers(
	createUC usecases_port.CreateMaintenanceRequestUseCasePort,
	listUC usecases_port.ListMaintenanceUseCasePort,
	getUC usecases_port.GetMaintenanceUseCasePort,
	updateUC usecases_port.UpdateMaintenanceUseCasePort,
) *MaintenanceHandlers {
	return &MaintenanceHandlers{
		createUC: createUC,
		listUC:   listUC,
		getUC:    getUC,
		updateUC: updateUC,
	}
}

// Create handles POST /api/maintenance
func (h *MaintenanceHandlers) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateMaintenanceRequest"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateMaintenanceRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode create maintenance body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'property_id' format")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"property_id": propertyID.String(),
		"category":    req.Category,
		"priority":    req.Priority,
	})
	handlerLogger.Info("Processing request to create maintenance request", nil)

	request, err := h.createUC.Execute(r.Context(), usecases_port.CreateMaintenanceInput{
		PropertyID:  propertyID,
		TenantID:    claims.UserID,
		Category:    req.Category,
		Priority:    req.Priority,
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("CreateMaintenanceRequest use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to create maintenance request")
		}
		return
	}

	handlerLogger.Info("Maintenance request created successfully", port.Fields{"request_id": request.ID.String()})
	RespondWithJSON(w, http.StatusCreated, toMaintenanceResponse(request))
}

// List handles GET /api/maintenance
func (h *MaintenanceHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListMaintenance"})

	filter := port.MaintenanceFilter{}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		if !domain.ValidMaintenanceStatus(statusStr) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'status' value")
			return
		}
		status := domain.MaintenanceStatus(statusStr)
		filter.Status = &status
	}
	if propertyStr := r.URL.Query().Get("property_id"); propertyStr != "" {
		propertyID, err := uuid.Parse(propertyStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'property_id' format")
			return
		}
		filter.PropertyID = &propertyID
	}
	if tenantStr := r.URL.Query().Get("tenant_id"); tenantStr != "" {
		tenantID, err := uuid.Parse(tenantStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'tenant_id' format")
			return
		}
		filter.TenantID = &tenantID
	}
	if ownerStr := r.URL.Query().Get("owner_id"); ownerStr != "" {
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'owner_id' format")
			return
		}
		filter.OwnerID = &ownerID
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

	requests, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		logger.Error("ListMaintenance use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list maintenance requests")
		return
	}

	RespondWithJSON(w, http.StatusOK, toMaintenanceResponses(requests))
}

// Get handles GET /api/maintenance/{requestID}
func (h *MaintenanceHandlers) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetMaintenance"})

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request ID in URL")
		return
	}

	request, err := h.getUC.Execute(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, domain.ErrMaintenanceNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("GetMaintenance use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get maintenance request")
		return
	}

	RespondWithJSON(w, http.StatusOK, toMaintenanceResponse(request))
}

// Update handles PATCH /api/maintenance/{requestID}
func (h *MaintenanceHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateMaintenance"})

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request ID in URL")
		return
	}

	var req UpdateMaintenanceRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode update maintenance body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"request_id": requestID.String()})
	handlerLogger.Info("Processing request to update maintenance request", nil)

	request, err := h.updateUC.Execute(r.Context(), requestID, usecases_port.MaintenancePatch{
		Status: req.Status,
		Notes:  req.Notes,
		Cost:   req.Cost,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMaintenanceNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition):
			handlerLogger.Warn("Update rejected: status transition not allowed", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("UpdateMaintenance use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update maintenance request")
		}
		return
	}

	handlerLogger.Info("Maintenance request updated successfully", nil)
	RespondWithJSON(w, http.StatusOK, toMaintenanceResponse(request))
}
