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

type PropertyHandlers struct {
	createUC    usecases_port.CreatePropertyUseCasePort
	listUC      usecases_port.ListPropertiesUseCasePort
	getUC       usecases_port.GetPropertyUseCasePort
	updateUC    usecases_port.UpdatePropertyUseCasePort
	deleteUC    usecases_port.DeletePropertyUseCasePort
	addImagesUC usecases_port.AddPropertyImagesUseCasePort
	shareUC     usecases_port.SharePropertyUseCasePort
}

func NewPropertyHandlers(
	createUC usecases_port.CreatePropertyUseCasePort,
	listUC usecases_port.ListPropertiesUseCasePort,
	getUC usecases_port.GetPropertyUseCasePort,
	updateUC usecases_port.UpdatePropertyUseCasePort,
	deleteUC usecases_port.DeletePropertyUseCasePort,
	addImagesUC usecases_port.AddPropertyImagesUseCasePort,
	shareUC usecases_port.SharePropertyUseCasePort,
) *PropertyHandlers {
	return &PropertyHandlers{
		createUC:    createUC,
		listUC:      listUC,
		getUC:       getUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		addImagesUC: addImagesUC,
		shareUC:     shareUC,
	}
}

// Create handles POST /api/properties
func (h *PropertyHandlers) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProperty"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode create property body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// The owner defaults to the caller. An agent listing on behalf of an
	// owner passes owner_id and becomes the listing's agent.
	ownerID := claims.UserID
	var agentID *uuid.UUID
	if req.OwnerID != "" {
		parsed, err := uuid.Parse(req.OwnerID)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'owner_id' format")
			return
		}
		ownerID = parsed
	}
	if claims.Role == domain.RoleAgent {
		callerID := claims.UserID
		agentID = &callerID
	}

	handlerLogger := logger.WithFields(port.Fields{
		"owner_id": ownerID.String(),
		"title":    req.Title,
		"area":     req.Area,
	})
	handlerLogger.Info("Processing request to create property", nil)

	property, err := h.createUC.Execute(r.Context(), usecases_port.CreatePropertyInput{
		OwnerID:  ownerID,
		AgentID:  agentID,
		Title:    req.Title,
		Building: req.Building,
		Unit:     req.Unit,
		Area:     req.Area,
		Type:     req.Type,
		Beds:     req.Beds,
		Baths:    req.Baths,
		Sqft:     req.Sqft,
		Rent:     req.Rent,
		Cheques:  req.Cheques,
		Deposit:  req.Deposit,
		Images:   req.Images,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			handlerLogger.Warn("Create property failed: validation error", nil)
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		handlerLogger.Error("CreateProperty use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create property")
		return
	}

	handlerLogger.Info("Property created successfully", port.Fields{"property_id": property.ID.String()})
	RespondWithJSON(w, http.StatusCreated, toPropertyResponse(property))
}

// List handles GET /api/properties
func (h *PropertyHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

	filter := port.PropertyFilter{}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		if !domain.ValidPropertyStatus(statusStr) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'status' value")
			return
		}
		status := domain.PropertyStatus(statusStr)
		filter.Status = &status
	}
	if ownerStr := r.URL.Query().Get("owner_id"); ownerStr != "" {
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'owner_id' format")
			return
		}
		filter.OwnerID = &ownerID
	}
	if agentStr := r.URL.Query().Get("agent_id"); agentStr != "" {
		agentID, err := uuid.Parse(agentStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'agent_id' format")
			return
		}
		filter.AgentID = &agentID
	}
	if area := r.URL.Query().Get("area"); area != "" {
		filter.Area = &area
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

	properties, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		logger.Error("ListProperties use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponses(properties))
}

// Get handles GET /api/properties/{propertyID}
func (h *PropertyHandlers) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProperty"})

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		logger.Warn("Invalid property ID format in URL", port.Fields{"provided_id": chi.URLParam(r, "propertyID")})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID in URL")
		return
	}

	property, err := h.getUC.Execute(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("GetProperty use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get property")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(property))
}

// Update handles PATCH /api/properties/{propertyID}
func (h *PropertyHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty"})

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID in URL")
		return
	}

	var req UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode update property body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"property_id": propertyID.String()})
	handlerLogger.Info("Processing request to update property", nil)

	property, err := h.updateUC.Execute(r.Context(), propertyID, usecases_port.PropertyPatch{
		Title:    req.Title,
		Building: req.Building,
		Unit:     req.Unit,
		Area:     req.Area,
		Type:     req.Type,
		Beds:     req.Beds,
		Baths:    req.Baths,
		Sqft:     req.Sqft,
		Rent:     req.Rent,
		Cheques:  req.Cheques,
		Deposit:  req.Deposit,
		Status:   req.Status,
		Images:   req.Images,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition):
			handlerLogger.Warn("Update rejected: status transition not allowed", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("UpdateProperty use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update property")
		}
		return
	}

	handlerLogger.Info("Property updated successfully", nil)
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(property))
}

// Delete handles DELETE /api/properties/{propertyID}
func (h *PropertyHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProperty"})

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"property_id": propertyID.String()})
	handlerLogger.Info("Processing request to delete property", nil)

	if err := h.deleteUC.Execute(r.Context(), propertyID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrContractActiveExists):
			handlerLogger.Warn("Delete rejected: property has an active contract", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		default:
			handlerLogger.Error("DeleteProperty use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to delete property")
		}
		return
	}

	handlerLogger.Info("Property deleted successfully", nil)
	w.WriteHeader(http.StatusNoContent)
}

// AddImages handles POST /api/properties/{propertyID}/images
func (h *PropertyHandlers) AddImages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddPropertyImages"})

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID in URL")
		return
	}

	var req AddImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode add images body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"property_id": propertyID.String(),
		"image_count": len(req.Images),
	})
	handlerLogger.Info("Processing request to add property images", nil)

	property, err := h.addImagesUC.Execute(r.Context(), propertyID, req.Images)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, "Field 'images' must contain at least one URL")
		default:
			handlerLogger.Error("AddPropertyImages use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to add images")
		}
		return
	}

	handlerLogger.Info("Property images added successfully", nil)
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(property))
}

// Share handles GET /api/properties/{propertyID}/share
func (h *PropertyHandlers) Share(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ShareProperty"})

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID in URL")
		return
	}

	url, err := h.shareUC.Execute(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("ShareProperty use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to build share link")
		return
	}

	RespondWithJSON(w, http.StatusOK, ShareResponse{URL: url})
}
