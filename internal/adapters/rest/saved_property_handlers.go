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

type SavedPropertyHandlers struct {
	saveUC    usecases_port.SavePropertyUseCasePort
	unsaveUC  usecases_port.UnsavePropertyUseCasePort
	listUC    usecases_port.ListSavedPropertiesUseCasePort
	listIDsUC usecases_port.ListSavedPropertyIDsUseCasePort
}

func NewSavedPropertyHandlers(
	saveUC usecases_port.SavePropertyUseCasePort,
	unsaveUC usecases_port.UnsavePropertyUseCasePort,
	listUC usecases_port.ListSavedPropertiesUseCasePort,
	listIDsUC usecases_port.ListSavedPropertyIDsUseCasePort,
) *SavedPropertyHandlers {
	return &SavedPropertyHandlers{
		saveUC:    saveUC,
		unsaveUC:  unsaveUC,
		listUC:    listUC,
		listIDsUC: listIDsUC,
	}
}

// Save handles POST /api/saved-properties
func (h *SavedPropertyHandlers) Save(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SaveProperty"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SavePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode save property body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'property_id' format")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"user_id":     claims.UserID.String(),
		"property_id": propertyID.String(),
	})
	handlerLogger.Info("Processing request to save property", nil)

	if err := h.saveUC.Execute(r.Context(), claims.UserID, propertyID); err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		handlerLogger.Error("SaveProperty use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to save property")
		return
	}

	handlerLogger.Info("Property saved successfully", nil)
	w.WriteHeader(http.StatusNoContent)
}

// Unsave handles DELETE /api/saved-properties/{propertyID}
func (h *SavedPropertyHandlers) Unsave(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UnsaveProperty"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"user_id":     claims.UserID.String(),
		"property_id": propertyID.String(),
	})
	handlerLogger.Info("Processing request to unsave property", nil)

	if err := h.unsaveUC.Execute(r.Context(), claims.UserID, propertyID); err != nil {
		handlerLogger.Error("UnsaveProperty use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to unsave property")
		return
	}

	handlerLogger.Info("Property unsaved successfully", nil)
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/saved-properties
func (h *SavedPropertyHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListSavedProperties"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// ids_only=true returns the saved set as bare IDs, the shape the
	// browse page needs for its bookmark toggles.
	if r.URL.Query().Get("ids_only") == "true" {
		ids, err := h.listIDsUC.Execute(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("ListSavedPropertyIDs use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to list saved properties")
			return
		}
		resp := SavedIDsResponse{PropertyIDs: make([]string, 0, len(ids))}
		for _, id := range ids {
			resp.PropertyIDs = append(resp.PropertyIDs, id.String())
		}
		RespondWithJSON(w, http.StatusOK, resp)
		return
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

	properties, err := h.listUC.Execute(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		logger.Error("ListSavedProperties use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list saved properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponses(properties))
}
