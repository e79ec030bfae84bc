package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ViewingHandlers struct {
	scheduleUC usecases_port.ScheduleViewingUseCasePort
	listUC     usecases_port.ListViewingsUseCasePort
	getUC      usecases_port.GetViewingUseCasePort
	updateUC   usecases_port.UpdateViewingUseCasePort
	outcomeUC  usecases_port.LogViewingOutcomeUseCasePort
	cancelUC   usecases_port.CancelViewingUseCasePort
}

func NewViewingHandlers(
	scheduleUC usecases_port.ScheduleViewingUseCasePort,
	listUC usecases_port.ListViewingsUseCasePort,
	getUC usecases_port.GetViewingUseCasePort,
	updateUC usecases_port.UpdateViewingUseCasePort,
	outcomeUC usecases_port.LogViewingOutcomeUseCasePort,
	cancelUC usecases_port.CancelViewingUseCasePort,
) *ViewingHandlers {
	return &ViewingHandlers{
		scheduleUC: scheduleUC,
		listUC:     listUC,
		getUC:      getUC,
		updateUC:   updateUC,
		outcomeUC:  outcomeUC,
		cancelUC:   cancelUC,
	}
}

// Schedule handles POST /api/viewings
func (h *ViewingHandlers) Schedule(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ScheduleViewing"})

	var req ScheduleViewingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode schedule viewing body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'property_id' format")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Field 'date' must be formatted as YYYY-MM-DD")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"property_id": propertyID.String(),
		"date":        req.Date,
		"time_slot":   req.TimeSlot,
	})
	handlerLogger.Info("Processing request to schedule viewing", nil)

	viewing, err := h.scheduleUC.Execute(r.Context(), usecases_port.ScheduleViewingInput{
		PropertyID:  propertyID,
		TenantName:  req.TenantName,
		TenantPhone: req.TenantPhone,
		Date:        date,
		TimeSlot:    req.TimeSlot,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("ScheduleViewing use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to schedule viewing")
		}
		return
	}

	handlerLogger.Info("Viewing scheduled successfully", port.Fields{"viewing_id": viewing.ID.String()})
	RespondWithJSON(w, http.StatusCreated, toViewingResponse(viewing))
}

// List handles GET /api/viewings
func (h *ViewingHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListViewings"})

	filter := port.ViewingFilter{}

	if propertyStr := r.URL.Query().Get("property_id"); propertyStr != "" {
		propertyID, err := uuid.Parse(propertyStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'property_id' format")
			return
		}
		filter.PropertyID = &propertyID
	}
	if whenStr := r.URL.Query().Get("when"); whenStr != "" {
		when := port.ViewingWhen(whenStr)
		if when != port.ViewingUpcoming && when != port.ViewingPast {
			WriteJSONError(w, http.StatusBadRequest, "Field 'when' must be 'upcoming' or 'past'")
			return
		}
		filter.When = &when
	}
	filter.IncludeCancelled = r.URL.Query().Get("include_cancelled") == "true"

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

	viewings, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		logger.Error("ListViewings use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list viewings")
		return
	}

	RespondWithJSON(w, http.StatusOK, toViewingResponses(viewings))
}

// Get handles GET /api/viewings/{viewingID}
func (h *ViewingHandlers) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetViewing"})

	viewingID, err := uuid.Parse(chi.URLParam(r, "viewingID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid viewing ID in URL")
		return
	}

	viewing, err := h.getUC.Execute(r.Context(), viewingID)
	if err != nil {
		if errors.Is(err, domain.ErrViewingNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("GetViewing use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get viewing")
		return
	}

	RespondWithJSON(w, http.StatusOK, toViewingResponse(viewing))
}

// Update handles PATCH /api/viewings/{viewingID}
func (h *ViewingHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateViewing"})

	viewingID, err := uuid.Parse(chi.URLParam(r, "viewingID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid viewing ID in URL")
		return
	}

	var req UpdateViewingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode update viewing body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := usecases_port.ViewingPatch{
		TimeSlot: req.TimeSlot,
		Notes:    req.Notes,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Field 'date' must be formatted as YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	handlerLogger := logger.WithFields(port.Fields{"viewing_id": viewingID.String()})
	handlerLogger.Info("Processing request to update viewing", nil)

	viewing, err := h.updateUC.Execute(r.Context(), viewingID, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrViewingNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrViewingCancelled), errors.Is(err, domain.ErrOutcomeAlreadySet):
			handlerLogger.Warn("Update rejected: viewing is closed", port.Fields{"reason": err.Error()})
			WriteJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("UpdateViewing use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update viewing")
		}
		return
	}

	handlerLogger.Info("Viewing updated successfully", nil)
	RespondWithJSON(w, http.StatusOK, toViewingResponse(viewing))
}

// LogOutcome handles POST /api/viewings/{viewingID}/outcome
func (h *ViewingHandlers) LogOutcome(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "LogViewingOutcome"})

	viewingID, err := uuid.Parse(chi.URLParam(r, "viewingID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid viewing ID in URL")
		return
	}

	var req LogOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode outcome body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"viewing_id": viewingID.String(),
		"outcome":    req.Outcome,
	})
	handlerLogger.Info("Processing request to log viewing outcome", nil)

	viewing, err := h.outcomeUC.Execute(r.Context(), viewingID, req.Outcome, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrViewingNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrViewingCancelled),
			errors.Is(err, domain.ErrOutcomeAlreadySet),
			errors.Is(err, domain.ErrViewingNotPast):
			handlerLogger.Warn("Outcome rejected", port.Fields{"reason": err.Error()})
			WriteJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, "Field 'outcome' must be one of: interested, not_interested, no_show, offer_made")
		default:
			handlerLogger.Error("LogViewingOutcome use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to log outcome")
		}
		return
	}

	handlerLogger.Info("Viewing outcome logged successfully", nil)
	RespondWithJSON(w, http.StatusOK, toViewingResponse(viewing))
}

// Cancel handles POST /api/viewings/{viewingID}/cancel
func (h *ViewingHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CancelViewing"})

	viewingID, err := uuid.Parse(chi.URLParam(r, "viewingID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid viewing ID in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"viewing_id": viewingID.String()})
	handlerLogger.Info("Processing request to cancel viewing", nil)

	viewing, err := h.cancelUC.Execute(r.Context(), viewingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrViewingNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrOutcomeAlreadySet):
			handlerLogger.Warn("Cancel rejected: outcome already logged", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		default:
			handlerLogger.Error("CancelViewing use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to cancel viewing")
		}
		return
	}

	handlerLogger.Info("Viewing cancelled successfully", nil)
	RespondWithJSON(w, http.StatusOK, toViewingResponse(viewing))
}
