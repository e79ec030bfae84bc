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

type ApplicationHandlers struct {
	submitUC usecases_port.SubmitApplicationUseCasePort
	listUC   usecases_port.ListApplicationsUseCasePort
	decideUC usecases_port.DecideApplicationUseCasePort
}

func NewApplicationHandlers(
	submitUC usecases_port.SubmitApplicationUseCasePort,
	listUC usecases_port.ListApplicationsUseCasePort,
	decideUC usecases_port.DecideApplicationUseCasePort,
) *ApplicationHandlers {
	return &ApplicationHandlers{
		submitUC: submitUC,
		listUC:   listUC,
		decideUC: decideUC,
	}
}

// Submit handles POST /api/applications
func (h *ApplicationHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitApplication"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode submit application body", port.Fields{"error": err.Error()})
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
		"tenant_id":   claims.UserID.String(),
	})
	handlerLogger.Info("Processing request to submit application", nil)

	application, err := h.submitUC.Execute(r.Context(), propertyID, claims.UserID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound), errors.Is(err, domain.ErrUserNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("SubmitApplication use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to submit application")
		}
		return
	}

	handlerLogger.Info("Application submitted successfully", port.Fields{"application_id": application.ID.String()})
	RespondWithJSON(w, http.StatusCreated, toApplicationResponse(application))
}

// List handles GET /api/applications
func (h *ApplicationHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListApplications"})

	filter := port.ApplicationFilter{}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		if !domain.ValidApplicationStatus(statusStr) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'status' value")
			return
		}
		status := domain.ApplicationStatus(statusStr)
		filter.Status = &status
	}
	if tenantStr := r.URL.Query().Get("tenant_id"); tenantStr != "" {
		tenantID, err := uuid.Parse(tenantStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'tenant_id' format")
			return
		}
		filter.TenantID = &tenantID
	}
	if propertyStr := r.URL.Query().Get("property_id"); propertyStr != "" {
		propertyID, err := uuid.Parse(propertyStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'property_id' format")
			return
		}
		filter.PropertyID = &propertyID
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

	applications, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		logger.Error("ListApplications use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list applications")
		return
	}

	RespondWithJSON(w, http.StatusOK, toApplicationResponses(applications))
}

// Approve handles POST /api/applications/{applicationID}/approve
func (h *ApplicationHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, domain.ApplicationApproved)
}

// Reject handles POST /api/applications/{applicationID}/reject
func (h *ApplicationHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, domain.ApplicationRejected)
}

// Withdraw handles POST /api/applications/{applicationID}/withdraw
func (h *ApplicationHandlers) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, domain.ApplicationWithdrawn)
}

func (h *ApplicationHandlers) decide(w http.ResponseWriter, r *http.Request, decision domain.ApplicationStatus) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DecideApplication"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	applicationID, err := uuid.Parse(chi.URLParam(r, "applicationID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid application ID in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"application_id": applicationID.String(),
		"decision":       string(decision),
	})
	handlerLogger.Info("Processing application decision", nil)

	application, contract, err := h.decideUC.Execute(r.Context(), applicationID, decision, claims)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrApplicationNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrForbidden):
			handlerLogger.Warn("Decision rejected: not permitted for this caller", nil)
			WriteJSONError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition):
			handlerLogger.Warn("Decision rejected: application already decided", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		default:
			handlerLogger.Error("DecideApplication use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to decide application")
		}
		return
	}

	resp := ApplicationDecisionResponse{Application: toApplicationResponse(application)}
	if contract != nil {
		contractResp := toContractResponse(contract)
		resp.Contract = &contractResp
	}

	handlerLogger.Info("Application decided successfully", nil)
	RespondWithJSON(w, http.StatusOK, resp)
}
