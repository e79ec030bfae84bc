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

type UserHandlers struct {
	getUC        usecases_port.GetUserUseCasePort
	updateUC     usecases_port.UpdateUserUseCasePort
	listUC       usecases_port.ListUsersUseCasePort
	verifyReraUC usecases_port.VerifyReraUseCasePort
}

func NewUserHandlers(
	getUC usecases_port.GetUserUseCasePort,
	updateUC usecases_port.UpdateUserUseCasePort,
	listUC usecases_port.ListUsersUseCasePort,
	verifyReraUC usecases_port.VerifyReraUseCasePort,
) *UserHandlers {
	return &UserHandlers{
		getUC:        getUC,
		updateUC:     updateUC,
		listUC:       listUC,
		verifyReraUC: verifyReraUC,
	}
}

// List handles GET /api/users
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListUsers"})

	filter := port.UserFilter{}

	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		if !domain.ValidRole(roleStr) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'role' value")
			return
		}
		role := domain.Role(roleStr)
		filter.Role = &role
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

	users, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		logger.Error("ListUsers use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponses(users))
}

// Get handles GET /api/users/{userID}
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUser"})

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid user ID in URL")
		return
	}

	user, err := h.getUC.Execute(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("GetUser use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// Update handles PATCH /api/users/{userID}
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateUser"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid user ID in URL")
		return
	}

	// Profiles are self-service only.
	if claims.UserID != userID {
		WriteJSONError(w, http.StatusForbidden, domain.ErrForbidden.Error())
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode update user body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": userID.String()})
	handlerLogger.Info("Processing request to update user", nil)

	user, err := h.updateUC.Execute(r.Context(), userID, usecases_port.UserPatch{
		Name:    req.Name,
		Phone:   req.Phone,
		Company: req.Company,
		ReraBRN: req.ReraBRN,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("UpdateUser use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	handlerLogger.Info("User updated successfully", nil)
	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// VerifyRera handles POST /api/users/verify-rera
func (h *UserHandlers) VerifyRera(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "VerifyRera"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req VerifyReraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode verify rera body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ReraBRN == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field 'rera_brn' is required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"user_id":  claims.UserID.String(),
		"rera_brn": req.ReraBRN,
	})
	handlerLogger.Info("Processing RERA verification", nil)

	user, err := h.verifyReraUC.Execute(r.Context(), claims.UserID, req.ReraBRN)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrForbidden):
			handlerLogger.Warn("RERA verification rejected: caller is not an agent", nil)
			WriteJSONError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("VerifyRera use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to verify RERA number")
		}
		return
	}

	handlerLogger.Info("RERA number verified successfully", nil)
	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}
