package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"
)

type AuthHandlers struct {
	registerUC       usecases_port.RegisterUserUseCasePort
	loginUC          usecases_port.LoginUserUseCasePort
	changePasswordUC usecases_port.ChangePasswordUseCasePort
	forgotPasswordUC usecases_port.ForgotPasswordUseCasePort
	resetPasswordUC  usecases_port.ResetPasswordUseCasePort
	getUserUC        usecases_port.GetUserUseCasePort
	updateUserUC     usecases_port.UpdateUserUseCasePort
}

func NewAuthHandlers(
	registerUC usecases_port.RegisterUserUseCasePort,
	loginUC usecases_port.LoginUserUseCasePort,
	changePasswordUC usecases_port.ChangePasswordUseCasePort,
	forgotPasswordUC usecases_port.ForgotPasswordUseCasePort,
	resetPasswordUC usecases_port.ResetPasswordUseCasePort,
	getUserUC usecases_port.GetUserUseCasePort,
	updateUserUC usecases_port.UpdateUserUseCasePort,
) *AuthHandlers {
	return &AuthHandlers{
		registerUC:       registerUC,
		loginUC:          loginUC,
		changePasswordUC: changePasswordUC,
		forgotPasswordUC: forgotPasswordUC,
		resetPasswordUC:  resetPasswordUC,
		getUserUC:        getUserUC,
		updateUserUC:     updateUserUC,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode register request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		logger.Warn("Fields 'email', 'password' and 'name' are required", nil)
		WriteJSONError(w, http.StatusBadRequest, "Fields 'email', 'password' and 'name' are required")
		return
	}
	if !domain.ValidRole(req.Role) {
		logger.Warn("Invalid 'role' value", port.Fields{"role": req.Role})
		WriteJSONError(w, http.StatusBadRequest, "Field 'role' must be one of: agent, owner, tenant")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"email": req.Email,
		"role":  req.Role,
	})
	handlerLogger.Info("Processing register request", nil)

	user, token, err := h.registerUC.Execute(r.Context(), req.Email, req.Password, req.Name, req.Phone, domain.Role(req.Role))
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			handlerLogger.Warn("Registration failed: email already in use", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			handlerLogger.Warn("Registration failed: validation error", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		handlerLogger.Error("Register use case failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	handlerLogger.Info("User registered successfully", port.Fields{"user_id": user.ID})
	RespondWithJSON(w, http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode login request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing login request", nil)

	user, token, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound) {
			handlerLogger.Warn("Login failed: invalid credentials", nil)
			WriteJSONError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
			return
		}
		handlerLogger.Error("Login use case failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	handlerLogger.Info("User logged in successfully", port.Fields{"user_id": user.ID})
	RespondWithJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so there is
// nothing to revoke server-side; the client drops the token.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Logout"})
	logger.Info("User logged out", nil)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Me"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		logger.Error("Claims missing from context on a protected route", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.getUserUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("GetUser use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PATCH /api/auth/me
func (h *AuthHandlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateMe"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode profile update body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": claims.UserID.String()})
	handlerLogger.Info("Processing profile update", nil)

	user, err := h.updateUserUC.Execute(r.Context(), claims.UserID, usecases_port.UserPatch{
		Name:    req.Name,
		Phone:   req.Phone,
		Company: req.Company,
		ReraBRN: req.ReraBRN,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		handlerLogger.Error("UpdateUser use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	handlerLogger.Info("Profile updated successfully", nil)
	RespondWithJSON(w, http.StatusOK, toUserResponse(user))
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ChangePassword"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode change password body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		WriteJSONError(w, http.StatusBadRequest, "Fields 'current_password' and 'new_password' are required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": claims.UserID.String()})
	handlerLogger.Info("Processing password change", nil)

	if err := h.changePasswordUC.Execute(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			handlerLogger.Warn("Password change failed: current password mismatch", nil)
			WriteJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		handlerLogger.Error("ChangePassword use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	handlerLogger.Info("Password changed successfully", nil)
	w.WriteHeader(http.StatusNoContent)
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is
// identical whether or not the account exists.
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ForgotPassword"})

	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode forgot password body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field 'email' is required")
		return
	}

	logger.Info("Processing forgot password request", nil)

	if err := h.forgotPasswordUC.Execute(r.Context(), req.Email); err != nil {
		logger.Error("ForgotPassword use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "If the account exists, a reset link has been sent",
	})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ResetPassword"})

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode reset password body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		WriteJSONError(w, http.StatusBadRequest, "Fields 'token' and 'new_password' are required")
		return
	}

	logger.Info("Processing password reset", nil)

	if err := h.resetPasswordUC.Execute(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			logger.Warn("Password reset failed: invalid or expired token", nil)
			WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired reset token")
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("ResetPassword use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("Password reset successfully", nil)
	w.WriteHeader(http.StatusNoContent)
}
