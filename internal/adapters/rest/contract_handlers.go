package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ContractHandlers struct {
	createUC      usecases_port.CreateContractUseCasePort
	listUC        usecases_port.ListContractsUseCasePort
	getUC         usecases_port.GetContractUseCasePort
	updateUC      usecases_port.UpdateContractUseCasePort
	sendOTPUC     usecases_port.SendSignatureOTPUseCasePort
	verifyOTPUC   usecases_port.VerifySignatureOTPUseCasePort
	generatePDFUC usecases_port.GenerateContractPDFUseCasePort
}

func NewContractHandlers(
	createUC usecases_port.CreateContractUseCasePort,
	listUC usecases_port.ListContractsUseCasePort,
	getUC usecases_port.GetContractUseCasePort,
	updateUC usecases_port.UpdateContractUseCasePort,
	sendOTPUC usecases_port.SendSignatureOTPUseCasePort,
	verifyOTPUC usecases_port.VerifySignatureOTPUseCasePort,
	generatePDFUC usecases_port.GenerateContractPDFUseCasePort,
) *ContractHandlers {
	return &ContractHandlers{
		createUC:      createUC,
		listUC:        listUC,
		getUC:         getUC,
		updateUC:      updateUC,
		sendOTPUC:     sendOTPUC,
		verifyOTPUC:   verifyOTPUC,
		generatePDFUC: generatePDFUC,
	}
}

// Create handles POST /api/contracts
func (h *ContractHandlers) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateContract"})

	var req CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode create contract body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'property_id' format")
		return
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Field 'start_date' must be formatted as YYYY-MM-DD")
		return
	}
	var endDate time.Time
	if req.EndDate != "" {
		endDate, err = time.Parse(dateLayout, req.EndDate)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Field 'end_date' must be formatted as YYYY-MM-DD")
			return
		}
	}

	handlerLogger := logger.WithFields(port.Fields{
		"property_id": propertyID.String(),
		"tenant_name": req.TenantName,
	})
	handlerLogger.Info("Processing request to create contract", nil)

	contract, err := h.createUC.Execute(r.Context(), usecases_port.CreateContractInput{
		PropertyID:  propertyID,
		TenantName:  req.TenantName,
		TenantEmail: req.TenantEmail,
		TenantPhone: req.TenantPhone,
		StartDate:   startDate,
		EndDate:     endDate,
		Rent:        req.Rent,
		Cheques:     req.Cheques,
		Deposit:     req.Deposit,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPropertyNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrContractActiveExists):
			handlerLogger.Warn("Create rejected: property already has an active contract", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("CreateContract use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to create contract")
		}
		return
	}

	handlerLogger.Info("Contract created successfully", port.Fields{"contract_id": contract.ID.String()})
	RespondWithJSON(w, http.StatusCreated, toContractResponse(contract))
}

// List handles GET /api/contracts
func (h *ContractHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListContracts"})

	filter := port.ContractFilter{}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		if !domain.ValidContractStatus(statusStr) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid 'status' value")
			return
		}
		status := domain.ContractStatus(statusStr)
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

	contracts, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		logger.Error("ListContracts use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list contracts")
		return
	}

	RespondWithJSON(w, http.StatusOK, toContractResponses(contracts))
}

// Get handles GET /api/contracts/{contractID}
func (h *ContractHandlers) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetContract"})

	contractID, err := uuid.Parse(chi.URLParam(r, "contractID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid contract ID in URL")
		return
	}

	contract, err := h.getUC.Execute(r.Context(), contractID)
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("GetContract use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get contract")
		return
	}

	RespondWithJSON(w, http.StatusOK, toContractResponse(contract))
}

// Update handles PATCH /api/contracts/{contractID}
func (h *ContractHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateContract"})

	contractID, err := uuid.Parse(chi.URLParam(r, "contractID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid contract ID in URL")
		return
	}

	var req UpdateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode update contract body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := usecases_port.ContractPatch{
		TenantName:  req.TenantName,
		TenantEmail: req.TenantEmail,
		TenantPhone: req.TenantPhone,
		Rent:        req.Rent,
		Cheques:     req.Cheques,
		Deposit:     req.Deposit,
		Status:      req.Status,
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Field 'start_date' must be formatted as YYYY-MM-DD")
			return
		}
		patch.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Field 'end_date' must be formatted as YYYY-MM-DD")
			return
		}
		patch.EndDate = &endDate
	}

	handlerLogger := logger.WithFields(port.Fields{"contract_id": contractID.String()})
	handlerLogger.Info("Processing request to update contract", nil)

	contract, err := h.updateUC.Execute(r.Context(), contractID, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContractNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition):
			handlerLogger.Warn("Update rejected: transition not allowed", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			handlerLogger.Error("UpdateContract use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update contract")
		}
		return
	}

	handlerLogger.Info("Contract updated successfully", nil)
	RespondWithJSON(w, http.StatusOK, toContractResponse(contract))
}

// SendOTP handles POST /api/contracts/{contractID}/send-otp
func (h *ContractHandlers) SendOTP(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SendSignatureOTP"})

	contractID, err := uuid.Parse(chi.URLParam(r, "contractID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid contract ID in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"contract_id": contractID.String()})
	handlerLogger.Info("Processing request to send signature code", nil)

	session, err := h.sendOTPUC.Execute(r.Context(), contractID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContractNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition):
			handlerLogger.Warn("Send code rejected: contract not awaiting signature", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		default:
			handlerLogger.Error("SendSignatureOTP use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to send signature code")
		}
		return
	}

	handlerLogger.Info("Signature code issued", port.Fields{"expires_at": session.ExpiresAt})
	RespondWithJSON(w, http.StatusOK, SignatureSessionResponse{
		ContractID: session.ContractID.String(),
		ExpiresAt:  session.ExpiresAt.Format(time.RFC3339),
	})
}

// VerifyOTP handles POST /api/contracts/{contractID}/verify-otp
func (h *ContractHandlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "VerifySignatureOTP"})

	contractID, err := uuid.Parse(chi.URLParam(r, "contractID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid contract ID in URL")
		return
	}

	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode verify code body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field 'code' is required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"contract_id": contractID.String()})
	handlerLogger.Info("Processing signature code verification", nil)

	contract, err := h.verifyOTPUC.Execute(r.Context(), contractID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContractNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrOTPSessionNotFound):
			handlerLogger.Warn("Verification rejected: no active signature session", nil)
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrOTPExpired),
			errors.Is(err, domain.ErrOTPAttemptsExceeded):
			handlerLogger.Warn("Verification rejected", port.Fields{"reason": err.Error()})
			WriteJSONError(w, http.StatusGone, err.Error())
		case errors.Is(err, domain.ErrOTPCodeMismatch):
			handlerLogger.Warn("Verification rejected: code mismatch", nil)
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition):
			WriteJSONError(w, http.StatusConflict, err.Error())
		default:
			handlerLogger.Error("VerifySignatureOTP use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to verify signature code")
		}
		return
	}

	handlerLogger.Info("Contract signed successfully", nil)
	RespondWithJSON(w, http.StatusOK, toContractResponse(contract))
}

// GeneratePDF handles GET /api/contracts/{contractID}/generate-pdf
func (h *ContractHandlers) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GenerateContractPDF"})

	contractID, err := uuid.Parse(chi.URLParam(r, "contractID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid contract ID in URL")
		return
	}

	contract, _, err := h.generatePDFUC.Execute(r.Context(), contractID)
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("GenerateContractPDF use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to generate contract document")
		return
	}

	RespondWithJSON(w, http.StatusOK, toContractResponse(contract))
}

// Download handles GET /api/contracts/{contractID}/download and streams the
// rendered document.
func (h *ContractHandlers) Download(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DownloadContract"})

	contractID, err := uuid.Parse(chi.URLParam(r, "contractID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid contract ID in URL")
		return
	}

	contract, document, err := h.generatePDFUC.Execute(r.Context(), contractID)
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("DownloadContract use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to render contract document")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"contract-%s.txt\"", contract.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(document)
}
