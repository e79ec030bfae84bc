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

type PaymentHandlers struct {
	listUC     usecases_port.ListContractPaymentsUseCasePort
	markPaidUC usecases_port.MarkChequePaidUseCasePort
}

func NewPaymentHandlers(
	listUC usecases_port.ListContractPaymentsUseCasePort,
	markPaidUC usecases_port.MarkChequePaidUseCasePort,
) *PaymentHandlers {
	return &PaymentHandlers{
		listUC:     listUC,
		markPaidUC: markPaidUC,
	}
}

// ListByContract handles GET /api/contracts/{contractID}/payments
func (h *PaymentHandlers) ListByContract(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListContractPayments"})

	contractID, err := uuid.Parse(chi.URLParam(r, "contractID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid contract ID in URL")
		return
	}

	cheques, err := h.listUC.Execute(r.Context(), contractID)
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("ListContractPayments use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to list payments")
		return
	}

	RespondWithJSON(w, http.StatusOK, toChequeResponses(cheques))
}

// MarkPaid handles POST /api/payments/{chequeID}/mark-paid
func (h *PaymentHandlers) MarkPaid(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "MarkChequePaid"})

	chequeID, err := uuid.Parse(chi.URLParam(r, "chequeID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid cheque ID in URL")
		return
	}

	var req MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode mark paid body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"cheque_id": chequeID.String(),
		"method":    req.Method,
	})
	handlerLogger.Info("Processing request to mark cheque paid", nil)

	cheque, err := h.markPaidUC.Execute(r.Context(), chequeID, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChequeNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrChequeAlreadyPaid):
			handlerLogger.Warn("Mark paid rejected: cheque already paid", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
		default:
			handlerLogger.Error("MarkChequePaid use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to mark cheque paid")
		}
		return
	}

	handlerLogger.Info("Cheque marked paid successfully", nil)
	RespondWithJSON(w, http.StatusOK, toChequeResponse(cheque))
}
