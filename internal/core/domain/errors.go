package domain

import "errors"

// Sentinel errors returned by use cases. The REST layer maps them to
// HTTP status codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrTokenInvalid       = errors.New("invalid jwt token")
	ErrForbidden          = errors.New("operation not permitted for this role")

	ErrPropertyNotFound    = errors.New("property not found")
	ErrViewingNotFound     = errors.New("viewing not found")
	ErrContractNotFound    = errors.New("contract not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrMaintenanceNotFound = errors.New("maintenance request not found")
	ErrCommissionNotFound  = errors.New("commission not found")
	ErrChequeNotFound      = errors.New("cheque payment not found")

	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrOutcomeAlreadySet   = errors.New("viewing outcome already logged")
	ErrViewingNotPast      = errors.New("viewing date has not passed yet")
	ErrViewingCancelled    = errors.New("viewing is cancelled")
	ErrContractActiveExists = errors.New("property already has an active contract")
	ErrChequeAlreadyPaid   = errors.New("cheque is already paid")

	ErrOTPSessionNotFound = errors.New("no active signature session")
	ErrOTPExpired         = errors.New("signature session expired")
	ErrOTPCodeMismatch    = errors.New("verification code does not match")
	ErrOTPAttemptsExceeded = errors.New("verification attempts exceeded")

	ErrValidation = errors.New("validation failed")
)
