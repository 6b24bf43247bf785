package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf returns the AppError code carried by err, or empty string.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Error codes by category. The ledger state machine returns exactly these kinds.
const (
	CodeInvalidTokenAddress = "TOK_001"
	CodeInvalidAmount       = "PAY_001"
	CodePaymentFailed       = "PAY_002"
	CodeInvalidMerchant     = "MER_001"
	CodeMerchantNotActive   = "MER_002"
	CodeInvalidPayoutWallet = "MER_003"
	CodeInsufficientBalance = "WDR_001"
	CodeWithdrawalFailed    = "WDR_002"
	CodeEmptyBatch          = "WDR_003"
	CodeUnauthorized        = "SEC_001"
	CodePaused              = "SEC_002"
	CodeReentrancy          = "SEC_003"
	CodeValidation          = "REQ_001"
	CodeRateLimitExceeded   = "RATE_001"
	CodeInternal            = "SYS_001"
)

// ---- Token Allowlist (TOK) ----

func ErrInvalidTokenAddress(message string) *AppError {
	return New(CodeInvalidTokenAddress, message, http.StatusBadRequest)
}

// ---- Payments (PAY) ----

func ErrInvalidAmount(message string) *AppError {
	return New(CodeInvalidAmount, message, http.StatusBadRequest)
}

func ErrPaymentFailed(err error) *AppError {
	return Wrap(CodePaymentFailed, "Token transfer from payer failed", http.StatusBadGateway, err)
}

// ---- Merchants (MER) ----

func ErrInvalidMerchant(message string) *AppError {
	return New(CodeInvalidMerchant, message, http.StatusBadRequest)
}

func ErrMerchantNotActive() *AppError {
	return New(CodeMerchantNotActive, "Merchant is not active", http.StatusForbidden)
}

func ErrInvalidPayoutWallet() *AppError {
	return New(CodeInvalidPayoutWallet, "Payout wallet must not be the zero address", http.StatusBadRequest)
}

// ---- Withdrawals (WDR) ----

func ErrInsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient ledger balance", http.StatusPaymentRequired)
}

func ErrWithdrawalFailed(err error) *AppError {
	return Wrap(CodeWithdrawalFailed, "Token transfer to payout wallet failed", http.StatusBadGateway, err)
}

func ErrEmptyBatch() *AppError {
	return New(CodeEmptyBatch, "Batch withdrawal requires at least one token", http.StatusBadRequest)
}

// ---- Access Control (SEC) ----

func ErrUnauthorized() *AppError {
	return New(CodeUnauthorized, "Caller is not authorized for this operation", http.StatusUnauthorized)
}

func ErrPaused(message string) *AppError {
	return New(CodePaused, message, http.StatusServiceUnavailable)
}

func ErrReentrancy() *AppError {
	return New(CodeReentrancy, "Reentrant call rejected", http.StatusConflict)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}
