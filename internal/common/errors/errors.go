package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode is a stable string code returned to clients.
type ErrorCode string

const (
	// Generic
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeStore      ErrorCode = "STORE_ERROR"

	// Auth / session
	ErrCodeUnauthorizedSession ErrorCode = "UNAUTHORIZED_SESSION"
	ErrCodeInvalidSignature    ErrorCode = "INVALID_SIGNATURE"
	ErrCodeChallengeExpired    ErrorCode = "CHALLENGE_EXPIRED"
	ErrCodeWalletMismatch      ErrorCode = "WALLET_MISMATCH"

	// Mining
	ErrCodeMiningLockFreeMode ErrorCode = "MINING_LOCK_FREE_MODE"
	ErrCodeCastTooFast        ErrorCode = "CAST_TOO_FAST"
	ErrCodeHourlyCapReached   ErrorCode = "HOURLY_CAP_REACHED"
	ErrCodeDailyCapReached    ErrorCode = "DAILY_CAP_REACHED"
	ErrCodeBucketExhausted    ErrorCode = "BUCKET_EXHAUSTED"
	ErrCodeInvalidBoatConfig  ErrorCode = "INVALID_BOAT_CONFIG"

	// Shop
	ErrCodeInvalidBoatTier ErrorCode = "INVALID_BOAT_TIER"
	ErrCodeBoatDowngrade   ErrorCode = "BOAT_DOWNGRADE_REJECTED"

	// Spin / swap
	ErrCodeNoTickets           ErrorCode = "NO_TICKETS"
	ErrCodeDailySpinClaimed    ErrorCode = "DAILY_SPIN_CLAIMED"
	ErrCodeSwapCooldown        ErrorCode = "SWAP_COOLDOWN_ACTIVE"
	ErrCodeInvalidSwapAmount   ErrorCode = "INVALID_SWAP_AMOUNT"
	ErrCodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
)

// AppError is a typed application error carrying a client-facing code.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error code to an HTTP status. Rate/cap conditions are
// 429/410 so clients can treat them as "try later" rather than failures.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidation, ErrCodeInvalidBoatTier, ErrCodeBoatDowngrade,
		ErrCodeNoTickets, ErrCodeInvalidSwapAmount, ErrCodeInsufficientBalance,
		ErrCodeChallengeExpired:
		return http.StatusBadRequest
	case ErrCodeUnauthorizedSession, ErrCodeInvalidSignature, ErrCodeWalletMismatch:
		return http.StatusUnauthorized
	case ErrCodeMiningLockFreeMode:
		return http.StatusForbidden
	case ErrCodeBucketExhausted:
		return http.StatusGone
	case ErrCodeCastTooFast, ErrCodeHourlyCapReached, ErrCodeDailyCapReached,
		ErrCodeSwapCooldown, ErrCodeDailySpinClaimed:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates a new application error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new application error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// AsAppError extracts an *AppError if err is one.
func AsAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}
