// Package errors provides custom error types for the refdata API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Asset errors.
var (
	ErrAssetNotFound  = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAsset = &AppError{Code: "DUPLICATE_ASSET", Message: "An asset with this ISIN already exists", StatusCode: http.StatusConflict}
)

// Exchange errors.
var (
	ErrExchangeNotFound  = &AppError{Code: "EXCHANGE_NOT_FOUND", Message: "Exchange not found", StatusCode: http.StatusNotFound}
	ErrDuplicateExchange = &AppError{Code: "DUPLICATE_EXCHANGE", Message: "An exchange with this MIC code already exists", StatusCode: http.StatusConflict}
)

// Listing errors.
var (
	ErrListingNotFound  = &AppError{Code: "LISTING_NOT_FOUND", Message: "Listing not found", StatusCode: http.StatusNotFound}
	ErrDuplicateListing = &AppError{Code: "DUPLICATE_LISTING", Message: "This ticker is already listed on this exchange", StatusCode: http.StatusConflict}
)

// Market data errors.
var (
	ErrMarketDataUnavailable = &AppError{Code: "MARKET_DATA_UNAVAILABLE", Message: "Market data provider request failed", StatusCode: http.StatusBadGateway}
)
