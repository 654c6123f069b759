package dto

import (
	"net/http"

	"github.com/agro/backend/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeInvalidDocument    = "ERR_INVALID_DOCUMENT"
	ErrCodeProducerRequired   = "ERR_PRODUCER_REQUIRED"
	ErrCodePropertyRequired   = "ERR_PROPERTY_REQUIRED"
	ErrCodePropertyIDRequired = "ERR_PROPERTY_ID_REQUIRED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeDuplicateDocument is used when a tax ID is already registered
	ErrCodeDuplicateDocument = "ERR_DUPLICATE_DOCUMENT"
)

// Business rule error codes
const (
	// ErrCodeAreaSumExceedsTotal is used when farmed plus vegetation area is larger than the farm
	ErrCodeAreaSumExceedsTotal = "ERR_AREA_SUM_EXCEEDS_TOTAL"
)

// Input error codes
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeInvalidDocument:    http.StatusBadRequest,
	ErrCodeProducerRequired:   http.StatusBadRequest,
	ErrCodePropertyRequired:   http.StatusBadRequest,
	ErrCodePropertyIDRequired: http.StatusBadRequest,

	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeDuplicateDocument: http.StatusConflict,

	ErrCodeAreaSumExceedsTotal: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	shared.CodeNotFound:            ErrCodeNotFound,
	shared.CodeValidationFailed:    ErrCodeValidation,
	shared.CodeInvalidDocument:     ErrCodeInvalidDocument,
	shared.CodeDuplicateDocument:   ErrCodeDuplicateDocument,
	shared.CodeAreaSumExceedsTotal: ErrCodeAreaSumExceedsTotal,
	shared.CodeProducerRequired:    ErrCodeProducerRequired,
	shared.CodePropertyRequired:    ErrCodePropertyRequired,
	shared.CodePropertyIDRequired:  ErrCodePropertyIDRequired,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes that are already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
