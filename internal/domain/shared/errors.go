package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so wrapped copies of a
// sentinel still match with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared by every bounded context
const (
	CodeNotFound            = "NOT_FOUND"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInvalidDocument     = "INVALID_DOCUMENT"
	CodeDuplicateDocument   = "DUPLICATE_DOCUMENT"
	CodeAreaSumExceedsTotal = "AREA_SUM_EXCEEDS_TOTAL"
	CodeProducerRequired    = "PRODUCER_REQUIRED"
	CodePropertyRequired    = "PROPERTY_REQUIRED"
	CodePropertyIDRequired  = "PROPERTY_ID_REQUIRED"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrValidationFailed  = NewDomainError(CodeValidationFailed, "Validation failed")
	ErrInvalidDocument   = NewDomainError(CodeInvalidDocument, "Invalid CPF or CNPJ")
	ErrDuplicateDocument = NewDomainError(CodeDuplicateDocument, "A producer with this CPF/CNPJ already exists")
)
