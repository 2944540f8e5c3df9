package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "segment": "body", "field": "title", "kind": "EMPTY", "error": "Title cannot be empty." }
type FieldError struct {
	// Segment is the request part the field was read from (query, params, body).
	Segment string `json:"segment,omitempty"`

	// Field is the field name/key the error relates to (e.g. "title").
	Field string `json:"field"`

	// Kind is the machine-readable category of the failure.
	Kind Kind `json:"kind"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// It is designed to be serialized directly to JSON.
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: flag to let the caller decide whether to override the message.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
// It returns the Message, so printing/logging the error shows the message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// It returns true if `target` is also a *HTTPError.
// It does NOT compare Code/Status/etc.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// HasKind reports whether any field error for field carries kind.
// An empty field matches every field.
func (e *HTTPError) HasKind(field string, kind Kind) bool {
	for _, fe := range e.Errors {
		if (field == "" || fe.Field == field) && fe.Kind == kind {
			return true
		}
	}
	return false
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
