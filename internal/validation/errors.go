package validation

import (
	"errors"
	"strings"

	"github.com/deppfellow/notes-validator/internal/errs"
)

// Errors is the list of field errors produced by one validation call.
// It satisfies error.
type Errors []errs.FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Segment+"."+fe.Field+": "+fe.Error)
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed with kind. An empty field matches any field.
func (e Errors) Has(field string, kind errs.Kind) bool {
	for _, fe := range e {
		if (field == "" || fe.Field == field) && fe.Kind == kind {
			return true
		}
	}
	return false
}

// HTTPError converts the list into a 400 response error.
func (e Errors) HTTPError() *errs.HTTPError {
	return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError(e))
}

// AsErrors extracts Errors from err's chain.
func AsErrors(err error) (Errors, bool) {
	var validationErrors Errors
	if errors.As(err, &validationErrors) {
		return validationErrors, true
	}
	return nil, false
}
