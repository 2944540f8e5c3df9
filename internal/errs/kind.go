package errs

// Kind classifies a field-level validation failure.
//
// Every kind is a client-input error: it is never retried and never fatal
// to the process. Clients can switch on the kind instead of parsing messages.
type Kind string

const (
	// KindTypeMismatch means the value has the wrong primitive type
	// (e.g. "abc" where an integer is expected, or 2.5 for an integer).
	KindTypeMismatch Kind = "TYPE_MISMATCH"

	// KindOutOfRange means a number falls outside its min/max bounds.
	KindOutOfRange Kind = "OUT_OF_RANGE"

	// KindNotAllowedValue means the value is not part of a closed set
	// of allowed values (e.g. an unknown tag).
	KindNotAllowedValue Kind = "NOT_ALLOWED_VALUE"

	// KindRequired means a required field is missing.
	KindRequired Kind = "REQUIRED"

	// KindEmpty means a field is present but holds an empty string.
	// It is deliberately distinct from KindRequired.
	KindEmpty Kind = "EMPTY"

	// KindInvalidFormat means a string does not match its structural format
	// (e.g. a malformed object identifier).
	KindInvalidFormat Kind = "INVALID_FORMAT"

	// KindMinFieldsNotMet means a segment holds fewer recognized fields
	// than it requires.
	KindMinFieldsNotMet Kind = "MIN_FIELDS_NOT_MET"

	// KindUnknownField means a segment carries a key the schema does not describe.
	KindUnknownField Kind = "UNKNOWN_FIELD"
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
