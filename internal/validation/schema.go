package validation

import "strings"

// Segment names one structured part of an incoming request.
type Segment string

const (
	SegmentQuery  Segment = "query"
	SegmentParams Segment = "params"
	SegmentBody   Segment = "body"
)

// Type is the primitive type a rule expects.
type Type string

const (
	TypeInteger Type = "integer"
	TypeString  Type = "string"
)

// Constraint names are the keys of Rule.Messages and Schema.Messages.
// Each one maps to exactly one errs.Kind.
const (
	ConstraintBase      = "base"
	ConstraintInteger   = "integer"
	ConstraintMin       = "min"
	ConstraintMax       = "max"
	ConstraintRequired  = "required"
	ConstraintEmpty     = "empty"
	ConstraintOnly      = "only"
	ConstraintFormat    = "format"
	ConstraintUnknown   = "unknown"
	ConstraintMinFields = "min_fields"
)

// Rule describes a single field of a segment.
type Rule struct {
	// Field is the key looked up in the segment.
	Field string

	// Type is the expected primitive type. Integers are coerced from
	// strings and whole JSON numbers.
	Type Type

	// Required makes a missing field an error. Optional fields without a
	// Default are simply left out of the normalized output.
	Required bool

	// AllowEmpty accepts "" for string fields; Format still applies.
	// Without it "" is reported as empty, never as missing.
	AllowEmpty bool

	// Min and Max bound integers by value and strings by length.
	Min *int
	Max *int

	// Enum is the name of an enumeration registered with WithEnum.
	// Membership is checked before the type.
	Enum string

	// Format is the name of a predicate registered with WithFormat.
	Format string

	// Default is used when the field is absent.
	Default any

	// Messages overrides the default message per constraint.
	Messages map[string]string
}

// Schema is an ordered set of rules scoped to one segment.
type Schema struct {
	Segment Segment
	Rules   []Rule

	// MinFields is the minimum number of recognized fields the segment
	// must carry, regardless of each rule being optional.
	MinFields int

	// AllowUnknown lets keys without a rule pass through untouched.
	AllowUnknown bool

	// Messages overrides segment-level messages (unknown, min_fields).
	Messages map[string]string
}

// Rule returns the rule for field, if any.
func (s Schema) Rule(field string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}

// FieldNames lists the rule fields in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		names = append(names, r.Field)
	}
	return names
}

// RequestSchema groups the segment schemas an operation validates.
// Segments are validated in order.
type RequestSchema struct {
	Name     string
	Segments []Schema
}

// Segment returns the schema for seg, if the request schema covers it.
func (rs RequestSchema) Segment(seg Segment) (Schema, bool) {
	for _, s := range rs.Segments {
		if s.Segment == seg {
			return s, true
		}
	}
	return Schema{}, false
}

// Fields is the raw or normalized content of one segment.
type Fields map[string]any

// Int returns the integer stored under name. Normalized integers are always int.
func (f Fields) Int(name string) (int, bool) {
	n, ok := f[name].(int)
	return n, ok
}

// String returns the string stored under name.
func (f Fields) String(name string) (string, bool) {
	s, ok := f[name].(string)
	return s, ok
}

// StringPtr returns a pointer to the string under name, or nil when absent.
func (f Fields) StringPtr(name string) *string {
	if s, ok := f.String(name); ok {
		return &s
	}
	return nil
}

// Segments maps each request segment to its fields.
type Segments map[Segment]Fields

// Bound returns a pointer to n, for Rule.Min and Rule.Max.
func Bound(n int) *int {
	return &n
}

// label turns a rule field into the subject of a default message:
// "perPage" -> "perPage", "" -> "value".
func label(field string) string {
	if strings.TrimSpace(field) == "" {
		return "value"
	}
	return field
}
