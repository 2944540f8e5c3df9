package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/notes-validator/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// FormatFunc is a structural predicate over a string value,
// e.g. "is this a valid object identifier".
type FormatFunc func(string) bool

// Validator interprets schemas against raw request segments.
//
// It is immutable once New returns and safe for concurrent use:
// every call works on its own copies and registers nothing.
type Validator struct {
	validate   *validator.Validate
	enums      map[string][]string
	formats    map[string]FormatFunc
	abortEarly bool
	logger     zerolog.Logger
}

// Option configures a Validator.
type Option func(*Validator) error

// WithEnum registers a closed set of allowed string values under name.
// Rules refer to it through Rule.Enum.
func WithEnum(name string, values []string) Option {
	return func(v *Validator) error {
		allowed := make(map[string]struct{}, len(values))
		for _, value := range values {
			allowed[value] = struct{}{}
		}

		err := v.validate.RegisterValidation(enumTag(name), func(fl validator.FieldLevel) bool {
			_, ok := allowed[fl.Field().String()]
			return ok
		})
		if err != nil {
			return fmt.Errorf("failed to register enum %q: %w", name, err)
		}

		v.enums[name] = append([]string(nil), values...)
		return nil
	}
}

// WithFormat registers a string predicate under name.
// Rules refer to it through Rule.Format.
func WithFormat(name string, fn FormatFunc) Option {
	return func(v *Validator) error {
		err := v.validate.RegisterValidation(formatTag(name), func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("failed to register format %q: %w", name, err)
		}

		v.formats[name] = fn
		return nil
	}
}

// WithAbortEarly stops at the first violation instead of collecting all of them.
func WithAbortEarly() Option {
	return func(v *Validator) error {
		v.abortEarly = true
		return nil
	}
}

// WithLogger sets the logger used to trace validation calls.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Validator) error {
		v.logger = logger
		return nil
	}
}

// New builds a Validator. Registration errors from options are returned as-is.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		validate: validator.New(),
		enums:    make(map[string][]string),
		formats:  make(map[string]FormatFunc),
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Enum returns a copy of the values registered under name.
func (v *Validator) Enum(name string) []string {
	return append([]string(nil), v.enums[name]...)
}

// Validate runs every segment schema of rs against in.
//
// On success it returns freshly allocated, normalized segments: defaults
// are filled in and integers are coerced. On failure the error is an
// Errors value listing every violation (or only the first one when
// the validator aborts early). The input is never modified.
func (v *Validator) Validate(rs RequestSchema, in Segments) (Segments, error) {
	start := time.Now()

	out := make(Segments, len(rs.Segments))
	var all Errors

	for _, schema := range rs.Segments {
		fields, fieldErrs := v.ValidateSegment(schema, in[schema.Segment])
		out[schema.Segment] = fields
		all = append(all, fieldErrs...)

		if v.abortEarly && len(all) > 0 {
			break
		}
	}

	duration := time.Since(start)

	if len(all) > 0 {
		v.logger.Debug().
			Str("schema", rs.Name).
			Int("error_count", len(all)).
			Dur("validation_duration", duration).
			Msg("request validation failed")

		return nil, all
	}

	v.logger.Debug().
		Str("schema", rs.Name).
		Dur("validation_duration", duration).
		Msg("request validation successful")

	return out, nil
}

// ValidateSegment runs one segment schema against fields.
// A nil fields map is treated as an empty segment.
func (v *Validator) ValidateSegment(schema Schema, fields Fields) (Fields, Errors) {
	out := make(Fields, len(schema.Rules))
	var fieldErrs Errors

	report := func(fe errs.FieldError) bool {
		fe.Segment = string(schema.Segment)
		fieldErrs = append(fieldErrs, fe)
		return v.abortEarly
	}

	recognized := 0
	for _, rule := range schema.Rules {
		raw, present := fields[rule.Field]
		if !present {
			if rule.Required {
				if report(rule.fail(ConstraintRequired, "")) {
					return nil, fieldErrs
				}
				continue
			}
			if rule.Default != nil {
				out[rule.Field] = rule.Default
			}
			continue
		}

		recognized++

		value, fe := v.checkField(rule, raw)
		if fe != nil {
			if report(*fe) {
				return nil, fieldErrs
			}
			continue
		}
		out[rule.Field] = value
	}

	// Unknown keys are reported in a stable order so identical input
	// always yields identical errors.
	unknown := make([]string, 0)
	for key := range fields {
		if _, ok := schema.Rule(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	for _, key := range unknown {
		if schema.AllowUnknown {
			out[key] = fields[key]
			continue
		}

		msg := fmt.Sprintf("%q is not allowed", key)
		if custom, ok := schema.Messages[ConstraintUnknown]; ok {
			msg = custom
		}
		if report(errs.FieldError{Field: key, Kind: errs.KindUnknownField, Error: msg}) {
			return nil, fieldErrs
		}
	}

	if schema.MinFields > 0 && recognized < schema.MinFields {
		msg := fmt.Sprintf("%s must contain at least %d field(s): %s",
			schema.Segment, schema.MinFields, strings.Join(schema.FieldNames(), ", "))
		if custom, ok := schema.Messages[ConstraintMinFields]; ok {
			msg = custom
		}
		report(errs.FieldError{Field: string(schema.Segment), Kind: errs.KindMinFieldsNotMet, Error: msg})
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	return out, nil
}

// checkField validates a present value and returns its normalized form.
//
// Order matters:
// enumeration membership, then type, then emptiness, then format, then bounds.
func (v *Validator) checkField(rule Rule, raw any) (any, *errs.FieldError) {
	if raw == nil {
		fe := rule.fail(ConstraintBase, "")
		return nil, &fe
	}

	if rule.Enum != "" {
		_, registered := v.enums[rule.Enum]
		s, ok := raw.(string)
		if !ok || !registered || v.validate.Var(s, enumTag(rule.Enum)) != nil {
			fe := rule.fail(ConstraintOnly, strings.Join(v.enums[rule.Enum], ", "))
			return nil, &fe
		}
		return s, nil
	}

	switch rule.Type {
	case TypeInteger:
		n, constraint := toInt(raw)
		if constraint != "" {
			fe := rule.fail(constraint, "")
			return nil, &fe
		}
		if fe := v.checkBounds(rule, n); fe != nil {
			return nil, fe
		}
		return n, nil

	default:
		s, ok := raw.(string)
		if !ok {
			fe := rule.fail(ConstraintBase, "")
			return nil, &fe
		}

		if !rule.AllowEmpty && v.validate.Var(s, "required") != nil {
			fe := rule.fail(ConstraintEmpty, "")
			return nil, &fe
		}

		if rule.Format != "" && !v.matchesFormat(rule.Format, s) {
			fe := rule.fail(ConstraintFormat, rule.Format)
			return nil, &fe
		}

		if fe := v.checkBounds(rule, s); fe != nil {
			return nil, fe
		}
		return s, nil
	}
}

// matchesFormat reports whether s satisfies the named format.
// An unregistered format never matches.
func (v *Validator) matchesFormat(name, s string) bool {
	if _, ok := v.formats[name]; !ok {
		return false
	}
	return v.validate.Var(s, formatTag(name)) == nil
}

// checkBounds applies Min/Max through the validator's min/max tags:
// values for integers, lengths for strings.
func (v *Validator) checkBounds(rule Rule, value any) *errs.FieldError {
	var tags []string
	if rule.Min != nil {
		tags = append(tags, "min="+strconv.Itoa(*rule.Min))
	}
	if rule.Max != nil {
		tags = append(tags, "max="+strconv.Itoa(*rule.Max))
	}
	if len(tags) == 0 {
		return nil
	}

	err := v.validate.Var(value, strings.Join(tags, ","))
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		fe := rule.fail(ConstraintBase, "")
		return &fe
	}

	fieldErr := validationErrors[0]
	constraint := ConstraintMin
	if fieldErr.Tag() == "max" {
		constraint = ConstraintMax
	}

	param := fieldErr.Param()
	if fieldErr.Kind() == reflect.String {
		param += " characters"
	}

	fe := rule.fail(constraint, param)
	return &fe
}

// fail builds the field error for a violated constraint, preferring the
// rule's own message over the default one.
func (r Rule) fail(constraint, param string) errs.FieldError {
	msg, ok := r.Messages[constraint]
	if !ok {
		msg = r.defaultMessage(constraint, param)
	}

	return errs.FieldError{
		Field: r.Field,
		Kind:  kindOf(constraint),
		Error: msg,
	}
}

func (r Rule) defaultMessage(constraint, param string) string {
	field := label(r.Field)

	switch constraint {
	case ConstraintRequired:
		return field + " is required"
	case ConstraintBase:
		if r.Type == TypeInteger {
			return field + " must be a number"
		}
		return field + " must be a string"
	case ConstraintInteger:
		return field + " must be an integer"
	case ConstraintMin:
		return fmt.Sprintf("%s must be at least %s", field, param)
	case ConstraintMax:
		return fmt.Sprintf("%s must not exceed %s", field, param)
	case ConstraintEmpty:
		return field + " cannot be empty"
	case ConstraintOnly:
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case ConstraintFormat:
		return fmt.Sprintf("%s has an invalid %s format", field, param)
	default:
		return field + ": " + constraint
	}
}

// kindOf maps a constraint name onto the error taxonomy.
func kindOf(constraint string) errs.Kind {
	switch constraint {
	case ConstraintBase, ConstraintInteger:
		return errs.KindTypeMismatch
	case ConstraintMin, ConstraintMax:
		return errs.KindOutOfRange
	case ConstraintOnly:
		return errs.KindNotAllowedValue
	case ConstraintRequired:
		return errs.KindRequired
	case ConstraintEmpty:
		return errs.KindEmpty
	case ConstraintFormat:
		return errs.KindInvalidFormat
	case ConstraintMinFields:
		return errs.KindMinFieldsNotMet
	case ConstraintUnknown:
		return errs.KindUnknownField
	default:
		return errs.KindTypeMismatch
	}
}

func enumTag(name string) string {
	return "enum_" + name
}

func formatTag(name string) string {
	return "format_" + name
}
