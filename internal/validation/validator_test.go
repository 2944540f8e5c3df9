package validation

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/deppfellow/notes-validator/internal/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var colorSchema = RequestSchema{
	Name: "paint",
	Segments: []Schema{{
		Segment: SegmentBody,
		Rules: []Rule{
			{Field: "name", Type: TypeString, Required: true, Max: Bound(8)},
			{Field: "note", Type: TypeString, AllowEmpty: true},
			{Field: "color", Type: TypeString, Enum: "color"},
			{Field: "code", Type: TypeString, Format: "upper"},
			{Field: "coats", Type: TypeInteger, Min: Bound(1), Max: Bound(3), Default: 2},
		},
	}},
}

func newTestValidator(t *testing.T, opts ...Option) *Validator {
	t.Helper()

	opts = append([]Option{
		WithEnum("color", []string{"red", "green", "blue"}),
		WithFormat("upper", func(s string) bool { return s != "" && strings.ToUpper(s) == s }),
	}, opts...)

	v, err := New(opts...)
	require.NoError(t, err)
	return v
}

func validateBody(t *testing.T, v *Validator, body Fields) (Fields, Errors) {
	t.Helper()

	out, err := v.Validate(colorSchema, Segments{SegmentBody: body})
	if err != nil {
		validationErrors, ok := AsErrors(err)
		require.True(t, ok, "expected validation.Errors, got %T", err)
		return nil, validationErrors
	}
	return out[SegmentBody], nil
}

func TestValidate_AppliesDefaults(t *testing.T) {
	v := newTestValidator(t)

	out, fieldErrs := validateBody(t, v, Fields{"name": "wall"})
	require.Empty(t, fieldErrs)

	assert.Equal(t, Fields{"name": "wall", "coats": 2}, out)
}

func TestValidate_FieldKinds(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name  string
		body  Fields
		field string
		kind  errs.Kind
	}{
		{"missing required", Fields{}, "name", errs.KindRequired},
		{"empty required", Fields{"name": ""}, "name", errs.KindEmpty},
		{"string too long", Fields{"name": "ninechars"}, "name", errs.KindOutOfRange},
		{"wrong type", Fields{"name": 12}, "name", errs.KindTypeMismatch},
		{"explicit null", Fields{"name": nil}, "name", errs.KindTypeMismatch},
		{"not in enum", Fields{"name": "a", "color": "pink"}, "color", errs.KindNotAllowedValue},
		{"non-string enum", Fields{"name": "a", "color": 3}, "color", errs.KindNotAllowedValue},
		{"empty enum", Fields{"name": "a", "color": ""}, "color", errs.KindNotAllowedValue},
		{"bad format", Fields{"name": "a", "code": "abc"}, "code", errs.KindInvalidFormat},
		{"not a number", Fields{"name": "a", "coats": "many"}, "coats", errs.KindTypeMismatch},
		{"fraction", Fields{"name": "a", "coats": 1.5}, "coats", errs.KindTypeMismatch},
		{"below min", Fields{"name": "a", "coats": 0}, "coats", errs.KindOutOfRange},
		{"above max", Fields{"name": "a", "coats": "4"}, "coats", errs.KindOutOfRange},
		{"unknown key", Fields{"name": "a", "gloss": true}, "gloss", errs.KindUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fieldErrs := validateBody(t, v, tt.body)
			require.Len(t, fieldErrs, 1, "errors: %v", fieldErrs)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
			assert.Equal(t, tt.kind, fieldErrs[0].Kind)
			assert.Equal(t, string(SegmentBody), fieldErrs[0].Segment)
			assert.NotEmpty(t, fieldErrs[0].Error)
		})
	}
}

func TestValidate_DefaultMessages(t *testing.T) {
	v := newTestValidator(t)

	_, fieldErrs := validateBody(t, v, Fields{"coats": 9, "color": "pink"})
	require.Len(t, fieldErrs, 3)

	assert.Equal(t, "name is required", fieldErrs[0].Error)
	assert.Equal(t, "color must be one of: red, green, blue", fieldErrs[1].Error)
	assert.Equal(t, "coats must not exceed 3", fieldErrs[2].Error)
}

func TestValidate_CustomMessageWins(t *testing.T) {
	v := newTestValidator(t)
	schema := RequestSchema{Segments: []Schema{{
		Segment: SegmentQuery,
		Rules: []Rule{{
			Field:    "limit",
			Type:     TypeInteger,
			Min:      Bound(1),
			Messages: map[string]string{ConstraintMin: "Limit is too small"},
		}},
	}}}

	_, err := v.Validate(schema, Segments{SegmentQuery: Fields{"limit": "0"}})
	validationErrors, ok := AsErrors(err)
	require.True(t, ok)
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "Limit is too small", validationErrors[0].Error)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	v := newTestValidator(t)

	_, fieldErrs := validateBody(t, v, Fields{"name": "", "color": "pink", "coats": "x", "extra": 1})
	require.Len(t, fieldErrs, 4)

	assert.True(t, fieldErrs.Has("name", errs.KindEmpty))
	assert.True(t, fieldErrs.Has("color", errs.KindNotAllowedValue))
	assert.True(t, fieldErrs.Has("coats", errs.KindTypeMismatch))
	assert.True(t, fieldErrs.Has("extra", errs.KindUnknownField))
}

func TestValidate_AbortEarly(t *testing.T) {
	v := newTestValidator(t, WithAbortEarly())

	_, fieldErrs := validateBody(t, v, Fields{"name": "", "color": "pink", "coats": "x"})
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "name", fieldErrs[0].Field)
}

func TestValidate_AllowEmpty(t *testing.T) {
	v := newTestValidator(t)

	out, fieldErrs := validateBody(t, v, Fields{"name": "a", "note": ""})
	require.Empty(t, fieldErrs)
	assert.Equal(t, "", out["note"])
}

func TestValidate_MinFields(t *testing.T) {
	v := newTestValidator(t)
	schema := RequestSchema{Segments: []Schema{{
		Segment:   SegmentBody,
		Rules:     []Rule{{Field: "a", Type: TypeString}, {Field: "b", Type: TypeString}},
		MinFields: 1,
	}}}

	_, err := v.Validate(schema, Segments{SegmentBody: Fields{}})
	validationErrors, ok := AsErrors(err)
	require.True(t, ok)
	require.Len(t, validationErrors, 1)
	assert.Equal(t, errs.KindMinFieldsNotMet, validationErrors[0].Kind)
	assert.Equal(t, "body", validationErrors[0].Field)
	assert.Equal(t, "body must contain at least 1 field(s): a, b", validationErrors[0].Error)

	// A nil segment is an empty one.
	_, err = v.Validate(schema, Segments{})
	require.Error(t, err)

	out, err := v.Validate(schema, Segments{SegmentBody: Fields{"b": "x"}})
	require.NoError(t, err)
	assert.Equal(t, Fields{"b": "x"}, out[SegmentBody])
}

func TestValidate_AllowUnknownPassesThrough(t *testing.T) {
	v := newTestValidator(t)
	schema := RequestSchema{Segments: []Schema{{
		Segment:      SegmentQuery,
		Rules:        []Rule{{Field: "q", Type: TypeString}},
		AllowUnknown: true,
	}}}

	out, err := v.Validate(schema, Segments{SegmentQuery: Fields{"q": "x", "utm": "mail"}})
	require.NoError(t, err)
	assert.Equal(t, Fields{"q": "x", "utm": "mail"}, out[SegmentQuery])
}

func TestValidate_UnregisteredNamesNeverMatch(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	schema := RequestSchema{Segments: []Schema{{
		Segment: SegmentBody,
		Rules: []Rule{
			{Field: "kind", Type: TypeString, Enum: "missing"},
			{Field: "id", Type: TypeString, Format: "missing"},
		},
	}}}

	_, err = v.Validate(schema, Segments{SegmentBody: Fields{"kind": "x", "id": "y"}})
	validationErrors, ok := AsErrors(err)
	require.True(t, ok)
	assert.True(t, validationErrors.Has("kind", errs.KindNotAllowedValue))
	assert.True(t, validationErrors.Has("id", errs.KindInvalidFormat))
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	v := newTestValidator(t)

	body := Fields{"name": "wall", "coats": "3"}
	in := Segments{SegmentBody: body}

	out, err := v.Validate(colorSchema, in)
	require.NoError(t, err)

	assert.Equal(t, Fields{"name": "wall", "coats": "3"}, body)
	assert.Len(t, in, 1)
	assert.Equal(t, 3, out[SegmentBody]["coats"])

	out[SegmentBody]["name"] = "changed"
	assert.Equal(t, "wall", body["name"])
}

func TestValidate_Idempotent(t *testing.T) {
	v := newTestValidator(t)

	inputs := []Fields{
		{"name": "wall"},
		{"name": "", "color": "pink", "zzz": 1, "aaa": 2},
	}

	for _, body := range inputs {
		out1, err1 := v.Validate(colorSchema, Segments{SegmentBody: body})
		out2, err2 := v.Validate(colorSchema, Segments{SegmentBody: body})

		assert.Equal(t, out1, out2)
		assert.Equal(t, err1, err2)
	}
}

func TestValidate_ConcurrentUse(t *testing.T) {
	v := newTestValidator(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			coats := i%3 + 1
			out, err := v.Validate(colorSchema, Segments{SegmentBody: Fields{"name": "wall", "coats": coats}})
			assert.NoError(t, err)
			assert.Equal(t, coats, out[SegmentBody]["coats"])
		}(i)
	}
	wg.Wait()
}

func TestValidate_LogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	v := newTestValidator(t, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	_, err := v.Validate(colorSchema, Segments{SegmentBody: Fields{}})
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"schema":"paint"`)
	assert.Contains(t, buf.String(), `"error_count":1`)
	assert.Contains(t, buf.String(), "request validation failed")
}

func TestEnumReturnsCopy(t *testing.T) {
	v := newTestValidator(t)

	values := v.Enum("color")
	values[0] = "black"

	assert.Equal(t, []string{"red", "green", "blue"}, v.Enum("color"))
	assert.Empty(t, v.Enum("missing"))
}

func TestErrors_HTTPError(t *testing.T) {
	validationErrors := Errors{{Segment: "body", Field: "name", Kind: errs.KindRequired, Error: "name is required"}}

	httpErr := validationErrors.HTTPError()
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.True(t, httpErr.HasKind("name", errs.KindRequired))
	assert.Equal(t, "Validation failed: body.name: name is required", validationErrors.Error())
}
