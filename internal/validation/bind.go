package validation

import (
	"github.com/deppfellow/notes-validator/internal/errs"
	"github.com/labstack/echo/v4"
)

// BindAndValidate gathers the segments schema needs from an Echo request
// and validates them.
//
// Flow:
//  1. query params, path params and the JSON body are read into Segments
//     (only the segments the schema covers).
//  2. v.Validate applies the rules.
//  3. Returns *errs.HTTPError (400) with field-level errors if validation fails.
func BindAndValidate(c echo.Context, v *Validator, schema RequestSchema) (Segments, error) {
	in, err := SegmentsFromContext(c, schema)
	if err != nil {
		return nil, err
	}

	out, err := v.Validate(schema, in)
	if err != nil {
		if validationErrors, ok := AsErrors(err); ok {
			return nil, validationErrors.HTTPError()
		}
		return nil, err
	}

	return out, nil
}

// SegmentsFromContext reads the raw segments covered by schema.
//
// Query values stay strings; a key repeated in the query string becomes
// a []string so it fails the type check instead of silently using one value.
// A missing or null body is an empty segment.
func SegmentsFromContext(c echo.Context, schema RequestSchema) (Segments, error) {
	in := make(Segments, len(schema.Segments))

	for _, s := range schema.Segments {
		switch s.Segment {
		case SegmentQuery:
			fields := make(Fields)
			for name, values := range c.QueryParams() {
				if len(values) == 1 {
					fields[name] = values[0]
				} else {
					fields[name] = values
				}
			}
			in[SegmentQuery] = fields

		case SegmentParams:
			fields := make(Fields)
			names := c.ParamNames()
			values := c.ParamValues()
			for i, name := range names {
				if i < len(values) {
					fields[name] = values[i]
				}
			}
			in[SegmentParams] = fields

		case SegmentBody:
			body := map[string]any{}
			binder := &echo.DefaultBinder{}
			if err := binder.BindBody(c, &body); err != nil {
				return nil, errs.NewBadRequestError("Request body must be a valid JSON object", false, nil, nil)
			}
			if body == nil {
				body = map[string]any{}
			}
			in[SegmentBody] = Fields(body)
		}
	}

	return in, nil
}
