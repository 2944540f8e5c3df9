// Package notes declares the request schemas of the notes API.
//
// The schemas are plain rule tables interpreted by the validation
// package. This package only supplies what is specific to notes:
// the tag vocabulary, the object identifier format, and typed
// request structs built from normalized values.
package notes

import (
	"fmt"

	"github.com/deppfellow/notes-validator/internal/validation"
)

const (
	// TagEnum is the enumeration name rules use for the tag field.
	TagEnum = "tag"

	// ObjectIDFormat is the format name rules use for note identifiers.
	ObjectIDFormat = "objectid"
)

// Notes validates notes API requests.
type Notes struct {
	validator *validation.Validator
}

// New builds a Notes validator for the given tag vocabulary.
// Extra options (logger, abort early) are passed to the underlying Validator.
func New(tags []string, opts ...validation.Option) (*Notes, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("tag vocabulary must not be empty")
	}

	opts = append([]validation.Option{
		validation.WithEnum(TagEnum, tags),
		validation.WithFormat(ObjectIDFormat, IsValidObjectID),
	}, opts...)

	v, err := validation.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build notes validator: %w", err)
	}

	return &Notes{validator: v}, nil
}

// Validator exposes the underlying interpreter, e.g. for BindAndValidate.
func (n *Notes) Validator() *validation.Validator {
	return n.validator
}

// Tags returns the configured tag vocabulary.
func (n *Notes) Tags() []string {
	return n.validator.Enum(TagEnum)
}

// Validate runs the schema registered under name.
func (n *Notes) Validate(name string, in validation.Segments) (validation.Segments, error) {
	schema, ok := SchemaByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return n.validator.Validate(schema, in)
}

// ListQuery validates the query of a list request.
func (n *Notes) ListQuery(query validation.Fields) (ListParams, error) {
	out, err := n.validator.Validate(ListQuerySchema, validation.Segments{validation.SegmentQuery: query})
	if err != nil {
		return ListParams{}, err
	}
	return ListParamsFrom(out), nil
}

// CreateBody validates the body of a create request.
func (n *Notes) CreateBody(body validation.Fields) (CreateInput, error) {
	out, err := n.validator.Validate(CreateBodySchema, validation.Segments{validation.SegmentBody: body})
	if err != nil {
		return CreateInput{}, err
	}
	return CreateInputFrom(out), nil
}

// IDParam validates the path parameters identifying a note.
func (n *Notes) IDParam(params validation.Fields) (NoteID, error) {
	out, err := n.validator.Validate(IDParamSchema, validation.Segments{validation.SegmentParams: params})
	if err != nil {
		return "", err
	}
	return NoteIDFrom(out), nil
}

// Update validates both segments of a partial update.
func (n *Notes) Update(params, body validation.Fields) (UpdateInput, error) {
	out, err := n.validator.Validate(UpdateSchema, validation.Segments{
		validation.SegmentParams: params,
		validation.SegmentBody:   body,
	})
	if err != nil {
		return UpdateInput{}, err
	}
	return UpdateInputFrom(out), nil
}
