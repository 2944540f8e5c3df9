package notes

import "github.com/deppfellow/notes-validator/internal/validation"

// ListParams is a normalized list query. Page and PerPage always hold a value.
type ListParams struct {
	Page    int     `json:"page"`
	PerPage int     `json:"perPage"`
	Tag     *string `json:"tag,omitempty"`
	Search  *string `json:"search,omitempty"`
}

// Offset is the number of notes to skip for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// CreateInput is a validated create payload.
type CreateInput struct {
	Title   string  `json:"title"`
	Content *string `json:"content,omitempty"`
	Tag     *string `json:"tag,omitempty"`
}

// NoteID is a validated 24-hex note identifier.
type NoteID string

// UpdateInput is a validated partial update. Nil fields were not sent.
type UpdateInput struct {
	NoteID  NoteID  `json:"noteId"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Tag     *string `json:"tag,omitempty"`
}

// ListParamsFrom reads normalized list query segments.
func ListParamsFrom(s validation.Segments) ListParams {
	query := s[validation.SegmentQuery]
	page, _ := query.Int("page")
	perPage, _ := query.Int("perPage")

	return ListParams{
		Page:    page,
		PerPage: perPage,
		Tag:     query.StringPtr("tag"),
		Search:  query.StringPtr("search"),
	}
}

// CreateInputFrom reads normalized create segments.
func CreateInputFrom(s validation.Segments) CreateInput {
	body := s[validation.SegmentBody]
	title, _ := body.String("title")

	return CreateInput{
		Title:   title,
		Content: body.StringPtr("content"),
		Tag:     body.StringPtr("tag"),
	}
}

// NoteIDFrom reads the note identifier from normalized params.
func NoteIDFrom(s validation.Segments) NoteID {
	id, _ := s[validation.SegmentParams].String("noteId")
	return NoteID(id)
}

// UpdateInputFrom reads normalized update segments.
func UpdateInputFrom(s validation.Segments) UpdateInput {
	body := s[validation.SegmentBody]

	return UpdateInput{
		NoteID:  NoteIDFrom(s),
		Title:   body.StringPtr("title"),
		Content: body.StringPtr("content"),
		Tag:     body.StringPtr("tag"),
	}
}
