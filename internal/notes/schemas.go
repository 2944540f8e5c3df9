package notes

import "github.com/deppfellow/notes-validator/internal/validation"

// Schema names, as used by the CLI and SchemaByName.
const (
	ListQueryName    = "listQuery"
	CreateBodyName   = "createBody"
	IDParamName      = "idParam"
	UpdateSchemaName = "updateSchema"
)

var listTagRule = validation.Rule{
	Field: "tag",
	Type:  validation.TypeString,
	Enum:  TagEnum,
	Messages: map[string]string{
		validation.ConstraintBase: "Tag must be a string",
		validation.ConstraintOnly: "Tag must be one of the allowed values",
	},
}

var bodyTagRule = validation.Rule{
	Field: "tag",
	Type:  validation.TypeString,
	Enum:  TagEnum,
	Messages: map[string]string{
		validation.ConstraintBase: "Tag must be a string.",
		validation.ConstraintOnly: "Tag must be one of the allowed values.",
	},
}

var contentRule = validation.Rule{
	Field:      "content",
	Type:       validation.TypeString,
	AllowEmpty: true,
	Messages: map[string]string{
		validation.ConstraintBase: "Content must be a string.",
	},
}

var noteIDRule = validation.Rule{
	Field:    "noteId",
	Type:     validation.TypeString,
	Required: true,
	// An empty id is malformed rather than empty.
	AllowEmpty: true,
	Format:     ObjectIDFormat,
	Messages: map[string]string{
		validation.ConstraintBase:     "Note ID must be a string.",
		validation.ConstraintFormat:   "Invalid note ID format. Must be a 24-character hexadecimal ObjectId.",
		validation.ConstraintRequired: "Note ID is required in route parameters.",
	},
}

// ListQuerySchema validates pagination and filters of the list operation.
var ListQuerySchema = validation.RequestSchema{
	Name: ListQueryName,
	Segments: []validation.Schema{{
		Segment: validation.SegmentQuery,
		Rules: []validation.Rule{
			{
				Field:   "page",
				Type:    validation.TypeInteger,
				Min:     validation.Bound(1),
				Default: 1,
				Messages: map[string]string{
					validation.ConstraintBase:    "Page must be a number",
					validation.ConstraintInteger: "Page must be an integer",
					validation.ConstraintMin:     "Page must be greater than or equal to 1",
				},
			},
			{
				Field:   "perPage",
				Type:    validation.TypeInteger,
				Min:     validation.Bound(5),
				Max:     validation.Bound(20),
				Default: 10,
				Messages: map[string]string{
					validation.ConstraintBase:    "Per page must be a number",
					validation.ConstraintInteger: "Per page must be an integer",
					validation.ConstraintMin:     "Per page must be greater than or equal to 5",
					validation.ConstraintMax:     "Per page must be less than or equal to 20",
				},
			},
			listTagRule,
			{
				Field:      "search",
				Type:       validation.TypeString,
				AllowEmpty: true,
				Messages: map[string]string{
					validation.ConstraintBase: "Search must be a string",
				},
			},
		},
	}},
}

// CreateBodySchema validates the payload of the create operation.
var CreateBodySchema = validation.RequestSchema{
	Name: CreateBodyName,
	Segments: []validation.Schema{{
		Segment: validation.SegmentBody,
		Rules: []validation.Rule{
			{
				Field:    "title",
				Type:     validation.TypeString,
				Required: true,
				Min:      validation.Bound(1),
				Messages: map[string]string{
					validation.ConstraintBase:     "Title must be a string.",
					validation.ConstraintEmpty:    "Title cannot be empty.",
					validation.ConstraintMin:      "Title must have at least 1 character.",
					validation.ConstraintRequired: "Title is required.",
				},
			},
			contentRule,
			bodyTagRule,
		},
	}},
}

// IDParamSchema validates the path parameter identifying a note.
var IDParamSchema = validation.RequestSchema{
	Name: IDParamName,
	Segments: []validation.Schema{{
		Segment: validation.SegmentParams,
		Rules:   []validation.Rule{noteIDRule},
	}},
}

// UpdateSchema validates a partial update. The at-least-one-field rule
// belongs to the body only; noteId is required on its own.
var UpdateSchema = validation.RequestSchema{
	Name: UpdateSchemaName,
	Segments: []validation.Schema{
		{
			Segment: validation.SegmentParams,
			Rules:   []validation.Rule{noteIDRule},
		},
		{
			Segment: validation.SegmentBody,
			Rules: []validation.Rule{
				{
					Field: "title",
					Type:  validation.TypeString,
					Min:   validation.Bound(1),
					Messages: map[string]string{
						validation.ConstraintBase:  "Title must be a string.",
						validation.ConstraintEmpty: "Title cannot be empty.",
						validation.ConstraintMin:   "Title must have at least 1 character.",
					},
				},
				contentRule,
				bodyTagRule,
			},
			MinFields: 1,
			Messages: map[string]string{
				validation.ConstraintMinFields: "Request body must contain at least one field (title, content, or tag) to update.",
			},
		},
	},
}

// Schemas lists every request schema in a stable order.
func Schemas() []validation.RequestSchema {
	return []validation.RequestSchema{ListQuerySchema, CreateBodySchema, IDParamSchema, UpdateSchema}
}

// SchemaByName looks a schema up by its name.
func SchemaByName(name string) (validation.RequestSchema, bool) {
	for _, s := range Schemas() {
		if s.Name == name {
			return s, true
		}
	}
	return validation.RequestSchema{}, false
}
