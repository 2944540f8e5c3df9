package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/deppfellow/notes-validator/internal/notes"
	"github.com/deppfellow/notes-validator/internal/validation"
	"github.com/spf13/cobra"
)

// errInvalidRequest makes the command exit non-zero after the field errors were printed.
var errInvalidRequest = errors.New("request is invalid")

func newCheckCmd(a *app) *cobra.Command {
	var (
		query  map[string]string
		params map[string]string
		body   string
	)

	cmd := &cobra.Command{
		Use:   "check [schema]",
		Short: "Validate a request against a schema",
		Long: `Validate a request against one of the notes schemas.
Prints the normalized segments as JSON, or the 400 error body and exits 1.
Use --body - to read the JSON body from stdin.`,
		Example: `  notesvalidate check listQuery --query perPage=25
  notesvalidate check updateSchema --param noteId=507f1f77bcf86cd799439011 --body '{"title":"New"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, ok := notes.SchemaByName(args[0])
			if !ok {
				return fmt.Errorf("unknown schema %q", args[0])
			}

			bodyFields, err := readBody(body, cmd.InOrStdin())
			if err != nil {
				return err
			}

			in := validation.Segments{
				validation.SegmentQuery:  toFields(query),
				validation.SegmentParams: toFields(params),
				validation.SegmentBody:   bodyFields,
			}

			out, err := a.notes.Validator().Validate(schema, in)
			if err != nil {
				validationErrors, ok := validation.AsErrors(err)
				if !ok {
					return err
				}
				if err := writeJSON(cmd.OutOrStdout(), validationErrors.HTTPError()); err != nil {
					return err
				}
				return errInvalidRequest
			}

			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringToStringVar(&query, "query", nil, "Query parameter key=value (repeatable)")
	cmd.Flags().StringToStringVar(&params, "param", nil, "Path parameter key=value (repeatable)")
	cmd.Flags().StringVar(&body, "body", "", "JSON body, or - to read it from stdin")

	return cmd
}

func toFields(m map[string]string) validation.Fields {
	fields := make(validation.Fields, len(m))
	for k, v := range m {
		fields[k] = v
	}
	return fields
}

// readBody decodes the --body flag. An empty flag is an empty object.
func readBody(body string, stdin io.Reader) (validation.Fields, error) {
	var r io.Reader = strings.NewReader(body)
	if body == "-" {
		r = stdin
	} else if strings.TrimSpace(body) == "" {
		return validation.Fields{}, nil
	}

	fields := validation.Fields{}
	if err := json.NewDecoder(r).Decode(&fields); err != nil {
		return nil, fmt.Errorf("body must be a JSON object: %w", err)
	}
	if fields == nil {
		fields = validation.Fields{}
	}
	return fields, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
