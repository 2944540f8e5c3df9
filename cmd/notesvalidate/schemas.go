package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/deppfellow/notes-validator/internal/notes"
	"github.com/deppfellow/notes-validator/internal/validation"
	"github.com/spf13/cobra"
)

func newSchemasCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the request schemas and their rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCHEMA\tSEGMENT\tFIELD\tRULE")

			for _, rs := range notes.Schemas() {
				for _, s := range rs.Segments {
					for _, r := range s.Rules {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rs.Name, s.Segment, r.Field, describeRule(a, r))
					}
					if s.MinFields > 0 {
						fmt.Fprintf(w, "%s\t%s\t*\tat least %d field(s)\n", rs.Name, s.Segment, s.MinFields)
					}
				}
			}

			return w.Flush()
		},
	}
}

func describeRule(a *app, r validation.Rule) string {
	parts := []string{string(r.Type)}

	if r.Required {
		parts = append(parts, "required")
	} else {
		parts = append(parts, "optional")
	}
	if r.AllowEmpty {
		parts = append(parts, "empty allowed")
	}
	if r.Min != nil {
		parts = append(parts, fmt.Sprintf("min=%d", *r.Min))
	}
	if r.Max != nil {
		parts = append(parts, fmt.Sprintf("max=%d", *r.Max))
	}
	if r.Enum != "" {
		parts = append(parts, "one of: "+strings.Join(a.notes.Validator().Enum(r.Enum), "|"))
	}
	if r.Format != "" {
		parts = append(parts, "format="+r.Format)
	}
	if r.Default != nil {
		parts = append(parts, fmt.Sprintf("default=%v", r.Default))
	}

	return strings.Join(parts, ", ")
}
