package main

import (
	"fmt"

	"github.com/deppfellow/notes-validator/internal/config"
	"github.com/deppfellow/notes-validator/internal/logger"
	"github.com/deppfellow/notes-validator/internal/notes"
	"github.com/deppfellow/notes-validator/internal/validation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once the root pre-run has loaded config.
type app struct {
	verbose    bool
	abortEarly bool

	logger zerolog.Logger
	notes  *notes.Notes
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "notesvalidate",
		Short: "Validate notes API requests against their schemas",
		Long: `notesvalidate runs the notes API request schemas (listQuery, createBody,
idParam, updateSchema) against query, path and body input and prints either
the normalized request or the field errors a client would receive.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.abortEarly, "abort-early", false, "Report only the first violation")

	rootCmd.AddCommand(newCheckCmd(a), newSchemasCmd(a))

	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	a.logger = logger.New(cfg.Logging, cfg.Primary.Env)

	tags := cfg.Validation.Tags()
	if tags == nil {
		tags = notes.DefaultTags
	}

	opts := []validation.Option{validation.WithLogger(a.logger)}
	if a.abortEarly || cfg.Validation.AbortEarly {
		opts = append(opts, validation.WithAbortEarly())
	}

	a.notes, err = notes.New(tags, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}

	a.logger.Debug().Strs("tags", tags).Msg("validator ready")
	return nil
}
