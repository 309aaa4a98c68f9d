package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aafcanon/internal/canondb"
	"aafcanon/internal/canonval"
)

func newLoadCommand(ctx *commandContext) *cobra.Command {
	var dbPath string
	var reset bool

	cmd := &cobra.Command{
		Use:   "load <canon.json>...",
		Short: "Load canonical documents into the SQLite database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.ensureLogger("load")

			target := strings.TrimSpace(dbPath)
			if target == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				target = cfg.Paths.DatabasePath
			}

			validator := canonval.New()
			for _, path := range args {
				report := validator.ValidateFile(path)
				if !report.OK {
					return &exitError{
						code:    report.ExitCode(),
						message: fmt.Sprintf("%s failed validation (%d issue(s)); not loading", path, len(report.Errors)),
					}
				}
			}

			store, err := canondb.Open(cmd.Context(), target)
			if err != nil {
				return err
			}
			defer store.Close()

			if reset {
				if err := store.Reset(cmd.Context()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, path := range args {
				doc, err := loadDocument(path)
				if err != nil {
					return err
				}
				result, err := store.Load(cmd.Context(), doc)
				if err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				logger.Info("document loaded",
					"path", path,
					"document_id", result.DocumentID,
					"events", result.Events)
				fmt.Fprintf(out, "%s: loaded %d event(s) as document %d\n", path, result.Events, result.DocumentID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (defaults to the configured database_path)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Drop existing rows before loading")
	return cmd
}
