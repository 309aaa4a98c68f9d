package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aafcanon/internal/canon"
	"aafcanon/internal/graph"
	"aafcanon/internal/logging"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "build <graph.json>",
		Short: "Build a canonical document from a graph snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.ensureLogger("build")
			input := args[0]

			g, err := graph.Open(input)
			if err != nil {
				if errors.Is(err, graph.ErrNotFound) {
					return &exitError{code: 2, message: err.Error()}
				}
				return err
			}

			doc, err := canon.Build(g, logger.With(logging.FieldDocument, filepath.Base(input)))
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
			data = append(data, '\n')

			if outputPath == "" || outputPath == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			target := outputPath
			if filepath.Base(target) == target {
				// Bare filenames land in the configured output directory.
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				target = filepath.Join(cfg.Paths.OutputDir, target)
			}
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("write document: %w", err)
			}
			logger.Info("canonical document written",
				"output", target,
				"events", len(doc.Timeline.Events))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the document to this path instead of stdout")
	return cmd
}
