package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"aafcanon/internal/canon"
	"aafcanon/internal/csvview"
	"aafcanon/internal/fcpxml"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a canonical document to other formats",
	}

	exportCmd.AddCommand(newExportCSVCommand(ctx))
	exportCmd.AddCommand(newExportFCPXMLCommand(ctx))
	return exportCmd
}

func newExportCSVCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "csv <canon.json>",
		Short: "Write the event list as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], outputPath, csvview.Write)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write CSV to this path instead of stdout")
	return cmd
}

func newExportFCPXMLCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "fcpxml <canon.json>",
		Short: "Write the timeline as an FCPXML interchange file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], outputPath, fcpxml.Write)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write FCPXML to this path instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, input, output string, write func(io.Writer, *canon.Document) error) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}

	if output == "" || output == "-" {
		return write(cmd.OutOrStdout(), doc)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := write(file, doc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
