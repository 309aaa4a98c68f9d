package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"aafcanon/internal/canonval"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var reportPath string
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate <canon.json>",
		Short: "Validate a canonical document",
		Long: "Validate checks a canonical document against the required shape and\n" +
			"its structural invariants. Exit code 0 means valid, 1 means the\n" +
			"document failed validation, 2 means the file could not be read or\n" +
			"parsed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := canonval.New().ValidateFile(args[0])

			if reportPath != "" {
				target := reportPath
				if filepath.Base(target) == target {
					// Bare filenames land in the configured report directory.
					cfg, err := ctx.ensureConfig()
					if err != nil {
						return err
					}
					target = filepath.Join(cfg.Paths.ReportDir, target)
				}
				if err := writeReportFile(target, report); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if !quiet {
				if report.OK {
					fmt.Fprintf(out, "%s: valid\n", args[0])
				} else {
					fmt.Fprintf(out, "%s: invalid (%d issue(s))\n", args[0], len(report.Errors))
					printIssues(cmd, report, verbose)
				}
			}

			if code := report.ExitCode(); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Write the full validation report as JSON to this path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every issue with its documentation reference")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress output; communicate via exit code only")
	return cmd
}

func printIssues(cmd *cobra.Command, report canonval.Report, verbose bool) {
	out := cmd.OutOrStdout()
	for _, issue := range report.Errors {
		fmt.Fprintf(out, "  %s %s: %s\n", issue.Code, issue.Path, issue.Message)
		if verbose && issue.Doc != "" {
			fmt.Fprintf(out, "    see %s\n", issue.Doc)
		}
	}
	if verbose && len(report.Summary.ReasonCodes) > 0 {
		counts := make(map[string]int, len(report.Summary.ReasonCodes))
		codes := make([]string, 0, len(report.Summary.ReasonCodes))
		for _, code := range report.Summary.ReasonCodes {
			if counts[code] == 0 {
				codes = append(codes, code)
			}
			counts[code]++
		}
		sort.Strings(codes)
		fmt.Fprintln(out, "  reason codes:")
		for _, code := range codes {
			fmt.Fprintf(out, "    %s: %d\n", code, counts[code])
		}
	}
}

func writeReportFile(path string, report canonval.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
