package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"aafcanon/internal/canon"
	"aafcanon/internal/timecode"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <canon.json>",
		Short: "Display a canonical document's event table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, doc)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project:  %s (%.6g fps, %s)\n",
				doc.Project.Name, doc.Project.EditRateFPS, doc.Project.TCFormat)
			fmt.Fprintf(out, "Timeline: %s starting at %s\n\n",
				doc.Timeline.Name, startTC(doc))
			fmt.Fprintln(out, renderTable(
				[]string{"EVENT", "RECORD TC", "LENGTH", "SOURCE", "TAPE", "EFFECT"},
				eventRows(doc),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the document as JSON instead of a table")
	return cmd
}

func startTC(doc *canon.Document) string {
	drop := doc.Project.TCFormat == canon.TCFormatDrop
	return timecode.Format(doc.Timeline.StartTCFrames, doc.Project.EditRateFPS, drop)
}

func eventRows(doc *canon.Document) [][]string {
	drop := doc.Project.TCFormat == canon.TCFormatDrop
	fps := doc.Project.EditRateFPS

	rows := make([][]string, 0, len(doc.Timeline.Events))
	for _, ev := range doc.Timeline.Events {
		record := timecode.Format(doc.Timeline.StartTCFrames+ev.TimelineStartFrames, fps, drop)

		source := "-"
		tape := "-"
		if ev.Source != nil {
			if ev.Source.Path != nil {
				source = *ev.Source.Path
			}
			if ev.Source.TapeID != nil {
				tape = *ev.Source.TapeID
			}
		}

		effect := ev.Effect.Name
		if ev.Effect.OnFiller {
			effect += " (filler)"
		}

		rows = append(rows, []string{
			ev.ID,
			record,
			strconv.FormatInt(ev.LengthFrames, 10),
			source,
			tape,
			effect,
		})
	}
	return rows
}
