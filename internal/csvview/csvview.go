// Package csvview flattens canonical documents into CSV event tables for
// spreadsheet viewing.
package csvview

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"aafcanon/internal/canon"
)

// Header is the column set of the flattened event table.
var Header = []string{
	"timeline",
	"event_id",
	"start_frames",
	"length_frames",
	"source_path",
	"tape_id",
	"disk_label",
	"effect",
	"on_filler",
	"parameters",
	"keyframes",
	"external_refs",
}

// Rows flattens the document's events into table rows, one per event, in
// canonical order.
func Rows(doc *canon.Document) [][]string {
	rows := make([][]string, 0, len(doc.Timeline.Events))
	for _, ev := range doc.Timeline.Events {
		rows = append(rows, eventRow(doc.Timeline.Name, ev))
	}
	return rows
}

// Write renders the document as CSV with a header row.
func Write(w io.Writer, doc *canon.Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range Rows(doc) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func eventRow(timeline string, ev canon.Event) []string {
	var path, tape, disk string
	if ev.Source != nil {
		path = stringOrEmpty(ev.Source.Path)
		tape = stringOrEmpty(ev.Source.TapeID)
		disk = stringOrEmpty(ev.Source.DiskLabel)
	}

	var keyframeCount int
	for _, series := range ev.Effect.Keyframes {
		keyframeCount += len(series)
	}

	return []string{
		timeline,
		ev.ID,
		strconv.FormatInt(ev.TimelineStartFrames, 10),
		strconv.FormatInt(ev.LengthFrames, 10),
		path,
		tape,
		disk,
		ev.Effect.Name,
		strconv.FormatBool(ev.Effect.OnFiller),
		strconv.Itoa(len(ev.Effect.Parameters)),
		strconv.Itoa(keyframeCount),
		strconv.Itoa(len(ev.Effect.ExternalRefs)),
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
