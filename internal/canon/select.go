package canon

import (
	"strings"

	"aafcanon/internal/graph"
)

const (
	// exportedSuffix marks composition names produced by a timeline export.
	exportedSuffix = ".Exported.01"

	// DefaultFPS is the edit rate assumed when the slot rate is missing or
	// unparsable.
	DefaultFPS = 25.0

	// defaultStartTCFrames is the conventional 01:00:00:00 starting offset
	// used when the composition exposes no timecode node.
	defaultStartTCFrames = 3600
)

// Selection is the outcome of picking the timeline to build from.
type Selection struct {
	Comp          *graph.Mob
	Root          *graph.Segment
	FPS           float64
	Drop          bool
	StartTCFrames int64
	TimelineName  string
}

// SelectTimeline picks the composition mob and picture track the build will
// walk. Compositions whose name carries the exported suffix win; otherwise
// the first composition found is used. The picture slot is the one whose
// segment is a Sequence. Missing compositions or picture slots are fatal.
func SelectTimeline(g *graph.Graph) (Selection, error) {
	comps := g.Compositions()
	if len(comps) == 0 {
		return Selection{}, wrapStage(ErrSelection, "select", "no composition mob in graph", nil)
	}

	comp := comps[0]
	for _, m := range comps {
		if strings.HasSuffix(m.Name, exportedSuffix) {
			comp = m
			break
		}
	}

	var picture *graph.Slot
	for _, slot := range comp.Slots {
		if slot.Segment != nil && slot.Segment.Kind == graph.KindSequence {
			picture = slot
			break
		}
	}
	if picture == nil {
		return Selection{}, wrapStage(ErrSelection, "select", "composition "+comp.Name+" has no picture slot", nil)
	}

	sel := Selection{
		Comp:          comp,
		Root:          picture.Segment,
		FPS:           picture.EditRate.FPS(DefaultFPS),
		Drop:          false,
		StartTCFrames: defaultStartTCFrames,
		TimelineName:  timelineName(comp),
	}

	if tc := findTimecode(picture.Segment); tc != nil {
		sel.Drop = tc.Drop
		if tc.Start >= 0 {
			sel.StartTCFrames = tc.Start
		}
	} else if tc := timecodeFromSlots(comp); tc != nil {
		sel.Drop = tc.Drop
		if tc.Start >= 0 {
			sel.StartTCFrames = tc.Start
		}
	}

	return sel, nil
}

func timelineName(comp *graph.Mob) string {
	if strings.TrimSpace(comp.Name) == "" {
		return "Timeline"
	}
	return comp.Name
}

// findTimecode searches the segment tree depth-first for a Timecode node.
func findTimecode(seg *graph.Segment) *graph.Segment {
	if seg == nil {
		return nil
	}
	if seg.Kind == graph.KindTimecode {
		return seg
	}
	for _, c := range seg.Components {
		if tc := findTimecode(c); tc != nil {
			return tc
		}
	}
	for _, in := range seg.Inputs {
		if tc := findTimecode(in); tc != nil {
			return tc
		}
	}
	return findTimecode(seg.Segment)
}

// timecodeFromSlots checks the composition's other slots for a dedicated
// Timecode track adjacent to the picture slot.
func timecodeFromSlots(comp *graph.Mob) *graph.Segment {
	for _, slot := range comp.Slots {
		if tc := findTimecode(slot.Segment); tc != nil {
			return tc
		}
	}
	return nil
}
