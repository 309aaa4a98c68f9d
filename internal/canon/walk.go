package canon

import (
	"aafcanon/internal/graph"
)

// Occurrence is one flattened timeline occurrence produced by the walker.
// Exactly one of Clip/Group is set for media-only and effect-on-filler
// events; both are set when the group wraps a reachable clip.
type Occurrence struct {
	Index      int
	StartFrame int64
	Length     int64
	Clip       *graph.Segment
	Group      *graph.Segment
}

type frameRange struct {
	start, length int64
}

type walker struct {
	occurrences []Occurrence
	processed   map[frameRange]struct{}
}

// WalkTimeline flattens the picture-track segment tree into an ordered
// occurrence list with absolute frame offsets starting at 0. Traversal is
// depth-first in document order, so repeated walks of the same graph yield
// identical output.
func WalkTimeline(root *graph.Segment) []Occurrence {
	w := &walker{processed: make(map[frameRange]struct{})}
	w.walk(root, 0)
	if w.occurrences == nil {
		return []Occurrence{}
	}
	return w.occurrences
}

// walk consumes seg at the given absolute offset and returns the number of
// frames it occupied on the timeline.
func (w *walker) walk(seg *graph.Segment, offset int64) int64 {
	if seg == nil {
		return 0
	}

	switch seg.Kind {
	case graph.KindSequence:
		var consumed int64
		for _, c := range seg.Components {
			consumed += w.walk(c, offset+consumed)
		}
		return consumed

	case graph.KindOperationGroup:
		w.emit(Occurrence{
			StartFrame: offset,
			Length:     seg.Length,
			Clip:       nestedSourceClip(seg),
			Group:      seg,
		})
		return seg.Length

	case graph.KindSourceClip:
		w.emit(Occurrence{
			StartFrame: offset,
			Length:     seg.Length,
			Clip:       seg,
		})
		return seg.Length

	case graph.KindFiller, graph.KindTransition:
		return seg.Length

	case graph.KindTimecode:
		// Timecode nodes annotate the track; they occupy no timeline span.
		return 0

	case graph.KindScopeReference:
		// Internal input references are never resolved to sources.
		return seg.Length

	default:
		// Unknown kinds: recurse into whatever children they expose, never
		// losing frame accounting when they expose none.
		if len(seg.Components) > 0 {
			var consumed int64
			for _, c := range seg.Components {
				consumed += w.walk(c, offset+consumed)
			}
			return consumed
		}
		for _, in := range seg.Inputs {
			w.walk(in, offset)
		}
		if seg.Segment != nil {
			w.walk(seg.Segment, offset)
		}
		return seg.Length
	}
}

// emit records an occurrence unless the frame range was already claimed.
// The guard keeps an operation group and a source clip nested inside it
// from each producing an event for the same span.
func (w *walker) emit(occ Occurrence) {
	if occ.Length < 1 {
		return
	}
	key := frameRange{occ.StartFrame, occ.Length}
	if _, dup := w.processed[key]; dup {
		return
	}
	w.processed[key] = struct{}{}
	occ.Index = len(w.occurrences) + 1
	w.occurrences = append(w.occurrences, occ)
}

// nestedSourceClip finds the first source clip reachable from a group's
// inputs, depth-first, without descending into nested operation groups.
func nestedSourceClip(group *graph.Segment) *graph.Segment {
	for _, in := range group.Inputs {
		if clip := findClip(in); clip != nil {
			return clip
		}
	}
	return nil
}

func findClip(seg *graph.Segment) *graph.Segment {
	if seg == nil {
		return nil
	}
	switch seg.Kind {
	case graph.KindSourceClip:
		return seg
	case graph.KindOperationGroup:
		// Nested groups own their inputs; expanding them here would emit
		// the same media twice.
		return nil
	case graph.KindScopeReference:
		return nil
	}
	for _, c := range seg.Components {
		if clip := findClip(c); clip != nil {
			return clip
		}
	}
	return findClip(seg.Segment)
}
