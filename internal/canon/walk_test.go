package canon_test

import (
	"testing"

	"aafcanon/internal/canon"
	"aafcanon/internal/graph"
)

func clipOf(id string, length int64) *graph.Segment {
	return &graph.Segment{Kind: graph.KindSourceClip, Length: length, SourceID: id}
}

func TestWalkTimelineOrderingAndOffsets(t *testing.T) {
	root := &graph.Segment{
		Kind:   graph.KindSequence,
		Length: 300,
		Components: []*graph.Segment{
			clipOf("a", 100),
			{Kind: graph.KindFiller, Length: 50},
			clipOf("b", 75),
			{Kind: graph.KindTransition, Length: 25},
			clipOf("c", 50),
		},
	}

	occ := canon.WalkTimeline(root)
	if len(occ) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occ))
	}

	wantStarts := []int64{0, 150, 250}
	wantIDs := []string{"a", "b", "c"}
	for i, o := range occ {
		if o.Index != i+1 {
			t.Errorf("occurrence %d index = %d", i, o.Index)
		}
		if o.StartFrame != wantStarts[i] {
			t.Errorf("occurrence %d start = %d, want %d", i, o.StartFrame, wantStarts[i])
		}
		if o.Clip == nil || o.Clip.SourceID != wantIDs[i] {
			t.Errorf("occurrence %d clip = %v", i, o.Clip)
		}
	}
}

func TestWalkTimelineTimecodeConsumesNothing(t *testing.T) {
	root := &graph.Segment{
		Kind:   graph.KindSequence,
		Length: 100,
		Components: []*graph.Segment{
			{Kind: graph.KindTimecode, Length: 100, Start: 3600},
			clipOf("a", 100),
		},
	}

	occ := canon.WalkTimeline(root)
	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if occ[0].StartFrame != 0 {
		t.Errorf("timecode node must not shift the clip, start = %d", occ[0].StartFrame)
	}
}

func TestWalkTimelineOperationGroupWithNestedClip(t *testing.T) {
	group := &graph.Segment{
		Kind:      graph.KindOperationGroup,
		Length:    80,
		Operation: "Resize",
		Inputs:    []*graph.Segment{clipOf("inner", 80)},
	}
	root := &graph.Segment{
		Kind:       graph.KindSequence,
		Length:     80,
		Components: []*graph.Segment{group},
	}

	occ := canon.WalkTimeline(root)
	if len(occ) != 1 {
		t.Fatalf("group plus nested clip must yield one occurrence, got %d", len(occ))
	}
	if occ[0].Group != group {
		t.Error("occurrence should reference the group")
	}
	if occ[0].Clip == nil || occ[0].Clip.SourceID != "inner" {
		t.Errorf("nested clip not found: %v", occ[0].Clip)
	}
}

func TestWalkTimelineEffectOnFiller(t *testing.T) {
	group := &graph.Segment{
		Kind:      graph.KindOperationGroup,
		Length:    40,
		Operation: "Color",
		Inputs:    []*graph.Segment{{Kind: graph.KindFiller, Length: 40}},
	}
	occ := canon.WalkTimeline(&graph.Segment{
		Kind:       graph.KindSequence,
		Length:     40,
		Components: []*graph.Segment{group},
	})

	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if occ[0].Clip != nil {
		t.Error("filler-backed group has no clip")
	}
	if occ[0].Group == nil {
		t.Error("group must be recorded")
	}
}

func TestWalkTimelineSkipsNestedGroupExpansion(t *testing.T) {
	inner := &graph.Segment{
		Kind:   graph.KindOperationGroup,
		Length: 60,
		Inputs: []*graph.Segment{clipOf("deep", 60)},
	}
	outer := &graph.Segment{
		Kind:   graph.KindOperationGroup,
		Length: 60,
		Inputs: []*graph.Segment{inner},
	}
	occ := canon.WalkTimeline(&graph.Segment{
		Kind:       graph.KindSequence,
		Length:     60,
		Components: []*graph.Segment{outer},
	})

	if len(occ) != 1 {
		t.Fatalf("nested groups must not multiply events, got %d", len(occ))
	}
	if occ[0].Clip != nil {
		t.Error("clip search must stop at the nested group boundary")
	}
}

func TestWalkTimelineZeroLengthDropped(t *testing.T) {
	occ := canon.WalkTimeline(&graph.Segment{
		Kind:   graph.KindSequence,
		Length: 10,
		Components: []*graph.Segment{
			clipOf("ghost", 0),
			clipOf("real", 10),
		},
	})

	if len(occ) != 1 {
		t.Fatalf("zero-length clip must be dropped, got %d occurrences", len(occ))
	}
	if occ[0].Clip.SourceID != "real" {
		t.Errorf("surviving clip = %q", occ[0].Clip.SourceID)
	}
	if occ[0].Index != 1 {
		t.Errorf("indices must stay contiguous, got %d", occ[0].Index)
	}
}

func TestWalkTimelineScopeReferenceConsumesSilently(t *testing.T) {
	occ := canon.WalkTimeline(&graph.Segment{
		Kind:   graph.KindSequence,
		Length: 100,
		Components: []*graph.Segment{
			{Kind: graph.KindScopeReference, Length: 30},
			clipOf("a", 70),
		},
	})

	if len(occ) != 1 {
		t.Fatalf("scope reference must not emit, got %d", len(occ))
	}
	if occ[0].StartFrame != 30 {
		t.Errorf("scope reference must consume its span, start = %d", occ[0].StartFrame)
	}
}

func TestWalkTimelineUnknownWrapper(t *testing.T) {
	wrapper := &graph.Segment{
		Kind:   graph.KindUnknown,
		Length: 50,
		Components: []*graph.Segment{
			clipOf("wrapped", 50),
		},
	}
	occ := canon.WalkTimeline(&graph.Segment{
		Kind:       graph.KindSequence,
		Length:     50,
		Components: []*graph.Segment{wrapper},
	})

	if len(occ) != 1 {
		t.Fatalf("unknown wrapper children must be walked, got %d", len(occ))
	}
	if occ[0].Clip.SourceID != "wrapped" {
		t.Errorf("clip = %q", occ[0].Clip.SourceID)
	}
}

func TestWalkTimelineEmptyRoot(t *testing.T) {
	occ := canon.WalkTimeline(nil)
	if occ == nil || len(occ) != 0 {
		t.Fatalf("nil root must yield an empty non-nil slice, got %v", occ)
	}
}
