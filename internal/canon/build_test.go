package canon_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"aafcanon/internal/canon"
	"aafcanon/internal/testsupport"
)

func TestBuildSampleGraph(t *testing.T) {
	doc, err := canon.Build(testsupport.SampleGraph(), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if doc.Project.Name != "01 Cut.Exported.01" {
		t.Errorf("project name = %q", doc.Project.Name)
	}
	if doc.Project.EditRateFPS != 25.0 {
		t.Errorf("fps = %v", doc.Project.EditRateFPS)
	}
	if doc.Project.TCFormat != canon.TCFormatNonDrop {
		t.Errorf("tc format = %q", doc.Project.TCFormat)
	}
	if doc.Timeline.StartTCFrames != 90000 {
		t.Errorf("start tc = %d", doc.Timeline.StartTCFrames)
	}

	events := doc.Timeline.Events
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.ID != "ev_0001" {
		t.Errorf("first id = %q", first.ID)
	}
	if first.Source == nil || first.Source.Path == nil {
		t.Fatal("first event must resolve its source path")
	}
	if *first.Source.Path != "file:///media/A001_C002.mov" {
		t.Errorf("path = %q", *first.Source.Path)
	}
	if first.Effect.Name != canon.EffectNone {
		t.Errorf("media-only event effect = %q", first.Effect.Name)
	}

	second := events[1]
	if second.ID != "ev_0002" {
		t.Errorf("second id = %q", second.ID)
	}
	if second.TimelineStartFrames != 100 {
		t.Errorf("second start = %d", second.TimelineStartFrames)
	}
	if second.Effect.Name != "Video Dissolve" {
		t.Errorf("effect name = %q", second.Effect.Name)
	}
	if second.Effect.OnFiller {
		t.Error("group wraps a clip, not filler")
	}
	if len(second.Effect.Keyframes["Level"]) != 2 {
		t.Errorf("keyframes = %v", second.Effect.Keyframes)
	}
}

func TestBuildDeterministic(t *testing.T) {
	first, err := canon.Build(testsupport.SampleGraph(), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := canon.Build(testsupport.SampleGraph(), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("repeated builds must serialize identically")
	}
}

func TestBuildNullsOverOmission(t *testing.T) {
	g := testsupport.SampleGraph()
	// Strip the file mob's metadata so resolution degrades.
	file := g.MobByID(testsupport.FileMobID)
	file.Descriptor = nil
	file.UserComments = nil
	file.Attributes = nil
	file.Slots = nil

	doc, err := canon.Build(g, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	data, err := json.Marshal(doc.Timeline.Events[0])
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	src, ok := raw["source"].(map[string]any)
	if !ok {
		t.Fatalf("source missing: %v", raw)
	}
	for _, key := range []string{"path", "tape_id", "disk_label", "src_tc_start_frames"} {
		if v, present := src[key]; !present {
			t.Errorf("%s must be emitted as null, not omitted", key)
		} else if v != nil {
			t.Errorf("%s should degrade to null, got %v", key, v)
		}
	}
}

func TestPackEventNilEffect(t *testing.T) {
	ev := canon.PackEvent(canon.Occurrence{Index: 3, StartFrame: 10, Length: 5}, nil, nil)
	if ev.ID != "ev_0003" {
		t.Errorf("id = %q", ev.ID)
	}
	if ev.Effect.Name != canon.EffectNone {
		t.Errorf("nil effect must pack the sentinel, got %q", ev.Effect.Name)
	}
	if ev.Effect.Parameters == nil || ev.Effect.Keyframes == nil || ev.Effect.ExternalRefs == nil {
		t.Error("sentinel effect collections must be initialized")
	}
}

func TestPackDocumentEmptyTimeline(t *testing.T) {
	doc := canon.PackDocument(canon.Selection{FPS: 25, StartTCFrames: 3600, TimelineName: "Empty"}, nil)
	if doc.Timeline.Events == nil {
		t.Fatal("events must be an empty list, never null")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"events": []`)) && !bytes.Contains(data, []byte(`"events":[]`)) {
		t.Errorf("serialized document must carry an empty events array: %s", data)
	}
}
