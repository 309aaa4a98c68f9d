package graph_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aafcanon/internal/graph"
)

func TestDecodeNormalizesUnknownKinds(t *testing.T) {
	payload := `{
		"mobs": [
			{
				"id": "mob-1",
				"name": "Comp",
				"kind": "CompositionMob",
				"slots": [
					{
						"id": 1,
						"edit_rate": {"num": 25, "den": 1},
						"segment": {
							"kind": "Sequence",
							"length": 10,
							"components": [
								{"kind": "EssenceGroup", "length": 10, "segment": {"kind": "SourceClip", "length": 10, "source_id": "mob-2"}}
							]
						}
					}
				]
			},
			{"id": "mob-2", "name": "Clip"}
		]
	}`

	g, err := graph.Decode(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	root := g.Mobs[0].Slots[0].Segment
	if root.Kind != graph.KindSequence {
		t.Fatalf("root kind = %q", root.Kind)
	}
	wrapper := root.Components[0]
	if wrapper.Kind != graph.KindUnknown {
		t.Errorf("unrecognized kind should normalize to Unknown, got %q", wrapper.Kind)
	}
	if wrapper.Segment == nil || wrapper.Segment.Kind != graph.KindSourceClip {
		t.Errorf("nested clip should survive normalization")
	}
	if g.Mobs[1].Kind != graph.MobUnknown {
		t.Errorf("missing mob kind should default to %q, got %q", graph.MobUnknown, g.Mobs[1].Kind)
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	if _, err := graph.Decode(strings.NewReader("{broken")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := graph.Open(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, graph.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenUnreadableContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := graph.Open(path)
	if !errors.Is(err, graph.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestMobByIDAndCompositions(t *testing.T) {
	g := &graph.Graph{Mobs: []*graph.Mob{
		{ID: "a", Kind: graph.MobComposition},
		{ID: "b", Kind: graph.MobMaster},
		{ID: "c", Kind: graph.MobComposition},
	}}

	if got := g.MobByID("b"); got == nil || got.ID != "b" {
		t.Fatalf("MobByID(b) = %v", got)
	}
	if g.MobByID("zzz") != nil {
		t.Error("unknown id should return nil")
	}

	comps := g.Compositions()
	if len(comps) != 2 || comps[0].ID != "a" || comps[1].ID != "c" {
		t.Fatalf("compositions in document order, got %v", comps)
	}
}
