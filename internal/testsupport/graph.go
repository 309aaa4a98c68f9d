package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"aafcanon/internal/graph"
)

// Fixture mob ids shared by the graph helpers.
const (
	CompMobID   = "urn:smpte:umid:comp-0001"
	MasterMobID = "urn:smpte:umid:master-0001"
	FileMobID   = "urn:smpte:umid:file-0001"
)

// SampleGraph builds a small but complete object graph: an exported
// composition whose picture track holds a timecode node, a plain clip, an
// effect group wrapping a second clip, and trailing filler. The clip chain
// runs composition -> master mob -> file mob, with the file mob carrying
// the media locator and tape metadata.
func SampleGraph() *graph.Graph {
	clip := func(length int64) *graph.Segment {
		return &graph.Segment{
			Kind:     graph.KindSourceClip,
			Length:   length,
			SourceID: MasterMobID,
		}
	}

	root := &graph.Segment{
		Kind:   graph.KindSequence,
		Length: 250,
		Components: []*graph.Segment{
			{Kind: graph.KindTimecode, Length: 250, Start: 90000, Drop: false},
			clip(100),
			{
				Kind:      graph.KindOperationGroup,
				Length:    100,
				Operation: "Video Dissolve",
				Inputs:    []*graph.Segment{clip(100)},
				Parameters: []graph.Parameter{
					{Name: "Level", Points: []graph.ControlPoint{
						{Time: 0, Value: 0.0},
						{Time: 4.0, Value: 1.0},
					}},
				},
			},
			{Kind: graph.KindFiller, Length: 50},
		},
	}

	comp := &graph.Mob{
		ID:   CompMobID,
		Name: "01 Cut.Exported.01",
		Kind: graph.MobComposition,
		Slots: []*graph.Slot{
			{ID: 1, Name: "V1", EditRate: graph.Rational{Num: 25, Den: 1}, Segment: root},
		},
	}

	master := &graph.Mob{
		ID:   MasterMobID,
		Name: "A001_C002",
		Kind: graph.MobMaster,
		Slots: []*graph.Slot{
			{ID: 1, EditRate: graph.Rational{Num: 25, Den: 1}, Segment: &graph.Segment{
				Kind:     graph.KindSourceClip,
				Length:   500,
				SourceID: FileMobID,
			}},
		},
	}

	file := &graph.Mob{
		ID:   FileMobID,
		Name: "A001_C002.mov",
		Kind: graph.MobSource,
		Slots: []*graph.Slot{
			{ID: 1, EditRate: graph.Rational{Num: 25, Den: 1}, Segment: &graph.Segment{
				Kind:   graph.KindTimecode,
				Length: 500,
				Start:  86400,
			}},
		},
		Descriptor: &graph.Descriptor{
			Locators: []graph.Locator{{URL: "file:///media/A001_C002.mov"}},
		},
		UserComments: []graph.TaggedValue{
			{Name: "TapeID", Value: "A001"},
		},
		Attributes: []graph.TaggedValue{
			{Name: "_IMPORTDISKLABEL", Value: "SHUTTLE_01"},
		},
	}

	return &graph.Graph{Mobs: []*graph.Mob{comp, master, file}}
}

// WriteGraph serializes the graph as a snapshot file under the test's temp
// dir and returns its path.
func WriteGraph(t testing.TB, g *graph.Graph) string {
	t.Helper()

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal graph: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write graph: %v", err)
	}
	return path
}
