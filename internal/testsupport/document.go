package testsupport

import (
	"aafcanon/internal/canon"
)

// SampleDocument returns a minimal canonical document that passes
// validation: one project, one timeline, one event backed by a fully
// resolved source with the sentinel effect.
func SampleDocument() *canon.Document {
	path := "/media/A001_C002.mov"
	tape := "A001"
	start := int64(86400)

	return &canon.Document{
		Project: canon.Project{
			Name:        "01 Cut",
			EditRateFPS: 25.0,
			TCFormat:    canon.TCFormatNonDrop,
		},
		Timeline: canon.Timeline{
			Name:          "01 Cut",
			StartTCFrames: 90000,
			Events: []canon.Event{
				{
					ID:                  "ev_0001",
					TimelineStartFrames: 0,
					LengthFrames:        100,
					Source: &canon.Source{
						Path:             &path,
						UMIDChain:        []string{MasterMobID, FileMobID},
						TapeID:           &tape,
						DiskLabel:        nil,
						SrcTCStartFrames: &start,
						SrcRateFPS:       25.0,
						SrcDrop:          false,
					},
					Effect: canon.NoneEffect(),
				},
			},
		},
	}
}
