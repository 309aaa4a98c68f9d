package canon

import "fmt"

// EventID formats the canonical event identifier for a 1-based production
// index.
func EventID(index int) string {
	return fmt.Sprintf("ev_%04d", index)
}

// PackEvent assembles one event. A nil effect gets the "(none)" sentinel so
// the effect key is always populated.
func PackEvent(occ Occurrence, source *Source, effect *Effect) Event {
	fx := NoneEffect()
	if effect != nil {
		fx = *effect
	}
	return Event{
		ID:                  EventID(occ.Index),
		TimelineStartFrames: occ.StartFrame,
		LengthFrames:        occ.Length,
		Source:              source,
		Effect:              fx,
	}
}

// PackDocument assembles the canonical document from the selection outcome
// and the packed event list. Every schema-required key is emitted even when
// its value is null.
func PackDocument(sel Selection, events []Event) *Document {
	tcFormat := TCFormatNonDrop
	if sel.Drop {
		tcFormat = TCFormatDrop
	}
	if events == nil {
		events = []Event{}
	}
	return &Document{
		Project: Project{
			Name:        sel.TimelineName,
			EditRateFPS: sel.FPS,
			TCFormat:    tcFormat,
		},
		Timeline: Timeline{
			Name:          sel.TimelineName,
			StartTCFrames: sel.StartTCFrames,
			Events:        events,
		},
	}
}
