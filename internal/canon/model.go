package canon

// Timecode counting conventions.
const (
	TCFormatDrop    = "DF"
	TCFormatNonDrop = "NDF"
)

// EffectNone is the sentinel effect name for events with no effect applied.
const EffectNone = "(none)"

// EffectUnknown is used when an operation group carries no resolvable name.
const EffectUnknown = "(unknown)"

// Document is the canonical representation of one timeline. It is
// constructed once per build and never mutated afterwards; every
// schema-required key is always emitted, with null standing in for
// unresolved values.
type Document struct {
	Project  Project  `json:"project"`
	Timeline Timeline `json:"timeline"`
}

// Project captures the immutable properties derived from the selected
// composition.
type Project struct {
	Name        string  `json:"name"`
	EditRateFPS float64 `json:"edit_rate_fps"`
	TCFormat    string  `json:"tc_format"`
}

// Timeline is the ordered event list of the picture track.
type Timeline struct {
	Name          string  `json:"name"`
	StartTCFrames int64   `json:"start_tc_frames"`
	Events        []Event `json:"events"`
}

// Event is one emitted occurrence on the timeline. Source is nil for
// effect-on-filler events; Effect is always present, using the "(none)"
// sentinel when no effect applies.
type Event struct {
	ID                  string  `json:"id"`
	TimelineStartFrames int64   `json:"timeline_start_frames"`
	LengthFrames        int64   `json:"length_frames"`
	Source              *Source `json:"source"`
	Effect              Effect  `json:"effect"`
}

// Source is the resolved authoritative metadata of a clip's media.
type Source struct {
	Path             *string  `json:"path"`
	UMIDChain        []string `json:"umid_chain"`
	TapeID           *string  `json:"tape_id"`
	DiskLabel        *string  `json:"disk_label"`
	SrcTCStartFrames *int64   `json:"src_tc_start_frames"`
	SrcRateFPS       float64  `json:"src_rate_fps"`
	SrcDrop          bool     `json:"src_drop"`
}

// Effect captures an operation group without interpretation: its name,
// static parameters, keyframe series, and any path-like values discovered
// inside parameters.
type Effect struct {
	Name         string                `json:"name"`
	OnFiller     bool                  `json:"on_filler"`
	Parameters   map[string]any        `json:"parameters"`
	Keyframes    map[string][]Keyframe `json:"keyframes"`
	ExternalRefs []ExternalRef         `json:"external_refs"`
}

// Keyframe is one control point of a varying parameter. T is seconds from
// the event start; series are recorded in encounter order.
type Keyframe struct {
	T float64 `json:"t"`
	V any     `json:"v"`
}

// ExternalRef kinds.
const (
	RefKindImage   = "image"
	RefKindMatte   = "matte"
	RefKindUnknown = "unknown"
)

// ExternalRef is a path-like value found inside an effect parameter.
type ExternalRef struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// NoneEffect returns the sentinel effect attached to media-only events.
func NoneEffect() Effect {
	return Effect{
		Name:         EffectNone,
		OnFiller:     false,
		Parameters:   map[string]any{},
		Keyframes:    map[string][]Keyframe{},
		ExternalRefs: []ExternalRef{},
	}
}
