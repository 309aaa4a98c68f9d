package graph

// Kind identifies the variant of a segment.
type Kind string

const (
	KindSequence       Kind = "Sequence"
	KindOperationGroup Kind = "OperationGroup"
	KindSourceClip     Kind = "SourceClip"
	KindFiller         Kind = "Filler"
	KindTransition     Kind = "Transition"
	KindTimecode       Kind = "Timecode"
	KindScopeReference Kind = "ScopeReference"
	KindUnknown        Kind = "Unknown"
)

// MobKind distinguishes the roles mobs play in the reference chain.
type MobKind string

const (
	MobComposition MobKind = "CompositionMob"
	MobMaster      MobKind = "MasterMob"
	MobSource      MobKind = "SourceMob"
	MobUnknown     MobKind = "Mob"
)

// Rational is an exact edit rate as stored in the source file.
type Rational struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

// FPS converts the rational to frames per second. The fallback is returned
// for zero or missing denominators.
func (r Rational) FPS(fallback float64) float64 {
	if r.Num <= 0 || r.Den <= 0 {
		return fallback
	}
	return float64(r.Num) / float64(r.Den)
}

// TaggedValue is one name/value pair from a mob's user comments or its
// generic attribute list.
type TaggedValue struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ControlPoint is one time-indexed value of a varying effect parameter.
// Time is expressed in seconds from the start of the owning event.
type ControlPoint struct {
	Time  float64 `json:"t"`
	Value any     `json:"v"`
}

// Parameter is one effect parameter attached to an operation group. Value
// holds the static scalar when present; Points holds the keyframe series in
// document order. Both may be populated.
type Parameter struct {
	Name   string         `json:"name"`
	Value  any            `json:"value,omitempty"`
	Points []ControlPoint `json:"points,omitempty"`
}

// Segment is one timed node of a slot or sequence. Only the fields matching
// its Kind are populated; the rest stay at their zero values.
type Segment struct {
	Kind   Kind  `json:"kind"`
	Length int64 `json:"length"`

	// Sequence
	Components []*Segment `json:"components,omitempty"`

	// OperationGroup
	Operation  string        `json:"operation,omitempty"`
	Inputs     []*Segment    `json:"inputs,omitempty"`
	Parameters []Parameter   `json:"parameters,omitempty"`
	Attributes []TaggedValue `json:"attributes,omitempty"`

	// SourceClip
	SourceID string `json:"source_id,omitempty"`

	// Timecode
	Start int64 `json:"start,omitempty"`
	Drop  bool  `json:"drop,omitempty"`

	// Wrapper nodes of unrecognized kinds sometimes carry a single nested
	// segment instead of a component list.
	Segment *Segment `json:"segment,omitempty"`
}

// Locator describes where a mob's underlying media lives.
type Locator struct {
	URL string `json:"url"`
}

// Descriptor is the media description attached to a source mob.
type Descriptor struct {
	Locators []Locator `json:"locators,omitempty"`
}

// Slot is a track-like container within a mob.
type Slot struct {
	ID       int      `json:"id"`
	Name     string   `json:"name,omitempty"`
	EditRate Rational `json:"edit_rate"`
	Segment  *Segment `json:"segment,omitempty"`
}

// Mob is a named node of the object graph, identified by its UMID.
type Mob struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Kind         MobKind       `json:"kind"`
	Slots        []*Slot       `json:"slots,omitempty"`
	Descriptor   *Descriptor   `json:"descriptor,omitempty"`
	UserComments []TaggedValue `json:"user_comments,omitempty"`
	Attributes   []TaggedValue `json:"attributes,omitempty"`
}

// Graph is a fully materialized object graph from one opened file.
type Graph struct {
	Mobs []*Mob `json:"mobs"`

	byID map[string]*Mob
}

// MobByID looks up a mob by UMID. Returns nil when the id is unknown.
func (g *Graph) MobByID(id string) *Mob {
	if g.byID == nil {
		g.index()
	}
	return g.byID[id]
}

// Compositions returns the composition mobs in document order.
func (g *Graph) Compositions() []*Mob {
	var comps []*Mob
	for _, m := range g.Mobs {
		if m.Kind == MobComposition {
			comps = append(comps, m)
		}
	}
	return comps
}

func (g *Graph) index() {
	g.byID = make(map[string]*Mob, len(g.Mobs))
	for _, m := range g.Mobs {
		if m.ID != "" {
			g.byID[m.ID] = m
		}
	}
}
