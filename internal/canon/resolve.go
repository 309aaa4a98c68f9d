package canon

import (
	"strings"

	"aafcanon/internal/graph"
)

// tapeIDNames are the comment/attribute names accepted as a tape id,
// compared case-insensitively.
var tapeIDNames = map[string]struct{}{
	"tape":      {},
	"tapeid":    {},
	"tape_id":   {},
	"tape name": {},
}

const diskLabelAttr = "_IMPORTDISKLABEL"

// Resolver follows mob-reference chains to authoritative source metadata.
// The comp mob, when set, supplies fallback values for fields the chain
// leaves unresolved.
type Resolver struct {
	Graph *graph.Graph
	Comp  *graph.Mob
}

// Resolve walks the chain starting at clip's source id and assembles the
// Source record. Every field degrades to null, false, or the default rate
// instead of failing; cycles terminate via the visited set and yield the
// partial chain gathered so far.
func (r *Resolver) Resolve(clip *graph.Segment) *Source {
	src := &Source{
		UMIDChain:  []string{},
		SrcRateFPS: DefaultFPS,
	}
	if clip == nil || strings.TrimSpace(clip.SourceID) == "" {
		r.applyCompFallback(src)
		return src
	}

	visited := make(map[string]struct{})
	id := clip.SourceID
	src.UMIDChain = append(src.UMIDChain, id)

	var rate float64
	for {
		if _, seen := visited[id]; seen {
			// Cycle: stop with whatever was collected.
			break
		}
		visited[id] = struct{}{}

		mob := r.Graph.MobByID(id)
		if mob == nil {
			break
		}

		// A descriptor with a resolvable locator is the authoritative end
		// of the chain.
		if r.harvest(src, mob, &rate) {
			break
		}

		next := nextReference(mob)
		if next == "" {
			break
		}
		if _, seen := visited[next]; seen {
			break
		}
		id = next
		src.UMIDChain = append(src.UMIDChain, id)
	}

	if rate > 0 {
		src.SrcRateFPS = rate
	}
	r.applyCompFallback(src)
	return src
}

// harvest collects fields from one chain step and reports whether this mob
// supplied a resolvable locator path, which ends the walk. Path, source
// timecode, rate, and drop are authoritative-first: values from mobs nearer
// the chain's end overwrite earlier ones. Tape id and disk label keep the
// first match, so the nearer mob wins for those.
func (r *Resolver) harvest(src *Source, mob *graph.Mob, rate *float64) bool {
	authoritative := false
	if mob.Descriptor != nil {
		for _, loc := range mob.Descriptor.Locators {
			if strings.TrimSpace(loc.URL) != "" {
				url := loc.URL
				src.Path = &url
				authoritative = true
				break
			}
		}
	}

	if src.TapeID == nil {
		src.TapeID = harvestTapeID(mob)
	}
	if src.DiskLabel == nil {
		src.DiskLabel = harvestDiskLabel(mob)
	}

	for _, slot := range mob.Slots {
		if slot.Segment != nil && slot.Segment.Kind == graph.KindTimecode {
			start := slot.Segment.Start
			src.SrcTCStartFrames = &start
			src.SrcDrop = slot.Segment.Drop
		}
		if fps := slot.EditRate.FPS(0); fps > 0 {
			*rate = fps
		}
	}
	return authoritative
}

// applyCompFallback fills fields the chain left null from the composition
// mob's own mirrors of the same metadata.
func (r *Resolver) applyCompFallback(src *Source) {
	if r.Comp == nil {
		return
	}
	if src.TapeID == nil {
		src.TapeID = harvestTapeID(r.Comp)
	}
	if src.DiskLabel == nil {
		src.DiskLabel = harvestDiskLabel(r.Comp)
	}
}

// harvestTapeID checks user comments before the generic attribute list;
// the first match wins.
func harvestTapeID(mob *graph.Mob) *string {
	for _, lists := range [][]graph.TaggedValue{mob.UserComments, mob.Attributes} {
		for _, tv := range lists {
			name := strings.ToLower(strings.TrimSpace(tv.Name))
			if _, ok := tapeIDNames[name]; !ok {
				continue
			}
			if s, ok := tv.Value.(string); ok && strings.TrimSpace(s) != "" {
				return &s
			}
		}
	}
	return nil
}

func harvestDiskLabel(mob *graph.Mob) *string {
	for _, tv := range mob.Attributes {
		if tv.Name != diskLabelAttr {
			continue
		}
		if s, ok := tv.Value.(string); ok && strings.TrimSpace(s) != "" {
			return &s
		}
	}
	return nil
}

// nextReference hops to the next mob in the chain: the first nested source
// clip inside the mob's own slots.
func nextReference(mob *graph.Mob) string {
	for _, slot := range mob.Slots {
		if id := clipReference(slot.Segment); id != "" {
			return id
		}
	}
	return ""
}

func clipReference(seg *graph.Segment) string {
	if seg == nil {
		return ""
	}
	if seg.Kind == graph.KindSourceClip {
		return strings.TrimSpace(seg.SourceID)
	}
	for _, c := range seg.Components {
		if id := clipReference(c); id != "" {
			return id
		}
	}
	for _, in := range seg.Inputs {
		if id := clipReference(in); id != "" {
			return id
		}
	}
	return clipReference(seg.Segment)
}
