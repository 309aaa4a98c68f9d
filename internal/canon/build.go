package canon

import (
	"log/slog"

	"aafcanon/internal/graph"
	"aafcanon/internal/logging"
)

// Build converts an opened graph into one canonical document. Each call is
// independent: the graph is treated as a frozen snapshot and the returned
// document is never mutated afterwards, so repeated builds of the same
// input are byte-for-byte reproducible.
//
// Per-event resolution gaps degrade to nulls; only selection failures
// abort.
func Build(g *graph.Graph, logger *slog.Logger) (*Document, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	sel, err := SelectTimeline(g)
	if err != nil {
		return nil, err
	}
	logger.Info("timeline selected",
		"timeline", sel.TimelineName,
		"fps", sel.FPS,
		"drop", sel.Drop,
		"start_tc_frames", sel.StartTCFrames,
	)

	resolver := &Resolver{Graph: g, Comp: sel.Comp}
	occurrences := WalkTimeline(sel.Root)

	events := make([]Event, 0, len(occurrences))
	for _, occ := range occurrences {
		events = append(events, buildEvent(occ, resolver, logger))
	}
	logger.Info("timeline walked", "events", len(events))

	return PackDocument(sel, events), nil
}

func buildEvent(occ Occurrence, resolver *Resolver, logger *slog.Logger) Event {
	var source *Source
	var effect *Effect

	if occ.Clip != nil {
		source = resolver.Resolve(occ.Clip)
		if source.Path == nil {
			logger.Debug("reference chain left path unresolved",
				"event", EventID(occ.Index),
				"chain_len", len(source.UMIDChain),
			)
		}
	}
	if occ.Group != nil {
		fx := ExtractEffect(occ.Group)
		fx.OnFiller = occ.Clip == nil
		effect = &fx
	}

	return PackEvent(occ, source, effect)
}
