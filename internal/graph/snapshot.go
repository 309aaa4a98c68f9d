package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

var (
	// ErrNotFound marks input paths that do not exist.
	ErrNotFound = errors.New("input file not found")
	// ErrUnavailable marks graph snapshots that could not be loaded at all,
	// as opposed to snapshots that loaded but describe an unusable
	// composition.
	ErrUnavailable = errors.New("graph adapter unavailable")
)

var knownKinds = map[Kind]struct{}{
	KindSequence:       {},
	KindOperationGroup: {},
	KindSourceClip:     {},
	KindFiller:         {},
	KindTransition:     {},
	KindTimecode:       {},
	KindScopeReference: {},
}

// Decode reads a graph snapshot from r. Segment kinds outside the closed
// variant set are normalized to KindUnknown while keeping the original node
// intact, so traversal never has to guess at attribute names.
func Decode(r io.Reader) (*Graph, error) {
	var g Graph
	dec := json.NewDecoder(r)
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("decode graph snapshot: %w", err)
	}
	for _, mob := range g.Mobs {
		if mob.Kind == "" {
			mob.Kind = MobUnknown
		}
		for _, slot := range mob.Slots {
			normalizeSegment(slot.Segment)
		}
	}
	g.index()
	return &g, nil
}

// Open loads a graph snapshot from disk. A missing file or unreadable
// content is reported as ErrUnavailable so callers can distinguish adapter
// failures from selection failures.
func Open(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, path, err)
	}
	defer file.Close()

	g, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return g, nil
}

func normalizeSegment(seg *Segment) {
	if seg == nil {
		return
	}
	if _, ok := knownKinds[seg.Kind]; !ok {
		seg.Kind = KindUnknown
	}
	for _, c := range seg.Components {
		normalizeSegment(c)
	}
	for _, in := range seg.Inputs {
		normalizeSegment(in)
	}
	normalizeSegment(seg.Segment)
}
