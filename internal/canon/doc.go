// Package canon builds the canonical timeline document from an opened
// object graph.
//
// The build runs in fixed stages: select the exported composition and its
// picture track, walk the segment tree into ordered events, resolve each
// clip's mob-reference chain to authoritative source metadata, extract
// effect names, parameters, and keyframes, then pack everything into the
// Document shape consumed by the validator and the exporters.
//
// Unresolved per-event data degrades to nulls and defaults rather than
// failing the build; only the absence of a usable timeline aborts.
package canon
