// Package graph exposes an opened composition as a read-only object graph
// of mobs, slots, and segments.
//
// Segment kinds form a closed variant set so traversal code can dispatch
// exhaustively instead of probing attributes; kinds it does not recognize
// are preserved as KindUnknown with their children intact. The package also
// owns the JSON snapshot reader that materializes a graph from a serialized
// dump of the source editing file; decoding the binary container itself is
// out of scope here.
package graph
