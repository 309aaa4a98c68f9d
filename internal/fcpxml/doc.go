// Package fcpxml renders a canonical document as an FCPXML 1.13 timeline.
//
// The writer is a pure function of one document: it never re-derives or
// mutates source and effect data, converts frame counts to exact rational
// seconds using the project edit rate, and carries source paths through
// byte-for-byte. Effects on filler become titled placeholder items that
// keep their parameters and keyframes.
package fcpxml
