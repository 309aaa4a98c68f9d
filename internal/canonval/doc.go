// Package canonval validates canonical documents against the closed
// document schema and its extra-schema invariants.
//
// Validation is a pure function of the input: the validator never fails on
// malformed documents, it always returns a report. Every violation maps to
// a stable reason code keyed by (location, requirement) so downstream
// tooling is insulated from message wording. Paths are carried as typed
// token lists and rendered in JSON-pointer-like dollar notation.
package canonval
