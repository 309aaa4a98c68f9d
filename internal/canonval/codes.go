package canonval

// Reason codes for validation failures. Each code identifies one
// (location, requirement) pair and stays stable across releases; consumers
// key on these, never on messages.
const (
	// Top-level structure
	CodeMissingProject  = "CANON-REQ-001"
	CodeMissingTimeline = "CANON-REQ-002"
	// CodeUnexpectedShape flags extra keys and type mismatches that have no
	// dedicated code of their own.
	CodeUnexpectedShape = "CANON-REQ-003"

	// Project object
	CodeMissingProjectName     = "CANON-REQ-004"
	CodeMissingProjectEditRate = "CANON-REQ-005"
	CodeMissingProjectTCFormat = "CANON-REQ-006"
	CodeInvalidTCFormat        = "CANON-REQ-007"
	CodeInvalidEditRate        = "CANON-REQ-008"

	// Timeline object
	CodeMissingTimelineName    = "CANON-REQ-009"
	CodeMissingTimelineStartTC = "CANON-REQ-010"
	CodeMissingTimelineEvents  = "CANON-REQ-011"
	CodeInvalidStartTCFrames   = "CANON-REQ-012"

	// Event objects
	CodeMissingEventID            = "CANON-REQ-013"
	CodeMissingEventTimelineStart = "CANON-REQ-014"
	CodeMissingEventLength        = "CANON-REQ-015"
	CodeMissingEventSource        = "CANON-REQ-016"
	CodeMissingEventEffect        = "CANON-REQ-017"
	CodeInvalidTimelineStart      = "CANON-REQ-018"
	CodeInvalidLengthFrames       = "CANON-REQ-019"
	CodeInvalidEventIDFormat      = "CANON-REQ-020"

	// Source objects
	CodeMissingSourcePath      = "CANON-REQ-021"
	CodeMissingSourceUMIDChain = "CANON-REQ-022"
	CodeMissingSourceTapeID    = "CANON-REQ-023"
	CodeMissingSourceDiskLabel = "CANON-REQ-024"
	CodeMissingSourceTCStart   = "CANON-REQ-025"
	CodeMissingSourceRateFPS   = "CANON-REQ-026"
	CodeMissingSourceDrop      = "CANON-REQ-027"
	CodeInvalidUMIDChain       = "CANON-REQ-028"

	// Effect objects
	CodeMissingEffectName         = "CANON-REQ-029"
	CodeMissingEffectOnFiller     = "CANON-REQ-030"
	CodeMissingEffectParameters   = "CANON-REQ-031"
	CodeMissingEffectKeyframes    = "CANON-REQ-032"
	CodeMissingEffectExternalRefs = "CANON-REQ-033"

	// Keyframe structure
	CodeMissingKeyframeTime  = "CANON-REQ-034"
	CodeMissingKeyframeValue = "CANON-REQ-035"
	CodeInvalidKeyframeTime  = "CANON-REQ-036"
	CodeKeyframeTimeOrder    = "CANON-REQ-037"

	// External references
	CodeMissingExtRefKind = "CANON-REQ-038"
	CodeMissingExtRefPath = "CANON-REQ-039"

	// Non-schema failure channels
	CodeFileError     = "CANON-FILE-ERROR"
	CodeParseError    = "CANON-PARSE-ERROR"
	CodeInternalError = "CANON-INTERNAL-ERROR"
)

// Document contract references attached to report entries.
const (
	docRef          = "docs/data_model_json.md"
	docRefKeyframes = "docs/data_model_json.md#parameter--keyframe-capture"
	docRefIDs       = "docs/data_model_json.md#identifiers"
)
