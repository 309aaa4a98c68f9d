package canonval_test

import (
	"encoding/json"
	"testing"

	"aafcanon/internal/canonval"
	"aafcanon/internal/testsupport"
)

// decode parses a JSON literal into the generic shape Validate consumes.
func decode(t *testing.T, payload string) any {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		t.Fatalf("test payload: %v", err)
	}
	return doc
}

func validDocument(t *testing.T) map[string]any {
	t.Helper()
	data, err := json.Marshal(testsupport.SampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func codesOf(report canonval.Report) map[string]int {
	counts := make(map[string]int)
	for _, issue := range report.Errors {
		counts[issue.Code]++
	}
	return counts
}

func TestValidateAcceptsCompleteDocument(t *testing.T) {
	report := canonval.New().Validate(validDocument(t))
	if !report.OK {
		t.Fatalf("expected valid, got %+v", report.Errors)
	}
	if report.ExitCode() != 0 {
		t.Errorf("exit code = %d", report.ExitCode())
	}
	if report.Errors == nil {
		t.Error("errors must be an empty slice, not nil")
	}
}

func TestValidateMissingTopLevelKeys(t *testing.T) {
	report := canonval.New().Validate(decode(t, `{}`))
	if report.OK {
		t.Fatal("empty object must fail")
	}
	codes := codesOf(report)
	if codes[canonval.CodeMissingProject] != 1 || codes[canonval.CodeMissingTimeline] != 1 {
		t.Errorf("codes = %v", codes)
	}
}

func TestValidateNonObjectRoot(t *testing.T) {
	report := canonval.New().Validate(decode(t, `[1, 2]`))
	if report.OK {
		t.Fatal("array root must fail")
	}
	if codesOf(report)[canonval.CodeUnexpectedShape] != 1 {
		t.Errorf("codes = %v", codesOf(report))
	}
}

func TestValidateExtraKeysRejected(t *testing.T) {
	doc := validDocument(t)
	doc["extra"] = true
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	event["note"] = "hi"

	report := canonval.New().Validate(doc)
	if report.OK {
		t.Fatal("extra keys must fail")
	}
	if codesOf(report)[canonval.CodeUnexpectedShape] != 2 {
		t.Errorf("expected 2 shape issues, got %+v", report.Errors)
	}

	paths := make(map[string]bool)
	for _, issue := range report.Errors {
		paths[issue.Path] = true
	}
	if !paths["$.extra"] || !paths["$.timeline.events[0].note"] {
		t.Errorf("issue paths = %v", paths)
	}
}

func TestValidateEventFieldViolations(t *testing.T) {
	doc := validDocument(t)
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	event["id"] = "clip_1"
	event["length_frames"] = float64(0)
	event["timeline_start_frames"] = float64(-5)

	report := canonval.New().Validate(doc)
	codes := codesOf(report)
	if codes[canonval.CodeInvalidEventIDFormat] != 1 {
		t.Errorf("bad id should raise %s: %v", canonval.CodeInvalidEventIDFormat, codes)
	}
	if codes[canonval.CodeInvalidLengthFrames] != 1 {
		t.Errorf("zero length should raise %s: %v", canonval.CodeInvalidLengthFrames, codes)
	}
	if codes[canonval.CodeInvalidTimelineStart] != 1 {
		t.Errorf("negative start should raise %s: %v", canonval.CodeInvalidTimelineStart, codes)
	}
}

func TestValidateNonIntegerFrameCount(t *testing.T) {
	doc := validDocument(t)
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	event["length_frames"] = 10.5

	report := canonval.New().Validate(doc)
	if codesOf(report)[canonval.CodeUnexpectedShape] == 0 {
		t.Errorf("fractional frame count must be a shape issue: %+v", report.Errors)
	}
}

func TestValidateNullSourceAllowed(t *testing.T) {
	doc := validDocument(t)
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	event["source"] = nil

	report := canonval.New().Validate(doc)
	if !report.OK {
		t.Fatalf("null source is legal for effect-on-filler events: %+v", report.Errors)
	}
}

func TestValidateMissingSourceKeyRejected(t *testing.T) {
	doc := validDocument(t)
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	delete(event, "source")

	report := canonval.New().Validate(doc)
	if codesOf(report)[canonval.CodeMissingEventSource] != 1 {
		t.Errorf("omitted source must fail: %+v", report.Errors)
	}
}

func TestValidateSourceRequiredKeys(t *testing.T) {
	doc := validDocument(t)
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	source := event["source"].(map[string]any)
	delete(source, "tape_id")
	delete(source, "src_drop")

	report := canonval.New().Validate(doc)
	codes := codesOf(report)
	if codes[canonval.CodeMissingSourceTapeID] != 1 || codes[canonval.CodeMissingSourceDrop] != 1 {
		t.Errorf("codes = %v", codes)
	}
}

func TestValidateTCFormatEnum(t *testing.T) {
	doc := validDocument(t)
	doc["project"].(map[string]any)["tc_format"] = "PAL"

	report := canonval.New().Validate(doc)
	if codesOf(report)[canonval.CodeInvalidTCFormat] != 1 {
		t.Errorf("codes = %v", codesOf(report))
	}
}

func TestValidateKeyframeOrderInvariant(t *testing.T) {
	doc := validDocument(t)
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	effect := event["effect"].(map[string]any)
	effect["keyframes"] = map[string]any{
		"Level": []any{
			map[string]any{"t": 2.0, "v": 1.0},
			map[string]any{"t": 1.0, "v": 0.5},
		},
	}

	report := canonval.New().Validate(doc)
	if report.OK {
		t.Fatal("descending keyframe times must fail")
	}
	found := false
	for _, issue := range report.Errors {
		if issue.Code == canonval.CodeKeyframeTimeOrder {
			found = true
			if issue.Path != "$.timeline.events[0].effect.keyframes.Level" {
				t.Errorf("issue path = %q", issue.Path)
			}
		}
	}
	if !found {
		t.Errorf("expected %s, got %+v", canonval.CodeKeyframeTimeOrder, report.Errors)
	}
}

func TestValidateEqualKeyframeTimesAllowed(t *testing.T) {
	doc := validDocument(t)
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	effect := event["effect"].(map[string]any)
	effect["keyframes"] = map[string]any{
		"Hold": []any{
			map[string]any{"t": 1.0, "v": 0.5},
			map[string]any{"t": 1.0, "v": 0.5},
		},
	}

	report := canonval.New().Validate(doc)
	if !report.OK {
		t.Fatalf("equal adjacent times are non-decreasing: %+v", report.Errors)
	}
}

func TestValidateUMIDChainInvariant(t *testing.T) {
	doc := validDocument(t)
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	source := event["source"].(map[string]any)
	source["umid_chain"] = []any{"ok-umid", "", float64(7)}

	report := canonval.New().Validate(doc)
	if report.OK {
		t.Fatal("blank and non-string chain entries must fail")
	}

	var paths []string
	for _, issue := range report.Errors {
		if issue.Code == canonval.CodeInvalidUMIDChain {
			paths = append(paths, issue.Path)
		}
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 chain issues, got %v (%+v)", paths, report.Errors)
	}
	if paths[0] != "$.timeline.events[0].source.umid_chain[1]" ||
		paths[1] != "$.timeline.events[0].source.umid_chain[2]" {
		t.Errorf("chain issue paths = %v", paths)
	}
}

func TestValidateIdempotent(t *testing.T) {
	v := canonval.New()
	doc := validDocument(t)
	event := doc["timeline"].(map[string]any)["events"].([]any)[0].(map[string]any)
	event["id"] = "bogus"

	first := v.Validate(doc)
	second := v.Validate(doc)
	if len(first.Errors) != len(second.Errors) {
		t.Fatalf("repeat validation diverged: %d vs %d", len(first.Errors), len(second.Errors))
	}
	for i := range first.Errors {
		if first.Errors[i] != second.Errors[i] {
			t.Errorf("issue %d differs: %+v vs %+v", i, first.Errors[i], second.Errors[i])
		}
	}
}

func TestValidateDocumentTyped(t *testing.T) {
	report := canonval.New().ValidateDocument(testsupport.SampleDocument())
	if !report.OK {
		t.Fatalf("typed document should validate: %+v", report.Errors)
	}
}

func TestReportSummaryMirrorsIssueCount(t *testing.T) {
	report := canonval.New().Validate(decode(t, `{}`))
	if report.Summary.Checked != len(report.Errors) || report.Summary.Failed != len(report.Errors) {
		t.Errorf("summary = %+v, errors = %d", report.Summary, len(report.Errors))
	}
	if len(report.Summary.ReasonCodes) != len(report.Errors) {
		t.Errorf("reason codes = %v", report.Summary.ReasonCodes)
	}
}
