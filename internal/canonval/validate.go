package canonval

import (
	"fmt"
	"math"
	"regexp"
	"sort"
)

var eventIDPattern = regexp.MustCompile(`^ev_\d{4}$`)

// Validator holds the compiled schema tables. Construct one with New and
// pass it around explicitly; there is no process-wide schema state.
type Validator struct {
	eventID *regexp.Regexp
}

// New returns a Validator for the canonical document schema.
func New() *Validator {
	return &Validator{eventID: eventIDPattern}
}

type collector struct {
	issues []Issue
}

func (c *collector) add(code string, p Path, message, doc string) {
	c.issues = append(c.issues, Issue{Code: code, Path: p.String(), Message: message, Doc: doc})
}

// Validate checks doc against the closed schema and the extra-schema
// invariants. It never panics or errors on malformed input; the outcome is
// always a report.
func (v *Validator) Validate(doc any) Report {
	var c collector

	root, ok := doc.(map[string]any)
	if !ok {
		c.add(CodeUnexpectedShape, Root(), "document must be a JSON object", docRef)
		return buildReport(c.issues)
	}

	v.checkRoot(&c, root)
	v.checkInvariants(&c, root)

	return buildReport(c.issues)
}

func (v *Validator) checkRoot(c *collector, root map[string]any) {
	p := Root()

	project, ok := root["project"]
	if !ok {
		c.add(CodeMissingProject, p, "required key 'project' is missing", docRef)
	} else {
		v.checkProject(c, p.Field("project"), project)
	}

	timeline, ok := root["timeline"]
	if !ok {
		c.add(CodeMissingTimeline, p, "required key 'timeline' is missing", docRef)
	} else {
		v.checkTimeline(c, p.Field("timeline"), timeline)
	}

	v.rejectExtraKeys(c, p, root, "project", "timeline")
}

func (v *Validator) checkProject(c *collector, p Path, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		c.add(CodeUnexpectedShape, p, "project must be an object", docRef)
		return
	}

	if name, ok := obj["name"]; !ok {
		c.add(CodeMissingProjectName, p, "required key 'name' is missing", docRef)
	} else if _, ok := name.(string); !ok {
		c.add(CodeUnexpectedShape, p.Field("name"), "name must be a string", docRef)
	}

	if rate, ok := obj["edit_rate_fps"]; !ok {
		c.add(CodeMissingProjectEditRate, p, "required key 'edit_rate_fps' is missing", docRef)
	} else if f, ok := rate.(float64); !ok {
		c.add(CodeUnexpectedShape, p.Field("edit_rate_fps"), "edit_rate_fps must be a number", docRef)
	} else if f <= 0 {
		c.add(CodeInvalidEditRate, p.Field("edit_rate_fps"), fmt.Sprintf("edit_rate_fps must be > 0, found %v", f), docRef)
	}

	if format, ok := obj["tc_format"]; !ok {
		c.add(CodeMissingProjectTCFormat, p, "required key 'tc_format' is missing", docRef)
	} else if s, ok := format.(string); !ok {
		c.add(CodeUnexpectedShape, p.Field("tc_format"), "tc_format must be a string", docRef)
	} else if s != "DF" && s != "NDF" {
		c.add(CodeInvalidTCFormat, p.Field("tc_format"), fmt.Sprintf("tc_format must be DF or NDF, found %q", s), docRef)
	}

	v.rejectExtraKeys(c, p, obj, "name", "edit_rate_fps", "tc_format")
}

func (v *Validator) checkTimeline(c *collector, p Path, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		c.add(CodeUnexpectedShape, p, "timeline must be an object", docRef)
		return
	}

	if name, ok := obj["name"]; !ok {
		c.add(CodeMissingTimelineName, p, "required key 'name' is missing", docRef)
	} else if _, ok := name.(string); !ok {
		c.add(CodeUnexpectedShape, p.Field("name"), "name must be a string", docRef)
	}

	if start, ok := obj["start_tc_frames"]; !ok {
		c.add(CodeMissingTimelineStartTC, p, "required key 'start_tc_frames' is missing", docRef)
	} else if n, ok := asInteger(start); !ok {
		c.add(CodeUnexpectedShape, p.Field("start_tc_frames"), "start_tc_frames must be an integer", docRef)
	} else if n < 0 {
		c.add(CodeInvalidStartTCFrames, p.Field("start_tc_frames"), fmt.Sprintf("start_tc_frames must be >= 0, found %d", n), docRef)
	}

	events, ok := obj["events"]
	if !ok {
		c.add(CodeMissingTimelineEvents, p, "required key 'events' is missing", docRef)
	} else if list, ok := events.([]any); !ok {
		c.add(CodeUnexpectedShape, p.Field("events"), "events must be an array", docRef)
	} else {
		for i, ev := range list {
			v.checkEvent(c, p.Field("events").Index(i), ev)
		}
	}

	v.rejectExtraKeys(c, p, obj, "name", "start_tc_frames", "events")
}

func (v *Validator) checkEvent(c *collector, p Path, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		c.add(CodeUnexpectedShape, p, "event must be an object", docRef)
		return
	}

	if id, ok := obj["id"]; !ok {
		c.add(CodeMissingEventID, p, "required key 'id' is missing", docRef)
	} else if s, ok := id.(string); !ok {
		c.add(CodeUnexpectedShape, p.Field("id"), "id must be a string", docRef)
	} else if !v.eventID.MatchString(s) {
		c.add(CodeInvalidEventIDFormat, p.Field("id"), fmt.Sprintf("id must match ev_ followed by 4 digits, found %q", s), docRef)
	}

	if start, ok := obj["timeline_start_frames"]; !ok {
		c.add(CodeMissingEventTimelineStart, p, "required key 'timeline_start_frames' is missing", docRef)
	} else if n, ok := asInteger(start); !ok {
		c.add(CodeUnexpectedShape, p.Field("timeline_start_frames"), "timeline_start_frames must be an integer", docRef)
	} else if n < 0 {
		c.add(CodeInvalidTimelineStart, p.Field("timeline_start_frames"), fmt.Sprintf("timeline_start_frames must be >= 0, found %d", n), docRef)
	}

	if length, ok := obj["length_frames"]; !ok {
		c.add(CodeMissingEventLength, p, "required key 'length_frames' is missing", docRef)
	} else if n, ok := asInteger(length); !ok {
		c.add(CodeUnexpectedShape, p.Field("length_frames"), "length_frames must be an integer", docRef)
	} else if n < 1 {
		c.add(CodeInvalidLengthFrames, p.Field("length_frames"), fmt.Sprintf("length_frames must be >= 1, found %d", n), docRef)
	}

	if source, ok := obj["source"]; !ok {
		c.add(CodeMissingEventSource, p, "required key 'source' is missing", docRef)
	} else if source != nil {
		v.checkSource(c, p.Field("source"), source)
	}

	if effect, ok := obj["effect"]; !ok {
		c.add(CodeMissingEventEffect, p, "required key 'effect' is missing", docRef)
	} else {
		v.checkEffect(c, p.Field("effect"), effect)
	}

	v.rejectExtraKeys(c, p, obj, "id", "timeline_start_frames", "length_frames", "source", "effect")
}

func (v *Validator) checkSource(c *collector, p Path, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		c.add(CodeUnexpectedShape, p, "source must be null or an object", docRef)
		return
	}

	required := []struct {
		name string
		code string
	}{
		{"path", CodeMissingSourcePath},
		{"umid_chain", CodeMissingSourceUMIDChain},
		{"tape_id", CodeMissingSourceTapeID},
		{"disk_label", CodeMissingSourceDiskLabel},
		{"src_tc_start_frames", CodeMissingSourceTCStart},
		{"src_rate_fps", CodeMissingSourceRateFPS},
		{"src_drop", CodeMissingSourceDrop},
	}
	for _, field := range required {
		if _, ok := obj[field.name]; !ok {
			c.add(field.code, p, fmt.Sprintf("required key '%s' is missing", field.name), docRef)
		}
	}

	if path, ok := obj["path"]; ok && path != nil {
		if _, isStr := path.(string); !isStr {
			c.add(CodeUnexpectedShape, p.Field("path"), "path must be null or a string", docRef)
		}
	}
	if chain, ok := obj["umid_chain"]; ok {
		if _, isList := chain.([]any); !isList {
			c.add(CodeUnexpectedShape, p.Field("umid_chain"), "umid_chain must be an array", docRef)
		}
		// Entry values are covered by the chain invariant check.
	}
	for _, name := range []string{"tape_id", "disk_label"} {
		if val, ok := obj[name]; ok && val != nil {
			if _, isStr := val.(string); !isStr {
				c.add(CodeUnexpectedShape, p.Field(name), name+" must be null or a string", docRef)
			}
		}
	}
	if start, ok := obj["src_tc_start_frames"]; ok && start != nil {
		if n, isInt := asInteger(start); !isInt || n < 0 {
			c.add(CodeUnexpectedShape, p.Field("src_tc_start_frames"), "src_tc_start_frames must be null or an integer >= 0", docRef)
		}
	}
	if rate, ok := obj["src_rate_fps"]; ok {
		if f, isNum := rate.(float64); !isNum || f <= 0 {
			c.add(CodeUnexpectedShape, p.Field("src_rate_fps"), "src_rate_fps must be a number > 0", docRef)
		}
	}
	if drop, ok := obj["src_drop"]; ok {
		if _, isBool := drop.(bool); !isBool {
			c.add(CodeUnexpectedShape, p.Field("src_drop"), "src_drop must be a boolean", docRef)
		}
	}

	v.rejectExtraKeys(c, p, obj,
		"path", "umid_chain", "tape_id", "disk_label",
		"src_tc_start_frames", "src_rate_fps", "src_drop")
}

func (v *Validator) checkEffect(c *collector, p Path, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		c.add(CodeUnexpectedShape, p, "effect must be an object", docRef)
		return
	}

	if name, ok := obj["name"]; !ok {
		c.add(CodeMissingEffectName, p, "required key 'name' is missing", docRef)
	} else if _, isStr := name.(string); !isStr {
		c.add(CodeUnexpectedShape, p.Field("name"), "name must be a string", docRef)
	}

	if onFiller, ok := obj["on_filler"]; !ok {
		c.add(CodeMissingEffectOnFiller, p, "required key 'on_filler' is missing", docRef)
	} else if _, isBool := onFiller.(bool); !isBool {
		c.add(CodeUnexpectedShape, p.Field("on_filler"), "on_filler must be a boolean", docRef)
	}

	if params, ok := obj["parameters"]; !ok {
		c.add(CodeMissingEffectParameters, p, "required key 'parameters' is missing", docRef)
	} else if m, isMap := params.(map[string]any); !isMap {
		c.add(CodeUnexpectedShape, p.Field("parameters"), "parameters must be an object", docRef)
	} else {
		pp := p.Field("parameters")
		for _, name := range sortedKeys(m) {
			switch m[name].(type) {
			case nil, string, float64:
			default:
				c.add(CodeUnexpectedShape, pp.Field(name), "parameter values must be number, string, or null", docRef)
			}
		}
	}

	if kfs, ok := obj["keyframes"]; !ok {
		c.add(CodeMissingEffectKeyframes, p, "required key 'keyframes' is missing", docRef)
	} else if m, isMap := kfs.(map[string]any); !isMap {
		c.add(CodeUnexpectedShape, p.Field("keyframes"), "keyframes must be an object", docRef)
	} else {
		kp := p.Field("keyframes")
		for _, name := range sortedKeys(m) {
			series, isList := m[name].([]any)
			if !isList {
				c.add(CodeUnexpectedShape, kp.Field(name), "keyframe series must be an array", docRef)
				continue
			}
			for i, entry := range series {
				v.checkKeyframe(c, kp.Field(name).Index(i), entry)
			}
		}
	}

	if refs, ok := obj["external_refs"]; !ok {
		c.add(CodeMissingEffectExternalRefs, p, "required key 'external_refs' is missing", docRef)
	} else if list, isList := refs.([]any); !isList {
		c.add(CodeUnexpectedShape, p.Field("external_refs"), "external_refs must be an array", docRef)
	} else {
		for i, ref := range list {
			v.checkExternalRef(c, p.Field("external_refs").Index(i), ref)
		}
	}

	v.rejectExtraKeys(c, p, obj, "name", "on_filler", "parameters", "keyframes", "external_refs")
}

func (v *Validator) checkKeyframe(c *collector, p Path, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		c.add(CodeUnexpectedShape, p, "keyframe must be an object", docRef)
		return
	}

	if t, ok := obj["t"]; !ok {
		c.add(CodeMissingKeyframeTime, p, "required key 't' is missing", docRef)
	} else if f, isNum := t.(float64); !isNum {
		c.add(CodeUnexpectedShape, p.Field("t"), "t must be a number", docRef)
	} else if f < 0 {
		c.add(CodeInvalidKeyframeTime, p.Field("t"), fmt.Sprintf("t must be >= 0, found %v", f), docRef)
	}

	if val, ok := obj["v"]; !ok {
		c.add(CodeMissingKeyframeValue, p, "required key 'v' is missing", docRef)
	} else {
		switch val.(type) {
		case string, float64:
		default:
			c.add(CodeUnexpectedShape, p.Field("v"), "v must be a number or a string", docRef)
		}
	}

	v.rejectExtraKeys(c, p, obj, "t", "v")
}

func (v *Validator) checkExternalRef(c *collector, p Path, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		c.add(CodeUnexpectedShape, p, "external_ref must be an object", docRef)
		return
	}

	if kind, ok := obj["kind"]; !ok {
		c.add(CodeMissingExtRefKind, p, "required key 'kind' is missing", docRef)
	} else if s, isStr := kind.(string); !isStr {
		c.add(CodeUnexpectedShape, p.Field("kind"), "kind must be a string", docRef)
	} else if s != "image" && s != "matte" && s != "unknown" {
		c.add(CodeUnexpectedShape, p.Field("kind"), fmt.Sprintf("kind must be image, matte, or unknown, found %q", s), docRef)
	}

	if path, ok := obj["path"]; !ok {
		c.add(CodeMissingExtRefPath, p, "required key 'path' is missing", docRef)
	} else if _, isStr := path.(string); !isStr {
		c.add(CodeUnexpectedShape, p.Field("path"), "path must be a string", docRef)
	}

	v.rejectExtraKeys(c, p, obj, "kind", "path")
}

// rejectExtraKeys enforces additionalProperties:false at one container.
func (v *Validator) rejectExtraKeys(c *collector, p Path, obj map[string]any, allowed ...string) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = struct{}{}
	}
	var extras []string
	for key := range obj {
		if _, ok := allowedSet[key]; !ok {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		c.add(CodeUnexpectedShape, p.Field(key), "key is not allowed here", docRef)
	}
}

// asInteger accepts JSON numbers with no fractional part.
func asInteger(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
