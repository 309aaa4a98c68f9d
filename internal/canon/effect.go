package canon

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"aafcanon/internal/graph"
)

const (
	pluginNameAttr  = "_EFFECT_PLUGIN_NAME"
	pluginClassAttr = "_EFFECT_PLUGIN_CLASS"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp", ".gif"}

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ExtractEffect captures an operation group without interpretation: name,
// static parameters, per-parameter keyframe series, and any path-like
// values found inside parameter payloads. Nothing is filtered; every group
// yields an Effect regardless of whether it resolves to anything useful.
func ExtractEffect(group *graph.Segment) Effect {
	fx := Effect{
		Name:         effectName(group),
		Parameters:   map[string]any{},
		Keyframes:    map[string][]Keyframe{},
		ExternalRefs: []ExternalRef{},
	}
	if group == nil {
		return fx
	}

	for i, par := range group.Parameters {
		name := strings.TrimSpace(par.Name)
		if name == "" {
			name = fmt.Sprintf("Param%d", i+1)
		}
		if par.Value != nil {
			fx.Parameters[name] = coerceValue(par.Value, &fx.ExternalRefs)
		}
		if len(par.Points) > 0 {
			series := make([]Keyframe, 0, len(par.Points))
			for _, cp := range par.Points {
				series = append(series, Keyframe{
					T: cp.Time,
					V: coerceValue(cp.Value, &fx.ExternalRefs),
				})
			}
			// Encounter order is preserved; ordering violations are the
			// validator's concern.
			fx.Keyframes[name] = series
		}
	}
	return fx
}

// effectName resolves the display name: explicit plugin name attribute,
// then plugin class, then the generic operation label, then the sentinel.
func effectName(group *graph.Segment) string {
	if group == nil {
		return EffectNone
	}
	byName := make(map[string]string, len(group.Attributes))
	for _, tv := range group.Attributes {
		if s, ok := tv.Value.(string); ok {
			byName[tv.Name] = s
		}
	}
	if name := strings.TrimSpace(byName[pluginNameAttr]); name != "" {
		return name
	}
	if name := strings.TrimSpace(byName[pluginClassAttr]); name != "" {
		return name
	}
	if name := strings.TrimSpace(group.Operation); name != "" {
		return name
	}
	return EffectUnknown
}

// coerceValue normalizes a raw parameter payload to the number|string|null
// union, recording path-like strings in refs along the way. Byte payloads
// are speculatively decoded as UTF-16LE text.
func coerceValue(v any, refs *[]ExternalRef) any {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		noteExternalRef(value, refs)
		return value
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case bool:
		if value {
			return "true"
		}
		return "false"
	case []byte:
		return coerceBytes(value, refs)
	case []any:
		if b, ok := intsToBytes(value); ok {
			return coerceBytes(b, refs)
		}
		return fmt.Sprintf("%v", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func coerceBytes(b []byte, refs *[]ExternalRef) any {
	s := decodeUTF16LE(b)
	if s == "" {
		return fmt.Sprintf("%v", b)
	}
	noteExternalRef(s, refs)
	return s
}

func decodeUTF16LE(b []byte) string {
	decoded, err := utf16Decoder.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	s := strings.ReplaceAll(string(decoded), "\x00", "")
	return strings.TrimSpace(s)
}

// intsToBytes converts a JSON array of small integers to raw bytes.
func intsToBytes(values []any) ([]byte, bool) {
	if len(values) == 0 {
		return nil, false
	}
	b := make([]byte, 0, len(values))
	for _, v := range values {
		f, ok := v.(float64)
		if !ok || f != float64(int64(f)) || f < 0 || f > 255 {
			return nil, false
		}
		b = append(b, byte(f))
	}
	return b, true
}

func noteExternalRef(s string, refs *[]ExternalRef) {
	if !looksLikePath(s) {
		return
	}
	*refs = append(*refs, ExternalRef{Kind: guessRefKind(s), Path: s})
}

// looksLikePath matches file URLs, POSIX paths, Windows drive paths, and
// UNC separators.
func looksLikePath(s string) bool {
	if strings.Contains(strings.ToLower(s), "file://") {
		return true
	}
	return strings.Contains(s, "/") || strings.Contains(s, `:\`) || strings.Contains(s, `\\`)
}

func guessRefKind(s string) string {
	lowered := strings.ToLower(s)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowered, ext) {
			return RefKindImage
		}
	}
	return RefKindUnknown
}
