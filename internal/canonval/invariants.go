package canonval

import (
	"fmt"
	"strings"
)

// checkInvariants runs the checks not expressible in schema form: keyframe
// time ordering and UMID chain sanity. A panic inside a check surfaces as
// an internal-error report entry rather than a crash.
func (v *Validator) checkInvariants(c *collector, root map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			c.add(CodeInternalError, Root(), fmt.Sprintf("internal validation error: %v", r), docRef)
		}
	}()

	events := eventList(root)
	for i, ev := range events {
		evObj, ok := ev.(map[string]any)
		if !ok {
			continue
		}
		v.checkKeyframeOrder(c, i, evObj)
		v.checkUMIDChain(c, i, evObj)
	}
}

func (v *Validator) checkKeyframeOrder(c *collector, eventIndex int, ev map[string]any) {
	effect, ok := ev["effect"].(map[string]any)
	if !ok {
		return
	}
	keyframes, ok := effect["keyframes"].(map[string]any)
	if !ok {
		return
	}
	for _, param := range sortedKeys(keyframes) {
		series, ok := keyframes[param].([]any)
		if !ok || len(series) < 2 {
			continue
		}
		times := make([]float64, 0, len(series))
		for _, entry := range series {
			kf, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if t, ok := kf["t"].(float64); ok {
				times = append(times, t)
			}
		}
		if !nonDecreasing(times) {
			p := Root().Field("timeline").Field("events").Index(eventIndex).
				Field("effect").Field("keyframes").Field(param)
			c.add(CodeKeyframeTimeOrder, p,
				fmt.Sprintf("keyframes not ordered by time: %v", times), docRefKeyframes)
		}
	}
}

func (v *Validator) checkUMIDChain(c *collector, eventIndex int, ev map[string]any) {
	source, ok := ev["source"].(map[string]any)
	if !ok {
		return
	}
	chain, ok := source["umid_chain"].([]any)
	if !ok {
		return
	}
	for i, entry := range chain {
		s, ok := entry.(string)
		if !ok || strings.TrimSpace(s) == "" {
			p := Root().Field("timeline").Field("events").Index(eventIndex).
				Field("source").Field("umid_chain").Index(i)
			c.add(CodeInvalidUMIDChain, p,
				fmt.Sprintf("UMID must be a non-empty string, found: %#v", entry), docRefIDs)
		}
	}
}

func eventList(root map[string]any) []any {
	timeline, ok := root["timeline"].(map[string]any)
	if !ok {
		return nil
	}
	events, ok := timeline["events"].([]any)
	if !ok {
		return nil
	}
	return events
}

func nonDecreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}
