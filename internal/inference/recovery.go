package inference

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fenceRe matches a markdown fence line such as ```json or ```.
var fenceRe = regexp.MustCompile("(?m)^[ \t]*```[\\w+-]*[ \t]*\r?$")

// sliceObject returns text from the first '{' to the last '}'.
func sliceObject(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first != -1 && last > first {
		return s[first : last+1]
	}
	return strings.TrimSpace(s)
}

func decodeObject(s string) (map[string]any, bool) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(s), &payload); err != nil || payload == nil {
		return nil, false
	}
	return payload, true
}

// Recover pulls a JSON object out of unreliable model output. The outermost
// object is tried as-is first; fence lines are stripped only when that fails.
// ok is false when nothing parseable is found; that is an expected outcome.
func Recover(raw string) (payload map[string]any, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	if payload, ok := decodeObject(sliceObject(raw)); ok {
		return payload, true
	}
	return decodeObject(sliceObject(fenceRe.ReplaceAllString(raw, "")))
}

// RecoverBytes is Recover for callers that decode into their own types.
func RecoverBytes(raw string) ([]byte, bool) {
	payload, ok := Recover(raw)
	if !ok {
		return nil, false
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, false
	}
	return b, true
}
