package inference

import (
	"regexp"
	"strconv"
	"strings"
)

// Lookup reads key from m, falling back to a case-insensitive match
// (skills vs Skills) when the exact key is absent.
func Lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// LookupInt is Lookup for numeric fields. Strings holding numbers are accepted.
func LookupInt(m map[string]any, key string) (int, bool) {
	v, ok := Lookup(m, key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

var scoreRe = regexp.MustCompile(`(\d{1,3})\s*/\s*100`)

// ExtractScore finds the first "NN/100" token in free-form review text.
func ExtractScore(text string) (int, bool) {
	m := scoreRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > 100 {
		return 0, false
	}
	return n, true
}
