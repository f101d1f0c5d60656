package inference

import "strings"

// MinInputLength is the shortest prepared text worth sending to a provider.
const MinInputLength = 50

// Input ceilings per task.
const (
	MaxResumeChars   = 15000
	MaxHeaderChars   = 600
	MaxRoadmapChars  = 2500
	MaxLinkedInChars = 4000
	MaxCodeChars     = 5000
)

// Prepare keeps only printable ASCII and newlines, trims surrounding
// whitespace and cuts the result to at most maxLength bytes. It never fails.
func Prepare(raw string, maxLength int) string {
	if maxLength <= 0 || raw == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(min(len(raw), maxLength*2))
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if b == '\n' || (b >= 0x20 && b <= 0x7E) {
			sb.WriteByte(b)
		}
	}

	text := strings.TrimSpace(sb.String())
	if len(text) > maxLength {
		text = text[:maxLength]
	}
	return text
}
