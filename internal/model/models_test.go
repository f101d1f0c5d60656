package model

import (
	"encoding/json"
	"testing"
)

func TestScore_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Score
	}{
		{`78`, 78},
		{`78.4`, 78},
		{`"78"`, 78},
		{`"78/100"`, 78},
		{`null`, 0},
		{`112`, 100},
		{`-5`, 0},
		{`1e300`, 100},
		{`-1e300`, 0},
		{`"1e300"`, 100},
	}
	for _, tt := range tests {
		var s Score
		if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
			t.Errorf("Unmarshal(%s) failed: %v", tt.in, err)
			continue
		}
		if s != tt.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tt.in, s, tt.want)
		}
	}
}

func TestScore_UnmarshalJSONRejectsNonNumeric(t *testing.T) {
	for _, in := range []string{`"N/A"`, `"NaN"`, `true`, `{}`} {
		var s Score
		if err := json.Unmarshal([]byte(in), &s); err == nil {
			t.Errorf("Unmarshal(%s) = %d, expected error", in, s)
		}
	}
}
