package inference

import (
	"strings"
	"testing"
)

func TestPrepare(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		max  int
		want string
	}{
		{"empty", "", 100, ""},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -3, ""},
		{"trims", "  hello world \n", 100, "hello world"},
		{"keeps newlines", "line one\nline two", 100, "line one\nline two"},
		{"drops tabs and control", "a\tb\x00c\rd", 100, "abcd"},
		{"drops non ascii", "Résumé – José", 100, "Rsum  Jos"},
		{"truncates", "abcdefghij", 4, "abcd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Prepare(tc.raw, tc.max); got != tc.want {
				t.Errorf("Prepare(%q, %d) = %q, want %q", tc.raw, tc.max, got, tc.want)
			}
		})
	}
}

func TestPrepare_OutputIsBoundedAndPrintable(t *testing.T) {
	raw := strings.Repeat("résumé\tline\x07\n", 500)
	for _, n := range []int{1, 10, 600, 2500, 15000} {
		got := Prepare(raw, n)
		if len(got) > n {
			t.Fatalf("len(Prepare(_, %d)) = %d", n, len(got))
		}
		for i := 0; i < len(got); i++ {
			b := got[i]
			if b != '\n' && (b < 0x20 || b > 0x7E) {
				t.Fatalf("unexpected byte %#x at %d", b, i)
			}
		}
	}
}
