package mode

import "testing"

func TestIsValid(t *testing.T) {
	for _, m := range []Mode{Hybrid, Semantic, Text} {
		if !m.IsValid() {
			t.Errorf("%q should be valid", m)
		}
	}
	for _, m := range []Mode{"", "keyword", "HYBRID", "vector"} {
		if m.IsValid() {
			t.Errorf("%q should be invalid", m)
		}
	}
}
