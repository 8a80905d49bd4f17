package fuzzy

import "testing"

func TestHammingScorer_Compare(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"both empty", "", "", 0},
		{"identical", "abc", "abc", 0},
		{"one difference", "abc123", "abc124", 1.0 / 6},
		{"shifted tail differs positionwise", "abc123", "ab1234", 4.0 / 6},
		{"all different", "aaa", "bbb", 1},

		// Hamming distance is undefined for unequal lengths; the score is
		// 1 regardless of content.
		{"length mismatch", "abc", "abcd", 1},
		{"length mismatch empty", "", "a", 1},

		// Runes, not bytes
		{"unicode equal length", "café", "cafe", 1.0 / 4},
	}

	s := NewHammingScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Compare(tt.a, tt.b)
			if !almostEqual(got, tt.expected) {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
			if rev := s.Compare(tt.b, tt.a); !almostEqual(got, rev) {
				t.Errorf("Compare is not symmetric: (%q,%q)=%v, (%q,%q)=%v",
					tt.a, tt.b, got, tt.b, tt.a, rev)
			}
		})
	}
}
