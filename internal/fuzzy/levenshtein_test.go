package fuzzy

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLevenshteinScorer_Compare(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		// Identical strings
		{"identical empty", "", "", 0},
		{"identical word", "hello", "hello", 0},
		{"identical unicode", "こんにちは", "こんにちは", 0},

		// Empty string cases
		{"empty a", "", "hello", 1},
		{"empty b", "hello", "", 1},

		// Single character differences
		{"one substitution", "cat", "bat", 1.0 / 3},
		{"one insertion", "cat", "cart", 1.0 / 4},
		{"one deletion", "cart", "cat", 1.0 / 4},

		// Multiple differences
		{"kitten to sitting", "kitten", "sitting", 3.0 / 7},
		{"saturday to sunday", "saturday", "sunday", 3.0 / 8},

		// Common typos
		{"aple to apple", "aple", "apple", 1.0 / 5},
		{"machine to machne", "machine", "machne", 1.0 / 7},

		// Transposition costs two plain edits
		{"transposition ab-ba", "ab", "ba", 1},

		// Unicode counts runes, not bytes
		{"unicode substitution", "café", "cafe", 1.0 / 4},

		// Shared prefix and suffix
		{"shared affixes", "unhappiness", "unhapponess", 1.0 / 11},
	}

	s := NewLevenshteinScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Compare(tt.a, tt.b)
			if !almostEqual(got, tt.expected) {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
			// Normalizing by the longer length makes the score symmetric.
			if rev := s.Compare(tt.b, tt.a); !almostEqual(got, rev) {
				t.Errorf("Compare is not symmetric: (%q,%q)=%v, (%q,%q)=%v",
					tt.a, tt.b, got, tt.b, tt.a, rev)
			}
		})
	}
}

// equivalencePairs covers short strings (bit-parallel path), strings longer
// than 32 runes (matrix path), unicode, and shared affixes.
var equivalencePairs = [][2]string{
	{"", ""},
	{"a", ""},
	{"a", "b"},
	{"kitten", "sitting"},
	{"teh", "the"},
	{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnopqrstuvwxyz"},
	{"abcdefghijklmnopqrstuvwxyz012345", "abcdefghijklmnopqrstuvwxyz543210"},
	{"the quick brown fox jumps over the lazy dog", "the quikc brown foz jumsp over teh lazy dog"},
	{"internationalization", "internationalisation"},
	{"こんにちは世界", "こんばんは世界"},
	{"prefix-shared-middle-different-suffix-shared", "prefix-shared-center-changed-suffix-shared"},
	{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "aaaaaaaaaaaaaaaaaaaabaaaaaaaaaaaaaaaaa"},
}

func TestLevenshteinScorer_BitParallelEquivalence(t *testing.T) {
	fast := NewLevenshteinScorer(WithBitParallel(true))
	slow := NewLevenshteinScorer(WithBitParallel(false))
	for _, pair := range equivalencePairs {
		a, b := pair[0], pair[1]
		if got, want := fast.Compare(a, b), slow.Compare(a, b); !almostEqual(got, want) {
			t.Errorf("bit-parallel Compare(%q, %q) = %v, matrix = %v", a, b, got, want)
		}
	}
}

func TestLevenshteinScorer_TrimmingEquivalence(t *testing.T) {
	trimmed := NewLevenshteinScorer(WithTrimming(true))
	plain := NewLevenshteinScorer(WithTrimming(false))
	for _, pair := range equivalencePairs {
		a, b := pair[0], pair[1]
		if got, want := trimmed.Compare(a, b), plain.Compare(a, b); !almostEqual(got, want) {
			t.Errorf("trimmed Compare(%q, %q) = %v, untrimmed = %v", a, b, got, want)
		}
	}
}

func TestLevenshteinScorer_Range(t *testing.T) {
	s := NewLevenshteinScorer()
	for _, pair := range equivalencePairs {
		score := s.Compare(pair[0], pair[1])
		if score < 0 || score > 1 {
			t.Errorf("Compare(%q, %q) = %v, outside [0,1]", pair[0], pair[1], score)
		}
	}
}

func BenchmarkLevenshteinScorer_BitParallel(b *testing.B) {
	s := NewLevenshteinScorer()
	for i := 0; i < b.N; i++ {
		s.Compare("documentation", "documantation")
	}
}

func BenchmarkLevenshteinScorer_Matrix(b *testing.B) {
	s := NewLevenshteinScorer(WithBitParallel(false))
	for i := 0; i < b.N; i++ {
		s.Compare("documentation", "documantation")
	}
}

func BenchmarkLevenshteinScorer_Long(b *testing.B) {
	s := NewLevenshteinScorer()
	strA := "the quick brown fox jumps over the lazy dog"
	strB := "the quikc brown foz jumsp over teh lazy dog"
	for i := 0; i < b.N; i++ {
		s.Compare(strA, strB)
	}
}
