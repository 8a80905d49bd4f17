package fuzzy

// HammingScorer counts positionwise differences between equal-length
// strings, normalized by their length. Hamming distance is undefined for
// unequal lengths, so those always score 1 regardless of content.
type HammingScorer struct{}

// NewHammingScorer creates a Hamming scorer.
func NewHammingScorer() *HammingScorer {
	return &HammingScorer{}
}

// Compare returns the fraction of differing positions. Two empty strings
// score 0; strings of different rune lengths score 1.
func (HammingScorer) Compare(a, b string) float64 {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return 1
	}
	diff := 0
	for i := range ra {
		if ra[i] != rb[i] {
			diff++
		}
	}
	return float64(diff) / float64(len(ra))
}
