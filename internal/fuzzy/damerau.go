package fuzzy

// DamerauScorer scores strings by the optimal string alignment variant of
// Damerau-Levenshtein distance: Levenshtein operations plus adjacent
// transpositions at cost 1, where no substring is edited more than once.
// The distance is normalized by the longer string's length in runes.
//
// The DP always uses three rolling rows (current, previous, and the row
// before that) because the transposition check needs two rows of history;
// there is no bit-parallel fast path. Rows are reused across calls, so a
// scorer is not safe for concurrent use.
type DamerauScorer struct {
	rows [3][]int
}

// NewDamerauScorer creates a Damerau-Levenshtein (OSA) scorer.
func NewDamerauScorer() *DamerauScorer {
	return &DamerauScorer{}
}

// Compare returns the OSA distance between a and b divided by the longer
// length in runes. Equal strings score 0; if exactly one is empty the score
// is 1.
func (s *DamerauScorer) Compare(a, b string) float64 {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return 1
	}
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}

	if cap(s.rows[0]) < lb+1 {
		for i := range s.rows {
			s.rows[i] = make([]int, lb+1)
		}
	}
	prevPrev := s.rows[0][:lb+1]
	prev := s.rows[1][:lb+1]
	curr := s.rows[2][:lb+1]

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				curr[j] = min2(curr[j], prevPrev[j-2]+1) // transposition
			}
		}
		prevPrev, prev, curr = prev, curr, prevPrev
	}
	return float64(prev[lb]) / float64(maxLen)
}
