package fuzzy

// bitParallelMax is the largest pattern length (in runes) handled by the
// bit-parallel path; patterns longer than one machine word's worth of
// columns fall back to the matrix implementation.
const bitParallelMax = 32

// LevenshteinScorer scores strings by normalized edit distance: the minimum
// number of single-character insertions, deletions, and substitutions,
// divided by the longer string's length.
//
// Before any dynamic programming it strips the longest common prefix and
// suffix (edit distance is invariant under their removal). When the shorter
// remaining string fits in 32 runes it runs Myers' bit-parallel algorithm;
// otherwise it uses a classic two-row matrix. Scratch buffers are reused
// across calls, so a scorer is not safe for concurrent use.
type LevenshteinScorer struct {
	bitParallel bool
	trim        bool

	peq        map[rune]uint64
	prev, curr []int
}

// LevenshteinOption configures a LevenshteinScorer.
type LevenshteinOption func(*LevenshteinScorer)

// WithBitParallel enables or disables the bit-parallel fast path. Disabling
// it forces the matrix implementation; the result is identical either way.
func WithBitParallel(on bool) LevenshteinOption {
	return func(s *LevenshteinScorer) { s.bitParallel = on }
}

// WithTrimming enables or disables common prefix/suffix stripping. The
// result is identical either way.
func WithTrimming(on bool) LevenshteinOption {
	return func(s *LevenshteinScorer) { s.trim = on }
}

// NewLevenshteinScorer creates a Levenshtein scorer. Both the bit-parallel
// path and prefix/suffix trimming are enabled by default.
func NewLevenshteinScorer(opts ...LevenshteinOption) *LevenshteinScorer {
	s := &LevenshteinScorer{bitParallel: true, trim: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compare returns the edit distance between a and b divided by the longer
// length in runes. Equal strings score 0; if exactly one is empty the score
// is 1.
func (s *LevenshteinScorer) Compare(a, b string) float64 {
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

	if s.trim {
		ra, rb = trimCommon(ra, rb)
	}

	var dist int
	switch {
	case len(ra) == 0:
		dist = len(rb)
	case len(rb) == 0:
		dist = len(ra)
	default:
		pattern, text := ra, rb
		if len(pattern) > len(text) {
			pattern, text = text, pattern
		}
		if s.bitParallel && len(pattern) <= bitParallelMax {
			dist = s.distanceBitParallel(pattern, text)
		} else {
			dist = s.distanceMatrix(pattern, text)
		}
	}
	return float64(dist) / float64(maxLen)
}

// trimCommon strips the longest shared prefix, then the longest shared
// suffix, from both rune slices.
func trimCommon(a, b []rune) ([]rune, []rune) {
	for len(a) > 0 && len(b) > 0 && a[0] == b[0] {
		a, b = a[1:], b[1:]
	}
	for len(a) > 0 && len(b) > 0 && a[len(a)-1] == b[len(b)-1] {
		a, b = a[:len(a)-1], b[:len(b)-1]
	}
	return a, b
}

// distanceBitParallel computes the edit distance with Myers' algorithm: the
// DP column deltas are packed into machine words so one word-width of cells
// advances per text character. pattern must be at most bitParallelMax runes.
func (s *LevenshteinScorer) distanceBitParallel(pattern, text []rune) int {
	m := len(pattern)

	// Equality bitmask per pattern character, built once per call.
	if s.peq == nil {
		s.peq = make(map[rune]uint64, m)
	} else {
		for k := range s.peq {
			delete(s.peq, k)
		}
	}
	for i, r := range pattern {
		s.peq[r] |= 1 << uint(i)
	}

	var (
		vp    = uint64(1)<<uint(m) - 1
		vn    uint64
		score = m
		high  = uint64(1) << uint(m-1)
	)
	for _, r := range text {
		eq := s.peq[r]
		d0 := (((eq & vp) + vp) ^ vp) | eq | vn
		hp := vn | ^(d0 | vp)
		hn := vp & d0
		if hp&high != 0 {
			score++
		}
		if hn&high != 0 {
			score--
		}
		hp = hp<<1 | 1
		hn <<= 1
		vp = hn | ^(d0 | hp)
		vn = hp & d0
	}
	return score
}

// distanceMatrix is the classic two-row DP fallback for patterns longer
// than one machine word.
func (s *LevenshteinScorer) distanceMatrix(a, b []rune) int {
	la, lb := len(a), len(b)
	if cap(s.prev) < lb+1 {
		s.prev = make([]int, lb+1)
		s.curr = make([]int, lb+1)
	}
	prev, curr := s.prev[:lb+1], s.curr[:lb+1]

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

// min3 returns the minimum of three integers.
func min3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}

// min2 returns the minimum of two integers.
func min2(a, b int) int {
	if a <= b {
		return a
	}
	return b
}
