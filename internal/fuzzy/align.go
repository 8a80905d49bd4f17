package fuzzy

// Alignment scoring scheme shared by Smith-Waterman and Needleman-Wunsch.
const (
	alignMatch    = 2
	alignMismatch = -1
	alignGap      = -1
)

// SmithWatermanScorer scores strings by local alignment: the best-scoring
// matching substring pair under match +2, mismatch -1, gap -1, with every
// cell floored at zero. A perfect substring match therefore scores 0
// regardless of the surrounding text, which makes this the algorithm of
// choice for partial matches.
//
// The DP uses two rolling rows reused across calls; a scorer is not safe
// for concurrent use.
type SmithWatermanScorer struct {
	prev, curr []int
}

// NewSmithWatermanScorer creates a Smith-Waterman scorer.
func NewSmithWatermanScorer() *SmithWatermanScorer {
	return &SmithWatermanScorer{}
}

// Compare returns 1 - best/(2*min(len(a), len(b))) where best is the best
// local alignment score. Equal strings score 0; if either is empty the
// score is 1.
func (s *SmithWatermanScorer) Compare(a, b string) float64 {
	if a == b && a != "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return 1
	}

	if cap(s.prev) < lb+1 {
		s.prev = make([]int, lb+1)
		s.curr = make([]int, lb+1)
	}
	prev, curr := s.prev[:lb+1], s.curr[:lb+1]

	for j := 0; j <= lb; j++ {
		prev[j] = 0
	}
	best := 0
	for i := 1; i <= la; i++ {
		curr[0] = 0
		for j := 1; j <= lb; j++ {
			sub := alignMismatch
			if ra[i-1] == rb[j-1] {
				sub = alignMatch
			}
			cell := prev[j-1] + sub
			if up := prev[j] + alignGap; up > cell {
				cell = up
			}
			if left := curr[j-1] + alignGap; left > cell {
				cell = left
			}
			if cell < 0 {
				cell = 0
			}
			curr[j] = cell
			if cell > best {
				best = cell
			}
		}
		prev, curr = curr, prev
	}

	minLen := la
	if lb < minLen {
		minLen = lb
	}
	return clamp01(1 - float64(best)/float64(minLen*alignMatch))
}

// NeedlemanWunschScorer scores strings by global alignment under the same
// match +2, mismatch -1, gap -1 scheme as Smith-Waterman, but without the
// per-cell floor: boundary rows carry cumulative gap cost and the final
// cell scores the entire end-to-end alignment.
//
// The DP uses two rolling rows reused across calls; a scorer is not safe
// for concurrent use.
type NeedlemanWunschScorer struct {
	prev, curr []int
}

// NewNeedlemanWunschScorer creates a Needleman-Wunsch scorer.
func NewNeedlemanWunschScorer() *NeedlemanWunschScorer {
	return &NeedlemanWunschScorer{}
}

// Compare returns 1 - final/(2*min(len(a), len(b))) clamped to [0, 1],
// where final is the global alignment score. Equal strings score 0; if
// either is empty the score is 1.
func (s *NeedlemanWunschScorer) Compare(a, b string) float64 {
	if a == b && a != "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return 1
	}

	if cap(s.prev) < lb+1 {
		s.prev = make([]int, lb+1)
		s.curr = make([]int, lb+1)
	}
	prev, curr := s.prev[:lb+1], s.curr[:lb+1]

	for j := 0; j <= lb; j++ {
		prev[j] = j * alignGap
	}
	for i := 1; i <= la; i++ {
		curr[0] = i * alignGap
		for j := 1; j <= lb; j++ {
			sub := alignMismatch
			if ra[i-1] == rb[j-1] {
				sub = alignMatch
			}
			cell := prev[j-1] + sub
			if up := prev[j] + alignGap; up > cell {
				cell = up
			}
			if left := curr[j-1] + alignGap; left > cell {
				cell = left
			}
			curr[j] = cell
		}
		prev, curr = curr, prev
	}

	minLen := la
	if lb < minLen {
		minLen = lb
	}
	return clamp01(1 - float64(prev[lb])/float64(minLen*alignMatch))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
