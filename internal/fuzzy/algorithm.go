package fuzzy

import "fmt"

// Algorithm identifies one of the supported similarity algorithms.
type Algorithm string

const (
	// Levenshtein counts insertions, deletions, and substitutions.
	Levenshtein Algorithm = "levenshtein"
	// DamerauLevenshtein adds adjacent transpositions as a single edit
	// (optimal string alignment variant).
	DamerauLevenshtein Algorithm = "damerau-levenshtein"
	// SmithWaterman scores the best local alignment, making it suitable
	// for substring and partial matches.
	SmithWaterman Algorithm = "smith-waterman"
	// NeedlemanWunsch scores a global end-to-end alignment.
	NeedlemanWunsch Algorithm = "needleman-wunsch"
	// JaroWinkler favors strings sharing a common prefix.
	JaroWinkler Algorithm = "jaro-winkler"
	// Hamming counts positionwise differences of equal-length strings.
	Hamming Algorithm = "hamming"
)

// Algorithms lists every supported algorithm tag.
func Algorithms() []Algorithm {
	return []Algorithm{
		Levenshtein,
		DamerauLevenshtein,
		SmithWaterman,
		NeedlemanWunsch,
		JaroWinkler,
		Hamming,
	}
}

// ParseAlgorithm converts a string tag into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case Levenshtein, DamerauLevenshtein, SmithWaterman, NeedlemanWunsch, JaroWinkler, Hamming:
		return Algorithm(s), nil
	}
	return "", fmt.Errorf("unknown algorithm %q", s)
}

// knownAlgorithms drops unrecognized tags, falling back to the Levenshtein
// default when none survive. Scoring dispatches by tag into a fixed scorer
// table, so an unknown tag must never reach a scorerSet. The input slice is
// never modified.
func knownAlgorithms(algs []Algorithm) []Algorithm {
	out := make([]Algorithm, 0, len(algs))
	for _, alg := range algs {
		if _, err := ParseAlgorithm(string(alg)); err == nil {
			out = append(out, alg)
		}
	}
	if len(out) == 0 {
		return []Algorithm{Levenshtein}
	}
	return out
}

// Scorer computes a normalized distance between two strings. The result is
// always in [0, 1], with 0 meaning identical and 1 meaning maximally
// dissimilar; it is a pure function of its arguments. Implementations may
// reuse internal scratch buffers across calls, so a single Scorer must not
// be invoked from multiple goroutines concurrently.
type Scorer interface {
	Compare(a, b string) float64
}

// Strategy selects how scores from multiple algorithms are combined.
type Strategy string

const (
	// StrategyMin keeps the best (lowest) score of all algorithms. This is
	// the right semantics for hybrid bundles mixing a partial-match
	// algorithm with a typo-tolerant one.
	StrategyMin Strategy = "min"
	// StrategyAverage averages the scores of all algorithms.
	StrategyAverage Strategy = "average"
)

// ParseStrategy converts a string tag into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMin, StrategyAverage:
		return Strategy(s), nil
	case "":
		return StrategyMin, nil
	}
	return "", fmt.Errorf("unknown combination strategy %q", s)
}

// NewScorer creates a scorer for the given algorithm with default settings.
func NewScorer(alg Algorithm) (Scorer, error) {
	switch alg {
	case Levenshtein:
		return NewLevenshteinScorer(), nil
	case DamerauLevenshtein:
		return NewDamerauScorer(), nil
	case SmithWaterman:
		return NewSmithWatermanScorer(), nil
	case NeedlemanWunsch:
		return NewNeedlemanWunschScorer(), nil
	case JaroWinkler:
		return NewJaroWinklerScorer(), nil
	case Hamming:
		return NewHammingScorer(), nil
	}
	return nil, fmt.Errorf("unknown algorithm %q", alg)
}

// scorerSet holds one scorer instance per algorithm. The engine keeps a
// fixed set and dispatches by tag; a set is owned by one goroutine at a time
// because the scorers carry scratch buffers.
type scorerSet struct {
	scorers map[Algorithm]Scorer
}

func newScorerSet(bitParallel, trim bool) *scorerSet {
	return &scorerSet{scorers: map[Algorithm]Scorer{
		Levenshtein:        NewLevenshteinScorer(WithBitParallel(bitParallel), WithTrimming(trim)),
		DamerauLevenshtein: NewDamerauScorer(),
		SmithWaterman:      NewSmithWatermanScorer(),
		NeedlemanWunsch:    NewNeedlemanWunschScorer(),
		JaroWinkler:        NewJaroWinklerScorer(),
		Hamming:            NewHammingScorer(),
	}}
}

// score compares query against text with every configured algorithm and
// combines the results according to the strategy.
func (s *scorerSet) score(query, text string, algorithms []Algorithm, strategy Strategy) float64 {
	if len(algorithms) == 1 {
		return s.scorers[algorithms[0]].Compare(query, text)
	}
	switch strategy {
	case StrategyAverage:
		var sum float64
		for _, alg := range algorithms {
			sum += s.scorers[alg].Compare(query, text)
		}
		return sum / float64(len(algorithms))
	default:
		best := 1.0
		for _, alg := range algorithms {
			if sc := s.scorers[alg].Compare(query, text); sc < best {
				best = sc
				if best == 0 {
					break
				}
			}
		}
		return best
	}
}
