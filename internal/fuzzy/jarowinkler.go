package fuzzy

const (
	// winklerPrefixScale weights the common-prefix bonus.
	winklerPrefixScale = 0.1
	// winklerPrefixMax caps how many leading characters count toward the
	// prefix bonus.
	winklerPrefixMax = 4
)

// JaroWinklerScorer scores strings by Jaro-Winkler distance: characters
// match when they appear within a window of floor(max(len)/2)-1 positions,
// transpositions among matched characters count half, and a shared prefix
// of up to four characters earns a bonus scaled by 0.1.
//
// Match flags are kept in reusable buffers, so a scorer is not safe for
// concurrent use.
type JaroWinklerScorer struct {
	aFlags, bFlags []bool
}

// NewJaroWinklerScorer creates a Jaro-Winkler scorer.
func NewJaroWinklerScorer() *JaroWinklerScorer {
	return &JaroWinklerScorer{}
}

// Compare returns 1 - (jaro + prefix*0.1*(1-jaro)). Two empty strings score
// 0; exactly one empty scores 1.
func (s *JaroWinklerScorer) Compare(a, b string) float64 {
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
	window := maxLen/2 - 1
	if window < 0 {
		window = 0
	}

	if cap(s.aFlags) < la {
		s.aFlags = make([]bool, la)
	}
	if cap(s.bFlags) < lb {
		s.bFlags = make([]bool, lb)
	}
	aFlags := s.aFlags[:la]
	bFlags := s.bFlags[:lb]
	for i := range aFlags {
		aFlags[i] = false
	}
	for j := range bFlags {
		bFlags[j] = false
	}

	matches := 0
	for i := 0; i < la; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > lb {
			hi = lb
		}
		for j := lo; j < hi; j++ {
			if bFlags[j] || ra[i] != rb[j] {
				continue
			}
			aFlags[i] = true
			bFlags[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 1
	}

	// Count transpositions among the matched characters in order.
	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !aFlags[i] {
			continue
		}
		for !bFlags[j] {
			j++
		}
		if ra[i] != rb[j] {
			transpositions++
		}
		j++
	}
	transpositions /= 2

	m := float64(matches)
	jaro := (m/float64(la) + m/float64(lb) + (m-float64(transpositions))/m) / 3

	prefix := 0
	for prefix < la && prefix < lb && prefix < winklerPrefixMax && ra[prefix] == rb[prefix] {
		prefix++
	}
	winkler := jaro + float64(prefix)*winklerPrefixScale*(1-jaro)
	return clamp01(1 - winkler)
}
