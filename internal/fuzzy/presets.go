package fuzzy

import "fmt"

// Preset bundles algorithms with a combination strategy. A preset has no
// identity beyond its configuration; it is a convenience default.
type Preset struct {
	Algorithms []Algorithm
	Strategy   Strategy
}

var presets = map[string]Preset{
	// typo favors misspellings and transposed characters.
	"typo": {Algorithms: []Algorithm{DamerauLevenshtein}, Strategy: StrategyMin},
	// partial favors substring and fragment matches.
	"partial": {Algorithms: []Algorithm{SmithWaterman}, Strategy: StrategyMin},
	// hybrid takes the best of partial matching and typo tolerance.
	"hybrid": {Algorithms: []Algorithm{SmithWaterman, DamerauLevenshtein}, Strategy: StrategyMin},
}

// ParsePreset looks up a named preset ("typo", "partial", or "hybrid").
// The returned algorithm slice is the caller's to own; mutating it never
// touches the preset table.
func ParsePreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	p.Algorithms = append([]Algorithm(nil), p.Algorithms...)
	return p, nil
}

// Options converts the preset into SearchOptions with the given threshold
// and limit (zero values keep the search defaults).
func (p Preset) Options(threshold float64, limit int) *SearchOptions {
	return &SearchOptions{
		Threshold:  threshold,
		Limit:      limit,
		Algorithms: append([]Algorithm(nil), p.Algorithms...),
		Strategy:   p.Strategy,
	}
}
