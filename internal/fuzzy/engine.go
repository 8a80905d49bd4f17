package fuzzy

import (
	"sort"
	"strings"
)

// Default search option values.
const (
	DefaultThreshold = 0.4
	DefaultLimit     = 10
)

// coarsePassTrigger is the candidate count above which the coarse scoring
// pass runs before fine-grained evaluation.
const coarsePassTrigger = 100

// coarsePassCap bounds how many candidates survive the coarse pass, as
// min(coarsePassCap, limit*3). A record whose combined-text score exceeds
// the threshold can be cut here even when a per-field or per-word score
// would pass; that recall loss is the accepted price of bounding
// fine-grained work.
const coarsePassCap = 50

// Result pairs a record with its score. Scores ascend: 0 is a perfect
// match.
type Result[T any] struct {
	Item  T
	Score float64
}

// SearchOptions tunes a single search call. The zero value of every field
// means "use the default", so a nil options pointer behaves identically to
// an empty struct.
type SearchOptions struct {
	// Threshold is the maximum score a result may have. Defaults to 0.4.
	Threshold float64
	// Limit is the maximum number of results. Defaults to 10; negative
	// values yield no results.
	Limit int
	// Algorithms selects the similarity algorithms. Defaults to
	// Levenshtein.
	Algorithms []Algorithm
	// Strategy combines scores when multiple algorithms are configured.
	// Defaults to StrategyMin.
	Strategy Strategy
}

// resolvedOptions is a SearchOptions with every default applied.
type resolvedOptions struct {
	threshold  float64
	limit      int
	algorithms []Algorithm
	strategy   Strategy
}

func resolveOptions(opts *SearchOptions) resolvedOptions {
	r := resolvedOptions{
		threshold:  DefaultThreshold,
		limit:      DefaultLimit,
		algorithms: []Algorithm{Levenshtein},
		strategy:   StrategyMin,
	}
	if opts == nil {
		return r
	}
	if opts.Threshold != 0 {
		r.threshold = opts.Threshold
	}
	if r.threshold < 0 {
		r.threshold = 0
	}
	if opts.Limit != 0 {
		r.limit = opts.Limit
	}
	if r.limit < 0 {
		r.limit = 0
	}
	if len(opts.Algorithms) > 0 {
		r.algorithms = knownAlgorithms(opts.Algorithms)
	}
	if opts.Strategy != "" {
		r.strategy = opts.Strategy
	}
	return r
}

// engineOptions holds the optimization toggles. All default to on; they are
// performance knobs, and apart from the two-stage pass and the exact-match
// short circuit (which are documented approximations) they never change
// search output.
type engineOptions struct {
	bitParallel     bool
	signatureFilter bool
	twoStage        bool
	trim            bool
	exactMatch      bool
}

// Option configures an Engine at construction time.
type Option func(*engineOptions)

// WithBitParallelLevenshtein toggles the Myers bit-parallel Levenshtein
// path. Output is identical either way.
func WithBitParallelLevenshtein(on bool) Option {
	return func(o *engineOptions) { o.bitParallel = on }
}

// WithSignatureFilter toggles the 32-bit signature pre-check before
// exact-match comparisons. Output is identical either way.
func WithSignatureFilter(on bool) Option {
	return func(o *engineOptions) { o.signatureFilter = on }
}

// WithTwoStageScoring toggles the coarse/fine evaluation split. Disabling
// it scores every candidate fine-grained; enabling it may drop borderline
// candidates (see the coarse-pass cap).
func WithTwoStageScoring(on bool) Option {
	return func(o *engineOptions) { o.twoStage = on }
}

// WithPrefixSuffixTrimming toggles common prefix/suffix stripping before
// the Levenshtein DP. Output is identical either way.
func WithPrefixSuffixTrimming(on bool) Option {
	return func(o *engineOptions) { o.trim = on }
}

// WithExactMatchShortCircuit toggles the early exact-match stage. When
// disabled, exact matches flow through regular scoring instead.
func WithExactMatchShortCircuit(on bool) Option {
	return func(o *engineOptions) { o.exactMatch = on }
}

// Engine indexes a record set and answers fuzzy queries over it.
//
// AddAll and Search are synchronous and complete before returning. The
// engine holds mutable state (the index, the signature array, and scorer
// scratch buffers), so a single engine must not serve concurrent calls;
// use NewSearcher for per-goroutine searching over a shared immutable
// index, and never run AddAll concurrently with anything.
type Engine[T any] struct {
	keys []Key[T]
	opts engineOptions

	records  []T
	fields   [][]string // fields[i][k]: normalized text of key k for record i
	combined []string   // fields joined with a single space
	sigs     []uint32
	index    *charIndex

	scorers *scorerSet
}

// NewEngine creates an engine that searches the given fields of each
// record. All optimization toggles default to on.
func NewEngine[T any](keys []Key[T], opts ...Option) *Engine[T] {
	o := engineOptions{
		bitParallel:     true,
		signatureFilter: true,
		twoStage:        true,
		trim:            true,
		exactMatch:      true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T]{
		keys:    keys,
		opts:    o,
		index:   newCharIndex(),
		scorers: newScorerSet(o.bitParallel, o.trim),
	}
}

// Len returns the number of indexed records.
func (e *Engine[T]) Len() int {
	return len(e.records)
}

// CandidateCount reports how many indexed records contain every character
// of the query, before any scoring or filtering runs. An empty query
// matches every record. It only reads the immutable index, so it is safe
// alongside concurrent Searchers.
func (e *Engine[T]) CandidateCount(query string) int {
	q := normalize(query)
	if q == "" {
		return len(e.records)
	}
	return len(e.index.findCandidates(q))
}

// AddAll replaces the record set wholesale and rebuilds the character index
// and signature array from scratch. Record positions issued by a previous
// AddAll are invalidated. There is no incremental update.
func (e *Engine[T]) AddAll(records []T) {
	n := len(records)
	e.records = records
	e.fields = make([][]string, n)
	e.combined = make([]string, n)
	e.sigs = make([]uint32, n)

	for i, rec := range records {
		fs := make([]string, len(e.keys))
		for k, key := range e.keys {
			fs[k] = normalize(key.Text(rec))
		}
		e.fields[i] = fs
		e.combined[i] = strings.Join(fs, " ")
		e.sigs[i] = computeSignature(e.combined[i])
	}
	e.index.build(e.combined)
}

// Search returns at most limit records scoring at or below the threshold,
// ascending by score. Ties keep record order. An empty query matches every
// record with score 0.
func (e *Engine[T]) Search(query string, opts *SearchOptions) []Result[T] {
	return e.searchWith(query, resolveOptions(opts), e.scorers)
}

func (e *Engine[T]) searchWith(query string, o resolvedOptions, scorers *scorerSet) []Result[T] {
	if len(e.records) == 0 || o.limit == 0 {
		return nil
	}

	q := normalize(query)
	if q == "" {
		n := o.limit
		if n > len(e.records) {
			n = len(e.records)
		}
		out := make([]Result[T], n)
		for i := 0; i < n; i++ {
			out[i] = Result[T]{Item: e.records[i]}
		}
		return out
	}

	candidates := e.index.findCandidates(q)
	if len(candidates) == 0 {
		return nil
	}

	// Stage 1.5: pull out exact field matches before any scoring. The
	// signature test only rejects; a candidate failing it still flows to
	// scoring, it just cannot be an exact match.
	var exact []Result[T]
	remaining := candidates
	if e.opts.exactMatch {
		qsig := computeSignature(q)
		rest := make([]int, 0, len(candidates))
		for _, pos := range candidates {
			if e.opts.signatureFilter && !signatureCanMatch(qsig, e.sigs[pos]) {
				rest = append(rest, pos)
				continue
			}
			matched := false
			for _, f := range e.fields[pos] {
				if f == q {
					matched = true
					break
				}
			}
			if matched {
				exact = append(exact, Result[T]{Item: e.records[pos]})
			} else {
				rest = append(rest, pos)
			}
		}
		remaining = rest
	}

	// Stage 2: coarse pass over the combined text only, bounding the
	// fine-grained work to an already-promising subset.
	if e.opts.twoStage && len(remaining) > coarsePassTrigger {
		remaining = e.coarsePass(q, remaining, o, scorers)
	}

	// Stage 3: fine-grained scoring. The candidate's score is the minimum
	// over the combined text, each field, and each word of each field; a
	// field or word containing the query as a substring contributes 0
	// without invoking any algorithm, and a running best of 0 stops the
	// candidate's evaluation.
	type hit struct {
		pos   int
		score float64
	}
	hits := make([]hit, 0, len(remaining))
	for _, pos := range remaining {
		best := scorers.score(q, e.combined[pos], o.algorithms, o.strategy)
		for _, f := range e.fields[pos] {
			if best == 0 {
				break
			}
			fs := 0.0
			if !strings.Contains(f, q) {
				fs = scorers.score(q, f, o.algorithms, o.strategy)
			}
			if fs < best {
				best = fs
			}
			if best == 0 {
				break
			}
			for _, w := range splitWords(f) {
				ws := 0.0
				if !strings.Contains(w, q) {
					ws = scorers.score(q, w, o.algorithms, o.strategy)
				}
				if ws < best {
					best = ws
				}
				if best == 0 {
					break
				}
			}
		}
		if best <= o.threshold {
			hits = append(hits, hit{pos: pos, score: best})
		}
	}

	// Hits were appended in ascending position order, so a stable sort
	// breaks score ties by record position.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	out := make([]Result[T], 0, len(exact)+len(hits))
	out = append(out, exact...)
	for _, h := range hits {
		out = append(out, Result[T]{Item: e.records[h.pos], Score: h.score})
	}
	if len(out) > o.limit {
		out = out[:o.limit]
	}
	return out
}

// coarsePass scores every candidate once against its combined text, keeps
// those within the threshold, and returns at most min(coarsePassCap,
// limit*3) of the best, in ascending score order.
func (e *Engine[T]) coarsePass(q string, candidates []int, o resolvedOptions, scorers *scorerSet) []int {
	type scored struct {
		pos   int
		score float64
	}
	kept := make([]scored, 0, len(candidates))
	for _, pos := range candidates {
		if sc := scorers.score(q, e.combined[pos], o.algorithms, o.strategy); sc <= o.threshold {
			kept = append(kept, scored{pos: pos, score: sc})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score < kept[j].score })

	keep := o.limit * 3
	if keep > coarsePassCap {
		keep = coarsePassCap
	}
	if len(kept) > keep {
		kept = kept[:keep]
	}
	out := make([]int, len(kept))
	for i, s := range kept {
		out[i] = s.pos
	}
	return out
}

// Searcher runs queries against an engine's immutable index with its own
// scorer instances, so multiple Searchers can search one engine from
// different goroutines at the same time. AddAll still must not run while
// any Searcher is active.
type Searcher[T any] struct {
	engine  *Engine[T]
	scorers *scorerSet
}

// NewSearcher creates a Searcher with a private scorer set. Each Searcher
// is for use by one goroutine at a time.
func (e *Engine[T]) NewSearcher() *Searcher[T] {
	return &Searcher[T]{
		engine:  e,
		scorers: newScorerSet(e.opts.bitParallel, e.opts.trim),
	}
}

// Search behaves exactly like Engine.Search.
func (s *Searcher[T]) Search(query string, opts *SearchOptions) []Result[T] {
	return s.engine.searchWith(query, resolveOptions(opts), s.scorers)
}

// CandidateCount behaves exactly like Engine.CandidateCount.
func (s *Searcher[T]) CandidateCount(query string) int {
	return s.engine.CandidateCount(query)
}
