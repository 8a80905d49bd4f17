package fuzzy

import "sort"

// charIndex is an inverted index from character code to the sorted,
// deduplicated list of record positions whose text contains that character.
// It is rebuilt in full on every build call and never mutated between
// searches.
type charIndex struct {
	postings map[rune][]int
	size     int
}

func newCharIndex() *charIndex {
	return &charIndex{postings: make(map[rune][]int)}
}

// build clears prior state and indexes the given normalized texts. Positions
// are visited in ascending order, so appending a position unless it already
// equals the list's last element keeps every posting list strictly ascending
// and duplicate-free without a set.
func (x *charIndex) build(texts []string) {
	x.postings = make(map[rune][]int)
	x.size = len(texts)
	for i, text := range texts {
		for _, r := range text {
			list := x.postings[r]
			if n := len(list); n > 0 && list[n-1] == i {
				continue
			}
			x.postings[r] = append(list, i)
		}
	}
}

// findCandidates returns the positions of all records whose text contains
// every character of the (normalized) query. An empty query matches every
// position. The returned slice may alias an internal posting list and must
// not be modified by the caller.
func (x *charIndex) findCandidates(query string) []int {
	if query == "" {
		all := make([]int, x.size)
		for i := range all {
			all[i] = i
		}
		return all
	}

	seen := make(map[rune]struct{}, len(query))
	lists := make([][]int, 0, len(query))
	for _, r := range query {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		list, ok := x.postings[r]
		if !ok {
			// The query requires a character absent from every record.
			return nil
		}
		lists = append(lists, list)
	}

	// Intersect starting from the shortest lists to minimize comparisons.
	sort.Slice(lists, func(i, j int) bool { return len(lists[i]) < len(lists[j]) })

	result := lists[0]
	for _, next := range lists[1:] {
		result = intersectSorted(result, next)
		if len(result) == 0 {
			return nil
		}
	}
	return result
}

// intersectSorted merges two strictly ascending position lists, emitting a
// position when both cursors agree and otherwise advancing whichever points
// at the smaller value. O(len(a)+len(b)).
func intersectSorted(a, b []int) []int {
	short := len(a)
	if len(b) < short {
		short = len(b)
	}
	out := make([]int, 0, short)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
