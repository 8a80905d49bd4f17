package fuzzy

import (
	"reflect"
	"sort"
	"testing"
)

func TestCharIndex_Build(t *testing.T) {
	x := newCharIndex()
	x.build([]string{"abca", "bcd", "a"})

	tests := []struct {
		char     rune
		expected []int
	}{
		{'a', []int{0, 2}}, // repeated 'a' in "abca" deduplicates
		{'b', []int{0, 1}},
		{'c', []int{0, 1}},
		{'d', []int{1}},
	}
	for _, tt := range tests {
		got := x.postings[tt.char]
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("postings[%q] = %v, want %v", tt.char, got, tt.expected)
		}
	}
	if _, ok := x.postings['z']; ok {
		t.Error("postings should not contain absent characters")
	}
}

func TestCharIndex_BuildReplacesState(t *testing.T) {
	x := newCharIndex()
	x.build([]string{"abc"})
	x.build([]string{"xyz"})
	if _, ok := x.postings['a']; ok {
		t.Error("rebuild must discard prior postings")
	}
	if got := x.findCandidates("x"); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("findCandidates(\"x\") = %v, want [0]", got)
	}
}

func TestCharIndex_FindCandidates(t *testing.T) {
	texts := []string{"apple", "banana", "cherry", "grape", "apricot"}
	x := newCharIndex()
	x.build(texts)

	tests := []struct {
		name  string
		query string
	}{
		{"single char", "a"},
		{"two chars", "ap"},
		{"full word", "apple"},
		{"absent char", "z"},
		{"mixed present absent", "az"},
		{"repeated chars", "pp"},
		{"all vowels", "aeiou"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.findCandidates(tt.query)
			want := bruteForceCandidates(texts, tt.query)
			if len(got) == 0 && len(want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("findCandidates(%q) = %v, want %v", tt.query, got, want)
			}
			if !sort.IntsAreSorted(got) {
				t.Errorf("findCandidates(%q) = %v, not sorted", tt.query, got)
			}
		})
	}
}

func TestCharIndex_EmptyQueryMatchesAll(t *testing.T) {
	x := newCharIndex()
	x.build([]string{"a", "b", "c"})
	if got := x.findCandidates(""); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("findCandidates(\"\") = %v, want all positions", got)
	}
}

func TestCharIndex_Unicode(t *testing.T) {
	x := newCharIndex()
	x.build([]string{"こんにちは", "こんばんは", "hello"})
	got := x.findCandidates("こん")
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("findCandidates(こん) = %v, want [0 1]", got)
	}
}

// bruteForceCandidates returns the positions of texts containing every
// unique character of query.
func bruteForceCandidates(texts []string, query string) []int {
	required := make(map[rune]struct{})
	for _, r := range query {
		required[r] = struct{}{}
	}
	var out []int
	for i, text := range texts {
		present := make(map[rune]struct{})
		for _, r := range text {
			present[r] = struct{}{}
		}
		ok := true
		for r := range required {
			if _, found := present[r]; !found {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func TestIntersectSorted(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []int
		expected []int
	}{
		{"disjoint", []int{1, 3}, []int{2, 4}, []int{}},
		{"identical", []int{1, 2, 3}, []int{1, 2, 3}, []int{1, 2, 3}},
		{"partial overlap", []int{0, 2, 4, 6}, []int{1, 2, 3, 6}, []int{2, 6}},
		{"one empty", []int{}, []int{1, 2}, []int{}},
		{"subset", []int{2, 5}, []int{1, 2, 3, 4, 5}, []int{2, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intersectSorted(tt.a, tt.b)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("intersectSorted(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}
