package main

import (
	"reflect"
	"testing"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty", nil, ""},
		{"single", []string{"hello"}, "hello"},
		{"multi word", []string{"jon", "smith"}, "jon smith"},
		{"quoted as one arg", []string{"jon smith"}, "jon smith"},
		{"trims spaces", []string{" jon ", ""}, "jon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildSearchQuery(tt.args); got != tt.want {
				t.Errorf("buildSearchQuery(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestSearchArgsReorder(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no flags", []string{"a", "b"}, []string{"a", "b"}},
		{"flags first unchanged", []string{"-limit", "5", "q"}, []string{"-limit", "5", "q"}},
		{"flags after query move first", []string{"query", "-threshold", "0.5"}, []string{"-threshold", "0.5", "query"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("searchArgsReorder(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestSplitAlgorithms(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"levenshtein", []string{"levenshtein"}},
		{"levenshtein,jaro-winkler", []string{"levenshtein", "jaro-winkler"}},
		{" hamming , smith-waterman ", []string{"hamming", "smith-waterman"}},
		{",,", nil},
	}
	for _, tt := range tests {
		got := splitAlgorithms(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitAlgorithms(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
